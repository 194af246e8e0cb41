package ports

import (
	"io"

	"studysize/domain/table"
)

// TableWriterPort serialises a sweep table in one format
type TableWriterPort interface {
	// Format is the short name used on the CLI and in ?format= queries
	Format() string
	// ContentType is the MIME type of the output
	ContentType() string
	Write(w io.Writer, t *table.Table) error
}
