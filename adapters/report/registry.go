package report

import (
	"fmt"
	"sort"
	"strings"

	"studysize/adapters/excel"
	"studysize/domain/core"
	"studysize/ports"
)

// Writers indexes table writers by format.
type Writers map[string]ports.TableWriterPort

// DefaultWriters registers every supported export format.
func DefaultWriters(title string) Writers {
	ws := Writers{}
	for _, w := range []ports.TableWriterPort{
		NewJSONWriter(),
		excel.NewCSVWriter(),
		excel.NewXLSXWriter(),
		NewMarkdownWriter(title),
		NewHTMLWriter(title),
	} {
		ws[w.Format()] = w
	}
	return ws
}

// Lookup returns the writer for format; "" means json.
func (ws Writers) Lookup(format string) (ports.TableWriterPort, error) {
	if format == "" {
		format = "json"
	}
	w, ok := ws[strings.ToLower(format)]
	if !ok {
		return nil, core.NewInvalidArgument("format", fmt.Sprintf("%q is not one of %s", format, strings.Join(ws.Formats(), ", ")))
	}
	return w, nil
}

// Formats lists registered formats alphabetically.
func (ws Writers) Formats() []string {
	out := make([]string, 0, len(ws))
	for f := range ws {
		out = append(out, f)
	}
	sort.Strings(out)
	return out
}
