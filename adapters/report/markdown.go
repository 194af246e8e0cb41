package report

import (
	"bytes"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"

	"studysize/domain/table"
)

// MarkdownWriter renders a sweep table as a GitHub-style markdown table
type MarkdownWriter struct {
	Title string
}

// NewMarkdownWriter creates a markdown table writer
func NewMarkdownWriter(title string) *MarkdownWriter {
	return &MarkdownWriter{Title: title}
}

func (w *MarkdownWriter) Format() string      { return "md" }
func (w *MarkdownWriter) ContentType() string { return "text/markdown; charset=utf-8" }

func (w *MarkdownWriter) Write(out io.Writer, t *table.Table) error {
	_, err := out.Write(Markdown(w.Title, t))
	return err
}

// HTMLWriter renders the markdown report to a standalone HTML fragment
type HTMLWriter struct {
	Title string
}

// NewHTMLWriter creates an HTML table writer
func NewHTMLWriter(title string) *HTMLWriter {
	return &HTMLWriter{Title: title}
}

func (w *HTMLWriter) Format() string      { return "html" }
func (w *HTMLWriter) ContentType() string { return "text/html; charset=utf-8" }

func (w *HTMLWriter) Write(out io.Writer, t *table.Table) error {
	p := parser.NewWithExtensions(parser.CommonExtensions)
	renderer := html.NewRenderer(html.RendererOptions{Flags: html.CommonFlags})
	_, err := out.Write(markdown.ToHTML(Markdown(w.Title, t), p, renderer))
	return err
}

// Markdown builds the report: an optional heading then the table. Integral
// values print without decimals, others with up to four significant decimals.
func Markdown(title string, t *table.Table) []byte {
	var b bytes.Buffer
	if title != "" {
		fmt.Fprintf(&b, "# %s\n\n", title)
	}
	if len(t.Columns) == 0 {
		return b.Bytes()
	}

	b.WriteString("| " + strings.Join(t.Columns, " | ") + " |\n")
	b.WriteString("|" + strings.Repeat(" ---: |", len(t.Columns)) + "\n")
	cells := make([]string, len(t.Columns))
	for _, row := range t.Rows {
		for i, v := range row {
			cells[i] = formatValue(v)
		}
		b.WriteString("| " + strings.Join(cells, " | ") + " |\n")
	}
	return b.Bytes()
}

func formatValue(v float64) string {
	if math.Abs(v) < 1e15 && v == math.Trunc(v) {
		return strconv.FormatInt(int64(v), 10)
	}
	return strconv.FormatFloat(v, 'g', 6, 64)
}
