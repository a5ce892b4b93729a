package render

import (
	"fmt"
	"homework-assist/internal/scrapers/lms"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

const (
	EmptyMessage   = "課題はありません"
	progressFormat = "課題情報を取得中（%d/%d）"
)

var header = table.Row{"課題名", "講義名", "形式", "期限"}

type Format string

const (
	FORMAT_TABLE    Format = "table"
	FORMAT_MARKDOWN Format = "markdown"
	FORMAT_HTML     Format = "html"
	FORMAT_CSV      Format = "csv"
)

func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case FORMAT_TABLE, FORMAT_MARKDOWN, FORMAT_HTML, FORMAT_CSV:
		return f, nil
	case "":
		return FORMAT_TABLE, nil
	default:
		return "", fmt.Errorf("unknown format '%s' (expected table, markdown, html or csv)", s)
	}
}

// Table formats records one row per assignment, an empty list becomes a
// single row saying so.
func Table(records []lms.Assignment, format Format) string {
	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)
	t.AppendHeader(header)

	if len(records) == 0 {
		t.AppendRow(table.Row{EmptyMessage, EmptyMessage, EmptyMessage, EmptyMessage}, table.RowConfig{
			AutoMerge: true,
		})
	}
	for _, r := range records {
		t.AppendRow(table.Row{
			r.Title(),
			strings.TrimSpace(r.LectureName()),
			r.Kind().String(),
			r.Deadline(),
		})
	}

	switch format {
	case FORMAT_MARKDOWN:
		return t.RenderMarkdown()
	case FORMAT_HTML:
		return t.RenderHTML()
	case FORMAT_CSV:
		return t.RenderCSV()
	default:
		return t.Render()
	}
}

// Terminal writes tables to out and transient status (progress, warnings)
// to status, usually stdout and stderr.
type Terminal struct {
	out    io.Writer
	status io.Writer
	format Format
	color  bool

	progressShown bool
}

func NewTerminal(out, status io.Writer, format Format, color bool) *Terminal {
	return &Terminal{
		out:    out,
		status: status,
		format: format,
		color:  color,
	}
}

func (t *Terminal) RenderTable(records []lms.Assignment) {
	fmt.Fprintln(t.out, Table(records, t.format))
}

func (t *Terminal) ShowProgress(current, total int) {
	t.progressShown = true
	fmt.Fprintf(t.status, "\r"+progressFormat, current, total)
}

func (t *Terminal) ClearProgress() {
	if !t.progressShown {
		return
	}
	t.progressShown = false
	// carriage return + erase line
	fmt.Fprint(t.status, "\r\x1b[2K")
}

func (t *Terminal) ShowWarning(message string) {
	if t.color {
		message = text.Colors{text.FgYellow, text.Bold}.Sprint(message)
	}
	fmt.Fprintln(t.status, message)
}

// ClearRenderedTable is a no-op, a table already printed to a stream stays
// there and the next render follows it.
func (t *Terminal) ClearRenderedTable() {}
