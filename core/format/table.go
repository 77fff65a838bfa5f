package format

import (
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/kndndrj/gqlbee/core"
)

var (
	_ core.Formatter = (*Table)(nil)
	_ core.Formatter = (*HTML)(nil)
	_ core.Formatter = (*Markdown)(nil)
)

func newWriter(columns []core.Column, records []core.Record, opts *core.FormatterOptions, indexed bool) table.Writer {
	var tableHeaders table.Row
	if indexed {
		tableHeaders = append(tableHeaders, "")
	}
	for _, col := range columns {
		tableHeaders = append(tableHeaders, col.Name)
	}

	index := 0
	if opts != nil {
		index = opts.ChunkStart
	}

	var tableRows []table.Row
	for _, rec := range records {
		var row table.Row
		if indexed {
			row = append(row, index+1)
		}
		for _, cell := range rec {
			row = append(row, cell)
		}
		tableRows = append(tableRows, row)
		index += 1
	}

	t := table.NewWriter()
	t.AppendHeader(tableHeaders)
	t.AppendRows(tableRows)
	return t
}

// Table renders a text table with row numbers, used for editor buffers and terminals
type Table struct{}

func NewTable() *Table {
	return &Table{}
}

func (tf *Table) Name() string {
	return "table"
}

func (tf *Table) Format(columns []core.Column, records []core.Record, opts *core.FormatterOptions) ([]byte, error) {
	t := newWriter(columns, records, opts, true)
	t.AppendSeparator()
	t.SetStyle(table.StyleLight)
	t.Style().Format = table.FormatOptions{
		Footer: text.FormatDefault,
		Header: text.FormatDefault,
		Row:    text.FormatDefault,
	}
	t.Style().Options.DrawBorder = false
	t.SuppressTrailingSpaces()

	return []byte(t.Render()), nil
}

// HTML renders the markup of a table element
type HTML struct{}

func NewHTML() *HTML {
	return &HTML{}
}

func (hf *HTML) Name() string {
	return "html"
}

func (hf *HTML) Format(columns []core.Column, records []core.Record, opts *core.FormatterOptions) ([]byte, error) {
	t := newWriter(columns, records, opts, false)
	t.Style().Format = table.FormatOptions{
		Header: text.FormatDefault,
		Row:    text.FormatDefault,
	}
	t.Style().HTML = table.HTMLOptions{
		CSSClass:    "gqlbee-table",
		EscapeText:  true,
		Newline:     "<br/>",
		EmptyColumn: "&nbsp;",
	}

	return []byte(t.RenderHTML()), nil
}

// Markdown renders a pipe table
type Markdown struct{}

func NewMarkdown() *Markdown {
	return &Markdown{}
}

func (mf *Markdown) Name() string {
	return "markdown"
}

func (mf *Markdown) Format(columns []core.Column, records []core.Record, opts *core.FormatterOptions) ([]byte, error) {
	t := newWriter(columns, records, opts, false)
	t.Style().Format = table.FormatOptions{
		Header: text.FormatDefault,
		Row:    text.FormatDefault,
	}

	return []byte(t.RenderMarkdown()), nil
}
