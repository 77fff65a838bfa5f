package format

import (
	"bytes"
	"strings"

	"github.com/kndndrj/gqlbee/core"
)

var (
	_ core.Formatter = (*CSV)(nil)
	_ Exporter       = (*CSV)(nil)
)

// CSV writes display names as a fully quoted header line followed by one line per record.
// Cells are quoted only when they contain a comma, a double quote or a newline.
type CSV struct {
	name        string
	extension   string
	contentType string
}

func NewCSV() *CSV {
	return &CSV{
		name:        "csv",
		extension:   ".csv",
		contentType: "text/csv",
	}
}

// NewExcel returns an exporter producing the same bytes as CSV,
// declared as a spreadsheet for applications that open it directly.
func NewExcel() *CSV {
	return &CSV{
		name:        "excel",
		extension:   ".xls",
		contentType: "application/vnd.ms-excel",
	}
}

func (cf *CSV) Name() string {
	return cf.name
}

func (cf *CSV) Extension() string {
	return cf.extension
}

func (cf *CSV) ContentType() string {
	return cf.contentType
}

func (cf *CSV) Format(columns []core.Column, records []core.Record, _ *core.FormatterOptions) ([]byte, error) {
	if len(columns) < 1 || len(records) < 1 {
		return nil, core.ErrEmptyExport
	}

	b := new(bytes.Buffer)

	for i, col := range columns {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(quote(col.Name))
	}
	b.WriteByte('\n')

	for _, rec := range records {
		for i, cell := range rec {
			if i > 0 {
				b.WriteByte(',')
			}
			if strings.ContainsAny(cell, ",\"\n") {
				cell = quote(cell)
			}
			b.WriteString(cell)
		}
		b.WriteByte('\n')
	}

	return b.Bytes(), nil
}

func quote(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}
