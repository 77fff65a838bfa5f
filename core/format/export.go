package format

import (
	"fmt"
	"strings"

	"github.com/kndndrj/gqlbee/core"
)

const DefaultBaseName = "export"

// Exporter is a formatter whose output is offered as a download
type Exporter interface {
	core.Formatter
	Extension() string
	ContentType() string
}

// Blob is an exported file ready to be saved
type Blob struct {
	Data        []byte
	FileName    string
	ContentType string
}

// Export formats all rows of the table with the exporter.
// Empty tables are refused.
func Export(table *core.Table, exporter Exporter, baseName string) (*Blob, error) {
	if table.IsEmpty() {
		return nil, core.ErrEmptyExport
	}

	data, err := table.Format(exporter, 0, -1)
	if err != nil {
		return nil, fmt.Errorf("table.Format: %w", err)
	}

	baseName = strings.TrimSpace(baseName)
	if baseName == "" {
		baseName = DefaultBaseName
	}

	return &Blob{
		Data:        data,
		FileName:    baseName + exporter.Extension(),
		ContentType: exporter.ContentType(),
	}, nil
}

// ExporterFromName returns the exporter registered under name
func ExporterFromName(name string) (Exporter, error) {
	switch name {
	case "csv":
		return NewCSV(), nil
	case "excel", "xls":
		return NewExcel(), nil
	default:
		return nil, fmt.Errorf("export format %q is not supported", name)
	}
}

// FromName returns any formatter by name
func FromName(name string) (core.Formatter, error) {
	switch name {
	case "json":
		return NewJSON(), nil
	case "table":
		return NewTable(), nil
	case "html":
		return NewHTML(), nil
	case "markdown", "md":
		return NewMarkdown(), nil
	default:
		return ExporterFromName(name)
	}
}
