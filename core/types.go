package core

import (
	"github.com/neovim/go-client/msgpack"
	"github.com/tidwall/gjson"
)

type (
	// FormatterOptions provide various options for formatters
	FormatterOptions struct {
		// index of the first row in the formatted chunk
		ChunkStart int
	}

	// Formatter converts columns and formatted records to bytes
	Formatter interface {
		Format(columns []Column, records []Record, opts *FormatterOptions) ([]byte, error)
		Name() string
	}
)

type (
	// Row is a single JSON object that becomes one table row.
	// Key order of the underlying document is preserved.
	Row = gjson.Result

	// HeaderPath is a dotted key path that locates a leaf value inside a row.
	HeaderPath string

	// Header is an ordered, deduplicated set of header paths
	Header []HeaderPath

	// Record holds formatted cells of a single row in header order
	Record []string
)

// Column pairs a header path with its display name
type Column struct {
	Key  HeaderPath
	Name string
}

func (c Column) MarshalMsgPack(enc *msgpack.Encoder) error {
	return enc.Encode(&struct {
		Key  string `msgpack:"key"`
		Name string `msgpack:"name"`
	}{
		Key:  string(c.Key),
		Name: c.Name,
	})
}

// Columns returns the display column of every header path
func (h Header) Columns() []Column {
	columns := make([]Column, len(h))
	for i, path := range h {
		columns[i] = Column{
			Key:  path,
			Name: DisplayName(path),
		}
	}
	return columns
}
