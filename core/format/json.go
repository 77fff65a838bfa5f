package format

import (
	"encoding/json"
	"fmt"

	"github.com/kndndrj/gqlbee/core"
)

var _ core.Formatter = (*JSON)(nil)

// JSON writes records as objects keyed by header path
type JSON struct{}

func NewJSON() *JSON {
	return &JSON{}
}

func (jf *JSON) Name() string {
	return "json"
}

func (jf *JSON) parse(columns []core.Column, records []core.Record) []map[string]string {
	data := make([]map[string]string, 0, len(records))

	for _, rec := range records {
		record := make(map[string]string, len(rec))
		for i, val := range rec {
			var h string
			if i < len(columns) {
				h = string(columns[i].Key)
			} else {
				h = fmt.Sprintf("<unknown-field-%d>", i)
			}
			record[h] = val
		}
		data = append(data, record)
	}

	return data
}

func (jf *JSON) Format(columns []core.Column, records []core.Record, _ *core.FormatterOptions) ([]byte, error) {
	out, err := json.MarshalIndent(jf.parse(columns, records), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("json.MarshalIndent: %w", err)
	}

	return out, nil
}
