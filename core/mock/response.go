package mock

import (
	"encoding/json"
	"fmt"
	"strings"
)

// NewRows returns a slice of JSON rows in form of:
//
//	{ "id": <index>, "name": "row_<index>" }
//
// where the first index is "from" and the last one is one less than "to".
func NewRows(from, to int) []string {
	var rows []string

	for i := from; i < to; i++ {
		rows = append(rows, fmt.Sprintf(`{"id":%d,"name":"row_%d"}`, i, i))
	}
	return rows
}

// NewResponse returns a GraphQL response body with the provided JSON rows
// under data.<field>. By default the rows are wrapped in a connection
// object ({"items": [...]}).
func NewResponse(field string, rows []string, opts ...ResponseOption) []byte {
	config := &responseConfig{
		connection: true,
	}
	for _, opt := range opts {
		opt(config)
	}

	list := "[" + strings.Join(rows, ",") + "]"
	if config.connection {
		list = `{"items":` + list + `}`
	}

	fieldName, _ := json.Marshal(field)
	body := `{"data":{` + string(fieldName) + `:` + list + `}`

	if len(config.errors) > 0 {
		var errs []string
		for _, msg := range config.errors {
			m, _ := json.Marshal(msg)
			errs = append(errs, `{"message":`+string(m)+`}`)
		}
		body += `,"errors":[` + strings.Join(errs, ",") + `]`
	}

	return []byte(body + "}")
}
