package format_test

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/kndndrj/gqlbee/core/format"
)

const sampleResponse = `{"data":{"products":{"items":[
	{"ProductName":"<b>Chai</b>","category":{"Name":"Beverages"},"UnitPrice":18},
	{"ProductName":"Chang","category":{"Name":"Beverages"},"UnitPrice":19}
]}}}`

func TestTable_Format(t *testing.T) {
	r := require.New(t)

	table := flatten(t, sampleResponse)

	out, err := table.Format(format.NewTable(), 1, -1)
	r.NoError(err)

	text := string(out)
	r.Contains(text, "Product Name")
	r.Contains(text, "Unit Price")
	r.Contains(text, "Chang")
	r.Contains(text, "19.00")
	r.NotContains(text, "Chai")

	// row numbers start at the chunk start
	r.Contains(text, " 2 ")
	for _, line := range strings.Split(text, "\n") {
		r.Equal(strings.TrimRight(line, " "), line)
	}
}

func TestHTML_Format(t *testing.T) {
	r := require.New(t)

	out, err := flatten(t, sampleResponse).Format(format.NewHTML(), 0, -1)
	r.NoError(err)

	html := string(out)
	r.True(strings.HasPrefix(html, `<table class="gqlbee-table">`))
	r.Contains(html, "&lt;b&gt;Chai&lt;/b&gt;")
	r.Contains(html, "Product Name")
	r.NotContains(html, "<b>Chai</b>")
}

func TestMarkdown_Format(t *testing.T) {
	r := require.New(t)

	out, err := flatten(t, sampleResponse).Format(format.NewMarkdown(), 0, -1)
	r.NoError(err)

	md := string(out)
	r.True(strings.HasPrefix(md, "|"))
	r.Contains(md, "Chang")
	r.Contains(md, "---")
}

func TestJSON_Format(t *testing.T) {
	r := require.New(t)

	out, err := flatten(t, sampleResponse).Format(format.NewJSON(), 0, -1)
	r.NoError(err)

	var records []map[string]string
	r.NoError(json.Unmarshal(out, &records))
	r.Equal([]map[string]string{
		{"ProductName": "<b>Chai</b>", "category.Name": "Beverages", "UnitPrice": "18.00"},
		{"ProductName": "Chang", "category.Name": "Beverages", "UnitPrice": "19.00"},
	}, records)
}
