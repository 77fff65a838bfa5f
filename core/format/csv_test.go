package format_test

import (
	"encoding/csv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/kndndrj/gqlbee/core"
	"github.com/kndndrj/gqlbee/core/format"
)

func flatten(t *testing.T, input string) *core.Table {
	table, err := core.Flatten([]byte(input), core.NewValueFormatter(core.WithLocation(time.UTC)))
	require.NoError(t, err)
	return table
}

func TestCSV_Format(t *testing.T) {
	r := require.New(t)

	table := flatten(t, `{"data":{"orders":{"items":[
		{"OrderID":1,"dimension_customer":{"PostalCode":"1000","Say \"hi\"":"x"},"UnitPrice":3,"Note":"plain"},
		{"OrderID":2,"dimension_customer":{"PostalCode":"2000"},"UnitPrice":4.5,"Note":"a, \"b\"\nc","Lines":[1,2]}
	]}}}`)

	out, err := table.Format(format.NewCSV(), 0, -1)
	r.NoError(err)

	expected := `"Order ID","Postal Code","Say ""hi""","Unit Price","Note","Lines"` + "\n" +
		`1,1000,x,3.00,plain,` + "\n" +
		`2,2000,,4.50,"a, ""b""` + "\n" + `c",[2 items]` + "\n"

	r.Equal(expected, string(out))
}

func TestCSV_EscapingRoundTrip(t *testing.T) {
	r := require.New(t)

	cells := []string{`comma, inside`, `quote " inside`, "new\nline", `plain`, `""`}

	columns := []core.Column{{Key: "a", Name: "a"}}
	var records []core.Record
	for _, c := range cells {
		records = append(records, core.Record{c})
	}

	out, err := format.NewCSV().Format(columns, records, &core.FormatterOptions{})
	r.NoError(err)

	lines, err := csv.NewReader(strings.NewReader(string(out))).ReadAll()
	r.NoError(err)
	r.Len(lines, len(cells)+1)
	for i, c := range cells {
		r.Equal([]string{c}, lines[i+1])
	}

	// escaped cells are quoted with doubled quotes
	r.Contains(string(out), `"quote "" inside"`)
	r.Contains(string(out), "\nplain\n")
}

func TestExcel_SameBytesAsCSV(t *testing.T) {
	r := require.New(t)

	table := flatten(t, `{"data":{"list":[{"a":"x,y","Rate":0.5},{"a":"z"}]}}`)

	csvBlob, err := format.Export(table, format.NewCSV(), "")
	r.NoError(err)
	excelBlob, err := format.Export(table, format.NewExcel(), "report")
	r.NoError(err)

	r.Equal(csvBlob.Data, excelBlob.Data)

	r.Equal("export.csv", csvBlob.FileName)
	r.Equal("text/csv", csvBlob.ContentType)
	r.Equal("report.xls", excelBlob.FileName)
	r.Equal("application/vnd.ms-excel", excelBlob.ContentType)
}

func TestExport_Empty(t *testing.T) {
	r := require.New(t)

	_, err := format.Export(nil, format.NewCSV(), "")
	r.ErrorIs(err, core.ErrEmptyExport)

	_, err = format.Export(core.NewTable(nil, nil), format.NewExcel(), "")
	r.ErrorIs(err, core.ErrEmptyExport)

	_, err = format.NewCSV().Format(nil, []core.Record{{"x"}}, nil)
	r.ErrorIs(err, core.ErrEmptyExport)
}

func TestFromName(t *testing.T) {
	r := require.New(t)

	for _, name := range []string{"csv", "excel", "json", "table", "html", "markdown"} {
		f, err := format.FromName(name)
		r.NoError(err)
		r.Equal(name, f.Name())
	}

	_, err := format.FromName("parquet")
	r.Error(err)

	_, err = format.ExporterFromName("json")
	r.Error(err)
}
