package core_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	"github.com/kndndrj/gqlbee/core"
)

func TestValueFormatter_Cell(t *testing.T) {
	vf := core.NewValueFormatter(core.WithLocation(time.UTC))

	testCases := []struct {
		name     string
		row      string
		path     core.HeaderPath
		expected string
	}{
		{"currency", `{"Profit":12}`, "Profit", "12.00"},
		{"currency marker inside name", `{"o":{"UnitPrice":3.14159}}`, "o.UnitPrice", "3.14"},
		{"currency marker is case sensitive", `{"profit":12}`, "profit", "12"},
		{"currency rounds half away from zero", `{"Profit":0.125}`, "Profit", "0.13"},
		{"negative currency rounds half away from zero", `{"Profit":-0.125}`, "Profit", "-0.13"},
		{"currency tie above one", `{"Profit":1.125}`, "Profit", "1.13"},
		{"currency zero", `{"TaxAmount":0}`, "TaxAmount", "0.00"},
		{"plain number", `{"Quantity":1.5}`, "Quantity", "1.5"},
		{"integer", `{"id":42}`, "id", "42"},
		{"null", `{"x":null}`, "x", ""},
		{"missing", `{"x":1}`, "y", ""},
		{"missing intermediate", `{"x":1}`, "a.b", ""},
		{"array", `{"tags":["a","b","c"]}`, "tags", "[3 items]"},
		{"empty array", `{"tags":[]}`, "tags", "[0 items]"},
		{"string", `{"s":"hello"}`, "s", "hello"},
		{"bool", `{"b":true}`, "b", "true"},
		{"object leaf", `{"o":{ "a" : 1 }}`, "o", `{"a":1}`},
		{"date", `{"When":"2024-03-05T10:00:00Z"}`, "When", "3/5/2024 10:00:00 AM"},
		{"date with offset", `{"When":"2024-03-05T10:00:00+02:00"}`, "When", "3/5/2024 8:00:00 AM"},
		{"date without zone", `{"When":"2024-03-05T22:15:30.123"}`, "When", "3/5/2024 10:15:30 PM"},
		{"invalid date falls through", `{"When":"2024-13-45T10:00:00Z"}`, "When", "2024-13-45T10:00:00Z"},
		{"not a date", `{"When":"hello"}`, "When", "hello"},
		{"date only is a string", `{"When":"2024-03-05"}`, "When", "2024-03-05"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.expected, vf.Cell(gjson.Parse(tc.row), tc.path))
		})
	}
}

func TestValueFormatter_Options(t *testing.T) {
	r := require.New(t)

	vf := core.NewValueFormatter(
		core.WithCurrencyMarkers("Cost"),
		core.WithDateLayout("2006-01-02"),
		core.WithTimeLayout("15:04"),
		core.WithLocation(time.UTC),
	)

	row := gjson.Parse(`{"ShippingCost":5,"Profit":12,"At":"2024-03-05T10:00:00Z"}`)

	r.Equal("5.00", vf.Cell(row, "ShippingCost"))
	r.Equal("12", vf.Cell(row, "Profit"))
	r.Equal("2024-03-05 10:00", vf.Cell(row, "At"))
}

func TestValueFormatter_DateHasDateAndTime(t *testing.T) {
	r := require.New(t)

	// default location is local
	cell := core.NewValueFormatter().Cell(gjson.Parse(`{"When":"2024-03-05T10:00:00Z"}`), "When")

	r.NotEmpty(cell)
	r.Regexp(`^\d{1,2}/\d{1,2}/2024 \d{1,2}:\d{2}:\d{2} (AM|PM)$`, cell)
}
