package core

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/tidwall/gjson"
	"github.com/tidwall/pretty"
)

// DefaultCurrencyMarkers are the case sensitive substrings of a field name
// that mark a numeric value as currency-like.
var DefaultCurrencyMarkers = []string{"Price", "Tax", "Profit", "Rate", "Amount"}

const (
	DefaultDateLayout = "1/2/2006"
	DefaultTimeLayout = "3:04:05 PM"
)

var dateTimePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}T\d{2}:\d{2}(:\d{2}(\.\d+)?)?(Z|[+-]\d{2}:\d{2})?$`)

var (
	zonedLayouts = []string{"2006-01-02T15:04:05Z07:00", "2006-01-02T15:04Z07:00"}
	localLayouts = []string{"2006-01-02T15:04:05", "2006-01-02T15:04"}
)

// ValueFormatter turns resolved leaf values into display strings.
//
// Classification is a naming heuristic, not a type system: date-times are
// sniffed by pattern and currency-like numbers by the field name.
type ValueFormatter struct {
	currencyMarkers []string
	dateLayout      string
	timeLayout      string
	location        *time.Location
}

type ValueFormatterOption func(*ValueFormatter)

func WithCurrencyMarkers(markers ...string) ValueFormatterOption {
	return func(vf *ValueFormatter) {
		vf.currencyMarkers = markers
	}
}

func WithDateLayout(layout string) ValueFormatterOption {
	return func(vf *ValueFormatter) {
		vf.dateLayout = layout
	}
}

func WithTimeLayout(layout string) ValueFormatterOption {
	return func(vf *ValueFormatter) {
		vf.timeLayout = layout
	}
}

// WithLocation sets the zone used for parsing offset-less date-times and for display
func WithLocation(loc *time.Location) ValueFormatterOption {
	return func(vf *ValueFormatter) {
		if loc != nil {
			vf.location = loc
		}
	}
}

func NewValueFormatter(opts ...ValueFormatterOption) *ValueFormatter {
	vf := &ValueFormatter{
		currencyMarkers: DefaultCurrencyMarkers,
		dateLayout:      DefaultDateLayout,
		timeLayout:      DefaultTimeLayout,
		location:        time.Local,
	}
	for _, opt := range opts {
		opt(vf)
	}
	return vf
}

// Cell resolves the path against the row and formats the result
func (vf *ValueFormatter) Cell(row Row, path HeaderPath) string {
	return vf.Format(path, Resolve(row, path))
}

// Format formats a resolved value of the given header path
func (vf *ValueFormatter) Format(path HeaderPath, value gjson.Result) string {
	if value.Type == gjson.String && dateTimePattern.MatchString(value.Str) {
		if t, ok := vf.parseDateTime(value.Str); ok {
			return t.Format(vf.dateLayout) + " " + t.Format(vf.timeLayout)
		}
	}

	switch {
	case !value.Exists(), value.Type == gjson.Null:
		return ""
	case value.Type == gjson.Number:
		if vf.isCurrency(path) {
			return formatCurrency(value.Num)
		}
		return formatNumber(value.Num)
	case value.IsArray():
		return fmt.Sprintf("[%d items]", len(value.Array()))
	case value.Type == gjson.String:
		return value.Str
	case value.Type == gjson.True:
		return "true"
	case value.Type == gjson.False:
		return "false"
	default:
		return compact(value.Raw)
	}
}

func (vf *ValueFormatter) isCurrency(path HeaderPath) bool {
	segment := HeaderSegment(path)
	for _, marker := range vf.currencyMarkers {
		if marker != "" && strings.Contains(segment, marker) {
			return true
		}
	}
	return false
}

func (vf *ValueFormatter) parseDateTime(s string) (time.Time, bool) {
	for _, layout := range zonedLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.In(vf.location), true
		}
	}
	for _, layout := range localLayouts {
		if t, err := time.ParseInLocation(layout, s, vf.location); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// formatCurrency keeps two decimals, halfway cases are rounded away from zero (0.125 -> 0.13)
func formatCurrency(n float64) string {
	return decimal.NewFromFloat(n).StringFixed(2)
}

func formatNumber(n float64) string {
	return strconv.FormatFloat(n, 'f', -1, 64)
}

// compact strips insignificant whitespace from raw JSON
func compact(raw string) string {
	return string(pretty.Ugly([]byte(raw)))
}
