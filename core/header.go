package core

import (
	"strings"

	"github.com/tidwall/gjson"
)

const pathSeparator = "."

// DeriveHeaders returns the union of leaf paths of all rows in first-seen order.
// Nested objects are flattened into dotted paths, arrays stay a single column.
func DeriveHeaders(rows []Row) Header {
	seen := make(map[HeaderPath]struct{})
	var header Header

	var walk func(obj gjson.Result, prefix string)
	walk = func(obj gjson.Result, prefix string) {
		obj.ForEach(func(key, value gjson.Result) bool {
			path := prefix + key.String()
			if value.IsObject() {
				walk(value, path+pathSeparator)
				return true
			}

			if _, ok := seen[HeaderPath(path)]; !ok {
				seen[HeaderPath(path)] = struct{}{}
				header = append(header, HeaderPath(path))
			}
			return true
		})
	}

	for _, row := range rows {
		walk(row, "")
	}

	return header
}

// Resolve descends the row along path segments.
// The returned value does not exist if any segment is missing
// or an intermediate value is not an object.
func Resolve(row Row, path HeaderPath) gjson.Result {
	current := row
	for _, segment := range strings.Split(string(path), pathSeparator) {
		if !current.IsObject() {
			return gjson.Result{}
		}
		current = child(current, segment)
		if !current.Exists() {
			return gjson.Result{}
		}
	}
	return current
}

// child looks up a direct member by its literal key.
// Keys are not interpreted as gjson path syntax.
func child(obj gjson.Result, key string) gjson.Result {
	var out gjson.Result
	obj.ForEach(func(k, v gjson.Result) bool {
		if k.String() == key {
			out = v
			return false
		}
		return true
	})
	return out
}

// HeaderSegment returns the last segment of a header path
func HeaderSegment(path HeaderPath) string {
	p := string(path)
	if i := strings.LastIndex(p, pathSeparator); i >= 0 {
		return p[i+1:]
	}
	return p
}

// DisplayName derives a column label from a header path:
// the last segment with a space before every run of capital letters.
//
//	dimension_customer.PostalCode -> Postal Code
func DisplayName(path HeaderPath) string {
	segment := HeaderSegment(path)

	var b strings.Builder
	prevUpper := false
	for _, r := range segment {
		upper := r >= 'A' && r <= 'Z'
		if upper && !prevUpper {
			b.WriteByte(' ')
		}
		b.WriteRune(r)
		prevUpper = upper
	}

	return strings.TrimSpace(b.String())
}
