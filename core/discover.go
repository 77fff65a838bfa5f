package core

import (
	"github.com/tidwall/gjson"
)

// DiscoverRows locates the rows to tabulate inside the "data" value of a response.
//
// Values are visited depth first in document order. The first of the following wins:
// a connection object with a non-empty "items" array of objects, a non-empty array
// of objects, or a match anywhere in a nested object. If no array is found, the first
// non-empty object directly under data is wrapped as a single row.
func DiscoverRows(data gjson.Result) ([]Row, error) {
	if !data.IsObject() {
		return nil, ErrNoTabularData
	}

	if rows, ok := findRowArray(data); ok {
		return rows, nil
	}

	var single []Row
	data.ForEach(func(_, value gjson.Result) bool {
		if isNonEmptyObject(value) {
			single = []Row{value}
			return false
		}
		return true
	})
	if single != nil {
		return single, nil
	}

	return nil, ErrNoTabularData
}

func findRowArray(obj gjson.Result) (rows []Row, found bool) {
	obj.ForEach(func(_, value gjson.Result) bool {
		if value.IsObject() {
			if items := value.Get("items"); isObjectArray(items) {
				rows, found = items.Array(), true
				return false
			}
		}

		if isObjectArray(value) {
			rows, found = value.Array(), true
			return false
		}

		if value.IsObject() {
			rows, found = findRowArray(value)
			return !found
		}

		return true
	})

	return rows, found
}

// isObjectArray reports whether value is a non-empty array holding only objects
func isObjectArray(value gjson.Result) bool {
	if !value.IsArray() {
		return false
	}

	elems := value.Array()
	if len(elems) < 1 {
		return false
	}
	for _, e := range elems {
		if !e.IsObject() {
			return false
		}
	}
	return true
}

func isNonEmptyObject(value gjson.Result) bool {
	if !value.IsObject() {
		return false
	}

	empty := true
	value.ForEach(func(_, _ gjson.Result) bool {
		empty = false
		return false
	})
	return !empty
}
