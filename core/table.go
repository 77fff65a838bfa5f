package core

import (
	"fmt"
)

var ErrInvalidRange = func(from, to int) error { return fmt.Errorf("invalid selection range: %d ... %d", from, to) }

// Table is a read-only flattened snapshot of a single response.
// Cells are resolved on demand and never cached.
type Table struct {
	header    Header
	rows      []Row
	formatter *ValueFormatter
}

// NewTable derives the header of rows and returns the table.
// A nil formatter means the default one.
func NewTable(rows []Row, formatter *ValueFormatter) *Table {
	if formatter == nil {
		formatter = NewValueFormatter()
	}

	return &Table{
		header:    DeriveHeaders(rows),
		rows:      rows,
		formatter: formatter,
	}
}

func (t *Table) Header() Header {
	return t.header
}

func (t *Table) Columns() []Column {
	return t.header.Columns()
}

func (t *Table) Len() int {
	return len(t.rows)
}

// IsEmpty reports whether there is nothing to tabulate
func (t *Table) IsEmpty() bool {
	return t == nil || len(t.rows) < 1 || len(t.header) < 1
}

// Record formats all cells of a single row in header order
func (t *Table) Record(row Row) Record {
	record := make(Record, len(t.header))
	for i, path := range t.header {
		record[i] = t.formatter.Cell(row, path)
	}
	return record
}

func (t *Table) Rows(from, to int) ([]Row, error) {
	rows, _, _, err := t.getRows(from, to)
	return rows, err
}

// Records returns formatted records of the selected row range
func (t *Table) Records(from, to int) ([]Record, error) {
	rows, _, _, err := t.getRows(from, to)
	if err != nil {
		return nil, err
	}

	records := make([]Record, len(rows))
	for i, row := range rows {
		records[i] = t.Record(row)
	}
	return records, nil
}

// Map returns the selected records as column key to cell mappings
func (t *Table) Map(from, to int) ([]map[HeaderPath]string, error) {
	records, err := t.Records(from, to)
	if err != nil {
		return nil, err
	}

	out := make([]map[HeaderPath]string, len(records))
	for i, rec := range records {
		m := make(map[HeaderPath]string, len(rec))
		for j, cell := range rec {
			m[t.header[j]] = cell
		}
		out[i] = m
	}
	return out, nil
}

func (t *Table) Format(formatter Formatter, from, to int) ([]byte, error) {
	rows, fromAdjusted, _, err := t.getRows(from, to)
	if err != nil {
		return nil, fmt.Errorf("t.getRows: %w", err)
	}

	records := make([]Record, len(rows))
	for i, row := range rows {
		records[i] = t.Record(row)
	}

	opts := &FormatterOptions{
		ChunkStart: fromAdjusted,
	}

	f, err := formatter.Format(t.Columns(), records, opts)
	if err != nil {
		return nil, fmt.Errorf("formatter.Format: %w", err)
	}

	return f, nil
}

// getRows returns the row range and adjusted from-to values.
// Negative indexes count from the end, -1 being one past the last row.
func (t *Table) getRows(from, to int) (rows []Row, rangeFrom, rangeTo int, err error) {
	// validation
	if (from < 0 && to < 0) || (from >= 0 && to >= 0) {
		if from > to {
			return nil, 0, 0, ErrInvalidRange(from, to)
		}
	}
	// undefined -> error
	if from < 0 && to >= 0 {
		return nil, 0, 0, ErrInvalidRange(from, to)
	}

	// calculate range
	length := len(t.rows)
	if from < 0 {
		from += length + 1
		if from < 0 {
			from = 0
		}
	}
	if to < 0 {
		to += length + 1
		if to < 0 {
			to = 0
		}
	}

	if from > length {
		from = length
	}
	if to > length {
		to = length
	}
	if from > to {
		from = to
	}

	return t.rows[from:to], from, to, nil
}
