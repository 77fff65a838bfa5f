package core

import (
	"testing"
	"time"

	"gotest.tools/assert"
)

func newTestTable(t *testing.T, numOfRows int) *Table {
	input := `{"data":{"list":{"items":[`
	for i := 0; i < numOfRows; i++ {
		if i > 0 {
			input += ","
		}
		input += `{"id":` + string(rune('0'+i)) + `,"detail":{"Amount":` + string(rune('0'+i)) + `}}`
	}
	input += `]}}}`

	table, err := Flatten([]byte(input), NewValueFormatter(WithLocation(time.UTC)))
	assert.NilError(t, err)
	return table
}

func expectedRecords(from, to int) []Record {
	var records []Record
	for i := from; i < to; i++ {
		records = append(records, Record{string(rune('0' + i)), string(rune('0'+i)) + ".00"})
	}
	return records
}

func TestTable_Records(t *testing.T) {
	numOfRows := 10
	table := newTestTable(t, numOfRows)

	assert.DeepEqual(t, table.Header(), Header{"id", "detail.Amount"})
	assert.Equal(t, table.Len(), numOfRows)

	type testCase struct {
		name            string
		from            int
		to              int
		expectedRecords []Record
		expectedError   error
	}

	testCases := []testCase{
		{
			name:            "get all",
			from:            0,
			to:              -1,
			expectedRecords: expectedRecords(0, numOfRows),
		},
		{
			name:            "get basic range",
			from:            0,
			to:              3,
			expectedRecords: expectedRecords(0, 3),
		},
		{
			name:            "get last 2",
			from:            -3,
			to:              -1,
			expectedRecords: expectedRecords(numOfRows-2, numOfRows),
		},
		{
			name:            "get only one",
			from:            0,
			to:              1,
			expectedRecords: expectedRecords(0, 1),
		},
		{
			name:            "range past the end is clamped",
			from:            8,
			to:              100,
			expectedRecords: expectedRecords(8, numOfRows),
		},
		{
			name:          "invalid range",
			from:          5,
			to:            1,
			expectedError: ErrInvalidRange(5, 1),
		},
		{
			name:          "invalid range (even if 10 can be higher than -1, its undefined and should fail)",
			from:          -5,
			to:            10,
			expectedError: ErrInvalidRange(-5, 10),
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			records, err := table.Records(tc.from, tc.to)
			if tc.expectedError != nil {
				assert.Error(t, err, tc.expectedError.Error())
				return
			}

			assert.NilError(t, err)
			assert.DeepEqual(t, records, tc.expectedRecords)
		})
	}
}

func TestTable_Map(t *testing.T) {
	table := newTestTable(t, 2)

	m, err := table.Map(0, -1)
	assert.NilError(t, err)
	assert.DeepEqual(t, m, []map[HeaderPath]string{
		{"id": "0", "detail.Amount": "0.00"},
		{"id": "1", "detail.Amount": "1.00"},
	})
}

func TestTable_IsEmpty(t *testing.T) {
	var nilTable *Table
	assert.Assert(t, nilTable.IsEmpty())
	assert.Assert(t, NewTable(nil, nil).IsEmpty())
	assert.Assert(t, !newTestTable(t, 1).IsEmpty())
}

type recordingFormatter struct {
	columns []Column
	records []Record
	opts    *FormatterOptions
}

func (f *recordingFormatter) Name() string { return "recording" }

func (f *recordingFormatter) Format(columns []Column, records []Record, opts *FormatterOptions) ([]byte, error) {
	f.columns, f.records, f.opts = columns, records, opts
	return []byte("ok"), nil
}

func TestTable_Format(t *testing.T) {
	table := newTestTable(t, 5)
	f := new(recordingFormatter)

	out, err := table.Format(f, -3, -1)
	assert.NilError(t, err)
	assert.Equal(t, string(out), "ok")
	assert.Equal(t, f.opts.ChunkStart, 3)
	assert.DeepEqual(t, f.records, expectedRecords(3, 5))
	assert.DeepEqual(t, f.columns, []Column{
		{Key: "id", Name: "id"},
		{Key: "detail.Amount", Name: "Amount"},
	})
}
