//
//  Copyright © The BIOM Format Development Team. All rights reserved.
//

package biom

import (
	"fmt"
	"testing"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimestamps(t *testing.T) {
	tests := []struct {
		name  string
		value interface{}
		valid bool
	}{
		{name: "date only", value: "2011-12-19", valid: true},
		{name: "date and minutes", value: "2011-12-19T19:00", valid: true},
		{name: "date and seconds", value: "2011-12-19T19:00:00", valid: true},
		{name: "date and microseconds", value: "2011-12-19T19:00:00.123456", valid: true},
		{name: "single fractional digit", value: "2011-12-19T19:00:00.1", valid: true},
		{name: "too many fractional digits", value: "2011-12-19T19:00:00.1234567", valid: false},
		{name: "empty fraction", value: "2011-12-19T19:00:00.", valid: false},
		{name: "non-digit fraction", value: "2011-12-19T19:00:00.12a", valid: false},
		{name: "fraction without seconds", value: "2011-12-19T19:00.5", valid: false},
		{name: "prose date", value: "19 Dec 2011", valid: false},
		{name: "slashed date", value: "2011/12/19", valid: false},
		{name: "not a string", value: 20111219, valid: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.valid, validTimestamp(tt.value))
		})
	}
}

func TestTableTypes(t *testing.T) {
	tests := []struct {
		name      string
		tableType interface{}
		valid     bool
	}{
		{name: "exact", tableType: "otu table", valid: true},
		{name: "mixed case", tableType: "OTU Table", valid: true},
		{name: "taxon", tableType: "Taxon table", valid: true},
		{name: "unknown", tableType: "sandwich table", valid: false},
		{name: "not a string", tableType: 7, valid: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := validFlatTable()
			doc["type"] = tt.tableType

			rep := New(Config{}).ValidateFlat(doc)
			if tt.valid {
				assert.True(t, rep.Valid)
			} else {
				assert.False(t, rep.Valid)
				assert.Contains(t, rep.Lines[0], "Unknown BIOM type")
			}
		})
	}
}

func TestShapeRule(t *testing.T) {
	tests := []struct {
		name   string
		shape  interface{}
		defect string
	}{
		{
			name:   "float typed dimension",
			shape:  []interface{}{json.Number("2.0"), json.Number("1")},
			defect: "'shape' values do not appear to be integers",
		},
		{
			name:   "string dimension",
			shape:  []interface{}{"2", json.Number("1")},
			defect: "'shape' values do not appear to be integers",
		},
		{
			name:   "wrong arity",
			shape:  []interface{}{json.Number("2")},
			defect: "'shape' values do not appear to be integers",
		},
		{
			name:   "not a sequence",
			shape:  "2x1",
			defect: "'shape' values do not appear to be integers",
		},
		{
			name:   "negative dimension",
			shape:  []interface{}{json.Number("-2"), json.Number("1")},
			defect: "'shape' values cannot be negative",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := validFlatTable()
			doc["shape"] = tt.shape

			rep := New(Config{}).ValidateFlat(doc)
			assert.False(t, rep.Valid)
			assert.Contains(t, rep.Lines, tt.defect)
		})
	}
}

func TestMatrixTypeRule(t *testing.T) {
	doc := validFlatTable()
	doc["matrix_type"] = "diagonal"

	rep := New(Config{}).ValidateFlat(doc)

	assert.False(t, rep.Valid)
	assert.Contains(t, rep.Lines, "Unknown matrix type")
	assert.Contains(t, rep.Lines, "Unknown 'matrix_type'")
}

func TestMatrixElementTypeRule(t *testing.T) {
	doc := validFlatTable()
	doc["matrix_element_type"] = "complex"

	rep := New(Config{}).ValidateFlat(doc)

	assert.False(t, rep.Valid)
	require.Len(t, rep.Lines, 1)
	assert.Equal(t, "Unknown 'matrix_element_type'", rep.Lines[0])
}

func TestGeneratedByRule(t *testing.T) {
	tests := []struct {
		name  string
		value interface{}
		valid bool
	}{
		{name: "populated string", value: "QIIME 1.9.1", valid: true},
		{name: "empty string", value: "", valid: false},
		{name: "null", value: nil, valid: false},
		{name: "false", value: false, valid: false},
		{name: "zero", value: json.Number("0"), valid: false},
		{name: "float zero", value: json.Number("0.0"), valid: false},
		{name: "empty list", value: []interface{}{}, valid: false},
		{name: "empty object", value: map[string]interface{}{}, valid: false},
		{name: "nonzero number", value: json.Number("7"), valid: true},
		{name: "true", value: true, valid: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := validFlatTable()
			doc["generated_by"] = tt.value

			rep := New(Config{}).ValidateFlat(doc)
			if tt.valid {
				assert.True(t, rep.Valid)
			} else {
				assert.False(t, rep.Valid)
				assert.Contains(t, rep.Lines, "'generated_by' is not populated")
			}
		})
	}
}

func TestRecordRules(t *testing.T) {
	tests := []struct {
		name   string
		rows   []interface{}
		defect string
	}{
		{
			name: "missing id",
			rows: []interface{}{
				map[string]interface{}{"metadata": nil},
			},
			defect: "ROW IDX 0 MISSING 'id' FIELD",
		},
		{
			name: "missing metadata",
			rows: []interface{}{
				map[string]interface{}{"id": "r1", "metadata": nil},
				map[string]interface{}{"id": "r2"},
			},
			defect: "ROW IDX 1 MISSING 'metadata' FIELD",
		},
		{
			name: "metadata not an object",
			rows: []interface{}{
				map[string]interface{}{"id": "r1", "metadata": "free text"},
			},
			defect: "metadata is neither null or an object",
		},
		{
			name: "entry not an object",
			rows: []interface{}{"r1"},
			defect: "ROW IDX 0 IS NOT AN OBJECT",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := validFlatTable()
			doc["rows"] = tt.rows
			// Keep the shape cross-check and matrix bounds quiet.
			doc["shape"] = []interface{}{
				json.Number(fmt.Sprintf("%d", len(tt.rows))), json.Number("1"),
			}
			doc["data"] = []interface{}{}

			rep := New(Config{}).ValidateFlat(doc)
			assert.False(t, rep.Valid)
			assert.Contains(t, rep.Lines, tt.defect)
		})
	}
}

func TestRecordRules_EmptyID(t *testing.T) {
	doc := validFlatTable()
	doc["columns"] = []interface{}{
		map[string]interface{}{"id": "", "metadata": nil},
	}

	rep := New(Config{}).ValidateFlat(doc)

	assert.False(t, rep.Valid)
	require.Len(t, rep.Lines, 1)
	assert.Contains(t, rep.Lines[0], "appears empty")
}

func TestRecordRules_StopsAtFirstViolation(t *testing.T) {
	doc := validFlatTable()
	doc["rows"] = []interface{}{
		map[string]interface{}{"id": "r1"},
		map[string]interface{}{"id": "r2"},
	}

	rep := New(Config{}).ValidateFlat(doc)

	assert.False(t, rep.Valid)
	require.Len(t, rep.Lines, 1)
	assert.Equal(t, "ROW IDX 0 MISSING 'metadata' FIELD", rep.Lines[0])
}

func sparseTable(data []interface{}) FlatDocument {
	doc := validFlatTable()
	doc["data"] = data
	return doc
}

func TestSparseData(t *testing.T) {
	tests := []struct {
		name   string
		data   []interface{}
		defect string
	}{
		{
			name:   "bad arity",
			data:   []interface{}{[]interface{}{json.Number("0"), json.Number("0")}},
			defect: "Bad matrix entry idx 0",
		},
		{
			name:   "float typed index",
			data:   []interface{}{[]interface{}{json.Number("0.0"), json.Number("0"), json.Number("5")}},
			defect: "Bad x or y type at idx 0",
		},
		{
			name:   "value of wrong element type",
			data:   []interface{}{[]interface{}{json.Number("0"), json.Number("0"), json.Number("5.5")}},
			defect: "Bad value at idx 0",
		},
		{
			name:   "row index out of bounds",
			data:   []interface{}{[]interface{}{json.Number("2"), json.Number("0"), json.Number("5")}},
			defect: "x out of bounds at idx 0",
		},
		{
			name:   "column index out of bounds",
			data:   []interface{}{[]interface{}{json.Number("0"), json.Number("1"), json.Number("5")}},
			defect: "y out of bounds at idx 0",
		},
		{
			name:   "negative index",
			data:   []interface{}{[]interface{}{json.Number("-1"), json.Number("0"), json.Number("5")}},
			defect: "x out of bounds at idx 0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rep := New(Config{}).ValidateFlat(sparseTable(tt.data))

			assert.False(t, rep.Valid)
			require.Len(t, rep.Lines, 1)
			assert.Contains(t, rep.Lines[0], tt.defect)
		})
	}
}

func TestSparseData_FailFast(t *testing.T) {
	rep := New(Config{}).ValidateFlat(sparseTable([]interface{}{
		[]interface{}{json.Number("9"), json.Number("0"), json.Number("5")},
		[]interface{}{json.Number("0"), json.Number("9"), json.Number("5")},
	}))

	assert.False(t, rep.Valid)
	// Only the first violating entry is reported.
	require.Len(t, rep.Lines, 1)
	assert.Contains(t, rep.Lines[0], "x out of bounds at idx 0")
}

func denseTable(shape []interface{}, data []interface{}) FlatDocument {
	doc := validFlatTable()
	doc["matrix_type"] = "dense"
	doc["shape"] = shape
	doc["rows"] = []interface{}{
		map[string]interface{}{"id": "r1", "metadata": nil},
		map[string]interface{}{"id": "r2", "metadata": nil},
	}
	doc["columns"] = []interface{}{
		map[string]interface{}{"id": "c1", "metadata": nil},
		map[string]interface{}{"id": "c2", "metadata": nil},
	}
	doc["data"] = data
	return doc
}

func TestDenseData(t *testing.T) {
	shape := []interface{}{json.Number("2"), json.Number("2")}

	t.Run("conforming", func(t *testing.T) {
		rep := New(Config{}).ValidateFlat(denseTable(shape, []interface{}{
			[]interface{}{json.Number("1"), json.Number("2")},
			[]interface{}{json.Number("3"), json.Number("4")},
		}))
		assert.True(t, rep.Valid)
	})

	t.Run("short row", func(t *testing.T) {
		rep := New(Config{}).ValidateFlat(denseTable(shape, []interface{}{
			[]interface{}{json.Number("1"), json.Number("2")},
			[]interface{}{json.Number("3")},
		}))
		assert.False(t, rep.Valid)
		require.Len(t, rep.Lines, 1)
		assert.Contains(t, rep.Lines[0], "Incorrect number of cols")
	})

	t.Run("bad datatype", func(t *testing.T) {
		rep := New(Config{}).ValidateFlat(denseTable(shape, []interface{}{
			[]interface{}{json.Number("1"), "two"},
			[]interface{}{json.Number("3"), json.Number("4")},
		}))
		assert.False(t, rep.Valid)
		require.Len(t, rep.Lines, 1)
		assert.Contains(t, rep.Lines[0], "Bad datatype in row")
	})

	t.Run("row count mismatch alone", func(t *testing.T) {
		rep := New(Config{}).ValidateFlat(denseTable(shape, []interface{}{
			[]interface{}{json.Number("1"), json.Number("2")},
		}))
		assert.False(t, rep.Valid)
		assert.Contains(t, rep.Lines, "Incorrect number of rows in matrix")
	})

	t.Run("bad row and row count are separate defects", func(t *testing.T) {
		rep := New(Config{}).ValidateFlat(denseTable(shape, []interface{}{
			[]interface{}{json.Number("1")},
		}))
		assert.False(t, rep.Valid)
		assert.Contains(t, rep.Lines[0], "Incorrect number of cols")
		assert.Contains(t, rep.Lines, "Incorrect number of rows in matrix")
	})
}

func TestElementTypeMatches(t *testing.T) {
	tests := []struct {
		name  string
		dtype ElementType
		value interface{}
		match bool
	}{
		{name: "int accepts integer number", dtype: ElementInt, value: json.Number("5"), match: true},
		{name: "int accepts native int", dtype: ElementInt, value: 5, match: true},
		{name: "int rejects float number", dtype: ElementInt, value: json.Number("5.0"), match: false},
		{name: "int rejects string", dtype: ElementInt, value: "5", match: false},
		{name: "float accepts float number", dtype: ElementFloat, value: json.Number("5.5"), match: true},
		{name: "float accepts native float", dtype: ElementFloat, value: 5.5, match: true},
		{name: "float rejects integer number", dtype: ElementFloat, value: json.Number("5"), match: false},
		{name: "text accepts string", dtype: ElementText, value: "abc", match: true},
		{name: "text rejects number", dtype: ElementText, value: json.Number("5"), match: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.match, tt.dtype.Matches(tt.value))
		})
	}
}

func TestElementTypeNames(t *testing.T) {
	// "str" and "unicode" are distinct names for the same textual kind.
	assert.Equal(t, ElementText, elementTypes["str"])
	assert.Equal(t, ElementText, elementTypes["unicode"])
	assert.Equal(t, ElementInt, elementTypes["int"])
	assert.Equal(t, ElementFloat, elementTypes["float"])
}

func TestFormatURLRule(t *testing.T) {
	doc := validFlatTable()
	doc["format_url"] = "http://example.org"

	rep := New(Config{}).ValidateFlat(doc)

	assert.False(t, rep.Valid)
	assert.Contains(t, rep.Lines, "Invalid 'format_url'")
}

func TestFormatURLRule_Hierarchical(t *testing.T) {
	doc := validHierarchicalTable()
	doc.Attrs["format-url"] = "http://example.org"

	rep := New(Config{}).ValidateHierarchical(doc)

	assert.False(t, rep.Valid)
	// The defect names the encoding's native key spelling.
	assert.Contains(t, rep.Lines, "Invalid 'format-url'")
}
