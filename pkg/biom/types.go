//
//  Copyright © The BIOM Format Development Team. All rights reserved.
//

package biom

import (
	json "github.com/goccy/go-json"
)

// FormatURL is the fixed specification URL every table must declare.
const FormatURL = "http://biom-format.org"

// DefaultFormatVersion is the JSON format version validated against
// when no explicit version is configured.
const DefaultFormatVersion = "1.0.0"

// tableTypes is the set of recognized table kinds, matched
// case-insensitively against the declared 'type'.
var tableTypes = map[string]struct{}{
	"otu table":        {},
	"pathway table":    {},
	"function table":   {},
	"ortholog table":   {},
	"gene table":       {},
	"metabolite table": {},
	"taxon table":      {},
}

// matrixTypes is the set of recognized matrix layouts.
var matrixTypes = map[string]struct{}{
	"sparse": {},
	"dense":  {},
}

// hdf5FormatVersions is the set of accepted (major, minor) version
// pairs for the HDF5 encoding.
var hdf5FormatVersions = map[[2]int]struct{}{
	{2, 0}: {},
}

// ElementType classifies the scalar values a matrix may contain.
type ElementType int

// The recognized element types.
const (
	// ElementInt matches integer-typed scalars.
	ElementInt ElementType = iota
	// ElementFloat matches floating point scalars.
	ElementFloat
	// ElementText matches textual scalars. The JSON encoding declares
	// these as either "str" or "unicode"; both resolve here.
	ElementText
)

// elementTypes maps the declared 'matrix_element_type' names to their
// scalar classifications.
var elementTypes = map[string]ElementType{
	"int":     ElementInt,
	"float":   ElementFloat,
	"str":     ElementText,
	"unicode": ElementText,
}

// Matches reports whether a decoded scalar value belongs to the
// element type.
func (t ElementType) Matches(v interface{}) bool {
	switch t {
	case ElementInt:
		return isInt(v)
	case ElementFloat:
		return isFloat(v)
	case ElementText:
		_, ok := v.(string)
		return ok
	}
	return false
}

// isInt reports whether a value is integer-typed, not merely
// integer-valued: json.Number("5") qualifies, json.Number("5.0") does
// not.
func isInt(v interface{}) bool {
	switch n := v.(type) {
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return true
	case json.Number:
		_, err := n.Int64()
		return err == nil
	}
	return false
}

// isFloat reports whether a value is float-typed. Integer-typed values
// do not qualify, mirroring the distinction the JSON grammar makes
// between 5 and 5.0.
func isFloat(v interface{}) bool {
	switch n := v.(type) {
	case float32, float64:
		return true
	case json.Number:
		if _, err := n.Int64(); err == nil {
			return false
		}
		_, err := n.Float64()
		return err == nil
	}
	return false
}

// intVal extracts an int from an integer-typed value.
func intVal(v interface{}) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int32:
		return int(n), true
	case int64:
		return int(n), true
	case json.Number:
		i, err := n.Int64()
		if err != nil {
			return 0, false
		}
		return int(i), true
	}
	return 0, false
}

// isFalsy reports whether a value is unpopulated: nil, false, an empty
// string, numeric zero, or an empty sequence or mapping.
func isFalsy(v interface{}) bool {
	switch n := v.(type) {
	case nil:
		return true
	case bool:
		return !n
	case string:
		return n == ""
	case json.Number:
		f, err := n.Float64()
		return err == nil && f == 0
	case int:
		return n == 0
	case int64:
		return n == 0
	case float64:
		return n == 0
	case []interface{}:
		return len(n) == 0
	case map[string]interface{}:
		return len(n) == 0
	}
	return false
}

// asSlice normalizes sequence values from either encoding into a
// uniform slice. JSON decoding yields []interface{}; hand-built HDF5
// attribute trees commonly carry []int.
func asSlice(v interface{}) ([]interface{}, bool) {
	switch s := v.(type) {
	case []interface{}:
		return s, true
	case []int:
		out := make([]interface{}, len(s))
		for i, n := range s {
			out[i] = n
		}
		return out, true
	}
	return nil, false
}
