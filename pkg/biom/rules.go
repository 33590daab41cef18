//
//  Copyright © The BIOM Format Development Team. All rights reserved.
//

package biom

import (
	"strings"
	"time"
)

// fieldRule pairs a canonical field name with its validation method.
// Rule tables are ordered; report lines follow table order.
type fieldRule struct {
	name  string
	check func(doc Document, rep *Report)
}

// flatRules returns the required-field table for the JSON encoding.
func (v *Validator) flatRules() []fieldRule {
	return []fieldRule{
		{"format", v.checkFormat},
		{"format_url", v.checkFormatURL},
		{"type", v.checkType},
		{"rows", v.checkRows},
		{"columns", v.checkColumns},
		{"shape", v.checkShape},
		{"data", v.checkData},
		{"matrix_type", v.checkMatrixType},
		{"matrix_element_type", v.checkMatrixElementType},
		{"generated_by", v.checkGeneratedBy},
		{"id", v.checkNullableID},
		{"date", v.checkDate},
	}
}

// hdf5Rules returns the required-attribute table for the HDF5
// encoding. Names are canonical; the document translates them to the
// hyphenated HDF5 spelling.
func (v *Validator) hdf5Rules() []fieldRule {
	return []fieldRule{
		{"format_url", v.checkFormatURL},
		{"format_version", v.checkFormatVersion},
		{"type", v.checkType},
		{"shape", v.checkShape},
		{"nnz", v.checkNNZ},
		{"generated_by", v.checkGeneratedBy},
		{"id", v.checkNullableID},
		{"creation_date", v.checkCreationDate},
	}
}

// checkFormat requires the declared format to equal the configured
// version string. JSON encoding only.
func (v *Validator) checkFormat(doc Document, rep *Report) {
	value, _ := doc.Get("format")
	if value != v.cfg.FormatVersion {
		rep.Defectf("Invalid format '%v', must be '%s'", value, v.cfg.FormatVersion)
	}
}

// checkFormatVersion requires the declared (major, minor) version
// pair to be a known HDF5 format version.
func (v *Validator) checkFormatVersion(doc Document, rep *Report) {
	value, _ := doc.Get("format_version")
	major, minor, ok := versionPair(value)
	if ok {
		_, ok = hdf5FormatVersions[[2]int{major, minor}]
	}
	if !ok {
		rep.Defectf("Invalid format version '%v'", value)
	}
}

// checkFormatURL requires the declared URL to equal the specification
// URL exactly.
func (v *Validator) checkFormatURL(doc Document, rep *Report) {
	key := doc.Key("format_url")
	value, _ := doc.Get("format_url")
	if value != FormatURL {
		rep.Defectf("Invalid '%s'", key)
	}
}

// checkType requires membership in the recognized table kinds,
// matched case-insensitively.
func (v *Validator) checkType(doc Document, rep *Report) {
	value, _ := doc.Get("type")
	s, ok := value.(string)
	if !ok {
		rep.Defectf("Unknown BIOM type: %v", value)
		return
	}
	if _, ok := tableTypes[strings.ToLower(s)]; !ok {
		rep.Defectf("Unknown BIOM type: %s", s)
	}
}

// checkShape requires a pair of non-negative dimensions, both
// integer-typed rather than merely integer-valued.
func (v *Validator) checkShape(doc Document, rep *Report) {
	rows, cols, ok := v.shape(doc)
	if !ok {
		rep.Defect("'shape' values do not appear to be integers")
		return
	}
	if rows < 0 || cols < 0 {
		rep.Defect("'shape' values cannot be negative")
	}
}

// checkNNZ requires a non-negative integer count of non-zero entries.
// HDF5 encoding only.
func (v *Validator) checkNNZ(doc Document, rep *Report) {
	value, _ := doc.Get("nnz")
	n, ok := intVal(value)
	if !ok {
		rep.Defect("nnz is not an integer!")
		return
	}
	if n < 0 {
		rep.Defect("nnz is negative!")
	}
}

// checkMatrixType requires membership in the recognized matrix
// layouts. JSON encoding only.
func (v *Validator) checkMatrixType(doc Document, rep *Report) {
	value, _ := doc.Get("matrix_type")
	s, ok := value.(string)
	if ok {
		_, ok = matrixTypes[s]
	}
	if !ok {
		rep.Defect("Unknown 'matrix_type'")
	}
}

// checkMatrixElementType requires membership in the recognized element
// types. JSON encoding only.
func (v *Validator) checkMatrixElementType(doc Document, rep *Report) {
	value, _ := doc.Get("matrix_element_type")
	s, ok := value.(string)
	if ok {
		_, ok = elementTypes[s]
	}
	if !ok {
		rep.Defect("Unknown 'matrix_element_type'")
	}
}

// checkGeneratedBy requires the field to be populated: null, false,
// zero, and empty values all fail.
func (v *Validator) checkGeneratedBy(doc Document, rep *Report) {
	value, _ := doc.Get("generated_by")
	if isFalsy(value) {
		rep.Defect("'generated_by' is not populated")
	}
}

// checkNullableID always passes; the table id is nullable and its
// content is unconstrained.
func (v *Validator) checkNullableID(_ Document, _ *Report) {}

// isoLayouts are the accepted ISO 8601 timestamp shapes, tried in
// order. A date alone is acceptable; a 'T' separates date and time.
var isoLayouts = []string{
	"2006-01-02",
	"2006-01-02T15:04",
	"2006-01-02T15:04:05",
}

func validTimestamp(value interface{}) bool {
	s, ok := value.(string)
	if !ok {
		return false
	}

	// time.Parse accepts fractional seconds of any length, so the
	// fraction is checked by hand: one to six digits, after a timestamp
	// carrying full seconds.
	if base, frac, found := strings.Cut(s, "."); found {
		if len(frac) < 1 || len(frac) > 6 || strings.Trim(frac, "0123456789") != "" {
			return false
		}
		_, err := time.Parse("2006-01-02T15:04:05", base)
		return err == nil
	}

	for _, layout := range isoLayouts {
		if _, err := time.Parse(layout, s); err == nil {
			return true
		}
	}
	return false
}

// checkDate requires the 'date' field to parse as ISO 8601 (for
// example 2011-12-19T19:00:00). JSON encoding only.
func (v *Validator) checkDate(doc Document, rep *Report) {
	value, _ := doc.Get("date")
	if !validTimestamp(value) {
		rep.Defect("Timestamp does not appear to be ISO 8601")
	}
}

// checkCreationDate is the HDF5 counterpart of checkDate, reading the
// 'creation-date' attribute.
func (v *Validator) checkCreationDate(doc Document, rep *Report) {
	value, _ := doc.Get("creation_date")
	if !validTimestamp(value) {
		rep.Defect("Timestamp does not appear to be ISO 8601")
	}
}

// checkRows requires every row record to carry a non-empty id and a
// null-or-object metadata field. The first violation stops the scan.
func (v *Validator) checkRows(doc Document, rep *Report) {
	v.checkRecords(doc, rep, "rows", "ROW")
}

// checkColumns applies the row record rule to columns.
func (v *Validator) checkColumns(doc Document, rep *Report) {
	v.checkRecords(doc, rep, "columns", "COL")
}

func (v *Validator) checkRecords(doc Document, rep *Report, field, label string) {
	value, _ := doc.Get(field)
	records, ok := asSlice(value)
	if !ok {
		rep.Defectf("'%s' is not a list", field)
		return
	}

	for idx, entry := range records {
		record, ok := entry.(map[string]interface{})
		if !ok {
			rep.Defectf("%s IDX %d IS NOT AN OBJECT", label, idx)
			return
		}

		id, ok := record["id"]
		if !ok {
			rep.Defectf("%s IDX %d MISSING 'id' FIELD", label, idx)
			return
		}
		if id == nil || id == "" {
			rep.Defectf("'id' in %v appears empty", record)
			return
		}

		metadata, ok := record["metadata"]
		if !ok {
			rep.Defectf("%s IDX %d MISSING 'metadata' FIELD", label, idx)
			return
		}
		if metadata != nil {
			if _, isMap := metadata.(map[string]interface{}); !isMap {
				rep.Defect("metadata is neither null or an object")
				return
			}
		}
	}
}

// checkData dispatches to the sparse or dense matrix check based on
// the declared matrix type. JSON encoding only.
func (v *Validator) checkData(doc Document, rep *Report) {
	value, ok := doc.Get("matrix_type")
	if !ok {
		// The driver already reported the missing field.
		return
	}
	mtype, _ := value.(string)

	switch strings.ToLower(mtype) {
	case "sparse":
		v.checkSparseData(doc, rep)
	case "dense":
		v.checkDenseData(doc, rep)
	default:
		rep.Defect("Unknown matrix type")
	}
}

// checkSparseData requires every entry to be a (row, col, value)
// triple with integer-typed indices inside the declared shape and a
// value matching the declared element type. The scan stops at the
// first violation to keep reports short.
func (v *Validator) checkSparseData(doc Document, rep *Report) {
	dtype, dok := v.elementType(doc)
	nRows, nCols, sok := v.shape(doc)
	if !dok || !sok {
		// Reported by the element type and shape rules.
		return
	}

	value, _ := doc.Get("data")
	entries, ok := asSlice(value)
	if !ok {
		rep.Defect("'data' is not a list")
		return
	}

	for idx, entry := range entries {
		coord, ok := asSlice(entry)
		if !ok || len(coord) != 3 {
			rep.Defectf("Bad matrix entry idx %d: %v", idx, entry)
			return
		}

		x, xok := intVal(coord[0])
		y, yok := intVal(coord[1])
		if !xok || !yok {
			rep.Defectf("Bad x or y type at idx %d: %v", idx, entry)
			return
		}

		if !dtype.Matches(coord[2]) {
			rep.Defectf("Bad value at idx %d: %v", idx, entry)
			return
		}

		if x < 0 || x > nRows-1 {
			rep.Defectf("x out of bounds at idx %d: %v", idx, entry)
			return
		}
		if y < 0 || y > nCols-1 {
			rep.Defectf("y out of bounds at idx %d: %v", idx, entry)
			return
		}
	}
}

// checkDenseData requires every row to hold exactly the declared
// number of columns with values of the declared element type. The row
// scan stops at the first bad row; the row-count check runs either way
// and yields its own defect.
func (v *Validator) checkDenseData(doc Document, rep *Report) {
	dtype, dok := v.elementType(doc)
	nRows, nCols, sok := v.shape(doc)
	if !dok || !sok {
		// Reported by the element type and shape rules.
		return
	}

	value, _ := doc.Get("data")
	rows, ok := asSlice(value)
	if !ok {
		rep.Defect("'data' is not a list")
		return
	}

	for _, entry := range rows {
		row, ok := asSlice(entry)
		if !ok || len(row) != nCols {
			rep.Defectf("Incorrect number of cols: %v", entry)
			break
		}
		if !rowMatches(row, dtype) {
			rep.Defectf("Bad datatype in row: %v", entry)
			break
		}
	}

	if len(rows) != nRows {
		rep.Defect("Incorrect number of rows in matrix")
	}
}

func rowMatches(row []interface{}, dtype ElementType) bool {
	for _, v := range row {
		if !dtype.Matches(v) {
			return false
		}
	}
	return true
}

// elementType resolves the declared matrix element type to its scalar
// classification.
func (v *Validator) elementType(doc Document) (ElementType, bool) {
	value, _ := doc.Get("matrix_element_type")
	s, ok := value.(string)
	if !ok {
		return 0, false
	}
	t, ok := elementTypes[s]
	return t, ok
}

// shape extracts the declared (rows, cols) pair, reporting false when
// the value is not a pair of integer-typed dimensions.
func (v *Validator) shape(doc Document) (int, int, bool) {
	value, _ := doc.Get("shape")
	dims, ok := asSlice(value)
	if !ok || len(dims) != 2 {
		return 0, 0, false
	}
	rows, ok := intVal(dims[0])
	if !ok {
		return 0, 0, false
	}
	cols, ok := intVal(dims[1])
	if !ok {
		return 0, 0, false
	}
	return rows, cols, true
}

// versionPair extracts a (major, minor) pair from a format-version
// attribute.
func versionPair(v interface{}) (int, int, bool) {
	pair, ok := asSlice(v)
	if !ok || len(pair) != 2 {
		return 0, 0, false
	}
	major, ok := intVal(pair[0])
	if !ok {
		return 0, 0, false
	}
	minor, ok := intVal(pair[1])
	if !ok {
		return 0, 0, false
	}
	return major, minor, true
}
