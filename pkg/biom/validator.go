//
//  Copyright © The BIOM Format Development Team. All rights reserved.
//

package biom

// Config carries the per-run validation settings.
type Config struct {
	// FormatVersion is the exact 'format' string expected from JSON
	// tables. Defaults to DefaultFormatVersion.
	FormatVersion string

	// Detailed enables narrative progress lines in the report.
	Detailed bool
}

// Validator checks parsed BIOM documents for conformance with the
// format specification.
//
// A Validator holds no mutable state across runs; each run is a pure
// function of (document, configuration), so a single Validator is safe
// for concurrent use on independent documents.
type Validator struct {
	cfg Config
}

// New creates a Validator with the provided configuration.
func New(cfg Config) *Validator {
	if cfg.FormatVersion == "" {
		cfg.FormatVersion = DefaultFormatVersion
	}
	return &Validator{cfg: cfg}
}

// Validate runs the rule set matching the document's encoding.
func (v *Validator) Validate(doc Document) *Report {
	switch d := doc.(type) {
	case FlatDocument:
		return v.ValidateFlat(d)
	case *HierarchicalDocument:
		return v.ValidateHierarchical(d)
	}

	rep := NewReport(v.cfg.Detailed)
	rep.Defectf("Unknown document encoding: %T", doc)
	return rep
}

// ValidateFlat checks a JSON table. A missing field and a failing rule
// are distinct defects, and every rule runs regardless of earlier
// failures so the report collects all defects in one pass.
func (v *Validator) ValidateFlat(doc FlatDocument) *Report {
	rep := NewReport(v.cfg.Detailed)
	rep.Info("Validating BIOM table...")

	for _, rule := range v.flatRules() {
		if _, ok := doc.Get(rule.name); !ok {
			rep.Defectf("Missing field: '%s'", rule.name)
			continue
		}
		rep.Infof("Validating '%s'...", rule.name)
		rule.check(doc, rep)
	}

	v.crossCheckFlatShape(doc, rep)
	return rep
}

// crossCheckFlatShape verifies the declared shape against the actual
// row and column counts. Each mismatch is its own defect.
func (v *Validator) crossCheckFlatShape(doc FlatDocument, rep *Report) {
	if _, ok := doc.Get("shape"); !ok {
		return
	}
	rep.Info("Validating 'shape' versus number of rows and columns...")

	nRows, nCols, ok := v.shape(doc)
	if !ok {
		// The shape rule already reported the malformed value.
		return
	}

	if value, ok := doc.Get("rows"); ok {
		if rows, ok := asSlice(value); ok && len(rows) != nRows {
			rep.Defect("Number of rows in 'rows' is not equal to 'shape'")
		}
	}
	if value, ok := doc.Get("columns"); ok {
		if columns, ok := asSlice(value); ok && len(columns) != nCols {
			rep.Defect("Number of columns in 'columns' is not equal to 'shape'")
		}
	}
}

// requiredGroups and requiredDatasets are the fixed structural paths
// every HDF5 table must carry. Their presence is checked; dataset
// content is not.
var requiredGroups = []string{"observation", "sample"}

var requiredDatasets = []string{
	"observation/ids",
	"observation/data",
	"observation/indices",
	"observation/indptr",
	"sample/ids",
	"sample/data",
	"sample/indices",
	"sample/indptr",
}

// ValidateHierarchical checks an HDF5 table: required root attributes,
// required groups and datasets, and the declared shape against the
// lengths of the ID datasets. Like ValidateFlat, it collects all
// defects in one pass.
func (v *Validator) ValidateHierarchical(doc *HierarchicalDocument) *Report {
	rep := NewReport(v.cfg.Detailed)
	rep.Info("Validating BIOM table...")

	for _, rule := range v.hdf5Rules() {
		key := doc.Key(rule.name)
		if _, ok := doc.Get(rule.name); !ok {
			rep.Defectf("Missing attribute: '%s'", key)
			continue
		}
		rep.Infof("Validating '%s'...", key)
		rule.check(doc, rep)
	}

	// Missing structure flips the verdict; the path is only named in
	// detailed reports.
	for _, group := range requiredGroups {
		if !doc.Has(group) {
			rep.Fail()
			rep.Infof("Missing group: %s", group)
		}
	}
	for _, dataset := range requiredDatasets {
		if !doc.Has(dataset) {
			rep.Fail()
			rep.Infof("Missing dataset: %s", dataset)
		}
	}

	v.crossCheckIDLengths(doc, rep)
	return rep
}

// crossCheckIDLengths verifies the declared shape against the lengths
// of the observation and sample ID datasets. Each mismatch is its own
// defect.
func (v *Validator) crossCheckIDLengths(doc *HierarchicalDocument, rep *Report) {
	if _, ok := doc.Get("shape"); !ok {
		return
	}
	rep.Info("Validating 'shape' versus number of samples and observations...")

	nObs, nSamp, ok := v.shape(doc)
	if !ok {
		// The shape rule already reported the malformed value.
		return
	}

	obsIDs, ok := doc.Dataset("observation/ids")
	if !ok {
		rep.Defect("observation/ids does not exist, cannot validate shape")
	} else if obsIDs.Len != nObs {
		rep.Defect("Number of observation IDs is not equal to the described shape")
	}

	sampIDs, ok := doc.Dataset("sample/ids")
	if !ok {
		rep.Defect("sample/ids does not exist, cannot validate shape")
	} else if sampIDs.Len != nSamp {
		rep.Defect("Number of sample IDs is not equal to the described shape")
	}
}
