//
//  Copyright © The BIOM Format Development Team. All rights reserved.
//

package biom

import "fmt"

// Report is the outcome of one validation run: an overall verdict plus
// an ordered sequence of diagnostic lines.
//
// A report starts valid and empty. Defects append a line and flip the
// verdict; narrative lines are informational only and are recorded
// when detailed reporting is enabled. Lines are never removed.
type Report struct {
	Valid bool
	Lines []string

	detailed bool
	defects  int
}

// NewReport creates an empty passing report. When detailed is true,
// narrative progress lines are recorded alongside any defects.
func NewReport(detailed bool) *Report {
	return &Report{Valid: true, detailed: detailed}
}

// Defect records a nonconformance and marks the table invalid.
func (r *Report) Defect(msg string) {
	r.Valid = false
	r.defects++
	r.Lines = append(r.Lines, msg)
}

// Defectf records a formatted nonconformance.
func (r *Report) Defectf(format string, args ...interface{}) {
	r.Defect(fmt.Sprintf(format, args...))
}

// Fail marks the table invalid without recording a line.
func (r *Report) Fail() {
	r.Valid = false
}

// Info records a narrative line. Narrative lines never affect the
// verdict and are dropped unless detailed reporting is enabled.
func (r *Report) Info(msg string) {
	if r.detailed {
		r.Lines = append(r.Lines, msg)
	}
}

// Infof records a formatted narrative line.
func (r *Report) Infof(format string, args ...interface{}) {
	r.Info(fmt.Sprintf(format, args...))
}

// DefectCount returns the number of defect lines recorded, excluding
// narrative lines.
func (r *Report) DefectCount() int {
	return r.defects
}
