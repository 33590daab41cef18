//
//  Copyright © The BIOM Format Development Team. All rights reserved.
//

// Package biom implements conformance checking for BIOM (Biological
// Observation Matrix) tables against the format specification defined
// at http://biom-format.org.
//
// The validator inspects an already-parsed document; it never builds
// an in-memory table and never repairs an invalid file. Two physical
// encodings are supported: the JSON encoding, where the whole table is
// one nested key/value structure, and the HDF5 encoding, where data
// lives in named groups and datasets plus root-level attributes.
package biom

import "strings"

// Document provides uniform field access over a parsed BIOM table,
// regardless of its physical encoding.
//
// Field names are given in their canonical underscore spelling (for
// example "format_url"); each implementation translates to its native
// spelling as needed.
type Document interface {
	// Get returns the value stored under the canonical field name,
	// or false when the field is absent. Get never fails.
	Get(name string) (interface{}, bool)

	// Key translates a canonical field name into the encoding's
	// native spelling, for use in report messages.
	Key(name string) string

	// Has reports whether the named group or dataset path exists.
	Has(path string) bool
}

// FlatDocument is the JSON encoding: a mapping from string keys to the
// heterogeneous values produced by a JSON decoder.
type FlatDocument map[string]interface{}

// Get returns the value stored under a top-level key.
func (d FlatDocument) Get(name string) (interface{}, bool) {
	v, ok := d[name]
	return v, ok
}

// Key is the identity for the JSON encoding; its native field names
// already use underscores.
func (d FlatDocument) Key(name string) string { return name }

// Has reports whether a top-level field exists. The JSON encoding has
// no groups or datasets.
func (d FlatDocument) Has(path string) bool {
	_, ok := d[path]
	return ok
}

// HierarchicalDocument is the HDF5 encoding: a flat attribute mapping
// at the root plus named groups containing named datasets. It is
// produced by an external HDF5 reader; the validator only inspects the
// declared structure.
type HierarchicalDocument struct {
	Attrs  map[string]interface{}
	Groups map[string]*Group
}

// Group is a named container of datasets within a HierarchicalDocument.
type Group struct {
	Datasets map[string]*Dataset
}

// Dataset records the declared length of a dataset. Element content is
// never inspected during validation.
type Dataset struct {
	Len int
}

// Get looks up a root attribute. The canonical underscore name is
// translated to the hyphenated HDF5 spelling before lookup.
func (d *HierarchicalDocument) Get(name string) (interface{}, bool) {
	v, ok := d.Attrs[d.Key(name)]
	return v, ok
}

// Key translates a canonical field name to the HDF5 spelling, which
// uses hyphens (e.g. "format_url" becomes "format-url").
func (d *HierarchicalDocument) Key(name string) string {
	return strings.ReplaceAll(name, "_", "-")
}

// Has reports whether a group ("observation") or dataset
// ("observation/ids") path exists.
func (d *HierarchicalDocument) Has(path string) bool {
	if group, rest, found := strings.Cut(path, "/"); found {
		g, ok := d.Groups[group]
		if !ok {
			return false
		}
		_, ok = g.Datasets[rest]
		return ok
	}
	_, ok := d.Groups[path]
	return ok
}

// Dataset returns the dataset at a "group/name" path, or false when
// either path component is missing.
func (d *HierarchicalDocument) Dataset(path string) (*Dataset, bool) {
	group, rest, found := strings.Cut(path, "/")
	if !found {
		return nil, false
	}
	g, ok := d.Groups[group]
	if !ok {
		return nil, false
	}
	ds, ok := g.Datasets[rest]
	return ds, ok
}
