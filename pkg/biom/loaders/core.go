//
//  Copyright © The BIOM Format Development Team. All rights reserved.
//

// Package loaders turns raw BIOM files into the parsed documents the
// validator inspects.
//
// A failure here is an environment error, distinct from a table
// defect: the validator is never invoked and no report is produced.
package loaders

import (
	"io"
	"os"

	json "github.com/goccy/go-json"
	"github.com/pkg/errors"

	"github.com/biocore/biomcheck/pkg/biom"
)

// Encoding identifies the physical encoding of a BIOM file. Which
// encoding a file uses is the caller's decision; nothing here sniffs
// file contents.
type Encoding string

// The recognized encodings.
const (
	EncodingJSON Encoding = "json"
	EncodingHDF5 Encoding = "hdf5"
)

// ErrHDF5NotSupported is returned when HDF5 validation is requested
// but no HDF5 reader is available in this environment.
var ErrHDF5NotSupported = errors.New("no HDF5 reader is available, can only validate JSON tables")

// Open reads and parses the BIOM file at path with the declared
// encoding.
func Open(path string, encoding Encoding) (biom.Document, error) {
	f, err := os.Open(path) // #nosec G304 -- CLI tool intentionally reads user-provided paths
	if err != nil {
		return nil, errors.Wrap(err, "opening table")
	}
	defer func() { _ = f.Close() }()

	return Load(f, encoding)
}

// Load parses an already-open BIOM table with the declared encoding.
//
// HDF5 tables require a native reader this module does not carry, so
// requesting EncodingHDF5 always fails with ErrHDF5NotSupported;
// callers holding an already-parsed *biom.HierarchicalDocument can
// still validate it directly.
func Load(r io.Reader, encoding Encoding) (biom.Document, error) {
	switch encoding {
	case EncodingJSON:
		return loadJSON(r)
	case EncodingHDF5:
		return nil, ErrHDF5NotSupported
	}
	return nil, errors.Errorf("unsupported encoding %q", encoding)
}

// loadJSON decodes a JSON table into a FlatDocument. Numbers are kept
// as json.Number so the validator can tell integer-typed fields from
// merely integer-valued ones.
func loadJSON(r io.Reader) (biom.FlatDocument, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	var doc map[string]interface{}
	if err := dec.Decode(&doc); err != nil {
		return nil, errors.Wrap(err, "parsing JSON table")
	}
	return biom.FlatDocument(doc), nil
}
