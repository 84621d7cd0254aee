// Package bbs implements the data-quality filtering, presence-continuity,
// and route-ranking pipeline for Breeding Bird Survey route counts.
package bbs

import (
	"fmt"
	"sort"
	"strings"

	"github.com/tphakala/bbs-go/internal/errors"
)

// Column names of the consolidated BBS route data. The abundance column is
// caller-named and travels with the dataset.
const (
	ColSpecies   = "AOU"
	ColProtocol  = "RPID"
	ColYear      = "Year"
	ColRoute     = "ruta"
	ColLatitude  = "Latitude"
	ColLongitude = "Longitude"
)

// Record is a single survey observation: one species counted on one route
// in one year. Records are immutable facts; slice order carries no meaning.
type Record struct {
	AOU       int     // species code
	RPID      int     // run protocol identifier
	Year      int     // survey year
	Route     int     // route identifier, the dataset's "ruta" column
	Latitude  float64 // route latitude
	Longitude float64 // route longitude
	Abundance float64 // count, coerced to a number at the ingest boundary
}

// Dataset couples survey records with the column set declared by their
// source files. Schema checks run against the declared columns, not the
// rows, so an empty dataset with a declared schema is valid input for
// every pipeline stage.
type Dataset struct {
	// AbundanceCol is the name of the column holding per-record counts.
	AbundanceCol string

	// Records holds the survey rows.
	Records []Record

	columns map[string]struct{}
}

// NewDataset creates a dataset with the given declared columns and
// abundance column name. The abundance column is not declared implicitly;
// ingestion declares it once a source file provides or synthesizes it.
func NewDataset(columns []string, abundanceCol string) *Dataset {
	ds := &Dataset{
		AbundanceCol: abundanceCol,
		columns:      make(map[string]struct{}, len(columns)),
	}
	for _, col := range columns {
		ds.columns[col] = struct{}{}
	}
	return ds
}

// DeclareColumn adds a column to the declared schema.
func (ds *Dataset) DeclareColumn(name string) {
	if ds.columns == nil {
		ds.columns = make(map[string]struct{})
	}
	ds.columns[name] = struct{}{}
}

// HasColumn reports whether the dataset declares the named column.
func (ds *Dataset) HasColumn(name string) bool {
	_, ok := ds.columns[name]
	return ok
}

// Columns returns the declared column names in sorted order.
func (ds *Dataset) Columns() []string {
	cols := make([]string, 0, len(ds.columns))
	for col := range ds.columns {
		cols = append(cols, col)
	}
	sort.Strings(cols)
	return cols
}

// Len returns the number of records.
func (ds *Dataset) Len() int {
	return len(ds.Records)
}

// Append adds a record to the dataset.
func (ds *Dataset) Append(rec Record) {
	ds.Records = append(ds.Records, rec)
}

// missingColumns returns the required columns absent from the declared
// schema, preserving the order they were asked for.
func (ds *Dataset) missingColumns(required []string) []string {
	var missing []string
	for _, col := range required {
		if !ds.HasColumn(col) {
			missing = append(missing, col)
		}
	}
	return missing
}

// requireColumns validates the declared schema against the required
// columns, returning a SchemaError naming every missing column. Each
// pipeline stage calls this once, before any row work.
func (ds *Dataset) requireColumns(stage string, required ...string) error {
	missing := ds.missingColumns(required)
	if len(missing) == 0 {
		return nil
	}
	return errors.New(&SchemaError{Missing: missing}).
		Component("bbs").
		Category(errors.CategoryValidation).
		Context("stage", stage).
		Context("missing_count", len(missing)).
		Build()
}

// SchemaError reports required columns absent from a dataset's declared
// schema. It names every missing column so the caller can fix the
// upstream data in one pass.
type SchemaError struct {
	Missing []string // missing column names, in required order
}

// Error implements the error interface.
func (e *SchemaError) Error() string {
	return fmt.Sprintf("input data is missing required columns: %s", strings.Join(e.Missing, ", "))
}

// ErrorCategory marks schema problems as validation failures.
func (e *SchemaError) ErrorCategory() errors.ErrorCategory {
	return errors.CategoryValidation
}
