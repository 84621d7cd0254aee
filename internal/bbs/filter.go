package bbs

import (
	"math"
	"slices"

	"github.com/tphakala/bbs-go/internal/errors"
)

// Filter defaults mirror the standard North American BBS analysis
// conventions.
const (
	// StandardProtocol is the run protocol identifier for standard surveys.
	StandardProtocol = 101
	// DefaultFirstYear is the earliest survey year retained.
	DefaultFirstYear = 1997
	// DefaultThreshold is the presence ratio at which a species counts as
	// continuously present on a route.
	DefaultThreshold = 0.9
)

// QualityFilter holds the data-quality criteria applied to raw survey
// records before any presence or ranking analysis.
type QualityFilter struct {
	FirstYear    int      // drop records from earlier years
	Protocol     int      // keep only this run protocol
	ExcludeYears []int    // drop these years entirely
	Exclusions   *CodeSet // drop these AOU species codes
}

// NewQualityFilter returns a filter with the standard criteria: surveys
// from 1997 on, protocol 101 only, the curtailed 2020 season dropped,
// and the default species exclusions.
func NewQualityFilter() *QualityFilter {
	return &QualityFilter{
		FirstYear:    DefaultFirstYear,
		Protocol:     StandardProtocol,
		ExcludeYears: []int{2020},
		Exclusions:   DefaultExclusions(),
	}
}

// FilterStats records how many records survive each filtering step, in
// application order.
type FilterStats struct {
	Input              int
	AfterFirstYear     int
	AfterExcludedYears int
	AfterProtocol      int
	AfterExclusions    int
}

// Apply runs the quality criteria over the dataset and returns a new
// dataset containing only the surviving records, with abundance values
// normalized. The input dataset is not modified.
//
// Steps run in a fixed order so the per-step counts in FilterStats stay
// comparable across runs: first year cutoff, excluded years, protocol,
// species exclusions, then abundance normalization.
func (qf *QualityFilter) Apply(ds *Dataset) (*Dataset, FilterStats, error) {
	stats := FilterStats{Input: ds.Len()}

	if err := ds.requireColumns("quality-filter",
		ColSpecies, ColProtocol, ColYear, ColRoute, ds.AbundanceCol); err != nil {
		return nil, stats, err
	}

	kept := make([]Record, 0, ds.Len())
	for _, rec := range ds.Records {
		if rec.Year >= qf.FirstYear {
			kept = append(kept, rec)
		}
	}
	stats.AfterFirstYear = len(kept)

	n := 0
	for _, rec := range kept {
		if !slices.Contains(qf.ExcludeYears, rec.Year) {
			kept[n] = rec
			n++
		}
	}
	kept = kept[:n]
	stats.AfterExcludedYears = len(kept)

	n = 0
	for _, rec := range kept {
		if rec.RPID == qf.Protocol {
			kept[n] = rec
			n++
		}
	}
	kept = kept[:n]
	stats.AfterProtocol = len(kept)

	n = 0
	for _, rec := range kept {
		if !qf.Exclusions.Contains(rec.AOU) {
			kept[n] = rec
			n++
		}
	}
	kept = kept[:n]
	stats.AfterExclusions = len(kept)

	out := NewDataset(ds.Columns(), ds.AbundanceCol)
	for _, rec := range kept {
		rec.Abundance = normalizeAbundance(rec.Abundance)
		out.Append(rec)
	}
	return out, stats, nil
}

// normalizeAbundance coerces unusable counts to zero. Raw survey files
// carry blanks and occasional garbage in the count column; anything that
// is not a usable non-negative number becomes 0 rather than failing the
// run.
func normalizeAbundance(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}
	return v
}

// Validate reports configuration errors in the filter criteria.
func (qf *QualityFilter) Validate() error {
	if qf.FirstYear <= 0 {
		return errors.Newf("quality filter first year must be positive, got %d", qf.FirstYear).
			Component("bbs").
			Category(errors.CategoryValidation).
			Context("first_year", qf.FirstYear).
			Build()
	}
	if qf.Protocol <= 0 {
		return errors.Newf("quality filter protocol must be positive, got %d", qf.Protocol).
			Component("bbs").
			Category(errors.CategoryValidation).
			Context("protocol", qf.Protocol).
			Build()
	}
	return nil
}
