package bbs

import (
	"sort"
)

// SpeciesSummary aggregates one species across the whole dataset. These
// are the figures shown alongside each species chart and in the report
// table.
type SpeciesSummary struct {
	AOU          int
	Routes       int // distinct routes the species was recorded on
	FirstYear    int
	LastYear     int
	SeriesLength int // LastYear - FirstYear + 1
	Detections   int // records with a positive count
	Individuals  float64
}

// SummarizeSpecies aggregates every species present in the dataset,
// ordered by species code.
func SummarizeSpecies(ds *Dataset) ([]SpeciesSummary, error) {
	if err := ds.requireColumns("species-summary",
		ColSpecies, ColYear, ColRoute, ds.AbundanceCol); err != nil {
		return nil, err
	}

	type acc struct {
		routes      map[int]struct{}
		firstYear   int
		lastYear    int
		detections  int
		individuals float64
	}
	byAOU := make(map[int]*acc)

	for _, rec := range ds.Records {
		a, ok := byAOU[rec.AOU]
		if !ok {
			a = &acc{
				routes:    make(map[int]struct{}),
				firstYear: rec.Year,
				lastYear:  rec.Year,
			}
			byAOU[rec.AOU] = a
		}
		a.routes[rec.Route] = struct{}{}
		if rec.Year < a.firstYear {
			a.firstYear = rec.Year
		}
		if rec.Year > a.lastYear {
			a.lastYear = rec.Year
		}
		if rec.Abundance > 0 {
			a.detections++
		}
		a.individuals += rec.Abundance
	}

	codes := make([]int, 0, len(byAOU))
	for aou := range byAOU {
		codes = append(codes, aou)
	}
	sort.Ints(codes)

	summaries := make([]SpeciesSummary, 0, len(codes))
	for _, aou := range codes {
		a := byAOU[aou]
		summaries = append(summaries, SpeciesSummary{
			AOU:          aou,
			Routes:       len(a.routes),
			FirstYear:    a.firstYear,
			LastYear:     a.lastYear,
			SeriesLength: a.lastYear - a.firstYear + 1,
			Detections:   a.detections,
			Individuals:  a.individuals,
		})
	}
	return summaries, nil
}

// SpeciesCodes returns the distinct species codes present in the dataset
// in ascending order.
func SpeciesCodes(ds *Dataset) []int {
	set := make(map[int]struct{})
	for _, rec := range ds.Records {
		set[rec.AOU] = struct{}{}
	}
	return sortedKeys(set)
}
