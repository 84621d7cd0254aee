package bbs

import (
	"sort"
)

// SpeciesPresence describes how consistently one species shows up on one
// route across the surveyed years.
type SpeciesPresence struct {
	Route            int
	AOU              int
	TotalSurveyYears int     // distinct years the route was surveyed at all
	YearsPresent     int     // distinct years the species was recorded with a positive count
	Ratio            float64 // YearsPresent / TotalSurveyYears
	Continuous       bool    // Ratio >= threshold
}

type pairKey struct {
	route, aou int
}

// CalculatePresence computes, for every (route, species) pair observed in
// the dataset, the fraction of the route's survey years in which the
// species was recorded with a positive count, and flags pairs at or above
// the threshold as continuously present.
//
// A pair that only ever appears with zero counts still yields an entry,
// with YearsPresent 0. Results are ordered by route then species code.
func CalculatePresence(ds *Dataset, threshold float64) ([]SpeciesPresence, error) {
	if err := ds.requireColumns("presence",
		ColSpecies, ColYear, ColRoute, ds.AbundanceCol); err != nil {
		return nil, err
	}

	// Survey effort per route: every year with any record counts,
	// regardless of which species or what abundance.
	routeYears := make(map[int]map[int]struct{})
	pairYears := make(map[pairKey]map[int]struct{})

	for _, rec := range ds.Records {
		years, ok := routeYears[rec.Route]
		if !ok {
			years = make(map[int]struct{})
			routeYears[rec.Route] = years
		}
		years[rec.Year] = struct{}{}

		key := pairKey{route: rec.Route, aou: rec.AOU}
		present, ok := pairYears[key]
		if !ok {
			present = make(map[int]struct{})
			pairYears[key] = present
		}
		if rec.Abundance > 0 {
			present[rec.Year] = struct{}{}
		}
	}

	results := make([]SpeciesPresence, 0, len(pairYears))
	for key, present := range pairYears {
		total := len(routeYears[key.route])
		ratio := 0.0
		// total is always positive for observed pairs, guard anyway so a
		// future caller cannot divide by zero
		if total > 0 {
			ratio = float64(len(present)) / float64(total)
		}
		results = append(results, SpeciesPresence{
			Route:            key.route,
			AOU:              key.aou,
			TotalSurveyYears: total,
			YearsPresent:     len(present),
			Ratio:            ratio,
			Continuous:       ratio >= threshold,
		})
	}

	sort.Slice(results, func(i, j int) bool {
		if results[i].Route != results[j].Route {
			return results[i].Route < results[j].Route
		}
		return results[i].AOU < results[j].AOU
	})
	return results, nil
}
