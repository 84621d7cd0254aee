package bbs

import (
	"sort"
)

// RouteSummary is one ranked route: how many species hold continuous
// presence on it, the span of its survey years, and its location.
type RouteSummary struct {
	Route             int
	ContinuousSpecies int
	MinYear           int
	MaxYear           int
	SurveyYears       int // distinct years surveyed, not MaxYear-MinYear
	Latitude          float64
	Longitude         float64
}

type yearSpan struct {
	min, max int
	years    map[int]struct{}
}

// RankRoutes ranks routes by the number of continuously present species,
// breaking ties by the number of distinct survey years. Only routes with
// at least one continuous species are ranked. topN > 0 truncates the
// result; topN <= 0 returns all ranked routes.
//
// Coordinates come from the first record seen for each route, so routes
// whose location drifted between files keep a single stable position.
func RankRoutes(ds *Dataset, presence []SpeciesPresence, topN int) ([]RouteSummary, error) {
	if err := ds.requireColumns("route-ranking",
		ColYear, ColRoute, ColLatitude, ColLongitude); err != nil {
		return nil, err
	}

	counts := make(map[int]int)
	for _, p := range presence {
		if p.Continuous {
			counts[p.Route]++
		}
	}
	if len(counts) == 0 {
		return nil, nil
	}

	spans := make(map[int]*yearSpan)
	coords := make(map[int][2]float64)
	for _, rec := range ds.Records {
		span, ok := spans[rec.Route]
		if !ok {
			span = &yearSpan{min: rec.Year, max: rec.Year, years: make(map[int]struct{})}
			spans[rec.Route] = span
		}
		if rec.Year < span.min {
			span.min = rec.Year
		}
		if rec.Year > span.max {
			span.max = rec.Year
		}
		span.years[rec.Year] = struct{}{}

		if _, ok := coords[rec.Route]; !ok {
			coords[rec.Route] = [2]float64{rec.Latitude, rec.Longitude}
		}
	}

	routes := make([]int, 0, len(counts))
	for route := range counts {
		// a route only reaches the counts map through presence results,
		// which are derived from the same dataset, so the span exists
		if _, ok := spans[route]; ok {
			routes = append(routes, route)
		}
	}
	sort.Ints(routes)

	summaries := make([]RouteSummary, 0, len(routes))
	for _, route := range routes {
		span := spans[route]
		pos := coords[route]
		summaries = append(summaries, RouteSummary{
			Route:             route,
			ContinuousSpecies: counts[route],
			MinYear:           span.min,
			MaxYear:           span.max,
			SurveyYears:       len(span.years),
			Latitude:          pos[0],
			Longitude:         pos[1],
		})
	}

	sort.SliceStable(summaries, func(i, j int) bool {
		if summaries[i].ContinuousSpecies != summaries[j].ContinuousSpecies {
			return summaries[i].ContinuousSpecies > summaries[j].ContinuousSpecies
		}
		return summaries[i].SurveyYears > summaries[j].SurveyYears
	})

	if topN > 0 && len(summaries) > topN {
		summaries = summaries[:topN]
	}
	return summaries, nil
}
