package bbs

// YearCount is one point of a per-year series.
type YearCount struct {
	Year  int
	Value float64
}

// SpeciesTimeSeries holds the two per-year series describing one species
// across the dataset: how many individuals were recorded and how many
// routes reported it. Both series span the same contiguous year range,
// with zeros for years the species was not recorded.
type SpeciesTimeSeries struct {
	AOU         int
	Individuals []YearCount
	Routes      []YearCount
}

// FirstYear returns the first year of the series, zero when empty.
func (ts *SpeciesTimeSeries) FirstYear() int {
	if len(ts.Individuals) == 0 {
		return 0
	}
	return ts.Individuals[0].Year
}

// LastYear returns the last year of the series, zero when empty.
func (ts *SpeciesTimeSeries) LastYear() int {
	if len(ts.Individuals) == 0 {
		return 0
	}
	return ts.Individuals[len(ts.Individuals)-1].Year
}

// BuildSpeciesTimeSeries derives the per-year series for one species.
// A route counts as reporting in a year when any record for the species
// exists there, even with a zero count, matching how observers log
// surveyed-but-absent stops.
func BuildSpeciesTimeSeries(ds *Dataset, aou int) (*SpeciesTimeSeries, error) {
	if err := ds.requireColumns("species-timeseries",
		ColSpecies, ColYear, ColRoute, ds.AbundanceCol); err != nil {
		return nil, err
	}

	individuals := make(map[int]float64)
	reporting := make(map[int]map[int]struct{})
	for _, rec := range ds.Records {
		if rec.AOU != aou {
			continue
		}
		individuals[rec.Year] += rec.Abundance
		routes, ok := reporting[rec.Year]
		if !ok {
			routes = make(map[int]struct{})
			reporting[rec.Year] = routes
		}
		routes[rec.Route] = struct{}{}
	}

	ts := &SpeciesTimeSeries{AOU: aou}
	if len(individuals) == 0 {
		return ts, nil
	}

	minYear, maxYear := 0, 0
	first := true
	for year := range individuals {
		if first {
			minYear, maxYear = year, year
			first = false
			continue
		}
		if year < minYear {
			minYear = year
		}
		if year > maxYear {
			maxYear = year
		}
	}

	routeCounts := make(map[int]float64, len(reporting))
	for year, routes := range reporting {
		routeCounts[year] = float64(len(routes))
	}

	ts.Individuals = FillMissingYears(individuals, minYear, maxYear)
	ts.Routes = FillMissingYears(routeCounts, minYear, maxYear)
	return ts, nil
}

// FillMissingYears expands a sparse year-to-value map into a contiguous
// series over [start, end], zero-filling years without a value. An
// inverted range yields an empty series.
func FillMissingYears(values map[int]float64, start, end int) []YearCount {
	if start > end {
		return nil
	}
	series := make([]YearCount, 0, end-start+1)
	for year := start; year <= end; year++ {
		series = append(series, YearCount{Year: year, Value: values[year]})
	}
	return series
}
