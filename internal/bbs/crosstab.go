package bbs

import (
	"sort"
)

// CrossTab is a two-dimensional abundance table with sorted integer axes.
// Cells accumulate by sum, so repeated observations of the same cell add
// up the way stop-level counts do.
type CrossTab struct {
	RowLabel string
	ColLabel string
	Rows     []int
	Cols     []int
	cells    map[[2]int]float64
}

func newCrossTab(rowLabel, colLabel string) *CrossTab {
	return &CrossTab{
		RowLabel: rowLabel,
		ColLabel: colLabel,
		cells:    make(map[[2]int]float64),
	}
}

func (ct *CrossTab) add(row, col int, v float64) {
	ct.cells[[2]int{row, col}] += v
}

// Value returns the accumulated abundance for a cell, zero when the cell
// was never observed.
func (ct *CrossTab) Value(row, col int) float64 {
	return ct.cells[[2]int{row, col}]
}

// RowTotal sums one row across all columns.
func (ct *CrossTab) RowTotal(row int) float64 {
	var total float64
	for _, col := range ct.Cols {
		total += ct.cells[[2]int{row, col}]
	}
	return total
}

func (ct *CrossTab) finalize() {
	rowSet := make(map[int]struct{})
	colSet := make(map[int]struct{})
	for key := range ct.cells {
		rowSet[key[0]] = struct{}{}
		colSet[key[1]] = struct{}{}
	}
	ct.Rows = sortedKeys(rowSet)
	ct.Cols = sortedKeys(colSet)
}

func sortedKeys(set map[int]struct{}) []int {
	keys := make([]int, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	return keys
}

// SpeciesCrossTab tabulates one species across the dataset: rows are
// survey years, columns are routes.
func SpeciesCrossTab(ds *Dataset, aou int) (*CrossTab, error) {
	if err := ds.requireColumns("species-crosstab",
		ColSpecies, ColYear, ColRoute, ds.AbundanceCol); err != nil {
		return nil, err
	}
	ct := newCrossTab(ColYear, ColRoute)
	for _, rec := range ds.Records {
		if rec.AOU == aou {
			ct.add(rec.Year, rec.Route, rec.Abundance)
		}
	}
	ct.finalize()
	return ct, nil
}

// RouteCrossTab tabulates one route across the dataset: rows are survey
// years, columns are species codes.
func RouteCrossTab(ds *Dataset, route int) (*CrossTab, error) {
	if err := ds.requireColumns("route-crosstab",
		ColSpecies, ColYear, ColRoute, ds.AbundanceCol); err != nil {
		return nil, err
	}
	ct := newCrossTab(ColYear, ColSpecies)
	for _, rec := range ds.Records {
		if rec.Route == route {
			ct.add(rec.Year, rec.AOU, rec.Abundance)
		}
	}
	ct.finalize()
	return ct, nil
}

// YearCrossTab tabulates one survey year across the dataset: rows are
// routes, columns are species codes.
func YearCrossTab(ds *Dataset, year int) (*CrossTab, error) {
	if err := ds.requireColumns("year-crosstab",
		ColSpecies, ColYear, ColRoute, ds.AbundanceCol); err != nil {
		return nil, err
	}
	ct := newCrossTab(ColRoute, ColSpecies)
	for _, rec := range ds.Records {
		if rec.Year == year {
			ct.add(rec.Route, rec.AOU, rec.Abundance)
		}
	}
	ct.finalize()
	return ct, nil
}
