package bbs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildSpeciesTimeSeriesZeroFillsGaps(t *testing.T) {
	t.Parallel()

	// Species 5000 recorded in 2015 and 2018, nothing between.
	ds := newTestDataset(
		newRecord(5000, 2015, 1, 4),
		newRecord(5000, 2015, 2, 2),
		newRecord(5000, 2018, 1, 7),
	)

	ts, err := BuildSpeciesTimeSeries(ds, 5000)
	require.NoError(t, err)
	require.Len(t, ts.Individuals, 4)
	require.Len(t, ts.Routes, 4)

	assert.Equal(t, 2015, ts.FirstYear())
	assert.Equal(t, 2018, ts.LastYear())

	assert.Equal(t, YearCount{Year: 2015, Value: 6}, ts.Individuals[0])
	assert.Equal(t, YearCount{Year: 2016, Value: 0}, ts.Individuals[1])
	assert.Equal(t, YearCount{Year: 2017, Value: 0}, ts.Individuals[2])
	assert.Equal(t, YearCount{Year: 2018, Value: 7}, ts.Individuals[3])

	assert.Equal(t, YearCount{Year: 2015, Value: 2}, ts.Routes[0])
	assert.Equal(t, YearCount{Year: 2016, Value: 0}, ts.Routes[1])
	assert.Equal(t, YearCount{Year: 2018, Value: 1}, ts.Routes[3])
}

func TestBuildSpeciesTimeSeriesZeroCountStillReports(t *testing.T) {
	t.Parallel()

	// A surveyed-but-absent record keeps the route in the reporting
	// count without adding individuals.
	ds := newTestDataset(
		newRecord(5000, 2019, 1, 0),
		newRecord(5000, 2019, 2, 3),
	)

	ts, err := BuildSpeciesTimeSeries(ds, 5000)
	require.NoError(t, err)
	require.Len(t, ts.Routes, 1)
	assert.InDelta(t, 2.0, ts.Routes[0].Value, 0.001)
	assert.InDelta(t, 3.0, ts.Individuals[0].Value, 0.001)
}

func TestBuildSpeciesTimeSeriesAbsentSpecies(t *testing.T) {
	t.Parallel()

	ds := newTestDataset(newRecord(5000, 2019, 1, 3))

	ts, err := BuildSpeciesTimeSeries(ds, 9999)
	require.NoError(t, err)
	assert.Empty(t, ts.Individuals)
	assert.Empty(t, ts.Routes)
	assert.Zero(t, ts.FirstYear())
	assert.Zero(t, ts.LastYear())
}

func TestFillMissingYears(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		values map[int]float64
		start  int
		end    int
		want   []YearCount
	}{
		{
			name:   "fills gaps with zero",
			values: map[int]float64{2018: 5, 2020: 2},
			start:  2018,
			end:    2020,
			want: []YearCount{
				{Year: 2018, Value: 5},
				{Year: 2019, Value: 0},
				{Year: 2020, Value: 2},
			},
		},
		{
			name:   "single year",
			values: map[int]float64{2019: 1},
			start:  2019,
			end:    2019,
			want:   []YearCount{{Year: 2019, Value: 1}},
		},
		{
			name:   "inverted range is empty",
			values: map[int]float64{2019: 1},
			start:  2020,
			end:    2019,
			want:   nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FillMissingYears(tt.values, tt.start, tt.end))
		})
	}
}
