package bbs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculatePresenceBasic(t *testing.T) {
	t.Parallel()

	// Route 1 surveyed in three years, species 5000 present in two of
	// them. Species 5010 keeps the route surveyed in 2019.
	ds := newTestDataset(
		newRecord(5000, 2017, 1, 4),
		newRecord(5000, 2018, 1, 2),
		newRecord(5010, 2019, 1, 1),
	)

	presence, err := CalculatePresence(ds, 0.9)
	require.NoError(t, err)
	require.Len(t, presence, 2)

	sp := presence[0]
	assert.Equal(t, 1, sp.Route)
	assert.Equal(t, 5000, sp.AOU)
	assert.Equal(t, 3, sp.TotalSurveyYears)
	assert.Equal(t, 2, sp.YearsPresent)
	assert.InDelta(t, 2.0/3.0, sp.Ratio, 0.0001)
	assert.False(t, sp.Continuous)

	sp = presence[1]
	assert.Equal(t, 5010, sp.AOU)
	assert.Equal(t, 3, sp.TotalSurveyYears)
	assert.Equal(t, 1, sp.YearsPresent)
	assert.False(t, sp.Continuous)
}

func TestCalculatePresenceThresholdBoundaryInclusive(t *testing.T) {
	t.Parallel()

	// Route surveyed ten years, species present in eight. Another
	// species pads the remaining survey years.
	records := make([]Record, 0, 12)
	for year := 2010; year < 2020; year++ {
		records = append(records, newRecord(5010, year, 1, 1))
	}
	for year := 2010; year < 2018; year++ {
		records = append(records, newRecord(5000, year, 1, 3))
	}
	ds := newTestDataset(records...)

	find := func(presence []SpeciesPresence, aou int) SpeciesPresence {
		for _, sp := range presence {
			if sp.AOU == aou {
				return sp
			}
		}
		t.Fatalf("no presence entry for AOU %d", aou)
		return SpeciesPresence{}
	}

	strict, err := CalculatePresence(ds, 0.9)
	require.NoError(t, err)
	sp := find(strict, 5000)
	assert.InDelta(t, 0.8, sp.Ratio, 0.0001)
	assert.False(t, sp.Continuous, "0.8 below threshold 0.9")

	loose, err := CalculatePresence(ds, 0.8)
	require.NoError(t, err)
	sp = find(loose, 5000)
	assert.True(t, sp.Continuous, "boundary ratio 0.8 meets threshold 0.8")
}

func TestCalculatePresenceZeroCountPairStillListed(t *testing.T) {
	t.Parallel()

	ds := newTestDataset(
		newRecord(5000, 2018, 1, 0),
		newRecord(5010, 2018, 1, 2),
	)

	presence, err := CalculatePresence(ds, 0.9)
	require.NoError(t, err)
	require.Len(t, presence, 2)

	sp := presence[0]
	assert.Equal(t, 5000, sp.AOU)
	assert.Equal(t, 1, sp.TotalSurveyYears)
	assert.Equal(t, 0, sp.YearsPresent)
	assert.Zero(t, sp.Ratio)
	assert.False(t, sp.Continuous)
}

func TestCalculatePresenceRatioBounds(t *testing.T) {
	t.Parallel()

	ds := newTestDataset(
		newRecord(5000, 2015, 1, 2),
		newRecord(5000, 2016, 1, 0),
		newRecord(5000, 2017, 1, 5),
		newRecord(5010, 2016, 1, 1),
		newRecord(5010, 2018, 1, 4),
		newRecord(5020, 2015, 2, 7),
		newRecord(5020, 2016, 2, 0),
	)

	presence, err := CalculatePresence(ds, 0.9)
	require.NoError(t, err)
	require.NotEmpty(t, presence)

	for _, sp := range presence {
		assert.GreaterOrEqual(t, sp.Ratio, 0.0, "route %d AOU %d", sp.Route, sp.AOU)
		assert.LessOrEqual(t, sp.Ratio, 1.0, "route %d AOU %d", sp.Route, sp.AOU)
		assert.LessOrEqual(t, sp.YearsPresent, sp.TotalSurveyYears, "route %d AOU %d", sp.Route, sp.AOU)
	}
}

func TestCalculatePresenceOrdering(t *testing.T) {
	t.Parallel()

	ds := newTestDataset(
		newRecord(5010, 2018, 2, 1),
		newRecord(5000, 2018, 2, 1),
		newRecord(5020, 2018, 1, 1),
	)

	presence, err := CalculatePresence(ds, 0.9)
	require.NoError(t, err)
	require.Len(t, presence, 3)

	assert.Equal(t, 1, presence[0].Route)
	assert.Equal(t, 5020, presence[0].AOU)
	assert.Equal(t, 2, presence[1].Route)
	assert.Equal(t, 5000, presence[1].AOU)
	assert.Equal(t, 2, presence[2].Route)
	assert.Equal(t, 5010, presence[2].AOU)
}

func TestCalculatePresenceEmptyInput(t *testing.T) {
	t.Parallel()

	presence, err := CalculatePresence(newTestDataset(), 0.9)
	require.NoError(t, err)
	assert.Empty(t, presence)
}

func TestCalculatePresenceMissingColumn(t *testing.T) {
	t.Parallel()

	ds := NewDataset([]string{ColYear, ColRoute}, testAbundanceCol)
	_, err := CalculatePresence(ds, 0.9)
	require.Error(t, err)

	var schemaErr *SchemaError
	require.ErrorAs(t, err, &schemaErr)
	assert.Equal(t, []string{ColSpecies, testAbundanceCol}, schemaErr.Missing)
}
