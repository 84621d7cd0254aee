package ingest

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tphakala/bbs-go/internal/bbs"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

const routeHeader = "ruta,Year,AOU,RPID,Latitude,Longitude,Number of individuals\n"

func TestReadRoutesConcatenatesFiles(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, dir, "F1.csv", routeHeader+
		"1,2018,5000,101,40.1,-105.3,4\n"+
		"1,2019,5000,101,40.1,-105.3,6\n")
	writeFile(t, dir, "F2.csv", routeHeader+
		"2,2019,5010,101,41.0,-104.0,2\n")
	writeFile(t, dir, "notes.txt", "not a route file\n")

	ds, stats, err := ReadRoutes(Options{Dir: dir, Pattern: "F*.csv"})
	require.NoError(t, err)

	assert.Equal(t, 2, stats.FilesFound)
	assert.Equal(t, 2, stats.FilesRead)
	assert.Equal(t, 0, stats.FilesSkipped)
	assert.Equal(t, 3, stats.Records)
	require.Equal(t, 3, ds.Len())

	first := ds.Records[0]
	assert.Equal(t, 1, first.Route)
	assert.Equal(t, 2018, first.Year)
	assert.Equal(t, 5000, first.AOU)
	assert.Equal(t, 101, first.RPID)
	assert.InDelta(t, 40.1, first.Latitude, 0.001)
	assert.InDelta(t, -105.3, first.Longitude, 0.001)
	assert.InDelta(t, 4.0, first.Abundance, 0.001)

	assert.Equal(t, 2, ds.Records[2].Route, "files concatenate in glob order")
}

func TestReadRoutesNoMatches(t *testing.T) {
	t.Parallel()

	ds, stats, err := ReadRoutes(Options{Dir: t.TempDir(), Pattern: "F*.csv"})
	require.NoError(t, err)

	assert.Equal(t, 0, stats.FilesFound)
	assert.Equal(t, 0, ds.Len())
	for _, col := range []string{
		bbs.ColSpecies, bbs.ColProtocol, bbs.ColYear, bbs.ColRoute,
		bbs.ColLatitude, bbs.ColLongitude, "Number of individuals",
	} {
		assert.True(t, ds.HasColumn(col), "empty result still declares %q", col)
	}
}

func TestReadRoutesSkipsUnparseableFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, dir, "F1.csv", routeHeader+"1,2019,5000,101,40.1,-105.3,4\n")
	writeFile(t, dir, "F2.csv", "ruta,Year\n\"unclosed quote,2019\n")

	ds, stats, err := ReadRoutes(Options{Dir: dir, Pattern: "F*.csv"})
	require.NoError(t, err)

	assert.Equal(t, 1, stats.FilesRead)
	assert.Equal(t, 1, stats.FilesSkipped)
	assert.Equal(t, 1, ds.Len())
}

func TestReadRoutesCoercesAbundance(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, dir, "F1.csv", routeHeader+
		"1,2018,5000,101,40.1,-105.3,garbage\n"+
		"1,2019,5000,101,40.1,-105.3,\n"+
		"1,2020,5000,101,40.1,-105.3,7.5\n")

	ds, _, err := ReadRoutes(Options{Dir: dir, Pattern: "F*.csv"})
	require.NoError(t, err)
	require.Equal(t, 3, ds.Len())

	assert.Zero(t, ds.Records[0].Abundance)
	assert.Zero(t, ds.Records[1].Abundance)
	assert.InDelta(t, 7.5, ds.Records[2].Abundance, 0.001)
}

func TestReadRoutesSkipsRowsWithBrokenKeys(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, dir, "F1.csv", routeHeader+
		"1,NA,5000,101,40.1,-105.3,4\n"+
		",2019,5000,101,40.1,-105.3,4\n"+
		"1,2019,5000,101,40.1,-105.3,4\n")

	ds, stats, err := ReadRoutes(Options{Dir: dir, Pattern: "F*.csv"})
	require.NoError(t, err)

	assert.Equal(t, 1, ds.Len())
	assert.Equal(t, 2, stats.RowsSkipped)
}

func TestReadRoutesParsesLeadingZeroCodes(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, dir, "F1.csv", routeHeader+"1,2019,06280,101,40.1,-105.3,4\n")

	ds, _, err := ReadRoutes(Options{Dir: dir, Pattern: "F*.csv"})
	require.NoError(t, err)
	require.Equal(t, 1, ds.Len())
	assert.Equal(t, 6280, ds.Records[0].AOU)
}

func TestReadRoutesHeaderCaseInsensitive(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, dir, "F1.csv",
		"RUTA,year,aou,rpid,latitude,longitude,number of individuals\n"+
			"3,2019,5000,101,40.1,-105.3,4\n")

	ds, _, err := ReadRoutes(Options{Dir: dir, Pattern: "F*.csv"})
	require.NoError(t, err)
	require.Equal(t, 1, ds.Len())
	assert.Equal(t, 3, ds.Records[0].Route)
	assert.True(t, ds.HasColumn(bbs.ColRoute), "headers normalize to canonical names")
	assert.True(t, ds.HasColumn(bbs.ColYear))
}

func TestReadRoutesSumsStopColumns(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, dir, "F1.csv",
		"ruta,Year,AOU,RPID,Latitude,Longitude,Stop1,Stop2,Stop3,StopTotal\n"+
			"1,2019,5000,101,40.1,-105.3,2,0,3,999\n")

	ds, _, err := ReadRoutes(Options{Dir: dir, Pattern: "F*.csv", SumStops: true})
	require.NoError(t, err)
	require.Equal(t, 1, ds.Len())

	assert.InDelta(t, 5.0, ds.Records[0].Abundance, 0.001,
		"Stop1..StopN sum, StopTotal does not match the stop pattern")
	assert.True(t, ds.HasColumn("Number of individuals"),
		"synthesized abundance column joins the schema")
}

func TestReadRoutesStopSummingOffByDefault(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, dir, "F1.csv",
		"ruta,Year,AOU,RPID,Latitude,Longitude,Stop1,Stop2\n"+
			"1,2019,5000,101,40.1,-105.3,2,3\n")

	ds, _, err := ReadRoutes(Options{Dir: dir, Pattern: "F*.csv", SumStops: false})
	require.NoError(t, err)
	require.Equal(t, 1, ds.Len())
	assert.Zero(t, ds.Records[0].Abundance)
	assert.False(t, ds.HasColumn("Number of individuals"))
}

func TestReadRoutesDefaults(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, dir, "Fdefault.csv", routeHeader+"1,2019,5000,101,40.1,-105.3,4\n")

	// Pattern and abundance column fall back to the configured defaults.
	ds, stats, err := ReadRoutes(Options{Dir: dir})
	require.NoError(t, err)
	assert.Equal(t, 1, stats.FilesRead)
	require.Equal(t, 1, ds.Len())
	assert.InDelta(t, 4.0, ds.Records[0].Abundance, 0.001)
	assert.Equal(t, "Number of individuals", ds.AbundanceCol)
}
