// Package ingest reads raw Breeding Bird Survey route CSV files into the
// in-memory dataset the analysis pipeline consumes.
package ingest

import (
	"encoding/csv"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/spf13/cast"

	"github.com/tphakala/bbs-go/internal/bbs"
	"github.com/tphakala/bbs-go/internal/conf"
	"github.com/tphakala/bbs-go/internal/errors"
	"github.com/tphakala/bbs-go/internal/logging"
)

// getLogger returns the ingest service logger, falling back to the
// default logger when file logging is not initialized.
func getLogger() *slog.Logger {
	logger := logging.ForService("ingest")
	if logger == nil {
		logger = slog.Default().With("service", "ingest")
	}
	return logger
}

// Options control where route files are found and how rows are read.
type Options struct {
	Dir             string // directory holding route CSV files
	Pattern         string // filename glob, defaults to conf.DefaultRoutePattern
	AbundanceColumn string // column holding counts, defaults to conf.DefaultAbundanceColumn
	SumStops        bool   // synthesize the abundance column from Stop1..StopN when absent
}

// Stats reports what one ReadRoutes call consumed.
type Stats struct {
	FilesFound   int
	FilesRead    int
	FilesSkipped int
	RowsSkipped  int
	Records      int
}

// stopColumn matches the per-stop count columns of 50-stop route files.
var stopColumn = regexp.MustCompile(`^Stop\d+$`)

var errFieldMissing = errors.NewStd("field missing or blank")

// ReadRoutes scans the directory for route files matching the pattern and
// concatenates their rows into one dataset. Files that cannot be read or
// parsed are skipped with a warning rather than failing the whole run.
// When no file matches, the result is empty but still carries the
// canonical schema so downstream stages treat it as a valid empty input.
func ReadRoutes(opts Options) (*bbs.Dataset, Stats, error) {
	if opts.Pattern == "" {
		opts.Pattern = conf.DefaultRoutePattern
	}
	if opts.AbundanceColumn == "" {
		opts.AbundanceColumn = conf.DefaultAbundanceColumn
	}

	var stats Stats
	pattern := filepath.Join(opts.Dir, opts.Pattern)
	matches, err := filepath.Glob(pattern)
	if err != nil {
		return nil, stats, errors.New(err).
			Component("ingest").
			Category(errors.CategoryFileIO).
			Context("pattern", pattern).
			Build()
	}
	stats.FilesFound = len(matches)

	logger := getLogger()
	ds := bbs.NewDataset(nil, opts.AbundanceColumn)
	if len(matches) == 0 {
		logger.Warn("no route files matched",
			"dir", opts.Dir,
			"pattern", opts.Pattern)
		for _, col := range canonicalColumns(opts.AbundanceColumn) {
			ds.DeclareColumn(col)
		}
		return ds, stats, nil
	}

	logger.Info("reading route files",
		"count", len(matches),
		"pattern", pattern)

	for _, path := range matches {
		rows, skipped, err := readRouteFile(ds, path, opts)
		if err != nil {
			logger.Warn("skipping unreadable route file",
				"file", filepath.Base(path),
				"error", err)
			stats.FilesSkipped++
			continue
		}
		logger.Debug("read route file",
			"file", filepath.Base(path),
			"rows", rows,
			"rows_skipped", skipped)
		stats.FilesRead++
		stats.RowsSkipped += skipped
	}

	stats.Records = ds.Len()
	logger.Info("route files loaded",
		"files_read", stats.FilesRead,
		"files_skipped", stats.FilesSkipped,
		"records", stats.Records,
		"rows_skipped", stats.RowsSkipped)
	return ds, stats, nil
}

func canonicalColumns(abundanceCol string) []string {
	return []string{
		bbs.ColSpecies, bbs.ColProtocol, bbs.ColYear, bbs.ColRoute,
		bbs.ColLatitude, bbs.ColLongitude, abundanceCol,
	}
}

// readRouteFile appends one file's rows to the dataset. Rows whose
// integer key fields are blank or unparseable are skipped and counted;
// numeric value fields recover to zero instead.
func readRouteFile(ds *bbs.Dataset, path string, opts Options) (rows, skipped int, err error) {
	file, err := os.Open(path)
	if err != nil {
		return 0, 0, errors.New(err).
			Component("ingest").
			Category(errors.CategoryFileIO).
			FileContext(path, 0).
			Build()
	}
	defer func() {
		_ = file.Close()
	}()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1 // published route files vary in trailing columns

	records, err := reader.ReadAll()
	if err != nil {
		return 0, 0, errors.New(err).
			Component("ingest").
			Category(errors.CategoryFileParsing).
			FileContext(path, 0).
			Build()
	}
	if len(records) == 0 {
		return 0, 0, nil
	}

	head := records[0]
	canonical := canonicalColumns(opts.AbundanceColumn)
	for _, h := range head {
		name := strings.TrimSpace(h)
		for _, c := range canonical {
			if strings.EqualFold(name, c) {
				name = c
				break
			}
		}
		ds.DeclareColumn(name)
	}

	idx := func(col string) int {
		for i, h := range head {
			if strings.EqualFold(strings.TrimSpace(h), col) {
				return i
			}
		}
		return -1
	}

	iAOU := idx(bbs.ColSpecies)
	iRPID := idx(bbs.ColProtocol)
	iYear := idx(bbs.ColYear)
	iRoute := idx(bbs.ColRoute)
	iLat := idx(bbs.ColLatitude)
	iLon := idx(bbs.ColLongitude)
	iAbundance := idx(opts.AbundanceColumn)

	var stopCols []int
	if iAbundance < 0 && opts.SumStops {
		for i, h := range head {
			if stopColumn.MatchString(strings.TrimSpace(h)) {
				stopCols = append(stopCols, i)
			}
		}
		if len(stopCols) > 0 {
			ds.DeclareColumn(opts.AbundanceColumn)
		}
	}

	for _, row := range records[1:] {
		aou, err1 := intField(row, iAOU)
		rpid, err2 := intField(row, iRPID)
		year, err3 := intField(row, iYear)
		route, err4 := intField(row, iRoute)
		if err1 != nil || err2 != nil || err3 != nil || err4 != nil {
			skipped++
			continue
		}

		abundance := 0.0
		switch {
		case iAbundance >= 0:
			abundance = floatField(row, iAbundance)
		case len(stopCols) > 0:
			for _, i := range stopCols {
				abundance += floatField(row, i)
			}
		}

		ds.Append(bbs.Record{
			AOU:       aou,
			RPID:      rpid,
			Year:      year,
			Route:     route,
			Latitude:  floatField(row, iLat),
			Longitude: floatField(row, iLon),
			Abundance: abundance,
		})
		rows++
	}
	return rows, skipped, nil
}

// intField parses an integer key field. Base 10 explicitly, since AOU
// codes in some file editions carry leading zeros.
func intField(row []string, i int) (int, error) {
	if i < 0 || i >= len(row) {
		return 0, errFieldMissing
	}
	s := strings.TrimSpace(row[i])
	if s == "" {
		return 0, errFieldMissing
	}
	return strconv.Atoi(s)
}

// floatField parses a numeric value field, recovering to zero on blanks
// and garbage.
func floatField(row []string, i int) float64 {
	if i < 0 || i >= len(row) {
		return 0
	}
	v, err := cast.ToFloat64E(strings.TrimSpace(row[i]))
	if err != nil {
		return 0
	}
	return v
}
