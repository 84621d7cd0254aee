// Package export writes analysis results as CSV or tab-separated tables.
package export

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/tphakala/bbs-go/internal/bbs"
	"github.com/tphakala/bbs-go/internal/errors"
	"github.com/tphakala/bbs-go/internal/logging"
	"github.com/tphakala/bbs-go/internal/species"
)

func getLogger() *slog.Logger {
	logger := logging.ForService("export")
	if logger == nil {
		logger = slog.Default().With("service", "export")
	}
	return logger
}

// openOutput returns the destination for a writer function. An empty
// filename selects stdout; otherwise the file is created with the given
// extension enforced. The returned closer is a no-op for stdout.
func openOutput(filename, ext string) (io.Writer, func() error, string, error) {
	if filename == "" {
		return os.Stdout, func() error { return nil }, "", nil
	}
	if !strings.HasSuffix(filename, ext) {
		filename += ext
	}
	file, err := os.Create(filename)
	if err != nil {
		return nil, nil, "", errors.New(err).
			Component("export").
			Category(errors.CategoryFileIO).
			FileContext(filename, 0).
			Build()
	}
	return file, file.Close, filename, nil
}

// WriteSummaryCSV writes ranked route summaries in CSV form. An empty
// filename writes to stdout.
func WriteSummaryCSV(summaries []bbs.RouteSummary, filename string) error {
	w, closeFn, path, err := openOutput(filename, ".csv")
	if err != nil {
		return err
	}
	defer func() {
		_ = closeFn()
	}()

	header := "route_id,num_continuous_species,min_year,max_year,num_survey_years,latitude,longitude\n"
	if _, err := io.WriteString(w, header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for _, s := range summaries {
		line := fmt.Sprintf("%d,%d,%d,%d,%d,%.5f,%.5f\n",
			s.Route, s.ContinuousSpecies, s.MinYear, s.MaxYear, s.SurveyYears, s.Latitude, s.Longitude)
		if _, err := io.WriteString(w, line); err != nil {
			return fmt.Errorf("failed to write route %d: %w", s.Route, err)
		}
	}

	if path != "" {
		getLogger().Info("route summary written", "file", path, "routes", len(summaries))
	}
	return nil
}

// WriteSummaryTable writes ranked route summaries as a tab-separated
// table with a rank column, for terminal reading. An empty filename
// writes to stdout.
func WriteSummaryTable(summaries []bbs.RouteSummary, filename string) error {
	w, closeFn, path, err := openOutput(filename, ".txt")
	if err != nil {
		return err
	}
	defer func() {
		_ = closeFn()
	}()

	header := "Rank\tRoute\tContinuous Species\tMin Year\tMax Year\tSurvey Years\tLatitude\tLongitude\n"
	if _, err := io.WriteString(w, header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for i, s := range summaries {
		line := fmt.Sprintf("%d\t%d\t%d\t%d\t%d\t%d\t%.5f\t%.5f\n",
			i+1, s.Route, s.ContinuousSpecies, s.MinYear, s.MaxYear, s.SurveyYears, s.Latitude, s.Longitude)
		if _, err := io.WriteString(w, line); err != nil {
			return fmt.Errorf("failed to write route %d: %w", s.Route, err)
		}
	}

	if path != "" {
		getLogger().Info("route summary written", "file", path, "routes", len(summaries))
	}
	return nil
}

// WritePresenceCSV writes the per-route species presence entries. An
// empty filename writes to stdout.
func WritePresenceCSV(presence []bbs.SpeciesPresence, filename string) error {
	w, closeFn, path, err := openOutput(filename, ".csv")
	if err != nil {
		return err
	}
	defer func() {
		_ = closeFn()
	}()

	header := "route_id,species_code,total_survey_years,years_present,presence_ratio,continuous\n"
	if _, err := io.WriteString(w, header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for _, p := range presence {
		line := fmt.Sprintf("%d,%d,%d,%d,%.4f,%t\n",
			p.Route, p.AOU, p.TotalSurveyYears, p.YearsPresent, p.Ratio, p.Continuous)
		if _, err := io.WriteString(w, line); err != nil {
			return fmt.Errorf("failed to write presence entry: %w", err)
		}
	}

	if path != "" {
		getLogger().Info("presence entries written", "file", path, "entries", len(presence))
	}
	return nil
}

// WriteSpeciesSummaryCSV writes per-species aggregates with resolved
// names. A nil registry leaves placeholder names. An empty filename
// writes to stdout.
func WriteSpeciesSummaryCSV(summaries []bbs.SpeciesSummary, registry *species.Registry, filename string) error {
	w, closeFn, path, err := openOutput(filename, ".csv")
	if err != nil {
		return err
	}
	defer func() {
		_ = closeFn()
	}()

	header := "aou,common_name,n_rutas,first_year,last_year,timeseries_length,detections,individuals\n"
	if _, err := io.WriteString(w, header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for _, s := range summaries {
		name := registry.CommonName(s.AOU)
		line := fmt.Sprintf("%d,%s,%d,%d,%d,%d,%d,%.0f\n",
			s.AOU, csvField(name), s.Routes, s.FirstYear, s.LastYear, s.SeriesLength, s.Detections, s.Individuals)
		if _, err := io.WriteString(w, line); err != nil {
			return fmt.Errorf("failed to write species %d: %w", s.AOU, err)
		}
	}

	if path != "" {
		getLogger().Info("species summary written", "file", path, "species", len(summaries))
	}
	return nil
}

// csvField quotes a value when it would break the row.
func csvField(s string) string {
	if strings.ContainsAny(s, ",\"\n") {
		return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
	}
	return s
}
