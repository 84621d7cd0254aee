// Package analysis wires the BBS processing stages into complete pipeline runs.
package analysis

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/tphakala/bbs-go/internal/bbs"
	"github.com/tphakala/bbs-go/internal/charts"
	"github.com/tphakala/bbs-go/internal/conf"
	"github.com/tphakala/bbs-go/internal/diagnostics"
	"github.com/tphakala/bbs-go/internal/errors"
	"github.com/tphakala/bbs-go/internal/export"
	"github.com/tphakala/bbs-go/internal/ingest"
	"github.com/tphakala/bbs-go/internal/logging"
	"github.com/tphakala/bbs-go/internal/report"
	"github.com/tphakala/bbs-go/internal/species"
)

var (
	serviceLogger *slog.Logger
	loggerOnce    sync.Once
)

func getLogger() *slog.Logger {
	loggerOnce.Do(func() {
		serviceLogger = logging.ForService("analysis")
		if serviceLogger == nil {
			serviceLogger = slog.Default().With("service", "analysis")
		}
	})
	return serviceLogger
}

// File names for generated outputs, all placed inside the output directory.
const (
	SummaryCSVFile   = "route_summary.csv"
	SummaryTableFile = "route_summary.txt"
	PresenceCSVFile  = "species_presence.csv"
	SpeciesCSVFile   = "species_summary.csv"
	ReportFile       = "species_report.html"
)

// Result collects everything a pipeline run produced. Dataset holds the
// quality-filtered records, which downstream consumers (charts, report,
// exports) all read from.
type Result struct {
	RunID       string
	Dataset     *bbs.Dataset
	IngestStats ingest.Stats
	FilterStats bbs.FilterStats
	Presence    []bbs.SpeciesPresence
	Routes      []bbs.RouteSummary
	Species     []bbs.SpeciesSummary
	Registry    *species.Registry
	Elapsed     time.Duration
}

// Run executes the full pipeline and writes the outputs enabled in settings.
func Run(settings *conf.Settings) error {
	result, err := RunPipeline(settings)
	if err != nil {
		dumpOnFailure(settings, err)
		return err
	}

	if err := WriteOutputs(settings, result); err != nil {
		dumpOnFailure(settings, err)
		return err
	}

	fmt.Printf("\033[32m✅ Analysis completed in %s\033[0m\n", FormatDuration(result.Elapsed))
	return nil
}

// RunPipeline loads the route data and runs filter, presence and ranking in
// order. It performs no file output; WriteOutputs handles persistence.
func RunPipeline(settings *conf.Settings) (*Result, error) {
	start := time.Now()
	runID := uuid.New().String()[:8]
	logger := getLogger().With("run_id", runID)

	filter, err := filterFromSettings(settings)
	if err != nil {
		return nil, err
	}

	raw, ingestStats, err := ingest.ReadRoutes(ingest.Options{
		Dir:             settings.Input.Dir,
		Pattern:         settings.Input.Pattern,
		AbundanceColumn: settings.Input.AbundanceColumn,
		SumStops:        settings.Input.SumStops,
	})
	if err != nil {
		return nil, err
	}
	logger.Info("route data loaded",
		"files", ingestStats.FilesRead,
		"files_skipped", ingestStats.FilesSkipped,
		"rows", raw.Len(),
		"duration_ms", time.Since(start).Milliseconds())
	logMemory(settings, logger, "ingest")

	stageStart := time.Now()
	filtered, filterStats, err := filter.Apply(raw)
	if err != nil {
		return nil, err
	}
	logger.Info("quality filter applied",
		"input_rows", filterStats.Input,
		"after_first_year", filterStats.AfterFirstYear,
		"after_excluded_years", filterStats.AfterExcludedYears,
		"after_protocol", filterStats.AfterProtocol,
		"kept_rows", filterStats.AfterExclusions,
		"duration_ms", time.Since(stageStart).Milliseconds())
	logMemory(settings, logger, "filter")

	stageStart = time.Now()
	presence, err := bbs.CalculatePresence(filtered, settings.Ranking.Threshold)
	if err != nil {
		return nil, err
	}
	continuous := 0
	for i := range presence {
		if presence[i].Continuous {
			continuous++
		}
	}
	logger.Info("species presence calculated",
		"pairs", len(presence),
		"continuous", continuous,
		"threshold", settings.Ranking.Threshold,
		"duration_ms", time.Since(stageStart).Milliseconds())
	logMemory(settings, logger, "presence")

	stageStart = time.Now()
	routes, err := bbs.RankRoutes(filtered, presence, settings.Ranking.TopN)
	if err != nil {
		return nil, err
	}
	logger.Info("routes ranked",
		"routes", len(routes),
		"top_n", settings.Ranking.TopN,
		"duration_ms", time.Since(stageStart).Milliseconds())
	logMemory(settings, logger, "rank")

	summaries, err := bbs.SummarizeSpecies(filtered)
	if err != nil {
		return nil, err
	}

	return &Result{
		RunID:       runID,
		Dataset:     filtered,
		IngestStats: ingestStats,
		FilterStats: filterStats,
		Presence:    presence,
		Routes:      routes,
		Species:     summaries,
		Registry:    loadRegistry(settings, logger),
		Elapsed:     time.Since(start),
	}, nil
}

// WriteOutputs persists the results enabled in the output configuration.
// With file output disabled the route summary still prints to stdout, so a
// bare run always shows its ranking.
func WriteOutputs(settings *conf.Settings, result *Result) error {
	logger := getLogger().With("run_id", result.RunID)

	outputDir := settings.Output.Dir
	if outputDir == "" {
		outputDir = "output"
	}
	writesFiles := settings.Output.File.Enabled || settings.Output.Charts.Enabled || settings.Output.Report.Enabled
	if writesFiles {
		if err := os.MkdirAll(outputDir, 0o755); err != nil {
			return errors.New(err).
				Component("analysis").
				Category(errors.CategoryFileIO).
				Context("path", outputDir).
				Build()
		}
	}

	switch settings.Output.File.Type {
	case "", "table":
		target := ""
		if settings.Output.File.Enabled {
			target = filepath.Join(outputDir, SummaryTableFile)
		}
		if err := export.WriteSummaryTable(result.Routes, target); err != nil {
			return err
		}
	case "csv":
		target := ""
		if settings.Output.File.Enabled {
			target = filepath.Join(outputDir, SummaryCSVFile)
		}
		if err := export.WriteSummaryCSV(result.Routes, target); err != nil {
			return err
		}
	}
	if settings.Output.File.Enabled {
		if err := export.WritePresenceCSV(result.Presence, filepath.Join(outputDir, PresenceCSVFile)); err != nil {
			return err
		}
	}

	chartsDir := ""
	if settings.Output.Charts.Enabled {
		sub := settings.Output.Charts.Dir
		if sub == "" {
			sub = "charts"
		}
		chartsDir = filepath.Join(outputDir, sub)
		rendered, err := charts.RenderAllSpecies(chartsDir, result.Dataset, result.Registry)
		if err != nil {
			return err
		}
		if _, err := charts.RenderTopRoutes(chartsDir, result.Routes); err != nil {
			return err
		}
		logger.Info("charts rendered", "count", rendered, "dir", chartsDir)
	}

	if settings.Output.Report.Enabled {
		if err := export.WriteSpeciesSummaryCSV(result.Species, result.Registry, filepath.Join(outputDir, SpeciesCSVFile)); err != nil {
			return err
		}
		reportPath := filepath.Join(outputDir, ReportFile)
		if err := report.Generate(reportPath, chartsDir, settings.Output.Report.Title, result.Species, result.Registry); err != nil {
			return err
		}
	}

	return nil
}

// filterFromSettings builds the quality filter from configuration, keeping
// the built-in defaults for anything unset.
func filterFromSettings(settings *conf.Settings) (*bbs.QualityFilter, error) {
	filter := bbs.NewQualityFilter()
	if settings.Filter.FirstYear > 0 {
		filter.FirstYear = settings.Filter.FirstYear
	}
	if settings.Filter.Protocol > 0 {
		filter.Protocol = settings.Filter.Protocol
	}
	// A non-nil empty list deliberately clears the default 2020 exclusion.
	if settings.Filter.ExcludeYears != nil {
		filter.ExcludeYears = append([]int(nil), settings.Filter.ExcludeYears...)
	}
	if len(settings.Filter.ExtraExclusions) > 0 {
		filter.Exclusions.Add(settings.Filter.ExtraExclusions...)
	}
	if err := filter.Validate(); err != nil {
		return nil, err
	}
	return filter, nil
}

// loadRegistry loads the species list when one is configured. A relative
// path resolves against the input directory, where BBS distributions keep
// SpeciesList.csv next to the route files. Lookup failures degrade to AOU
// code labels instead of failing the run.
func loadRegistry(settings *conf.Settings, logger *slog.Logger) *species.Registry {
	path := settings.Input.SpeciesList
	if path == "" {
		return nil
	}
	if !filepath.IsAbs(path) {
		path = filepath.Join(settings.Input.Dir, path)
	}
	registry, err := species.LoadRegistry(path)
	if err != nil {
		logger.Warn("species list unavailable, falling back to AOU code labels",
			"path", path,
			"error", err)
		return nil
	}
	return registry
}

// logMemory emits runtime memory at debug level after a pipeline stage.
func logMemory(settings *conf.Settings, logger *slog.Logger, stage string) {
	if !settings.Debug {
		return
	}
	diagnostics.LogMemory(logger, stage)
}

// dumpOnFailure writes a diagnostics dump for a failed debug-mode run.
func dumpOnFailure(settings *conf.Settings, runErr error) {
	if !settings.Debug {
		return
	}
	path, err := diagnostics.WriteDebugDump(runErr.Error())
	if err != nil {
		getLogger().Warn("failed to write debug dump", "error", err)
		return
	}
	getLogger().Info("debug dump written", "path", path)
}
