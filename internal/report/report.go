// Package report renders the browsable species summary page linking to
// the per-species chart files.
package report

import (
	"embed"
	"html/template"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/tphakala/bbs-go/internal/bbs"
	"github.com/tphakala/bbs-go/internal/charts"
	"github.com/tphakala/bbs-go/internal/errors"
	"github.com/tphakala/bbs-go/internal/logging"
	"github.com/tphakala/bbs-go/internal/species"
)

//go:embed templates/species_report.html
var templateFS embed.FS

func getLogger() *slog.Logger {
	logger := logging.ForService("report")
	if logger == nil {
		logger = slog.Default().With("service", "report")
	}
	return logger
}

// Row is one species line of the report table.
type Row struct {
	AOU            int
	CommonName     string
	ScientificName string
	Routes         int
	FirstYear      int
	LastYear       int
	SeriesLength   int
	Detections     int
	Individuals    float64
	ChartPath      string // relative link to the chart page, empty when absent
}

type pageData struct {
	Title         string
	GeneratedAt   string
	TopRoutesPath string
	Rows          []Row
}

// Generate writes the species report to outputPath. Chart links resolve
// relative to the report file, so the page works from the output
// directory as written. Species without a rendered chart get a
// placeholder cell.
func Generate(outputPath, chartsDir, title string, summaries []bbs.SpeciesSummary, registry *species.Registry) error {
	tmpl, err := template.ParseFS(templateFS, "templates/species_report.html")
	if err != nil {
		return errors.New(err).
			Component("report").
			Category(errors.CategoryReportRender).
			Build()
	}

	rows := make([]Row, 0, len(summaries))
	for _, s := range summaries {
		row := Row{
			AOU:          s.AOU,
			CommonName:   registry.CommonName(s.AOU),
			Routes:       s.Routes,
			FirstYear:    s.FirstYear,
			LastYear:     s.LastYear,
			SeriesLength: s.SeriesLength,
			Detections:   s.Detections,
			Individuals:  s.Individuals,
		}
		if info, ok := registry.Lookup(s.AOU); ok {
			row.ScientificName = info.ScientificName()
		}
		row.ChartPath = chartLink(outputPath, chartsDir, charts.ChartFileName(s.AOU))
		rows = append(rows, row)
	}

	data := pageData{
		Title:         title,
		GeneratedAt:   time.Now().Format("2006-01-02 15:04"),
		TopRoutesPath: chartLink(outputPath, chartsDir, charts.TopRoutesFileName),
		Rows:          rows,
	}

	file, err := os.Create(outputPath)
	if err != nil {
		return errors.New(err).
			Component("report").
			Category(errors.CategoryFileIO).
			FileContext(outputPath, 0).
			Build()
	}
	defer func() {
		_ = file.Close()
	}()

	if err := tmpl.Execute(file, data); err != nil {
		return errors.New(err).
			Component("report").
			Category(errors.CategoryReportRender).
			FileContext(outputPath, 0).
			Build()
	}

	getLogger().Info("species report written",
		"file", outputPath,
		"species", len(rows))
	return nil
}

// chartLink returns a link to a chart file relative to the report, or ""
// when the chart does not exist on disk.
func chartLink(outputPath, chartsDir, name string) string {
	chartPath := filepath.Join(chartsDir, name)
	if _, err := os.Stat(chartPath); err != nil {
		return ""
	}
	rel, err := filepath.Rel(filepath.Dir(outputPath), chartPath)
	if err != nil {
		return filepath.ToSlash(chartPath)
	}
	return filepath.ToSlash(rel)
}
