// Package charts renders species time-series and route-ranking views as
// standalone HTML chart files.
package charts

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/tphakala/bbs-go/internal/bbs"
	"github.com/tphakala/bbs-go/internal/errors"
	"github.com/tphakala/bbs-go/internal/logging"
	"github.com/tphakala/bbs-go/internal/species"
)

func getLogger() *slog.Logger {
	logger := logging.ForService("charts")
	if logger == nil {
		logger = slog.Default().With("service", "charts")
	}
	return logger
}

// boolPtr creates a pointer to a boolean for chart options.
func boolPtr(b bool) *bool { return &b }

// ChartFileName returns the chart file name for a species. AOU codes are
// zero-padded to five digits so directory listings sort numerically.
func ChartFileName(aou int) string {
	return bbs.ZeroPad(aou, 5) + "routes+tts.html"
}

// TopRoutesFileName is the ranked-routes bar chart file name.
const TopRoutesFileName = "top_routes.html"

// RenderSpeciesChart writes the dual-axis time-series chart for one
// species: individuals per year on the left axis, routes reporting the
// species on the right. Returns the written file path.
func RenderSpeciesChart(dir string, ts *bbs.SpeciesTimeSeries, title string, summary bbs.SpeciesSummary) (string, error) {
	if len(ts.Individuals) == 0 {
		return "", errors.Newf("no observations to chart for species %d", ts.AOU).
			Component("charts").
			Category(errors.CategoryNotFound).
			Context("aou", ts.AOU).
			Build()
	}

	line := buildSpeciesLine(ts, title, summary)

	path := filepath.Join(dir, ChartFileName(ts.AOU))
	if err := renderToFile(line, path); err != nil {
		return "", err
	}
	getLogger().Debug("species chart written",
		"aou", ts.AOU,
		"file", path)
	return path, nil
}

func buildSpeciesLine(ts *bbs.SpeciesTimeSeries, title string, summary bbs.SpeciesSummary) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: title,
			Width:     "1200px",
			Height:    "500px",
		}),
		charts.WithTitleOpts(opts.Title{
			Title: title,
			// the original tool's per-species stats box
			Subtitle: fmt.Sprintf("n_rutas: %d | first_year: %d | last_year: %d | timeseries length: %d",
				summary.Routes, summary.FirstYear, summary.LastYear, summary.SeriesLength),
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: boolPtr(true), Trigger: "axis"}),
		charts.WithLegendOpts(opts.Legend{Show: boolPtr(true)}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Individuals"}),
	)
	line.ExtendYAxis(opts.YAxis{Name: "Routes"})

	years := make([]string, 0, len(ts.Individuals))
	individuals := make([]opts.LineData, 0, len(ts.Individuals))
	for _, yc := range ts.Individuals {
		years = append(years, strconv.Itoa(yc.Year))
		individuals = append(individuals, opts.LineData{Value: yc.Value})
	}
	routes := make([]opts.LineData, 0, len(ts.Routes))
	for _, yc := range ts.Routes {
		routes = append(routes, opts.LineData{Value: yc.Value})
	}

	line.SetXAxis(years).
		AddSeries("Individuals", individuals,
			charts.WithLineChartOpts(opts.LineChart{Symbol: "circle", ShowSymbol: boolPtr(true)}),
			charts.WithLineStyleOpts(opts.LineStyle{Color: "forestgreen"}),
			charts.WithItemStyleOpts(opts.ItemStyle{Color: "forestgreen"}),
		).
		AddSeries("Routes", routes,
			charts.WithLineChartOpts(opts.LineChart{YAxisIndex: 1, Symbol: "triangle", ShowSymbol: boolPtr(true)}),
			charts.WithLineStyleOpts(opts.LineStyle{Color: "darkgrey", Type: "dashed"}),
			charts.WithItemStyleOpts(opts.ItemStyle{Color: "darkgrey"}),
		)
	return line
}

// RenderAllSpecies renders one chart per species present in the dataset
// and returns the number written.
func RenderAllSpecies(dir string, ds *bbs.Dataset, registry *species.Registry) (int, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return 0, errors.New(err).
			Component("charts").
			Category(errors.CategoryFileIO).
			Context("dir", dir).
			Build()
	}

	summaries, err := bbs.SummarizeSpecies(ds)
	if err != nil {
		return 0, err
	}
	byAOU := make(map[int]bbs.SpeciesSummary, len(summaries))
	for _, s := range summaries {
		byAOU[s.AOU] = s
	}

	logger := getLogger()
	rendered := 0
	for _, aou := range bbs.SpeciesCodes(ds) {
		ts, err := bbs.BuildSpeciesTimeSeries(ds, aou)
		if err != nil {
			return rendered, err
		}
		if _, err := RenderSpeciesChart(dir, ts, registry.CommonName(aou), byAOU[aou]); err != nil {
			return rendered, err
		}
		rendered++
	}

	logger.Info("species charts rendered",
		"dir", dir,
		"count", rendered)
	return rendered, nil
}

// RenderTopRoutes writes the ranked-routes bar chart. Returns the
// written file path.
func RenderTopRoutes(dir string, summaries []bbs.RouteSummary) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", errors.New(err).
			Component("charts").
			Category(errors.CategoryFileIO).
			Context("dir", dir).
			Build()
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: "Top Routes",
			Width:     "1200px",
			Height:    "500px",
		}),
		charts.WithTitleOpts(opts.Title{
			Title:    "Top Routes by Continuous Species",
			Subtitle: fmt.Sprintf("%d ranked routes", len(summaries)),
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: boolPtr(true), Trigger: "item", Formatter: "{b}: {c} continuous species"}),
		charts.WithXAxisOpts(opts.XAxis{Name: "Route", AxisLabel: &opts.AxisLabel{Rotate: 45}}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Continuous species"}),
	)

	routes := make([]string, 0, len(summaries))
	counts := make([]opts.BarData, 0, len(summaries))
	for _, s := range summaries {
		routes = append(routes, strconv.Itoa(s.Route))
		counts = append(counts, opts.BarData{
			Name:  fmt.Sprintf("Route %d, %d-%d, %d survey years", s.Route, s.MinYear, s.MaxYear, s.SurveyYears),
			Value: s.ContinuousSpecies,
		})
	}
	bar.SetXAxis(routes).AddSeries("Continuous species", counts)

	path := filepath.Join(dir, TopRoutesFileName)
	if err := renderToFile(bar, path); err != nil {
		return "", err
	}
	getLogger().Info("top routes chart written",
		"file", path,
		"routes", len(summaries))
	return path, nil
}

type renderer interface {
	Render(w io.Writer) error
}

func renderToFile(chart renderer, path string) error {
	file, err := os.Create(path)
	if err != nil {
		return errors.New(err).
			Component("charts").
			Category(errors.CategoryFileIO).
			FileContext(path, 0).
			Build()
	}
	defer func() {
		_ = file.Close()
	}()

	if err := chart.Render(file); err != nil {
		return errors.New(err).
			Component("charts").
			Category(errors.CategoryChartRender).
			FileContext(path, 0).
			Build()
	}
	return nil
}
