package analyze

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/tphakala/bbs-go/internal/analysis"
	"github.com/tphakala/bbs-go/internal/conf"
)

// Command creates the analyze command, which runs the full filter, presence
// and ranking pipeline over a directory of BBS route files.
func Command(settings *conf.Settings) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze [data-dir]",
		Short: "Run the route quality analysis pipeline",
		Long: "Read BBS route data files, apply the data-quality filter, compute per-route\n" +
			"species presence ratios and rank routes by continuous species count.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				settings.Input.Dir = args[0]
			}
			return analysis.Run(settings)
		},
	}

	// Set up flags specific to the 'analyze' command
	if err := setupFlags(cmd, settings); err != nil {
		fmt.Printf("error setting up flags: %v\n", err)
		os.Exit(1)
	}

	return cmd
}

// setupFlags configures flags specific to the analyze command.
func setupFlags(cmd *cobra.Command, settings *conf.Settings) error {
	cmd.Flags().IntVar(&settings.Filter.FirstYear, "first-year", viper.GetInt("filter.firstyear"), "Earliest survey year to keep")
	cmd.Flags().Float64VarP(&settings.Ranking.Threshold, "threshold", "t", viper.GetFloat64("ranking.threshold"), "Presence ratio at or above which a species counts as continuous (0.0-1.0)")
	cmd.Flags().IntVarP(&settings.Ranking.TopN, "top", "n", viper.GetInt("ranking.topn"), "Keep only the N best routes, 0 keeps all")
	cmd.Flags().StringVarP(&settings.Output.File.Type, "format", "f", viper.GetString("output.file.type"), "Route summary format: table, csv")
	cmd.Flags().BoolVar(&settings.Output.File.Enabled, "write-summary", viper.GetBool("output.file.enabled"), "Write the route summary and presence files, otherwise print to stdout")
	cmd.Flags().BoolVar(&settings.Output.Charts.Enabled, "charts", viper.GetBool("output.charts.enabled"), "Render per-species time series charts")
	cmd.Flags().BoolVar(&settings.Output.Report.Enabled, "report", viper.GetBool("output.report.enabled"), "Generate the browsable species report")
	cmd.Flags().BoolVar(&settings.Input.SumStops, "sum-stops", viper.GetBool("input.sumstops"), "Derive abundance from stop count columns when the abundance column is missing")

	// Bind flags to the viper settings
	if err := viper.BindPFlags(cmd.Flags()); err != nil {
		return fmt.Errorf("error binding flags: %v", err)
	}

	return nil
}
