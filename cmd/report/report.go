package report

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/tphakala/bbs-go/internal/analysis"
	"github.com/tphakala/bbs-go/internal/conf"
)

var noCharts bool

// Command creates the report command, which regenerates the species summary
// report and its charts without writing the route summary exports.
func Command(settings *conf.Settings) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report [data-dir]",
		Short: "Generate the browsable species summary report",
		Long: "Run the analysis pipeline and generate the species summary report with\n" +
			"per-species time series charts, skipping the route summary exports.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				settings.Input.Dir = args[0]
			}
			settings.Output.File.Enabled = false
			settings.Output.Report.Enabled = true
			settings.Output.Charts.Enabled = !noCharts
			return analysis.Run(settings)
		},
	}

	// Set up flags specific to the 'report' command
	if err := setupFlags(cmd, settings); err != nil {
		fmt.Printf("error setting up flags: %v\n", err)
		os.Exit(1)
	}

	return cmd
}

// setupFlags configures flags specific to the report command.
func setupFlags(cmd *cobra.Command, settings *conf.Settings) error {
	cmd.Flags().StringVar(&settings.Output.Report.Title, "title", viper.GetString("output.report.title"), "Report page title")
	cmd.Flags().BoolVar(&noCharts, "no-charts", false, "Skip chart rendering, report rows link nothing")

	// Bind flags to the viper settings
	if err := viper.BindPFlags(cmd.Flags()); err != nil {
		return fmt.Errorf("error binding flags: %v", err)
	}

	return nil
}
