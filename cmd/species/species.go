package species

import (
	"github.com/spf13/cobra"

	"github.com/tphakala/bbs-go/internal/analysis"
	"github.com/tphakala/bbs-go/internal/conf"
	"github.com/tphakala/bbs-go/internal/export"
)

// Command creates the species command, which summarizes per-species coverage
// across the filtered dataset.
func Command(settings *conf.Settings) *cobra.Command {
	var csvPath string

	cmd := &cobra.Command{
		Use:   "species [data-dir]",
		Short: "Summarize species coverage across routes",
		Long: "Run the data-quality filter and print per-species aggregates: routes\n" +
			"reporting the species, year span, detections and total individuals.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				settings.Input.Dir = args[0]
			}
			result, err := analysis.RunPipeline(settings)
			if err != nil {
				return err
			}
			return export.WriteSpeciesSummaryCSV(result.Species, result.Registry, csvPath)
		},
	}

	cmd.Flags().StringVar(&csvPath, "csv", "", "Write the summary to this file instead of stdout")

	return cmd
}
