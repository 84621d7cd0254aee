package support

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tphakala/bbs-go/internal/conf"
	"github.com/tphakala/bbs-go/internal/diagnostics"
)

// Command creates the support command, which writes a diagnostics dump for
// troubleshooting failed or slow runs.
func Command(settings *conf.Settings) *cobra.Command {
	return &cobra.Command{
		Use:   "support",
		Short: "Write a diagnostics dump for troubleshooting",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Println("Collecting diagnostics...")
			fmt.Println(diagnostics.Capture().String())

			path, err := diagnostics.WriteDebugDump("manual support dump")
			if err != nil {
				return fmt.Errorf("error writing diagnostics dump: %w", err)
			}
			fmt.Println("Diagnostics written to:", path)
			return nil
		},
	}
}
