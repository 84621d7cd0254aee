package cmd

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/tphakala/bbs-go/cmd/analyze"
	"github.com/tphakala/bbs-go/cmd/report"
	"github.com/tphakala/bbs-go/cmd/species"
	"github.com/tphakala/bbs-go/cmd/support"
	"github.com/tphakala/bbs-go/internal/conf"
	"github.com/tphakala/bbs-go/internal/logging"
)

// RootCommand creates and returns the root command
func RootCommand(settings *conf.Settings) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "bbs",
		Short:   "BBS-Go route quality analyzer",
		Version: fmt.Sprintf("%s (built %s)", settings.Version, settings.BuildDate),
	}

	// Set up the global flags for the root command.
	if err := setupFlags(rootCmd, settings); err != nil {
		fmt.Printf("error setting up flags: %v\n", err)
	}

	// Add sub-commands to the root command.
	subcommands := []*cobra.Command{
		analyze.Command(settings),
		report.Command(settings),
		species.Command(settings),
		support.Command(settings),
	}
	rootCmd.AddCommand(subcommands...)

	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		if settings.Debug {
			logging.SetLevel(slog.LevelDebug)
		}
		return nil
	}

	return rootCmd
}

// setupFlags defines flags that are global to the command line interface
func setupFlags(rootCmd *cobra.Command, settings *conf.Settings) error {
	rootCmd.PersistentFlags().BoolVarP(&settings.Debug, "debug", "d", viper.GetBool("debug"), "Enable debug output")
	rootCmd.PersistentFlags().StringVarP(&settings.Input.Dir, "input", "i", viper.GetString("input.dir"), "Directory containing BBS route data files")
	rootCmd.PersistentFlags().StringVar(&settings.Input.Pattern, "pattern", viper.GetString("input.pattern"), "Glob pattern matching route data files")
	rootCmd.PersistentFlags().StringVar(&settings.Input.SpeciesList, "species-list", viper.GetString("input.specieslist"), "Path to the BBS species list CSV, relative paths resolve against the input directory")
	rootCmd.PersistentFlags().StringVarP(&settings.Output.Dir, "output", "o", viper.GetString("output.dir"), "Directory for generated files")

	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		return fmt.Errorf("error binding flags: %v", err)
	}

	return nil
}
