package main

import (
	"fmt"
	"os"

	"github.com/tphakala/bbs-go/cmd"
	"github.com/tphakala/bbs-go/internal/buildinfo"
	"github.com/tphakala/bbs-go/internal/conf"
	"github.com/tphakala/bbs-go/internal/logging"
)

// Populated at build time through -ldflags.
var (
	version   string
	buildDate string
)

func main() {
	logging.Init()

	build := buildinfo.NewContext(version, buildDate)

	settings, err := conf.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		os.Exit(1)
	}
	settings.Version = build.Version()
	settings.BuildDate = build.BuildDate()

	if err := cmd.RootCommand(settings).Execute(); err != nil {
		os.Exit(1)
	}
}
