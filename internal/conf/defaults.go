// conf/defaults.go default values for settings
package conf

import (
	"time"

	"github.com/spf13/viper"
)

// Sets default values for the configuration.
func setDefaultConfig() {
	viper.SetDefault("debug", false)

	viper.SetDefault("main.name", "BBS-Go")
	viper.SetDefault("main.log.enabled", true)
	viper.SetDefault("main.log.path", "bbs.log")
	viper.SetDefault("main.log.rotation", RotationDaily)
	viper.SetDefault("main.log.maxsize", 1048576)
	viper.SetDefault("main.log.rotationday", time.Sunday)

	viper.SetDefault("input.dir", "data/")
	viper.SetDefault("input.pattern", DefaultRoutePattern)
	viper.SetDefault("input.abundancecolumn", DefaultAbundanceColumn)
	viper.SetDefault("input.specieslist", SpeciesListCSV)
	viper.SetDefault("input.sumstops", true)

	// Protocol 101 marks standard runs; the 2020 season was curtailed and
	// skews continuity, so it is dropped by default.
	viper.SetDefault("filter.firstyear", 1997)
	viper.SetDefault("filter.protocol", 101)
	viper.SetDefault("filter.excludeyears", []int{2020})
	viper.SetDefault("filter.extraexclusions", []int{})

	viper.SetDefault("ranking.threshold", 0.9)
	viper.SetDefault("ranking.topn", 0)

	viper.SetDefault("output.dir", "output/")
	viper.SetDefault("output.file.enabled", true)
	viper.SetDefault("output.file.type", "table")
	viper.SetDefault("output.charts.enabled", true)
	viper.SetDefault("output.charts.dir", "charts")
	viper.SetDefault("output.report.enabled", true)
	viper.SetDefault("output.report.title", "BBS Route Quality Report")
}
