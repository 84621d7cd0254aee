// conf/consts.go hard coded constants
package conf

const (
	DefaultAbundanceColumn = "Number of individuals" // column holding per-record counts in BBS route files
	DefaultRoutePattern    = "F*.csv"                // glob matching BBS fifty-stop route data files
	SpeciesListCSV         = "SpeciesList.csv"       // BBS species list file name

	StopColumnCount = 50 // fifty-stop files carry Stop1..Stop50 count columns
)
