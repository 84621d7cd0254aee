// Package buildinfo contains build-time metadata separate from user configuration
package buildinfo

// UnknownValue is returned for metadata the build system did not inject.
const UnknownValue = "unknown"

// BuildInfo provides an interface for accessing build-time metadata.
// This interface makes testing easier and allows for different implementations.
type BuildInfo interface {
	// Version returns the build version string
	Version() string
	// BuildDate returns the build date string
	BuildDate() string
}

// Context contains build-time metadata that is not user-configurable.
// This data is injected at application startup and should not be part
// of the configuration system.
type Context struct {
	// version holds the Git version tag from build
	version string

	// buildDate is the time when the binary was built
	buildDate string
}

// NewContext creates a build metadata context from injected values.
func NewContext(version, buildDate string) *Context {
	return &Context{
		version:   version,
		buildDate: buildDate,
	}
}

// Version implements BuildInfo.Version
func (c *Context) Version() string {
	if c == nil || c.version == "" {
		return UnknownValue
	}
	return c.version
}

// BuildDate implements BuildInfo.BuildDate
func (c *Context) BuildDate() string {
	if c == nil || c.buildDate == "" {
		return UnknownValue
	}
	return c.buildDate
}
