package engine

import (
	"github.com/Precipitator80/CS4102-Practical-1/engine/assets/loaders"
	"github.com/Precipitator80/CS4102-Practical-1/engine/core"
)

type ApplicationConfig struct {
	// The application name used as the report title and in logs.
	Name     string
	LogLevel core.LogLevel
	// Path of the TOML scene file, if any.
	ConfigPath string
	// Report format, text or latex.
	Format string
	// Decimal places every printed value is rounded to.
	Precision    int
	ShowSymbolic bool
	ShowChecks   bool
	// Where to write a plot of the point sets; empty disables it.
	PlotPath string
	// Re-run whenever the scene file changes.
	Watch bool
}

// Flags holds CLI flag values that override the scene file.
type Flags struct {
	Format string
	// Precision is ignored when negative.
	Precision int
	Verbose   bool
	Checks    bool
	LogLevel  string
	Plot      string
	Watch     bool
}

// Apply copies the [app] and [report] sections over the current values.
func (c *ApplicationConfig) Apply(f *loaders.SceneFile) {
	if f == nil {
		return
	}
	if f.App.Name != "" {
		c.Name = f.App.Name
	}
	if f.App.LogLevel != "" {
		c.LogLevel = core.ParseLogLevel(f.App.LogLevel)
	}
	r := f.Report
	if r.Format != "" {
		c.Format = r.Format
	}
	if r.Precision != nil {
		c.Precision = *r.Precision
	}
	if r.ShowSymbolic != nil {
		c.ShowSymbolic = *r.ShowSymbolic
	}
	if r.ShowChecks != nil {
		c.ShowChecks = *r.ShowChecks
	}
	if r.Plot != "" {
		c.PlotPath = r.Plot
	}
}

// Resolve lets CLI flags take priority when non-zero/non-empty.
func (c *ApplicationConfig) Resolve(flags Flags) {
	if flags.Format != "" {
		c.Format = flags.Format
	}
	if flags.Precision >= 0 {
		c.Precision = flags.Precision
	}
	if flags.Verbose {
		c.ShowSymbolic = true
	}
	if flags.Checks {
		c.ShowChecks = true
	}
	if flags.LogLevel != "" {
		c.LogLevel = core.ParseLogLevel(flags.LogLevel)
	}
	if flags.Plot != "" {
		c.PlotPath = flags.Plot
	}
	if flags.Watch {
		c.Watch = true
	}
}
