package engine

import (
	"github.com/Precipitator80/CS4102-Practical-1/engine/pipeline"
)

// Exercise is the concrete problem handed to the engine: default settings,
// the scene to evaluate and the hooks called around each run.
type Exercise struct {
	ApplicationConfig *ApplicationConfig
	// Flags are applied on top of the scene file on every (re)load.
	Flags      Flags
	Scene      pipeline.Scene
	Symbols    pipeline.Symbols
	FnBoot     Boot
	FnOnReport OnReport
}

type Boot func() error
type OnReport func(report *pipeline.Report) error
