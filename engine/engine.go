package engine

import (
	"errors"
	"fmt"
	"image/color"
	"io"
	"sync"

	"github.com/Precipitator80/CS4102-Practical-1/engine/assets"
	"github.com/Precipitator80/CS4102-Practical-1/engine/assets/loaders"
	"github.com/Precipitator80/CS4102-Practical-1/engine/containers"
	"github.com/Precipitator80/CS4102-Practical-1/engine/core"
	"github.com/Precipitator80/CS4102-Practical-1/engine/pipeline"
	"github.com/Precipitator80/CS4102-Practical-1/engine/renderer"
	"github.com/Precipitator80/CS4102-Practical-1/engine/report"
)

type Stage uint8

const (
	// Engine is in an uninitialized state
	EngineStageUninitialized Stage = iota
	// Engine is currently booting up
	EngineStageBooting
	// Engine completed boot process and is ready to be initialized
	EngineStageBootComplete
	// Engine is currently initializing
	EngineStageInitializing
	// Engine initialization is complete
	EngineStageInitialized
	// Engine is currently running
	EngineStageRunning
	// Engine is in the process of shutting down
	EngineStageShuttingDown
)

const (
	plotWidth   = 800
	plotHeight  = 800
	// Reports kept for comparing watch mode re-runs.
	historySize = 8
)

type Engine struct {
	currentStage Stage
	exercise     *Exercise
	assetManager *assets.AssetManager
	out          io.Writer

	// Resolved on Initialize and on every reload.
	config ApplicationConfig
	scene  pipeline.Scene
	writer report.Writer

	history  *containers.RingQueue[*pipeline.Report]
	done     chan struct{}
	shutdown sync.Once
}

// New prepares an engine that writes its reports to out.
func New(x *Exercise, out io.Writer) (*Engine, error) {
	if x.ApplicationConfig == nil {
		return nil, errors.New("exercise has no application config")
	}
	am, err := assets.NewAssetManager()
	if err != nil {
		core.LogError("%s", err)
		return nil, err
	}
	return &Engine{
		currentStage: EngineStageUninitialized,
		exercise:     x,
		assetManager: am,
		out:          out,
		history:      containers.NewRingQueue[*pipeline.Report](historySize),
		done:         make(chan struct{}),
	}, nil
}

func (e *Engine) Initialize() error {
	if e.currentStage != EngineStageUninitialized {
		return fmt.Errorf("%w: initialize called twice", core.ErrEngineStage)
	}
	e.currentStage = EngineStageBooting
	if e.exercise.FnBoot != nil {
		if err := e.exercise.FnBoot(); err != nil {
			return err
		}
	}
	e.currentStage = EngineStageBootComplete

	e.currentStage = EngineStageInitializing
	if err := e.reload(); err != nil {
		return err
	}
	e.currentStage = EngineStageInitialized
	core.LogInfo("%s initialized", e.config.Name)
	return nil
}

// reload rebuilds the config and scene from the exercise defaults, the
// scene file and the CLI flags, in that order.
func (e *Engine) reload() error {
	config := *e.exercise.ApplicationConfig
	var file *loaders.SceneFile
	if config.ConfigPath != "" {
		resource, err := e.assetManager.Load(config.ConfigPath)
		if err != nil {
			return err
		}
		file = resource.Data.(*loaders.SceneFile)
		defer e.assetManager.Unload(resource)
	}
	config.Apply(file)
	config.Resolve(e.exercise.Flags)

	scene, err := applyScene(e.exercise.Scene, file)
	if err != nil {
		return err
	}
	scene.Precision = config.Precision
	if err := scene.Validate(); err != nil {
		return err
	}
	writer, err := report.NewWriter(config.Format, report.Options{
		ShowSymbolic: config.ShowSymbolic,
		ShowChecks:   config.ShowChecks,
	})
	if err != nil {
		return err
	}
	if config.PlotPath != "" {
		if _, err := renderer.EncoderFor(config.PlotPath); err != nil {
			return err
		}
	}

	core.SetLogLevel(config.LogLevel)
	e.config = config
	e.scene = scene
	e.writer = writer
	return nil
}

// Run evaluates the scene once and, in watch mode, again after every change
// to the scene file until Shutdown is called.
func (e *Engine) Run() error {
	if e.currentStage != EngineStageInitialized {
		return fmt.Errorf("%w: run before initialize", core.ErrEngineStage)
	}
	e.currentStage = EngineStageRunning

	if _, err := e.RunOnce(); err != nil {
		if !e.config.Watch {
			return err
		}
		core.LogError("%s", err)
	}
	if !e.config.Watch {
		return nil
	}
	err := e.watch()
	e.currentStage = EngineStageShuttingDown
	return err
}

// RunOnce evaluates the pipeline and writes its report.
func (e *Engine) RunOnce() (*pipeline.Report, error) {
	runID := core.NewRunID()
	core.LogInfo("run %s: %d points, precision %d", runID.Short(), e.pointCount(), e.scene.Precision)

	p, err := pipeline.New(e.scene, e.exercise.Symbols, runID)
	if err != nil {
		return nil, err
	}
	r, err := p.Run()
	if err != nil {
		return nil, err
	}
	for _, s := range r.Failed() {
		core.LogWarn("run %s: check %q failed", runID.Short(), s.Name)
	}
	if prev, err := e.history.Back(); err == nil {
		changed := r.Changed(prev)
		core.LogInfo("run %s: %d of %d steps changed since run %s", runID.Short(), len(changed), len(r.Steps), prev.RunID.Short())
		for _, name := range changed {
			core.LogDebug("run %s: %s changed", runID.Short(), name)
		}
	}
	e.history.Push(r)

	if err := e.writer.Write(e.out, r); err != nil {
		return nil, err
	}
	if e.config.PlotPath != "" {
		if err := e.plot(r); err != nil {
			return nil, err
		}
		core.LogInfo("run %s: plot written to %s", runID.Short(), e.config.PlotPath)
	}
	if e.exercise.FnOnReport != nil {
		if err := e.exercise.FnOnReport(r); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// History returns the kept reports, oldest first.
func (e *Engine) History() []*pipeline.Report {
	out := make([]*pipeline.Report, 0, e.history.Len())
	for i := 0; i < e.history.Len(); i++ {
		r, _ := e.history.Dequeue()
		out = append(out, r)
		e.history.Push(r)
	}
	return out
}

func (e *Engine) pointCount() int {
	_, c := e.scene.Points.Dims()
	return c
}

func (e *Engine) plot(r *pipeline.Report) error {
	p := renderer.NewPlot(plotWidth, plotHeight)
	p.Add("original", e.scene.Points, color.NRGBA{R: 90, G: 90, B: 90, A: 255})
	for _, s := range []struct {
		step   string
		colour color.NRGBA
	}{
		{pipeline.StepModelViewPoints, color.NRGBA{R: 30, G: 110, B: 220, A: 255}},
		{pipeline.StepScaledPoints, color.NRGBA{R: 220, G: 60, B: 40, A: 255}},
	} {
		step, ok := r.Step(s.step)
		if !ok {
			return fmt.Errorf("report has no %q step", s.step)
		}
		points, err := step.Value.Numeric()
		if err != nil {
			return err
		}
		p.Add(s.step, points, s.colour)
	}
	return p.Save(e.config.PlotPath)
}

func (e *Engine) watch() error {
	path := e.config.ConfigPath
	if path == "" {
		return errors.New("watch mode needs a scene file")
	}
	if err := e.assetManager.Watch(path); err != nil {
		if errors.Is(err, core.ErrWatcherClosed) {
			// Shutdown won the race.
			return nil
		}
		return err
	}
	core.LogInfo("watching %s for changes", path)

	for {
		select {
		case _, ok := <-e.assetManager.Changes():
			if !ok {
				return nil
			}
			if err := e.reload(); err != nil {
				core.LogError("reload %s: %s", path, err)
				continue
			}
			if _, err := e.RunOnce(); err != nil {
				core.LogError("%s", err)
			}
		case err, ok := <-e.assetManager.Errors():
			if !ok {
				return nil
			}
			core.LogWarn("watcher: %s", err)
		case <-e.done:
			return nil
		}
	}
}

func (e *Engine) Shutdown() error {
	var err error
	e.shutdown.Do(func() {
		close(e.done)
		err = e.assetManager.Close()
	})
	return err
}
