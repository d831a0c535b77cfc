package main

import (
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/Precipitator80/CS4102-Practical-1/engine"
	"github.com/Precipitator80/CS4102-Practical-1/engine/core"
	"github.com/Precipitator80/CS4102-Practical-1/testbed"
)

func main() {
	configPath := flag.String("config", "", "Path to a TOML scene file")
	format := flag.String("format", "", "Report format: text or latex (default: text)")
	precision := flag.Int("precision", -1, "Decimal places in the report (default: 2)")
	verbose := flag.Bool("verbose", false, "Print the symbolic form of every stage")
	checks := flag.Bool("checks", false, "Print the verification checks")
	logLevel := flag.String("log-level", "", "debug, info, warn or error")
	plot := flag.String("plot", "", "Write an x/y plot of the point sets (.webp or .png)")
	watch := flag.Bool("watch", false, "Re-run whenever the scene file changes")
	flag.Parse()

	tx := testbed.NewTestExercise()
	tx.ApplicationConfig.ConfigPath = *configPath
	tx.Flags = engine.Flags{
		Format:    *format,
		Precision: *precision,
		Verbose:   *verbose,
		Checks:    *checks,
		LogLevel:  *logLevel,
		Plot:      *plot,
		Watch:     *watch,
	}

	e, err := engine.New(tx.Exercise, os.Stdout)
	if err != nil {
		core.LogFatal("%s", err)
	}
	if err := e.Initialize(); err != nil {
		core.LogFatal("%s", err)
	}

	// signal channel to capture system calls
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGTERM, syscall.SIGINT, syscall.SIGQUIT)

	go func() {
		<-sigCh
		_ = e.Shutdown()
	}()

	if err := e.Run(); err != nil {
		core.LogFatal("%s", err)
	}
	_ = e.Shutdown()
}
