// Package main is the entry point for the tactile demo.
//
// It loads a binding table (and optional Lua scripts), opens the
// terminal, and shows the lifecycle events the engine emits as you press
// keys and move the mouse. Saving the binding table reloads it live.
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dshills/tactile/internal/app"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	opts := parseFlags()

	application, err := app.New(opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to initialize: %v\n", err)
		return 1
	}
	defer application.Shutdown()

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-signals
		application.Shutdown()
	}()

	if err := application.Run(); err != nil {
		if errors.Is(err, app.ErrQuit) {
			return 0
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func parseFlags() app.Options {
	var opts app.Options
	var scripts stringList
	var showVersion bool

	flag.StringVar(&opts.BindingsPath, "bindings", "bindings.toml", "Path to the binding table")
	flag.StringVar(&opts.BindingsPath, "b", "bindings.toml", "Path to the binding table (shorthand)")
	flag.Var(&scripts, "script", "Lua script declaring custom types (repeatable)")
	flag.DurationVar(&opts.TickRate, "tick", 16*time.Millisecond, "Evaluation step")
	flag.StringVar(&opts.Consumer, "consumer", "player", "Consumer ID for the table's contexts")
	flag.BoolVar(&showVersion, "version", false, "Show version information")
	flag.BoolVar(&showVersion, "v", false, "Show version information (shorthand)")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Tactile - contextual input mapping demo\n\n")
		fmt.Fprintf(os.Stderr, "Usage: tactile [options]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  tactile -b game.toml              Run a binding table\n")
		fmt.Fprintf(os.Stderr, "  tactile -b game.toml -script x.lua  Add scripted types\n")
	}

	flag.Parse()

	if showVersion {
		fmt.Printf("Tactile %s\n", version)
		fmt.Printf("Commit: %s\n", commit)
		os.Exit(0)
	}

	opts.ScriptPaths = scripts
	return opts
}

// stringList is a repeatable string flag.
type stringList []string

func (s *stringList) String() string { return fmt.Sprint([]string(*s)) }

func (s *stringList) Set(v string) error {
	*s = append(*s, v)
	return nil
}
