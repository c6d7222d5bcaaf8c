package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/pflag"

	"github.com/lixenwraith/cursor-trail/config"
	"github.com/lixenwraith/cursor-trail/core"
)

const usage = `cursor-trail draws a trail of markers easing toward the pointer

Usage:
  cursor-trail [term|replay|record] [flags]

Commands:
  term     interactive trail in the terminal (default)
  replay   render a scripted pointer path to PNG frames or an .mp4 file
  record   follow the desktop pointer and record the trail to an .mp4 file
`

type command struct {
	register func(*pflag.FlagSet)
	run      func(context.Context, config.Settings) error
}

var commands = map[string]command{
	"term":   {register: config.RegisterTermFlags, run: runTerm},
	"replay": {register: config.RegisterReplayFlags, run: runReplay},
	"record": {register: config.RegisterRecordFlags, run: runRecord},
}

func main() {
	// Panic recovery: restore the host before printing the trace
	defer func() {
		if r := recover(); r != nil {
			core.HandleCrash(r)
		}
	}()

	name, settings, err := parseArgs(os.Args[1:])
	if errors.Is(err, pflag.ErrHelp) {
		return
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to parse arguments: %v\n", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err = commands[name].run(ctx, settings)
	stop()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to run %s: %v\n", name, err)
		os.Exit(1)
	}
}

// parseArgs selects the command, term when none is named, and resolves its settings
func parseArgs(args []string) (string, config.Settings, error) {
	name := "term"
	if len(args) > 0 && !strings.HasPrefix(args[0], "-") {
		name, args = args[0], args[1:]
	}
	cmd, ok := commands[name]
	if !ok {
		return name, config.Settings{}, fmt.Errorf("unknown command %q", name)
	}

	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	fs.Usage = func() {
		fmt.Fprint(os.Stderr, usage)
		fmt.Fprintf(os.Stderr, "\nFlags for %s:\n%s", name, fs.FlagUsages())
	}
	config.RegisterFlags(fs)
	cmd.register(fs)
	if err := fs.Parse(args); err != nil {
		return name, config.Settings{}, err
	}

	settings, err := config.Load(fs)
	return name, settings, err
}
