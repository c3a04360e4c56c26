// turtleanim is the headless runner: it loads a scene, plays it at a fixed tick
// rate and can inspect or bake its timelines.
package main

import (
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/Faultbox/turtlemotion/internal/config"
	"github.com/Faultbox/turtlemotion/internal/logger"
)

var (
	flagDump     = flag.Bool("dump", false, "Dump full animation descriptors")
	flagDuration = flag.Float64("duration", 0, "Seconds to run; 0 runs the longest animation once")
	flagRealtime = flag.Bool("realtime", false, "Pace ticks against the wall clock")
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	if command == "help" || command == "-h" || command == "--help" {
		printUsage()
		return
	}
	// Config and logger flags follow the command.
	if err := flag.CommandLine.Parse(os.Args[2:]); err != nil {
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}
	if flag.NArg() > 0 && command != "config" {
		cfg.Scene = flag.Arg(0)
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	switch command {
	case "run":
		err = cmdRun(cfg)
	case "info":
		err = cmdInfo(cfg)
	case "export":
		err = cmdExport(cfg)
	case "generators":
		err = cmdGenerators()
	case "config":
		err = cmdConfig(cfg, flag.Arg(0), os.Stdout)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
	if err != nil {
		logger.Error("command failed", zap.String("command", command), zap.Error(err))
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`turtleanim - headless turtle animation runner

Usage:
  turtleanim <command> [options] [scene.yaml]

Commands:
  run <scene>         Play the scene's autoplay animations to completion
  info <scene>        List registered animations and their timelines
  export <scene>      Bake preprocessed timelines to glTF (.glb)
  generators          List built-in procedural generators
  config [file]       Print the effective config, or write it to file

Options:
  -config <file>      Config file (default: user config dir)
  -debug              Debug logging, including per-second playback status
  -log-level <lvl>    debug, info, warn or error
  -log-file <file>    Also log to a rotated file
  -fps <n>            Preprocessing frame rate for scenes that set none
  -tick-rate <n>      Ticks per simulated second
  -export <dir>       Also bake timelines after run; output dir for export
  -duration <sec>     Seconds to run (default: longest animation)
  -realtime           Tick against the wall clock instead of simulating
  -dump               Dump full descriptors (info)

Examples:
  turtleanim run scenes/arm.yaml
  turtleanim info -dump scenes/arm.yaml
  turtleanim export -export ./out scenes/arm.yaml
  turtleanim config -fps 60 ~/.config/turtlemotion/config.yaml`)
}
