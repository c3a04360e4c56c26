package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"text/tabwriter"

	"github.com/davecgh/go-spew/spew"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/Faultbox/turtlemotion/internal/animation"
	"github.com/Faultbox/turtlemotion/internal/config"
	"github.com/Faultbox/turtlemotion/internal/export"
	"github.com/Faultbox/turtlemotion/internal/logger"
	"github.com/Faultbox/turtlemotion/internal/playback"
	"github.com/Faultbox/turtlemotion/internal/scenefile"
	"github.com/Faultbox/turtlemotion/pkg/math"
)

// load builds the configured scene into a fresh engine. Span messages go to out.
func load(cfg *config.Config, out io.Writer) (*animation.Engine, *scenefile.Built, error) {
	if cfg.Scene == "" {
		return nil, nil, errors.New("no scene given")
	}
	sc, err := scenefile.Load(cfg.Scene)
	if err != nil {
		return nil, nil, err
	}

	cam := &headlessCamera{pose: math.DefaultPose()}
	if p, ok := sc.CameraPose(); ok {
		cam.pose = p
	}
	e := animation.New(
		animation.WithOutput(out),
		animation.WithCamera(cam),
		animation.WithAngularVelocity(cfg.Playback.AngularVelocity),
	)

	built, err := sc.Build(e, cfg.Playback.FPS)
	if err != nil {
		return nil, nil, err
	}
	return e, built, nil
}

func cmdRun(cfg *config.Config) error {
	e, built, err := load(cfg, os.Stdout)
	if err != nil {
		return err
	}

	c := playback.New(e, built.Autoplay)
	if err := c.Start(); err != nil {
		return err
	}
	logger.Info("running scene",
		zap.String("scene", cfg.Scene),
		zap.Strings("animations", c.Names()),
		zap.Float64("tickRate", cfg.Playback.TickRate),
		zap.Bool("realtime", *flagRealtime))

	var ticks int
	if *flagRealtime {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()
		ticks, err = c.Realtime(ctx, cfg.Playback.TickRate, *flagDuration)
		if errors.Is(err, context.Canceled) {
			err = nil
		}
	} else {
		ticks, err = c.Simulate(cfg.Playback.TickRate, *flagDuration)
	}
	if err != nil {
		return err
	}
	fmt.Printf("%d ticks: %s\n", ticks, c.Status())

	if cfg.Export.Dir != "" {
		return bake(e, built.Animations, cfg.Export)
	}
	return nil
}

func cmdInfo(cfg *config.Config) error {
	e, built, err := load(cfg, io.Discard)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tTARGET\tKIND\tSPANS\tFRAMES\tDURATION\tLOOP\tEASING")
	for _, name := range built.Animations {
		d, _ := e.Animation(name)
		fmt.Fprintf(w, "%s\t%s\t%v\t%d\t%d\t%.2fs\t%v\t%v\n",
			d.Name, d.Target, d.Kind, len(d.Spans), d.TotalFrames, d.Duration, d.Loop, d.Easing)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if *flagDump {
		for _, name := range built.Animations {
			d, _ := e.Animation(name)
			spew.Dump(d)
		}
	}
	return nil
}

func cmdExport(cfg *config.Config) error {
	e, built, err := load(cfg, io.Discard)
	if err != nil {
		return err
	}
	exp := cfg.Export
	if exp.Dir == "" {
		exp.Dir = "."
	}
	return bake(e, built.Animations, exp)
}

// bake writes one .glb per preprocessed animation.
func bake(e *animation.Engine, names []string, exp config.ExportConfig) error {
	for _, name := range names {
		d, _ := e.Animation(name)
		if d.Kind != animation.KindPreprocessed {
			logger.Debug("skipping procedural animation", zap.String("animation", name))
			continue
		}
		path, err := export.ToFile(exp.Dir, d, exp.Stride)
		if err != nil {
			return err
		}
		logger.Info("exported timeline",
			zap.String("animation", name),
			zap.String("path", path),
			zap.Int("frames", d.TotalFrames))
		fmt.Println(path)
	}
	return nil
}

func cmdGenerators() error {
	for _, name := range scenefile.GeneratorNames() {
		fmt.Println(name)
	}
	return nil
}

// cmdConfig prints the effective configuration, or writes it to path.
func cmdConfig(cfg *config.Config, path string, out io.Writer) error {
	if path == "" {
		data, err := cfg.Marshal()
		if err != nil {
			return err
		}
		_, err = out.Write(data)
		return err
	}
	if err := cfg.SaveTo(path); err != nil {
		return err
	}
	logger.Info("config written", zap.String("path", path))
	return nil
}
