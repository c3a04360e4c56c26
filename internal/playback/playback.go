// Package playback drives a group of animations as one unit for the command
// line runners: start, pause, restart, seek and the tick loop itself.
package playback

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/Faultbox/turtlemotion/internal/animation"
	"github.com/Faultbox/turtlemotion/internal/logger"
)

// Controller controls a fixed set of animations registered on one engine.
type Controller struct {
	engine *animation.Engine
	names  []string
	paused bool
	log    *zap.Logger
}

// New creates a controller for names. Names unknown to e are reported when
// the controller first acts on them.
func New(e *animation.Engine, names []string) *Controller {
	return &Controller{
		engine: e,
		names:  append([]string(nil), names...),
		log:    logger.Named("playback"),
	}
}

// Names returns the controlled animations.
func (c *Controller) Names() []string {
	return c.names
}

// Start plays every animation.
func (c *Controller) Start() error {
	c.paused = false
	return c.each("play", c.engine.Play)
}

// TogglePause pauses all animations, or resumes them if already paused.
func (c *Controller) TogglePause() error {
	if c.paused {
		c.log.Debug("resume")
		return c.Start()
	}
	c.paused = true
	c.log.Debug("pause")
	return c.each("pause", c.engine.Pause)
}

// Paused reports whether the group is paused.
func (c *Controller) Paused() bool {
	return c.paused
}

// Restart stops every animation and plays it again from the beginning.
func (c *Controller) Restart() error {
	if err := c.each("stop", c.engine.Stop); err != nil {
		return err
	}
	return c.Start()
}

// SeekBy moves every animation by delta of its own duration.
func (c *Controller) SeekBy(delta float64) error {
	return c.each("seek", func(name string) error {
		d, ok := c.engine.Animation(name)
		if !ok {
			return animation.ErrUnknownAnimation
		}
		return c.engine.Seek(name, d.Progress()+delta)
	})
}

// Running reports whether any controlled animation is still playing.
func (c *Controller) Running() bool {
	for _, name := range c.names {
		if d, ok := c.engine.Animation(name); ok && d.State == animation.Playing {
			return true
		}
	}
	return false
}

// Longest returns the longest duration among the controlled animations.
func (c *Controller) Longest() float64 {
	var longest float64
	for _, name := range c.names {
		if d, ok := c.engine.Animation(name); ok && d.Duration > longest {
			longest = d.Duration
		}
	}
	return longest
}

// Status returns a one-line summary such as "walk 42% span 1".
func (c *Controller) Status() string {
	parts := make([]string, 0, len(c.names))
	for _, name := range c.names {
		d, ok := c.engine.Animation(name)
		if !ok {
			continue
		}
		s := fmt.Sprintf("%s %.0f%%", name, d.Progress()*100)
		if d.CurrentSpan >= 0 {
			s += fmt.Sprintf(" span %d", d.CurrentSpan)
		}
		if d.State != animation.Playing {
			s += " " + d.State.String()
		}
		parts = append(parts, s)
	}
	return strings.Join(parts, " | ")
}

// Simulate ticks the engine with a fixed step of 1/rate seconds until nothing
// is playing or limit seconds have been simulated. A limit of zero means the
// longest controlled duration. It returns the number of ticks taken.
func (c *Controller) Simulate(rate, limit float64) (int, error) {
	step, limit, err := c.timing(rate, limit)
	if err != nil {
		return 0, err
	}

	// Status is logged once per simulated second.
	every := max(1, int(rate))
	ticks := 0
	for elapsed := 0.0; elapsed < limit && c.Running(); elapsed += step {
		c.engine.Tick(step)
		ticks++
		if ticks%every == 0 {
			c.log.Debug("tick", zap.Int("tick", ticks), zap.String("status", c.Status()))
		}
	}
	c.log.Info("simulation finished",
		zap.Int("ticks", ticks),
		zap.Float64("step", step),
		zap.Bool("running", c.Running()))
	return ticks, nil
}

// Realtime is like Simulate but paces ticks against the wall clock. It returns
// early when ctx is cancelled.
func (c *Controller) Realtime(ctx context.Context, rate, limit float64) (int, error) {
	step, limit, err := c.timing(rate, limit)
	if err != nil {
		return 0, err
	}

	ticker := time.NewTicker(time.Duration(step * float64(time.Second)))
	defer ticker.Stop()

	ticks := 0
	last := time.Now()
	start := last
	for c.Running() && time.Since(start).Seconds() < limit {
		select {
		case <-ctx.Done():
			return ticks, ctx.Err()
		case now := <-ticker.C:
			c.engine.Tick(now.Sub(last).Seconds())
			last = now
			ticks++
		}
	}
	return ticks, nil
}

func (c *Controller) timing(rate, limit float64) (float64, float64, error) {
	if rate <= 0 {
		return 0, 0, errors.Errorf("tick rate must be positive, got %v", rate)
	}
	if limit <= 0 {
		limit = c.Longest()
	}
	return 1 / rate, limit, nil
}

func (c *Controller) each(op string, fn func(string) error) error {
	for _, name := range c.names {
		if err := fn(name); err != nil {
			return errors.Wrapf(err, "%s %q", op, name)
		}
	}
	return nil
}
