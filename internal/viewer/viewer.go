// Package viewer implements the interactive render loop: it owns the window,
// the GL renderer, the orbit camera and an animation engine loaded from a scene.
package viewer

import (
	"fmt"
	"io"
	"time"

	"github.com/pkg/errors"
	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/turtlemotion/internal/animation"
	"github.com/Faultbox/turtlemotion/internal/config"
	"github.com/Faultbox/turtlemotion/internal/engine/camera"
	"github.com/Faultbox/turtlemotion/internal/engine/input"
	"github.com/Faultbox/turtlemotion/internal/engine/renderer"
	"github.com/Faultbox/turtlemotion/internal/engine/screenshot"
	"github.com/Faultbox/turtlemotion/internal/engine/window"
	"github.com/Faultbox/turtlemotion/internal/logger"
	"github.com/Faultbox/turtlemotion/internal/playback"
	"github.com/Faultbox/turtlemotion/internal/scenefile"
)

// seekStep is the share of each animation skipped by the arrow keys.
const seekStep = 0.05

// Viewer is the main viewer instance.
type Viewer struct {
	config   *config.Config
	log      *zap.Logger
	running  bool
	window   *window.Window
	renderer *renderer.Renderer
	input    *input.Input
	camera   *camera.OrbitCamera
	engine   *animation.Engine
	playback *playback.Controller
	shots    *screenshot.Capture
	capture  bool
}

// New opens the window and loads sc into a fresh engine. Span messages are
// written to out.
func New(cfg *config.Config, sc *scenefile.Scene, out io.Writer) (*Viewer, error) {
	v := &Viewer{
		config: cfg,
		log:    logger.Named("viewer"),
	}
	v.log.Info("initializing viewer",
		zap.String("title", cfg.Viewer.Title),
		zap.Int("width", cfg.Viewer.Width),
		zap.Int("height", cfg.Viewer.Height),
	)

	// Create window (this also creates OpenGL context)
	var err error
	v.window, err = window.New(window.Config{
		Title:      cfg.Viewer.Title,
		Width:      cfg.Viewer.Width,
		Height:     cfg.Viewer.Height,
		Fullscreen: cfg.Viewer.Fullscreen,
		VSync:      cfg.Viewer.VSync,
	})
	if err != nil {
		return nil, errors.Wrap(err, "create window")
	}

	// Renderer must come after the window, since the OpenGL context must exist
	w, h := v.window.GetSize()
	v.renderer, err = renderer.New(renderer.DefaultConfig(w, h))
	if err != nil {
		v.window.Close()
		return nil, errors.Wrap(err, "create renderer")
	}

	v.input = input.New()
	v.shots = screenshot.New(cfg.Viewer.ScreenshotDir, "turtlemotion", cfg.Viewer.ScreenshotFormat)
	v.camera = camera.NewOrbitCamera()
	v.engine = animation.New(
		animation.WithRenderer(v.renderer),
		animation.WithCamera(v.camera),
		animation.WithOutput(out),
		animation.WithAngularVelocity(cfg.Playback.AngularVelocity),
	)

	built, err := sc.Build(v.engine, cfg.Playback.FPS)
	if err != nil {
		v.Close()
		return nil, errors.Wrap(err, "build scene")
	}
	v.uploadMeshes()
	v.frameCamera(sc)

	v.playback = playback.New(v.engine, built.Autoplay)
	if err := v.playback.Start(); err != nil {
		v.Close()
		return nil, err
	}

	v.log.Info("viewer initialized", zap.Strings("autoplay", built.Autoplay))
	return v, nil
}

// uploadMeshes pushes the rest geometry of every mesh so it is visible before
// its first animation frame.
func (v *Viewer) uploadMeshes() {
	for _, name := range v.engine.Meshes() {
		m, _ := v.engine.Mesh(name)
		v.renderer.UpdateGeometry(name, m.Vertices, m.Faces)
	}
}

// frameCamera starts the orbit camera at the scene's camera pose, or fits it to
// the meshes when the scene has none.
func (v *Viewer) frameCamera(sc *scenefile.Scene) {
	if p, ok := sc.CameraPose(); ok {
		v.camera.ApplyPose(p)
		v.camera.EnableOrbitControls()
		return
	}
	if b, ok := sceneBounds(v.engine); ok {
		v.camera.FitToBounds(b.Min, b.Max)
	}
}

// Run starts the main loop.
func (v *Viewer) Run() error {
	v.running = true

	lastTime := time.Now()
	frameCount := 0
	fpsTimer := time.Now()

	v.log.Info("starting render loop")

	for v.running {
		now := time.Now()
		dt := now.Sub(lastTime).Seconds()
		lastTime = now

		if v.input.Update() {
			v.running = false
			break
		}
		if err := v.handleInput(); err != nil {
			return errors.Wrap(err, "input")
		}

		v.update(dt)
		v.render()
		if v.capture {
			v.capture = false
			v.saveScreenshot()
		}
		v.window.SwapBuffers()

		frameCount++
		if time.Since(fpsTimer) >= time.Second {
			meshes, tris := v.renderer.Stats()
			v.window.SetTitle(fmt.Sprintf("%s - %d fps - %s", v.config.Viewer.Title, frameCount, v.playback.Status()))
			v.log.Debug("fps",
				zap.Int("count", frameCount),
				zap.Int("meshes", meshes),
				zap.Int("triangles", tris))
			frameCount = 0
			fpsTimer = time.Now()
		}
	}

	return nil
}

// Close cleans up viewer resources.
func (v *Viewer) Close() {
	v.log.Info("closing viewer")

	if v.renderer != nil {
		v.renderer.Close()
	}
	if v.window != nil {
		v.window.Close()
	}
}

func (v *Viewer) handleInput() error {
	for _, event := range v.input.Events() {
		switch event.Type {
		case input.EventWindowResize:
			v.renderer.Resize(v.window.GetSize())
		case input.EventMouseMove:
			if v.input.IsButtonDown(sdl.BUTTON_LEFT) {
				v.camera.HandleDrag(float64(event.DeltaX), float64(event.DeltaY))
			}
		case input.EventMouseWheel:
			v.camera.HandleZoom(float64(event.DeltaY))
		}
	}

	switch {
	case v.input.IsKeyPressed(sdl.SCANCODE_ESCAPE):
		v.running = false
	case v.input.IsKeyPressed(sdl.SCANCODE_F12):
		v.capture = true
	case v.input.IsKeyPressed(sdl.SCANCODE_F11):
		if err := v.window.ToggleFullscreen(); err != nil {
			v.log.Warn("fullscreen toggle failed", zap.Error(err))
		}
	case v.input.IsKeyPressed(sdl.SCANCODE_SPACE):
		return v.playback.TogglePause()
	case v.input.IsKeyPressed(sdl.SCANCODE_R):
		return v.playback.Restart()
	case v.input.IsKeyPressed(sdl.SCANCODE_RIGHT):
		return v.playback.SeekBy(seekStep)
	case v.input.IsKeyPressed(sdl.SCANCODE_LEFT):
		return v.playback.SeekBy(-seekStep)
	}
	return nil
}

func (v *Viewer) update(dt float64) {
	v.camera.HandleMovement(
		v.input.Axis(sdl.SCANCODE_W, sdl.SCANCODE_S),
		v.input.Axis(sdl.SCANCODE_D, sdl.SCANCODE_A),
		v.input.Axis(sdl.SCANCODE_E, sdl.SCANCODE_Q),
	)
	v.engine.Tick(clampDT(dt, v.config.Playback.MaxDT))
}

// saveScreenshot reads back the frame just drawn. Failures are logged only.
func (v *Viewer) saveScreenshot() {
	pixels, w, h := v.renderer.ReadPixels()
	path, err := v.shots.FromPixels(pixels, w, h)
	if err != nil {
		v.log.Warn("screenshot failed", zap.Error(err))
		return
	}
	v.log.Info("screenshot saved", zap.String("path", path))
}

func (v *Viewer) render() {
	v.renderer.Begin()
	v.renderer.Draw(v.camera.ViewMatrix())
}
