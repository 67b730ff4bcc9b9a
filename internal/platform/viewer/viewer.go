// Package viewer runs the demo inside an SDL window: it replays the same
// scripted marker detections the headless session uses, and renders the
// anchored scene with OpenGL while acting as the render-tick source.
package viewer

import (
	"fmt"
	gomath "math"

	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/markerlens/internal/ar"
	"github.com/Faultbox/markerlens/internal/engine/renderer"
	"github.com/Faultbox/markerlens/internal/engine/scene"
	"github.com/Faultbox/markerlens/internal/engine/window"
	"github.com/Faultbox/markerlens/internal/logger"
	"github.com/Faultbox/markerlens/internal/platform/sim"
	"github.com/Faultbox/markerlens/pkg/math"
)

// Config holds viewer configuration.
type Config struct {
	Title      string
	Width      int
	Height     int
	Fullscreen bool
	VSync      bool
}

// Viewer is the SDL-backed session implementation.
type Viewer struct {
	*ar.Hub

	cfg    Config
	sc     *scene.Scene
	script sim.Script
}

// New creates a viewer replaying script over sc. The window is not opened
// until Run.
func New(cfg Config, sc *scene.Scene, script sim.Script) *Viewer {
	if cfg.Title == "" {
		cfg.Title = "markerlens"
	}
	return &Viewer{
		Hub:    ar.NewHub(),
		cfg:    cfg,
		sc:     sc,
		script: script,
	}
}

// Run opens the window and drives the event loop until the window is
// closed or Escape is pressed.
func (v *Viewer) Run() error {
	win, err := window.New(window.Config{
		Title:      v.cfg.Title,
		Width:      v.cfg.Width,
		Height:     v.cfg.Height,
		Fullscreen: v.cfg.Fullscreen,
		VSync:      v.cfg.VSync,
	})
	if err != nil {
		return fmt.Errorf("creating window: %w", err)
	}
	defer win.Close()

	rend, err := renderer.New(renderer.Config{
		Width:  v.cfg.Width,
		Height: v.cfg.Height,
	})
	if err != nil {
		return fmt.Errorf("creating renderer: %w", err)
	}
	defer rend.Close()

	// Fixed camera looking down at the marker area from slightly above.
	eye := math.Vec3{X: 0.35, Y: 0.4, Z: 0.7}
	center := math.Vec3{Y: ar.PlaneHeightOffset / 2}

	logger.Log.Info("viewer running", zap.Int("scripted_steps", len(v.script.Steps)))

	steps := v.script.Sorted()
	next := 0
	frame := 0
	running := true
	for running {
		for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
			switch e := event.(type) {
			case *sdl.QuitEvent:
				running = false
			case *sdl.KeyboardEvent:
				if e.Type == sdl.KEYDOWN && e.Keysym.Scancode == sdl.SCANCODE_ESCAPE {
					running = false
				}
			case *sdl.WindowEvent:
				if e.Event == sdl.WINDOWEVENT_RESIZED {
					rend.Resize(int(e.Data1), int(e.Data2))
				}
			}
		}

		// Scheduled platform events for this frame, then the per-frame
		// pair every real platform delivers.
		var light *float32
		for next < len(steps) && steps[next].Frame == frame {
			step := steps[next]
			next++
			if len(step.Anchors) > 0 {
				v.EmitAnchorsAdded(step.Anchors)
			}
			if step.Light != nil {
				light = step.Light
			}
		}
		v.EmitFrameUpdate(ar.FrameUpdate{LightEstimate: light})
		v.EmitRenderTick()

		proj := math.Perspective(float32(gomath.Pi/3), rend.Aspect(), 0.01, 100)
		view := math.LookAt(eye, center, math.Up)
		rend.RenderScene(v.sc, view, proj)
		win.SwapBuffers()

		frame++
	}

	logger.Log.Info("viewer closed", zap.Int("frames", frame))
	return nil
}
