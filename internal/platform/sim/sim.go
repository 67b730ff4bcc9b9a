// Package sim provides a scripted tracking session: a deterministic stand-in
// for a real AR platform that replays anchor detections and light samples on
// a fixed frame schedule. It is the headless default for the demo binary and
// the backbone of the core tests.
package sim

import (
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/markerlens/internal/ar"
)

// Step schedules events for one frame of the script.
type Step struct {
	Frame   int         // frame index at which the step fires
	Anchors []ar.Anchor // detection batch delivered that frame
	Light   *float32    // ambient light estimate for that frame's update
}

// Script is a list of steps. Steps may be given in any order; sessions
// sort them by frame before replay.
type Script struct {
	Steps []Step
}

// Sorted returns a frame-ordered copy of the steps.
func (s Script) Sorted() []Step {
	steps := make([]Step, len(s.Steps))
	copy(steps, s.Steps)
	sort.SliceStable(steps, func(i, j int) bool {
		return steps[i].Frame < steps[j].Frame
	})
	return steps
}

// Session replays a script through the standard event surface. Everything
// runs on the caller's goroutine, one frame at a time, mirroring the
// serialized callback model of a real platform.
type Session struct {
	*ar.Hub

	script   Script
	realtime bool
	period   time.Duration
	log      *zap.Logger
}

// Option configures a Session.
type Option func(*Session)

// WithFrameRate sets the simulated display refresh in Hz. Default 60.
func WithFrameRate(hz float64) Option {
	return func(s *Session) {
		if hz > 0 {
			s.period = time.Duration(float64(time.Second) / hz)
		}
	}
}

// WithRealtime toggles sleeping one frame period between frames. Tests
// turn this off and replay as fast as possible.
func WithRealtime(realtime bool) Option {
	return func(s *Session) { s.realtime = realtime }
}

// WithLogger sets the session logger.
func WithLogger(log *zap.Logger) Option {
	return func(s *Session) { s.log = log }
}

// New creates a scripted session.
func New(script Script, opts ...Option) *Session {
	s := &Session{
		Hub:      ar.NewHub(),
		script:   script,
		realtime: true,
		period:   time.Second / 60,
		log:      zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Run replays the script for the given number of frames. Per frame the
// event order matches the platform contract: anchor batch first, then the
// frame update, then the render tick.
func (s *Session) Run(frames int) {
	s.log.Info("simulated session starting",
		zap.Int("frames", frames),
		zap.Duration("frame_period", s.period))

	steps := s.script.Sorted()
	next := 0
	for frame := 0; frame < frames; frame++ {
		var light *float32
		for next < len(steps) && steps[next].Frame == frame {
			step := steps[next]
			next++
			if len(step.Anchors) > 0 {
				s.log.Debug("delivering anchor batch",
					zap.Int("frame", frame),
					zap.Int("anchors", len(step.Anchors)))
				s.EmitAnchorsAdded(step.Anchors)
			}
			if step.Light != nil {
				light = step.Light
			}
		}

		s.EmitFrameUpdate(ar.FrameUpdate{LightEstimate: light})
		s.EmitRenderTick()

		if s.realtime {
			time.Sleep(s.period)
		}
	}

	s.log.Info("simulated session finished", zap.Int("frames", frames))
}
