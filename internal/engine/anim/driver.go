// Package anim drives the per-frame animations on anchored content:
// throttled material cycling on the plane and a constant per-tick spin on
// the cube.
package anim

import (
	"time"

	"github.com/Faultbox/markerlens/internal/engine/material"
	"github.com/Faultbox/markerlens/internal/engine/scene"
	"github.com/Faultbox/markerlens/pkg/math"
)

// Defaults for the two animations.
const (
	// DefaultMaterialRate is how many material advances happen per second,
	// independent of the render frame rate.
	DefaultMaterialRate = 15.0

	// DefaultRotationStep is the cube rotation per render tick, in radians
	// about the vertical axis. The spin is per-tick rather than per-second,
	// so it follows the display refresh: about 1.2 rad/s at 60 Hz.
	DefaultRotationStep = 0.02
)

// NodeSource yields the nodes whose entities get animated. Satisfied by
// *ar.Registry.
type NodeSource interface {
	EachNode(fn func(n *scene.Node))
}

// TickSource delivers render ticks. Satisfied by ar.Session.
type TickSource interface {
	OnRenderTick(fn func())
}

// State is the driver's complete mutable state. There is exactly one,
// owned by the driver and mutated only from the render tick.
type State struct {
	MaterialIndex int
	LastAdvance   time.Time
	CubeRotation  math.Quat
}

// Driver advances the animations once per render tick.
type Driver struct {
	seq   *material.Sequence
	nodes NodeSource

	now      func() time.Time
	interval time.Duration
	step     math.Quat

	state State
}

// Option configures a Driver.
type Option func(*Driver)

// WithClock replaces the wall clock, for tests.
func WithClock(now func() time.Time) Option {
	return func(d *Driver) { d.now = now }
}

// WithMaterialRate sets the material advance rate in Hz.
func WithMaterialRate(hz float64) Option {
	return func(d *Driver) {
		if hz > 0 {
			d.interval = time.Duration(float64(time.Second) / hz)
		}
	}
}

// WithRotationStep sets the cube rotation per tick, in radians.
func WithRotationStep(radians float32) Option {
	return func(d *Driver) {
		d.step = math.QuatFromAxisAngle(math.Up, radians)
	}
}

// New creates a driver cycling seq over the plane entities of nodes.
// The material cursor starts at 0 with the advance timer anchored at
// construction time.
func New(seq *material.Sequence, nodes NodeSource, opts ...Option) *Driver {
	rate := float64(DefaultMaterialRate)
	d := &Driver{
		seq:      seq,
		nodes:    nodes,
		now:      time.Now,
		interval: time.Duration(float64(time.Second) / rate),
		step:     math.QuatFromAxisAngle(math.Up, DefaultRotationStep),
	}
	for _, opt := range opts {
		opt(d)
	}
	d.state = State{
		LastAdvance:  d.now(),
		CubeRotation: math.QuatIdentity(),
	}
	return d
}

// Bind subscribes the driver to a session's render ticks.
func (d *Driver) Bind(ticks TickSource) {
	ticks.OnRenderTick(d.Tick)
}

// Tick advances both animations for one rendered frame.
//
// Material cycling is throttled: the index moves forward only when more
// than one interval has passed since the last advance, then the timer
// resets. The cube rotation composes one fixed step every tick regardless
// of elapsed time. Nodes without a plane (or with no registered nodes at
// all) simply receive no material update.
func (d *Driver) Tick() {
	now := d.now()

	advanced := false
	if d.seq.Len() > 0 && now.Sub(d.state.LastAdvance) > d.interval {
		d.state.MaterialIndex = (d.state.MaterialIndex + 1) % d.seq.Len()
		d.state.LastAdvance = now
		advanced = true
	}

	d.state.CubeRotation = d.state.CubeRotation.Mul(d.step)

	d.nodes.EachNode(func(n *scene.Node) {
		if c := n.Cube(); c != nil {
			c.Rotation = d.state.CubeRotation
		}
		if !advanced {
			return
		}
		if p := n.Plane(); p != nil {
			p.Material = d.seq.At(d.state.MaterialIndex)
		}
	})
}

// State returns a copy of the driver's current animation state.
func (d *Driver) State() State {
	return d.state
}
