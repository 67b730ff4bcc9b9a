// Package ar contains the marker-tracking core: the session event
// surface, the anchor registry and entity population for detected image
// markers.
package ar

import (
	"github.com/Faultbox/markerlens/internal/engine/scene"
)

// AnchorID is the platform-assigned handle of a tracked anchor.
type AnchorID string

// AnchorKind discriminates the anchor types a platform can report. Only
// image anchors are acted on here.
type AnchorKind uint8

const (
	KindImage AnchorKind = iota
	KindPlane
	KindFace
)

// Anchor is one detected anchor as reported by the tracking platform.
type Anchor struct {
	ID   AnchorID
	Kind AnchorKind
	Pose scene.Transform
}

// FrameUpdate is the per-frame tracking event. LightEstimate is the
// ambient light intensity sample, if the platform produced one this frame.
type FrameUpdate struct {
	LightEstimate *float32
}

// UISignal is a signal sent from the hosting UI layer into the AR core.
// No variants are defined yet; the stream exists as an extension seam and
// unrecognized signals are ignored.
type UISignal interface {
	uiSignal()
}

// Session is the event surface a tracking/rendering platform exposes.
// Handlers run on the platform's render thread; the platform guarantees
// the three event sources are serialized relative to each other.
type Session interface {
	// OnAnchorAdded registers a handler for batches of newly detected
	// anchors.
	OnAnchorAdded(fn func(batch []Anchor))
	// OnFrameUpdate registers a handler for per-frame tracking updates.
	OnFrameUpdate(fn func(FrameUpdate))
	// OnRenderTick registers a handler invoked once per rendered frame.
	OnRenderTick(fn func())
	// OnUISignal registers a handler for signals from the UI layer.
	OnUISignal(fn func(UISignal))
}

// Hub is a callback registry implementing Session. Platform backends (the
// simulator, the SDL viewer) embed one and call the Emit methods from
// their event loop.
type Hub struct {
	anchorHandlers []func([]Anchor)
	frameHandlers  []func(FrameUpdate)
	tickHandlers   []func()
	signalHandlers []func(UISignal)
}

// NewHub creates an empty hub.
func NewHub() *Hub {
	return &Hub{}
}

// OnAnchorAdded implements Session.
func (h *Hub) OnAnchorAdded(fn func(batch []Anchor)) {
	h.anchorHandlers = append(h.anchorHandlers, fn)
}

// OnFrameUpdate implements Session.
func (h *Hub) OnFrameUpdate(fn func(FrameUpdate)) {
	h.frameHandlers = append(h.frameHandlers, fn)
}

// OnRenderTick implements Session.
func (h *Hub) OnRenderTick(fn func()) {
	h.tickHandlers = append(h.tickHandlers, fn)
}

// OnUISignal implements Session.
func (h *Hub) OnUISignal(fn func(UISignal)) {
	h.signalHandlers = append(h.signalHandlers, fn)
}

// EmitAnchorsAdded delivers a detection batch to all anchor handlers.
func (h *Hub) EmitAnchorsAdded(batch []Anchor) {
	for _, fn := range h.anchorHandlers {
		fn(batch)
	}
}

// EmitFrameUpdate delivers a frame update to all frame handlers.
func (h *Hub) EmitFrameUpdate(f FrameUpdate) {
	for _, fn := range h.frameHandlers {
		fn(f)
	}
}

// EmitRenderTick delivers one render tick to all tick handlers.
func (h *Hub) EmitRenderTick() {
	for _, fn := range h.tickHandlers {
		fn()
	}
}

// EmitUISignal delivers a UI signal to all signal handlers.
func (h *Hub) EmitUISignal(s UISignal) {
	for _, fn := range h.signalHandlers {
		fn(s)
	}
}
