// Package scene provides the scene graph the anchored content lives in:
// a flat list of positioned nodes, each owning its child visual entities.
//
// The scene is mutated only from the platform's render thread (anchor
// registration and per-frame animation both run there), so there is no
// locking here.
package scene

import (
	"github.com/Faultbox/markerlens/internal/engine/material"
	"github.com/Faultbox/markerlens/pkg/formats"
	"github.com/Faultbox/markerlens/pkg/math"
)

// Transform is a node pose: position, orientation and uniform scale.
type Transform struct {
	Position math.Vec3
	Rotation math.Quat
	Scale    float32
}

// IdentityTransform returns a transform at the origin with no rotation
// and scale 1.
func IdentityTransform() Transform {
	return Transform{Rotation: math.QuatIdentity(), Scale: 1}
}

// Matrix returns the transform as a model matrix.
func (t Transform) Matrix() math.Mat4 {
	s := t.Scale
	if s == 0 {
		s = 1
	}
	translate := math.Translate(t.Position.X, t.Position.Y, t.Position.Z)
	return translate.Mul(t.Rotation.ToMat4()).Mul(math.Scale(s, s, s))
}

// Entity is a visual child of a node. The concrete types are Cube and
// PlaneModel.
type Entity interface {
	entity()
}

// Cube is an axis-aligned textured cube entity.
type Cube struct {
	Size     float32 // edge length in meters
	Offset   math.Vec3
	Rotation math.Quat
	Material material.Material
}

func (*Cube) entity() {}

// PlaneModel is a flat mesh entity loaded from a model asset.
type PlaneModel struct {
	Mesh     *formats.Mesh
	Scale    float32
	Offset   math.Vec3
	Material material.Material
}

func (*PlaneModel) entity() {}

// Node is a positioned container grouping visual entities. Its lifetime is
// bound to the image anchor it was created for.
type Node struct {
	Name      string
	Transform Transform
	children  []Entity
}

// NewNode creates a node with the given name and pose.
func NewNode(name string, transform Transform) *Node {
	return &Node{Name: name, Transform: transform}
}

// Attach adds a child entity to the node.
func (n *Node) Attach(e Entity) {
	n.children = append(n.children, e)
}

// Children returns the node's child entities.
func (n *Node) Children() []Entity {
	return n.children
}

// Cube returns the node's first cube child, or nil.
func (n *Node) Cube() *Cube {
	for _, e := range n.children {
		if c, ok := e.(*Cube); ok {
			return c
		}
	}
	return nil
}

// Plane returns the node's first plane model child, or nil.
func (n *Node) Plane() *PlaneModel {
	for _, e := range n.children {
		if p, ok := e.(*PlaneModel); ok {
			return p
		}
	}
	return nil
}

// Scene is the live scene graph.
type Scene struct {
	nodes []*Node

	// Latest ambient light estimate from the platform, if any. Written by
	// frame-update events, read by the viewer to modulate the clear color.
	ambientLight   float32
	hasLightSample bool
}

// New creates an empty scene.
func New() *Scene {
	return &Scene{}
}

// Attach adds a node to the scene.
func (s *Scene) Attach(n *Node) {
	s.nodes = append(s.nodes, n)
}

// Nodes returns the scene's nodes.
func (s *Scene) Nodes() []*Node {
	return s.nodes
}

// NodeCount returns the number of attached nodes.
func (s *Scene) NodeCount() int {
	return len(s.nodes)
}

// SetAmbientLight records the latest ambient light estimate.
func (s *Scene) SetAmbientLight(v float32) {
	s.ambientLight = v
	s.hasLightSample = true
}

// AmbientLight returns the latest ambient light estimate and whether one
// has been received.
func (s *Scene) AmbientLight() (float32, bool) {
	return s.ambientLight, s.hasLightSample
}
