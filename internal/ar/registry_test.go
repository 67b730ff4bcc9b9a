package ar

import (
	"errors"
	"testing"

	"github.com/Faultbox/markerlens/internal/engine/scene"
	"github.com/Faultbox/markerlens/pkg/math"
)

func imageAnchor(id string) Anchor {
	return Anchor{ID: AnchorID(id), Kind: KindImage, Pose: scene.IdentityTransform()}
}

func TestRegistryIdempotentRegistration(t *testing.T) {
	s := scene.New()
	populated := 0
	r := NewRegistry(s, func(n *scene.Node) error {
		populated++
		return nil
	}, nil)

	// The same identity reported across several batches registers once.
	r.HandleAnchorsAdded([]Anchor{imageAnchor("m1"), imageAnchor("m2")})
	r.HandleAnchorsAdded([]Anchor{imageAnchor("m1")})
	r.HandleAnchorsAdded([]Anchor{imageAnchor("m2"), imageAnchor("m3")})

	if r.Len() != 3 {
		t.Errorf("registry size = %d, want 3 distinct identities", r.Len())
	}
	if s.NodeCount() != 3 {
		t.Errorf("scene nodes = %d, want 3", s.NodeCount())
	}
	if populated != 3 {
		t.Errorf("populate ran %d times, want exactly once per anchor", populated)
	}
}

func TestRegistryFiltersNonImageAnchors(t *testing.T) {
	s := scene.New()
	r := NewRegistry(s, func(*scene.Node) error { return nil }, nil)

	r.HandleAnchorsAdded([]Anchor{
		{ID: "p1", Kind: KindPlane},
		{ID: "f1", Kind: KindFace},
		imageAnchor("m1"),
	})

	if r.Len() != 1 {
		t.Errorf("registry size = %d, want 1 (image anchors only)", r.Len())
	}
	if _, ok := r.Node("m1"); !ok {
		t.Error("image anchor not registered")
	}
	if _, ok := r.Node("p1"); ok {
		t.Error("plane anchor must not be registered")
	}
}

func TestRegistryPopulatesAfterSceneInsertion(t *testing.T) {
	s := scene.New()
	var inSceneAtPopulate bool
	r := NewRegistry(s, func(n *scene.Node) error {
		for _, attached := range s.Nodes() {
			if attached == n {
				inSceneAtPopulate = true
			}
		}
		return nil
	}, nil)

	r.HandleAnchorsAdded([]Anchor{imageAnchor("m1")})

	if !inSceneAtPopulate {
		t.Error("populate must run after the node is attached to the scene")
	}
}

func TestRegistryKeepsNodeWhenPopulateFails(t *testing.T) {
	s := scene.New()
	r := NewRegistry(s, func(*scene.Node) error {
		return errors.New("missing asset")
	}, nil)

	r.HandleAnchorsAdded([]Anchor{imageAnchor("m1")})

	if r.Len() != 1 {
		t.Errorf("registry size = %d; a failed populate must not crash or unregister", r.Len())
	}
}

func TestRegistryUsesAnchorPose(t *testing.T) {
	s := scene.New()
	r := NewRegistry(s, func(*scene.Node) error { return nil }, nil)

	pose := scene.Transform{
		Position: math.Vec3{X: 1, Y: 2, Z: 3},
		Rotation: math.QuatIdentity(),
		Scale:    1,
	}
	r.HandleAnchorsAdded([]Anchor{{ID: "m1", Kind: KindImage, Pose: pose}})

	n, ok := r.Node("m1")
	if !ok {
		t.Fatal("anchor not registered")
	}
	if n.Transform.Position != pose.Position {
		t.Errorf("node position = %v, want %v", n.Transform.Position, pose.Position)
	}
}

func TestRegistryOnRegisteredHook(t *testing.T) {
	s := scene.New()
	r := NewRegistry(s, func(*scene.Node) error { return nil }, nil)

	var fired []AnchorID
	r.OnRegistered = func(id AnchorID, n *scene.Node) {
		fired = append(fired, id)
	}

	r.HandleAnchorsAdded([]Anchor{imageAnchor("m1")})
	r.HandleAnchorsAdded([]Anchor{imageAnchor("m1")}) // duplicate

	if len(fired) != 1 || fired[0] != "m1" {
		t.Errorf("hook fired for %v, want exactly once for m1", fired)
	}
}

func TestRegistryRemovalIsNoOp(t *testing.T) {
	// Anchor loss has no defined semantics upstream; the handler must not
	// unregister anything.
	s := scene.New()
	r := NewRegistry(s, func(*scene.Node) error { return nil }, nil)

	r.HandleAnchorsAdded([]Anchor{imageAnchor("m1")})
	r.HandleAnchorsRemoved([]Anchor{imageAnchor("m1")})

	if r.Len() != 1 {
		t.Errorf("registry size = %d after removal event, want 1", r.Len())
	}
}

func TestRegistryBind(t *testing.T) {
	s := scene.New()
	r := NewRegistry(s, func(*scene.Node) error { return nil }, nil)

	hub := NewHub()
	r.Bind(hub)
	hub.EmitAnchorsAdded([]Anchor{imageAnchor("m1")})

	if r.Len() != 1 {
		t.Error("registry did not receive anchors through the session")
	}
}
