package scene

import (
	"testing"

	"github.com/Faultbox/markerlens/pkg/math"
)

func TestNodeChildLookup(t *testing.T) {
	n := NewNode("anchor", IdentityTransform())

	if n.Cube() != nil || n.Plane() != nil {
		t.Fatal("empty node should have no cube or plane")
	}

	cube := &Cube{Size: 0.1}
	plane := &PlaneModel{Scale: 0.5}
	n.Attach(cube)
	n.Attach(plane)

	if n.Cube() != cube {
		t.Error("Cube() did not return the attached cube")
	}
	if n.Plane() != plane {
		t.Error("Plane() did not return the attached plane")
	}
	if len(n.Children()) != 2 {
		t.Errorf("children = %d, want 2", len(n.Children()))
	}
}

func TestTransformMatrix(t *testing.T) {
	tr := Transform{
		Position: math.Vec3{X: 1, Y: 2, Z: 3},
		Rotation: math.QuatIdentity(),
		Scale:    2,
	}

	got := tr.Matrix().TransformPoint(math.Vec3{X: 1, Y: 0, Z: 0})
	want := math.Vec3{X: 3, Y: 2, Z: 3}
	if got != want {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestTransformMatrixZeroScale(t *testing.T) {
	// A zero-valued Transform must not collapse geometry to a point.
	var tr Transform
	got := tr.Matrix().TransformPoint(math.Vec3{X: 1, Y: 1, Z: 1})
	if got == (math.Vec3{}) {
		t.Error("zero-valued transform should behave as scale 1")
	}
}

func TestSceneAmbientLight(t *testing.T) {
	s := New()

	if _, ok := s.AmbientLight(); ok {
		t.Error("new scene should have no light sample")
	}

	s.SetAmbientLight(0.25)
	s.SetAmbientLight(0.75)

	v, ok := s.AmbientLight()
	if !ok || v != 0.75 {
		t.Errorf("got %v/%v, want latest sample 0.75", v, ok)
	}
}

func TestSceneAttach(t *testing.T) {
	s := New()
	s.Attach(NewNode("a", IdentityTransform()))
	s.Attach(NewNode("b", IdentityTransform()))

	if s.NodeCount() != 2 {
		t.Errorf("nodes = %d, want 2", s.NodeCount())
	}
}
