package ar

import (
	"errors"
	"fmt"
	"testing"

	"github.com/Faultbox/markerlens/internal/engine/scene"
	"github.com/Faultbox/markerlens/internal/engine/texture"
	"github.com/Faultbox/markerlens/pkg/formats"
)

// fakeAssets serves an in-memory checker texture and plane mesh, with
// either one removable to exercise the recovery paths.
type fakeAssets struct {
	noChecker bool
	noPlane   bool
}

func (f *fakeAssets) LoadTexture(name string) (*texture.Texture, error) {
	if f.noChecker {
		return nil, fmt.Errorf("asset %s: not found", name)
	}
	return texture.Checker(8, 4), nil
}

func (f *fakeAssets) LoadMesh(name string) (*formats.Mesh, error) {
	if f.noPlane {
		return nil, fmt.Errorf("asset %s: not found", name)
	}
	return formats.ParseOBJ([]byte("o plane\nv -1 0 -1\nv 1 0 -1\nv 1 0 1\nv -1 0 1\nf 1 2 3 4\n"))
}

func TestPopulateAttachesCubeAndPlane(t *testing.T) {
	p, err := NewPopulator(&fakeAssets{}, "checker.png", "plane.obj", nil)
	if err != nil {
		t.Fatalf("NewPopulator: %v", err)
	}

	n := scene.NewNode("m1", scene.IdentityTransform())
	if err := p.Populate(n); err != nil {
		t.Fatalf("Populate: %v", err)
	}

	if len(n.Children()) != 2 {
		t.Fatalf("children = %d, want cube + plane", len(n.Children()))
	}

	cube := n.Cube()
	if cube == nil {
		t.Fatal("no cube attached")
	}
	if cube.Size != 0.1 {
		t.Errorf("cube size = %v, want 0.1", cube.Size)
	}
	if cube.Offset.Y != 0.05 {
		t.Errorf("cube height offset = %v, want 0.05", cube.Offset.Y)
	}
	if cube.Material.Texture == nil {
		t.Error("cube has no checker texture")
	}

	plane := n.Plane()
	if plane == nil {
		t.Fatal("no plane attached")
	}
	if plane.Offset.Y != 0.2 {
		t.Errorf("plane height offset = %v, want 0.2", plane.Offset.Y)
	}
	if plane.Scale != 0.5 {
		t.Errorf("plane scale = %v, want 0.5", plane.Scale)
	}
	if plane.Mesh == nil || plane.Mesh.TriangleCount() == 0 {
		t.Error("plane has no mesh")
	}
}

func TestPopulatorRecoversFromMissingChecker(t *testing.T) {
	p, err := NewPopulator(&fakeAssets{noChecker: true}, "checker.png", "plane.obj", nil)

	var assetErr *AssetError
	if !errors.As(err, &assetErr) {
		t.Fatalf("err = %v, want *AssetError", err)
	}

	// Population still works, with the procedural fallback pattern.
	n := scene.NewNode("m1", scene.IdentityTransform())
	if err := p.Populate(n); err != nil {
		t.Fatalf("Populate: %v", err)
	}
	if n.Cube() == nil || n.Cube().Material.Texture == nil {
		t.Error("cube should carry the fallback checker texture")
	}
}

func TestPopulatorRecoversFromMissingPlaneModel(t *testing.T) {
	p, err := NewPopulator(&fakeAssets{noPlane: true}, "checker.png", "plane.obj", nil)

	var assetErr *AssetError
	if !errors.As(err, &assetErr) {
		t.Fatalf("err = %v, want *AssetError", err)
	}

	n := scene.NewNode("m1", scene.IdentityTransform())
	err = p.Populate(n)

	// The cube is attached, the plane is skipped, and the skip is reported.
	if n.Cube() == nil {
		t.Error("cube should be attached even without the plane model")
	}
	if n.Plane() != nil {
		t.Error("plane must be skipped when its model is unavailable")
	}
	if !errors.As(err, &assetErr) {
		t.Errorf("Populate err = %v, want *AssetError", err)
	}
}
