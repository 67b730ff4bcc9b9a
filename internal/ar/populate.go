package ar

import (
	"go.uber.org/zap"

	"github.com/Faultbox/markerlens/internal/engine/material"
	"github.com/Faultbox/markerlens/internal/engine/scene"
	"github.com/Faultbox/markerlens/internal/engine/texture"
	"github.com/Faultbox/markerlens/pkg/formats"
	"github.com/Faultbox/markerlens/pkg/math"
)

// Anchored content layout, in meters relative to the marker pose.
const (
	CubeSize          = 0.1
	CubeHeightOffset  = 0.05
	PlaneHeightOffset = 0.2
	PlaneScale        = 0.5
)

// Populator attaches the anchored content (textured cube + plane model)
// to freshly registered nodes. Assets are resolved once at construction,
// not per anchor.
type Populator struct {
	checker   material.Material
	planeMesh *formats.Mesh
	planeMat  material.Material
}

// NewPopulator loads the populator's assets. A missing checker texture
// falls back to a procedural pattern; a missing plane model leaves the
// populator attaching cubes only. Both cases are reported via a non-nil
// *AssetError so the caller can log them, the populator stays usable.
func NewPopulator(src AssetSource, checkerName, planeName string, log *zap.Logger) (*Populator, error) {
	if log == nil {
		log = zap.NewNop()
	}

	p := &Populator{}
	var firstErr error

	checkerTex, err := src.LoadTexture(checkerName)
	if err != nil {
		firstErr = &AssetError{Name: checkerName, Err: err}
		log.Warn("checker texture unavailable, using procedural pattern",
			zap.String("name", checkerName), zap.Error(err))
		checkerTex = texture.Checker(256, 32)
	}
	p.checker = material.Material{
		Name:    checkerTex.Name,
		Texture: checkerTex,
		Tint:    [4]float32{1, 1, 1, 1},
	}

	mesh, err := src.LoadMesh(planeName)
	if err != nil {
		if firstErr == nil {
			firstErr = &AssetError{Name: planeName, Err: err}
		}
		log.Warn("plane model unavailable, anchors will carry a cube only",
			zap.String("name", planeName), zap.Error(err))
	} else {
		p.planeMesh = mesh
		// The plane keeps its own look until the animation driver starts
		// cycling materials over it.
		p.planeMat = material.Material{
			Name: mesh.Name,
			Tint: [4]float32{1, 1, 1, 1},
		}
	}

	return p, firstErr
}

// Populate attaches the cube and plane entities to a node. Called exactly
// once per registered anchor, after the node has been attached to the
// scene. Returns an *AssetError if the plane model was never loaded; the
// cube is attached regardless.
func (p *Populator) Populate(n *scene.Node) error {
	n.Attach(&scene.Cube{
		Size:     CubeSize,
		Offset:   math.Vec3{Y: CubeHeightOffset},
		Rotation: math.QuatIdentity(),
		Material: p.checker,
	})

	if p.planeMesh == nil {
		return &AssetError{Name: "plane model", Err: errPlaneUnavailable}
	}

	n.Attach(&scene.PlaneModel{
		Mesh:     p.planeMesh,
		Scale:    PlaneScale,
		Offset:   math.Vec3{Y: PlaneHeightOffset},
		Material: p.planeMat,
	})
	return nil
}

var errPlaneUnavailable = &notLoadedError{}

type notLoadedError struct{}

func (*notLoadedError) Error() string { return "not loaded" }
