package ar

import (
	"github.com/Faultbox/markerlens/internal/engine/texture"
	"github.com/Faultbox/markerlens/pkg/formats"
)

// AssetSource loads named assets. Satisfied by *assets.Manager.
type AssetSource interface {
	LoadTexture(name string) (*texture.Texture, error)
	LoadMesh(name string) (*formats.Mesh, error)
}

// ReferenceImage is one physical marker the platform should look for:
// the scanned image plus its real-world width.
type ReferenceImage struct {
	Name           string
	PhysicalWidthM float32
	Texture        *texture.Texture
}

// TrackingConfig is the set of markers handed to the tracking platform.
// An empty target set disables tracking: no anchor-add events will ever
// fire.
type TrackingConfig struct {
	targets []ReferenceImage
}

// Targets returns the configured reference images.
func (c *TrackingConfig) Targets() []ReferenceImage {
	return c.targets
}

// Enabled reports whether tracking has at least one target.
func (c *TrackingConfig) Enabled() bool {
	return len(c.targets) > 0
}

// LoadTracking builds the tracking configuration for a single reference
// marker. A missing or undecodable image is reported as a
// *ConfigurationError together with an empty (tracking-disabled) config;
// the caller logs and carries on.
func LoadTracking(src AssetSource, imageName string, physicalWidthM float32) (*TrackingConfig, error) {
	tex, err := src.LoadTexture(imageName)
	if err != nil {
		return &TrackingConfig{}, &ConfigurationError{Name: imageName, Err: err}
	}

	return &TrackingConfig{
		targets: []ReferenceImage{{
			Name:           imageName,
			PhysicalWidthM: physicalWidthM,
			Texture:        tex,
		}},
	}, nil
}
