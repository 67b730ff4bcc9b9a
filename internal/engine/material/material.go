// Package material defines surface materials and the ordered material
// sequence the plane animation cycles through.
package material

import (
	"fmt"

	"github.com/Faultbox/markerlens/internal/engine/texture"
)

// NearOpaqueAlpha is the tint alpha applied to animation frame materials.
const NearOpaqueAlpha = 0.98

// Material describes how a surface is shaded. Unlit materials reproduce
// their texture directly, with no lighting term.
type Material struct {
	Name    string
	Texture *texture.Texture
	Unlit   bool
	Tint    [4]float32 // RGBA multiplier
}

// Unlit wraps a texture in an unlit material with a near-opaque white tint.
func Unlit(tex *texture.Texture) Material {
	return Material{
		Name:    tex.Name,
		Texture: tex,
		Unlit:   true,
		Tint:    [4]float32{1, 1, 1, NearOpaqueAlpha},
	}
}

// Sequence is an ordered, immutable list of materials. Playback position
// is not stored here; the animation driver owns the cursor.
type Sequence struct {
	materials []Material
}

// NewSequence builds a sequence from materials in playback order.
func NewSequence(materials ...Material) *Sequence {
	return &Sequence{materials: append([]Material(nil), materials...)}
}

// Len returns the number of materials.
func (s *Sequence) Len() int {
	if s == nil {
		return 0
	}
	return len(s.materials)
}

// At returns the material at index i.
func (s *Sequence) At(i int) Material {
	return s.materials[i]
}

// TextureLoader loads a named texture asset.
type TextureLoader interface {
	LoadTexture(name string) (*texture.Texture, error)
}

// BuildSequence loads count numbered frame textures and wraps each in an
// unlit material. pattern is a Sprintf pattern taking the 1-based frame
// number, e.g. "frames/frame%02d.png". Frame order defines playback order.
// Any missing or undecodable frame fails the whole build; the caller
// decides whether to run without the material animation.
func BuildSequence(loader TextureLoader, pattern string, count int) (*Sequence, error) {
	materials := make([]Material, 0, count)
	for i := 1; i <= count; i++ {
		name := fmt.Sprintf(pattern, i)
		tex, err := loader.LoadTexture(name)
		if err != nil {
			return nil, fmt.Errorf("frame %d of %d: %w", i, count, err)
		}
		materials = append(materials, Unlit(tex))
	}
	return NewSequence(materials...), nil
}
