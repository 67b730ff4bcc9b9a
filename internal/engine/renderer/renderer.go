// Package renderer draws the anchored scene with OpenGL: every node's
// textured cube and plane, through one unlit-style shader.
package renderer

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/markerlens/internal/engine/scene"
	"github.com/Faultbox/markerlens/internal/engine/shader"
	"github.com/Faultbox/markerlens/internal/engine/texture"
	"github.com/Faultbox/markerlens/internal/logger"
	"github.com/Faultbox/markerlens/pkg/formats"
	"github.com/Faultbox/markerlens/pkg/math"
)

// Config holds renderer configuration.
type Config struct {
	Width  int
	Height int
}

// Renderer handles all OpenGL rendering. Must be created after the GL
// context exists.
type Renderer struct {
	config Config

	program    uint32
	locMVP     int32
	locTint    int32
	locTexture int32

	cubeVAO         uint32
	cubeVBO         uint32
	cubeVertexCount int32

	// Lazily uploaded GPU resources, keyed by their CPU-side source.
	meshes   map[*formats.Mesh]meshBuffers
	textures map[*texture.Texture]uint32

	whiteTex uint32
}

type meshBuffers struct {
	vao        uint32
	vbo        uint32
	ebo        uint32
	indexCount int32
}

const vertexShaderSrc = `
#version 410 core
layout(location = 0) in vec3 aPos;
layout(location = 1) in vec2 aUV;

uniform mat4 uMVP;

out vec2 vUV;

void main() {
    vUV = aUV;
    gl_Position = uMVP * vec4(aPos, 1.0);
}
`

const fragmentShaderSrc = `
#version 410 core
in vec2 vUV;

uniform sampler2D uTexture;
uniform vec4 uTint;

out vec4 FragColor;

void main() {
    FragColor = texture(uTexture, vUV) * uTint;
}
`

// New creates a new renderer.
func New(cfg Config) (*Renderer, error) {
	r := &Renderer{
		config:   cfg,
		meshes:   make(map[*formats.Mesh]meshBuffers),
		textures: make(map[*texture.Texture]uint32),
	}

	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("initializing OpenGL: %w", err)
	}

	logger.Log.Info("OpenGL initialized",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))),
	)

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	gl.Viewport(0, 0, int32(cfg.Width), int32(cfg.Height))

	var err error
	r.program, err = shader.CompileProgram(vertexShaderSrc, fragmentShaderSrc)
	if err != nil {
		return nil, fmt.Errorf("compiling scene shader: %w", err)
	}
	r.locMVP = shader.GetUniform(r.program, "uMVP")
	r.locTint = shader.GetUniform(r.program, "uTint")
	r.locTexture = shader.GetUniform(r.program, "uTexture")

	r.createCubeMesh()
	r.whiteTex = createWhiteTexture()

	return r, nil
}

// Close releases all GPU resources.
func (r *Renderer) Close() {
	if r.cubeVAO != 0 {
		gl.DeleteVertexArrays(1, &r.cubeVAO)
		gl.DeleteBuffers(1, &r.cubeVBO)
	}
	for _, mb := range r.meshes {
		gl.DeleteVertexArrays(1, &mb.vao)
		gl.DeleteBuffers(1, &mb.vbo)
		gl.DeleteBuffers(1, &mb.ebo)
	}
	for _, id := range r.textures {
		gl.DeleteTextures(1, &id)
	}
	if r.whiteTex != 0 {
		gl.DeleteTextures(1, &r.whiteTex)
	}
	if r.program != 0 {
		gl.DeleteProgram(r.program)
	}
}

// Resize handles window resize.
func (r *Renderer) Resize(width, height int) {
	r.config.Width = width
	r.config.Height = height
	gl.Viewport(0, 0, int32(width), int32(height))
}

// Aspect returns the current width/height ratio.
func (r *Renderer) Aspect() float32 {
	if r.config.Height == 0 {
		return 1
	}
	return float32(r.config.Width) / float32(r.config.Height)
}

// RenderScene clears the frame and draws every node in the scene. The
// ambient light sample, when present, modulates the clear color so bright
// surroundings show up in the backdrop.
func (r *Renderer) RenderScene(s *scene.Scene, view, proj math.Mat4) {
	brightness := float32(1)
	if v, ok := s.AmbientLight(); ok {
		brightness = clamp01(v)
	}
	gl.ClearColor(0.08*brightness+0.02, 0.08*brightness+0.02, 0.12*brightness+0.03, 1.0)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

	gl.UseProgram(r.program)
	gl.Uniform1i(r.locTexture, 0)
	gl.ActiveTexture(gl.TEXTURE0)

	vp := proj.Mul(view)

	for _, n := range s.Nodes() {
		base := n.Transform.Matrix()
		for _, e := range n.Children() {
			switch ent := e.(type) {
			case *scene.Cube:
				model := base.
					Mul(math.Translate(ent.Offset.X, ent.Offset.Y, ent.Offset.Z)).
					Mul(ent.Rotation.ToMat4()).
					Mul(math.Scale(ent.Size, ent.Size, ent.Size))
				r.drawCube(vp.Mul(model), ent.Material.Texture, ent.Material.Tint)
			case *scene.PlaneModel:
				model := base.
					Mul(math.Translate(ent.Offset.X, ent.Offset.Y, ent.Offset.Z)).
					Mul(math.Scale(ent.Scale, ent.Scale, ent.Scale))
				r.drawMesh(ent.Mesh, vp.Mul(model), ent.Material.Texture, ent.Material.Tint)
			}
		}
	}

	gl.BindVertexArray(0)
}

func (r *Renderer) drawCube(mvp math.Mat4, tex *texture.Texture, tint [4]float32) {
	r.bindMaterial(mvp, tex, tint)
	gl.BindVertexArray(r.cubeVAO)
	gl.DrawArrays(gl.TRIANGLES, 0, r.cubeVertexCount)
}

func (r *Renderer) drawMesh(mesh *formats.Mesh, mvp math.Mat4, tex *texture.Texture, tint [4]float32) {
	if mesh == nil {
		return
	}
	mb, ok := r.meshes[mesh]
	if !ok {
		mb = uploadMesh(mesh)
		r.meshes[mesh] = mb
	}

	r.bindMaterial(mvp, tex, tint)
	gl.BindVertexArray(mb.vao)
	gl.DrawElements(gl.TRIANGLES, mb.indexCount, gl.UNSIGNED_INT, gl.PtrOffset(0))
}

func (r *Renderer) bindMaterial(mvp math.Mat4, tex *texture.Texture, tint [4]float32) {
	gl.UniformMatrix4fv(r.locMVP, 1, false, mvp.Ptr())

	if tint == ([4]float32{}) {
		tint = [4]float32{1, 1, 1, 1}
	}
	gl.Uniform4f(r.locTint, tint[0], tint[1], tint[2], tint[3])

	id := r.whiteTex
	if tex != nil && tex.Image != nil {
		var ok bool
		id, ok = r.textures[tex]
		if !ok {
			id = uploadTexture(tex)
			r.textures[tex] = id
		}
	}
	gl.BindTexture(gl.TEXTURE_2D, id)
}

// createCubeMesh builds a unit cube VAO with per-face UVs, centered on the
// origin.
func (r *Renderer) createCubeMesh() {
	// Each face: two triangles, position (3) + uv (2) per vertex.
	faces := [6][4]math.Vec3{
		{{X: -0.5, Y: -0.5, Z: 0.5}, {X: 0.5, Y: -0.5, Z: 0.5}, {X: 0.5, Y: 0.5, Z: 0.5}, {X: -0.5, Y: 0.5, Z: 0.5}},       // front
		{{X: 0.5, Y: -0.5, Z: -0.5}, {X: -0.5, Y: -0.5, Z: -0.5}, {X: -0.5, Y: 0.5, Z: -0.5}, {X: 0.5, Y: 0.5, Z: -0.5}},   // back
		{{X: -0.5, Y: -0.5, Z: -0.5}, {X: -0.5, Y: -0.5, Z: 0.5}, {X: -0.5, Y: 0.5, Z: 0.5}, {X: -0.5, Y: 0.5, Z: -0.5}},   // left
		{{X: 0.5, Y: -0.5, Z: 0.5}, {X: 0.5, Y: -0.5, Z: -0.5}, {X: 0.5, Y: 0.5, Z: -0.5}, {X: 0.5, Y: 0.5, Z: 0.5}},       // right
		{{X: -0.5, Y: 0.5, Z: 0.5}, {X: 0.5, Y: 0.5, Z: 0.5}, {X: 0.5, Y: 0.5, Z: -0.5}, {X: -0.5, Y: 0.5, Z: -0.5}},       // top
		{{X: -0.5, Y: -0.5, Z: -0.5}, {X: 0.5, Y: -0.5, Z: -0.5}, {X: 0.5, Y: -0.5, Z: 0.5}, {X: -0.5, Y: -0.5, Z: 0.5}},   // bottom
	}
	uvs := [4][2]float32{{0, 0}, {1, 0}, {1, 1}, {0, 1}}
	order := [6]int{0, 1, 2, 0, 2, 3}

	var verts []float32
	for _, face := range faces {
		for _, idx := range order {
			p := face[idx]
			uv := uvs[idx]
			verts = append(verts, p.X, p.Y, p.Z, uv[0], uv[1])
		}
	}
	r.cubeVertexCount = int32(len(verts) / 5)

	gl.GenVertexArrays(1, &r.cubeVAO)
	gl.GenBuffers(1, &r.cubeVBO)
	gl.BindVertexArray(r.cubeVAO)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.cubeVBO)
	gl.BufferData(gl.ARRAY_BUFFER, len(verts)*4, gl.Ptr(verts), gl.STATIC_DRAW)

	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(0, 3, gl.FLOAT, false, 5*4, gl.PtrOffset(0))
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointer(1, 2, gl.FLOAT, false, 5*4, gl.PtrOffset(3*4))

	gl.BindVertexArray(0)
}

// uploadMesh pushes a parsed mesh to the GPU.
func uploadMesh(mesh *formats.Mesh) meshBuffers {
	verts := make([]float32, 0, len(mesh.Vertices)*5)
	for _, v := range mesh.Vertices {
		verts = append(verts, v.Position.X, v.Position.Y, v.Position.Z, v.U, v.V)
	}

	var mb meshBuffers
	mb.indexCount = int32(len(mesh.Indices))

	gl.GenVertexArrays(1, &mb.vao)
	gl.GenBuffers(1, &mb.vbo)
	gl.GenBuffers(1, &mb.ebo)

	gl.BindVertexArray(mb.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, mb.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(verts)*4, gl.Ptr(verts), gl.STATIC_DRAW)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, mb.ebo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(mesh.Indices)*4, gl.Ptr(mesh.Indices), gl.STATIC_DRAW)

	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(0, 3, gl.FLOAT, false, 5*4, gl.PtrOffset(0))
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointer(1, 2, gl.FLOAT, false, 5*4, gl.PtrOffset(3*4))

	gl.BindVertexArray(0)
	return mb
}

// uploadTexture pushes a decoded texture to the GPU with mipmaps.
func uploadTexture(tex *texture.Texture) uint32 {
	var id uint32
	gl.GenTextures(1, &id)
	gl.BindTexture(gl.TEXTURE_2D, id)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA,
		int32(tex.Width()), int32(tex.Height()), 0,
		gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(tex.Image.Pix))
	gl.GenerateMipmap(gl.TEXTURE_2D)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR_MIPMAP_LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	return id
}

// createWhiteTexture builds the 1x1 fallback texture used by materials
// without an image.
func createWhiteTexture() uint32 {
	var id uint32
	gl.GenTextures(1, &id)
	gl.BindTexture(gl.TEXTURE_2D, id)
	white := []uint8{255, 255, 255, 255}
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA, 1, 1, 0, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(white))
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.NEAREST)
	return id
}

func clamp01(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
