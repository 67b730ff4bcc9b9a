package formats

import (
	"strings"
	"testing"
)

const quadOBJ = `
# unit quad in the XZ plane
o plane
v -0.5 0 -0.5
v  0.5 0 -0.5
v  0.5 0  0.5
v -0.5 0  0.5
vt 0 0
vt 1 0
vt 1 1
vt 0 1
f 1/1 2/2 3/3 4/4
`

func TestParseOBJ_Quad(t *testing.T) {
	mesh, err := ParseOBJ([]byte(quadOBJ))
	if err != nil {
		t.Fatalf("ParseOBJ: %v", err)
	}

	if mesh.Name != "plane" {
		t.Errorf("name = %q, want plane", mesh.Name)
	}
	if len(mesh.Vertices) != 4 {
		t.Errorf("vertices = %d, want 4", len(mesh.Vertices))
	}
	// A quad fan-triangulates into two triangles.
	if mesh.TriangleCount() != 2 {
		t.Errorf("triangles = %d, want 2", mesh.TriangleCount())
	}

	min, max := mesh.Bounds()
	if min.X != -0.5 || max.X != 0.5 || min.Z != -0.5 || max.Z != 0.5 {
		t.Errorf("bounds = %v..%v", min, max)
	}
}

func TestParseOBJ_SharedVerticesDeduplicated(t *testing.T) {
	obj := `
v 0 0 0
v 1 0 0
v 0 1 0
v 1 1 0
f 1 2 3
f 2 4 3
`
	mesh, err := ParseOBJ([]byte(obj))
	if err != nil {
		t.Fatalf("ParseOBJ: %v", err)
	}
	if len(mesh.Vertices) != 4 {
		t.Errorf("vertices = %d, want 4 (shared corners reused)", len(mesh.Vertices))
	}
	if mesh.TriangleCount() != 2 {
		t.Errorf("triangles = %d, want 2", mesh.TriangleCount())
	}
}

func TestParseOBJ_NegativeIndices(t *testing.T) {
	obj := `
v 0 0 0
v 1 0 0
v 0 1 0
f -3 -2 -1
`
	mesh, err := ParseOBJ([]byte(obj))
	if err != nil {
		t.Fatalf("ParseOBJ: %v", err)
	}
	if mesh.TriangleCount() != 1 {
		t.Errorf("triangles = %d, want 1", mesh.TriangleCount())
	}
}

func TestParseOBJ_Errors(t *testing.T) {
	tests := []struct {
		name string
		obj  string
		want string
	}{
		{"no faces", "v 0 0 0\n", "no faces"},
		{"short vertex", "v 0 0\nf 1 1 1\n", "3 coordinates"},
		{"zero index", "v 0 0 0\nf 0 0 0\n", "index 0"},
		{"out of range", "v 0 0 0\nf 1 2 3\n", "out of range"},
		{"bad coordinate", "v a b c\n", "bad coordinate"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseOBJ([]byte(tt.obj))
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q does not mention %q", err, tt.want)
			}
		})
	}
}

func TestParseOBJ_IgnoresUnknownStatements(t *testing.T) {
	obj := `
mtllib scene.mtl
usemtl checker
v 0 0 0
v 1 0 0
v 0 1 0
vn 0 0 1
s off
f 1//1 2//1 3//1
`
	mesh, err := ParseOBJ([]byte(obj))
	if err != nil {
		t.Fatalf("ParseOBJ: %v", err)
	}
	if mesh.TriangleCount() != 1 {
		t.Errorf("triangles = %d, want 1", mesh.TriangleCount())
	}
}
