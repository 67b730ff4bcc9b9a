// Package formats provides parsers for the asset file formats the demo
// ships with. Currently that is a small subset of Wavefront OBJ, enough
// for the flat plane model the anchored scene displays.
package formats

import (
	"bufio"
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/Faultbox/markerlens/pkg/math"
)

// Vertex is one mesh vertex: position plus texture coordinate.
type Vertex struct {
	Position math.Vec3
	U, V     float32
}

// Mesh is a triangle mesh ready for upload: deduplicated vertices and a
// triangle index list.
type Mesh struct {
	Name     string
	Vertices []Vertex
	Indices  []uint32
}

// TriangleCount returns the number of triangles in the mesh.
func (m *Mesh) TriangleCount() int {
	return len(m.Indices) / 3
}

// Bounds returns the axis-aligned min/max corners of the mesh.
func (m *Mesh) Bounds() (min, max math.Vec3) {
	if len(m.Vertices) == 0 {
		return math.Vec3{}, math.Vec3{}
	}
	min = m.Vertices[0].Position
	max = min
	for _, v := range m.Vertices[1:] {
		p := v.Position
		if p.X < min.X {
			min.X = p.X
		}
		if p.Y < min.Y {
			min.Y = p.Y
		}
		if p.Z < min.Z {
			min.Z = p.Z
		}
		if p.X > max.X {
			max.X = p.X
		}
		if p.Y > max.Y {
			max.Y = p.Y
		}
		if p.Z > max.Z {
			max.Z = p.Z
		}
	}
	return min, max
}

// ParseOBJ parses a Wavefront OBJ file. Supported statements: v, vt, f, o.
// Faces may be polygons; they are fan-triangulated. Normals and material
// statements are skipped. Negative (relative) indices are supported.
func ParseOBJ(data []byte) (*Mesh, error) {
	mesh := &Mesh{}

	var positions []math.Vec3
	var texcoords [][2]float32

	// OBJ faces reference position and texcoord separately; the mesh wants
	// one vertex per unique pair.
	type key struct{ p, t int }
	seen := make(map[key]uint32)

	resolveVertex := func(spec string, lineNo int) (uint32, error) {
		parts := strings.SplitN(spec, "/", 3)

		pi, err := resolveIndex(parts[0], len(positions))
		if err != nil {
			return 0, fmt.Errorf("line %d: vertex index %q: %w", lineNo, parts[0], err)
		}

		ti := -1
		if len(parts) > 1 && parts[1] != "" {
			ti, err = resolveIndex(parts[1], len(texcoords))
			if err != nil {
				return 0, fmt.Errorf("line %d: texcoord index %q: %w", lineNo, parts[1], err)
			}
		}

		k := key{pi, ti}
		if idx, ok := seen[k]; ok {
			return idx, nil
		}

		v := Vertex{Position: positions[pi]}
		if ti >= 0 {
			v.U = texcoords[ti][0]
			v.V = texcoords[ti][1]
		}
		idx := uint32(len(mesh.Vertices))
		mesh.Vertices = append(mesh.Vertices, v)
		seen[k] = idx
		return idx, nil
	}

	scanner := bufio.NewScanner(bytes.NewReader(data))
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		fields := strings.Fields(line)
		switch fields[0] {
		case "v":
			if len(fields) < 4 {
				return nil, fmt.Errorf("line %d: v needs 3 coordinates", lineNo)
			}
			p, err := parseVec3(fields[1], fields[2], fields[3])
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNo, err)
			}
			positions = append(positions, p)

		case "vt":
			if len(fields) < 3 {
				return nil, fmt.Errorf("line %d: vt needs 2 coordinates", lineNo)
			}
			u, err1 := parseFloat(fields[1])
			v, err2 := parseFloat(fields[2])
			if err1 != nil || err2 != nil {
				return nil, fmt.Errorf("line %d: bad texcoord", lineNo)
			}
			texcoords = append(texcoords, [2]float32{u, v})

		case "f":
			if len(fields) < 4 {
				return nil, fmt.Errorf("line %d: face needs at least 3 vertices", lineNo)
			}
			corners := make([]uint32, 0, len(fields)-1)
			for _, spec := range fields[1:] {
				idx, err := resolveVertex(spec, lineNo)
				if err != nil {
					return nil, err
				}
				corners = append(corners, idx)
			}
			// Fan triangulation for quads and larger polygons.
			for i := 1; i < len(corners)-1; i++ {
				mesh.Indices = append(mesh.Indices, corners[0], corners[i], corners[i+1])
			}

		case "o", "g":
			if len(fields) > 1 && mesh.Name == "" {
				mesh.Name = fields[1]
			}

		default:
			// vn, s, mtllib, usemtl and friends are irrelevant here.
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading OBJ: %w", err)
	}

	if len(mesh.Indices) == 0 {
		return nil, fmt.Errorf("OBJ contains no faces")
	}
	return mesh, nil
}

// resolveIndex converts a 1-based (or negative relative) OBJ index into a
// 0-based slice index.
func resolveIndex(s string, length int) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, err
	}
	switch {
	case n > 0:
		n--
	case n < 0:
		n += length
	default:
		return 0, fmt.Errorf("index 0 is not valid")
	}
	if n < 0 || n >= length {
		return 0, fmt.Errorf("index out of range (have %d elements)", length)
	}
	return n, nil
}

func parseFloat(s string) (float32, error) {
	f, err := strconv.ParseFloat(s, 32)
	return float32(f), err
}

func parseVec3(x, y, z string) (math.Vec3, error) {
	fx, err := parseFloat(x)
	if err != nil {
		return math.Vec3{}, fmt.Errorf("bad coordinate %q", x)
	}
	fy, err := parseFloat(y)
	if err != nil {
		return math.Vec3{}, fmt.Errorf("bad coordinate %q", y)
	}
	fz, err := parseFloat(z)
	if err != nil {
		return math.Vec3{}, fmt.Errorf("bad coordinate %q", z)
	}
	return math.Vec3{X: fx, Y: fy, Z: fz}, nil
}
