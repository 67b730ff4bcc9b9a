package math

import (
	gomath "math"
	"testing"
)

const epsilon = 1e-4

func almostEqual(a, b float32) bool {
	return gomath.Abs(float64(a-b)) < epsilon
}

func vecAlmostEqual(a, b Vec3) bool {
	return almostEqual(a.X, b.X) && almostEqual(a.Y, b.Y) && almostEqual(a.Z, b.Z)
}

func TestVec3Ops(t *testing.T) {
	a := Vec3{1, 2, 3}
	b := Vec3{4, 5, 6}

	if got := a.Add(b); !vecAlmostEqual(got, Vec3{5, 7, 9}) {
		t.Errorf("Add = %v", got)
	}
	if got := a.Sub(b); !vecAlmostEqual(got, Vec3{-3, -3, -3}) {
		t.Errorf("Sub = %v", got)
	}
	if got := a.Dot(b); !almostEqual(got, 32) {
		t.Errorf("Dot = %v", got)
	}
	if got := a.Cross(b); !vecAlmostEqual(got, Vec3{-3, 6, -3}) {
		t.Errorf("Cross = %v", got)
	}
	if got := (Vec3{3, 4, 0}).Length(); !almostEqual(got, 5) {
		t.Errorf("Length = %v", got)
	}
	if got := (Vec3{}).Normalize(); !vecAlmostEqual(got, Vec3{}) {
		t.Errorf("Normalize(zero) = %v", got)
	}
}

func TestQuatAxisAngleComposition(t *testing.T) {
	// Composing N small rotations about the same axis equals one rotation
	// by the summed angle.
	const step = 0.02
	const n = 100

	q := QuatIdentity()
	for i := 0; i < n; i++ {
		q = q.Mul(QuatFromAxisAngle(Up, step))
	}

	want := QuatFromAxisAngle(Up, step*n)
	if !almostEqual(q.Dot(want), 1) {
		t.Errorf("composed quat %v, want %v", q, want)
	}
}

func TestQuatRotatesPoint(t *testing.T) {
	tests := []struct {
		name  string
		angle float32
		in    Vec3
		want  Vec3
	}{
		{"quarter turn about Y", gomath.Pi / 2, Vec3{1, 0, 0}, Vec3{0, 0, -1}},
		{"half turn about Y", gomath.Pi, Vec3{1, 0, 0}, Vec3{-1, 0, 0}},
		{"full turn about Y", 2 * gomath.Pi, Vec3{1, 0, 0}, Vec3{1, 0, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := QuatFromAxisAngle(Up, tt.angle).ToMat4()
			got := m.TransformPoint(tt.in)
			if !vecAlmostEqual(got, tt.want) {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestQuatNormalizeDegenerate(t *testing.T) {
	q := Quat{}.Normalize()
	if q != QuatIdentity() {
		t.Errorf("Normalize(zero) = %v, want identity", q)
	}
}

func TestMat4TranslateScale(t *testing.T) {
	m := Translate(1, 2, 3).Mul(Scale(2, 2, 2))
	got := m.TransformPoint(Vec3{1, 1, 1})
	if !vecAlmostEqual(got, Vec3{3, 4, 5}) {
		t.Errorf("got %v, want {3 4 5}", got)
	}
}

func TestMat4MulIdentity(t *testing.T) {
	m := Perspective(gomath.Pi/4, 16.0/9.0, 0.1, 100)
	if got := m.Mul(Identity()); got != m {
		t.Errorf("m * I != m")
	}
}
