package math

import (
	"testing"

	"github.com/chewxy/math32"
)

func TestIdentity(t *testing.T) {
	m := Identity()
	if m[0] != 1 || m[5] != 1 || m[10] != 1 || m[15] != 1 {
		t.Error("Identity diagonal should be 1")
	}
	if m[1] != 0 || m[4] != 0 {
		t.Error("Identity off-diagonal should be 0")
	}
}

func TestMulIdentity(t *testing.T) {
	m := Translate(1, 2, 3)
	result := m.Mul(Identity())

	for i := 0; i < 16; i++ {
		if result[i] != m[i] {
			t.Errorf("M * I should equal M, element %d: got %f, want %f", i, result[i], m[i])
		}
	}
}

func TestTranslation(t *testing.T) {
	m := Translate(5, 10, 15)

	got := m.Translation()
	if got != (Vec3{5, 10, 15}) {
		t.Errorf("Translation: got %v, want (5, 10, 15)", got)
	}
}

func TestScaleFactors(t *testing.T) {
	m := Translate(1, 2, 3).Mul(RotateZ(0.5)).Mul(Scale(2, 3, 4))

	s := m.ScaleFactors()
	if math32.Abs(s.X-2) > 1e-5 || math32.Abs(s.Y-3) > 1e-5 || math32.Abs(s.Z-4) > 1e-5 {
		t.Errorf("ScaleFactors: got %v, want (2, 3, 4)", s)
	}
}

func TestDeterminant(t *testing.T) {
	tests := []struct {
		name string
		m    Mat4
		want float32
	}{
		{"identity", Identity(), 1},
		{"rotation", RotateY(1.2), 1},
		{"scale", Scale(2, 2, 2), 8},
		{"mirror", Scale(-1, 1, 1), -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.m.Determinant()
			if math32.Abs(got-tt.want) > 1e-5 {
				t.Errorf("Determinant: got %f, want %f", got, tt.want)
			}
		})
	}
}

func TestEulerXYZRoundTrip(t *testing.T) {
	tests := []struct {
		name    string
		x, y, z float32
	}{
		{"zero", 0, 0, 0},
		{"x only", 0.4, 0, 0},
		{"y only", 0, -0.7, 0},
		{"z only", 0, 0, 1.1},
		{"combined", 0.3, 0.5, -0.9},
		{"negative", -1.2, 0.2, 2.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := RotateZ(tt.z).Mul(RotateY(tt.y)).Mul(RotateX(tt.x))
			e := m.EulerXYZ()

			if math32.Abs(e.X-tt.x) > 1e-4 ||
				math32.Abs(e.Y-tt.y) > 1e-4 ||
				math32.Abs(e.Z-tt.z) > 1e-4 {
				t.Errorf("EulerXYZ: got (%f, %f, %f), want (%f, %f, %f)",
					e.X, e.Y, e.Z, tt.x, tt.y, tt.z)
			}
		})
	}
}

func TestEulerXYZWithScale(t *testing.T) {
	// Scale must not leak into the extracted rotation.
	m := RotateZ(0.8).Mul(RotateX(0.3)).Mul(Scale(2, 5, 0.5))
	e := m.EulerXYZ()

	if math32.Abs(e.X-0.3) > 1e-4 || math32.Abs(e.Y) > 1e-4 || math32.Abs(e.Z-0.8) > 1e-4 {
		t.Errorf("EulerXYZ with scale: got (%f, %f, %f), want (0.3, 0, 0.8)", e.X, e.Y, e.Z)
	}
}

func TestInverse(t *testing.T) {
	m := Translate(3, -1, 2).Mul(RotateY(0.6)).Mul(Scale(2, 2, 2))
	inv := m.Inverse()
	result := m.Mul(inv)

	id := Identity()
	for i := 0; i < 16; i++ {
		if math32.Abs(result[i]-id[i]) > 1e-5 {
			t.Errorf("M * M^-1 element %d: got %f, want %f", i, result[i], id[i])
		}
	}
}

func TestTransformPoint(t *testing.T) {
	m := Translate(10, 20, 30)
	result := m.TransformPoint(Vec3{1, 2, 3})

	if result != (Vec3{11, 22, 33}) {
		t.Errorf("TransformPoint: got %v, want (11, 22, 33)", result)
	}
}

func TestTransformDirection(t *testing.T) {
	m := Translate(10, 20, 30)
	result := m.TransformDirection(Vec3{0, 0, 1})

	if result != (Vec3{0, 0, 1}) {
		t.Errorf("TransformDirection should ignore translation: got %v", result)
	}
}
