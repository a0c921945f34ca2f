package math

import (
	"math"
	"testing"
)

func TestNewAABBFromMinMax(t *testing.T) {
	b := NewAABBFromMinMax(Vec3{-1, -2, -3}, Vec3{1, 2, 3})

	if b.Center != (Vec3{0, 0, 0}) {
		t.Errorf("center: got %v, want origin", b.Center)
	}
	if b.HalfExtents != (Vec3{1, 2, 3}) {
		t.Errorf("half extents: got %v, want (1, 2, 3)", b.HalfExtents)
	}
	if b.Min() != (Vec3{-1, -2, -3}) {
		t.Errorf("min: got %v, want (-1, -2, -3)", b.Min())
	}
	if b.Max() != (Vec3{1, 2, 3}) {
		t.Errorf("max: got %v, want (1, 2, 3)", b.Max())
	}
}

func TestAABBTransformIdentity(t *testing.T) {
	b := NewAABBFromMinMax(Vec3{-1, -1, -1}, Vec3{2, 2, 2})
	result := b.Transform(Identity())

	if result != b {
		t.Errorf("identity transform should not change box: got %v, want %v", result, b)
	}
}

func TestAABBTransformTranslate(t *testing.T) {
	b := NewAABBFromMinMax(Vec3{-1, -1, -1}, Vec3{1, 1, 1})
	result := b.Transform(Translate(10, 20, 30))

	if result.Center != (Vec3{10, 20, 30}) {
		t.Errorf("translated center: got %v, want (10, 20, 30)", result.Center)
	}
	if result.HalfExtents != b.HalfExtents {
		t.Errorf("translation should not change extents: got %v", result.HalfExtents)
	}
}

func TestAABBTransformRotate90(t *testing.T) {
	// A box twice as long in X, rotated 90 degrees around Y, should end
	// up twice as long in Z.
	b := NewAABBFromMinMax(Vec3{-2, -1, -1}, Vec3{2, 1, 1})
	result := b.Transform(RotateY(float32(math.Pi / 2)))

	if absf(result.HalfExtents.X-1) > 0.001 || absf(result.HalfExtents.Z-2) > 0.001 {
		t.Errorf("rotated extents: got %v, want (1, 1, 2)", result.HalfExtents)
	}
}

func TestAABBContains(t *testing.T) {
	b := NewAABBFromMinMax(Vec3{0, 0, 0}, Vec3{10, 10, 10})

	if !b.Contains(Vec3{5, 5, 5}) {
		t.Error("box should contain interior point")
	}
	if !b.Contains(Vec3{0, 0, 0}) {
		t.Error("box should contain corner point")
	}
	if b.Contains(Vec3{11, 5, 5}) {
		t.Error("box should not contain exterior point")
	}
}

func TestAABBMerge(t *testing.T) {
	a := NewAABBFromMinMax(Vec3{0, 0, 0}, Vec3{1, 1, 1})
	b := NewAABBFromMinMax(Vec3{2, 2, 2}, Vec3{3, 3, 3})
	merged := a.Merge(b)

	if merged.Min() != (Vec3{0, 0, 0}) || merged.Max() != (Vec3{3, 3, 3}) {
		t.Errorf("merge: got min %v max %v, want (0,0,0)..(3,3,3)", merged.Min(), merged.Max())
	}
}

func TestTranspose(t *testing.T) {
	m := Translate(1, 2, 3)
	mt := m.Transpose()

	// Translation column moves to the bottom row
	if mt[3] != 1 || mt[7] != 2 || mt[11] != 3 {
		t.Errorf("transpose: got (%f, %f, %f), want (1, 2, 3)", mt[3], mt[7], mt[11])
	}
	if mt.Transpose() != m {
		t.Error("double transpose should return the original matrix")
	}
}

func TestCompose(t *testing.T) {
	pos := Vec3{1, 2, 3}
	rot := QuatIdentity()
	scale := Vec3{2, 2, 2}
	m := Compose(pos, rot, scale)

	if m[12] != 1 || m[13] != 2 || m[14] != 3 {
		t.Errorf("compose translation: got (%f, %f, %f), want (1, 2, 3)", m[12], m[13], m[14])
	}
	if m[0] != 2 || m[5] != 2 || m[10] != 2 {
		t.Errorf("compose scale diagonal: got (%f, %f, %f), want (2, 2, 2)", m[0], m[5], m[10])
	}

	// Composing with a rotation should match transforming a point manually
	rot = QuatFromAxisAngle(Vec3{0, 1, 0}, float32(math.Pi/2))
	m = Compose(Vec3{}, rot, Vec3{1, 1, 1})
	p := m.TransformVec3(Vec3{1, 0, 0})
	if absf(p.X) > 0.001 || absf(p.Z+1) > 0.001 {
		t.Errorf("compose rotation: got %v, want (0, 0, -1)", p)
	}
}
