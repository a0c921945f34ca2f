package math

import "math"

// AABB is an axis-aligned bounding box stored as center and half-extents.
type AABB struct {
	Center      Vec3
	HalfExtents Vec3
}

// NewAABBFromMinMax creates an AABB from its minimum and maximum corners.
func NewAABBFromMinMax(min, max Vec3) AABB {
	return AABB{
		Center:      min.Add(max).Scale(0.5),
		HalfExtents: max.Sub(min).Scale(0.5),
	}
}

// Min returns the minimum corner.
func (b AABB) Min() Vec3 {
	return b.Center.Sub(b.HalfExtents)
}

// Max returns the maximum corner.
func (b AABB) Max() Vec3 {
	return b.Center.Add(b.HalfExtents)
}

// Transform returns the box transformed by the given matrix.
// The result is the tightest axis-aligned box containing the transformed
// corners, computed with the absolute-matrix method: the center is
// transformed as a point and each half-extent through the absolute value
// of the rotation/scale part.
func (b AABB) Transform(m Mat4) AABB {
	c := m.TransformVec3(b.Center)
	h := Vec3{
		X: absf(m[0])*b.HalfExtents.X + absf(m[4])*b.HalfExtents.Y + absf(m[8])*b.HalfExtents.Z,
		Y: absf(m[1])*b.HalfExtents.X + absf(m[5])*b.HalfExtents.Y + absf(m[9])*b.HalfExtents.Z,
		Z: absf(m[2])*b.HalfExtents.X + absf(m[6])*b.HalfExtents.Y + absf(m[10])*b.HalfExtents.Z,
	}
	return AABB{Center: c, HalfExtents: h}
}

// Contains reports whether the point lies inside the box (inclusive).
func (b AABB) Contains(p Vec3) bool {
	min := b.Min()
	max := b.Max()
	return p.X >= min.X && p.X <= max.X &&
		p.Y >= min.Y && p.Y <= max.Y &&
		p.Z >= min.Z && p.Z <= max.Z
}

// Merge returns the smallest box containing both boxes.
func (b AABB) Merge(other AABB) AABB {
	min := b.Min()
	max := b.Max()
	omin := other.Min()
	omax := other.Max()
	return NewAABBFromMinMax(
		Vec3{minf(min.X, omin.X), minf(min.Y, omin.Y), minf(min.Z, omin.Z)},
		Vec3{maxf(max.X, omax.X), maxf(max.Y, omax.Y), maxf(max.Z, omax.Z)},
	)
}

func absf(x float32) float32 {
	return float32(math.Abs(float64(x)))
}

func minf(a, b float32) float32 {
	if a < b {
		return a
	}
	return b
}

func maxf(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}
