package geocalc

import "math"

// Euler builds a rotation from Euler angles in degrees.
//
// The order is fixed: rotate about Z first, then X, then Y, all about the
// world axes (q = qY * qX * qZ). The result has unit length.
func Euler(x, y, z float64) Rotation {
	qx := axisRotation(Vec3{X: 1}, x)
	qy := axisRotation(Vec3{Y: 1}, y)
	qz := axisRotation(Vec3{Z: 1}, z)

	return qy.Mul(qx).Mul(qz).Normalized()
}

// axisRotation returns the rotation of deg degrees about a unit axis.
func axisRotation(axis Vec3, deg float64) Rotation {
	half := deg * math.Pi / 360
	s, c := math.Sincos(half)

	return Rotation{X: axis.X * s, Y: axis.Y * s, Z: axis.Z * s, W: c}
}

// Mul returns the composition q * r (apply r, then q).
func (q Rotation) Mul(r Rotation) Rotation {
	return Rotation{
		X: q.W*r.X + q.X*r.W + q.Y*r.Z - q.Z*r.Y,
		Y: q.W*r.Y - q.X*r.Z + q.Y*r.W + q.Z*r.X,
		Z: q.W*r.Z + q.X*r.Y - q.Y*r.X + q.Z*r.W,
		W: q.W*r.W - q.X*r.X - q.Y*r.Y - q.Z*r.Z,
	}
}

// Rotate rotates v by q. q is assumed to be unit length.
func (q Rotation) Rotate(v Vec3) Vec3 {
	u := Vec3{X: q.X, Y: q.Y, Z: q.Z}
	t := u.Cross(v).Scale(2)

	return v.Add(t.Scale(q.W)).Add(u.Cross(t))
}

// Dot returns the 4D dot product of two rotations.
func (q Rotation) Dot(r Rotation) float64 {
	return q.X*r.X + q.Y*r.Y + q.Z*r.Z + q.W*r.W
}

// Normalized returns q scaled to unit length. A zero quaternion yields the
// identity rotation.
func (q Rotation) Normalized() Rotation {
	n := math.Sqrt(q.Dot(q))
	if n <= normalizeEpsilon {
		return IdentityRotation
	}

	return Rotation{X: q.X / n, Y: q.Y / n, Z: q.Z / n, W: q.W / n}
}

// Angle returns the angle in radians between two rotations.
func (q Rotation) Angle(r Rotation) float64 {
	d := math.Abs(q.Normalized().Dot(r.Normalized()))

	return 2 * math.Acos(math.Min(d, 1))
}

// Lerp interpolates component-wise along the shortest arc and normalizes.
// t is clamped to [0,1].
func (q Rotation) Lerp(r Rotation, t float64) Rotation {
	if q.Dot(r) < 0 {
		r = Rotation{X: -r.X, Y: -r.Y, Z: -r.Z, W: -r.W}
	}

	out, _ := lerpValue(q, r, t).(Rotation)
	return out.Normalized()
}

// Slerp spherically interpolates along the shortest arc. t is clamped to [0,1].
func (q Rotation) Slerp(r Rotation, t float64) Rotation {
	t = Clamp01(t)
	q, r = q.Normalized(), r.Normalized()

	d := q.Dot(r)
	if d < 0 {
		r = Rotation{X: -r.X, Y: -r.Y, Z: -r.Z, W: -r.W}
		d = -d
	}

	// Nearly parallel: fall back to normalized lerp.
	if d > 0.9995 {
		return q.Lerp(r, t)
	}

	theta := math.Acos(d)
	sin := math.Sin(theta)
	wq := math.Sin((1-t)*theta) / sin
	wr := math.Sin(t*theta) / sin

	return Rotation{
		X: q.X*wq + r.X*wr,
		Y: q.Y*wq + r.Y*wr,
		Z: q.Z*wq + r.Z*wr,
		W: q.W*wq + r.W*wr,
	}
}
