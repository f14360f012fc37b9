package geocalc

import "math"

// normalizeEpsilon is the magnitude under which a vector normalizes to zero.
const normalizeEpsilon = 1e-5

// dotN returns the dot product of two equal-length component slices.
func dotN(a, b []float64) float64 {
	var s float64
	for i := range a {
		s += a[i] * b[i]
	}

	return s
}

// Magnitude returns the Euclidean norm of a Vec2, Vec3 or Vec4.
// It reports false for other kinds.
func Magnitude(v Value) (float64, bool) {
	if !v.Kind().IsVector() {
		return 0, false
	}

	c := Components(v)
	return math.Sqrt(dotN(c, c)), true
}

// Normalize returns a unit-length copy of a Vec2, Vec3 or Vec4.
// Vectors shorter than 1e-5 normalize to the zero vector.
func Normalize(v Value) (Value, bool) {
	m, ok := Magnitude(v)
	if !ok {
		return nil, false
	}

	if m <= normalizeEpsilon {
		return mapComponents(v, func(float64) float64 { return 0 }), true
	}

	return mapComponents(v, func(x float64) float64 { return x / m }), true
}

// Dot returns the dot product of two vectors of the same kind.
func Dot(a, b Value) (float64, bool) {
	if !a.Kind().IsVector() || a.Kind() != b.Kind() {
		return 0, false
	}

	return dotN(Components(a), Components(b)), true
}

// Distance returns the Euclidean distance between two vectors of the same kind.
func Distance(a, b Value) (float64, bool) {
	if !a.Kind().IsVector() || a.Kind() != b.Kind() {
		return 0, false
	}

	d := zipComponents(a, b, func(x, y float64) float64 { return x - y })
	return Magnitude(d)
}

// Angle returns the unsigned angle between two vectors of the same kind in
// radians. A zero-length operand yields 0.
func Angle(a, b Value) (float64, bool) {
	d, ok := Dot(a, b)
	if !ok {
		return 0, false
	}

	ma, _ := Magnitude(a)
	mb, _ := Magnitude(b)
	den := ma * mb
	if den <= normalizeEpsilon*normalizeEpsilon {
		return 0, true
	}

	return math.Acos(clamp(d/den, -1, 1)), true
}

// Cross returns the cross product a × b.
func (a Vec3) Cross(b Vec3) Vec3 {
	return Vec3{
		X: a.Y*b.Z - a.Z*b.Y,
		Y: a.Z*b.X - a.X*b.Z,
		Z: a.X*b.Y - a.Y*b.X,
	}
}

// Dot returns the dot product a · b.
func (a Vec3) Dot(b Vec3) float64 {
	return a.X*b.X + a.Y*b.Y + a.Z*b.Z
}

// Scale returns a multiplied by s.
func (a Vec3) Scale(s float64) Vec3 {
	return Vec3{X: a.X * s, Y: a.Y * s, Z: a.Z * s}
}

// Add returns a + b.
func (a Vec3) Add(b Vec3) Vec3 {
	return Vec3{X: a.X + b.X, Y: a.Y + b.Y, Z: a.Z + b.Z}
}

// Sub returns a - b.
func (a Vec3) Sub(b Vec3) Vec3 {
	return Vec3{X: a.X - b.X, Y: a.Y - b.Y, Z: a.Z - b.Z}
}

// Len returns the length of a.
func (a Vec3) Len() float64 {
	return math.Sqrt(a.Dot(a))
}

// Project projects a onto normal. A near-zero normal yields the zero vector.
func (a Vec3) Project(normal Vec3) Vec3 {
	sq := normal.Dot(normal)
	if sq < normalizeEpsilon*normalizeEpsilon {
		return Vec3{}
	}

	return normal.Scale(a.Dot(normal) / sq)
}

// Reflect reflects direction a off the plane defined by normal.
func (a Vec3) Reflect(normal Vec3) Vec3 {
	return a.Sub(normal.Scale(2 * normal.Dot(a)))
}

// Slerp spherically interpolates between a and b, rotating the direction and
// linearly interpolating the magnitude. t is clamped to [0,1].
func (a Vec3) Slerp(b Vec3, t float64) Vec3 {
	t = Clamp01(t)
	la, lb := a.Len(), b.Len()
	if la <= normalizeEpsilon || lb <= normalizeEpsilon {
		return a.Add(b.Sub(a).Scale(t))
	}

	ua, ub := a.Scale(1/la), b.Scale(1/lb)
	d := clamp(ua.Dot(ub), -1, 1)
	theta := math.Acos(d) * t

	// Direction orthogonal to ua within the ua/ub plane.
	rel := ub.Sub(ua.Scale(d))
	if rel.Len() <= normalizeEpsilon {
		if d > 0 {
			return ua.Scale(la + (lb-la)*t)
		}
		rel = anyPerpendicular(ua)
	}
	rel = rel.Scale(1 / rel.Len())

	dir := ua.Scale(math.Cos(theta)).Add(rel.Scale(math.Sin(theta)))
	return dir.Scale(la + (lb-la)*t)
}

// anyPerpendicular returns a unit vector orthogonal to the unit vector u.
func anyPerpendicular(u Vec3) Vec3 {
	p := u.Cross(Vec3{X: 1})
	if p.Len() <= normalizeEpsilon {
		p = u.Cross(Vec3{Y: 1})
	}

	return p.Scale(1 / p.Len())
}

// lerpValue linearly interpolates between two values of the same kind.
func lerpValue(a, b Value, t float64) Value {
	t = Clamp01(t)
	return zipComponents(a, b, func(x, y float64) float64 { return x + (y-x)*t })
}

// clamp clamps v to [lo,hi].
func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
