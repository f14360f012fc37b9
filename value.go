package geocalc

import "strings"

// Kind represents the variant of a Value.
type Kind int

const (
	// KindNone means no kind; used as "no target hint".
	KindNone Kind = iota
	// KindNumber indicates a scalar.
	KindNumber
	// KindVec2 indicates a 2-component vector.
	KindVec2
	// KindVec3 indicates a 3-component vector.
	KindVec3
	// KindVec4 indicates a 4-component vector.
	KindVec4
	// KindColor indicates an RGBA color.
	KindColor
	// KindRotation indicates a quaternion rotation.
	KindRotation
)

// String returns the constructor name of the kind.
func (k Kind) String() string {
	switch k {
	case KindNumber:
		return "number"
	case KindVec2:
		return "vec2"
	case KindVec3:
		return "vec3"
	case KindVec4:
		return "vec4"
	case KindColor:
		return "color"
	case KindRotation:
		return "quat"
	default:
		return "none"
	}
}

// Arity returns the component count of the kind.
func (k Kind) Arity() int {
	switch k {
	case KindNumber:
		return 1
	case KindVec2:
		return 2
	case KindVec3:
		return 3
	case KindVec4, KindColor, KindRotation:
		return 4
	default:
		return 0
	}
}

// IsVector reports whether the kind is Vec2, Vec3 or Vec4.
func (k Kind) IsVector() bool {
	return k == KindVec2 || k == KindVec3 || k == KindVec4
}

// ParseKind resolves a kind name such as "vec3" or "quat".
func ParseKind(s string) (Kind, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "number", "float", "double", "scalar":
		return KindNumber, true
	case "vec2", "vector2":
		return KindVec2, true
	case "vec3", "vector3":
		return KindVec3, true
	case "vec4", "vector4":
		return KindVec4, true
	case "color", "colour":
		return KindColor, true
	case "quat", "quaternion", "rotation":
		return KindRotation, true
	case "", "none":
		return KindNone, true
	default:
		return KindNone, false
	}
}

// Value is the result of an evaluation. The set of implementations is closed:
// Number, Vec2, Vec3, Vec4, Color and Rotation.
type Value interface {
	Kind() Kind
	value()
}

// Number is a scalar value.
type Number float64

// Vec2 is a 2-component vector.
type Vec2 struct {
	X float64 `json:"x" yaml:"x"` // X component
	Y float64 `json:"y" yaml:"y"` // Y component
}

// Vec3 is a 3-component vector.
type Vec3 struct {
	X float64 `json:"x" yaml:"x"` // X component
	Y float64 `json:"y" yaml:"y"` // Y component
	Z float64 `json:"z" yaml:"z"` // Z component
}

// Vec4 is a 4-component vector.
type Vec4 struct {
	X float64 `json:"x" yaml:"x"` // X component
	Y float64 `json:"y" yaml:"y"` // Y component
	Z float64 `json:"z" yaml:"z"` // Z component
	W float64 `json:"w" yaml:"w"` // W component
}

// Rotation is a quaternion. Only euler(...) guarantees unit length.
type Rotation struct {
	X float64 `json:"x" yaml:"x"` // X (imaginary i) component
	Y float64 `json:"y" yaml:"y"` // Y (imaginary j) component
	Z float64 `json:"z" yaml:"z"` // Z (imaginary k) component
	W float64 `json:"w" yaml:"w"` // W (real) component
}

// Kind implements Value.
func (Number) Kind() Kind { return KindNumber }

// Kind implements Value.
func (Vec2) Kind() Kind { return KindVec2 }

// Kind implements Value.
func (Vec3) Kind() Kind { return KindVec3 }

// Kind implements Value.
func (Vec4) Kind() Kind { return KindVec4 }

// Kind implements Value.
func (Rotation) Kind() Kind { return KindRotation }

func (Number) value()   {}
func (Vec2) value()     {}
func (Vec3) value()     {}
func (Vec4) value()     {}
func (Rotation) value() {}

// IdentityRotation is the rotation that leaves vectors unchanged.
var IdentityRotation = Rotation{W: 1}

// Components returns the components of v in constructor order.
func Components(v Value) []float64 {
	switch x := v.(type) {
	case Number:
		return []float64{float64(x)}
	case Vec2:
		return []float64{x.X, x.Y}
	case Vec3:
		return []float64{x.X, x.Y, x.Z}
	case Vec4:
		return []float64{x.X, x.Y, x.Z, x.W}
	case Color:
		return x.ToArray()
	case Rotation:
		return []float64{x.X, x.Y, x.Z, x.W}
	default:
		return nil
	}
}

// FromComponents builds a value of kind k. It reports false when the
// component count does not match the kind.
func FromComponents(k Kind, c []float64) (Value, bool) {
	if k.Arity() == 0 || len(c) != k.Arity() {
		return nil, false
	}

	switch k {
	case KindNumber:
		return Number(c[0]), true
	case KindVec2:
		return Vec2{X: c[0], Y: c[1]}, true
	case KindVec3:
		return Vec3{X: c[0], Y: c[1], Z: c[2]}, true
	case KindVec4:
		return Vec4{X: c[0], Y: c[1], Z: c[2], W: c[3]}, true
	case KindColor:
		return SetColorRGBA(c[0], c[1], c[2], c[3]), true
	case KindRotation:
		return Rotation{X: c[0], Y: c[1], Z: c[2], W: c[3]}, true
	default:
		return nil, false
	}
}

// mapComponents applies fn to every component of v, keeping its kind.
func mapComponents(v Value, fn func(float64) float64) Value {
	c := Components(v)
	for i := range c {
		c[i] = fn(c[i])
	}

	out, _ := FromComponents(v.Kind(), c)
	return out
}

// zipComponents combines two values of the same kind component by component.
func zipComponents(a, b Value, fn func(x, y float64) float64) Value {
	ca, cb := Components(a), Components(b)
	for i := range ca {
		ca[i] = fn(ca[i], cb[i])
	}

	out, _ := FromComponents(a.Kind(), ca)
	return out
}
