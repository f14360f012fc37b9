package geocalc

// Color represents RGBA color. Channels are not clamped.
type Color struct {
	R float64 `json:"r" yaml:"r"` // Red channel component
	G float64 `json:"g" yaml:"g"` // Green channel component
	B float64 `json:"b" yaml:"b"` // Blue channel component
	A float64 `json:"a" yaml:"a"` // Alpha channel component
}

// Kind implements Value.
func (Color) Kind() Kind { return KindColor }

func (Color) value() {}

// Clamp01 limits an interpolation factor to the unit range.
func Clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// SetColorRGBA builds the result of color(r, g, b, a).
func SetColorRGBA(r, g, b, a float64) Color {
	return Color{R: r, G: g, B: b, A: a}
}

// SetColorRGB builds an opaque Color, as a widened vec3 does.
func SetColorRGB(r, g, b float64) Color {
	return Color{R: r, G: g, B: b, A: 1}
}

// Vec4 returns the channels as a vector in r, g, b, a order.
func (c Color) Vec4() Vec4 {
	return Vec4{X: c.R, Y: c.G, Z: c.B, W: c.A}
}

// ToArray returns the channels as components in r, g, b, a order.
func (c Color) ToArray() []float64 {
	return []float64{c.R, c.G, c.B, c.A}
}
