package geocalc

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		v    Value
		want string
	}{
		{Number(7), "7"},
		{Number(-0.5), "-0.5"},
		{Number(1.0 / 3), "0.3333333333"},
		{Number(123456789012), "1.23456789e+11"},
		{Number(math.Inf(1)), "+Inf"},
		{Vec2{X: 1, Y: 2}, "vec2(1, 2)"},
		{Vec3{X: 0.1, Y: -2, Z: 3.5}, "vec3(0.1, -2, 3.5)"},
		{Vec4{W: 1}, "vec4(0, 0, 0, 1)"},
		{Color{R: 1, G: 0.5, B: 0.25, A: 1}, "color(1, 0.5, 0.25, 1)"},
		{IdentityRotation, "quat(0, 0, 0, 1)"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Format(tt.v, nil))
	}

	assert.Equal(t, "vec2(0.33, 0.67)", Format(Vec2{X: 1.0 / 3, Y: 2.0 / 3}, &FormatOptions{Precision: 2}))
}

func TestSeedExpression(t *testing.T) {
	tests := []struct {
		v    Value
		want string
	}{
		{Number(2.5), "2.5"},
		{Vec3{X: 1, Y: 2, Z: 3}, "vec3(1,2,3)"},
		{Vec2{X: -1, Y: 0.1}, "vec2(-1,0.1)"},
		{Color{R: 1, A: 1}, "color(1,0,0,1)"},
		{Rotation{W: 1}, "quat(0,0,0,1)"},
		{Number(1.0 / 3), "0.3333333333333333"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, SeedExpression(tt.v))
	}
}

func TestSeedRoundTrip(t *testing.T) {
	values := []Value{
		Number(0),
		Number(-1e-12),
		Number(math.Pi),
		Number(6.02214076e23),
		Vec2{X: 0.1, Y: 0.2},
		Vec3{X: -1.5, Y: 1e-7, Z: 42},
		Vec4{X: 1, Y: -1, Z: 1e300, W: -1e-300},
		Color{R: 0.123456789, G: 1, B: 0, A: 0.5},
		Euler(10, 20, 30),
		Rotation{X: -0.5, Y: 0.5, Z: -0.5, W: 0.5},
	}

	for _, v := range values {
		for _, mode := range []AngleMode{Degrees, Radians} {
			seed := SeedExpression(v)
			got, err := EvaluateValue(seed, &EvalOptions{AngleMode: mode})
			require.NoError(t, err, seed)
			assert.Equal(t, v, got, seed)
		}
	}
}

func TestFormatIdempotent(t *testing.T) {
	exprs := []string{
		"pi",
		"1/3",
		"vec3(1/3, 2/3, 1)",
		"euler(10, 20, 30)",
		"color(0.1, 0.2, 0.3, 1) * 3",
		"1e-7",
		"2^60",
	}

	for _, expr := range exprs {
		first, err := Evaluate(expr, nil)
		require.NoError(t, err, expr)

		second, err := Evaluate(first, nil)
		require.NoError(t, err, first)
		assert.Equal(t, first, second, expr)
	}
}

func TestFormatNearFloatLimit(t *testing.T) {
	tests := []struct {
		v    Value
		want string
	}{
		{Number(math.MaxFloat64), "1.7976931348623157e+308"},
		{Number(-math.MaxFloat64), "-1.7976931348623157e+308"},
		{Number(1.7e308), "1.7e+308"},
		{Vec2{X: math.MaxFloat64, Y: 1}, "vec2(1.7976931348623157e+308, 1)"},
	}

	for _, tt := range tests {
		shown := Format(tt.v, nil)
		assert.Equal(t, tt.want, shown)

		again, err := Evaluate(shown, nil)
		require.NoError(t, err, shown)
		assert.Equal(t, shown, again)
	}
}

func TestSeedExpressionAs(t *testing.T) {
	got, err := SeedExpressionAs(Vec3{X: 1, Y: 2, Z: 3}, KindVec2)
	require.NoError(t, err)
	assert.Equal(t, "vec2(1,2)", got)

	got, err = SeedExpressionAs(Number(3), KindNone)
	require.NoError(t, err)
	assert.Equal(t, "3", got)

	_, err = SeedExpressionAs(Number(3), KindRotation)
	assert.Equal(t, KindTypeMismatch, KindOf(err))
}
