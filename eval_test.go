package geocalc

import (
	"errors"
	"math"
	"math/rand"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const tolerance = 1e-9

func evalValue(t *testing.T, expr string, mode AngleMode) Value {
	t.Helper()

	v, err := EvaluateValue(expr, &EvalOptions{AngleMode: mode})
	require.NoError(t, err, expr)
	return v
}

func assertComponents(t *testing.T, want, got Value, msg string) {
	t.Helper()

	require.Equal(t, want.Kind(), got.Kind(), msg)
	wc, gc := Components(want), Components(got)
	for i := range wc {
		assert.InDelta(t, wc[i], gc[i], tolerance, "%s: component %d of %v", msg, i, got)
	}
}

func TestEvaluateTypedResults(t *testing.T) {
	tests := []struct {
		in   string
		want Value
	}{
		{"2^3^2", Number(512)},
		{"vec3(1,2,3)*vec3(2,2,2)", Vec3{X: 2, Y: 4, Z: 6}},
		{"2*vec2(3,4)", Vec2{X: 6, Y: 8}},
		{"vec2(3,4)/2", Vec2{X: 1.5, Y: 2}},
		{"vec3(3,4,0).magnitude", Number(5)},
		{"-vec2(1,-2)", Vec2{X: -1, Y: 2}},
		{"color(1,0,0,1) + color(0,1,0,0)", Color{R: 1, G: 1, B: 0, A: 1}},
		{"vec4(1,2,3,4) * vec4(1,1,1,0.5)", Vec4{X: 1, Y: 2, Z: 3, W: 2}},
		{"quat(1,2,3,4)", Rotation{X: 1, Y: 2, Z: 3, W: 4}},
	}

	for _, tt := range tests {
		got := evalValue(t, tt.in, Degrees)
		assert.Equal(t, tt.want, got, tt.in)
	}
}

func TestAngleModes(t *testing.T) {
	v := evalValue(t, "sin(90)", Degrees)
	assert.InDelta(t, 1, float64(v.(Number)), tolerance)

	v = evalValue(t, "sin(90)", Radians)
	assert.InDelta(t, 0.8939966636, float64(v.(Number)), 1e-10)

	// Inverse functions report in the active mode.
	v = evalValue(t, "atan(1)", Degrees)
	assert.InDelta(t, 45, float64(v.(Number)), tolerance)
	v = evalValue(t, "atan(1)", Radians)
	assert.InDelta(t, math.Pi/4, float64(v.(Number)), tolerance)

	// Exact values at right angles.
	for expr, want := range map[string]float64{
		"sin(180)":  0,
		"cos(90)":   0,
		"cos(-180)": -1,
		"sin(270)":  -1,
		"sin(-90)":  -1,
		"tan(180)":  0,
		"cos(720)":  1,
	} {
		v := evalValue(t, expr, Degrees)
		assert.Equal(t, want, float64(v.(Number)), expr)
	}

	_, err := Evaluate("tan(270)", nil)
	assert.Equal(t, KindDomain, KindOf(err))

	_, err = Evaluate("tan(pi/2)", &EvalOptions{AngleMode: Radians})
	assert.NoError(t, err)
}

func TestEulerRotation(t *testing.T) {
	tests := []struct {
		in   string
		want Vec3
	}{
		{"euler(0,90,0) * vec3(1,0,0)", Vec3{Z: -1}},
		{"euler(0,90,0) * vec3(0,0,1)", Vec3{X: 1}},
		{"euler(90,0,0) * vec3(0,1,0)", Vec3{Z: 1}},
		{"euler(0,0,90) * vec3(1,0,0)", Vec3{Y: 1}},
		{"euler(0,90,0) * euler(0,90,0) * vec3(1,0,0)", Vec3{X: -1}},
		{"euler(0,180,0) * vec3(1,2,3)", Vec3{X: -1, Y: 2, Z: -3}},
		// Z applies first, then X, then Y.
		{"euler(90,90,0) * vec3(0,1,0)", Vec3{X: 1}},
		{"euler(0,90,90) * vec3(1,0,0)", Vec3{Y: 1}},
	}

	for _, tt := range tests {
		got := evalValue(t, tt.in, Degrees)
		assertComponents(t, tt.want, got, tt.in)
	}
}

func TestEulerIgnoresAngleMode(t *testing.T) {
	deg := evalValue(t, "euler(10,20,30)", Degrees)
	rad := evalValue(t, "euler(10,20,30)", Radians)
	assert.Equal(t, deg, rad)

	q := deg.(Rotation)
	assert.InDelta(t, 1, math.Sqrt(q.Dot(q)), tolerance)
}

func TestRotationInterpolation(t *testing.T) {
	half := evalValue(t, "slerp(quat(0,0,0,1), euler(0,90,0), 0.5)", Degrees)
	assertComponents(t, Euler(0, 45, 0), half, "slerp")

	nl := evalValue(t, "lerp(quat(0,0,0,1), euler(0,90,0), 0.5)", Degrees)
	assertComponents(t, Euler(0, 45, 0), nl, "lerp")

	// Shortest arc: the negated quaternion is the same rotation.
	neg := evalValue(t, "slerp(quat(0,0,0,1), -euler(0,90,0), 0.5)", Degrees)
	assertComponents(t, Euler(0, 45, 0), neg, "slerp negated")

	a := evalValue(t, "angle(quat(0,0,0,1), euler(0,90,0))", Degrees)
	assert.InDelta(t, 90, float64(a.(Number)), 1e-6)
}

func TestVectorSlerp(t *testing.T) {
	v := evalValue(t, "slerp(vec3(1,0,0), vec3(0,2,0), 0.5)", Degrees)
	s := math.Sqrt2 / 2 * 1.5
	assertComponents(t, Vec3{X: s, Y: s}, v, "slerp")

	v = evalValue(t, "slerp(vec3(1,0,0), vec3(0,1,0), 5)", Degrees)
	assertComponents(t, Vec3{Y: 1}, v, "slerp clamp")

	v = evalValue(t, "slerp(vec3(1,0,0), vec3(-1,0,0), 0.5)", Degrees)
	got := v.(Vec3)
	assert.InDelta(t, 1, got.Len(), tolerance)
	assert.InDelta(t, 0, got.X, tolerance)
}

func TestGeometricFunctions(t *testing.T) {
	tests := []struct {
		in   string
		want Value
	}{
		{"dot(vec4(1,2,3,4), vec4(1,1,1,1))", Number(10)},
		{"distance(vec3(1,1,1), vec3(1,1,1))", Number(0)},
		{"cross(vec3(0,1,0), vec3(1,0,0))", Vec3{Z: -1}},
		{"project(vec3(2,3,4), vec3(0,0,2))", Vec3{Z: 4}},
		{"project(vec3(2,3,4), vec3(0,0,0))", Vec3{}},
		{"reflect(vec3(1,-1,0), vec3(0,1,0))", Vec3{X: 1, Y: 1}},
		{"lerp(vec4(0,0,0,0), vec4(4,4,4,4), 0.25)", Vec4{X: 1, Y: 1, Z: 1, W: 1}},
		{"lerp(0, 10, -1)", Number(0)},
		{"angle(vec2(1,0), vec2(-1,0))", Number(180)},
	}

	for _, tt := range tests {
		got := evalValue(t, tt.in, Degrees)
		assertComponents(t, tt.want, got, tt.in)
	}
}

func TestEvalErrorsCarryPositions(t *testing.T) {
	tests := []struct {
		in   string
		kind ErrorKind
		pos  int
	}{
		{"1 + 2 / 0", KindDivisionByZero, 6},
		{"vec2(1,2) + vec3(1,2,3)", KindTypeMismatch, 10},
		{"vec3(1,2,3).q", KindUnknownProperty, 12},
		{"1 + sqrt(-4)", KindDomain, 4},
		{"sin(vec2(1,2))", KindArgument, 0},
		{"cross(vec2(1,0), vec2(0,1))", KindTypeMismatch, 0},
	}

	for _, tt := range tests {
		_, err := Evaluate(tt.in, nil)
		require.Error(t, err, tt.in)

		var e *Error
		require.True(t, errors.As(err, &e), tt.in)
		assert.Equal(t, tt.kind, e.Kind, "%q: %v", tt.in, err)
		assert.Equal(t, tt.pos, e.Pos, "%q: %v", tt.in, err)
		assert.ErrorIs(t, err, ErrEval, tt.in)
	}
}

func TestEvalHandBuiltTree(t *testing.T) {
	// Trees that skip the parser still get arity checks.
	n := &Call{Name: "vec2", Args: []Node{&Literal{Value: 1}}}
	_, err := Eval(n, Degrees)
	assert.Equal(t, KindArityMismatch, KindOf(err))

	n = &Call{Name: "nope"}
	_, err = Eval(n, Degrees)
	assert.Equal(t, KindUnknownIdentifier, KindOf(err))

	v, err := Eval(&Binary{Op: "*", L: &ConstantRef{Name: "pi"}, R: &Literal{Value: 2}}, Radians)
	require.NoError(t, err)
	assert.InDelta(t, 2*math.Pi, float64(v.(Number)), tolerance)
}

// refEval evaluates a flat sequence of numbers and + - * / operators with
// the usual precedence. It is the oracle for TestArithmeticMatchesInfix.
func refEval(nums []float64, ops []byte) float64 {
	terms := []float64{nums[0]}
	signs := []byte{'+'}
	for i, op := range ops {
		switch op {
		case '*':
			terms[len(terms)-1] *= nums[i+1]
		case '/':
			terms[len(terms)-1] /= nums[i+1]
		default:
			terms = append(terms, nums[i+1])
			signs = append(signs, op)
		}
	}

	var sum float64
	for i, v := range terms {
		if signs[i] == '-' {
			sum -= v
		} else {
			sum += v
		}
	}
	return sum
}

func TestArithmeticMatchesInfix(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	opset := []byte("+-*/")

	for i := 0; i < 500; i++ {
		n := 2 + rng.Intn(6)
		nums := make([]float64, n)
		ops := make([]byte, n-1)

		var b strings.Builder
		for j := range nums {
			nums[j] = float64(1 + rng.Intn(99))
			if j > 0 {
				ops[j-1] = opset[rng.Intn(len(opset))]
				b.WriteByte(' ')
				b.WriteByte(ops[j-1])
				b.WriteByte(' ')
			}
			b.WriteString(strconv.Itoa(int(nums[j])))
		}

		expr := b.String()
		v := evalValue(t, expr, Degrees)
		want := refEval(nums, ops)
		assert.InDelta(t, want, float64(v.(Number)), 1e-9*math.Max(1, math.Abs(want)), expr)
	}
}

func TestEvaluateConcurrent(t *testing.T) {
	exprs := []string{
		"sin(90)",
		"euler(0,90,0) * vec3(1,0,0)",
		"vec3(3,4,0).magnitude",
		"lerp(color(0,0,0,0), color(1,1,1,1), 0.5)",
		"1/0",
	}

	want := make([]string, len(exprs))
	for i, e := range exprs {
		want[i], _ = Evaluate(e, nil)
	}

	var wg sync.WaitGroup
	for g := 0; g < 16; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			mode := AngleMode(g % 2)
			for i := 0; i < 200; i++ {
				k := (g + i) % len(exprs)
				got, _ := Evaluate(exprs[k], &EvalOptions{AngleMode: mode})
				if mode == Degrees {
					assert.Equal(t, want[k], got, exprs[k])
				}
			}
		}(g)
	}
	wg.Wait()
}

func TestEvaluateTarget(t *testing.T) {
	tests := []struct {
		in     string
		target Kind
		want   string
	}{
		{"vec3(1,2,3)", KindVec2, "vec2(1, 2)"},
		{"vec2(1,2)", KindVec4, "vec4(1, 2, 0, 0)"},
		{"vec4(1,0,0,1)", KindColor, "color(1, 0, 0, 1)"},
		{"color(1,0,0,0.5)", KindVec4, "vec4(1, 0, 0, 0.5)"},
		{"vec3(1,0.5,0)", KindColor, "color(1, 0.5, 0, 1)"},
		{"2 + 2", KindNumber, "4"},
		{"2 + 2", KindNone, "4"},
	}

	for _, tt := range tests {
		got, err := Evaluate(tt.in, &EvalOptions{Target: tt.target})
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}

	_, err := Evaluate("2 + 2", &EvalOptions{Target: KindVec3})
	assert.Equal(t, KindTypeMismatch, KindOf(err))

	_, err = Evaluate("euler(0,0,0)", &EvalOptions{Target: KindVec4})
	assert.Equal(t, KindTypeMismatch, KindOf(err))
}

func TestEvaluatePrecision(t *testing.T) {
	got, err := Evaluate("pi", &EvalOptions{Format: FormatOptions{Precision: 3}})
	require.NoError(t, err)
	assert.Equal(t, "3.14", got)

	got, err = Evaluate("vec2(1/3, 2/3)", &EvalOptions{Format: FormatOptions{Precision: 4}})
	require.NoError(t, err)
	assert.Equal(t, "vec2(0.3333, 0.6667)", got)
}
