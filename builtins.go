package geocalc

import "math"

// callClass classifies a callable name.
type callClass int

const (
	// classFunction is a unary math function over Number.
	classFunction callClass = iota + 1
	// classConstructor builds a value from Number components.
	classConstructor
	// classGeometric is a vector/rotation function.
	classGeometric
	// classEuler builds a rotation from Euler angles in degrees.
	classEuler
)

// callable describes a name accepted at call position.
type callable struct {
	kind  Kind      // Constructed kind (constructors only)
	class callClass // Class of the callable
	arity int       // Required argument count
}

// callables is the static table of names accepted at call position.
var callables = map[string]callable{
	"sin":   {class: classFunction, arity: 1},
	"cos":   {class: classFunction, arity: 1},
	"tan":   {class: classFunction, arity: 1},
	"asin":  {class: classFunction, arity: 1},
	"acos":  {class: classFunction, arity: 1},
	"atan":  {class: classFunction, arity: 1},
	"sqrt":  {class: classFunction, arity: 1},
	"exp":   {class: classFunction, arity: 1},
	"log":   {class: classFunction, arity: 1},
	"ln":    {class: classFunction, arity: 1},
	"abs":   {class: classFunction, arity: 1},
	"floor": {class: classFunction, arity: 1},
	"ceil":  {class: classFunction, arity: 1},
	"round": {class: classFunction, arity: 1},

	"vec2":  {class: classConstructor, arity: 2, kind: KindVec2},
	"vec3":  {class: classConstructor, arity: 3, kind: KindVec3},
	"vec4":  {class: classConstructor, arity: 4, kind: KindVec4},
	"color": {class: classConstructor, arity: 4, kind: KindColor},
	"quat":  {class: classConstructor, arity: 4, kind: KindRotation},

	"dot":      {class: classGeometric, arity: 2},
	"cross":    {class: classGeometric, arity: 2},
	"distance": {class: classGeometric, arity: 2},
	"lerp":     {class: classGeometric, arity: 3},
	"slerp":    {class: classGeometric, arity: 3},
	"angle":    {class: classGeometric, arity: 2},
	"project":  {class: classGeometric, arity: 2},
	"reflect":  {class: classGeometric, arity: 2},

	"euler": {class: classEuler, arity: 3},
}

// constants is the table of named constants.
var constants = map[string]float64{
	"pi": math.Pi,
}

// lookupCallable returns the table entry for name.
func lookupCallable(name string) (callable, bool) {
	c, ok := callables[name]
	return c, ok
}

// isTrigInput reports whether fn takes an angle as input.
func isTrigInput(fn string) bool {
	return fn == "sin" || fn == "cos" || fn == "tan"
}

// isTrigOutput reports whether fn returns an angle.
func isTrigOutput(fn string) bool {
	return fn == "asin" || fn == "acos" || fn == "atan"
}

// mathFuncs holds the mode-independent part of every math function.
var mathFuncs = map[string]func(float64) float64{
	"sin":   math.Sin,
	"cos":   math.Cos,
	"tan":   math.Tan,
	"asin":  math.Asin,
	"acos":  math.Acos,
	"atan":  math.Atan,
	"sqrt":  math.Sqrt,
	"exp":   math.Exp,
	"log":   math.Log10,
	"ln":    math.Log,
	"abs":   math.Abs,
	"floor": math.Floor,
	"ceil":  math.Ceil,
	"round": math.Round,
}

// exactTrigDegrees returns exact results for sin/cos/tan at multiples of 90
// degrees. ok is false when deg is not such a multiple.
func exactTrigDegrees(fn string, deg float64) (v float64, ok bool, domain bool) {
	q := deg / 90
	if q != math.Trunc(q) || math.IsInf(q, 0) || math.Abs(q) > 1<<52 {
		return 0, false, false
	}

	// Quadrant in [0,4).
	quad := int(math.Mod(q, 4))
	if quad < 0 {
		quad += 4
	}

	sin := [4]float64{0, 1, 0, -1}[quad]
	cos := [4]float64{1, 0, -1, 0}[quad]

	switch fn {
	case "sin":
		return sin, true, false
	case "cos":
		return cos, true, false
	case "tan":
		if cos == 0 {
			return 0, true, true
		}
		return sin / cos, true, false
	}

	return 0, false, false
}
