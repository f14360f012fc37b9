package geocalc

import (
	"math"
	"strings"
)

// Eval evaluates an AST in the given angle mode.
func Eval(n Node, mode AngleMode) (Value, error) {
	ev := evaluator{mode: mode}
	return ev.eval(n)
}

// evaluator walks an AST. It holds only the angle mode.
type evaluator struct {
	mode AngleMode // Angle mode of trigonometric functions
}

// eval evaluates a node.
func (ev evaluator) eval(n Node) (Value, error) {
	switch x := n.(type) {
	case *Literal:
		return Number(x.Value), nil

	case *ConstantRef:
		c, ok := constants[x.Name]
		if !ok {
			return nil, newError(KindUnknownIdentifier, x.Pos, "unknown constant %q", x.Name)
		}
		return Number(c), nil

	case *Unary:
		v, err := ev.eval(x.X)
		if err != nil {
			return nil, err
		}
		return applyUnary(x.Op, v, x.Pos)

	case *Binary:
		l, err := ev.eval(x.L)
		if err != nil {
			return nil, err
		}
		r, err := ev.eval(x.R)
		if err != nil {
			return nil, err
		}
		return applyBinary(x.Op, l, r, x.Pos)

	case *Call:
		return ev.evalCall(x)

	case *PropertyAccess:
		base, err := ev.eval(x.Base)
		if err != nil {
			return nil, err
		}
		return property(base, x.Name, x.Pos)

	default:
		return nil, newError(KindUnexpectedToken, -1, "unsupported node %T", n)
	}
}

// applyUnary applies a prefix operator.
func applyUnary(op string, v Value, pos int) (Value, error) {
	switch op {
	case "+":
		return v, nil
	case "-":
		return mapComponents(v, func(x float64) float64 { return -x }), nil
	default:
		return nil, newError(KindUnexpectedToken, pos, "unknown unary operator %q", op)
	}
}

// applyBinary applies an infix operator following the dispatch order:
// scalar, same-kind component-wise, scalar scale, rotation.
func applyBinary(op string, l, r Value, pos int) (Value, error) {
	lk, rk := l.Kind(), r.Kind()

	// Number ⊕ Number.
	if lk == KindNumber && rk == KindNumber {
		return numberOp(op, float64(l.(Number)), float64(r.(Number)), pos)
	}

	// Same-kind vectors and colors, component-wise.
	if lk == rk && isComponentwise(lk) {
		switch op {
		case "+":
			return zipComponents(l, r, func(a, b float64) float64 { return a + b }), nil
		case "-":
			return zipComponents(l, r, func(a, b float64) float64 { return a - b }), nil
		case "*":
			return zipComponents(l, r, func(a, b float64) float64 { return a * b }), nil
		case "/":
			for _, c := range Components(r) {
				if c == 0 {
					return nil, newError(KindDivisionByZero, pos, "division by zero component")
				}
			}
			return zipComponents(l, r, func(a, b float64) float64 { return a / b }), nil
		}
	}

	// Uniform scale.
	switch {
	case op == "*" && lk == KindNumber && isComponentwise(rk):
		s := float64(l.(Number))
		return mapComponents(r, func(x float64) float64 { return x * s }), nil
	case op == "*" && isComponentwise(lk) && rk == KindNumber:
		s := float64(r.(Number))
		return mapComponents(l, func(x float64) float64 { return x * s }), nil
	case op == "/" && isComponentwise(lk) && rk == KindNumber:
		s := float64(r.(Number))
		if s == 0 {
			return nil, newError(KindDivisionByZero, pos, "division by zero")
		}
		return mapComponents(l, func(x float64) float64 { return x / s }), nil
	}

	// Rotation composition and vector rotation.
	if op == "*" && lk == KindRotation {
		switch rv := r.(type) {
		case Rotation:
			return l.(Rotation).Mul(rv), nil
		case Vec3:
			return l.(Rotation).Rotate(rv), nil
		}
	}

	return nil, typeMismatch(op, pos, l, r)
}

// isComponentwise reports whether arithmetic on k is component-wise.
func isComponentwise(k Kind) bool {
	return k.IsVector() || k == KindColor
}

// numberOp applies an operator to two scalars.
func numberOp(op string, a, b float64, pos int) (Value, error) {
	switch op {
	case "+":
		return Number(a + b), nil
	case "-":
		return Number(a - b), nil
	case "*":
		return Number(a * b), nil
	case "/":
		if b == 0 {
			return nil, newError(KindDivisionByZero, pos, "division by zero")
		}
		return Number(a / b), nil
	case "^":
		res := math.Pow(a, b)
		if math.IsNaN(res) && !math.IsNaN(a) && !math.IsNaN(b) {
			return nil, newError(KindDomain, pos, "%g ^ %g is not a real number", a, b)
		}
		return Number(res), nil
	default:
		return nil, newError(KindUnexpectedToken, pos, "unknown operator %q", op)
	}
}

// typeMismatch builds a KindTypeMismatch error naming the operand kinds.
func typeMismatch(op string, pos int, vals ...Value) error {
	kinds := make([]string, len(vals))
	for i, v := range vals {
		kinds[i] = v.Kind().String()
	}

	return newError(KindTypeMismatch, pos, "cannot apply %s to %s", op, strings.Join(kinds, ", "))
}

// evalCall evaluates arguments and dispatches a call.
func (ev evaluator) evalCall(c *Call) (Value, error) {
	fn, ok := lookupCallable(c.Name)
	if !ok {
		return nil, newError(KindUnknownIdentifier, c.Pos, "unknown identifier %q", c.Name)
	}

	// ASTs built by hand skip the parser's arity check.
	if fn.class != classFunction && len(c.Args) != fn.arity {
		return nil, newError(KindArityMismatch, c.Pos, "%s expects %d arguments, got %d", c.Name, fn.arity, len(c.Args))
	}

	args := make([]Value, len(c.Args))
	for i, a := range c.Args {
		v, err := ev.eval(a)
		if err != nil {
			return nil, err
		}
		args[i] = v
	}

	switch fn.class {
	case classFunction:
		return ev.mathFunc(c.Name, args, c.Pos)
	case classConstructor:
		nums, err := numberArgs(c.Name, args, c.Pos)
		if err != nil {
			return nil, err
		}
		v, _ := FromComponents(fn.kind, nums)
		return v, nil
	case classEuler:
		nums, err := numberArgs(c.Name, args, c.Pos)
		if err != nil {
			return nil, err
		}
		return Euler(nums[0], nums[1], nums[2]), nil
	case classGeometric:
		return ev.geometric(c.Name, args, c.Pos)
	default:
		return nil, newError(KindUnknownIdentifier, c.Pos, "unknown identifier %q", c.Name)
	}
}

// numberArgs requires every argument to be a Number.
func numberArgs(name string, args []Value, pos int) ([]float64, error) {
	out := make([]float64, len(args))
	for i, a := range args {
		n, ok := a.(Number)
		if !ok {
			return nil, newError(KindArgument, pos, "%s argument %d must be a number, got %s", name, i+1, a.Kind())
		}
		out[i] = float64(n)
	}

	return out, nil
}

// mathFunc applies a unary math function in the current angle mode.
func (ev evaluator) mathFunc(name string, args []Value, pos int) (Value, error) {
	if len(args) != 1 {
		return nil, newError(KindArgument, pos, "%s expects 1 argument, got %d", name, len(args))
	}

	nums, err := numberArgs(name, args, pos)
	if err != nil {
		return nil, err
	}
	x := nums[0]

	if ev.mode == Degrees && isTrigInput(name) {
		if v, ok, domain := exactTrigDegrees(name, x); ok {
			if domain {
				return nil, newError(KindDomain, pos, "%s(%g) is undefined", name, x)
			}
			return Number(v), nil
		}
		x *= math.Pi / 180
	}

	res := mathFuncs[name](x)
	if math.IsNaN(res) && !math.IsNaN(nums[0]) {
		return nil, newError(KindDomain, pos, "%s(%g) is not a real number", name, nums[0])
	}

	if ev.mode == Degrees && isTrigOutput(name) {
		res *= 180 / math.Pi
	}

	return Number(res), nil
}

// angleOut converts radians to the current angle mode.
func (ev evaluator) angleOut(rad float64) Number {
	if ev.mode == Degrees {
		return Number(rad * 180 / math.Pi)
	}

	return Number(rad)
}

// geometric applies a geometric function.
func (ev evaluator) geometric(name string, args []Value, pos int) (Value, error) {
	a, b := args[0], args[1]

	switch name {
	case "dot":
		if d, ok := Dot(a, b); ok {
			return Number(d), nil
		}

	case "distance":
		if d, ok := Distance(a, b); ok {
			return Number(d), nil
		}

	case "angle":
		if qa, ok := a.(Rotation); ok {
			if qb, ok := b.(Rotation); ok {
				return ev.angleOut(qa.Angle(qb)), nil
			}
		}
		if rad, ok := Angle(a, b); ok {
			return ev.angleOut(rad), nil
		}

	case "cross", "project", "reflect":
		va, okA := a.(Vec3)
		vb, okB := b.(Vec3)
		if !okA || !okB {
			break
		}
		switch name {
		case "cross":
			return va.Cross(vb), nil
		case "project":
			return va.Project(vb), nil
		default:
			return va.Reflect(vb), nil
		}

	case "lerp", "slerp":
		t, ok := args[2].(Number)
		if !ok {
			return nil, newError(KindArgument, pos, "%s argument 3 must be a number, got %s", name, args[2].Kind())
		}
		if a.Kind() != b.Kind() {
			break
		}
		if name == "lerp" {
			switch x := a.(type) {
			case Rotation:
				return x.Lerp(b.(Rotation), float64(t)), nil
			default:
				return lerpValue(a, b, float64(t)), nil
			}
		}
		switch x := a.(type) {
		case Vec3:
			return x.Slerp(b.(Vec3), float64(t)), nil
		case Rotation:
			return x.Slerp(b.(Rotation), float64(t)), nil
		}
	}

	return nil, typeMismatch(name, pos, a, b)
}

// property resolves a postfix property.
func property(v Value, name string, pos int) (Value, error) {
	switch name {
	case "magnitude":
		if m, ok := Magnitude(v); ok {
			return Number(m), nil
		}
		return nil, newError(KindUnknownProperty, pos, "magnitude is only defined on vectors, got %s", v.Kind())

	case "normalized":
		if n, ok := Normalize(v); ok {
			return n, nil
		}
		return nil, newError(KindUnknownProperty, pos, "normalized is only defined on vectors, got %s", v.Kind())
	}

	idx := componentIndex(v.Kind(), name)
	if idx < 0 {
		return nil, newError(KindUnknownProperty, pos, "%s has no property %q", v.Kind(), name)
	}

	return Number(Components(v)[idx]), nil
}

// componentIndex maps a single-letter component name to its position for
// kind k, or -1. Vectors accept xyzw and rgba aliases, Color only rgba,
// Rotation only xyzw.
func componentIndex(k Kind, name string) int {
	if len(name) != 1 {
		return -1
	}

	xyzw := strings.IndexByte("xyzw", name[0])
	rgba := strings.IndexByte("rgba", name[0])

	idx := -1
	switch {
	case k.IsVector():
		idx = max(xyzw, rgba)
	case k == KindColor:
		idx = rgba
	case k == KindRotation:
		idx = xyzw
	}

	if idx >= k.Arity() {
		return -1
	}

	return idx
}
