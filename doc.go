/*
Package geocalc evaluates calculator expressions over scalars and small
geometric types: 2/3/4-component vectors, RGBA colors and quaternion
rotations.

Evaluation is a pure two-phase pipeline. Text is tokenized and parsed into an
immutable AST, then the AST is evaluated against an explicit angle mode.
Nothing is shared between calls, so every function here is safe for
concurrent use.

Evaluate example:

	out, err := geocalc.Evaluate("vec3(3,4,0).magnitude * 2", nil)
	if err != nil {
		// handle error
	}
	_ = out // "10"

Radians example:

	out, err := geocalc.Evaluate("sin(pi/2)", &geocalc.EvalOptions{
		AngleMode: geocalc.Radians,
	})

Typed value example:

	v, err := geocalc.EvaluateValue("euler(0,90,0) * vec3(1,0,0)", nil)
	if err != nil {
		// handle error
	}
	if vec, ok := v.(geocalc.Vec3); ok {
		_ = vec.Z // -1
	}

Seed example:

	expr := geocalc.SeedExpression(geocalc.Vec3{X: 1, Y: 2, Z: 3})
	_ = expr // "vec3(1,2,3)"

Error kinds are reported through *Error:

	_, err := geocalc.Evaluate("1/0", nil)
	if geocalc.KindOf(err) == geocalc.KindDivisionByZero {
		// handle division by zero
	}

Validator example:

	n, err := geocalc.Parse("sin(pi/2)", nil)
	if err != nil {
		// handle error
	}
	issues := geocalc.Validate(n, nil)
	if len(issues) != 0 {
		// handle validation issues
	}
*/
package geocalc
