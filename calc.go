package geocalc

// Evaluate evaluates an expression and formats the result for display.
func Evaluate(text string, opt *EvalOptions) (string, error) {
	eopt := opt.normalize()

	v, err := evaluateValue(text, eopt)
	if err != nil {
		return "", err
	}

	return Format(v, &eopt.Format), nil
}

// EvaluateValue evaluates an expression and returns the typed result.
// When opt.Target is set the result is coerced to that kind.
func EvaluateValue(text string, opt *EvalOptions) (Value, error) {
	return evaluateValue(text, opt.normalize())
}

// evaluateValue runs the parse and eval phases with normalized options.
func evaluateValue(text string, eopt EvalOptions) (Value, error) {
	n, err := Parse(text, &eopt.Parse)
	if err != nil {
		return nil, err
	}

	v, err := Eval(n, eopt.AngleMode)
	if err != nil {
		return nil, err
	}

	return Coerce(v, eopt.Target)
}
