package geocalc

import "math"

// IssueLevel represents severity of validation issue.
type IssueLevel string

const (
	// IssueError indicates an expression that will fail to evaluate.
	IssueError IssueLevel = "error"
	// IssueWarning indicates a likely mistake.
	IssueWarning IssueLevel = "warning"
)

// Issue codes.
const (
	CodeDivisionByZero = "division_by_zero"
	CodeNonUnitQuat    = "non_unit_quat"
	CodePiInDegrees    = "pi_in_degrees"
	CodeZeroNormalize  = "zero_normalize"
)

// quatUnitTolerance is the allowed deviation of a literal quat from unit length.
const quatUnitTolerance = 1e-3

// Issue represents a validation issue.
type Issue struct {
	Level   IssueLevel `json:"level" yaml:"level"`                   // Severity level
	Code    string     `json:"code,omitempty" yaml:"code,omitempty"` // Machine-readable code
	Message string     `json:"message" yaml:"message"`               // Issue message
	Pos     int        `json:"pos" yaml:"pos"`                       // Rune offset of the affected node
}

// Validate statically checks a parsed expression and returns issues.
// It does not evaluate anything; a clean result does not guarantee success.
func Validate(n Node, opt *ValidateOptions) []Issue {
	vopt := opt.normalize()
	var out []Issue

	walk(n, func(n Node) {
		switch x := n.(type) {
		case *Binary:
			if !vopt.DisableDivisionCheck && x.Op == "/" && isLiteralZero(x.R) {
				out = append(out, Issue{Level: IssueError, Code: CodeDivisionByZero, Message: "division by literal zero", Pos: x.Pos})
			}

		case *Call:
			if !vopt.DisableQuatCheck && x.Name == "quat" {
				out = append(out, validateQuat(x)...)
			}
			if !vopt.DisableAngleCheck && vopt.AngleMode == Degrees && isTrigInput(x.Name) && len(x.Args) == 1 && mentionsPi(x.Args[0]) {
				out = append(out, Issue{Level: IssueWarning, Code: CodePiInDegrees, Message: x.Name + " argument uses pi but angles are in degrees", Pos: x.Pos})
			}

		case *PropertyAccess:
			if !vopt.DisableNormalizeCheck && x.Name == "normalized" && isZeroConstructor(x.Base) {
				out = append(out, Issue{Level: IssueWarning, Code: CodeZeroNormalize, Message: "normalizing a zero vector yields the zero vector", Pos: x.Pos})
			}
		}
	})

	return out
}

// walk visits n and its children depth-first, parents first.
func walk(n Node, fn func(Node)) {
	if n == nil {
		return
	}
	fn(n)

	switch x := n.(type) {
	case *Unary:
		walk(x.X, fn)
	case *Binary:
		walk(x.L, fn)
		walk(x.R, fn)
	case *Call:
		for _, a := range x.Args {
			walk(a, fn)
		}
	case *PropertyAccess:
		walk(x.Base, fn)
	}
}

// validateQuat checks that a literal quat(...) has unit length.
func validateQuat(c *Call) []Issue {
	vals, ok := literalArgs(c)
	if !ok || len(vals) != 4 {
		return nil
	}

	norm := math.Sqrt(dotN(vals, vals))
	if math.Abs(norm-1) <= quatUnitTolerance {
		return nil
	}

	return []Issue{{Level: IssueWarning, Code: CodeNonUnitQuat, Message: "quat is not unit length; use euler(...) or .normalized components", Pos: c.Pos}}
}

// literalArgs returns the values of a call whose arguments are all numeric
// literals, optionally negated.
func literalArgs(c *Call) ([]float64, bool) {
	out := make([]float64, 0, len(c.Args))
	for _, a := range c.Args {
		v, ok := literalValue(a)
		if !ok {
			return nil, false
		}
		out = append(out, v)
	}

	return out, true
}

// literalValue returns the value of a literal or a signed literal.
func literalValue(n Node) (float64, bool) {
	switch x := n.(type) {
	case *Literal:
		return x.Value, true
	case *Unary:
		v, ok := literalValue(x.X)
		if !ok {
			return 0, false
		}
		if x.Op == "-" {
			v = -v
		}
		return v, true
	default:
		return 0, false
	}
}

// isLiteralZero reports whether n is a literal zero.
func isLiteralZero(n Node) bool {
	v, ok := literalValue(n)
	return ok && v == 0
}

// isZeroConstructor reports whether n is a vector constructor with all-zero
// literal arguments.
func isZeroConstructor(n Node) bool {
	c, ok := n.(*Call)
	if !ok {
		return false
	}

	if fn, ok := lookupCallable(c.Name); !ok || fn.class != classConstructor || !fn.kind.IsVector() {
		return false
	}

	vals, ok := literalArgs(c)
	if !ok {
		return false
	}
	for _, v := range vals {
		if v != 0 {
			return false
		}
	}

	return true
}

// mentionsPi reports whether the subtree references the pi constant.
func mentionsPi(n Node) bool {
	found := false
	walk(n, func(n Node) {
		if c, ok := n.(*ConstantRef); ok && c.Name == "pi" {
			found = true
		}
	})

	return found
}
