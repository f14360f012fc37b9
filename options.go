package geocalc

import "strings"

// AngleMode selects the unit of trigonometric inputs and outputs.
type AngleMode int

const (
	// Degrees makes sin/cos/tan take degrees and asin/acos/atan return degrees.
	Degrees AngleMode = iota
	// Radians uses radians throughout.
	Radians
)

// String returns the short name of the angle mode.
func (m AngleMode) String() string {
	if m == Radians {
		return "rad"
	}

	return "deg"
}

// ParseAngleMode resolves "deg"/"degrees" or "rad"/"radians".
func ParseAngleMode(s string) (AngleMode, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "deg", "degree", "degrees", "":
		return Degrees, true
	case "rad", "radian", "radians":
		return Radians, true
	default:
		return Degrees, false
	}
}

const (
	// DefaultMaxDepth is the default nesting limit of the parser.
	DefaultMaxDepth = 128
	// DefaultMaxInputLen is the default input length limit in runes.
	DefaultMaxInputLen = 4096
	// DefaultPrecision is the default number of significant digits.
	DefaultPrecision = 10
)

// ParseOptions controls parsing limits.
type ParseOptions struct {
	// MaxDepth bounds expression nesting (default is DefaultMaxDepth).
	MaxDepth int
	// MaxInputLen bounds the input length in runes (default is DefaultMaxInputLen).
	MaxInputLen int
}

// FormatOptions controls value formatting.
type FormatOptions struct {
	// Precision is the number of significant digits (default is DefaultPrecision).
	Precision int
}

// EvalOptions controls Evaluate and EvaluateValue.
type EvalOptions struct {
	// Parse holds parser limits.
	Parse ParseOptions
	// Format holds result formatting options.
	Format FormatOptions
	// AngleMode selects degrees (default) or radians.
	AngleMode AngleMode
	// Target coerces the result to this kind when set.
	Target Kind
}

// ValidateOptions controls validation rules.
type ValidateOptions struct {
	// AngleMode is the mode the expression will be evaluated in.
	AngleMode AngleMode
	// DisableDivisionCheck disables the literal division by zero check.
	DisableDivisionCheck bool
	// DisableQuatCheck disables the unit length check of literal quat(...) calls.
	DisableQuatCheck bool
	// DisableAngleCheck disables the pi-in-degrees check of trig arguments.
	DisableAngleCheck bool
	// DisableNormalizeCheck disables the zero vector .normalized check.
	DisableNormalizeCheck bool
}

// normalize normalizes the ParseOptions.
func (o *ParseOptions) normalize() ParseOptions {
	if o == nil {
		return ParseOptions{MaxDepth: DefaultMaxDepth, MaxInputLen: DefaultMaxInputLen}
	}

	out := *o
	if out.MaxDepth <= 0 {
		out.MaxDepth = DefaultMaxDepth
	}
	if out.MaxInputLen <= 0 {
		out.MaxInputLen = DefaultMaxInputLen
	}

	return out
}

// normalize normalizes the FormatOptions.
func (o *FormatOptions) normalize() FormatOptions {
	if o == nil {
		return FormatOptions{Precision: DefaultPrecision}
	}

	out := *o
	if out.Precision <= 0 {
		out.Precision = DefaultPrecision
	}

	return out
}

// normalize normalizes the EvalOptions.
func (o *EvalOptions) normalize() EvalOptions {
	if o == nil {
		return EvalOptions{Parse: (*ParseOptions)(nil).normalize(), Format: (*FormatOptions)(nil).normalize()}
	}

	out := *o
	out.Parse = out.Parse.normalizeValue()
	out.Format = out.Format.normalizeValue()

	return out
}

// normalizeValue normalizes a ParseOptions held by value.
func (o ParseOptions) normalizeValue() ParseOptions {
	return (&o).normalize()
}

// normalizeValue normalizes a FormatOptions held by value.
func (o FormatOptions) normalizeValue() FormatOptions {
	return (&o).normalize()
}

// normalize normalizes the ValidateOptions.
func (o *ValidateOptions) normalize() ValidateOptions {
	if o == nil {
		return ValidateOptions{}
	}

	return *o
}
