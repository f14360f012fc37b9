package geocalc

import (
	"math"
	"strconv"
	"strings"
)

// Format renders a value for display: numbers with a fixed number of
// significant digits, composites as "kind(c0, c1, ...)".
func Format(v Value, opt *FormatOptions) string {
	fopt := opt.normalize()
	w := &writer{prec: fopt.Precision, sep: ", "}

	return w.value(v)
}

// SeedExpression renders v as an expression that evaluates back to v exactly,
// e.g. "vec3(1,2,3)". Non-finite components have no literal form.
func SeedExpression(v Value) string {
	w := &writer{prec: -1, sep: ","}
	return w.value(v)
}

// SeedExpressionAs coerces v to hint before rendering it as a seed expression.
func SeedExpressionAs(v Value, hint Kind) (string, error) {
	cv, err := Coerce(v, hint)
	if err != nil {
		return "", err
	}

	return SeedExpression(cv), nil
}

// writer renders values.
type writer struct {
	buf  strings.Builder // Output buffer
	sep  string          // Component separator
	prec int             // Significant digits, -1 for shortest exact
}

// value renders v and returns the result.
func (w *writer) value(v Value) string {
	w.buf.Reset()

	if n, ok := v.(Number); ok {
		w.writeNumber(float64(n))
		return w.buf.String()
	}

	w.buf.WriteString(v.Kind().String())
	w.buf.WriteByte('(')
	for i, c := range Components(v) {
		if i > 0 {
			w.buf.WriteString(w.sep)
		}
		w.writeNumber(c)
	}
	w.buf.WriteByte(')')

	return w.buf.String()
}

// writeNumber writes a float64 value. Rounding near the float64 limit can
// carry past it; such values fall back to the shortest exact form so the text
// does not read back as an infinity.
func (w *writer) writeNumber(v float64) {
	var buf [32]byte
	b := strconv.AppendFloat(buf[:0], v, 'g', w.prec, 64)
	if w.prec > 0 && !math.IsInf(v, 0) && !math.IsNaN(v) {
		if f, err := strconv.ParseFloat(string(b), 64); err != nil || math.IsInf(f, 0) {
			b = strconv.AppendFloat(buf[:0], v, 'g', -1, 64)
		}
	}
	w.buf.Write(b)
}
