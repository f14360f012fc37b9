package geocalc

import (
	"errors"
	"fmt"
)

var (
	// ErrLex indicates a tokenizer failure.
	ErrLex = errors.New("lex error")

	// ErrParse indicates a parser failure.
	ErrParse = errors.New("parse error")

	// ErrEval indicates an evaluation failure.
	ErrEval = errors.New("eval error")
)

// ErrorKind identifies the exact failure reported by *Error.
type ErrorKind int

// error kinds.
const (
	KindUnknownCharacter  ErrorKind = iota + 1 // Character outside the expression alphabet
	KindUnexpectedToken                        // Token not valid at this position
	KindUnexpectedEnd                          // Input ended inside an expression
	KindTrailingInput                          // Tokens after a complete expression
	KindUnknownIdentifier                      // Name not in the builtin table
	KindArityMismatch                          // Wrong argument count for a call
	KindTooComplex                             // Depth or input length limit exceeded
	KindDivisionByZero                         // Division by exactly zero
	KindTypeMismatch                           // Operator or function applied to incompatible kinds
	KindArgument                               // Invalid function argument
	KindUnknownProperty                        // Property not defined for the value kind
	KindDomain                                 // Result outside the real domain
)

// String returns the name of the error kind.
func (k ErrorKind) String() string {
	switch k {
	case KindUnknownCharacter:
		return "unknown character"
	case KindUnexpectedToken:
		return "unexpected token"
	case KindUnexpectedEnd:
		return "unexpected end"
	case KindTrailingInput:
		return "trailing input"
	case KindUnknownIdentifier:
		return "unknown identifier"
	case KindArityMismatch:
		return "arity mismatch"
	case KindTooComplex:
		return "too complex"
	case KindDivisionByZero:
		return "division by zero"
	case KindTypeMismatch:
		return "type mismatch"
	case KindArgument:
		return "argument error"
	case KindUnknownProperty:
		return "unknown property"
	case KindDomain:
		return "domain error"
	default:
		return "error"
	}
}

// class returns the sentinel for the stage that raises this kind.
func (k ErrorKind) class() error {
	switch k {
	case KindUnknownCharacter:
		return ErrLex
	case KindUnexpectedToken, KindUnexpectedEnd, KindTrailingInput,
		KindUnknownIdentifier, KindArityMismatch, KindTooComplex:
		return ErrParse
	default:
		return ErrEval
	}
}

// Error is a structured tokenizer, parser or evaluator failure.
type Error struct {
	Msg  string    // Human-readable message
	Kind ErrorKind // Failure kind
	Pos  int       // Rune offset in the input, -1 when unknown
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Pos < 0 {
		return fmt.Sprintf("%v: %s", e.Kind.class(), e.Msg)
	}

	return fmt.Sprintf("%v at %d: %s", e.Kind.class(), e.Pos, e.Msg)
}

// Unwrap returns the stage sentinel (ErrLex, ErrParse or ErrEval).
func (e *Error) Unwrap() error {
	return e.Kind.class()
}

// KindOf returns the kind of a geocalc error, or 0 when err is not one.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}

	return 0
}

// newError builds an *Error with a formatted message.
func newError(kind ErrorKind, pos int, format string, args ...any) *Error {
	return &Error{Kind: kind, Pos: pos, Msg: fmt.Sprintf(format, args...)}
}
