package geocalc

import (
	"strconv"
	"strings"
)

// Node is a parsed AST node. The set of implementations is closed.
type Node interface {
	// Position returns the rune offset of the node in the input.
	Position() int
	node()
}

// Literal is a numeric literal.
type Literal struct {
	Value float64 // Parsed value
	Pos   int     // Offset of the literal
}

// ConstantRef is a named constant such as pi.
type ConstantRef struct {
	Name string // Constant name
	Pos  int    // Offset of the name
}

// Unary is a prefix "+" or "-".
type Unary struct {
	X   Node   // Operand
	Op  string // Operator
	Pos int    // Offset of the operator
}

// Binary is an infix operation.
type Binary struct {
	L   Node   // Left operand
	R   Node   // Right operand
	Op  string // Operator
	Pos int    // Offset of the operator
}

// Call is a function, constructor or geometric function call.
type Call struct {
	Name string // Lower-cased callee name
	Args []Node // Arguments in order
	Pos  int    // Offset of the name
}

// PropertyAccess is a postfix ".name" access.
type PropertyAccess struct {
	Base Node   // Accessed expression
	Name string // Property name
	Pos  int    // Offset of the property name
}

// Position implements Node.
func (n *Literal) Position() int { return n.Pos }

// Position implements Node.
func (n *ConstantRef) Position() int { return n.Pos }

// Position implements Node.
func (n *Unary) Position() int { return n.Pos }

// Position implements Node.
func (n *Binary) Position() int { return n.Pos }

// Position implements Node.
func (n *Call) Position() int { return n.Pos }

// Position implements Node.
func (n *PropertyAccess) Position() int { return n.Pos }

func (*Literal) node()        {}
func (*ConstantRef) node()    {}
func (*Unary) node()          {}
func (*Binary) node()         {}
func (*Call) node()           {}
func (*PropertyAccess) node() {}

// Dump renders n as an S-expression, e.g. "(+ 1 (* 2 3))".
func Dump(n Node) string {
	var b strings.Builder
	dumpNode(&b, n)
	return b.String()
}

// dumpNode writes n into b.
func dumpNode(b *strings.Builder, n Node) {
	switch x := n.(type) {
	case *Literal:
		b.WriteString(strconv.FormatFloat(x.Value, 'g', -1, 64))
	case *ConstantRef:
		b.WriteString(x.Name)
	case *Unary:
		b.WriteString("(" + x.Op + " ")
		dumpNode(b, x.X)
		b.WriteByte(')')
	case *Binary:
		b.WriteString("(" + x.Op + " ")
		dumpNode(b, x.L)
		b.WriteByte(' ')
		dumpNode(b, x.R)
		b.WriteByte(')')
	case *Call:
		b.WriteString("(" + x.Name)
		for _, a := range x.Args {
			b.WriteByte(' ')
			dumpNode(b, a)
		}
		b.WriteByte(')')
	case *PropertyAccess:
		b.WriteString("(." + x.Name + " ")
		dumpNode(b, x.Base)
		b.WriteByte(')')
	default:
		b.WriteString("?")
	}
}
