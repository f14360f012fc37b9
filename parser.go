package geocalc

import (
	"strconv"
	"unicode/utf8"
)

// Parse tokenizes and parses an expression.
func Parse(text string, opt *ParseOptions) (Node, error) {
	popt := opt.normalize()
	if n := utf8.RuneCountInString(text); n > popt.MaxInputLen {
		return nil, newError(KindTooComplex, -1, "input is %d characters, limit is %d", n, popt.MaxInputLen)
	}

	toks, err := Tokenize(text)
	if err != nil {
		return nil, err
	}

	return ParseTokens(toks, &popt)
}

// ParseTokens parses a token sequence produced by Tokenize into an AST.
func ParseTokens(toks []Token, opt *ParseOptions) (Node, error) {
	popt := opt.normalize()
	if len(toks) == 0 || toks[len(toks)-1].Type != TokEOF {
		end := 0
		if len(toks) > 0 {
			end = toks[len(toks)-1].Pos + 1
		}
		toks = append(toks[:len(toks):len(toks)], Token{Type: TokEOF, Pos: end, Index: len(toks)})
	}

	p := &parser{toks: toks, opt: popt}
	n, err := p.parseExpression()
	if err != nil {
		return nil, err
	}

	if tok := p.peek(); tok.Type != TokEOF {
		return nil, p.errorf(KindTrailingInput, tok, "unexpected %s after expression", describe(tok))
	}

	return n, nil
}

// parser is a recursive-descent parser over a token slice.
type parser struct {
	toks  []Token      // Tokens terminated by TokEOF
	pos   int          // Index of the current token
	depth int          // Current nesting depth
	opt   ParseOptions // Options for the parser
}

// peek returns the current token without consuming it.
func (p *parser) peek() Token {
	return p.toks[p.pos]
}

// next consumes and returns the current token. EOF is never consumed.
func (p *parser) next() Token {
	tok := p.toks[p.pos]
	if tok.Type != TokEOF {
		p.pos++
	}

	return tok
}

// isOp reports whether tok is the operator op.
func isOp(tok Token, op string) bool {
	return tok.Type == TokOperator && tok.Lit == op
}

// expect consumes a token of type tt.
func (p *parser) expect(tt TokenType) (Token, error) {
	tok := p.peek()
	if tok.Type != tt {
		return tok, p.unexpected(tok, "expected "+tt.String())
	}

	return p.next(), nil
}

// enter increments the nesting depth and fails when the limit is exceeded.
func (p *parser) enter() error {
	p.depth++
	if p.depth > p.opt.MaxDepth {
		return p.errorf(KindTooComplex, p.peek(), "expression nesting exceeds %d", p.opt.MaxDepth)
	}

	return nil
}

// leave decrements the nesting depth.
func (p *parser) leave() {
	p.depth--
}

// parseExpression parses Expression := Additive.
func (p *parser) parseExpression() (Node, error) {
	if err := p.enter(); err != nil {
		return nil, err
	}
	defer p.leave()

	return p.parseAdditive()
}

// parseAdditive parses Multiplicative (("+"|"-") Multiplicative)*.
func (p *parser) parseAdditive() (Node, error) {
	left, err := p.parseMultiplicative()
	if err != nil {
		return nil, err
	}

	for {
		tok := p.peek()
		if !isOp(tok, "+") && !isOp(tok, "-") {
			return left, nil
		}
		p.next()

		right, err := p.parseMultiplicative()
		if err != nil {
			return nil, err
		}

		left = &Binary{Op: tok.Lit, L: left, R: right, Pos: tok.Pos}
	}
}

// parseMultiplicative parses Power (("*"|"/") Power)*.
func (p *parser) parseMultiplicative() (Node, error) {
	left, err := p.parsePower()
	if err != nil {
		return nil, err
	}

	for {
		tok := p.peek()
		if !isOp(tok, "*") && !isOp(tok, "/") {
			return left, nil
		}
		p.next()

		right, err := p.parsePower()
		if err != nil {
			return nil, err
		}

		left = &Binary{Op: tok.Lit, L: left, R: right, Pos: tok.Pos}
	}
}

// parsePower parses Unary ("^" Power)?, right-associative.
func (p *parser) parsePower() (Node, error) {
	base, err := p.parseUnary()
	if err != nil {
		return nil, err
	}

	tok := p.peek()
	if !isOp(tok, "^") {
		return base, nil
	}
	p.next()

	if err := p.enter(); err != nil {
		return nil, err
	}
	defer p.leave()

	exp, err := p.parsePower()
	if err != nil {
		return nil, err
	}

	return &Binary{Op: "^", L: base, R: exp, Pos: tok.Pos}, nil
}

// parseUnary parses ("-"|"+") Unary | Postfix.
func (p *parser) parseUnary() (Node, error) {
	tok := p.peek()
	if !isOp(tok, "-") && !isOp(tok, "+") {
		return p.parsePostfix()
	}
	p.next()

	if err := p.enter(); err != nil {
		return nil, err
	}
	defer p.leave()

	x, err := p.parseUnary()
	if err != nil {
		return nil, err
	}

	return &Unary{Op: tok.Lit, X: x, Pos: tok.Pos}, nil
}

// parsePostfix parses Primary ("." Identifier)*.
func (p *parser) parsePostfix() (Node, error) {
	n, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}

	for p.peek().Type == TokDot {
		p.next()

		name, err := p.expect(TokIdent)
		if err != nil {
			return nil, err
		}

		n = &PropertyAccess{Base: n, Name: name.Lit, Pos: name.Pos}
	}

	return n, nil
}

// parsePrimary parses Number | "pi" | "(" Expression ")" | Call.
func (p *parser) parsePrimary() (Node, error) {
	tok := p.peek()

	switch tok.Type {
	case TokNumber:
		p.next()
		f, err := strconv.ParseFloat(tok.Lit, 64)
		if err != nil {
			// Out of range literals parse as ±Inf; anything else is malformed.
			if ne, ok := err.(*strconv.NumError); !ok || ne.Err != strconv.ErrRange {
				return nil, p.unexpected(tok, "invalid number")
			}
		}
		return &Literal{Value: f, Pos: tok.Pos}, nil

	case TokLParen:
		p.next()
		n, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(TokRParen); err != nil {
			return nil, err
		}
		return n, nil

	case TokIdent:
		p.next()
		if _, ok := constants[tok.Lit]; ok {
			return &ConstantRef{Name: tok.Lit, Pos: tok.Pos}, nil
		}

		c, ok := lookupCallable(tok.Lit)
		if !ok {
			return nil, p.errorf(KindUnknownIdentifier, tok, "unknown identifier %q", tok.Lit)
		}
		return p.parseCall(tok, c)

	default:
		return nil, p.unexpected(tok, "expected expression")
	}
}

// parseCall parses "(" ArgList? ")" after a callable name.
func (p *parser) parseCall(name Token, c callable) (Node, error) {
	if p.peek().Type != TokLParen {
		return nil, p.unexpected(p.peek(), "expected ( after "+name.Lit)
	}
	p.next()

	if err := p.enter(); err != nil {
		return nil, err
	}
	defer p.leave()

	var args []Node
	if p.peek().Type != TokRParen {
		for {
			arg, err := p.parseExpression()
			if err != nil {
				return nil, err
			}
			args = append(args, arg)

			if p.peek().Type != TokComma {
				break
			}
			p.next()
		}
	}

	if _, err := p.expect(TokRParen); err != nil {
		return nil, err
	}

	// Math function arity is reported by the evaluator as an argument error.
	if c.class != classFunction && len(args) != c.arity {
		return nil, p.errorf(KindArityMismatch, name, "%s expects %d arguments, got %d", name.Lit, c.arity, len(args))
	}

	return &Call{Name: name.Lit, Args: args, Pos: name.Pos}, nil
}

// unexpected reports tok as unexpected, or the input as ending early.
func (p *parser) unexpected(tok Token, want string) error {
	if tok.Type == TokEOF {
		return p.errorf(KindUnexpectedEnd, tok, "unexpected end of input, %s", want)
	}

	return p.errorf(KindUnexpectedToken, tok, "unexpected %s, %s", describe(tok), want)
}

// errorf formats a parse error at tok.
func (p *parser) errorf(kind ErrorKind, tok Token, format string, args ...any) error {
	return newError(kind, tok.Pos, format, args...)
}

// describe returns a short description of a token for messages.
func describe(tok Token) string {
	switch tok.Type {
	case TokEOF:
		return "end of input"
	case TokNumber, TokIdent:
		return tok.Type.String() + " " + strconv.Quote(tok.Lit)
	default:
		return strconv.Quote(tok.Lit)
	}
}
