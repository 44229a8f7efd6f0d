package latex

import (
	"errors"
	"fmt"
	"math"
	"strconv"
)

// tolerance is the absolute distance below which a float result is taken
// to be the nearest integer.
const tolerance = 1e-6

// ErrNotInteger is returned by EvaluateInt for results that are not
// within tolerance of an integer.
var ErrNotInteger = errors.New("latex: value is not an integer")

// SyntaxError reports input outside the accepted grammar.
type SyntaxError struct {
	Offset int // byte offset into the source
	Msg    string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("latex: syntax error at offset %d: %s", e.Offset, e.Msg)
}

// Parse parses src into an expression tree.
func Parse(src string) (Node, error) {
	tokens, err := lex(src)
	if err != nil {
		return nil, err
	}
	p := &parser{toks: tokens[:0:0]}
	for _, t := range tokens {
		if t.kind != tokLayout {
			p.toks = append(p.toks, t)
		}
	}
	node, err := p.expr()
	if err != nil {
		return nil, err
	}
	if t := p.peek(); t.kind != tokEOF {
		return nil, p.errorf(t, "unexpected %s after expression", t)
	}
	return node, nil
}

// Evaluate parses and evaluates src.
func Evaluate(src string) (float64, error) {
	node, err := Parse(src)
	if err != nil {
		tracer().Debugf("cannot parse %q: %v", src, err)
		return 0, err
	}
	return node.Eval(nil)
}

// EvaluateInt parses and evaluates src and returns the result as an
// integer. It fails with ErrNotInteger if the value is not integral.
func EvaluateInt(src string) (int64, error) {
	x, err := Evaluate(src)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return 0, fmt.Errorf("value %g: %w", x, ErrDomain)
	}
	r := math.Round(x)
	if math.Abs(x-r) > tolerance+1e-12*math.Abs(r) {
		return 0, fmt.Errorf("%q evaluates to %g: %w", src, x, ErrNotInteger)
	}
	if r >= math.MaxInt64 || r <= math.MinInt64 {
		return 0, fmt.Errorf("value %g overflows int64: %w", x, ErrDomain)
	}
	return int64(r), nil
}

type parser struct {
	toks      []token
	at        int
	integrals int // nesting depth of integral bodies
}

func (p *parser) peek() token {
	return p.toks[p.at]
}

func (p *parser) next() token {
	t := p.toks[p.at]
	if t.kind != tokEOF {
		p.at++
	}
	return t
}

func (p *parser) errorf(t token, format string, args ...any) error {
	return &SyntaxError{Offset: t.pos, Msg: fmt.Sprintf(format, args...)}
}

func (p *parser) expect(kind tokenKind, what string) error {
	if t := p.next(); t.kind != kind {
		return p.errorf(t, "expected %s, found %s", what, t)
	}
	return nil
}

func (p *parser) expectCommand(cmd command, what string) error {
	if t := p.next(); t.kind != tokCommand || t.cmd != cmd {
		return p.errorf(t, "expected %s, found %s", what, t)
	}
	return nil
}

// isDifferential is true for the "dt" closing an integral body.
func (p *parser) isDifferential(t token) bool {
	return p.integrals > 0 && t.kind == tokIdent && len(t.text) > 1 && t.text[0] == 'd'
}

// startsPrimary is true if t may begin an implicitly multiplied factor.
func (p *parser) startsPrimary(t token) bool {
	switch t.kind {
	case tokNumber, tokLParen, tokLBrace:
		return true
	case tokIdent:
		return !p.isDifferential(t)
	case tokCommand:
		switch t.cmd {
		case cmdRFloor, cmdRCeil, cmdCdot:
			return false
		}
		return true
	}
	return false
}

func (p *parser) expr() (Node, error) {
	left, err := p.term()
	if err != nil {
		return nil, err
	}
	for {
		var op byte
		switch p.peek().kind {
		case tokPlus:
			op = '+'
		case tokMinus:
			op = '-'
		default:
			return left, nil
		}
		p.next()
		right, err := p.term()
		if err != nil {
			return nil, err
		}
		left = Binary{Op: op, L: left, R: right}
	}
}

func (p *parser) term() (Node, error) {
	left, err := p.unary()
	if err != nil {
		return nil, err
	}
	for {
		t := p.peek()
		var right Node
		op := byte('*')
		switch {
		case t.kind == tokStar || (t.kind == tokCommand && t.cmd == cmdCdot):
			p.next()
			right, err = p.unary()
		case t.kind == tokSlash:
			p.next()
			op = '/'
			right, err = p.unary()
		case p.startsPrimary(t):
			right, err = p.power()
		default:
			return left, nil
		}
		if err != nil {
			return nil, err
		}
		left = Binary{Op: op, L: left, R: right}
	}
}

func (p *parser) unary() (Node, error) {
	switch p.peek().kind {
	case tokMinus:
		p.next()
		x, err := p.unary()
		if err != nil {
			return nil, err
		}
		return Unary{Op: '-', X: x}, nil
	case tokPlus:
		p.next()
		return p.unary()
	}
	return p.power()
}

func (p *parser) power() (Node, error) {
	base, err := p.postfix()
	if err != nil {
		return nil, err
	}
	if p.peek().kind != tokCaret {
		return base, nil
	}
	p.next()
	exp, err := p.arg()
	if err != nil {
		return nil, err
	}
	return Binary{Op: '^', L: base, R: exp}, nil
}

func (p *parser) postfix() (Node, error) {
	x, err := p.primary()
	if err != nil {
		return nil, err
	}
	for p.peek().kind == tokBang {
		p.next()
		x = Func{Name: "fact", X: x}
	}
	return x, nil
}

// arg parses a macro argument: a braced group or a single primary.
func (p *parser) arg() (Node, error) {
	if p.peek().kind != tokLBrace {
		return p.postfix()
	}
	p.next()
	x, err := p.expr()
	if err != nil {
		return nil, err
	}
	if err = p.expect(tokRBrace, "'}'"); err != nil {
		return nil, err
	}
	return x, nil
}

func (p *parser) primary() (Node, error) {
	t := p.next()
	switch t.kind {
	case tokNumber:
		v, err := strconv.ParseFloat(t.text, 64)
		if err != nil {
			return nil, p.errorf(t, "malformed number %q", t.text)
		}
		return Number(v), nil
	case tokIdent:
		if p.isDifferential(t) {
			return nil, p.errorf(t, "empty integrand before %s", t)
		}
		return Variable(t.text), nil
	case tokLParen:
		x, err := p.expr()
		if err != nil {
			return nil, err
		}
		if err = p.expect(tokRParen, "')'"); err != nil {
			return nil, err
		}
		return x, nil
	case tokLBrace:
		x, err := p.expr()
		if err != nil {
			return nil, err
		}
		if err = p.expect(tokRBrace, "'}'"); err != nil {
			return nil, err
		}
		return x, nil
	case tokCommand:
		return p.command(t)
	}
	return nil, p.errorf(t, "unexpected %s", t)
}

func (p *parser) command(t token) (Node, error) {
	switch t.cmd {
	case cmdPi:
		return Number(math.Pi), nil
	case cmdSqrt:
		x, err := p.arg()
		if err != nil {
			return nil, err
		}
		return Func{Name: "sqrt", X: x}, nil
	case cmdFrac:
		num, err := p.arg()
		if err != nil {
			return nil, err
		}
		den, err := p.arg()
		if err != nil {
			return nil, err
		}
		return Binary{Op: '/', L: num, R: den}, nil
	case cmdLFloor, cmdLCeil:
		x, err := p.expr()
		if err != nil {
			return nil, err
		}
		if t.cmd == cmdLFloor {
			err = p.expectCommand(cmdRFloor, "\\rfloor")
			return Func{Name: "floor", X: x}, err
		}
		err = p.expectCommand(cmdRCeil, "\\rceil")
		return Func{Name: "ceil", X: x}, err
	case cmdGamma, cmdSin, cmdCos, cmdLn:
		x, err := p.power()
		if err != nil {
			return nil, err
		}
		return Func{Name: t.text, X: x}, nil
	case cmdLog:
		if err := p.expect(tokUnderscore, "'_' after \\log"); err != nil {
			return nil, err
		}
		base, err := p.arg()
		if err != nil {
			return nil, err
		}
		x, err := p.power()
		if err != nil {
			return nil, err
		}
		return Log{Base: base, X: x}, nil
	case cmdInt:
		return p.integral()
	}
	return nil, p.errorf(t, "unexpected %s", t)
}

func (p *parser) integral() (Node, error) {
	if err := p.expect(tokUnderscore, "'_' after \\int"); err != nil {
		return nil, err
	}
	lo, err := p.arg()
	if err != nil {
		return nil, err
	}
	if err = p.expect(tokCaret, "'^' after lower bound"); err != nil {
		return nil, err
	}
	hi, err := p.arg()
	if err != nil {
		return nil, err
	}
	p.integrals++
	body, err := p.expr()
	p.integrals--
	if err != nil {
		return nil, err
	}
	d := p.next()
	if d.kind != tokIdent || len(d.text) < 2 || d.text[0] != 'd' {
		return nil, p.errorf(d, "expected differential, found %s", d)
	}
	return Integral{Var: d.text[1:], Lo: lo, Hi: hi, Body: body}, nil
}
