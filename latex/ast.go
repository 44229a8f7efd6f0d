package latex

import (
	"errors"
	"fmt"
	"math"
)

// Node is an evaluable node of a parsed expression.
type Node interface {
	Eval(env Env) (float64, error)
}

// Env binds integration variables to values.
type Env map[string]float64

func (env Env) with(name string, value float64) Env {
	e := make(Env, len(env)+1)
	for k, v := range env {
		e[k] = v
	}
	e[name] = value
	return e
}

// ErrDomain is returned when an operation leaves the real numbers or is
// undefined for its argument, e.g. division by zero or (-1)!.
var ErrDomain = errors.New("latex: argument out of domain")

// Number is a numeric literal.
type Number float64

func (n Number) Eval(Env) (float64, error) { return float64(n), nil }

// Variable is a variable bound by an enclosing integral.
type Variable string

func (v Variable) Eval(env Env) (float64, error) {
	x, ok := env[string(v)]
	if !ok {
		return 0, fmt.Errorf("latex: unbound variable %q", string(v))
	}
	return x, nil
}

// Unary is a prefix sign.
type Unary struct {
	Op byte // '-' or '+'
	X  Node
}

func (u Unary) Eval(env Env) (float64, error) {
	x, err := u.X.Eval(env)
	if err != nil {
		return 0, err
	}
	if u.Op == '-' {
		return -x, nil
	}
	return x, nil
}

// Binary is an arithmetic operation: '+', '-', '*', '/' or '^'.
type Binary struct {
	Op   byte
	L, R Node
}

func (b Binary) Eval(env Env) (float64, error) {
	l, err := b.L.Eval(env)
	if err != nil {
		return 0, err
	}
	r, err := b.R.Eval(env)
	if err != nil {
		return 0, err
	}
	switch b.Op {
	case '+':
		return l + r, nil
	case '-':
		return l - r, nil
	case '*':
		return l * r, nil
	case '/':
		if r == 0 {
			return 0, fmt.Errorf("division by zero: %w", ErrDomain)
		}
		return l / r, nil
	case '^':
		return checked(math.Pow(l, r), "power")
	}
	return 0, fmt.Errorf("latex: unknown operator %q", b.Op)
}

// Func applies a named one-argument function.
type Func struct {
	Name string // sqrt, ln, sin, cos, Gamma, floor, ceil, fact
	X    Node
}

func (f Func) Eval(env Env) (float64, error) {
	x, err := f.X.Eval(env)
	if err != nil {
		return 0, err
	}
	switch f.Name {
	case "sqrt":
		return checked(math.Sqrt(x), f.Name)
	case "ln":
		if x <= 0 {
			return 0, fmt.Errorf("ln of %g: %w", x, ErrDomain)
		}
		return math.Log(x), nil
	case "sin":
		return math.Sin(x), nil
	case "cos":
		return math.Cos(x), nil
	case "Gamma":
		return checked(math.Gamma(x), f.Name)
	case "floor":
		return math.Floor(nudge(x)), nil
	case "ceil":
		return math.Ceil(nudge(x)), nil
	case "fact":
		n := math.Round(x)
		if math.Abs(x-n) > tolerance || n < 0 || n > 170 {
			return 0, fmt.Errorf("factorial of %g: %w", x, ErrDomain)
		}
		return math.Gamma(n + 1), nil
	}
	return 0, fmt.Errorf("latex: unknown function %q", f.Name)
}

// Log is a logarithm to an explicit base.
type Log struct {
	Base, X Node
}

func (lg Log) Eval(env Env) (float64, error) {
	b, err := lg.Base.Eval(env)
	if err != nil {
		return 0, err
	}
	x, err := lg.X.Eval(env)
	if err != nil {
		return 0, err
	}
	if b <= 0 || b == 1 || x <= 0 {
		return 0, fmt.Errorf("log_%g of %g: %w", b, x, ErrDomain)
	}
	return math.Log(x) / math.Log(b), nil
}

// simpsonSteps is the (even) number of sub-intervals for integrals.
const simpsonSteps = 2048

// Integral is a definite integral over Var from Lo to Hi.
type Integral struct {
	Var    string
	Lo, Hi Node
	Body   Node
}

func (in Integral) Eval(env Env) (float64, error) {
	a, err := in.Lo.Eval(env)
	if err != nil {
		return 0, err
	}
	b, err := in.Hi.Eval(env)
	if err != nil {
		return 0, err
	}
	h := (b - a) / simpsonSteps
	sum := 0.0
	inner := env.with(in.Var, a)
	for i := 0; i <= simpsonSteps; i++ {
		inner[in.Var] = a + float64(i)*h
		y, err := in.Body.Eval(inner)
		if err != nil {
			return 0, err
		}
		switch {
		case i == 0 || i == simpsonSteps:
			sum += y
		case i%2 == 1:
			sum += 4 * y
		default:
			sum += 2 * y
		}
	}
	return sum * h / 3, nil
}

func checked(x float64, op string) (float64, error) {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return 0, fmt.Errorf("%s: %w", op, ErrDomain)
	}
	return x, nil
}

// nudge snaps values lying within tolerance of an integer onto it, so that
// floor(2.9999999999) is 3 and not 2.
func nudge(x float64) float64 {
	if r := math.Round(x); math.Abs(x-r) <= tolerance {
		return r
	}
	return x
}
