/*
Package latex evaluates the small fragment of LaTeX math that package fours
emits. It is a complete parser for that fragment, not a LaTeX engine.

The accepted grammar is roughly

	expr    := term { ("+" | "-") term }
	term    := unary { ("\cdot" | "\times" | "*" | "/") unary | power }
	unary   := ("-" | "+") unary | power
	power   := postfix [ "^" arg ]
	postfix := primary { "!" }
	primary := number | variable | "(" expr ")" | "{" expr "}" | "\pi"
	         | "\sqrt" arg | "\dfrac" arg arg | "\lfloor" expr "\rfloor"
	         | "\lceil" expr "\rceil" | "\Gamma" power | "\sin" power
	         | "\cos" power | "\ln" power | "\log" "_" arg power
	         | "\int" "_" arg "^" arg expr "d"variable

A term followed directly by another primary multiplies (juxtaposition, as in
"4\pi"). Layout commands like \displaystyle, \big, \left, \right, "\,",
"\!" and "\;" carry no value and are skipped by the parser, although
CheckBalanced does look at \left/\right pairs.

Definite integrals are approximated by the composite Simpson rule, which is
exact for the polynomial integrands used by fours and far below rounding
tolerance for the trigonometric ones.

----------------------------------------------------------------------

# BSD License

Copyright (c) Norbert Pillmayer <norbert@pillmayer@com>

All rights reserved.

License information is available in the LICENSE file.
*/
package latex

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'fours.latex'
func tracer() tracing.Trace {
	return tracing.Select("fours.latex")
}
