/*
Package fours writes integers as decorative LaTeX expressions built from the
digit 4.

	tex, n := fours.Generate(37, fours.WithSeed(1))
	// tex is something like
	//   \left(4! + (4 + 4)\right) + \left(4 + \sin(4\pi)\right) + \log_{4}4

The generator looks the number up in a small table of atoms. If it is not
found there, it writes the number as a sum of powers of two, using a
template for each power. Any difference left over is fixed with further
atoms. Then the summands are shuffled and some are decorated with terms
that add 0 or multiply by 1.
A final pass re-evaluates the summands and appends corrections until the
value is exact.

Sub-package latex holds a complete evaluator for the expressions produced
here. Sub-package vocabyaml reads alternative vocabularies from YAML files.

Further Reading

	https://en.wikipedia.org/wiki/Four_fours

----------------------------------------------------------------------

# BSD License

Copyright (c) Norbert Pillmayer <norbert@pillmayer@com>

All rights reserved.

License information is available in the LICENSE file.
*/
package fours

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'fours'
func tracer() tracing.Trace {
	return tracing.Select("fours")
}

func assert(condition bool, msg string) {
	if !condition {
		panic(msg)
	}
}
