package fours

import (
	"math"
	"math/rand/v2"
	"strconv"
	"strings"

	"github.com/npillmayer/fours/latex"
)

// Config holds the probabilities steering the cosmetic choices of a
// generator. None of them influences the value of the result.
type Config struct {
	WrapProbability         float64 // put a power-of-two summand in \left( \right)
	ZeroProbability         float64 // decorate a summand with "+ 0"
	OneProbability          float64 // decorate a summand with "· 1"
	DisplayStyleProbability float64 // prefix the result with \displaystyle
}

// DefaultConfig returns the configuration used if none is given.
func DefaultConfig() Config {
	return Config{
		WrapProbability:         0.5,
		ZeroProbability:         0.25,
		OneProbability:          0.2,
		DisplayStyleProbability: 0.3,
	}
}

// Option configures a Generator.
type Option func(*Generator)

// WithSeed makes the generator reproducible: generators with equal seeds
// produce equal output for equal input.
func WithSeed(seed int64) Option {
	return func(g *Generator) {
		g.rng = rand.New(rand.NewPCG(uint64(seed), pcgStream))
	}
}

// WithVocabulary replaces the built-in vocabulary.
func WithVocabulary(vocab *Vocabulary) Option {
	return func(g *Generator) {
		if vocab != nil {
			g.vocab = vocab
		}
	}
}

// WithConfig replaces the default configuration.
func WithConfig(config Config) Option {
	return func(g *Generator) {
		g.config = config
	}
}

// pcgStream is the fixed second PCG seed word for seeded generators.
const pcgStream = 0x4444_4444_4444_4444

// Generator writes integers as expressions of fours.
// A Generator owns its random source and is not safe for concurrent use.
type Generator struct {
	vocab  *Vocabulary
	config Config
	rng    *rand.Rand
}

// New creates a generator. Without WithSeed the generator is seeded from
// the runtime's random source and its output is not reproducible.
func New(opts ...Option) *Generator {
	g := &Generator{
		vocab:  builtin,
		config: DefaultConfig(),
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.rng == nil {
		g.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return g
}

// Generate creates a fresh generator from opts and uses it to write n.
// It is safe for concurrent use.
func Generate(n int64, opts ...Option) (string, int64) {
	return New(opts...).Generate(n)
}

// Generate returns a LaTeX expression evaluating to n, and n itself as a
// check value.
//
// The number of summands grows with the number of set bits of |n|. Powers
// of two beyond the largest template are written as products of templates,
// so every int64 yields an expression of at most a few hundred summands.
func (g *Generator) Generate(n int64) (string, int64) {
	negative := n < 0
	target := n
	var carry int64 // math.MinInt64 is written as -(MaxInt64 + 1)
	if n == math.MinInt64 {
		target, carry = math.MaxInt64, 1
	} else if negative {
		target = -n
	}
	if variants := g.vocab.byValue[target]; len(variants) > 0 {
		tex := g.choice(variants)
		tex = g.embellish([]string{tex})[0]
		tracer().Debugf("n=%d is an atom", n)
		return withSign(tex, negative), n
	}
	var fragments []string
	var total int64
	for _, p2 := range DecomposePow2(target) {
		tex, val := g.pickPow2(p2)
		if g.chance(g.config.WrapProbability) {
			tex = `\left(` + tex + `\right)`
		}
		fragments = append(fragments, tex)
		total += val
	}
	fragments = append(fragments, g.correction(target-total)...)
	g.rng.Shuffle(len(fragments), func(i, j int) {
		fragments[i], fragments[j] = fragments[j], fragments[i]
	})
	parts := g.embellish(fragments)
	if residual := target - g.evaluateFragments(fragments); residual != 0 {
		tracer().Infof("n=%d: correcting residual %d", n, residual)
		parts = append(parts, g.correction(residual)...)
	}
	parts = append(parts, g.correction(carry)...)
	body := withSign(strings.Join(parts, " + "), negative)
	if g.chance(g.config.DisplayStyleProbability) {
		body = `\displaystyle ` + body
	}
	tracer().Debugf("n=%d written with %d summands", n, len(parts))
	return body, n
}

// withSign negates the whole of tex, not just its first summand.
func withSign(tex string, negative bool) string {
	if !negative {
		return tex
	}
	return `-\left(` + tex + `\right)`
}

// pickPow2 returns a template for the power of two p2 and its value. Powers
// above the largest template are written as a product of that template and
// a template for the quotient. Other gaps in the vocabulary are filled with
// a greedy sum of the templates it has, largest first.
func (g *Generator) pickPow2(p2 int64) (string, int64) {
	if texts := g.vocab.powers[p2]; len(texts) > 0 {
		tex := g.choice(texts)
		val, err := g.vocab.EvaluateTemplate(tex)
		if err != nil {
			val = p2
		}
		return tex, val
	}
	if len(g.vocab.powerKeys) > 0 {
		if top := g.vocab.powerKeys[0]; top > 1 && p2 > top {
			a, va := g.pickPow2(top)
			b, vb := g.pickPow2(p2 / top)
			return `\left(` + a + `\right) \cdot \left(` + b + `\right)`, va * vb
		}
	}
	var pieces []string
	var sum int64
	rem := p2
	for _, v := range g.vocab.powerKeys {
		for rem >= v {
			pieces = append(pieces, g.choice(g.vocab.powers[v]))
			sum += v
			rem -= v
		}
	}
	if rem != 0 {
		pieces = append(pieces, strconv.FormatInt(rem, 10))
		sum += rem
	}
	return strings.Join(pieces, " + "), sum
}

// embellish decorates fragments with terms adding 0 or multiplying by 1.
func (g *Generator) embellish(fragments []string) []string {
	decorated := make([]string, len(fragments))
	for i, p := range fragments {
		if g.chance(g.config.ZeroProbability) {
			p = `\left(` + p + ` + ` + g.choice(g.vocab.zeros) + `\right)`
		}
		if g.chance(g.config.OneProbability) {
			p = `\left(` + p + `\cdot ` + g.choice(g.vocab.ones) + `\right)`
		}
		decorated[i] = p
	}
	return decorated
}

// correction returns atoms summing to diff, largest first. Negative
// differences yield negated atoms.
func (g *Generator) correction(diff int64) []string {
	var parts []string
	for diff > 0 {
		val := g.vocab.largestAtomAtMost(diff)
		parts = append(parts, g.choice(g.vocab.byValue[val]))
		diff -= val
	}
	for diff < 0 {
		val := g.vocab.largestAtomAtMost(-diff)
		parts = append(parts, `-\left(`+g.choice(g.vocab.byValue[val])+`\right)`)
		diff += val
	}
	return parts
}

// evaluateFragments sums the values of undecorated fragments.
func (g *Generator) evaluateFragments(fragments []string) int64 {
	var sum int64
	for _, f := range fragments {
		sum += g.fragmentValue(f)
	}
	return sum
}

// fragmentValue evaluates f with the complete evaluator. Should that fail,
// it falls back to the best-effort evaluator, then to the first integer
// literal in f and finally to 0.
func (g *Generator) fragmentValue(f string) int64 {
	val, err := latex.EvaluateInt(f)
	if err == nil {
		return val
	}
	tracer().Errorf("cannot evaluate fragment %q: %v", f, err)
	inner, negative := stripWrapping(f)
	if val, err = g.vocab.EvaluateTemplate(inner); err != nil {
		val = 0
		if m := firstSignedInteger.FindString(inner); m != "" {
			val, _ = strconv.ParseInt(m, 10, 64)
		}
	}
	if negative {
		return -val
	}
	return val
}

func (g *Generator) choice(texts []string) string {
	return texts[g.rng.IntN(len(texts))]
}

func (g *Generator) chance(p float64) bool {
	return g.rng.Float64() < p
}
