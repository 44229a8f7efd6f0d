package fours

// Built-in tables. Every text uses no digit other than 4 (and the 0 of
// decimal fractions like 0.4), and every text is checked against its value
// by the tests.

var builtinAtoms = []Atom{
	{`\sin(4\pi)`, 0},
	{`\int_{0}^{4\pi}\sin t\,dt`, 0},
	{`\ln\left(\log_{4}4\right)`, 0},
	{`\log_{4}4`, 1},
	{`\dfrac{\Gamma(4)}{\Gamma(4)}`, 1},
	{`\dfrac{4}{4}`, 1},
	{`\sqrt{4}`, 2},
	{`\lfloor \sqrt{4} \rfloor`, 2},
	{`\dfrac{4 + 4}{4}`, 2},
	{`\dfrac{\Gamma(4)}{\sqrt{4}}`, 3}, // 6/2
	{`4 - \dfrac{4}{4}`, 3},
	{`4`, 4},
	{`\int_{0}^{4} \dfrac{4}{4}\,dt`, 4},
	{`\big\lfloor 4 + \ln 4 \big\rfloor`, 5},
	{`4 + \dfrac{4}{4}`, 5},
	{`\Gamma(4)`, 6},
	{`4 + \sqrt{4}`, 6},
	{`4 + 4`, 8},
	{`\int_{0}^{4} t\,dt`, 8},
	{`\dfrac{4}{0.4}`, 10},
	{`4^{\sqrt{4}}`, 16},
	{`\int_{0}^{4} \sqrt{4} \cdot t\,dt`, 16},
	{`4!`, 24},
	{`\Gamma(\dfrac{4}{4} + 4)`, 24},
	{`\dfrac{4}{0.04}`, 100},
	{`\left(\dfrac{4}{0.4}\right)^{\sqrt{4}}`, 100},
	{`4^{4}`, 256},
}

var builtinPowers = map[int64][]string{
	1: {`\log_{4}4`, `\dfrac{\Gamma(4)}{\Gamma(4)}`},
	2: {`\sqrt{4}`, `\lfloor \sqrt{4} \rfloor`},
	4: {`4`, `\left(\sqrt{4}\right)^{\sqrt{4}}`},
	8: {`4 + 4`, `\Gamma(4) + \sqrt{4}`},
	16: {
		`4^{\sqrt{4}}`,
		`\left(\sqrt{4}\right)^{\Gamma(4)}\!/4`,
	},
	32: {
		`4! + (4 + 4)`,
		`\left(4 + \dfrac{4}{4}\right)^{\sqrt{4}} + \Gamma(4) + \log_{4}4`,
	},
	64: {
		`4^{\left(\sqrt{4} + \log_{4}4\right)}`,
		`(4+4)^{\sqrt{4}}`,
	},
	128: {
		`4^{\left(\sqrt{4} + \log_{4}4\right)} \cdot \sqrt{4}`,
		`(4!) \cdot (4 + 4) - 4^{\left(\sqrt{4} + \log_{4}4\right)}`,
	},
	256: {
		`4^{4}`,
		`\left(4^{\sqrt{4}}\right)^{\sqrt{4}}`,
	},
	512: {
		`4^{4} \cdot \sqrt{4}`,
		`(4^{\sqrt{4}})^{\sqrt{4}} \cdot \sqrt{4}`,
	},
	1024: {
		`4^{\left(4 + \log_{4}4\right)}`,
		`\left(4^{4}\right) \cdot 4`,
	},
	2048: {
		`4^{\left(4 + \log_{4}4\right)} \cdot \sqrt{4}`,
		`\left(\sqrt{4}\right)^{4 + 4 + \sqrt{4} + \log_{4}4}`,
	},
	4096: {
		`4^{4 + \sqrt{4}}`,
		`\left(4^{\sqrt{4}}\right)^{\dfrac{\Gamma(4)}{\sqrt{4}}}`,
	},
	8192: {
		`4^{4 + \sqrt{4}} \cdot \sqrt{4}`,
		`\left(\sqrt{4}\right)^{4 + 4 + \dfrac{\Gamma(4)}{\sqrt{4}} + \sqrt{4}}`,
	},
	16384: {
		`4^{\dfrac{4}{4} + 4 + \sqrt{4}}`,
		`\left(4 + 4\right)^{4} \cdot 4`,
	},
	32768: {
		`\left(4 + 4\right)^{\Gamma(4) - \log_{4}4}`,
		`4^{\dfrac{4}{4} + 4 + \sqrt{4}} \cdot \sqrt{4}`,
	},
	65536: {
		`4^{4 + 4}`,
		`\left(4^{4}\right)^{\sqrt{4}}`,
	},
	131072: {
		`4^{4 + 4} \cdot \sqrt{4}`,
		`\left(\sqrt{4}\right)^{4! - \Gamma(4) - \log_{4}4}`,
	},
	262144: {
		`4^{\dfrac{4}{4} + 4 + 4}`,
		`\left(4 + 4\right)^{\Gamma(4)}`,
	},
	524288: {
		`4^{\dfrac{4}{4} + 4 + 4} \cdot \sqrt{4}`,
		`\left(\sqrt{4}\right)^{4! - 4 - \log_{4}4}`,
	},
	1048576: {
		`4^{4 + 4 + \sqrt{4}}`,
		`\left(4^{4 + \log_{4}4}\right)^{\sqrt{4}}`,
	},
}

// Decorations added by the embellisher. They must evaluate to exactly 0
// and 1 respectively.
var (
	builtinZeros = []string{
		`\sin(4\pi)`,
		`\int_{0}^{4\pi}\sin t\,dt`,
		`\ln\left(\log_{4}4\right)`,
	}
	builtinOnes = []string{
		`\dfrac{\Gamma(4)}{\Gamma(4)}`,
		`\dfrac{\log_{4}4}{\log_{4}4}`,
		`\dfrac{\sqrt{4}}{\sqrt{4}}`,
	}
)

var builtin = mustBuildVocabulary()

func mustBuildVocabulary() *Vocabulary {
	v, err := NewVocabulary("builtin", builtinAtoms, builtinPowers, builtinZeros, builtinOnes)
	assert(err == nil, "built-in vocabulary is inconsistent")
	return v
}

// Builtin returns the vocabulary compiled into the package.
func Builtin() *Vocabulary {
	return builtin
}
