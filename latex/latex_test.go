package latex

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvaluateIntFragments(t *testing.T) {
	tests := []struct {
		src  string
		want int64
	}{
		{src: `4`, want: 4},
		{src: `4 + 4`, want: 8},
		{src: `\sin(4\pi)`, want: 0},
		{src: `\log_{4}4`, want: 1},
		{src: `\sqrt{4}`, want: 2},
		{src: `\dfrac{\Gamma(4)}{\sqrt{4}}`, want: 3},
		{src: `\big\lfloor 4 + \ln 4 \big\rfloor`, want: 5},
		{src: `\Gamma(4)`, want: 6},
		{src: `4^{\sqrt{4}}`, want: 16},
		{src: `4!`, want: 24},
		{src: `\dfrac{4}{0.4}`, want: 10},
		{src: `\dfrac{4}{0.04}`, want: 100},
		{src: `4^{4}`, want: 256},
		{src: `\lceil \sqrt{4} \rceil`, want: 2},
		{src: `\left(\sqrt{4}\right)^{\Gamma(4)}\!/4`, want: 16},
		{src: `4! + (4 + 4)`, want: 32},
		{src: `(4!) \cdot (4 + 4) - 4^{\left(\sqrt{4} + \log_{4}4\right)}`, want: 128},
		{src: `\int_{0}^{4\pi}\sin t\,dt`, want: 0},
		{src: `\int_{0}^{4} t\,dt`, want: 8},
		{src: `\int_{0}^{4} \sqrt{4} \cdot t\,dt`, want: 16},
		{src: `\ln\left(\log_{4}4\right)`, want: 0},
		{src: `-\left(4 + 4\right)`, want: -8},
		{src: `\displaystyle -\left(4 + \sqrt{4}\right) + 4!`, want: 18},
		{src: `4 + -\left(\sqrt{4}\right)`, want: 2},
		{src: `-4^{\sqrt{4}}`, want: -16},
		{src: `2 \cdot 3 + 4`, want: 10},
		{src: `4 - 4 - 4`, want: -4},
		{src: `\Gamma(\dfrac{4}{4} + 4)`, want: 24},
	}
	for _, tt := range tests {
		got, err := EvaluateInt(tt.src)
		require.NoError(t, err, "source %q", tt.src)
		assert.Equal(t, tt.want, got, "source %q", tt.src)
	}
}

func TestEvaluatePi(t *testing.T) {
	x, err := Evaluate(`4\pi`)
	require.NoError(t, err)
	assert.InDelta(t, 4*math.Pi, x, 1e-12)
}

func TestEvaluateIntRejectsFractions(t *testing.T) {
	_, err := EvaluateInt(`\dfrac{4}{\Gamma(4)}`)
	assert.True(t, errors.Is(err, ErrNotInteger), "got %v", err)
}

func TestEvaluateDomainErrors(t *testing.T) {
	for _, src := range []string{
		`\dfrac{4}{4 - 4}`,
		`\ln(4 - 4)`,
		`(0.4)!`,
		`\log_{\log_{4}4}4`,
	} {
		_, err := Evaluate(src)
		assert.True(t, errors.Is(err, ErrDomain), "source %q: got %v", src, err)
	}
}

func TestParseSyntaxErrors(t *testing.T) {
	tests := []struct {
		src    string
		offset int
	}{
		{src: `4 +`, offset: 3},
		{src: `\foo{4}`, offset: 0},
		{src: `\sqrt{4`, offset: 7},
		{src: `\lfloor 4 \rceil`, offset: 10},
		{src: `4 # 4`, offset: 2},
		{src: `\int_{0}^{4} t`, offset: 14},
	}
	for _, tt := range tests {
		_, err := Parse(tt.src)
		var serr *SyntaxError
		require.True(t, errors.As(err, &serr), "source %q: expected syntax error, got %v", tt.src, err)
		assert.Equal(t, tt.offset, serr.Offset, "source %q", tt.src)
	}
}

func TestUnboundVariable(t *testing.T) {
	_, err := Evaluate(`t + 4`)
	assert.Error(t, err)
}

func TestCheckBalanced(t *testing.T) {
	balanced := []string{
		`4`,
		`\left(\left(4 + \sin(4\pi)\right)\cdot \dfrac{\sqrt{4}}{\sqrt{4}}\right)`,
		`\big\lfloor 4 + \ln 4 \big\rfloor`,
		`-\left(\lceil \sqrt{4} \rceil\right)`,
	}
	for _, src := range balanced {
		assert.NoError(t, CheckBalanced(src), "source %q", src)
	}
	unbalanced := []string{
		`\left(4`,
		`(4\right)`,
		`\lfloor 4 \rceil`,
		`{4`,
		`4}`,
	}
	for _, src := range unbalanced {
		assert.Error(t, CheckBalanced(src), "source %q", src)
	}
}
