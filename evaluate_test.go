package fours

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestEvaluateTemplate(t *testing.T) {
	tests := []struct {
		tex  string
		want int64
	}{
		{tex: `4!`, want: 24},
		{tex: `  \sqrt{4} `, want: 2},
		{tex: `(4!) \cdot (4 + 4) - 4^{\left(\sqrt{4} + \log_{4}4\right)}`, want: 128},
		{tex: `\sqrt{4} + 4!`, want: 26},
		{tex: `\sqrt{4} \cdot 4!`, want: 48},
		{tex: `4^{4} + \sqrt{4} \cdot \Gamma(4)`, want: 268},
		{tex: `4! * \sqrt{4}`, want: 48},
		{tex: `\Gamma(44)`, want: 44}, // crude integer fallback
	}
	for _, tt := range tests {
		got, err := EvaluateTemplate(tt.tex)
		if err != nil {
			t.Fatalf("%q: %v", tt.tex, err)
		}
		if got != tt.want {
			t.Fatalf("%q: got %d, want %d", tt.tex, got, tt.want)
		}
	}
}

func TestEvaluateTemplateUnknown(t *testing.T) {
	for _, tex := range []string{`\pi`, `\sqrt{4} + \pi`} {
		if _, err := EvaluateTemplate(tex); !errors.Is(err, ErrUnknownTemplate) {
			t.Fatalf("%q: expected ErrUnknownTemplate, got %v", tex, err)
		}
	}
}

func TestSplitTopLevel(t *testing.T) {
	got := splitTopLevel(`a + (b + c) + {d + e} + \left(f + g\right)`, " + ")
	want := []string{`a`, `(b + c)`, `{d + e}`, `\left(f + g\right)`}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("split mismatch (-want +got):\n%s", diff)
	}
}

func TestStripWrapping(t *testing.T) {
	tests := []struct {
		tex      string
		want     string
		negative bool
	}{
		{tex: `\left(\left(4\right)\right)`, want: `4`},
		{tex: ` -\left(\sqrt{4}\right)`, want: `\sqrt{4}`, negative: true},
		{tex: `\left(a\right) + \left(b\right)`, want: `\left(a\right) + \left(b\right)`},
		{tex: `4!`, want: `4!`},
	}
	for _, tt := range tests {
		got, negative := stripWrapping(tt.tex)
		if got != tt.want || negative != tt.negative {
			t.Fatalf("%q: got (%q, %v), want (%q, %v)", tt.tex, got, negative, tt.want, tt.negative)
		}
	}
}
