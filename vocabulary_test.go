package fours

import (
	"errors"
	"io"
	"testing"

	"github.com/npillmayer/fours/latex"
)

type sliceEntryReader struct {
	entries []Entry
	index   int
}

func (r *sliceEntryReader) Next() (Entry, error) {
	if r.index >= len(r.entries) {
		return Entry{}, io.EOF
	}
	entry := r.entries[r.index]
	r.index++
	return entry, nil
}

func TestBuiltinVocabularyIsValid(t *testing.T) {
	if err := Builtin().Validate(); err != nil {
		t.Fatal(err)
	}
}

func TestDecorationsAreNeutral(t *testing.T) {
	for _, z := range builtinZeros {
		if v, err := latex.EvaluateInt(z); err != nil || v != 0 {
			t.Fatalf("zero decoration %q evaluates to %d (%v)", z, v, err)
		}
	}
	for _, o := range builtinOnes {
		if v, err := latex.EvaluateInt(o); err != nil || v != 1 {
			t.Fatalf("one decoration %q evaluates to %d (%v)", o, v, err)
		}
	}
}

func TestBuiltinCoversAtomValues(t *testing.T) {
	for _, want := range []int64{0, 1, 2, 3, 4, 5, 6, 8, 10, 16, 24, 100, 256} {
		if len(builtin.byValue[want]) == 0 {
			t.Fatalf("no atom for value %d", want)
		}
	}
	for bit := 0; bit <= 20; bit++ {
		if len(builtin.Powers(int64(1)<<bit)) == 0 {
			t.Fatalf("no template for 2^%d", bit)
		}
	}
}

func TestNewVocabularyRejects(t *testing.T) {
	one := []Atom{{`\log_{4}4`, 1}}
	zeros, ones := []string{`\sin(4\pi)`}, []string{`\dfrac{4}{4}`}
	tests := []struct {
		name   string
		atoms  []Atom
		powers map[int64][]string
		zeros  []string
		ones   []string
	}{
		{name: "no atoms", zeros: zeros, ones: ones},
		{name: "no value 1", atoms: []Atom{{`4`, 4}}, zeros: zeros, ones: ones},
		{name: "negative atom", atoms: append([]Atom{{`-4`, -4}}, one...), zeros: zeros, ones: ones},
		{name: "no zeros", atoms: one, ones: ones},
		{name: "no ones", atoms: one, zeros: zeros},
		{name: "key not a power", atoms: one, powers: map[int64][]string{6: {`\Gamma(4)`}}, zeros: zeros, ones: ones},
		{name: "empty templates", atoms: one, powers: map[int64][]string{4: nil}, zeros: zeros, ones: ones},
		{name: "contradiction", atoms: one, powers: map[int64][]string{2: {`\log_{4}4`}}, zeros: zeros, ones: ones},
	}
	for _, tt := range tests {
		_, err := NewVocabulary(tt.name, tt.atoms, tt.powers, tt.zeros, tt.ones)
		if !errors.Is(err, ErrInvalidVocabulary) {
			t.Fatalf("%s: expected ErrInvalidVocabulary, got %v", tt.name, err)
		}
	}
}

func TestLoadVocabulary(t *testing.T) {
	vocab, err := LoadVocabulary("stream", &sliceEntryReader{
		entries: []Entry{
			{Kind: AtomEntry, Text: `\log_{4}4`, Value: 1},
			{Kind: AtomEntry, Text: `4`, Value: 4},
			{Kind: PowerEntry, Text: `4^{\sqrt{4}}`, Value: 16},
			{Kind: ZeroEntry, Text: `\sin(4\pi)`},
			{Kind: OneEntry, Text: `\dfrac{4}{4}`},
		},
	})
	if err != nil {
		t.Fatal(err)
	}
	if err = vocab.Validate(); err != nil {
		t.Fatal(err)
	}
	if v, ok := vocab.Value(`4^{\sqrt{4}}`); !ok || v != 16 {
		t.Fatalf("template 16 missing from evaluation table: %d, %v", v, ok)
	}
	if keys := vocab.PowerKeys(); len(keys) != 1 || keys[0] != 16 {
		t.Fatalf("unexpected power keys %v", keys)
	}
	if vocab.Identifier != "vocabulary: stream" {
		t.Fatalf("unexpected identifier %q", vocab.Identifier)
	}
}

func TestLoadVocabularyUnknownKind(t *testing.T) {
	_, err := LoadVocabulary("bad", &sliceEntryReader{
		entries: []Entry{{Kind: EntryKind(9), Text: `4`}},
	})
	if !errors.Is(err, ErrInvalidVocabulary) {
		t.Fatalf("expected ErrInvalidVocabulary, got %v", err)
	}
}

func TestValidateReportsWrongValues(t *testing.T) {
	vocab, err := NewVocabulary("wrong",
		[]Atom{{`\log_{4}4`, 1}, {`\Gamma(4) + \log_{4}4`, 8}},
		map[int64][]string{64: {`(4+4)^{\sqrt{4}}/2`}},
		[]string{`\sin(4\pi)`}, []string{`\sqrt{4}`})
	if err != nil {
		t.Fatal(err)
	}
	err = vocab.Validate()
	if !errors.Is(err, ErrInvalidVocabulary) {
		t.Fatalf("expected ErrInvalidVocabulary, got %v", err)
	}
	if n := len(err.(interface{ Unwrap() []error }).Unwrap()); n != 3 {
		t.Fatalf("expected 3 invalid entries, got %d: %v", n, err)
	}
}

func TestLargestAtomAtMost(t *testing.T) {
	tests := []struct{ x, want int64 }{
		{-5, 1}, {0, 1}, {1, 1}, {7, 6}, {9, 8}, {99, 24}, {100, 100}, {1000, 256},
	}
	for _, tt := range tests {
		if got := builtin.largestAtomAtMost(tt.x); got != tt.want {
			t.Fatalf("largest atom ≤ %d: got %d, want %d", tt.x, got, tt.want)
		}
	}
}
