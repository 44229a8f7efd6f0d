package fours

import (
	"cmp"
	"errors"
	"fmt"
	"io"
	"maps"
	"slices"

	"github.com/npillmayer/fours/latex"
)

// ErrInvalidVocabulary is returned for vocabularies which cannot be used
// to generate expressions.
var ErrInvalidVocabulary = errors.New("invalid vocabulary")

// Atom is a minimal display text together with the integer it evaluates to.
type Atom struct {
	Text  string
	Value int64
}

// EntryKind tells which table a vocabulary entry belongs to.
type EntryKind int8

const (
	AtomEntry  EntryKind = iota // an atom with its value
	PowerEntry                  // a template for a power of two
	ZeroEntry                   // a decoration evaluating to 0
	OneEntry                    // a decoration evaluating to 1
)

func (k EntryKind) String() string {
	switch k {
	case AtomEntry:
		return "atom"
	case PowerEntry:
		return "power"
	case ZeroEntry:
		return "zero"
	case OneEntry:
		return "one"
	}
	return fmt.Sprintf("EntryKind(%d)", int(k))
}

// Entry is one item of a vocabulary source.
type Entry struct {
	Kind  EntryKind
	Text  string
	Value int64 // ignored for ZeroEntry and OneEntry
}

// EntryReader yields vocabulary entries one-by-one.
// It should return io.EOF when the stream is exhausted.
type EntryReader interface {
	Next() (Entry, error)
}

// Vocabulary is the set of tables the generator draws from.
//
// A vocabulary contains:
//   - atoms, small display texts with known values
//   - templates for powers of two
//   - zero and one decorations for the embellisher
//   - the evaluation table derived from atoms and templates.
//
// A Vocabulary is immutable once constructed and may be shared between
// generators.
type Vocabulary struct {
	Identifier string

	atoms      []Atom
	powers     map[int64][]string
	zeros      []string
	ones       []string
	values     map[string]int64   // evaluation table
	byValue    map[int64][]string // atom texts by value
	atomValues []int64            // distinct atom values, descending
	powerKeys  []int64            // template powers, descending
}

// NewVocabulary assembles a vocabulary from its tables.
//
// The atoms must contain an atom of value 1 and no negative values,
// otherwise the greedy correction of the generator might not terminate.
// Template keys must be powers of two. Texts are not evaluated here, see
// Validate for that.
func NewVocabulary(name string, atoms []Atom, powers map[int64][]string, zeros, ones []string) (*Vocabulary, error) {
	v := &Vocabulary{
		Identifier: fmt.Sprintf("vocabulary: %s", name),
		atoms:      slices.Clone(atoms),
		powers:     make(map[int64][]string, len(powers)),
		zeros:      slices.Clone(zeros),
		ones:       slices.Clone(ones),
		values:     make(map[string]int64),
		byValue:    make(map[int64][]string),
	}
	if len(v.atoms) == 0 {
		return nil, fmt.Errorf("%s has no atoms: %w", name, ErrInvalidVocabulary)
	}
	if len(v.zeros) == 0 || len(v.ones) == 0 {
		return nil, fmt.Errorf("%s lacks zero or one decorations: %w", name, ErrInvalidVocabulary)
	}
	for _, a := range v.atoms {
		if a.Value < 0 {
			return nil, fmt.Errorf("atom %q has negative value %d: %w", a.Text, a.Value, ErrInvalidVocabulary)
		}
		if err := v.enter(a.Text, a.Value); err != nil {
			return nil, err
		}
		if len(v.byValue[a.Value]) == 0 {
			v.atomValues = append(v.atomValues, a.Value)
		}
		v.byValue[a.Value] = append(v.byValue[a.Value], a.Text)
	}
	if len(v.byValue[1]) == 0 {
		return nil, fmt.Errorf("%s has no atom of value 1: %w", name, ErrInvalidVocabulary)
	}
	slices.SortFunc(v.atomValues, func(a, b int64) int { return cmp.Compare(b, a) })
	for p2, texts := range powers {
		if p2 <= 0 || p2&(p2-1) != 0 {
			return nil, fmt.Errorf("template key %d is not a power of two: %w", p2, ErrInvalidVocabulary)
		}
		if len(texts) == 0 {
			return nil, fmt.Errorf("no templates for %d: %w", p2, ErrInvalidVocabulary)
		}
		for _, t := range texts {
			if err := v.enter(t, p2); err != nil {
				return nil, err
			}
		}
		v.powers[p2] = slices.Clone(texts)
	}
	v.powerKeys = slices.Sorted(maps.Keys(v.powers))
	slices.Reverse(v.powerKeys)
	tracer().Debugf("%s: %d atoms, %d template powers, %d table entries",
		v.Identifier, len(v.atoms), len(v.powerKeys), len(v.values))
	return v, nil
}

// enter adds text to the evaluation table, rejecting contradicting values.
func (v *Vocabulary) enter(text string, value int64) error {
	if old, ok := v.values[text]; ok && old != value {
		return fmt.Errorf("%q listed with values %d and %d: %w", text, old, value, ErrInvalidVocabulary)
	}
	v.values[text] = value
	return nil
}

// LoadVocabulary collects entries from a streaming source into a vocabulary.
//
// File format parsing is outside of this package. Use adapters like package
// vocabyaml to parse concrete formats and feed this API.
func LoadVocabulary(name string, reader EntryReader) (*Vocabulary, error) {
	var atoms []Atom
	var zeros, ones []string
	powers := make(map[int64][]string)
	for {
		entry, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		switch entry.Kind {
		case AtomEntry:
			atoms = append(atoms, Atom{Text: entry.Text, Value: entry.Value})
		case PowerEntry:
			powers[entry.Value] = append(powers[entry.Value], entry.Text)
		case ZeroEntry:
			zeros = append(zeros, entry.Text)
		case OneEntry:
			ones = append(ones, entry.Text)
		default:
			return nil, fmt.Errorf("entry %q has unknown kind %v: %w", entry.Text, entry.Kind, ErrInvalidVocabulary)
		}
	}
	return NewVocabulary(name, atoms, powers, zeros, ones)
}

// Validate evaluates every text of the vocabulary with the complete
// evaluator of package latex and reports all texts whose value differs from
// the one they are listed with.
func (v *Vocabulary) Validate() error {
	var errs []error
	check := func(kind EntryKind, text string, want int64) {
		got, err := latex.EvaluateInt(text)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s %q: %w", kind, text, err))
			return
		}
		if got != want {
			errs = append(errs, fmt.Errorf("%s %q evaluates to %d, listed as %d: %w",
				kind, text, got, want, ErrInvalidVocabulary))
		}
	}
	for _, a := range v.atoms {
		check(AtomEntry, a.Text, a.Value)
	}
	for _, p2 := range v.powerKeys {
		for _, t := range v.powers[p2] {
			check(PowerEntry, t, p2)
		}
	}
	for _, z := range v.zeros {
		check(ZeroEntry, z, 0)
	}
	for _, o := range v.ones {
		check(OneEntry, o, 1)
	}
	if len(errs) > 0 {
		tracer().Errorf("%s: %d invalid entries", v.Identifier, len(errs))
	}
	return errors.Join(errs...)
}

// Atoms returns a copy of the atom table.
func (v *Vocabulary) Atoms() []Atom {
	return slices.Clone(v.atoms)
}

// Powers returns a copy of the power-of-two templates for p2.
func (v *Vocabulary) Powers(p2 int64) []string {
	return slices.Clone(v.powers[p2])
}

// PowerKeys returns the powers of two with templates, largest first.
func (v *Vocabulary) PowerKeys() []int64 {
	return slices.Clone(v.powerKeys)
}

// Zeros returns a copy of the zero decorations.
func (v *Vocabulary) Zeros() []string {
	return slices.Clone(v.zeros)
}

// Ones returns a copy of the one decorations.
func (v *Vocabulary) Ones() []string {
	return slices.Clone(v.ones)
}

// Value looks text up in the evaluation table.
func (v *Vocabulary) Value(text string) (int64, bool) {
	val, ok := v.values[text]
	return val, ok
}

// largestAtomAtMost returns the largest positive atom value not exceeding x,
// and 1 if there is none. NewVocabulary makes sure the table holds a 1, so
// every greedy step makes progress.
func (v *Vocabulary) largestAtomAtMost(x int64) int64 {
	for _, val := range v.atomValues {
		if val > 0 && val <= x {
			return val
		}
	}
	return 1
}
