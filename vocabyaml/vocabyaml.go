/*
Package vocabyaml reads and writes generator vocabularies as YAML.

A vocabulary file looks like this:

	atoms:
	  - text: '\sqrt{4}'
	    value: 2
	  - text: '\log_{4}4'
	    value: 1
	powers:
	  16:
	    - '4^{\sqrt{4}}'
	zeros:
	  - '\sin(4\pi)'
	ones:
	  - '\dfrac{\sqrt{4}}{\sqrt{4}}'

Unknown keys are rejected, so that typos do not silently drop a table.
*/
package vocabyaml

import (
	"cmp"
	"errors"
	"fmt"
	"io"
	"maps"
	"slices"

	"github.com/npillmayer/fours"
	"gopkg.in/yaml.v3"
)

type atomDefinition struct {
	Text  string `yaml:"text"`
	Value *int64 `yaml:"value"`
}

type document struct {
	Atoms  []atomDefinition   `yaml:"atoms"`
	Powers map[int64][]string `yaml:"powers,omitempty"`
	Zeros  []string           `yaml:"zeros"`
	Ones   []string           `yaml:"ones"`
}

// Reader streams vocabulary entries from a YAML document.
// The document is decoded on the first call to Next.
type Reader struct {
	source  io.Reader
	entries []fours.Entry
	decoded bool
	index   int
}

// NewReader creates a Reader for YAML input from r.
func NewReader(r io.Reader) *Reader {
	return &Reader{source: r}
}

// Load reads a YAML vocabulary and validates every entry with the complete
// evaluator.
func Load(name string, r io.Reader) (*fours.Vocabulary, error) {
	vocab, err := fours.LoadVocabulary(name, NewReader(r))
	if err != nil {
		return nil, err
	}
	if err = vocab.Validate(); err != nil {
		return nil, err
	}
	return vocab, nil
}

// Next returns the next vocabulary entry.
// It returns io.EOF when exhausted.
func (r *Reader) Next() (fours.Entry, error) {
	if !r.decoded {
		if err := r.decode(); err != nil {
			return fours.Entry{}, err
		}
	}
	if r.index >= len(r.entries) {
		return fours.Entry{}, io.EOF
	}
	entry := r.entries[r.index]
	r.index++
	return entry, nil
}

func (r *Reader) decode() error {
	r.decoded = true
	dec := yaml.NewDecoder(r.source)
	dec.KnownFields(true)
	var doc document
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return fmt.Errorf("empty vocabulary document: %w", fours.ErrInvalidVocabulary)
		}
		return fmt.Errorf("decoding vocabulary: %w", err)
	}
	for i, a := range doc.Atoms {
		if a.Text == "" || a.Value == nil {
			return fmt.Errorf("atom #%d needs text and value: %w", i+1, fours.ErrInvalidVocabulary)
		}
		r.entries = append(r.entries, fours.Entry{Kind: fours.AtomEntry, Text: a.Text, Value: *a.Value})
	}
	for _, p2 := range slices.Sorted(maps.Keys(doc.Powers)) {
		for _, text := range doc.Powers[p2] {
			r.entries = append(r.entries, fours.Entry{Kind: fours.PowerEntry, Text: text, Value: p2})
		}
	}
	for _, text := range doc.Zeros {
		r.entries = append(r.entries, fours.Entry{Kind: fours.ZeroEntry, Text: text})
	}
	for _, text := range doc.Ones {
		r.entries = append(r.entries, fours.Entry{Kind: fours.OneEntry, Text: text, Value: 1})
	}
	return nil
}

// Write encodes vocab as a YAML document which Load accepts.
func Write(w io.Writer, vocab *fours.Vocabulary) error {
	doc := document{
		Powers: make(map[int64][]string),
		Zeros:  vocab.Zeros(),
		Ones:   vocab.Ones(),
	}
	atoms := vocab.Atoms()
	slices.SortStableFunc(atoms, func(a, b fours.Atom) int { return cmp.Compare(a.Value, b.Value) })
	for _, a := range atoms {
		doc.Atoms = append(doc.Atoms, atomDefinition{Text: a.Text, Value: &a.Value})
	}
	for _, p2 := range vocab.PowerKeys() {
		doc.Powers[p2] = vocab.Powers(p2)
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return err
	}
	return enc.Close()
}
