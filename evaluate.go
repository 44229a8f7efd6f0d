package fours

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// ErrUnknownTemplate is returned by EvaluateTemplate for texts it cannot
// make sense of.
var ErrUnknownTemplate = errors.New("unknown template")

var (
	firstInteger       = regexp.MustCompile(`\d+`)
	firstSignedInteger = regexp.MustCompile(`-?\d+`)
)

// EvaluateTemplate evaluates tex with the built-in vocabulary.
func EvaluateTemplate(tex string) (int64, error) {
	return builtin.EvaluateTemplate(tex)
}

// EvaluateTemplate is a best-effort evaluator for texts assembled from the
// vocabulary. It understands exact table entries, sums separated by " + "
// and products separated by \cdot. Anything else evaluates to the first
// integer literal it contains.
//
// Package latex has a complete evaluator; this one is only as good as the
// tables it knows.
func (v *Vocabulary) EvaluateTemplate(tex string) (int64, error) {
	tex = strings.TrimSpace(tex)
	if val, ok := v.values[tex]; ok {
		return val, nil
	}
	if parts := splitTopLevel(tex, " + "); len(parts) > 1 {
		var sum int64
		for _, p := range parts {
			val, err := v.EvaluateTemplate(p)
			if err != nil {
				return 0, err
			}
			sum += val
		}
		return sum, nil
	}
	sep := `\cdot`
	if !strings.Contains(tex, sep) {
		sep = " * "
	}
	if parts := splitTopLevel(tex, sep); len(parts) > 1 {
		prod := int64(1)
		for _, p := range parts {
			val, err := v.EvaluateTemplate(p)
			if err != nil {
				return 0, err
			}
			prod *= val
		}
		return prod, nil
	}
	if m := firstInteger.FindString(tex); m != "" {
		return strconv.ParseInt(m, 10, 64)
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownTemplate, tex)
}

// splitTopLevel splits s at every occurrence of sep which is not nested
// inside parentheses or braces.
func splitTopLevel(s, sep string) []string {
	var parts []string
	depth, start := 0, 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '(', '{':
			depth++
		case ')', '}':
			depth--
		default:
			if depth == 0 && strings.HasPrefix(s[i:], sep) {
				parts = append(parts, s[start:i])
				i += len(sep) - 1
				start = i + 1
			}
		}
	}
	return append(parts, s[start:])
}

// stripWrapping removes an optional leading minus and any number of
// enclosing \left( … \right) pairs. It reports whether a minus was found.
func stripWrapping(tex string) (string, bool) {
	tex = strings.TrimSpace(tex)
	negative := strings.HasPrefix(tex, "-")
	if negative {
		tex = strings.TrimSpace(tex[1:])
	}
	for strings.HasPrefix(tex, `\left(`) && strings.HasSuffix(tex, `\right)`) {
		inner := tex[len(`\left(`) : len(tex)-len(`\right)`)]
		if !balanced(inner) {
			break // \left(a\right) + \left(b\right)
		}
		tex = strings.TrimSpace(inner)
	}
	return tex, negative
}

// balanced is true if parentheses and braces in s pair up.
func balanced(s string) bool {
	depth := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '(', '{':
			depth++
		case ')', '}':
			depth--
			if depth < 0 {
				return false
			}
		}
	}
	return depth == 0
}
