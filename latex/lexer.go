package latex

import (
	"fmt"
	"unicode"

	"github.com/derekparker/trie"
)

type tokenKind int8

const (
	tokEOF tokenKind = iota
	tokNumber
	tokIdent
	tokCommand
	tokLayout // a command without numeric meaning, e.g. \displaystyle
	tokPlus
	tokMinus
	tokStar
	tokSlash
	tokBang
	tokCaret
	tokUnderscore
	tokLParen
	tokRParen
	tokLBrace
	tokRBrace
)

// command identifies a control word of the accepted fragment.
type command int8

const (
	cmdNone command = iota
	cmdSqrt
	cmdFrac
	cmdLog
	cmdLn
	cmdSin
	cmdCos
	cmdGamma
	cmdPi
	cmdLFloor
	cmdRFloor
	cmdLCeil
	cmdRCeil
	cmdCdot
	cmdInt
	cmdLeft
	cmdRight
	cmdSpace // \displaystyle, \big, \, and friends
)

type token struct {
	kind tokenKind
	text string
	cmd  command
	pos  int // byte offset into the source
}

func (t token) String() string {
	switch t.kind {
	case tokEOF:
		return "end of input"
	case tokCommand, tokLayout:
		return "\\" + t.text
	}
	return fmt.Sprintf("%q", t.text)
}

// lexicon holds every control word the lexer knows, keyed without the
// leading backslash.
var lexicon = newLexicon()

func newLexicon() *trie.Trie {
	t := trie.New()
	for name, cmd := range map[string]command{
		"sqrt":         cmdSqrt,
		"dfrac":        cmdFrac,
		"frac":         cmdFrac,
		"tfrac":        cmdFrac,
		"log":          cmdLog,
		"ln":           cmdLn,
		"sin":          cmdSin,
		"cos":          cmdCos,
		"Gamma":        cmdGamma,
		"pi":           cmdPi,
		"lfloor":       cmdLFloor,
		"rfloor":       cmdRFloor,
		"lceil":        cmdLCeil,
		"rceil":        cmdRCeil,
		"cdot":         cmdCdot,
		"times":        cmdCdot,
		"int":          cmdInt,
		"left":         cmdLeft,
		"right":        cmdRight,
		"displaystyle": cmdSpace,
		"textstyle":    cmdSpace,
		"big":          cmdSpace,
		"Big":          cmdSpace,
		"bigg":         cmdSpace,
		"quad":         cmdSpace,
		",":            cmdSpace,
		"!":            cmdSpace,
		";":            cmdSpace,
		":":            cmdSpace,
	} {
		t.Add(name, cmd)
	}
	return t
}

func lookupCommand(name string) (command, bool) {
	node, ok := lexicon.Find(name)
	if !ok {
		return cmdNone, false
	}
	return node.Meta().(command), true
}

// lex splits src into tokens. The returned slice always ends with tokEOF.
func lex(src string) ([]token, error) {
	tokens := make([]token, 0, len(src)/2+1)
	rs := []rune(src)
	offsets := make([]int, 0, len(rs)+1)
	for i := range src {
		offsets = append(offsets, i)
	}
	offsets = append(offsets, len(src))
	i := 0
	for i < len(rs) {
		r := rs[i]
		pos := offsets[i]
		switch {
		case unicode.IsSpace(r):
			i++
		case unicode.IsDigit(r) || (r == '.' && i+1 < len(rs) && unicode.IsDigit(rs[i+1])):
			j := i
			seenDot := false
			for j < len(rs) && (unicode.IsDigit(rs[j]) || (rs[j] == '.' && !seenDot)) {
				if rs[j] == '.' {
					seenDot = true
				}
				j++
			}
			tokens = append(tokens, token{kind: tokNumber, text: string(rs[i:j]), pos: pos})
			i = j
		case unicode.IsLetter(r):
			j := i
			for j < len(rs) && unicode.IsLetter(rs[j]) {
				j++
			}
			tokens = append(tokens, token{kind: tokIdent, text: string(rs[i:j]), pos: pos})
			i = j
		case r == '\\':
			j := i + 1
			if j >= len(rs) {
				return nil, &SyntaxError{Offset: pos, Msg: "dangling backslash"}
			}
			if unicode.IsLetter(rs[j]) {
				for j < len(rs) && unicode.IsLetter(rs[j]) {
					j++
				}
			} else {
				j++ // control symbol, e.g. \,
			}
			name := string(rs[i+1 : j])
			cmd, ok := lookupCommand(name)
			if !ok {
				return nil, &SyntaxError{Offset: pos, Msg: fmt.Sprintf("unknown command \\%s", name)}
			}
			kind := tokCommand
			if cmd == cmdSpace || cmd == cmdLeft || cmd == cmdRight {
				kind = tokLayout
			}
			tokens = append(tokens, token{kind: kind, text: name, cmd: cmd, pos: pos})
			i = j
		default:
			kind, ok := punctuation[r]
			if !ok {
				return nil, &SyntaxError{Offset: pos, Msg: fmt.Sprintf("unexpected character %q", r)}
			}
			tokens = append(tokens, token{kind: kind, text: string(r), pos: pos})
			i++
		}
	}
	tokens = append(tokens, token{kind: tokEOF, pos: len(src)})
	return tokens, nil
}

var punctuation = map[rune]tokenKind{
	'+': tokPlus,
	'-': tokMinus,
	'*': tokStar,
	'/': tokSlash,
	'!': tokBang,
	'^': tokCaret,
	'_': tokUnderscore,
	'(': tokLParen,
	')': tokRParen,
	'{': tokLBrace,
	'}': tokRBrace,
}
