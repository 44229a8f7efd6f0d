package latex

import "fmt"

// CheckBalanced verifies that every grouping marker in src is closed by its
// partner in proper nesting order: ( ), { }, \left \right, \lfloor \rfloor
// and \lceil \rceil.
func CheckBalanced(src string) error {
	tokens, err := lex(src)
	if err != nil {
		return err
	}
	type opener struct {
		want string
		pos  int
	}
	var stack []opener
	closeWith := func(t token, got string) error {
		if len(stack) == 0 {
			return &SyntaxError{Offset: t.pos, Msg: fmt.Sprintf("unmatched %s", got)}
		}
		top := stack[len(stack)-1]
		if top.want != got {
			return &SyntaxError{Offset: t.pos, Msg: fmt.Sprintf("found %s, expected %s", got, top.want)}
		}
		stack = stack[:len(stack)-1]
		return nil
	}
	delimited := false // the previous token was \left or \right
	for _, t := range tokens {
		if delimited {
			delimited = false
			if t.kind == tokLParen || t.kind == tokRParen {
				continue // the delimiter belongs to \left or \right
			}
		}
		switch t.kind {
		case tokLParen:
			stack = append(stack, opener{")", t.pos})
		case tokLBrace:
			stack = append(stack, opener{"}", t.pos})
		case tokRParen, tokRBrace:
			if err := closeWith(t, t.text); err != nil {
				return err
			}
		case tokCommand, tokLayout:
			switch t.cmd {
			case cmdLeft:
				stack = append(stack, opener{`\right`, t.pos})
				delimited = true
			case cmdLFloor:
				stack = append(stack, opener{`\rfloor`, t.pos})
			case cmdLCeil:
				stack = append(stack, opener{`\rceil`, t.pos})
			case cmdRight, cmdRFloor, cmdRCeil:
				if err := closeWith(t, `\`+t.text); err != nil {
					return err
				}
				delimited = t.cmd == cmdRight
			}
		}
	}
	if len(stack) > 0 {
		top := stack[len(stack)-1]
		return &SyntaxError{Offset: top.pos, Msg: fmt.Sprintf("missing %s", top.want)}
	}
	return nil
}
