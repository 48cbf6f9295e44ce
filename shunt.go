package calc

// Postfix converts a token sequence from infix to postfix order using the
// shunting-yard algorithm. The result contains no parentheses.
//
// A + or - at the start of the input, after an operator, after an open
// parenthesis, or after a function name is a sign and is marked Unary in the
// result. Functions bind to the term that follows them: "sqrt 4 + 5" is
// "(sqrt 4) + 5". Postfix does not check operand counts, so e.g. "2 +"
// converts successfully to "2 +" and fails only when evaluated. Unmatched
// parentheses in either direction are a *BracketError.
func Postfix(tokens []Token) ([]Token, error) {
	out := make([]Token, 0, len(tokens))
	var stack []Token
	// prefix is whether an operator at this point has no left operand.
	prefix := true
	for _, tok := range tokens {
		switch tok.Kind {
		case TokenNum:
			out = append(out, tok)
			prefix = false
		case TokenFunc:
			stack = append(stack, tok)
			prefix = true
		case TokenOp:
			if prefix && unop(tok.Text).op != opNone {
				// A sign has nothing to its left to reduce, so it never pops.
				tok.Unary = true
				stack = append(stack, tok)
				continue
			}
			op := mustop(tok)
			for len(stack) > 0 {
				top := stack[len(stack)-1]
				if top.Kind != TokenFunc && (top.Kind != TokenOp || !mustop(top).yields(op)) {
					break
				}
				out = append(out, top)
				stack = stack[:len(stack)-1]
			}
			stack = append(stack, tok)
			prefix = true
		case TokenOpen:
			stack = append(stack, tok)
			prefix = true
		case TokenClose:
			for len(stack) > 0 && stack[len(stack)-1].Kind != TokenOpen {
				out = append(out, stack[len(stack)-1])
				stack = stack[:len(stack)-1]
			}
			if len(stack) == 0 {
				return nil, &BracketError{Col: tok.Col}
			}
			stack = stack[:len(stack)-1]
			if len(stack) > 0 && stack[len(stack)-1].Kind == TokenFunc {
				out = append(out, stack[len(stack)-1])
				stack = stack[:len(stack)-1]
			}
			prefix = false
		default:
			panic("calc: invalid token " + tok.String())
		}
	}
	for len(stack) > 0 {
		top := stack[len(stack)-1]
		if top.Kind == TokenOpen {
			return nil, &BracketError{Col: top.Col, Open: true}
		}
		out = append(out, top)
		stack = stack[:len(stack)-1]
	}
	return out, nil
}
