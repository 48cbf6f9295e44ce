package calc

type opKind int8

const (
	opNone opKind = iota
	opAdd
	opSub
	opMul
	opDiv
	opPow
	opNeg
	opPos
)

type operator struct {
	// prec is the precedence value. Higher is more binding.
	prec int8
	// right indicates right-associativity.
	right bool
	// op is the operation the evaluator performs.
	op opKind
}

// yields reports whether an operator already on the conversion stack must be
// output before next is pushed, i.e. whether p binds at least as tightly as
// next, given next's associativity.
func (p operator) yields(next operator) bool {
	if p.prec != next.prec {
		return p.prec > next.prec
	}
	return !next.right
}

// binop gets a binary operator for a token string. If there is no such binary
// operator, then the result has an op of opNone.
func binop(text string) operator {
	switch text {
	case "+":
		return operator{1, false, opAdd}
	case "-":
		return operator{1, false, opSub}
	case "*":
		return operator{5, false, opMul}
	case "/":
		return operator{5, false, opDiv}
	case "^", "**":
		return operator{15, true, opPow}
	default:
		return operator{}
	}
}

// unop gets a unary operator for a token string. If there is no such unary
// operator, then the result has an op of opNone.
func unop(text string) operator {
	switch text {
	case "+":
		return operator{10, true, opPos}
	case "-":
		return operator{10, true, opNeg}
	default:
		return operator{}
	}
}

// mustop gets the operator for an operator token. Every operator the lexer
// produces has an entry, so a failed lookup panics.
func mustop(tok Token) operator {
	var p operator
	if tok.Unary {
		p = unop(tok.Text)
	} else {
		p = binop(tok.Text)
	}
	if p.op == opNone {
		panic("calc: no operator for token " + tok.String())
	}
	return p
}
