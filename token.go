package calc

import (
	"strconv"
)

// TokenKind identifies the variant of a Token.
type TokenKind int8

const (
	TokenNone TokenKind = iota
	// TokenNum is a numeric literal or a substituted constant. Num holds the
	// value.
	TokenNum
	// TokenOp is an operator. Text holds the symbol and Unary reports whether
	// the operator is a prefix sign.
	TokenOp
	// TokenFunc is a function name. Text holds the name.
	TokenFunc
	// TokenOpen is an open parenthesis.
	TokenOpen
	// TokenClose is a close parenthesis.
	TokenClose
)

func (k TokenKind) String() string {
	switch k {
	case TokenNone:
		return "None"
	case TokenNum:
		return "Num"
	case TokenOp:
		return "Op"
	case TokenFunc:
		return "Func"
	case TokenOpen:
		return "Open"
	case TokenClose:
		return "Close"
	default:
		return "TokenKind(" + strconv.Itoa(int(k)) + ")"
	}
}

// Token is a single lexical element of an expression. Which fields are
// meaningful depends on Kind.
type Token struct {
	Kind TokenKind
	// Num is the value of a TokenNum.
	Num float64
	// Text is the operator symbol of a TokenOp or the name of a TokenFunc.
	// For a TokenNum, it is the source text of the literal or constant.
	Text string
	// Unary marks a TokenOp in prefix position. The lexer never sets it; the
	// converter does when it decides the operator is a sign.
	Unary bool
	// Col is the 1-based rune column at which the token starts.
	Col int
}

func (t Token) String() string {
	var s string
	switch t.Kind {
	case TokenNum:
		s = strconv.FormatFloat(t.Num, 'g', -1, 64)
	case TokenOp:
		s = t.Text
		if t.Unary {
			s = "u" + s
		}
	case TokenFunc:
		s = t.Text
	case TokenOpen:
		s = "("
	case TokenClose:
		s = ")"
	}
	return t.Kind.String() + ":" + s + "@" + strconv.Itoa(t.Col)
}

// FormatRPN renders a token sequence as space-separated text, e.g. "2 3 4 * +".
// Unary signs are written as "neg" and "pos".
func FormatRPN(tokens []Token) string {
	b := make([]byte, 0, 4*len(tokens))
	for i, t := range tokens {
		if i > 0 {
			b = append(b, ' ')
		}
		switch t.Kind {
		case TokenNum:
			b = strconv.AppendFloat(b, t.Num, 'g', -1, 64)
		case TokenOp:
			switch {
			case t.Unary && t.Text == "-":
				b = append(b, "neg"...)
			case t.Unary:
				b = append(b, "pos"...)
			default:
				b = append(b, t.Text...)
			}
		case TokenFunc:
			b = append(b, t.Text...)
		case TokenOpen:
			b = append(b, '(')
		case TokenClose:
			b = append(b, ')')
		default:
			b = append(b, '?')
		}
	}
	return string(b)
}
