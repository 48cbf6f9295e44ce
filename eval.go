package calc

import (
	"math"
	"strconv"
)

// EvalPostfix evaluates a postfix token sequence such as the one produced by
// Postfix. Exactly one value must remain on the stack once every token has
// been applied.
func (e *Engine) EvalPostfix(tokens []Token) (float64, error) {
	stack := make([]float64, 0, len(tokens)/2+1)
	for _, tok := range tokens {
		switch tok.Kind {
		case TokenNum:
			stack = append(stack, tok.Num)
		case TokenFunc:
			fn := e.funcs[tok.Text]
			if fn == nil {
				return 0, &EvalError{Kind: UnknownFunction, Op: tok.Text, Col: tok.Col}
			}
			if len(stack) == 0 {
				return 0, &EvalError{Kind: MissingOperand, Op: tok.Text, Col: tok.Col}
			}
			x := &stack[len(stack)-1]
			*x = fn(*x)
		case TokenOp:
			op := mustop(tok)
			if tok.Unary {
				if len(stack) == 0 {
					return 0, &EvalError{Kind: MissingOperand, Op: tok.Text, Col: tok.Col}
				}
				if op.op == opNeg {
					x := &stack[len(stack)-1]
					*x = -*x
				}
				continue
			}
			if len(stack) < 2 {
				return 0, &EvalError{Kind: MissingOperands, Op: tok.Text, Col: tok.Col}
			}
			b := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			a := &stack[len(stack)-1]
			switch op.op {
			case opAdd:
				*a += b
			case opSub:
				*a -= b
			case opMul:
				*a *= b
			case opDiv:
				if b == 0 {
					return 0, &EvalError{Kind: DivideByZero, Op: tok.Text, Col: tok.Col}
				}
				*a /= b
			case opPow:
				*a = math.Pow(*a, b)
			default:
				panic("calc: invalid binary operator " + tok.String())
			}
		default:
			// Parentheses never survive conversion.
			return 0, &EvalError{Kind: MalformedExpression, Col: tok.Col}
		}
	}
	if len(stack) != 1 {
		col := 1
		if len(tokens) > 0 {
			col = tokens[len(tokens)-1].Col
		}
		return 0, &EvalError{Kind: MalformedExpression, Col: col, Residue: len(stack)}
	}
	return stack[0], nil
}

// EvalErrorKind classifies an EvalError.
type EvalErrorKind int8

const (
	// MissingOperand is a function or sign applied to an empty stack.
	MissingOperand EvalErrorKind = iota + 1
	// MissingOperands is a binary operator with fewer than two values on the
	// stack.
	MissingOperands
	// DivideByZero is a division whose divisor is zero.
	DivideByZero
	// MalformedExpression is a postfix sequence that does not reduce to
	// exactly one value.
	MalformedExpression
	// UnknownFunction is a function name with no registered function.
	UnknownFunction
)

func (k EvalErrorKind) String() string {
	switch k {
	case MissingOperand:
		return "missing operand"
	case MissingOperands:
		return "missing operands"
	case DivideByZero:
		return "divide by zero"
	case MalformedExpression:
		return "malformed expression"
	case UnknownFunction:
		return "unknown function"
	default:
		return "EvalErrorKind(" + strconv.Itoa(int(k)) + ")"
	}
}

// EvalError is an error found while evaluating a postfix sequence. It
// implements InputError.
type EvalError struct {
	Kind EvalErrorKind
	// Op is the operator symbol or function name being applied, if any.
	Op string
	// Col is the position of the token being applied, or of the last token
	// for MalformedExpression.
	Col int
	// Residue is the number of values left on the stack for
	// MalformedExpression.
	Residue int
}

func (err *EvalError) Error() string {
	msg := err.Kind.String()
	switch {
	case err.Op != "":
		msg += " for " + strconv.Quote(err.Op)
	case err.Kind == MalformedExpression && err.Residue == 0:
		msg += ": no value"
	case err.Kind == MalformedExpression:
		msg += ": " + strconv.Itoa(err.Residue) + " values left"
	}
	return errpos(err.Col, msg)
}

func (err *EvalError) Pos() int {
	return err.Col
}
