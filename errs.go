package calc

import "strconv"

// BracketError is an error indicating an unmatched parenthesis. It implements
// InputError.
type BracketError struct {
	// Col is the position of the unmatched parenthesis.
	Col int
	// Open is true if the unmatched parenthesis is an open one, i.e. the
	// expression ended before it was closed.
	Open bool
}

func (err *BracketError) Error() string {
	if err.Open {
		return errpos(err.Col, "open parenthesis with no close parenthesis")
	}
	return errpos(err.Col, "close parenthesis with no open parenthesis")
}

func (err *BracketError) Pos() int {
	return err.Col
}

// Stage names the part of the evaluation pipeline that failed.
type Stage int8

const (
	StageLex Stage = iota + 1
	StageConvert
	StageEval
)

func (s Stage) String() string {
	switch s {
	case StageLex:
		return "lex"
	case StageConvert:
		return "convert"
	case StageEval:
		return "eval"
	default:
		return "Stage(" + strconv.Itoa(int(s)) + ")"
	}
}

// EngineError is the error returned from Engine.Evaluate. It records which
// stage failed and unwraps to that stage's error, so errors.As finds the
// underlying *LexError, *BracketError, or *EvalError.
type EngineError struct {
	Stage Stage
	Err   error
}

func (err *EngineError) Error() string {
	return err.Stage.String() + ": " + err.Err.Error()
}

func (err *EngineError) Unwrap() error {
	return err.Err
}

// Pos returns the position of the underlying error, or 0 if it has none.
func (err *EngineError) Pos() int {
	if p, ok := err.Err.(InputError); ok {
		return p.Pos()
	}
	return 0
}

// errpos is a shortcut to create an error message with a position.
func errpos(pos int, msg string) string {
	return strconv.Itoa(pos) + ": " + msg
}

// InputError is an error with position information. Every error resulting from
// invalid input implements InputError.
type InputError interface {
	error
	// Pos returns the position of the error as the number of runes up to and
	// including the start of the token that caused the error.
	Pos() int
}

var (
	_ InputError = (*LexError)(nil)
	_ InputError = (*BracketError)(nil)
	_ InputError = (*EvalError)(nil)
	_ InputError = (*EngineError)(nil)
)
