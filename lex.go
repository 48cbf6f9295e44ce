package calc

import (
	"errors"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Operators contains the runes which are considered to be operators. The
// two-rune operator ** is also recognized and means the same as ^.
const Operators = "+-*/^"

type lexer struct {
	src    string
	off    int
	col    int
	funcs  map[string]Func
	consts map[string]float64
}

// Lex converts an expression into a sequence of tokens. Identifiers are
// resolved against the engine's functions and constants; a constant becomes a
// TokenNum holding its value. The result contains no whitespace and is never
// partially filled: any error discards the tokens scanned so far.
func (e *Engine) Lex(src string) ([]Token, error) {
	l := lexer{
		src:    src,
		col:    1,
		funcs:  e.funcs,
		consts: e.consts,
	}
	var toks []Token
	for {
		tok, err := l.next()
		if err != nil {
			return nil, err
		}
		if tok.Kind == TokenNone {
			return toks, nil
		}
		toks = append(toks, tok)
	}
}

// advance moves the lexer forward by sz bytes, which span one rune.
func (l *lexer) advance(sz int) {
	l.off += sz
	l.col++
}

// next scans the next token. At the end of the input, the result is a token
// of kind TokenNone with a nil error.
func (l *lexer) next() (Token, error) {
	for l.off < len(l.src) {
		r, sz := utf8.DecodeRuneInString(l.src[l.off:])
		tok := Token{Col: l.col}
		switch {
		case unicode.IsSpace(r):
			l.advance(sz)
			continue
		case '0' <= r && r <= '9', r == '.':
			return l.scanNum()
		case unicode.IsLetter(r):
			return l.scanIdent()
		case r == '(':
			l.advance(sz)
			tok.Kind = TokenOpen
			return tok, nil
		case r == ')':
			l.advance(sz)
			tok.Kind = TokenClose
			return tok, nil
		case r == '*':
			l.advance(sz)
			tok.Kind = TokenOp
			tok.Text = "*"
			if l.off < len(l.src) && l.src[l.off] == '*' {
				l.advance(1)
				tok.Text = "**"
			}
			return tok, nil
		case strings.ContainsRune(Operators, r):
			l.advance(sz)
			tok.Kind = TokenOp
			tok.Text = string(r)
			return tok, nil
		default:
			return Token{}, &LexError{Kind: InvalidCharacter, Text: string(r), Col: l.col}
		}
	}
	return Token{}, nil
}

func isdigit(c byte) bool {
	return '0' <= c && c <= '9'
}

// scanNum scans a numeric literal. The mantissa is the maximal run of digits
// and dots; it must contain at most one dot and at least one digit. An
// exponent is consumed only if the marker is followed by digits, optionally
// signed, so that "2e" scans as the number 2 followed by the identifier e.
func (l *lexer) scanNum() (Token, error) {
	start, col := l.off, l.col
	dots := 0
	for l.off < len(l.src) && (isdigit(l.src[l.off]) || l.src[l.off] == '.') {
		if l.src[l.off] == '.' {
			dots++
		}
		l.advance(1)
	}
	if dots > 1 || l.off-start == dots {
		return Token{}, &LexError{Kind: MalformedNumber, Text: l.src[start:l.off], Col: col}
	}
	if l.off < len(l.src) && (l.src[l.off] == 'e' || l.src[l.off] == 'E') {
		k := l.off + 1
		if k < len(l.src) && (l.src[k] == '+' || l.src[k] == '-') {
			k++
		}
		if k < len(l.src) && isdigit(l.src[k]) {
			for k < len(l.src) && isdigit(l.src[k]) {
				k++
			}
			l.col += k - l.off
			l.off = k
		}
	}
	text := l.src[start:l.off]
	v, err := strconv.ParseFloat(text, 64)
	// Out of range literals become ±Inf or 0, which is what we want.
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return Token{}, &LexError{Kind: MalformedNumber, Text: text, Col: col}
	}
	return Token{Kind: TokenNum, Num: v, Text: text, Col: col}, nil
}

// scanIdent scans a maximal run of letters and resolves it as a function or
// constant name.
func (l *lexer) scanIdent() (Token, error) {
	start, col := l.off, l.col
	for l.off < len(l.src) {
		r, sz := utf8.DecodeRuneInString(l.src[l.off:])
		if !unicode.IsLetter(r) {
			break
		}
		l.advance(sz)
	}
	name := l.src[start:l.off]
	if _, ok := l.funcs[name]; ok {
		return Token{Kind: TokenFunc, Text: name, Col: col}, nil
	}
	if v, ok := l.consts[name]; ok {
		return Token{Kind: TokenNum, Num: v, Text: name, Col: col}, nil
	}
	return Token{}, &LexError{Kind: UnknownIdentifier, Text: name, Col: col}
}

// LexErrorKind classifies a LexError.
type LexErrorKind int8

const (
	// InvalidCharacter is a rune that cannot start any token.
	InvalidCharacter LexErrorKind = iota + 1
	// UnknownIdentifier is a name that is neither a function nor a constant.
	UnknownIdentifier
	// MalformedNumber is a numeric literal with too many decimal points or no
	// digits.
	MalformedNumber
)

func (k LexErrorKind) String() string {
	switch k {
	case InvalidCharacter:
		return "invalid character"
	case UnknownIdentifier:
		return "unknown identifier"
	case MalformedNumber:
		return "malformed number"
	default:
		return "LexErrorKind(" + strconv.Itoa(int(k)) + ")"
	}
}

// LexError indicates an invalid token. It implements InputError.
type LexError struct {
	Kind LexErrorKind
	// Text is the offending rune, identifier, or literal.
	Text string
	// Col is the column at which the offending token starts.
	Col int
}

func (err *LexError) Error() string {
	return errpos(err.Col, err.Kind.String()+" "+strconv.Quote(err.Text))
}

func (err *LexError) Pos() int {
	return err.Col
}
