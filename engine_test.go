package calc_test

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/zephyrtronium/calc"
)

func TestEvaluate(t *testing.T) {
	cases := []struct {
		name string
		src  string
		r    float64
	}{
		{"precedence", "2 + 3 * 4", 14},
		{"parens", "(2 + 3) * 4", 20},
		{"pow-right", "2 ^ 3 ^ 2", 512},
		{"starstar-right", "2 ** 3 ** 2", 512},
		{"sub-left", "10 - 2 - 3", 5},
		{"div-left", "100 / 10 / 5", 2},
		{"sqrt", "sqrt(16)", 4},
		{"sqrt-bare", "sqrt 16 + 9", 13},
		{"sin", "sin(0)", 0},
		{"cos", "cos(0)", 1},
		{"tan", "tan(0)", 0},
		{"sin-pi", "sin(pi / 2)", 1},
		{"log", "log(1000)", 3},
		{"ln", "ln(e)", 1},
		{"exp", "exp(0)", 1},
		{"exp-bare", "exp 1", math.E},
		{"sci", "1e3 + 1", 1001},
		{"sci-neg", "2.5E-1 * 4", 1},
		{"dots", ".5 + 5.", 5.5},
		{"root", "4 ^ 0.5", 2},
		{"neg-pow", "-2 ^ 2", -4},
		{"pow-neg", "2 ^ -1", 0.5},
		{"neg-group", "-(3 + 4)", -7},
		{"sub-neg", "2 - -3", 5},
		{"pos", "+5", 5},
		{"pi", "2 * pi", 2 * math.Pi},
		{"nested", "sqrt(ln(exp(16)))", 4},
		{"whitespace", "\t1+\n2 ", 3},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			r, err := calc.Evaluate(c.src)
			require.NoError(t, err, "evaluating %q", c.src)
			assert.InDelta(t, c.r, r, 1e-12, "evaluating %q", c.src)
		})
	}
}

func TestEvaluateSpecials(t *testing.T) {
	cases := []struct {
		name string
		src  string
		ok   func(float64) bool
	}{
		{"sqrt-neg", "sqrt(-1)", math.IsNaN},
		{"pow-frac-neg", "(-8) ^ (1/3)", math.IsNaN},
		{"pow-zero-neg", "0 ^ -1", func(x float64) bool { return math.IsInf(x, 1) }},
		{"zero-zero", "0 ^ 0", func(x float64) bool { return x == 1 }},
		{"ln-zero", "ln(0)", func(x float64) bool { return math.IsInf(x, -1) }},
		{"overflow", "1e400", func(x float64) bool { return math.IsInf(x, 1) }},
		{"mul-overflow", "1e300 * 1e300", func(x float64) bool { return math.IsInf(x, 1) }},
		{"div-overflow", "1e300 / 1e-300", func(x float64) bool { return math.IsInf(x, 1) }},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			r, err := calc.Evaluate(c.src)
			require.NoError(t, err, "evaluating %q", c.src)
			assert.True(t, c.ok(r), "evaluating %q gave %g", c.src, r)
		})
	}
}

func TestEvaluateErrors(t *testing.T) {
	type check func(t *testing.T, err error)
	lexerr := func(kind calc.LexErrorKind, col int) check {
		return func(t *testing.T, err error) {
			var e *calc.LexError
			require.True(t, errors.As(err, &e), "want *LexError, got %v", err)
			assert.Equal(t, kind, e.Kind)
			assert.Equal(t, col, e.Col)
		}
	}
	brackerr := func(col int, open bool) check {
		return func(t *testing.T, err error) {
			var e *calc.BracketError
			require.True(t, errors.As(err, &e), "want *BracketError, got %v", err)
			assert.Equal(t, col, e.Col)
			assert.Equal(t, open, e.Open)
		}
	}
	evalerr := func(kind calc.EvalErrorKind) check {
		return func(t *testing.T, err error) {
			var e *calc.EvalError
			require.True(t, errors.As(err, &e), "want *EvalError, got %v", err)
			assert.Equal(t, kind, e.Kind)
		}
	}
	cases := []struct {
		name  string
		src   string
		stage calc.Stage
		check check
	}{
		{"div-zero", "10 / 0", calc.StageEval, evalerr(calc.DivideByZero)},
		{"div-zero-expr", "1 / (2 - 2)", calc.StageEval, evalerr(calc.DivideByZero)},
		{"dangling", "2 +", calc.StageEval, evalerr(calc.MissingOperands)},
		{"leading-mul", "* 2", calc.StageEval, evalerr(calc.MissingOperands)},
		{"adjacent", "2 3", calc.StageEval, evalerr(calc.MalformedExpression)},
		{"empty", "", calc.StageEval, evalerr(calc.MalformedExpression)},
		{"blank", "   ", calc.StageEval, evalerr(calc.MalformedExpression)},
		{"empty-parens", "()", calc.StageEval, evalerr(calc.MalformedExpression)},
		{"empty-call", "sqrt()", calc.StageEval, evalerr(calc.MissingOperand)},
		{"bare-sign", "-", calc.StageEval, evalerr(calc.MissingOperand)},
		{"unknown", "x + 1", calc.StageLex, lexerr(calc.UnknownIdentifier, 1)},
		{"invalid", "2 $ 3", calc.StageLex, lexerr(calc.InvalidCharacter, 3)},
		{"malformed", "1.2.3", calc.StageLex, lexerr(calc.MalformedNumber, 1)},
		{"unclosed", "(1 + 2", calc.StageConvert, brackerr(1, true)},
		{"unopened", "1 + 2)", calc.StageConvert, brackerr(6, false)},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			r, err := calc.Evaluate(c.src)
			assert.Zero(t, r)
			var eerr *calc.EngineError
			require.True(t, errors.As(err, &eerr), "want *EngineError, got %v", err)
			assert.Equal(t, c.stage, eerr.Stage)
			assert.Contains(t, err.Error(), c.stage.String()+": ")
			c.check(t, err)
		})
	}
}

func TestEngineErrorMessage(t *testing.T) {
	_, err := calc.Evaluate("10 / 0")
	require.Error(t, err)
	assert.Equal(t, `eval: 4: divide by zero for "/"`, err.Error())
	var ierr calc.InputError
	require.True(t, errors.As(err, &ierr))
	assert.Equal(t, 4, ierr.Pos())
}

func TestOptions(t *testing.T) {
	t.Run("const", func(t *testing.T) {
		r, err := calc.Evaluate("tau / 2", calc.WithConst("tau", 2*math.Pi))
		require.NoError(t, err)
		assert.Equal(t, math.Pi, r)
	})
	t.Run("func", func(t *testing.T) {
		r, err := calc.Evaluate("cbrt(27) + 1", calc.WithFunc("cbrt", math.Cbrt))
		require.NoError(t, err)
		assert.InDelta(t, 4.0, r, 1e-12)
	})
	t.Run("remove-func", func(t *testing.T) {
		_, err := calc.Evaluate("sin(0)", calc.WithFunc("sin", nil))
		var lerr *calc.LexError
		require.True(t, errors.As(err, &lerr), "want *LexError, got %v", err)
		assert.Equal(t, calc.UnknownIdentifier, lerr.Kind)
	})
	t.Run("replace-func", func(t *testing.T) {
		deg := func(x float64) float64 { return math.Sin(x * math.Pi / 180) }
		r, err := calc.Evaluate("sin 90", calc.WithFunc("sin", deg))
		require.NoError(t, err)
		assert.Equal(t, 1.0, r)
	})
	t.Run("no-constants", func(t *testing.T) {
		e := calc.New(calc.NoConstants(), calc.WithConst("g", 9.81))
		r, err := e.Evaluate("2 * g")
		require.NoError(t, err)
		assert.Equal(t, 19.62, r)
		_, err = e.Evaluate("pi")
		var lerr *calc.LexError
		require.True(t, errors.As(err, &lerr), "want *LexError, got %v", err)
		assert.Equal(t, calc.UnknownIdentifier, lerr.Kind)
	})
	t.Run("no-constants-after", func(t *testing.T) {
		e := calc.New(calc.WithConst("g", 9.81), calc.NoConstants())
		_, err := e.Evaluate("g")
		assert.Error(t, err)
	})
	t.Run("defaults-unchanged", func(t *testing.T) {
		calc.New(calc.NoConstants(), calc.WithFunc("sqrt", nil))
		r, err := calc.Evaluate("sqrt(pi * pi)")
		require.NoError(t, err)
		assert.InDelta(t, math.Pi, r, 1e-12)
	})
	t.Run("nil-option", func(t *testing.T) {
		r, err := calc.Evaluate("e", nil)
		require.NoError(t, err)
		assert.Equal(t, math.E, r)
	})
	t.Run("bad-names", func(t *testing.T) {
		assert.Panics(t, func() { calc.WithConst("x2", 1) })
		assert.Panics(t, func() { calc.WithFunc("", math.Abs) })
	})
}

func TestCompile(t *testing.T) {
	e := calc.New()
	pf, err := e.Compile("2 * (3 + 4)")
	require.NoError(t, err)
	assert.Equal(t, "2 3 4 + *", calc.FormatRPN(pf))
	for i := 0; i < 3; i++ {
		r, err := e.EvalPostfix(pf)
		require.NoError(t, err)
		assert.Equal(t, 14.0, r)
	}

	_, err = e.Compile("(")
	var eerr *calc.EngineError
	require.True(t, errors.As(err, &eerr))
	assert.Equal(t, calc.StageConvert, eerr.Stage)
}

func TestEvaluateIdempotent(t *testing.T) {
	srcs := []string{
		"2 + 3 * 4",
		"sin(1) / 3",
		"sqrt(-2)",
		"exp(ln(7)) ^ 0.3",
		"1e-300 * 1e-300",
		"-0 * 1",
	}
	e := calc.New()
	for _, src := range srcs {
		a, err := e.Evaluate(src)
		require.NoError(t, err)
		b, err := e.Evaluate(src)
		require.NoError(t, err)
		assert.Equal(t, math.Float64bits(a), math.Float64bits(b), "evaluating %q twice", src)
	}
}

func TestEvaluateConcurrent(t *testing.T) {
	srcs := []string{
		"2 + 3 * 4",
		"(2 + 3) * 4",
		"2 ^ 3 ^ 2",
		"sqrt(16) + sin(pi / 6)",
		"log(12345) - ln(42)",
		"-exp(2) / 7",
	}
	e := calc.New(calc.WithConst("tau", 2*math.Pi))
	want := make([]float64, len(srcs))
	for i, src := range srcs {
		r, err := e.Evaluate(src)
		require.NoError(t, err)
		want[i] = r
	}
	var g errgroup.Group
	for w := 0; w < 32; w++ {
		g.Go(func() error {
			for k := 0; k < 100; k++ {
				for i, src := range srcs {
					r, err := e.Evaluate(src)
					if err != nil {
						return err
					}
					if math.Float64bits(r) != math.Float64bits(want[i]) {
						return errors.New("different result for " + src)
					}
				}
			}
			return nil
		})
	}
	assert.NoError(t, g.Wait())
}

func BenchmarkEvaluate(b *testing.B) {
	e := calc.New()
	b.Run("simple", func(b *testing.B) {
		b.ReportAllocs()
		for i := 0; i < b.N; i++ {
			e.Evaluate("2 + 3 * 4")
		}
	})
	b.Run("funcs", func(b *testing.B) {
		b.ReportAllocs()
		for i := 0; i < b.N; i++ {
			e.Evaluate("sqrt(sin(pi / 4) ^ 2 + cos(pi / 4) ^ 2) * exp(-1e-3)")
		}
	})
	b.Run("compiled", func(b *testing.B) {
		pf, err := e.Compile("sqrt(sin(pi / 4) ^ 2 + cos(pi / 4) ^ 2) * exp(-1e-3)")
		if err != nil {
			b.Fatal(err)
		}
		b.ReportAllocs()
		b.ResetTimer()
		for i := 0; i < b.N; i++ {
			e.EvalPostfix(pf)
		}
	})
}
