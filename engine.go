package calc

// Engine evaluates expressions with a fixed set of functions and constants.
// An Engine is never modified after New returns, so it is safe to use
// concurrently.
type Engine struct {
	funcs  map[string]Func
	consts map[string]float64
}

// Option is an option used when creating an engine.
type Option interface {
	engineOption(*Engine)
}

type (
	funcopt struct {
		name string
		fn   Func
	}
	constopt struct {
		name string
		val  float64
	}
	noconstsopt struct{}
)

// WithFunc adds a unary function to the engine, replacing any existing one
// with the same name. To remove a default function, pass nil for fn. The name
// must consist only of letters.
func WithFunc(name string, fn Func) Option {
	checkname(name)
	return funcopt{name, fn}
}

func (o funcopt) engineOption(e *Engine) {
	if o.fn == nil {
		delete(e.funcs, o.name)
		return
	}
	e.funcs[o.name] = o.fn
}

// WithConst adds a named constant to the engine. The name must consist only of
// letters.
func WithConst(name string, val float64) Option {
	checkname(name)
	return constopt{name, val}
}

func (o constopt) engineOption(e *Engine) {
	e.consts[o.name] = o.val
}

// NoConstants disables substitution of the constants defined so far,
// including the defaults pi and e. Constants added by later options are still
// used.
func NoConstants() Option {
	return noconstsopt{}
}

func (noconstsopt) engineOption(e *Engine) {
	for k := range e.consts {
		delete(e.consts, k)
	}
}

// New creates an engine with the default functions and constants, then
// applies the given options in order.
func New(opts ...Option) *Engine {
	e := Engine{
		funcs:  make(map[string]Func, len(globalfuncs)),
		consts: make(map[string]float64, len(globalconsts)),
	}
	for k, v := range globalfuncs {
		e.funcs[k] = v
	}
	for k, v := range globalconsts {
		e.consts[k] = v
	}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt.engineOption(&e)
	}
	return &e
}

// Evaluate lexes, converts, and evaluates an expression. Any failure is
// returned as an *EngineError naming the stage that failed.
func (e *Engine) Evaluate(src string) (float64, error) {
	pf, err := e.Compile(src)
	if err != nil {
		return 0, err
	}
	r, err := e.EvalPostfix(pf)
	if err != nil {
		return 0, &EngineError{Stage: StageEval, Err: err}
	}
	return r, nil
}

// Compile lexes and converts an expression without evaluating it. The result
// may be passed to EvalPostfix any number of times.
func (e *Engine) Compile(src string) ([]Token, error) {
	toks, err := e.Lex(src)
	if err != nil {
		return nil, &EngineError{Stage: StageLex, Err: err}
	}
	pf, err := Postfix(toks)
	if err != nil {
		return nil, &EngineError{Stage: StageConvert, Err: err}
	}
	return pf, nil
}

var defaultEngine = New()

// Evaluate is a shortcut to evaluate an expression with an engine created
// with the given options.
func Evaluate(src string, opts ...Option) (float64, error) {
	if len(opts) == 0 {
		return defaultEngine.Evaluate(src)
	}
	return New(opts...).Evaluate(src)
}
