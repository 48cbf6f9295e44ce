package calc

import (
	"math"
	"strconv"
	"unicode"
	"unicode/utf8"
)

// Func is a function from reals to reals. Arguments outside the function's
// domain should produce NaN rather than panicking.
type Func func(x float64) float64

// Trigonometric functions work in radians.
var globalfuncs = map[string]Func{
	"sin":  math.Sin,
	"cos":  math.Cos,
	"tan":  math.Tan,
	"sqrt": math.Sqrt,
	"log":  math.Log10,
	"ln":   math.Log,
	"exp":  math.Exp,
}

var globalconsts = map[string]float64{
	"pi": math.Pi,
	"e":  math.E,
}

// FuncNames returns the names of the default functions in sorted order.
func FuncNames() []string {
	return sortedkeys(globalfuncs)
}

// ConstNames returns the names of the default constants in sorted order.
func ConstNames() []string {
	return sortedkeys(globalconsts)
}

func sortedkeys[V any](m map[string]V) []string {
	names := make([]string, 0, len(m))
	for k := range m {
		names = append(names, k)
	}
	sortstrs(names)
	return names
}

// sortstrs sorts a short string slice by insertion.
func sortstrs(names []string) {
	for i := 1; i < len(names); i++ {
		for j := i; j > 0 && names[j] < names[j-1]; j-- {
			names[j], names[j-1] = names[j-1], names[j]
		}
	}
}

// checkname panics if name could never be produced by the lexer as an
// identifier.
func checkname(name string) {
	if name == "" {
		panic("calc: empty name")
	}
	for len(name) > 0 {
		r, sz := utf8.DecodeRuneInString(name)
		if !unicode.IsLetter(r) {
			panic("calc: invalid name " + strconv.Quote(name))
		}
		name = name[sz:]
	}
}
