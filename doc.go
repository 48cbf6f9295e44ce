// Package calc implements a double-precision calculator for infix arithmetic.
//
// Evaluation runs in three stages. The lexer turns text into tokens, the
// shunting-yard converter reorders them into postfix (reverse Polish) order
// according to operator precedence and associativity, and the evaluator
// reduces the postfix sequence on a stack of float64 values.
//
// The usual binary operators + - * / are supported, along with ^ (or **) for
// exponentiation, which is right-associative so that "2^3^2" is 512. A + or -
// in prefix position is a unary sign: "-2^2" is -4. The functions sin, cos,
// tan, sqrt, log (base 10), ln and exp each take one argument, written either
// as "sqrt(16)" or "sqrt 16". The constants pi and e are substituted by the
// lexer unless disabled with NoConstants.
//
// Floating-point edge cases such as sqrt(-1) or 0^-1 produce NaN or infinite
// results rather than errors. Division by a zero divisor is an error.
package calc
