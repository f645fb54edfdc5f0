// Package beval implements a line-oriented arithmetic calculator.
//
// A line is first split into tokens by Tokenize, then evaluated by a
// recursive-descent evaluator with the usual precedence: "^" binds tightest, then
// unary signs, then "*", "/" and "%", then "+" and "-". So -2^2 is -4. Identifiers name
// built-in functions of one argument, like "sqrt(2)" or "torad(180)". There
// are no variables, and parentheses appear only around function arguments.
//
// Evaluate computes in float64. EvaluateBig uses arbitrary-precision
// floating-point values instead. Calc ties both to the handling of one input
// line, including the "exit" command.
package beval
