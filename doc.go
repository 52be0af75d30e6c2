// Package ratcalc implements an exact rational calculator.
//
// Numbers are fractions of arbitrary-precision integers kept in lowest terms,
// so "1/3 * 3" is exactly 1. Expressions use + - * / % on rationals and
// & | ^ ~ on non-negative integers. Note that the bitwise operators bind more
// loosely than addition: "1 + 2 & 3" is "(1 + 2) & 3".
//
// A line of the form "name = expr" binds a variable in an Env. Evaluating
// with Stateless instead of an Env disallows variables entirely.
//
package ratcalc
