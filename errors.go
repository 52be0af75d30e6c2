package ratcalc

import (
	"errors"
	"strconv"
)

// Errors from arithmetic on Numbers. During evaluation, these are wrapped in
// an *EvalError giving the position of the operator that failed.
var (
	// ErrDivisionByZero is the error for a quotient with a zero divisor.
	ErrDivisionByZero = errors.New("division by zero")
	// ErrModuloByZero is the error for a remainder with a zero divisor.
	ErrModuloByZero = errors.New("modulo by zero")
	// ErrFractionalRemainder is the error for a remainder where either
	// operand is not an integer.
	ErrFractionalRemainder = errors.New("cannot get remainder of a fraction")
	// ErrBitwiseOnFraction matches every *BitwiseError with errors.Is.
	ErrBitwiseOnFraction = errors.New("bitwise operation on a fraction")
	// ErrNoVariables is the error for a variable reference or assignment
	// while evaluating without an environment.
	ErrNoVariables = errors.New("variables cannot be used in this mode")
)

// LexError indicates a rune that does not begin any token. It implements
// InputError.
type LexError struct {
	// Char is the invalid rune.
	Char rune
	// Col is the position of the invalid rune.
	Col int
}

func (err *LexError) Error() string {
	return "unknown character: " + strconv.QuoteRune(err.Char)
}

func (err *LexError) Pos() int {
	return err.Col
}

// SyntaxError is an error indicating a token that the grammar does not allow
// where it appears. It implements InputError.
type SyntaxError struct {
	// Col is the position of the unexpected token, or one past the end of the
	// input if the input ended early.
	Col int
	// Want describes what the parser expected, e.g. "')'".
	Want string
	// Got is the text of the unexpected token, or empty at the end of the
	// input.
	Got string
}

func (err *SyntaxError) Error() string {
	return "expected " + err.Want
}

func (err *SyntaxError) Pos() int {
	return err.Col
}

// NameError is an error from a lookup for a variable that is missing from the
// environment. It implements InputError.
type NameError struct {
	// Name is the name that was missing.
	Name string
	// Col is the position of the reference.
	Col int
}

func (err *NameError) Error() string {
	return strconv.Quote(err.Name) + " has not been defined"
}

func (err *NameError) Pos() int {
	return err.Col
}

// BitwiseError is an error from a bitwise operation with an operand that is
// negative or not an integer.
type BitwiseError struct {
	// Op is the operator, one of TokenNot, TokenAnd, TokenOr, or TokenXor.
	Op TokenKind
}

func (err *BitwiseError) Error() string {
	switch err.Op {
	case TokenNot:
		return "cannot invert a fraction"
	case TokenAnd:
		return "cannot bitwise and a fraction"
	case TokenOr:
		return "cannot inclusive or a fraction"
	case TokenXor:
		return "cannot exclusive or a fraction"
	default:
		return "cannot apply " + err.Op.String() + " to a fraction"
	}
}

// Is reports whether target is ErrBitwiseOnFraction.
func (err *BitwiseError) Is(target error) bool {
	return target == ErrBitwiseOnFraction
}

// EvalError is an error from applying an operator or resolving a name during
// evaluation. It implements InputError and unwraps to the cause.
type EvalError struct {
	// Col is the position of the operator or name.
	Col int
	// Err is the cause.
	Err error
}

func (err *EvalError) Error() string {
	return err.Err.Error()
}

func (err *EvalError) Unwrap() error {
	return err.Err
}

func (err *EvalError) Pos() int {
	return err.Col
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
	_ InputError = (*SyntaxError)(nil)
	_ InputError = (*NameError)(nil)
	_ InputError = (*EvalError)(nil)
)
