package calc

import "strconv"

// TokenError is an error indicating a token, or the end of the input, where
// a particular grammar production was expected. It implements InputError.
type TokenError struct {
	// Col is the position of the unexpected token.
	Col int
	// Found is the unexpected token, or the empty string for the end of the
	// expression.
	Found string
	// After describes what preceded the unexpected token, if it matters for
	// the message, e.g. "unary '-'".
	After string
	// Want describes what the parser expected.
	Want string
}

func (err *TokenError) Error() string {
	var s string
	if err.Found == "" {
		s = "unexpected end of expression"
	} else {
		s = "unexpected " + quote(err.Found)
	}
	if err.After != "" {
		s += " after " + err.After
	}
	return errpos(err.Col, s+", expected "+err.Want)
}

func (err *TokenError) Pos() int {
	return err.Col
}

// BracketError is an error indicating a group that was opened but never
// closed. It implements InputError.
type BracketError struct {
	// Col is the position of the opening bracket.
	Col int
	// Left is the opening bracket, either ( or |.
	Left string
	// Unmatched is the number of brackets left open.
	Unmatched int
}

func (err *BracketError) Error() string {
	if err.Left == "|" {
		return errpos(err.Col, "unclosed absolute value bar '|'")
	}
	n := strconv.Itoa(err.Unmatched)
	return errpos(err.Col, "unclosed parenthesis: "+n+" unmatched "+quote(err.Left)+", expected "+n+" closing ')' before end of expression")
}

func (err *BracketError) Pos() int {
	return err.Col
}

// OperatorError is an error indicating a token in operator position that is
// not understood by the parser. It implements InputError.
type OperatorError struct {
	// Col is the position of the operator.
	Col int
	// Operator is the token that was not understood.
	Operator string
}

func (err *OperatorError) Error() string {
	return errpos(err.Col, "unknown operator "+quote(err.Operator))
}

func (err *OperatorError) Pos() int {
	return err.Col
}

// NameError is an error indicating a name that is neither a function nor a
// variable defined in the environment, and which is not being assigned. It
// implements InputError.
type NameError struct {
	// Col is the position of the name.
	Col int
	// Name is the name that was missing.
	Name string
}

func (err *NameError) Error() string {
	return errpos(err.Col, "unknown variable "+strconv.Quote(err.Name))
}

func (err *NameError) Pos() int {
	return err.Col
}

// AssignError is an error indicating an assignment to a constant. It
// implements InputError.
type AssignError struct {
	// Col is the position of the name.
	Col int
	// Name is the constant's name.
	Name string
}

func (err *AssignError) Error() string {
	return errpos(err.Col, "cannot assign to constant "+strconv.Quote(err.Name))
}

func (err *AssignError) Pos() int {
	return err.Col
}

// CallError is an error indicating a function call with the wrong number of
// arguments. It implements InputError.
type CallError struct {
	// Col is the position of the call's open parenthesis.
	Col int
	// Func is the function name that was called.
	Func string
	// Len is the number of arguments the function call tried to imply.
	Len int
}

func (err *CallError) Error() string {
	return errpos(err.Col, "cannot call "+err.Func+" with "+strconv.Itoa(err.Len)+" arguments")
}

func (err *CallError) Pos() int {
	return err.Col
}

// EmptyExpressionError is an error indicating an empty expression or
// subexpression.
type EmptyExpressionError struct {
	// Col is the position of the token that ended the subexpression.
	Col int
	// End is the token that ended the subexpression.
	End string
}

func (err *EmptyExpressionError) Error() string {
	if err.End == "" {
		if err.Col <= 1 {
			return errpos(err.Col, "no expression")
		}
		return errpos(err.Col, "no expression at end")
	}
	return errpos(err.Col, "no expression up to "+quote(err.End))
}

func (err *EmptyExpressionError) Pos() int {
	return err.Col
}

// errpos is a shortcut to create an error message with a position.
func errpos(pos int, msg string) string {
	return strconv.Itoa(pos) + ": " + msg
}

// quote wraps token text in single quotes.
func quote(s string) string {
	return "'" + s + "'"
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
	_ InputError = (*TokenError)(nil)
	_ InputError = (*BracketError)(nil)
	_ InputError = (*OperatorError)(nil)
	_ InputError = (*NameError)(nil)
	_ InputError = (*AssignError)(nil)
	_ InputError = (*CallError)(nil)
	_ InputError = (*EmptyExpressionError)(nil)
	_ InputError = (*LexError)(nil)
)
