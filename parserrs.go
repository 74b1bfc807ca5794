package calc

import (
	"strconv"
)

// InputError is an error caused by malformed input text. Every error from
// Parse other than I/O failures implements it.
type InputError interface {
	error
	// Pos returns the 1-based rune position at which the error was found.
	Pos() int
}

// LexError is a rune sequence that forms no token.
type LexError struct {
	// Text is what the lexer had scanned of the token, including the rune
	// that made it invalid.
	Text string
	// Kind is "number", "operator", or empty if the first rune started no
	// kind of token.
	Kind string
	// Col is the number of runes scanned, up to and including the error.
	Col int
}

// OperatorError is an operator token in a position where it has no meaning,
// such as a binary-only operator with no left operand.
type OperatorError struct {
	Col      int
	Operator string
	// Unary is set if the parser expected a prefix operator.
	Unary bool
}

// BracketError is an unbalanced or mismatched bracket. Left is empty for a
// close bracket with no opener, and Right is empty for an unclosed one.
type BracketError struct {
	Col   int
	Left  string
	Right string
}

// SeparatorError is a comma or semicolon outside brackets, or one with no
// element before it.
type SeparatorError struct {
	Col int
	Sep string
}

// EmptyExpressionError is a missing operand or an empty input. End is the
// token that was found instead, or empty at the end of input.
type EmptyExpressionError struct {
	Col int
	End string
}

func (err *LexError) Error() string {
	what := "invalid token"
	if err.Kind != "" {
		what = "invalid " + err.Kind
	}
	return at(err.Col, what+" "+strconv.Quote(err.Text))
}

func (err *OperatorError) Error() string {
	if err.Unary {
		return at(err.Col, strconv.Quote(err.Operator)+" is not a prefix operator")
	}
	return at(err.Col, strconv.Quote(err.Operator)+" is not a binary operator")
}

func (err *BracketError) Error() string {
	switch {
	case err.Left == "":
		return at(err.Col, "unmatched "+err.Right)
	case err.Right == "":
		return at(err.Col, "unclosed "+err.Left)
	default:
		return at(err.Col, err.Left+" closed by "+err.Right)
	}
}

func (err *SeparatorError) Error() string {
	return at(err.Col, "unexpected "+strconv.Quote(err.Sep))
}

func (err *EmptyExpressionError) Error() string {
	switch {
	case err.End != "":
		return at(err.Col, "missing expression before "+strconv.Quote(err.End))
	case err.Col <= 1:
		return at(err.Col, "empty expression")
	default:
		return at(err.Col, "missing expression at end of input")
	}
}

func (err *LexError) Pos() int             { return err.Col }
func (err *OperatorError) Pos() int        { return err.Col }
func (err *BracketError) Pos() int         { return err.Col }
func (err *SeparatorError) Pos() int       { return err.Col }
func (err *EmptyExpressionError) Pos() int { return err.Col }

// at prefixes a message with a position.
func at(pos int, msg string) string {
	return "col " + strconv.Itoa(pos) + ": " + msg
}

var (
	_ InputError = (*LexError)(nil)
	_ InputError = (*OperatorError)(nil)
	_ InputError = (*BracketError)(nil)
	_ InputError = (*SeparatorError)(nil)
	_ InputError = (*EmptyExpressionError)(nil)
)
