package calc

import (
	"errors"
	"strconv"
)

// NameError is an error from a lookup for a name that is not defined in the
// environment.
type NameError struct {
	// Name is the name that was missing.
	Name string
}

func (err *NameError) Error() string {
	return "undefined name: " + strconv.Quote(err.Name)
}

// ProtectedNameError is an error from an attempt to redefine a builtin name.
type ProtectedNameError struct {
	// Name is the protected name.
	Name string
}

func (err *ProtectedNameError) Error() string {
	return "cannot redefine protected name " + strconv.Quote(err.Name)
}

// ArityError is an error from calling a function with too many arguments.
type ArityError struct {
	// Func is the name of the function, or empty for anonymous functions.
	Func string
	// Want is the number of parameters the function declares.
	Want int
	// Got is the number of arguments supplied.
	Got int
}

func (err *ArityError) Error() string {
	f := err.Func
	if f == "" {
		f = "function"
	}
	return "too many arguments: " + f + " takes " + strconv.Itoa(err.Want) + ", got " + strconv.Itoa(err.Got)
}

// TypeError is an error from an operation applied to values of types it
// cannot handle.
type TypeError struct {
	// Op names the operation.
	Op string
	// X is the first operand.
	X Value
	// Y is the second operand for binary operations, or nil.
	Y Value
	// Reason optionally explains the mismatch.
	Reason string
}

func (err *TypeError) Error() string {
	r := err.Op + ": cannot use " + typeName(err.X)
	if err.Y != nil {
		r += " and " + typeName(err.Y)
	}
	if err.Reason != "" {
		r += " (" + err.Reason + ")"
	}
	return r
}

// DomainError is an error returned when a function is called on arguments
// outside its domain.
type DomainError struct {
	// X is the out-of-domain argument.
	X Value
	// Arg is the 1-based index of the argument.
	Arg int
	// Func is a name identifying the function.
	Func string
}

func (err *DomainError) Error() string {
	r := "outside domain"
	if err.X != nil {
		r = err.X.String() + " " + r
	}
	if err.Func != "" {
		r += " of " + err.Func
	}
	if err.Arg > 0 {
		r += " (argument " + strconv.Itoa(err.Arg) + ")"
	}
	return r
}

// SyntaxError is an error from evaluating a malformed definition or lambda.
type SyntaxError struct {
	// Expr is the offending expression.
	Expr Expr
	// Msg describes the problem.
	Msg string
}

func (err *SyntaxError) Error() string {
	if err.Expr == nil {
		return "syntax error: " + err.Msg
	}
	return "syntax error in " + strconv.Quote(err.Expr.String()) + ": " + err.Msg
}

// ErrDepth is returned when function calls nest too deeply, usually because of
// unbounded recursion.
var ErrDepth = errors.New("maximum call depth exceeded")
