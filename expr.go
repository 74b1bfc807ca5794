package calc

import (
	"strings"
)

// Expr is an expression tree node. The set of Expr types is closed; see the
// types in this file. Expression trees are pure data: evaluating one never
// modifies it.
type Expr interface {
	String() string
	expr()
}

// Literal is a constant value.
type Literal struct {
	Value Value
}

// SymbolRef is a reference to a named value.
type SymbolRef struct {
	Name string
}

// Apply is a juxtaposition of two expressions, like f(x) or 2(x+1). Whether
// it is a function call or a multiplication is decided during evaluation.
type Apply struct {
	Callee Expr
	Arg    Expr
}

// Define evaluates Body and stores the result under Target, which must be a
// *SymbolRef.
type Define struct {
	Target Expr
	Body   Expr
}

// DefineFunction creates a function with the given parameter signature and
// stores it under Name. Params must be a *SymbolRef or a *ListAccumulate of
// *SymbolRef.
type DefineFunction struct {
	Name   string
	Params Expr
	Body   Expr
}

// Lambda creates an anonymous function. Params is as for DefineFunction.
type Lambda struct {
	Params Expr
	Body   Expr
}

// UnaryOp applies Op to the value of Operand. Template is used only for
// display; each "{x}" in it is replaced with the operand.
type UnaryOp struct {
	Template string
	Operand  Expr
	Op       UnaryFunc
}

// BinaryOp applies Op to the values of Left and Right. Template is used only
// for display; "{l}" and "{r}" are replaced with the operands.
type BinaryOp struct {
	Template string
	Left     Expr
	Right    Expr
	Op       BinaryFunc
}

// ListAccumulate is a comma-separated sequence of expressions. If Vector is
// set, it evaluates to a *Vector; otherwise, to a *List.
type ListAccumulate struct {
	Elems  []Expr
	Vector bool
}

// Native is the body of a builtin function. Fn receives the call's arguments
// directly, one per parameter of the function, without binding any names.
type Native struct {
	Name string
	Fn   NativeFunc
}

// NativeFunc implements a builtin function.
type NativeFunc func(env *Env, args []Value) (Value, error)

func (*Literal) expr()        {}
func (*SymbolRef) expr()      {}
func (*Apply) expr()          {}
func (*Define) expr()         {}
func (*DefineFunction) expr() {}
func (*Lambda) expr()         {}
func (*UnaryOp) expr()        {}
func (*BinaryOp) expr()       {}
func (*ListAccumulate) expr() {}
func (*Native) expr()         {}

func (e *Literal) String() string {
	if f, ok := e.Value.(*Function); ok && f.Name == "" {
		return "(" + f.String() + ")"
	}
	if f, ok := e.Value.(*Function); ok {
		return f.Name
	}
	return e.Value.String()
}

func (e *SymbolRef) String() string { return e.Name }

func (e *Apply) String() string {
	callee := e.Callee.String()
	if needsGroup(e.Callee) {
		callee = "(" + callee + ")"
	}
	if l, ok := e.Arg.(*ListAccumulate); ok {
		return callee + l.String()
	}
	return callee + "(" + e.Arg.String() + ")"
}

func (e *Define) String() string {
	return e.Target.String() + " := " + e.Body.String()
}

func (e *DefineFunction) String() string {
	params := e.Params.String()
	if _, ok := e.Params.(*ListAccumulate); !ok {
		params = "(" + params + ")"
	}
	return e.Name + params + " := " + e.Body.String()
}

func (e *Lambda) String() string {
	return e.Params.String() + " -> " + e.Body.String()
}

func (e *UnaryOp) String() string {
	return strings.ReplaceAll(e.Template, "{x}", group(e.Operand))
}

func (e *BinaryOp) String() string {
	r := strings.NewReplacer("{l}", group(e.Left), "{r}", group(e.Right))
	return r.Replace(e.Template)
}

func (e *ListAccumulate) String() string {
	var b strings.Builder
	if e.Vector {
		b.WriteByte('[')
	} else {
		b.WriteByte('(')
	}
	for i, x := range e.Elems {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(x.String())
	}
	if e.Vector {
		b.WriteByte(']')
	} else {
		b.WriteByte(')')
	}
	return b.String()
}

func (e *Native) String() string {
	return "<builtin " + e.Name + ">"
}

// needsGroup returns whether e must be bracketed when it appears as an
// operand.
func needsGroup(e Expr) bool {
	switch e := e.(type) {
	case *BinaryOp, *Define, *DefineFunction, *Lambda:
		return true
	case *UnaryOp:
		return !strings.HasSuffix(e.Template, ")")
	}
	return false
}

// group formats e as an operand.
func group(e Expr) string {
	if needsGroup(e) {
		return "(" + e.String() + ")"
	}
	return e.String()
}

// Vars returns the sorted names referenced by an expression. Names bound as
// function parameters within the expression are included.
func Vars(e Expr) []string {
	seen := make(map[string]bool)
	walk(e, func(e Expr) {
		if s, ok := e.(*SymbolRef); ok {
			seen[s.Name] = true
		}
	})
	var names []string
	for k := range seen {
		names = append(names, k)
	}
	sortstrs(names)
	return names
}

// walk calls f on every node of e in pre-order.
func walk(e Expr, f func(Expr)) {
	f(e)
	switch e := e.(type) {
	case *Literal, *SymbolRef, *Native:
		// leaf
	case *Apply:
		walk(e.Callee, f)
		walk(e.Arg, f)
	case *Define:
		walk(e.Target, f)
		walk(e.Body, f)
	case *DefineFunction:
		walk(e.Params, f)
		walk(e.Body, f)
	case *Lambda:
		walk(e.Params, f)
		walk(e.Body, f)
	case *UnaryOp:
		walk(e.Operand, f)
	case *BinaryOp:
		walk(e.Left, f)
		walk(e.Right, f)
	case *ListAccumulate:
		for _, x := range e.Elems {
			walk(x, f)
		}
	default:
		panic("calc: invalid expression node")
	}
}

// sortstrs sorts a string slice without using package sort because that has
// reflection and allocation problems.
func sortstrs(names []string) {
	for i := 1; i < len(names); i++ {
		for j := i; j > 0 && names[j] < names[j-1]; j-- {
			names[j], names[j-1] = names[j-1], names[j]
		}
	}
}
