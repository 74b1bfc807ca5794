// Package calc implements an arbitrary-precision calculator language with
// first-class functions.
//
// Numbers are exact rationals until an operation has no exact result, at
// which point they become approximations at the environment's precision.
// Complex numbers, vectors, and functions are values too. Arithmetic on a
// function creates a new function, so "min(f, g)" and "sin + cos" are
// functions that can be called or passed around.
//
// The syntax is intended to be similar to math you'd write in your notes.
// "2 x y" is a multiplication of three terms, but "f(x)" calls f if f is a
// function. Which one happens is decided when the expression is evaluated.
// "f(x) := x^2" defines a function, "x -> x^2" is an anonymous one, and
// "[1, 2, 3]" is a vector. Calling a function of one parameter on a vector
// calls it on each element.
//
// An Env holds the names defined during a session. Each result is stored
// under the name "ans".
package calc
