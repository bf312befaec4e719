// Package safexpr implements a sandboxed calculator for user-typed math.
//
// Expressions are written the way a calculator user would type them:
// "2*x + 1", "sin(x)^2", "-0.5*x**2 + 4". The grammar is deliberately small.
// It has numbers, the names in a fixed whitelist, one free variable x,
// the operators + - * / % and ^ (or **), parentheses, and calls to
// whitelisted functions of one argument. "-2^2" is "-(2^2)" and "2^3^2" is
// "2^(3^2)". Anything else is a syntax error, and there is no way for an
// expression to reach anything but the whitelist.
//
// The variable x may be bound to a single number or to a vector of numbers.
// Scalar evaluation reports division by zero and out-of-domain function
// arguments as errors. Vector evaluation follows IEEE-754 instead and yields
// infinities and NaNs, which suits plotting.
//
// Errors can be classified with errors.Is against ErrSyntax, ErrName,
// ErrCall, ErrArithmetic, and ErrDomain.
package safexpr
