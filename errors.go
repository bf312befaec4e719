package safexpr

import "errors"

// Kinds of failure. Every error returned by Parse, Eval, Evaluate, and
// SlopeAt matches exactly one of these with errors.Is.
var (
	// ErrSyntax is matched by errors for input outside the grammar.
	ErrSyntax = errors.New("syntax error")
	// ErrName is matched by errors for names that are neither a bound x
	// nor a whitelisted constant.
	ErrName = errors.New("name error")
	// ErrCall is matched by errors for calls to unknown functions or with
	// the wrong number of arguments.
	ErrCall = errors.New("call error")
	// ErrArithmetic is matched by errors for scalar division or modulo by
	// zero and for zero raised to a negative power.
	ErrArithmetic = errors.New("arithmetic error")
	// ErrDomain is matched by errors for scalar arguments outside the
	// domain of a function or operator.
	ErrDomain = errors.New("domain error")
)
