package safexpr

import (
	"math"
	"strconv"
)

var nan = math.NaN()

// Func is a whitelisted function from reals to reals. It applies
// elementwise to vectors.
type Func struct {
	name  string
	arity int
	f     func(float64) float64
	// dom reports whether a scalar argument is inside the domain of f. A nil
	// dom accepts everything.
	dom func(float64) bool
}

// Name returns the name under which the function is whitelisted.
func (f Func) Name() string {
	return f.name
}

// Arity returns the number of arguments the function takes.
func (f Func) Arity() int {
	return f.arity
}

// Call applies the function. A scalar argument outside the function's domain
// is a DomainError; vector arguments never fail, and out-of-domain elements
// become NaN or infinite.
func (f Func) Call(args ...Value) (Value, error) {
	if len(args) != f.arity {
		return Value{}, &CallError{Func: f.name, Len: len(args), Want: f.arity}
	}
	in := args[0]
	if !in.vec {
		if f.dom != nil && !f.dom(in.x) {
			return Value{}, &DomainError{X: in.x, Arg: 1, Func: f.name}
		}
		return Scalar(f.f(in.x)), nil
	}
	r := make([]float64, len(in.v))
	for i, x := range in.v {
		r[i] = f.f(x)
	}
	return vector(r), nil
}

func monadic(name string, f func(float64) float64, dom func(float64) bool) Func {
	return Func{name: name, arity: 1, f: f, dom: dom}
}

// Domains. NaN is inside every domain so that it propagates quietly.
func finite(x float64) bool   { return !math.IsInf(x, 0) }
func nonneg(x float64) bool   { return !(x < 0) }
func positive(x float64) bool { return !(x <= 0) }
func unit(x float64) bool     { return !(x < -1 || x > 1) }

// globalconsts and globalfuncs are the whole vocabulary. They are filled once
// here and never written afterward, so concurrent reads are safe.
var globalconsts = map[string]float64{
	"pi":  math.Pi,
	"e":   math.E,
	"tau": 2 * math.Pi,
}

var globalfuncs = map[string]Func{
	"sin":    monadic("sin", math.Sin, finite),
	"cos":    monadic("cos", math.Cos, finite),
	"tan":    monadic("tan", math.Tan, finite),
	"asin":   monadic("asin", math.Asin, unit),
	"acos":   monadic("acos", math.Acos, unit),
	"atan":   monadic("atan", math.Atan, nil),
	"arcsin": monadic("arcsin", math.Asin, unit),
	"arccos": monadic("arccos", math.Acos, unit),
	"arctan": monadic("arctan", math.Atan, nil),
	"sqrt":   monadic("sqrt", math.Sqrt, nonneg),
	"log":    monadic("log", math.Log, positive),
	"log10":  monadic("log10", math.Log10, positive),
	"exp":    monadic("exp", math.Exp, nil),
	"abs":    monadic("abs", math.Abs, nil),
}

// LookupConstant returns the value of a whitelisted constant.
func LookupConstant(name string) (float64, bool) {
	v, ok := globalconsts[name]
	return v, ok
}

// LookupFunc returns a whitelisted function.
func LookupFunc(name string) (Func, bool) {
	f, ok := globalfuncs[name]
	return f, ok
}

// Vocabulary returns the sorted names of the whitelisted constants and
// functions. The evaluator never lists the whitelist; this is for showing it
// to users.
func Vocabulary() (consts, funcs []string) {
	consts = make([]string, 0, len(globalconsts))
	for k := range globalconsts {
		consts = append(consts, k)
	}
	funcs = make([]string, 0, len(globalfuncs))
	for k := range globalfuncs {
		funcs = append(funcs, k)
	}
	sortstrs(consts)
	sortstrs(funcs)
	return consts, funcs
}

// DomainError is an error returned when a function or operator is called on
// a scalar argument outside its domain. It matches ErrDomain.
type DomainError struct {
	// X is the out-of-domain argument.
	X float64
	// Arg is the 1-based index of the argument.
	Arg int
	// Func is a name identifying the function.
	Func string
}

func (err *DomainError) Error() string {
	r := strconv.FormatFloat(err.X, 'g', -1, 64) + " outside domain"
	if err.Func != "" {
		r += " of " + err.Func
	}
	if err.Arg > 0 {
		r += " (argument " + strconv.Itoa(err.Arg) + ")"
	}
	return r
}

func (err *DomainError) Is(target error) bool {
	return target == ErrDomain
}
