package safexpr

import (
	"math"
	"strconv"
)

// X is the only name that can be bound at evaluation time.
const X = "x"

// Eval evaluates the expression with x bound per b. The result is a vector
// if x is bound to a vector, and a scalar otherwise.
//
// Operations on scalars fail on division or modulo by zero and on arguments
// outside a function's domain. Operations involving a vector follow IEEE-754
// instead, so their results may contain infinities and NaNs.
//
// Eval has no side effects; evaluating the same expression and binding twice
// gives identical results.
func (e *Expr) Eval(b Binding) (Value, error) {
	return e.n.eval(b)
}

// Evaluate is a shortcut to parse and evaluate a string expression.
func Evaluate(src string, b Binding) (Value, error) {
	e, err := Parse(src)
	if err != nil {
		return Value{}, err
	}
	return e.Eval(b)
}

// eval computes the node's value.
func (n *node) eval(b Binding) (Value, error) {
	switch n.kind {
	case nodeNum:
		return Scalar(n.num), nil
	case nodeName:
		if n.name == X {
			if v, ok := b.Lookup(); ok {
				return v, nil
			}
			return Value{}, &NameError{Name: n.name}
		}
		c, ok := LookupConstant(n.name)
		if !ok {
			return Value{}, &NameError{Name: n.name}
		}
		return Scalar(c), nil
	case nodeCall:
		f, ok := LookupFunc(n.name)
		if !ok {
			return Value{}, &CallError{Func: n.name, Len: len(n.args), Want: -1}
		}
		if len(n.args) != f.Arity() {
			return Value{}, &CallError{Func: n.name, Len: len(n.args), Want: f.Arity()}
		}
		invoc := make([]Value, len(n.args))
		for i, a := range n.args {
			v, err := a.eval(b)
			if err != nil {
				return Value{}, err
			}
			invoc[i] = v
		}
		return f.Call(invoc...)
	case nodeNeg:
		v, err := n.left.eval(b)
		if err != nil {
			return Value{}, err
		}
		if !v.vec {
			return Scalar(-v.x), nil
		}
		r := make([]float64, len(v.v))
		for i, x := range v.v {
			r[i] = -x
		}
		return vector(r), nil
	case nodeAdd, nodeSub, nodeMul, nodeDiv, nodeMod, nodePow:
		l, err := n.left.eval(b)
		if err != nil {
			return Value{}, err
		}
		r, err := n.right.eval(b)
		if err != nil {
			return Value{}, err
		}
		if !l.vec && !r.vec {
			x, err := scalarop(n.kind, l.x, r.x)
			if err != nil {
				return Value{}, err
			}
			return Scalar(x), nil
		}
		// Every vector comes from x, so two vectors always have the same
		// length.
		k := l.Len()
		if !l.vec {
			k = r.Len()
		}
		out := make([]float64, k)
		for i := range out {
			out[i] = ieeeop(n.kind, l.At(i), r.At(i))
		}
		return vector(out), nil
	default:
		panic("safexpr: invalid AST node " + n.kind.String())
	}
}

// scalarop applies a binary operator to scalars, failing where the result
// would not be a real number.
func scalarop(op nodeKind, x, y float64) (float64, error) {
	switch op {
	case nodeDiv:
		if y == 0 {
			return 0, &ArithmeticError{Op: "/", X: x}
		}
	case nodeMod:
		if y == 0 {
			return 0, &ArithmeticError{Op: "%", X: x}
		}
	case nodePow:
		if x == 0 && y < 0 {
			return 0, &ArithmeticError{Op: PowOperator, X: y}
		}
		// A negative base with a fractional exponent is complex.
		if x < 0 && !math.IsInf(y, 0) && y != math.Trunc(y) {
			return 0, &DomainError{X: x, Arg: 1, Func: PowOperator}
		}
	}
	return ieeeop(op, x, y), nil
}

// ieeeop applies a binary operator under IEEE-754 rules.
func ieeeop(op nodeKind, x, y float64) float64 {
	switch op {
	case nodeAdd:
		return x + y
	case nodeSub:
		return x - y
	case nodeMul:
		return x * y
	case nodeDiv:
		return x / y
	case nodeMod:
		return floorMod(x, y)
	case nodePow:
		return math.Pow(x, y)
	default:
		panic("safexpr: invalid binary operator " + op.String())
	}
}

// floorMod computes x modulo y with the sign of y.
func floorMod(x, y float64) float64 {
	r := math.Mod(x, y)
	if r != 0 && (r < 0) != (y < 0) {
		r += y
	}
	if r == 0 {
		r = math.Copysign(0, y)
	}
	return r
}

// NameError is an error from a lookup for a name that is neither a bound x
// nor a whitelisted constant. It matches ErrName.
type NameError struct {
	// Name is the name that was missing.
	Name string
}

func (err *NameError) Error() string {
	if err.Name == X {
		return "undefined variable: " + strconv.Quote(err.Name) + " is not bound"
	}
	return "undefined variable: " + strconv.Quote(err.Name)
}

func (err *NameError) Is(target error) bool {
	return target == ErrName
}

// CallError is an error indicating a call to a function that is not
// whitelisted or a call with the wrong number of arguments. It matches
// ErrCall.
type CallError struct {
	// Func is the function name that was called.
	Func string
	// Len is the number of arguments in the call.
	Len int
	// Want is the number of arguments the function takes, or -1 if there is
	// no such function.
	Want int
}

func (err *CallError) Error() string {
	if err.Want < 0 {
		return "unknown function: " + strconv.Quote(err.Func)
	}
	return "cannot call " + err.Func + " with " + strconv.Itoa(err.Len) + " arguments (want " + strconv.Itoa(err.Want) + ")"
}

func (err *CallError) Is(target error) bool {
	return target == ErrCall
}

// ArithmeticError is an error indicating a scalar division or modulo by zero,
// or zero raised to a negative power. It matches ErrArithmetic.
type ArithmeticError struct {
	// Op is the operator.
	Op string
	// X is the other operand: the dividend, or the exponent for powers.
	X float64
}

func (err *ArithmeticError) Error() string {
	x := strconv.FormatFloat(err.X, 'g', -1, 64)
	switch err.Op {
	case "/":
		return "division by zero: " + x + " / 0"
	case "%":
		return "modulo by zero: " + x + " % 0"
	default:
		return "zero raised to negative power " + x
	}
}

func (err *ArithmeticError) Is(target error) bool {
	return target == ErrArithmetic
}
