package safexpr

import (
	"strconv"
	"strings"
)

// Value is the result of evaluating an expression. It is either a single
// number or a vector of numbers. The zero Value is the scalar 0.
type Value struct {
	x   float64
	v   []float64
	vec bool
}

// Scalar creates a scalar value.
func Scalar(x float64) Value {
	return Value{x: x}
}

// Vector creates a vector value holding a copy of xs.
func Vector(xs []float64) Value {
	return Value{v: append(make([]float64, 0, len(xs)), xs...), vec: true}
}

// vector wraps xs without copying.
func vector(xs []float64) Value {
	return Value{v: xs, vec: true}
}

// IsVector reports whether v is a vector.
func (v Value) IsVector() bool {
	return v.vec
}

// Float returns the value of a scalar. For a vector, it returns the first
// element, or NaN if the vector is empty.
func (v Value) Float() float64 {
	if !v.vec {
		return v.x
	}
	if len(v.v) == 0 {
		return nan
	}
	return v.v[0]
}

// Floats returns a copy of the elements of a vector. For a scalar, the
// result has one element.
func (v Value) Floats() []float64 {
	if !v.vec {
		return []float64{v.x}
	}
	return append(make([]float64, 0, len(v.v)), v.v...)
}

// Len returns the number of elements in a vector, or 1 for a scalar.
func (v Value) Len() int {
	if !v.vec {
		return 1
	}
	return len(v.v)
}

// At returns the i-th element of a vector. A scalar has the same value at
// every index.
func (v Value) At(i int) float64 {
	if !v.vec {
		return v.x
	}
	return v.v[i]
}

func (v Value) String() string {
	if !v.vec {
		return strconv.FormatFloat(v.x, 'g', -1, 64)
	}
	var b strings.Builder
	b.WriteByte('[')
	for i, x := range v.v {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(strconv.FormatFloat(x, 'g', -1, 64))
	}
	b.WriteByte(']')
	return b.String()
}

// Binding associates x with a value for one evaluation. The zero Binding
// leaves x unbound.
type Binding struct {
	x  Value
	ok bool
}

// Bind binds x to a scalar.
func Bind(x float64) Binding {
	return Binding{x: Scalar(x), ok: true}
}

// BindVector binds x to a vector. The evaluation result is then a vector of
// the same length.
func BindVector(xs []float64) Binding {
	return Binding{x: Vector(xs), ok: true}
}

// BindValue binds x to an existing value.
func BindValue(x Value) Binding {
	return Binding{x: x, ok: true}
}

// Lookup returns the bound value of x, if any.
func (b Binding) Lookup() (Value, bool) {
	return b.x, b.ok
}
