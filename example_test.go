package safexpr_test

import (
	"errors"
	"fmt"

	"github.com/zephyrtronium/safexpr"
)

func ExampleEvaluate() {
	v, err := safexpr.Evaluate("2*x+1", safexpr.Bind(3))
	fmt.Println(v, err)
	v, err = safexpr.Evaluate("1/x", safexpr.BindVector([]float64{0, 1, 2}))
	fmt.Println(v, err)
	_, err = safexpr.Evaluate("1/0", safexpr.Binding{})
	fmt.Println(err)
	_, err = safexpr.Evaluate("__import__('os')", safexpr.Binding{})
	fmt.Println(errors.Is(err, safexpr.ErrSyntax))

	// Output:
	// 7 <nil>
	// [+Inf 1 0.5] <nil>
	// division by zero: 1 / 0
	// true
}

func ExampleParse() {
	e, err := safexpr.Parse("-2^2 + sin(x)")
	if err != nil {
		panic(err)
	}
	fmt.Println(e.Source())
	fmt.Println(e)
	fmt.Println(e.Vars())

	// Output:
	// -2**2 + sin(x)
	// ([-([2] ^ [2])] + [sin([x])])
	// [x]
}

func ExampleSlopeAt() {
	m, err := safexpr.SlopeAt("x**2", 3)
	if err != nil {
		panic(err)
	}
	fmt.Printf("%.3f %v\n", m, safexpr.Classify(m))

	// Output:
	// 6.000 positive
}
