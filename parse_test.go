package safexpr

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"testing"
)

// diff finds the first in-order node of n that differs from m, or nil, nil if
// the two ASTs are equal. If any node is nodeNone, it is returned.
func (n *node) diff(m *node) (*node, *node) {
	if n == nil {
		if m != nil {
			return n, m
		}
		return nil, nil
	}
	if m == nil {
		return n, m
	}
	if n.kind == nodeNone || m.kind == nodeNone {
		return n, m
	}
	if n.kind != m.kind {
		return n, m
	}
	switch n.kind {
	case nodeNum:
		if n.num != m.num {
			return n, m
		}
	case nodeName:
		if n.name != m.name {
			return n, m
		}
	case nodeCall:
		if n.name != m.name || len(n.args) != len(m.args) {
			return n, m
		}
		for i := range n.args {
			if d, e := n.args[i].diff(m.args[i]); d != nil || e != nil {
				return d, e
			}
		}
	case nodeAdd, nodeSub, nodeMul, nodeDiv, nodeMod, nodePow:
		if d, e := n.left.diff(m.left); d != nil || e != nil {
			return d, e
		}
		if d, e := n.right.diff(m.right); d != nil || e != nil {
			return d, e
		}
	case nodeNeg:
		if d, e := n.left.diff(m.left); d != nil || e != nil {
			return d, e
		}
	default:
		panic(fmt.Errorf("invalid node kind: n=%+v m=%+v", n, m))
	}
	return nil, nil
}

func TestOpPrecsExist(t *testing.T) {
	for _, r := range Operators {
		b := binop(string(r))
		u := unop(string(r))
		if b.op == nodeNone && u.op == nodeNone {
			t.Errorf("no operator for %c", r)
		}
	}
	if binop(PowOperator).op != nodePow {
		t.Errorf("no operator for %s", PowOperator)
	}
}

func TestUnaryBindsLooserThanPow(t *testing.T) {
	if !binop(PowOperator).moreBinding(unop("-")) {
		t.Error("power does not bind more tightly than negation")
	}
	if !unop("-").moreBinding(binop("*")) {
		t.Error("negation does not bind more tightly than multiplication")
	}
}

func TestParseTrees(t *testing.T) {
	cases := []struct {
		name string
		a, b string
	}{
		{"paren", "(x)", "x"},
		{"multi", "((((x))))", "x"},
		{"space", "  x \t", "x"},
		{"case", "SIN(X)", "sin(x)"},
		{"caret", "x^2", "x**2"},

		{"neg", "-x", "(-(x))"},
		{"negnum", "-1", "(-(1))"},
		{"add", "x+y", "((x)+(y))"},
		{"sub", "x-y", "((x)-(y))"},
		{"mul", "x*y", "((x)*(y))"},
		{"div", "x/y", "((x)/(y))"},
		{"mod", "x%y", "((x)%(y))"},
		{"pow", "x^y", "((x)**(y))"},
		{"num", "1.50", "1.5"},
		{"exp", "1e2", "100"},

		{"call0", "f()", "f()"},
		{"call1", "sin(x)", "sin((x))"},
		{"call2", "f(a, b+c)", "f((a), ((b)+(c)))"},
		{"call-trailing", "f(a,)", "f(a)"},
		{"call-space", "sin (x)", "sin(x)"},
		{"call-pow", "sin(x)^2", "(sin(x))^2"},

		{"add4", "w+x+y+z", "((w+x)+y)+z"},
		{"sub4", "w-x-y-z", "((w-x)-y)-z"},
		{"mul4", "w*x*y*z", "((w*x)*y)*z"},
		{"div4", "w/x/y/z", "((w/x)/y)/z"},
		{"mod4", "w%x%y%z", "((w%x)%y)%z"},
		{"muldiv", "w*x/y%z", "((w*x)/y)%z"},
		{"pow4", "w^x^y^z", "w^(x^(y^z))"},

		{"negpow", "-1^n", "-(1^n)"},
		{"negpow2", "-2^2", "-(2^2)"},
		{"desc", "w^x*y+z", "((w^x)*y)+z"},
		{"asc", "w+x*y^z", "w+(x*(y^z))"},
		{"descasc", "w^x*y+z+a*b^c", "(((w^x)*y)+z)+a*(b^c)"},
		{"ascdesc", "w+x*y^z^a*b+c", "w+((x*(y^(z^a)))*b)+c"},
		{"negneg", "--x", "-(-x)"},
		{"negsub", "-x-x", "(-x)-x"},
		{"negmul", "-x*y", "(-x)*y"},
		{"mulneg", "2*-3", "2*(-3)"},
		{"powneg", "x^-1", "x^(-1)"},
		{"pownegmul", "x^-y*z", "(x^(-y))*z"},
		{"pownegpow", "x^-y^-z", "x^(-(y^(-z)))"},
		{"pownegneg", "x^--y", "x^(-(-y))"},
		{"stars", "2 ** 3", "2^3"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			a, err := Parse(c.a)
			if err != nil {
				t.Fatalf("failed to parse %q: %v", c.a, err)
			}
			b, err := Parse(c.b)
			if err != nil {
				t.Fatalf("failed to parse %q: %v", c.b, err)
			}
			d, e := a.n.diff(b.n)
			if d != nil || e != nil {
				t.Errorf("mismatched AST:\n\t%q parses %v has %v\n\t%q parses %v has %v", c.a, a.n, d, c.b, b.n, e)
			}
		})
	}
}

func TestParseErrors(t *testing.T) {
	cases := []struct {
		name string
		src  string
		err  InputError
	}{
		{"empty", "", (*EmptyExpressionError)(nil)},
		{"spaces", "   ", (*EmptyExpressionError)(nil)},
		{"empty-parens", "()", (*EmptyExpressionError)(nil)},
		{"add-end", "1+", (*EmptyExpressionError)(nil)},
		{"neg-end", "-", (*EmptyExpressionError)(nil)},
		{"implicit-num", "2x", (*LexError)(nil)},
		{"implicit-space", "x y", (*TokenError)(nil)},
		{"implicit-paren", "2 (3)", (*TokenError)(nil)},
		{"call-call", "(1)(2)", (*TokenError)(nil)},
		{"bare-call", "sin x", (*TokenError)(nil)},
		{"statement", "import os", (*TokenError)(nil)},
		{"unary-plus", "+1", (*OperatorError)(nil)},
		{"unary-star", "1 +* 2", (*OperatorError)(nil)},
		{"split-pow", "2* *3", (*OperatorError)(nil)},
		{"floordiv", "1//2", (*OperatorError)(nil)},
		{"unclosed", "(1", (*BracketError)(nil)},
		{"unopened", "1)", (*BracketError)(nil)},
		{"leading-close", ")", (*BracketError)(nil)},
		{"call-unclosed", "sin(1", (*BracketError)(nil)},
		{"call-unclosed-args", "f(1,2", (*BracketError)(nil)},
		{"tuple", "1,2", (*SeparatorError)(nil)},
		{"call-comma", "f(,)", (*SeparatorError)(nil)},
		{"call-double-comma", "f(1,,2)", (*SeparatorError)(nil)},
		{"paren-comma", "(,1)", (*SeparatorError)(nil)},
		{"attribute", "x.real", (*LexError)(nil)},
		{"np", "np.sin(x)", (*LexError)(nil)},
		{"subscript", "a[0]", (*LexError)(nil)},
		{"assign", "x = 1", (*LexError)(nil)},
		{"lambda", "lambda: 1", (*LexError)(nil)},
		{"string", "'s'", (*LexError)(nil)},
		{"dunder", "__import__('os')", (*LexError)(nil)},
		{"semicolon", "x; y", (*LexError)(nil)},
		{"comparison", "1 < 2", (*LexError)(nil)},
		{"long", strings.Repeat("1+", MaxLength) + "1", (*LengthError)(nil)},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			a, err := Parse(c.src)
			if err == nil {
				t.Fatalf("%q parsed to %v", c.src, a)
			}
			if a != nil {
				t.Errorf("%q gave non-nil expression %v with error", c.src, a)
			}
			if !errors.Is(err, ErrSyntax) {
				t.Errorf("%q gave %#v, which is not ErrSyntax", c.src, err)
			}
			if reflect.TypeOf(err) != reflect.TypeOf(c.err) {
				t.Errorf("%q gave %#v, want %T", c.src, err, c.err)
			}
			if p := err.(InputError).Pos(); p < 1 {
				t.Errorf("%q gave error position %d", c.src, p)
			}
		})
	}
}

func TestVars(t *testing.T) {
	cases := []struct {
		src  string
		vars []string
	}{
		{"1", nil},
		{"x", []string{"x"}},
		{"x+x*x", []string{"x"}},
		{"x + pi*y - sin(z)", []string{"pi", "x", "y", "z"}},
		{"sin(cos(x))", []string{"x"}},
	}
	for _, c := range cases {
		e, err := Parse(c.src)
		if err != nil {
			t.Fatalf("%q failed to parse: %v", c.src, err)
		}
		if v := e.Vars(); !reflect.DeepEqual(v, c.vars) {
			t.Errorf("%q gave wrong variables: want %q, got %q", c.src, c.vars, v)
		}
	}
}

func TestExprString(t *testing.T) {
	cases := []struct {
		src, want string
	}{
		{"-2^2", "(-[(2) ^ (2)])"},
		{"sin(x)+1", "([sin([x])] + [1])"},
		{"f(a, b)", "(f[(a), (b)])"},
		{"7 % 3", "([7] % [3])"},
	}
	for _, c := range cases {
		if got := MustParse(c.src).String(); got != c.want {
			t.Errorf("%q formats as %q, want %q", c.src, got, c.want)
		}
	}
}

func TestSource(t *testing.T) {
	if got := MustParse("  2*X^2 ").Source(); got != "2*x**2" {
		t.Errorf("wrong source: %q", got)
	}
}
