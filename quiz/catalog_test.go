package quiz_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zephyrtronium/safexpr"
	"github.com/zephyrtronium/safexpr/quiz"
)

func TestDefaultCatalog(t *testing.T) {
	cat := quiz.DefaultCatalog()
	require.Equal(t, 7, cat.Len())
	want := []string{"x", "2*x+1", "x**2", "-0.5*x**2+4", "x**3/8", "sin(x)", "cos(x)"}
	for i, src := range want {
		assert.Equal(t, src, cat.Entry(i).Expr)
		assert.NotEmpty(t, cat.Entry(i).Name)
		assert.Equal(t, src, cat.Expr(i).Source())
		// Every default function is defined near the quiz range.
		_, err := cat.Expr(i).Eval(safexpr.Bind(3))
		assert.NoError(t, err, "%s at 3", src)
	}
	assert.Equal(t, "parabola", cat.Entry(2).Name)
}

func TestNewCatalog(t *testing.T) {
	cat, err := quiz.NewCatalog(quiz.Entry{Expr: "X^2"}, quiz.Entry{Expr: "exp(x)", Name: "growth"})
	require.NoError(t, err)
	require.Equal(t, 2, cat.Len())
	assert.Equal(t, "x**2", cat.Entry(0).Name)
	assert.Equal(t, "X^2", cat.Entry(0).Expr)
	assert.Equal(t, "growth", cat.Entry(1).Name)

	_, err = quiz.NewCatalog()
	assert.ErrorIs(t, err, quiz.ErrEmptyCatalog)

	_, err = quiz.NewCatalog(quiz.Entry{Expr: "x"}, quiz.Entry{Expr: "2x"})
	assert.ErrorIs(t, err, safexpr.ErrSyntax)
	assert.ErrorContains(t, err, "entry 2")
}

func TestLoadCatalog(t *testing.T) {
	const src = `
functions:
  - expr: x**2
    name: parabola
  - expr: sin(x) + 1
  - expr: abs(x)
    name: vee
`
	cat, err := quiz.LoadCatalog(strings.NewReader(src))
	require.NoError(t, err)
	require.Equal(t, 3, cat.Len())
	assert.Equal(t, quiz.Entry{Expr: "x**2", Name: "parabola"}, cat.Entry(0))
	assert.Equal(t, "sin(x) + 1", cat.Entry(1).Name)
	assert.Equal(t, "vee", cat.Entry(2).Name)
}

func TestLoadCatalogErrors(t *testing.T) {
	cases := []struct {
		name string
		src  string
		kind error
	}{
		{"empty", "", quiz.ErrEmptyCatalog},
		{"no-functions", "functions: []\n", quiz.ErrEmptyCatalog},
		{"bad-expr", "functions:\n  - expr: __import__('os')\n", safexpr.ErrSyntax},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := quiz.LoadCatalog(strings.NewReader(c.src))
			assert.ErrorIs(t, err, c.kind)
		})
	}
	_, err := quiz.LoadCatalog(strings.NewReader("functions:\n  - expr: x\n    color: red\n"))
	assert.Error(t, err, "unknown fields should be rejected")
	_, err = quiz.LoadCatalog(strings.NewReader("functions: [\n"))
	assert.Error(t, err)
}
