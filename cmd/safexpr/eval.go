package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/zephyrtronium/safexpr"
)

var evalCmd = &cobra.Command{
	Use:   "eval [flags] expression",
	Short: "evaluate an expression.",
	Long: `Evaluate an expression, optionally with x bound to a number or to a
	comma-separated list of numbers. Values of x may themselves be constant
	expressions such as pi/2.`,
	Args: cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		src := strings.Join(args, " ")
		b, err := bindingFromFlags(cmd)
		if err != nil {
			fail(err)
		}
		if err := runEval(os.Stdout, src, b); err != nil {
			fail(err)
		}
	},
}

func init() {
	rootCmd.AddCommand(evalCmd)
	evalCmd.Flags().String("x", "", "bind x to a number")
	evalCmd.Flags().String("xs", "", "bind x to a comma-separated vector")
}

// bindingFromFlags binds x per the --x or --xs flags.
func bindingFromFlags(cmd *cobra.Command) (safexpr.Binding, error) {
	switch {
	case cmd.Flags().Changed("x") && cmd.Flags().Changed("xs"):
		return safexpr.Binding{}, fmt.Errorf("--x and --xs are mutually exclusive")
	case cmd.Flags().Changed("x"):
		x, err := constant(getString(cmd, "x"))
		if err != nil {
			return safexpr.Binding{}, fmt.Errorf("--x: %w", err)
		}
		return safexpr.Bind(x), nil
	case cmd.Flags().Changed("xs"):
		xs, err := constants(getString(cmd, "xs"))
		if err != nil {
			return safexpr.Binding{}, fmt.Errorf("--xs: %w", err)
		}
		return safexpr.BindVector(xs), nil
	}
	return safexpr.Binding{}, nil
}

// runEval evaluates src and writes the result to w.
func runEval(w io.Writer, src string, b safexpr.Binding) error {
	e, err := safexpr.Parse(src)
	if err != nil {
		return err
	}
	log.Debugf("parsed %q as %v", src, e)
	v, err := e.Eval(b)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, v)
	return err
}

// constant evaluates a constant expression.
func constant(s string) (float64, error) {
	v, err := safexpr.Evaluate(s, safexpr.Binding{})
	if err != nil {
		return 0, err
	}
	return v.Float(), nil
}

// constants evaluates a comma-separated list of constant expressions.
// Commas inside function calls do not separate elements.
func constants(s string) ([]float64, error) {
	var xs []float64
	depth, start := 0, 0
	for i, r := range s + "," {
		switch r {
		case '(':
			depth++
		case ')':
			depth--
		case ',':
			if depth != 0 {
				continue
			}
			x, err := constant(s[start:min(i, len(s))])
			if err != nil {
				return nil, fmt.Errorf("element %d: %w", len(xs)+1, err)
			}
			xs = append(xs, x)
			start = i + 1
		}
	}
	return xs, nil
}
