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

var slopeCmd = &cobra.Command{
	Use:   "slope [flags] expression",
	Short: "estimate the slope of an expression at a point.",
	Long: `Estimate the derivative of an expression of x at a point using a
	central difference.`,
	Args: cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		x0, err := constant(getString(cmd, "at"))
		if err != nil {
			fail(fmt.Errorf("--at: %w", err))
		}
		h := getFloat(cmd, "h")
		classify := getFlag(cmd, "classify")
		if err := runSlope(os.Stdout, strings.Join(args, " "), x0, h, classify); err != nil {
			fail(err)
		}
	},
}

func init() {
	rootCmd.AddCommand(slopeCmd)
	slopeCmd.Flags().String("at", "0", "point at which to estimate the slope")
	slopeCmd.Flags().Float64("h", safexpr.DefaultStep, "central difference step")
	slopeCmd.Flags().Bool("classify", false, "also print whether the slope is flat, positive, or negative")
}

// runSlope estimates the slope of src at x0 and writes it to w.
func runSlope(w io.Writer, src string, x0, h float64, classify bool) error {
	e, err := safexpr.Parse(src)
	if err != nil {
		return err
	}
	m, err := e.SlopeAt(x0, h)
	if err != nil {
		return err
	}
	log.Debugf("slope of %v at %g with step %g is %g", e, x0, h, m)
	if classify {
		_, err = fmt.Fprintf(w, "%g\t%v\n", m, safexpr.Classify(m))
		return err
	}
	_, err = fmt.Fprintf(w, "%g\n", m)
	return err
}
