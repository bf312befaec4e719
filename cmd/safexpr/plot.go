package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/zephyrtronium/safexpr/plot"
)

var plotCmd = &cobra.Command{
	Use:   "plot [flags] expression",
	Short: "sample an expression over an interval.",
	Long: `Sample an expression of x at evenly spaced points and print
	tab-separated x and y columns. Points where the expression is not finite
	print as NaN.`,
	Args: cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		lo, err := constant(getString(cmd, "from"))
		if err != nil {
			fail(fmt.Errorf("--from: %w", err))
		}
		hi, err := constant(getString(cmd, "to"))
		if err != nil {
			fail(fmt.Errorf("--to: %w", err))
		}
		n := getInt(cmd, "n")
		workers := getInt(cmd, "workers")
		header := term.IsTerminal(int(os.Stdout.Fd()))
		err = runPlot(cmd.Context(), os.Stdout, strings.Join(args, " "), lo, hi, n, workers, header)
		if err != nil {
			fail(err)
		}
	},
}

func init() {
	rootCmd.AddCommand(plotCmd)
	plotCmd.Flags().String("from", "-6", "start of the interval")
	plotCmd.Flags().String("to", "6", "end of the interval")
	plotCmd.Flags().Int("n", plot.DefaultSamples, "number of samples")
	plotCmd.Flags().Int("workers", 1, "number of concurrent evaluation chunks")
}

// runPlot samples src and writes the samples to w.
func runPlot(ctx context.Context, w io.Writer, src string, lo, hi float64, n, workers int, header bool) error {
	if ctx == nil {
		ctx = context.Background()
	}
	s, err := plot.Curve(ctx, src, lo, hi, n, plot.Workers(workers))
	if err != nil {
		return err
	}
	if ylo, yhi, ok := plot.Range(s.Ys); ok {
		log.Debugf("%d samples of %q span y in [%g, %g]", n, src, ylo, yhi)
	} else {
		log.Warnf("%q has no finite samples in [%g, %g]", src, lo, hi)
	}
	if header {
		if _, err := fmt.Fprintln(w, "x\ty"); err != nil {
			return err
		}
	}
	for i, x := range s.Xs {
		if _, err := fmt.Fprintf(w, "%g\t%g\n", x, s.Ys[i]); err != nil {
			return err
		}
	}
	return nil
}
