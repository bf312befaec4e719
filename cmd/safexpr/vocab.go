package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/zephyrtronium/safexpr"
)

var vocabCmd = &cobra.Command{
	Use:   "vocab",
	Short: "list the names and operators expressions may use.",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		if err := runVocab(os.Stdout); err != nil {
			fail(err)
		}
	},
}

func init() {
	rootCmd.AddCommand(vocabCmd)
}

func runVocab(w io.Writer) error {
	consts, funcs := safexpr.Vocabulary()
	_, err := fmt.Fprintf(w, "variable:  %s\nconstants: %s\nfunctions: %s\noperators: + - * / %% ^ ** ( )\n",
		safexpr.X, strings.Join(consts, " "), strings.Join(funcs, " "))
	return err
}
