package main

import (
	"fmt"
	"io"
	"math/rand/v2"
	"os"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/zephyrtronium/safexpr/quiz"
)

var quizCmd = &cobra.Command{
	Use:   "quiz [flags]",
	Short: "generate slope quiz questions.",
	Long: `Generate multiple-choice questions about the slope of a function at
	a point, with the correct answer marked.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		mode, err := quiz.ParseMode(getString(cmd, "mode"))
		if err != nil {
			fail(err)
		}
		cat, err := loadCatalog(getString(cmd, "catalog"))
		if err != nil {
			fail(err)
		}
		seed := uint64(getInt(cmd, "seed"))
		if !cmd.Flags().Changed("seed") {
			seed = uint64(time.Now().UnixNano())
		}
		log.Debugf("quiz seed %d", seed)
		gen := quiz.NewGenerator(cat, rand.New(rand.NewPCG(seed, seed>>32|1)))
		if err := runQuiz(os.Stdout, gen, mode, getInt(cmd, "count")); err != nil {
			fail(err)
		}
	},
}

func init() {
	rootCmd.AddCommand(quizCmd)
	quizCmd.Flags().String("mode", "sign", "question mode: sign, value, or mixed")
	quizCmd.Flags().String("catalog", "", "YAML file of functions to ask about")
	quizCmd.Flags().Int("seed", 0, "random seed (default: time-based)")
	quizCmd.Flags().Int("count", 1, "number of questions")
}

// loadCatalog reads a catalog file, or returns the default catalog if name
// is empty.
func loadCatalog(name string) (*quiz.Catalog, error) {
	if name == "" {
		return quiz.DefaultCatalog(), nil
	}
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	cat, err := quiz.LoadCatalog(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	log.Debugf("loaded %d functions from %s", cat.Len(), name)
	return cat, nil
}

// runQuiz writes count questions to w, marking the correct option with *.
func runQuiz(w io.Writer, gen *quiz.Generator, mode quiz.Mode, count int) error {
	for k := 0; k < count; k++ {
		q, err := gen.Next(mode)
		if err != nil {
			return err
		}
		if k > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintln(w, q.Prompt)
		for i, opt := range q.Options {
			mark := " "
			if q.Check(opt) {
				mark = "*"
			}
			fmt.Fprintf(w, "%s %c) %s\n", mark, 'a'+i, opt)
		}
	}
	return nil
}
