package quiz

import (
	"fmt"
	"math"
	"math/rand/v2"
	"strconv"

	"github.com/zephyrtronium/safexpr"
)

// Mode selects the kind of question.
type Mode int

const (
	// ModeSign asks whether the slope is flat, positive, or negative.
	ModeSign Mode = iota
	// ModeValue asks for the slope rounded to one decimal.
	ModeValue
	// ModeMixed alternates sign and value questions, starting with sign.
	ModeMixed
)

func (m Mode) String() string {
	switch m {
	case ModeSign:
		return "sign"
	case ModeValue:
		return "value"
	case ModeMixed:
		return "mixed"
	default:
		return "Mode(" + strconv.Itoa(int(m)) + ")"
	}
}

// ParseMode returns the mode named by s.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "sign":
		return ModeSign, nil
	case "value":
		return ModeValue, nil
	case "mixed":
		return ModeMixed, nil
	default:
		return 0, fmt.Errorf("quiz: unknown mode %q", s)
	}
}

// Answers to sign questions.
const (
	AnswerFlat     = "flat (0)"
	AnswerPositive = "positive"
	AnswerNegative = "negative"
	AnswerUnknown  = "can't tell"
)

// Question is one multiple-choice question.
type Question struct {
	// Mode is ModeSign or ModeValue.
	Mode Mode
	// Entry is the function asked about.
	Entry Entry
	// X0 is the point where the slope is asked.
	X0 float64
	// Slope is the estimated slope at X0.
	Slope float64
	// Prompt is the question text.
	Prompt string
	// Options are the choices, in display order.
	Options []string
	// Answer is the correct choice.
	Answer string
}

// Check reports whether answer is the correct choice.
func (q *Question) Check(answer string) bool {
	return answer == q.Answer
}

// Generator produces random questions from a catalog. It is not safe for
// concurrent use.
type Generator struct {
	cat *Catalog
	rng *rand.Rand
	// XMin and XMax bound the points where slopes are asked.
	XMin, XMax float64
	toggle     int
}

// NewGenerator creates a generator asking about x0 in [-3, 3].
func NewGenerator(cat *Catalog, rng *rand.Rand) *Generator {
	return &Generator{cat: cat, rng: rng, XMin: -3, XMax: 3}
}

// Next picks a function and a point at random and asks a question of the
// given mode.
func (g *Generator) Next(mode Mode) (*Question, error) {
	if g.cat == nil || g.cat.Len() == 0 {
		return nil, ErrEmptyCatalog
	}
	if mode == ModeMixed {
		mode = ModeSign
		if g.toggle%2 != 0 {
			mode = ModeValue
		}
		g.toggle++
	}
	i := g.rng.IntN(g.cat.Len())
	x0 := Round1(g.XMin + (g.XMax-g.XMin)*g.rng.Float64())
	return g.ask(i, x0, mode)
}

// Ask asks a question about the i-th catalog function at x0.
func (g *Generator) Ask(i int, x0 float64, mode Mode) (*Question, error) {
	if g.cat == nil || i < 0 || i >= g.cat.Len() {
		return nil, fmt.Errorf("quiz: no catalog entry %d", i)
	}
	if mode == ModeMixed {
		return nil, fmt.Errorf("quiz: cannot ask a single %v question", mode)
	}
	return g.ask(i, x0, mode)
}

func (g *Generator) ask(i int, x0 float64, mode Mode) (*Question, error) {
	ent := g.cat.Entry(i)
	slope, err := g.cat.Expr(i).SlopeAt(x0, safexpr.DefaultStep)
	if err != nil {
		return nil, fmt.Errorf("quiz: slope of %s at %g: %w", ent.Expr, x0, err)
	}
	q := Question{
		Mode:  mode,
		Entry: ent,
		X0:    x0,
		Slope: slope,
	}
	xs := strconv.FormatFloat(x0, 'f', 1, 64)
	switch mode {
	case ModeSign:
		q.Prompt = "In y = " + ent.Expr + " at x = " + xs + ", the slope is..."
		switch safexpr.Classify(slope) {
		case safexpr.Flat:
			q.Answer = AnswerFlat
		case safexpr.Positive:
			q.Answer = AnswerPositive
		default:
			q.Answer = AnswerNegative
		}
		q.Options = []string{AnswerFlat, AnswerPositive, AnswerNegative, AnswerUnknown}
		g.rng.Shuffle(len(q.Options), func(i, j int) { q.Options[i], q.Options[j] = q.Options[j], q.Options[i] })
	case ModeValue:
		if math.IsNaN(slope) || math.IsInf(slope, 0) {
			return nil, fmt.Errorf("quiz: slope of %s at %g: %w", ent.Expr, x0, ErrNotFinite)
		}
		q.Prompt = "Estimate f'(x) for y = " + ent.Expr + " at x = " + xs
		opts, err := Options(slope, g.rng)
		if err != nil {
			return nil, err
		}
		q.Answer = formatOption(Round1(slope))
		q.Options = make([]string, len(opts))
		for k, v := range opts {
			q.Options[k] = formatOption(v)
		}
	default:
		return nil, fmt.Errorf("quiz: cannot ask a %v question", mode)
	}
	return &q, nil
}

func formatOption(v float64) string {
	return strconv.FormatFloat(v, 'f', 1, 64)
}
