package safexpr

import (
	"math"
	"strconv"
)

// DefaultStep is the step used by SlopeAt for central differences.
const DefaultStep = 1e-4

// FlatTolerance is the magnitude below which a slope is classified as Flat.
const FlatTolerance = 0.01

// SlopeAt estimates the derivative of the expression at x0 by the central
// difference (f(x0+h) - f(x0-h)) / 2h, using scalar evaluation. A step that
// is not a positive finite number is replaced by DefaultStep. Evaluation
// errors are returned unchanged.
func (e *Expr) SlopeAt(x0, h float64) (float64, error) {
	if !(h > 0) || math.IsInf(h, 0) {
		h = DefaultStep
	}
	hi, err := e.Eval(Bind(x0 + h))
	if err != nil {
		return 0, err
	}
	lo, err := e.Eval(Bind(x0 - h))
	if err != nil {
		return 0, err
	}
	return (hi.Float() - lo.Float()) / (2 * h), nil
}

// SlopeAt is a shortcut to parse an expression and estimate its slope at x0
// with DefaultStep.
func SlopeAt(src string, x0 float64) (float64, error) {
	e, err := Parse(src)
	if err != nil {
		return 0, err
	}
	return e.SlopeAt(x0, DefaultStep)
}

// Slope is the direction of a function at a point.
type Slope int8

const (
	// Flat is a slope with magnitude under FlatTolerance.
	Flat Slope = iota
	// Positive is an increasing slope.
	Positive
	// Negative is a decreasing slope.
	Negative
)

// Classify returns the direction of a slope.
func Classify(slope float64) Slope {
	switch {
	case math.Abs(slope) < FlatTolerance:
		return Flat
	case slope > 0:
		return Positive
	default:
		return Negative
	}
}

func (s Slope) String() string {
	switch s {
	case Flat:
		return "flat"
	case Positive:
		return "positive"
	case Negative:
		return "negative"
	default:
		return "Slope(" + strconv.Itoa(int(s)) + ")"
	}
}
