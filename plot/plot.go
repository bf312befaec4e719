// Package plot samples safexpr expressions for drawing. It produces numbers
// only; rendering is up to the caller.
package plot

import (
	"context"
	"errors"
	"math"
	"strconv"

	"golang.org/x/sync/errgroup"

	"github.com/zephyrtronium/safexpr"
)

// DefaultSamples is the number of samples in a curve.
const DefaultSamples = 600

// ErrSamples is returned when fewer than two samples are requested.
var ErrSamples = errors.New("plot: need at least two samples")

// Series is a sampled curve. Ys[i] is NaN wherever the function is not finite
// at Xs[i].
type Series struct {
	Xs []float64
	Ys []float64
}

// Linspace returns n evenly spaced values from lo to hi inclusive.
func Linspace(lo, hi float64, n int) []float64 {
	if n <= 0 {
		return nil
	}
	xs := make([]float64, n)
	if n == 1 {
		xs[0] = lo
		return xs
	}
	step := (hi - lo) / float64(n-1)
	for i := range xs {
		xs[i] = lo + float64(i)*step
	}
	// Avoid accumulated error at the end.
	xs[n-1] = hi
	return xs
}

type options struct {
	workers int
}

// Option configures Sample.
type Option func(*options)

// Workers splits the samples into n chunks evaluated concurrently.
func Workers(n int) Option {
	return func(o *options) {
		o.workers = n
	}
}

// Sample evaluates e with x bound to xs and masks every non-finite result as
// NaN. Vector evaluation never fails for numeric reasons, so errors are
// limited to names, calls, and cancellation.
func Sample(ctx context.Context, e *safexpr.Expr, xs []float64, opts ...Option) ([]float64, error) {
	o := options{workers: 1}
	for _, opt := range opts {
		opt(&o)
	}
	ys := make([]float64, len(xs))
	if o.workers <= 1 || len(xs) < 2*o.workers {
		if err := sampleInto(e, xs, ys); err != nil {
			return nil, err
		}
		return ys, nil
	}
	g, ctx := errgroup.WithContext(ctx)
	chunk := (len(xs) + o.workers - 1) / o.workers
	for lo := 0; lo < len(xs); lo += chunk {
		hi := min(lo+chunk, len(xs))
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			return sampleInto(e, xs[lo:hi], ys[lo:hi])
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return ys, nil
}

// sampleInto evaluates e over xs and writes the masked results to ys.
func sampleInto(e *safexpr.Expr, xs, ys []float64) error {
	v, err := e.Eval(safexpr.BindVector(xs))
	if err != nil {
		return err
	}
	for i := range ys {
		y := v.At(i)
		if math.IsInf(y, 0) {
			y = math.NaN()
		}
		ys[i] = y
	}
	return nil
}

// Curve parses src and samples it at n points from lo to hi.
func Curve(ctx context.Context, src string, lo, hi float64, n int, opts ...Option) (*Series, error) {
	if n < 2 {
		return nil, ErrSamples
	}
	e, err := safexpr.Parse(src)
	if err != nil {
		return nil, err
	}
	xs := Linspace(lo, hi, n)
	ys, err := Sample(ctx, e, xs, opts...)
	if err != nil {
		return nil, err
	}
	return &Series{Xs: xs, Ys: ys}, nil
}

// Range returns the smallest and largest finite values in ys. ok is false if
// there are none.
func Range(ys []float64) (lo, hi float64, ok bool) {
	lo, hi = math.Inf(1), math.Inf(-1)
	for _, y := range ys {
		if math.IsNaN(y) || math.IsInf(y, 0) {
			continue
		}
		lo = math.Min(lo, y)
		hi = math.Max(hi, y)
		ok = true
	}
	if !ok {
		return 0, 0, false
	}
	return lo, hi, true
}

// Tangent samples the tangent line of e at x0 over [x0-halfWidth,
// x0+halfWidth] with n points. It also returns the point of tangency and the
// estimated slope. Errors from scalar evaluation are returned unchanged.
func Tangent(e *safexpr.Expr, x0, halfWidth float64, n int) (s *Series, y0, m float64, err error) {
	if n < 2 {
		return nil, 0, 0, ErrSamples
	}
	v, err := e.Eval(safexpr.Bind(x0))
	if err != nil {
		return nil, 0, 0, err
	}
	y0 = v.Float()
	m, err = e.SlopeAt(x0, safexpr.DefaultStep)
	if err != nil {
		return nil, 0, 0, err
	}
	xs := Linspace(x0-halfWidth, x0+halfWidth, n)
	ys := make([]float64, n)
	for i, x := range xs {
		ys[i] = m*(x-x0) + y0
	}
	return &Series{Xs: xs, Ys: ys}, y0, m, nil
}

// Line returns the expression of the line with slope m and intercept b, with
// both rounded to two decimals.
func Line(m, b float64) string {
	return strconv.FormatFloat(m, 'f', 2, 64) + "*x + " + strconv.FormatFloat(b, 'f', 2, 64)
}
