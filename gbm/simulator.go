package gbm

import (
	"context"
	"math"
	"runtime"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"golang.org/x/exp/rand"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/charlerive/mcoption/option"
)

var log = logrus.WithField("component", "gbm")

// Sampling selects how shock trajectories are assigned to paths.
type Sampling int

const (
	// Antithetic pairs every shock trajectory with its negation.
	Antithetic Sampling = iota
	// Independent draws a fresh trajectory for every path.
	Independent
)

func (s Sampling) String() string {
	switch s {
	case Antithetic:
		return "antithetic"
	case Independent:
		return "independent"
	}
	return "unknown"
}

// ParseSampling maps "antithetic" and "independent" to a Sampling.
func ParseSampling(s string) (Sampling, error) {
	switch s {
	case "antithetic", "":
		return Antithetic, nil
	case "independent":
		return Independent, nil
	}
	return 0, errors.Wrapf(option.ErrInvalidParameter, "unknown sampling %q", s)
}

type settings struct {
	sampling Sampling
	workers  int
}

type Option func(s *settings)

func WithSampling(sampling Sampling) Option {
	return func(s *settings) {
		s.sampling = sampling
	}
}

// WithWorkers bounds the number of trajectories generated concurrently.
// The output does not depend on it.
func WithWorkers(n int) Option {
	return func(s *settings) {
		if n > 0 {
			s.workers = n
		}
	}
}

// Simulate generates p.NPaths GBM price paths on an even grid of p.Steps
// increments using the exact log-normal transition
//
//	S(t+dt) = S(t) * exp((r - sigma^2/2)*dt + sigma*sqrt(dt)*Z)
//
// One seed per shock trajectory is drawn from src up front, so the result
// only depends on src and p. Under antithetic sampling an odd path count
// leaves the last row as a single independently sampled path.
func Simulate(ctx context.Context, p option.Params, src rand.Source, opts ...Option) (*Paths, error) {
	s := settings{
		sampling: Antithetic,
		workers:  runtime.GOMAXPROCS(0),
	}
	for _, opt := range opts {
		opt(&s)
	}

	n, steps := p.NPaths, p.Steps
	pairs := 0
	if s.sampling == Antithetic {
		pairs = n / 2
	}
	trajectories := n - pairs

	master := rand.New(src)
	seeds := make([]uint64, trajectories)
	for i := range seeds {
		seeds[i] = master.Uint64()
	}

	dt := p.T / float64(steps)
	drift := (p.R - 0.5*p.Sigma*p.Sigma) * dt
	vol := p.Sigma * math.Sqrt(dt)

	values := mat.NewDense(n, steps+1, nil)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)
	for j := 0; j < trajectories; j++ {
		if gctx.Err() != nil {
			break
		}

		j := j
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			rng := rand.New(rand.NewSource(seeds[j]))
			if j < pairs {
				return walkPair(values.RawRowView(j), values.RawRowView(pairs+j), p.S0, drift, vol, rng)
			}
			return walk(values.RawRowView(pairs+j), p.S0, drift, vol, rng)
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	log.WithFields(logrus.Fields{
		"paths":    n,
		"steps":    steps,
		"pairs":    pairs,
		"sampling": s.sampling,
	}).Debug("simulated gbm paths")

	return &Paths{
		Times:    floats.Span(make([]float64, steps+1), 0, p.T),
		Values:   values,
		Pairs:    pairs,
		Sampling: s.sampling,
	}, nil
}

func walk(row []float64, s0, drift, vol float64, rng *rand.Rand) error {
	row[0] = s0
	for k := 1; k < len(row); k++ {
		z := rng.NormFloat64()
		row[k] = row[k-1] * math.Exp(drift+vol*z)
	}
	return checkTerminal(row)
}

// walkPair fills a path and its antithetic partner from one shock trajectory.
func walkPair(row, anti []float64, s0, drift, vol float64, rng *rand.Rand) error {
	row[0], anti[0] = s0, s0
	for k := 1; k < len(row); k++ {
		z := rng.NormFloat64()
		row[k] = row[k-1] * math.Exp(drift+vol*z)
		anti[k] = anti[k-1] * math.Exp(drift-vol*z)
	}
	if err := checkTerminal(row); err != nil {
		return err
	}
	return checkTerminal(anti)
}

// checkTerminal only needs the last value: once a path hits 0, +Inf or
// NaN the multiplicative update keeps it there.
func checkTerminal(row []float64) error {
	v := row[len(row)-1]
	if !(v > 0) || math.IsInf(v, 0) {
		return errors.Wrapf(option.ErrNumericOverflow, "simulated price %v is not a positive finite number", v)
	}
	return nil
}
