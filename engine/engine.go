package engine

import (
	"context"
	"math"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"golang.org/x/exp/rand"
	"golang.org/x/sync/errgroup"

	"github.com/charlerive/mcoption/blackscholes"
	"github.com/charlerive/mcoption/gbm"
	"github.com/charlerive/mcoption/metrics"
	"github.com/charlerive/mcoption/montecarlo"
	"github.com/charlerive/mcoption/option"
)

var log = logrus.WithField("component", "engine")

type config struct {
	seed      uint64
	seeded    bool
	sampling  gbm.Sampling
	workers   int
	keepPaths bool
}

type Option func(c *config)

// WithSeed fixes the generator seed. Without it a time based seed is used
// and reported in Result.Seed.
func WithSeed(seed uint64) Option {
	return func(c *config) {
		c.seed = seed
		c.seeded = true
	}
}

func WithSampling(sampling gbm.Sampling) Option {
	return func(c *config) {
		c.sampling = sampling
	}
}

func WithWorkers(n int) Option {
	return func(c *config) {
		c.workers = n
	}
}

// WithoutPaths drops the path matrix from the result once terminal prices
// are extracted.
func WithoutPaths() Option {
	return func(c *config) {
		c.keepPaths = false
	}
}

// Result is everything one pricing run produces. It is not modified after
// Price returns.
type Result struct {
	Params   option.Params
	Seed     uint64
	Sampling gbm.Sampling

	MonteCarlo option.PricingResult
	Analytical option.PricingResult
	Greeks     option.GreeksResult

	// Paths is nil when WithoutPaths was given.
	Paths *gbm.Paths
}

// Price validates p, then runs the simulation branch (paths, Monte Carlo
// price) and the closed-form branch (Black-Scholes price, Greeks)
// concurrently. Invalid parameters fail before any path is generated.
func Price(ctx context.Context, p option.Params, opts ...Option) (*Result, error) {
	c := config{
		sampling:  gbm.Antithetic,
		keepPaths: true,
	}
	for _, opt := range opts {
		opt(&c)
	}

	if err := p.Validate(); err != nil {
		metrics.PricingErrorMetrics.WithLabelValues(reason(err)).Inc()
		return nil, err
	}

	if !c.seeded {
		c.seed = uint64(time.Now().UnixNano())
	}

	res := &Result{
		Params:   p,
		Seed:     c.seed,
		Sampling: c.sampling,
	}

	logger := log.WithFields(logrus.Fields{
		"seed":     c.seed,
		"sampling": c.sampling,
		"paths":    p.NPaths,
		"steps":    p.Steps,
	})
	logger.Debugf("pricing %s", p)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		start := time.Now()

		simOpts := []gbm.Option{gbm.WithSampling(c.sampling)}
		if c.workers > 0 {
			simOpts = append(simOpts, gbm.WithWorkers(c.workers))
		}
		paths, err := gbm.Simulate(gctx, p, rand.NewSource(c.seed), simOpts...)
		if err != nil {
			return errors.Wrap(err, "simulate paths")
		}

		mc, err := montecarlo.Price(paths.Terminal(), p)
		if err != nil {
			return errors.Wrap(err, "monte carlo price")
		}

		res.MonteCarlo = mc
		if c.keepPaths {
			res.Paths = paths
		}

		metrics.SimulationDurationMetrics.WithLabelValues(c.sampling.String()).Observe(time.Since(start).Seconds())
		metrics.SimulatedPathsMetrics.WithLabelValues(c.sampling.String()).Add(float64(p.NPaths))
		return nil
	})

	g.Go(func() error {
		res.Analytical = blackscholes.Price(p)
		res.Greeks = blackscholes.Greeks(p)
		return checkClosedForm(res.Analytical, res.Greeks)
	})

	if err := g.Wait(); err != nil {
		metrics.PricingErrorMetrics.WithLabelValues(reason(err)).Inc()
		logger.WithError(err).Error("pricing failed")
		return nil, err
	}

	callGap, putGap := res.CallGap(), res.PutGap()
	metrics.PriceGapMetrics.WithLabelValues(option.Call.String()).Set(callGap.StdErrs)
	metrics.PriceGapMetrics.WithLabelValues(option.Put.String()).Set(putGap.StdErrs)

	logger.WithFields(logrus.Fields{
		"mc_call": res.MonteCarlo.Call,
		"bs_call": res.Analytical.Call,
		"mc_put":  res.MonteCarlo.Put,
		"bs_put":  res.Analytical.Put,
	}).Info("priced option")

	return res, nil
}

// Gap is the difference between the Monte Carlo and the analytical price.
type Gap struct {
	Abs float64
	// Relative is Abs over the analytical price, 0 when that price is 0.
	Relative float64
	// StdErrs is Abs in units of the Monte Carlo standard error, 0 when
	// the standard error is 0.
	StdErrs float64
}

func (r *Result) CallGap() Gap {
	return gap(r.MonteCarlo.Call, r.Analytical.Call, r.MonteCarlo.CallStdErr)
}

func (r *Result) PutGap() Gap {
	return gap(r.MonteCarlo.Put, r.Analytical.Put, r.MonteCarlo.PutStdErr)
}

func gap(mc, bs, stdErr float64) Gap {
	g := Gap{Abs: mc - bs}
	if bs != 0 {
		g.Relative = g.Abs / bs
	}
	if stdErr != 0 {
		g.StdErrs = g.Abs / stdErr
	}
	return g
}

// checkClosedForm rejects non-finite closed-form output. An infinite gamma
// is only expected in a degenerate market.
func checkClosedForm(price option.PricingResult, greeks option.GreeksResult) error {
	values := []struct {
		name string
		v    float64
	}{
		{"call price", price.Call},
		{"put price", price.Put},
		{"call delta", greeks.DeltaCall},
		{"put delta", greeks.DeltaPut},
	}
	if !greeks.Degenerate {
		values = append(values, struct {
			name string
			v    float64
		}{"gamma", greeks.Gamma})
	}

	for _, f := range values {
		if math.IsNaN(f.v) || math.IsInf(f.v, 0) {
			return errors.Wrapf(option.ErrNumericOverflow, "black-scholes %s is %v", f.name, f.v)
		}
	}
	return nil
}

func reason(err error) string {
	switch {
	case errors.Is(err, option.ErrInvalidParameter):
		return "invalid_parameter"
	case errors.Is(err, option.ErrInvalidInput):
		return "invalid_input"
	case errors.Is(err, option.ErrNumericOverflow):
		return "numeric_overflow"
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return "canceled"
	}
	return "other"
}
