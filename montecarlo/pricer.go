package montecarlo

import (
	"math"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/stat"

	"github.com/charlerive/mcoption/gbm"
	"github.com/charlerive/mcoption/option"
)

// Price returns the discounted mean payoff of a call and a put over the
// terminal prices, with the standard error of each estimate.
//
// The standard error is sd(payoff)/sqrt(n) only when tp has no antithetic
// pairs. Paired values are correlated, so for them the error is taken over
// pair means (see estimate) and is smaller than the per-path formula.
func Price(tp gbm.TerminalPrices, p option.Params) (option.PricingResult, error) {
	if err := check(tp); err != nil {
		return option.PricingResult{}, err
	}

	call, callErr := estimate(tp, p, option.Call)
	put, putErr := estimate(tp, p, option.Put)
	if err := finite(call, callErr, put, putErr); err != nil {
		return option.PricingResult{}, err
	}

	return option.PricingResult{
		Call:       call,
		Put:        put,
		CallStdErr: callErr,
		PutStdErr:  putErr,
	}, nil
}

// PriceType prices a single side.
func PriceType(tp gbm.TerminalPrices, p option.Params, t option.Type) (price, stdErr float64, err error) {
	if err := check(tp); err != nil {
		return 0, 0, err
	}

	price, stdErr = estimate(tp, p, t)
	if err := finite(price, stdErr); err != nil {
		return 0, 0, err
	}
	return price, stdErr, nil
}

// Payoff is the value of a European option at expiry.
func Payoff(t option.Type, sT, k float64) float64 {
	if t == option.Put {
		return math.Max(k-sT, 0)
	}
	return math.Max(sT-k, 0)
}

func check(tp gbm.TerminalPrices) error {
	if tp.Len() < 1 {
		return errors.Wrap(option.ErrInvalidInput, "no terminal prices")
	}
	if tp.Pairs < 0 || 2*tp.Pairs > tp.Len() {
		return errors.Wrapf(option.ErrInvalidInput, "%d pairs do not fit %d terminal prices", tp.Pairs, tp.Len())
	}
	for i, v := range tp.Values {
		if !(v > 0) || math.IsInf(v, 0) {
			return errors.Wrapf(option.ErrInvalidInput, "terminal price %d is %v", i, v)
		}
	}
	return nil
}

func finite(vs ...float64) error {
	for _, v := range vs {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return errors.Wrapf(option.ErrNumericOverflow, "monte carlo estimate is %v", v)
		}
	}
	return nil
}

// estimate computes the discounted price and its standard error.
//
// Antithetic partners are not independent, so the variance of the mean is
// taken over pair averages:
//
//	Var = (4*pairs*Var(pair mean) + unpaired*Var(payoff)) / n^2
//
// Without pairs this is the usual Var(payoff)/n. A variance needing at
// least two samples contributes zero when it has fewer.
func estimate(tp gbm.TerminalPrices, p option.Params, t option.Type) (price, stdErr float64) {
	n := tp.Len()
	payoffs := make([]float64, n)
	for i, sT := range tp.Values {
		payoffs[i] = Payoff(t, sT, p.K)
	}

	discount := p.Discount()
	price = discount * stat.Mean(payoffs, nil)

	var variance float64
	if tp.Pairs > 0 {
		pairMeans := make([]float64, tp.Pairs)
		for i := range pairMeans {
			pairMeans[i] = 0.5 * (payoffs[i] + payoffs[tp.Pairs+i])
		}
		variance += 4 * float64(tp.Pairs) * sampleVariance(pairMeans)
	}
	if u := tp.Unpaired(); u > 0 {
		// the marginal variance is the same for paired and unpaired paths
		variance += float64(u) * sampleVariance(payoffs)
	}

	stdErr = discount * math.Sqrt(variance) / float64(n)
	return price, stdErr
}

func sampleVariance(x []float64) float64 {
	if len(x) < 2 {
		return 0
	}
	return stat.Variance(x, nil)
}
