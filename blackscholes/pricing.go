package blackscholes

import (
	"github.com/charlerive/mcoption/option"
)

// Price returns the closed-form call and put prices for p.
func Price(p option.Params) option.PricingResult {
	call := NewBSMFromParams(option.Call, p)
	put := NewBSMFromParams(option.Put, p)
	return option.PricingResult{
		Call:       call.Price,
		Put:        put.Price,
		Degenerate: call.Degenerate,
	}
}

// Greeks returns Delta for both sides and the shared Gamma. The put delta
// is derived from the call delta, so delta parity holds by construction.
func Greeks(p option.Params) option.GreeksResult {
	call := NewBSMFromParams(option.Call, p)
	return option.GreeksResult{
		DeltaCall:  call.Delta,
		DeltaPut:   call.Delta - 1,
		Gamma:      call.Gamma,
		Degenerate: call.Degenerate,
	}
}

// DeltaCurve samples the call Delta at n evenly spaced spot prices in
// [lo, hi]. The put Delta is the call Delta minus one.
func DeltaCurve(p option.Params, lo, hi float64, n int) (spots, deltas []float64) {
	return curve(p, lo, hi, n, func(bsm *BSM) float64 { return bsm.Delta })
}

// GammaCurve samples Gamma at n evenly spaced spot prices in [lo, hi],
// holding the other inputs of p fixed.
func GammaCurve(p option.Params, lo, hi float64, n int) (spots, gammas []float64) {
	return curve(p, lo, hi, n, func(bsm *BSM) float64 { return bsm.Gamma })
}

func curve(p option.Params, lo, hi float64, n int, greek func(bsm *BSM) float64) (spots, values []float64) {
	if n < 1 {
		return nil, nil
	}
	spots = make([]float64, n)
	values = make([]float64, n)
	for i := 0; i < n; i++ {
		s := lo
		if n > 1 {
			s = lo + (hi-lo)*float64(i)/float64(n-1)
		}
		spots[i] = s
		values[i] = greek(NewBSM(option.Call, s, p.K, p.T, p.R, p.Sigma))
	}
	return spots, values
}
