package option

// PricingResult holds call and put prices. The standard errors are only
// set by the Monte Carlo pricer.
type PricingResult struct {
	Call       float64 `json:"call"`
	Put        float64 `json:"put"`
	CallStdErr float64 `json:"call_std_err,omitempty"`
	PutStdErr  float64 `json:"put_std_err,omitempty"`

	// Degenerate is set by the analytical pricer when sigma or T is zero
	// and the prices are the deterministic intrinsic-value limit.
	Degenerate bool `json:"degenerate,omitempty"`
}

// Of returns the price for the given side.
func (r PricingResult) Of(t Type) float64 {
	if t == Put {
		return r.Put
	}
	return r.Call
}

// StdErrOf returns the standard error for the given side.
func (r PricingResult) StdErrOf(t Type) float64 {
	if t == Put {
		return r.PutStdErr
	}
	return r.CallStdErr
}

// GreeksResult holds the hedging Greeks shared by a call/put pair.
type GreeksResult struct {
	DeltaCall float64 `json:"delta_call"`
	DeltaPut  float64 `json:"delta_put"`
	Gamma     float64 `json:"gamma"`

	// Degenerate means sigma or T is zero: Delta is a step function of the
	// discounted strike and Gamma is 0 away from it or +Inf on it.
	Degenerate bool `json:"degenerate,omitempty"`
}

// Delta returns the delta for the given side.
func (g GreeksResult) Delta(t Type) float64 {
	if t == Put {
		return g.DeltaPut
	}
	return g.DeltaCall
}
