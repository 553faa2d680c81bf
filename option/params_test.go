package option

import (
	"math"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func referenceParams() Params {
	return Params{S0: 100, K: 100, R: 0.05, Sigma: 0.2, T: 1, Steps: 252, NPaths: 5000}
}

func TestParams_Validate(t *testing.T) {
	assert.NoError(t, referenceParams().Validate())

	zeroSigma := referenceParams()
	zeroSigma.Sigma = 0
	assert.NoError(t, zeroSigma.Validate(), "zero sigma is a degenerate market, not an error")

	negativeRate := referenceParams()
	negativeRate.R = -0.01
	assert.NoError(t, negativeRate.Validate())

	tests := []struct {
		name   string
		modify func(p *Params)
	}{
		{"zero S0", func(p *Params) { p.S0 = 0 }},
		{"negative S0", func(p *Params) { p.S0 = -1 }},
		{"zero strike", func(p *Params) { p.K = 0 }},
		{"zero maturity", func(p *Params) { p.T = 0 }},
		{"negative sigma", func(p *Params) { p.Sigma = -0.2 }},
		{"zero steps", func(p *Params) { p.Steps = 0 }},
		{"zero paths", func(p *Params) { p.NPaths = 0 }},
		{"NaN rate", func(p *Params) { p.R = math.NaN() }},
		{"infinite S0", func(p *Params) { p.S0 = math.Inf(1) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := referenceParams()
			tt.modify(&p)
			err := p.Validate()
			if assert.Error(t, err) {
				assert.True(t, errors.Is(err, ErrInvalidParameter), "got %v", err)
			}
		})
	}
}

func TestParseType(t *testing.T) {
	for _, s := range []string{"c", "call", "CALL"} {
		tp, err := ParseType(s)
		assert.NoError(t, err)
		assert.Equal(t, Call, tp)
	}
	for _, s := range []string{"p", "put", "Put"} {
		tp, err := ParseType(s)
		assert.NoError(t, err)
		assert.Equal(t, Put, tp)
	}
	_, err := ParseType("straddle")
	assert.True(t, errors.Is(err, ErrInvalidParameter))
}

func TestParams_Discount(t *testing.T) {
	p := referenceParams()
	assert.InDelta(t, math.Exp(-0.05), p.Discount(), 1e-15)
}
