package montecarlo

import (
	"context"
	"math"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"

	"github.com/charlerive/mcoption/blackscholes"
	"github.com/charlerive/mcoption/gbm"
	"github.com/charlerive/mcoption/option"
)

func referenceParams() option.Params {
	return option.Params{S0: 100, K: 100, R: 0.05, Sigma: 0.2, T: 1, Steps: 252, NPaths: 5000}
}

func TestPrice_KnownPayoffs(t *testing.T) {
	p := option.Params{S0: 100, K: 100, R: 0, Sigma: 0.2, T: 1, Steps: 1, NPaths: 4}
	tp := gbm.TerminalPrices{Values: []float64{90, 110, 100, 120}}

	res, err := Price(tp, p)
	require.NoError(t, err)
	assert.InDelta(t, 7.5, res.Call, 1e-12)
	assert.InDelta(t, 2.5, res.Put, 1e-12)
	assert.InDelta(t, math.Sqrt(275.0/3)/2, res.CallStdErr, 1e-12)
	assert.InDelta(t, 2.5, res.PutStdErr, 1e-12)
	assert.False(t, res.Degenerate)
}

func TestPrice_Discounting(t *testing.T) {
	p := option.Params{S0: 100, K: 100, R: 0.05, Sigma: 0.2, T: 2, Steps: 1, NPaths: 2}
	tp := gbm.TerminalPrices{Values: []float64{130, 130}}

	res, err := Price(tp, p)
	require.NoError(t, err)
	assert.InDelta(t, 30*math.Exp(-0.1), res.Call, 1e-12)
	assert.Equal(t, 0.0, res.Put)
	assert.Equal(t, 0.0, res.CallStdErr)
}

func TestPrice_PairedStdErr(t *testing.T) {
	p := option.Params{S0: 100, K: 100, R: 0, Sigma: 0.2, T: 1, Steps: 1, NPaths: 4}

	// rows 0/2 and 1/3 are partners
	tp := gbm.TerminalPrices{Values: []float64{110, 120, 90, 80}, Pairs: 2}
	res, err := Price(tp, p)
	require.NoError(t, err)
	assert.InDelta(t, 7.5, res.Call, 1e-12)
	assert.InDelta(t, 7.5, res.Put, 1e-12)

	// pair means are 5 and 10: var = 12.5, SE = sqrt(4*2*12.5)/4
	assert.InDelta(t, math.Sqrt(100)/4, res.CallStdErr, 1e-12)

	// one unpaired value adds its marginal variance
	odd := gbm.TerminalPrices{Values: []float64{110, 120, 90, 80, 100}, Pairs: 2}
	res, err = Price(odd, p)
	require.NoError(t, err)
	assert.InDelta(t, 6.0, res.Call, 1e-12)
	assert.Greater(t, res.CallStdErr, 0.0)
}

func TestPrice_SinglePath(t *testing.T) {
	p := option.Params{S0: 100, K: 100, R: 0, Sigma: 0.2, T: 1, Steps: 1, NPaths: 1}
	res, err := Price(gbm.TerminalPrices{Values: []float64{105}}, p)
	require.NoError(t, err)
	assert.Equal(t, 5.0, res.Call)
	assert.Equal(t, 0.0, res.CallStdErr)
	assert.False(t, math.IsNaN(res.PutStdErr))
}

func TestPrice_InvalidInput(t *testing.T) {
	p := referenceParams()
	tests := []struct {
		name string
		tp   gbm.TerminalPrices
	}{
		{"empty", gbm.TerminalPrices{}},
		{"zero price", gbm.TerminalPrices{Values: []float64{100, 0}}},
		{"negative price", gbm.TerminalPrices{Values: []float64{-3}}},
		{"NaN price", gbm.TerminalPrices{Values: []float64{math.NaN()}}},
		{"infinite price", gbm.TerminalPrices{Values: []float64{math.Inf(1)}}},
		{"too many pairs", gbm.TerminalPrices{Values: []float64{100, 101}, Pairs: 2}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Price(tt.tp, p)
			if assert.Error(t, err) {
				assert.True(t, errors.Is(err, option.ErrInvalidInput), "got %v", err)
			}
			_, _, err = PriceType(tt.tp, p, option.Put)
			assert.True(t, errors.Is(err, option.ErrInvalidInput))
		})
	}
}

func TestPriceType(t *testing.T) {
	p := option.Params{S0: 100, K: 100, R: 0, Sigma: 0.2, T: 1, Steps: 1, NPaths: 4}
	tp := gbm.TerminalPrices{Values: []float64{90, 110, 100, 120}}

	call, _, err := PriceType(tp, p, option.Call)
	require.NoError(t, err)
	put, _, err := PriceType(tp, p, option.Put)
	require.NoError(t, err)

	res, err := Price(tp, p)
	require.NoError(t, err)
	assert.Equal(t, res.Call, call)
	assert.Equal(t, res.Put, put)
}

func TestPayoff(t *testing.T) {
	assert.Equal(t, 5.0, Payoff(option.Call, 105, 100))
	assert.Equal(t, 0.0, Payoff(option.Call, 95, 100))
	assert.Equal(t, 5.0, Payoff(option.Put, 95, 100))
	assert.Equal(t, 0.0, Payoff(option.Put, 105, 100))
}

func TestPrice_ConvergesToBlackScholes(t *testing.T) {
	if testing.Short() {
		t.Skip("long running")
	}

	p := referenceParams()
	bs := blackscholes.Price(p)
	assert.InDelta(t, 10.4506, bs.Call, 1e-4)

	const runs = 20
	within := 0
	for seed := uint64(1); seed <= runs; seed++ {
		paths, err := gbm.Simulate(context.Background(), p, rand.NewSource(seed))
		require.NoError(t, err)

		res, err := Price(paths.Terminal(), p)
		require.NoError(t, err)
		if math.Abs(res.Call-bs.Call) <= 3*res.CallStdErr {
			within++
		}
	}
	assert.GreaterOrEqual(t, within, runs-1, "monte carlo call outside 3 standard errors too often")
}

func TestPrice_AntitheticReducesStdErr(t *testing.T) {
	p := referenceParams()
	p.Steps = 12

	for _, sigma := range []float64{0.1, 0.2, 0.5} {
		p.Sigma = sigma

		anti, err := gbm.Simulate(context.Background(), p, rand.NewSource(99), gbm.WithSampling(gbm.Antithetic))
		require.NoError(t, err)
		indep, err := gbm.Simulate(context.Background(), p, rand.NewSource(99), gbm.WithSampling(gbm.Independent))
		require.NoError(t, err)

		a, err := Price(anti.Terminal(), p)
		require.NoError(t, err)
		b, err := Price(indep.Terminal(), p)
		require.NoError(t, err)

		assert.Less(t, a.CallStdErr, b.CallStdErr, "sigma=%v", sigma)
		assert.Less(t, a.PutStdErr, b.PutStdErr, "sigma=%v", sigma)
	}
}

func TestPrice_StdErrShrinksWithPaths(t *testing.T) {
	p := referenceParams()
	p.Steps = 4

	var prev float64
	for i, n := range []int{1000, 4000, 16000} {
		p.NPaths = n
		paths, err := gbm.Simulate(context.Background(), p, rand.NewSource(5))
		require.NoError(t, err)
		res, err := Price(paths.Terminal(), p)
		require.NoError(t, err)
		if i > 0 {
			// quadrupling the paths roughly halves the error
			assert.InDelta(t, 0.5, res.CallStdErr/prev, 0.1, "paths=%d", n)
		}
		prev = res.CallStdErr
	}
}

func BenchmarkPrice(b *testing.B) {
	p := referenceParams()
	paths, err := gbm.Simulate(context.Background(), p, rand.NewSource(1))
	if err != nil {
		b.Fatal(err)
	}
	tp := paths.Terminal()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = Price(tp, p)
	}
}
