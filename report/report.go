package report

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/shopspring/decimal"

	"github.com/charlerive/mcoption/blackscholes"
	"github.com/charlerive/mcoption/engine"
	"github.com/charlerive/mcoption/option"
)

// HedgeContracts is the position size used in the hedging interpretation.
const HedgeContracts = 100

func NewTableStyle() table.Style {
	style := table.StyleRounded
	style.Format.Header = text.FormatDefault
	style.Options.SeparateRows = false
	return style
}

func newTable(w io.Writer, title string) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(NewTableStyle())
	t.SetTitle(title)
	return t
}

// Render writes the price comparison, pricing error, Greeks and hedge
// interpretation of res as terminal tables.
func Render(w io.Writer, res *engine.Result) {
	p := res.Params
	fmt.Fprintf(w, "%s\n", strings.Repeat("=", 80))
	fmt.Fprintf(w, "MONTE CARLO OPTION PRICING  %s  seed=%d\n", p, res.Seed)
	fmt.Fprintf(w, "%s\n", strings.Repeat("=", 80))

	prices := newTable(w, "Option price comparison")
	prices.AppendHeader(table.Row{"Method", "Call", "Put"})
	prices.AppendRow(table.Row{
		fmt.Sprintf("Monte Carlo (%s)", res.Sampling),
		withStdErr(res.MonteCarlo.Call, res.MonteCarlo.CallStdErr),
		withStdErr(res.MonteCarlo.Put, res.MonteCarlo.PutStdErr),
	})
	prices.AppendRow(table.Row{"Black-Scholes", formatPrice(res.Analytical.Call), formatPrice(res.Analytical.Put)})
	prices.Render()

	accuracy := newTable(w, "Pricing accuracy")
	accuracy.AppendHeader(table.Row{"Side", "MC - BS", "Relative", "Std errors"})
	for _, side := range []struct {
		t   option.Type
		gap engine.Gap
	}{{option.Call, res.CallGap()}, {option.Put, res.PutGap()}} {
		accuracy.AppendRow(table.Row{
			side.t.String(),
			fmt.Sprintf("%+.6f", side.gap.Abs),
			fmt.Sprintf("%+.2f%%", 100*side.gap.Relative),
			fmt.Sprintf("%+.2f", side.gap.StdErrs),
		})
	}
	accuracy.Render()

	call := blackscholes.NewBSMFromParams(option.Call, p)
	put := blackscholes.NewBSMFromParams(option.Put, p)
	greeks := newTable(w, "Greeks (Black-Scholes)")
	greeks.AppendHeader(table.Row{"Greek", "Call", "Put"})
	greeks.AppendRow(table.Row{"Delta", formatGreek(res.Greeks.DeltaCall), formatGreek(res.Greeks.DeltaPut)})
	greeks.AppendRow(table.Row{"Gamma", formatGreek(res.Greeks.Gamma), formatGreek(res.Greeks.Gamma)})
	greeks.AppendRow(table.Row{"Vega (1 vol pt)", formatGreek(call.Vega), formatGreek(put.Vega)})
	greeks.AppendRow(table.Row{"Theta (1 day)", formatGreek(call.Theta), formatGreek(put.Theta)})
	greeks.AppendRow(table.Row{"Rho (1 rate pt)", formatGreek(call.Rho), formatGreek(put.Rho)})
	greeks.Render()

	if res.Greeks.Degenerate {
		fmt.Fprintln(w, "degenerate market (zero volatility or maturity): prices are intrinsic values against the discounted strike")
	}

	fmt.Fprintln(w, "\nHEDGING")
	for _, line := range HedgeLines(res.Greeks) {
		fmt.Fprintln(w, "  "+line)
	}
}

// HedgeShares is the number of shares, rounded to whole shares, that
// offsets the delta of the given number of contracts. Positive means long.
func HedgeShares(contracts int64, delta float64) decimal.Decimal {
	return decimal.NewFromInt(contracts).Mul(decimal.NewFromFloat(delta)).Neg().Round(0)
}

func HedgeLines(g option.GreeksResult) []string {
	var lines []string
	for _, t := range []option.Type{option.Call, option.Put} {
		shares := HedgeShares(HedgeContracts, g.Delta(t))
		side := "long"
		if shares.IsNegative() {
			side = "short"
		}
		lines = append(lines, fmt.Sprintf("Delta (%s) %.4f: to hedge %d long %s options, %s %s shares",
			t, g.Delta(t), HedgeContracts, t, side, shares.Abs().String()))
	}

	if math.IsInf(g.Gamma, 0) {
		lines = append(lines, "Gamma is unbounded: delta jumps at the discounted strike")
	} else {
		lines = append(lines, fmt.Sprintf("Gamma %.6f: delta changes by %s per 1.00 move in the underlying",
			g.Gamma, decimal.NewFromFloat(g.Gamma).Round(6).String()))
	}
	return lines
}

// Summary is the JSON form of a result, without the path matrix.
type Summary struct {
	Params     option.Params        `json:"params"`
	Seed       uint64               `json:"seed"`
	Sampling   string               `json:"sampling"`
	MonteCarlo option.PricingResult `json:"monte_carlo"`
	Analytical option.PricingResult `json:"black_scholes"`
	Greeks     option.GreeksResult  `json:"greeks"`
}

func NewSummary(res *engine.Result) Summary {
	g := res.Greeks
	// JSON has no infinity
	if math.IsInf(g.Gamma, 0) {
		g.Gamma = math.MaxFloat64
	}
	return Summary{
		Params:     res.Params,
		Seed:       res.Seed,
		Sampling:   res.Sampling.String(),
		MonteCarlo: res.MonteCarlo,
		Analytical: res.Analytical,
		Greeks:     g,
	}
}

func WriteJSON(w io.Writer, res *engine.Result) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(NewSummary(res))
}

func withStdErr(price, stdErr float64) string {
	return fmt.Sprintf("%.4f ± %.4f", price, stdErr)
}

func formatPrice(v float64) string {
	return fmt.Sprintf("%.4f", v)
}

func formatGreek(v float64) string {
	return fmt.Sprintf("%.6f", v)
}
