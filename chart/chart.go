package chart

import (
	"fmt"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"

	"github.com/charlerive/mcoption/blackscholes"
	"github.com/charlerive/mcoption/engine"
	"github.com/charlerive/mcoption/gbm"
	"github.com/charlerive/mcoption/option"
)

var log = logrus.WithField("component", "chart")

const (
	// DisplayPaths is how many simulated paths the path chart draws.
	DisplayPaths = 20

	// the delta and gamma charts span spot from 70% to 130% of S0
	spotLow    = 0.7
	spotHigh   = 1.3
	spotPoints = 50

	width  = 8 * vg.Inch
	height = 6 * vg.Inch
)

// WriteAll renders every chart of res into dir and returns the file names.
// The gamma chart is skipped in a degenerate market, where gamma is not a
// finite curve.
func WriteAll(dir string, res *engine.Result) ([]string, error) {
	var files []string

	if res.Paths != nil {
		f := filepath.Join(dir, "paths.png")
		if err := Paths(res.Paths, DisplayPaths, f); err != nil {
			return files, err
		}
		files = append(files, f)
	}

	f := filepath.Join(dir, "delta.png")
	if err := Delta(res.Params, res.Greeks, f); err != nil {
		return files, err
	}
	files = append(files, f)

	if !res.Greeks.Degenerate {
		f = filepath.Join(dir, "gamma.png")
		if err := Gamma(res.Params, res.Greeks, f); err != nil {
			return files, err
		}
		files = append(files, f)
	}

	f = filepath.Join(dir, "prices.png")
	if err := Prices(res, f); err != nil {
		return files, err
	}
	files = append(files, f)

	log.Infof("wrote %d charts to %s", len(files), dir)
	return files, nil
}

// Paths draws the first n simulated paths against time.
func Paths(paths *gbm.Paths, n int, filename string) error {
	p := plot.New()
	p.Title.Text = "GBM price paths (" + paths.Sampling.String() + ")"
	p.X.Label.Text = "Time (years)"
	p.Y.Label.Text = "Price"
	p.Add(plotter.NewGrid())

	if n > paths.Len() {
		n = paths.Len()
	}
	for i := 0; i < n; i++ {
		row := paths.Path(i)
		pts := make(plotter.XYs, len(row))
		for k, v := range row {
			pts[k].X = paths.Times[k]
			pts[k].Y = v
		}

		l, err := plotter.NewLine(pts)
		if err != nil {
			return errors.Wrapf(err, "path %d", i)
		}
		l.Color = plotutil.Color(i)
		l.Width = vg.Points(0.8)
		p.Add(l)
	}

	p.Y.Min = paths.Min()
	p.Y.Max = paths.Max()
	return save(p, filename)
}

// Delta draws call and put delta across spot, with the current deltas as
// horizontal reference lines.
func Delta(params option.Params, g option.GreeksResult, filename string) error {
	lo, hi := spotLow*params.S0, spotHigh*params.S0
	spots, deltas := blackscholes.DeltaCurve(params, lo, hi, spotPoints)

	callPts := make(plotter.XYs, len(spots))
	putPts := make(plotter.XYs, len(spots))
	for i := range spots {
		callPts[i].X, callPts[i].Y = spots[i], deltas[i]
		putPts[i].X, putPts[i].Y = spots[i], deltas[i]-1
	}

	p := plot.New()
	p.Title.Text = "Delta (hedging ratio)"
	p.X.Label.Text = "Underlying price"
	p.Y.Label.Text = "Delta"
	p.Y.Min, p.Y.Max = -1.5, 1.5
	p.Add(plotter.NewGrid())

	for i, side := range []struct {
		name    string
		pts     plotter.XYs
		current float64
	}{
		{"call", callPts, g.DeltaCall},
		{"put", putPts, g.DeltaPut},
	} {
		l, err := plotter.NewLine(side.pts)
		if err != nil {
			return errors.Wrapf(err, "%s delta curve", side.name)
		}
		l.Color = plotutil.Color(i)
		l.Width = vg.Points(2)

		ref, err := plotter.NewLine(plotter.XYs{{X: lo, Y: side.current}, {X: hi, Y: side.current}})
		if err != nil {
			return errors.Wrapf(err, "%s delta", side.name)
		}
		ref.Color = plotutil.Color(i)
		ref.Dashes = plotutil.Dashes(1)

		p.Add(l, ref)
		p.Legend.Add(fmt.Sprintf("BS %s: %.4f", side.name, side.current), l)
	}
	p.Legend.Top = true
	return save(p, filename)
}

// Gamma draws Black-Scholes gamma across spot, marking the current spot.
func Gamma(params option.Params, g option.GreeksResult, filename string) error {
	spots, gammas := blackscholes.GammaCurve(params, spotLow*params.S0, spotHigh*params.S0, spotPoints)

	pts := make(plotter.XYs, len(spots))
	for i := range spots {
		pts[i].X = spots[i]
		pts[i].Y = gammas[i]
	}

	p := plot.New()
	p.Title.Text = "Gamma (hedging convexity)"
	p.X.Label.Text = "Underlying price"
	p.Y.Label.Text = "Gamma"
	p.Add(plotter.NewGrid())

	curve, err := plotter.NewLine(pts)
	if err != nil {
		return errors.Wrap(err, "gamma curve")
	}
	curve.Color = plotutil.Color(2)
	curve.Width = vg.Points(2)

	current, err := plotter.NewScatter(plotter.XYs{{X: params.S0, Y: g.Gamma}})
	if err != nil {
		return errors.Wrap(err, "current gamma")
	}
	current.Color = plotutil.Color(0)

	p.Add(curve, current)
	p.Legend.Add("BS gamma", curve)
	p.Legend.Add("current", current)
	return save(p, filename)
}

// Prices draws Monte Carlo and Black-Scholes prices side by side.
func Prices(res *engine.Result, filename string) error {
	w := vg.Points(30)

	calls := plotter.Values{res.MonteCarlo.Call, res.Analytical.Call}
	puts := plotter.Values{res.MonteCarlo.Put, res.Analytical.Put}

	callBars, err := plotter.NewBarChart(calls, w)
	if err != nil {
		return errors.Wrap(err, "call bars")
	}
	callBars.Color = plotutil.Color(0)
	callBars.Offset = -w / 2

	putBars, err := plotter.NewBarChart(puts, w)
	if err != nil {
		return errors.Wrap(err, "put bars")
	}
	putBars.Color = plotutil.Color(1)
	putBars.Offset = w / 2

	p := plot.New()
	p.Title.Text = "Pricing comparison"
	p.Y.Label.Text = "Option price"
	p.Add(plotter.NewGrid(), callBars, putBars)
	p.Legend.Add("call", callBars)
	p.Legend.Add("put", putBars)
	p.Legend.Top = true
	p.NominalX("Monte Carlo ("+res.Sampling.String()+")", "Black-Scholes")
	return save(p, filename)
}

func save(p *plot.Plot, filename string) error {
	if err := p.Save(width, height, filename); err != nil {
		return errors.Wrapf(err, "save chart %s", filename)
	}
	return nil
}
