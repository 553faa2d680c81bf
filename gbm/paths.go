package gbm

import (
	"gonum.org/v1/gonum/mat"
)

// Paths is a collection of simulated price paths. Row i of Values is one
// path over Times, starting at S0. For i < Pairs, rows i and Pairs+i were
// driven by the same shocks with opposite signs; rows from 2*Pairs on are
// unpaired.
type Paths struct {
	Times    []float64
	Values   *mat.Dense
	Pairs    int
	Sampling Sampling
}

// Len returns the number of paths.
func (p *Paths) Len() int {
	r, _ := p.Values.Dims()
	return r
}

// Steps returns the number of time increments of each path.
func (p *Paths) Steps() int {
	return len(p.Times) - 1
}

// Path returns a copy of path i.
func (p *Paths) Path(i int) []float64 {
	return mat.Row(nil, i, p.Values)
}

// Partner returns the antithetic partner of path i, if it has one.
func (p *Paths) Partner(i int) (int, bool) {
	return partner(i, p.Pairs)
}

// Min and Max return the extreme prices over all paths and times.
func (p *Paths) Min() float64 {
	return mat.Min(p.Values)
}

func (p *Paths) Max() float64 {
	return mat.Max(p.Values)
}

// Terminal extracts S_T of every path, keeping the pairing layout.
func (p *Paths) Terminal() TerminalPrices {
	return TerminalPrices{
		Values: mat.Col(nil, p.Steps(), p.Values),
		Pairs:  p.Pairs,
	}
}

// TerminalPrices are the final values of a path collection. Values[i] and
// Values[Pairs+i] are antithetic partners for i < Pairs.
type TerminalPrices struct {
	Values []float64
	Pairs  int
}

func (tp TerminalPrices) Len() int {
	return len(tp.Values)
}

// Unpaired returns the number of values without an antithetic partner.
func (tp TerminalPrices) Unpaired() int {
	return len(tp.Values) - 2*tp.Pairs
}

func (tp TerminalPrices) Partner(i int) (int, bool) {
	return partner(i, tp.Pairs)
}

func partner(i, pairs int) (int, bool) {
	switch {
	case i < pairs:
		return pairs + i, true
	case i < 2*pairs:
		return i - pairs, true
	}
	return -1, false
}
