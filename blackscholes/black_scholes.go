package blackscholes

import (
	"math"

	"gonum.org/v1/gonum/stat/distuv"

	"github.com/charlerive/mcoption/option"
)

const (
	DaysPerYear = 365
	// Vega and Rho are quoted per 1% move.
	PointScale = 100
)

// Black–Scholes model
// see wiki: https://en.wikipedia.org/wiki/Black%E2%80%93Scholes_model
type BSM struct {
	D     option.Type `json:"direction"`     // direction 期权方向 看涨：c 看跌：p
	S     float64     `json:"subject_price"` // 标的价格
	X     float64     `json:"strike_price"`  // 期权行权价格（敲定价格）
	T     float64     `json:"rest_time"`     // 剩余期限（年）
	R     float64     `json:"price_rate"`    // 无风险利率
	Iv    float64     `json:"volatility"`    // 年化波动率
	Price float64     `json:"option_price"`  // 理论价格
	D1    float64     `json:"d1"`            // 中间值d1
	Nd1   float64     `json:"nd1"`           // 中间值nd1, N'(d1)
	D2    float64     `json:"d2"`            // 中间值d2
	Delta float64     `json:"delta"`         // 希腊值delta, 期权价格对underlying价格的敏感度
	Gamma float64     `json:"gamma"`         // 希腊值gamma, delta对underlying价格的敏感度
	Vega  float64     `json:"vega"`          // 希腊值vega, 每1%波动率
	Theta float64     `json:"theta"`         // 希腊值theta, 每自然日
	Rho   float64     `json:"rho"`           // 希腊值rho, 每1%利率

	// Degenerate is set when Iv*sqrt(T) is zero. D1, D2 and Nd1 are then
	// left at zero and every other field holds its deterministic limit.
	Degenerate bool `json:"degenerate"`
}

func NewBSM(direction option.Type, S float64, X float64, T float64, r float64, iv float64) *BSM {
	bsm := BSM{
		D:  direction,
		S:  S,
		X:  X,
		T:  T,
		R:  r,
		Iv: iv,
	}
	bsm.init()
	return &bsm
}

// NewBSMFromParams builds the model for one side of p; Steps and NPaths are ignored.
func NewBSMFromParams(direction option.Type, p option.Params) *BSM {
	return NewBSM(direction, p.S0, p.K, p.T, p.R, p.Sigma)
}

func (bsm *BSM) init() {
	// sigma*sqrt(T) can underflow to zero for tiny positive inputs
	if bsm.Iv*math.Sqrt(bsm.T) == 0 {
		bsm.Degenerate = true
		bsm.calcLimits()
		return
	}

	// 计算d1
	bsm.calcD1()
	// 计算d2
	bsm.calcD2()
	// 计算nd1
	bsm.calcNd1()
	bsm.calcPrice()
	bsm.calcDelta()
	bsm.calcGamma()
	bsm.calcVega()
	bsm.calcTheta()
	bsm.calcRho()
}

func (bsm *BSM) calcD1() {
	bsm.D1 = D1(bsm.S, bsm.X, bsm.R, bsm.Iv, bsm.T)
}

func (bsm *BSM) calcD2() {
	bsm.D2 = bsm.D1 - bsm.Iv*math.Sqrt(bsm.T)
}

func (bsm *BSM) calcNd1() {
	bsm.Nd1 = Pdf(bsm.D1)
}

func (bsm *BSM) calcPrice() {
	if bsm.D == option.Put {
		bsm.Price = bsm.X*math.Exp(-bsm.R*bsm.T)*Cdf(-bsm.D2) - bsm.S*Cdf(-bsm.D1)
	} else {
		bsm.Price = bsm.S*Cdf(bsm.D1) - bsm.X*math.Exp(-bsm.R*bsm.T)*Cdf(bsm.D2)
	}
}

func (bsm *BSM) calcDelta() {
	if bsm.D == option.Put {
		bsm.Delta = Cdf(bsm.D1) - 1
	} else {
		bsm.Delta = Cdf(bsm.D1)
	}
}

func (bsm *BSM) calcGamma() {
	bsm.Gamma = bsm.Nd1 / (bsm.S * bsm.Iv * math.Sqrt(bsm.T))
}

func (bsm *BSM) calcVega() {
	bsm.Vega = bsm.S * math.Sqrt(bsm.T) * bsm.Nd1 / PointScale
}

func (bsm *BSM) calcTheta() {
	decay := -bsm.S * bsm.Iv / (2 * math.Sqrt(bsm.T)) * bsm.Nd1
	carry := bsm.R * bsm.X * math.Exp(-bsm.R*bsm.T)
	if bsm.D == option.Put {
		bsm.Theta = (decay + carry*Cdf(-bsm.D2)) / DaysPerYear
	} else {
		bsm.Theta = (decay - carry*Cdf(bsm.D2)) / DaysPerYear
	}
}

func (bsm *BSM) calcRho() {
	if bsm.D == option.Put {
		bsm.Rho = -bsm.T * bsm.X * math.Exp(-bsm.R*bsm.T) * Cdf(-bsm.D2) / PointScale
	} else {
		bsm.Rho = bsm.T * bsm.X * math.Exp(-bsm.R*bsm.T) * Cdf(bsm.D2) / PointScale
	}
}

// calcLimits fills the zero-volatility / zero-maturity limit. The
// underlying then grows deterministically at r, so the option is worth
// its intrinsic value against the discounted strike.
func (bsm *BSM) calcLimits() {
	pvStrike := bsm.X * math.Exp(-bsm.R*bsm.T)
	callDelta := stepDelta(bsm.S, pvStrike)

	if bsm.D == option.Put {
		bsm.Price = math.Max(pvStrike-bsm.S, 0)
		bsm.Delta = callDelta - 1
		bsm.Theta = bsm.R * pvStrike * (1 - callDelta) / DaysPerYear
		bsm.Rho = -bsm.T * pvStrike * (1 - callDelta) / PointScale
	} else {
		bsm.Price = math.Max(bsm.S-pvStrike, 0)
		bsm.Delta = callDelta
		bsm.Theta = -bsm.R * pvStrike * callDelta / DaysPerYear
		bsm.Rho = bsm.T * pvStrike * callDelta / PointScale
	}

	bsm.Gamma = limitGamma(bsm.S, pvStrike)
	bsm.Vega = 0
}

// stepDelta is lim N(d1) as sigma*sqrt(T) goes to zero.
func stepDelta(s, pvStrike float64) float64 {
	switch {
	case s > pvStrike:
		return 1
	case s < pvStrike:
		return 0
	}
	return 0.5
}

// limitGamma is 0 off the discounted strike and +Inf on it, where Delta jumps.
func limitGamma(s, pvStrike float64) float64 {
	if s == pvStrike {
		return math.Inf(1)
	}
	return 0
}

// D1 is the d1 term of the Black-Scholes formula. It is undefined for
// sigma == 0 or T == 0.
func D1(S, K, r, sigma, T float64) float64 {
	return (math.Log(S/K) + (r+0.5*sigma*sigma)*T) / (sigma * math.Sqrt(T))
}

// Cdf is the cumulative standard normal distribution function.
func Cdf(x float64) float64 {
	return distuv.UnitNormal.CDF(x)
}

// Pdf is the standard normal density.
func Pdf(x float64) float64 {
	return distuv.UnitNormal.Prob(x)
}
