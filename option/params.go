package option

import (
	"fmt"
	"math"

	"github.com/pkg/errors"
)

// Type is the option direction, call or put.
type Type string

const (
	Call Type = "c"
	Put  Type = "p"
)

func (t Type) String() string {
	switch t {
	case Call:
		return "call"
	case Put:
		return "put"
	}
	return string(t)
}

// ParseType accepts "c", "call", "p" and "put".
func ParseType(s string) (Type, error) {
	switch s {
	case "c", "call", "C", "CALL", "Call":
		return Call, nil
	case "p", "put", "P", "PUT", "Put":
		return Put, nil
	}
	return "", errors.Wrapf(ErrInvalidParameter, "unknown option type %q", s)
}

// Params are the inputs of one pricing run of a European option.
type Params struct {
	S0     float64 `json:"s0" mapstructure:"s0"`         // 标的初始价格
	K      float64 `json:"strike" mapstructure:"strike"` // 行权价格
	R      float64 `json:"rate" mapstructure:"rate"`     // 无风险利率
	Sigma  float64 `json:"sigma" mapstructure:"sigma"`   // 年化波动率
	T      float64 `json:"t" mapstructure:"t"`           // 到期时间（年）
	Steps  int     `json:"steps" mapstructure:"steps"`   // 每条路径的时间步数
	NPaths int     `json:"paths" mapstructure:"paths"`   // 模拟路径数
}

// Validate checks every field once, at the boundary, so that the
// numeric components can trust their input.
func (p Params) Validate() error {
	fields := []struct {
		name string
		v    float64
	}{{"S0", p.S0}, {"K", p.K}, {"r", p.R}, {"sigma", p.Sigma}, {"T", p.T}}
	for _, f := range fields {
		if math.IsNaN(f.v) || math.IsInf(f.v, 0) {
			return errors.Wrapf(ErrInvalidParameter, "%s must be finite, got %v", f.name, f.v)
		}
	}

	switch {
	case p.S0 <= 0:
		return errors.Wrapf(ErrInvalidParameter, "S0 must be positive, got %v", p.S0)
	case p.K <= 0:
		return errors.Wrapf(ErrInvalidParameter, "K must be positive, got %v", p.K)
	case p.T <= 0:
		return errors.Wrapf(ErrInvalidParameter, "T must be positive, got %v", p.T)
	case p.Sigma < 0:
		return errors.Wrapf(ErrInvalidParameter, "sigma must not be negative, got %v", p.Sigma)
	case p.Steps < 1:
		return errors.Wrapf(ErrInvalidParameter, "steps must be at least 1, got %d", p.Steps)
	case p.NPaths < 1:
		return errors.Wrapf(ErrInvalidParameter, "paths must be at least 1, got %d", p.NPaths)
	}
	return nil
}

// Discount returns exp(-rT).
func (p Params) Discount() float64 {
	return math.Exp(-p.R * p.T)
}

func (p Params) String() string {
	return fmt.Sprintf("S0=%v K=%v r=%v sigma=%v T=%v steps=%d paths=%d", p.S0, p.K, p.R, p.Sigma, p.T, p.Steps, p.NPaths)
}
