package config

import (
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/viper"

	"github.com/charlerive/mcoption/gbm"
	"github.com/charlerive/mcoption/option"
)

const EnvPrefix = "MCOPTION"

// Settings is one CLI run: the option parameters plus how to simulate and
// where to write the outputs.
type Settings struct {
	Params option.Params

	Seed     uint64
	Seeded   bool
	Sampling gbm.Sampling
	Workers  int

	ChartDir    string
	MetricsFile string
	JSON        bool
}

// New returns a viper instance with the reference-case defaults and
// MCOPTION_* environment binding ("-" in keys becomes "_").
func New() *viper.Viper {
	v := viper.New()
	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	return v
}

func SetDefaults(v *viper.Viper) {
	v.SetDefault("s0", 100.0)
	v.SetDefault("strike", 100.0)
	v.SetDefault("rate", 0.05)
	v.SetDefault("sigma", 0.2)
	v.SetDefault("t", 1.0)
	v.SetDefault("steps", 252)
	v.SetDefault("paths", 5000)
	v.SetDefault("sampling", gbm.Antithetic.String())
	v.SetDefault("workers", 0)
	v.SetDefault("chart-dir", "")
	v.SetDefault("metrics-file", "")
	v.SetDefault("json", false)
}

// ReadFile merges a YAML (or any viper supported) config file into v.
func ReadFile(v *viper.Viper, filename string) error {
	if filename == "" {
		return nil
	}
	v.SetConfigFile(filename)
	if err := v.ReadInConfig(); err != nil {
		return errors.Wrapf(err, "read config file %s", filename)
	}
	return nil
}

// Load reads Settings out of v. Option parameters are not validated here;
// that happens once when pricing starts.
func Load(v *viper.Viper) (*Settings, error) {
	sampling, err := gbm.ParseSampling(v.GetString("sampling"))
	if err != nil {
		return nil, err
	}

	s := &Settings{
		Params: option.Params{
			S0:     v.GetFloat64("s0"),
			K:      v.GetFloat64("strike"),
			R:      v.GetFloat64("rate"),
			Sigma:  v.GetFloat64("sigma"),
			T:      v.GetFloat64("t"),
			Steps:  v.GetInt("steps"),
			NPaths: v.GetInt("paths"),
		},
		Sampling:    sampling,
		Workers:     v.GetInt("workers"),
		ChartDir:    v.GetString("chart-dir"),
		MetricsFile: v.GetString("metrics-file"),
		JSON:        v.GetBool("json"),
	}

	if v.IsSet("seed") {
		s.Seed = v.GetUint64("seed")
		s.Seeded = true
	}
	return s, nil
}
