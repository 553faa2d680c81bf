package cmd

import (
	"os"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/charlerive/mcoption/chart"
	"github.com/charlerive/mcoption/config"
	"github.com/charlerive/mcoption/engine"
	"github.com/charlerive/mcoption/report"
)

func init() {
	priceCmd.Flags().Float64("s0", 100, "initial underlying price")
	priceCmd.Flags().Float64("strike", 100, "strike price")
	priceCmd.Flags().Float64("rate", 0.05, "risk free rate")
	priceCmd.Flags().Float64("sigma", 0.2, "annualized volatility")
	priceCmd.Flags().Float64("t", 1.0, "time to maturity in years")
	priceCmd.Flags().Int("steps", 252, "time steps per path")
	priceCmd.Flags().Int("paths", 5000, "number of simulated paths")
	priceCmd.Flags().Uint64("seed", 0, "random seed, a time based seed is used when omitted")
	priceCmd.Flags().String("sampling", "antithetic", "path sampling: antithetic or independent")
	priceCmd.Flags().Int("workers", 0, "concurrent path workers, defaults to GOMAXPROCS")
	priceCmd.Flags().String("chart-dir", "", "write PNG charts into this directory")
	priceCmd.Flags().String("metrics-file", "", "write prometheus metrics to this textfile")
	priceCmd.Flags().Bool("json", false, "print the result as json")
	RootCmd.AddCommand(priceCmd)
}

var priceCmd = &cobra.Command{
	Use:   "price",
	Short: "price a european call and put",

	// SilenceUsage is an option to silence usage when an error occurs.
	SilenceUsage: true,

	PreRun: func(cmd *cobra.Command, args []string) {
		bindFlags(v, cmd)
	},

	RunE: func(cmd *cobra.Command, args []string) error {
		settings, err := config.Load(v)
		if err != nil {
			return err
		}
		return runPrice(cmd, settings)
	},
}

func runPrice(cmd *cobra.Command, settings *config.Settings) error {
	opts := []engine.Option{
		engine.WithSampling(settings.Sampling),
		engine.WithWorkers(settings.Workers),
	}
	if settings.Seeded {
		opts = append(opts, engine.WithSeed(settings.Seed))
	}
	if settings.ChartDir == "" {
		opts = append(opts, engine.WithoutPaths())
	}

	res, err := engine.Price(cmd.Context(), settings.Params, opts...)
	if err != nil {
		return err
	}

	if settings.JSON {
		if err := report.WriteJSON(cmd.OutOrStdout(), res); err != nil {
			return err
		}
	} else {
		report.Render(cmd.OutOrStdout(), res)
	}

	if settings.ChartDir != "" {
		if err := os.MkdirAll(settings.ChartDir, 0755); err != nil {
			return errors.Wrapf(err, "create chart dir %s", settings.ChartDir)
		}
		if _, err := chart.WriteAll(settings.ChartDir, res); err != nil {
			return err
		}
	}

	if settings.MetricsFile != "" {
		if err := prometheus.WriteToTextfile(settings.MetricsFile, prometheus.DefaultGatherer); err != nil {
			return errors.Wrapf(err, "write metrics file %s", settings.MetricsFile)
		}
		log.Infof("metrics written to %s", settings.MetricsFile)
	}
	return nil
}
