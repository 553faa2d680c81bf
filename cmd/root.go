package cmd

import (
	"context"
	"os"
	"os/signal"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/charlerive/mcoption/config"
)

var v = config.New()

var RootCmd = &cobra.Command{
	Use:   "mcoption",
	Short: "monte carlo european option pricer",
	Long:  "prices european calls and puts by simulating geometric brownian motion and checks them against black-scholes",

	// SilenceUsage is an option to silence usage when an error occurs.
	SilenceUsage: true,

	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if v.GetBool("debug") {
			log.SetLevel(log.DebugLevel)
		}
		return config.ReadFile(v, v.GetString("config"))
	},
}

func init() {
	RootCmd.PersistentFlags().Bool("debug", false, "debug flag")
	RootCmd.PersistentFlags().String("config", "", "config file")

	log.SetFormatter(&log.TextFormatter{
		FullTimestamp: true,
	})
}

func bindFlags(v *viper.Viper, cmd *cobra.Command) {
	if err := v.BindPFlags(cmd.PersistentFlags()); err != nil {
		log.WithError(err).Errorf("failed to bind persistent flags. please check the flag settings.")
	}
	if err := v.BindPFlags(cmd.Flags()); err != nil {
		log.WithError(err).Errorf("failed to bind local flags. please check the flag settings.")
	}
}

func Execute() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	bindFlags(v, RootCmd)
	if err := RootCmd.ExecuteContext(ctx); err != nil {
		cancel()
		log.WithError(err).Error("cmd error")
		os.Exit(1)
	}
}
