package cmd

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/zostay/go-mailenc/internal/config"
)

var (
	rootCmd = &cobra.Command{
		Use:               "mailenc",
		Short:             "Encode mail trees described in YAML",
		SilenceUsage:      true,
		PersistentPreRunE: setup,
	}

	configPath string

	cfg    *config.Config
	logger zerolog.Logger
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "YAML configuration file")
}

func setup(_ *cobra.Command, _ []string) error {
	var err error
	if configPath != "" {
		cfg, err = config.LoadFromFile(configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return err
	}

	lvl, err := cfg.LogLevel()
	if err != nil {
		return err
	}
	logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(lvl).
		With().Timestamp().Logger()
	return nil
}

// Execute runs the command line.
func Execute() error {
	return rootCmd.Execute()
}
