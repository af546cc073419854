package main

import (
	"os"

	"asset-custody/internal/config"
	"asset-custody/internal/infrastructure/db"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

var envFile string

func main() {
	rootCmd := &cobra.Command{
		Use:           "custody-api",
		Short:         "Hospital asset custody service",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context())
		},
	}
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", "", "dotenv file applied before reading the environment (default .env)")

	rootCmd.AddCommand(newServeCmd())
	rootCmd.AddCommand(newMigrateCmd())
	rootCmd.AddCommand(newUsersCmd())

	if err := rootCmd.Execute(); err != nil {
		logrus.WithError(err).Error("custody-api failed")
		os.Exit(1)
	}
}

// loadConfig reads and validates configuration and applies the log level.
func loadConfig() (*config.Config, error) {
	var cfg *config.Config
	if envFile != "" {
		cfg = config.Load(envFile)
	} else {
		cfg = config.Load()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	lvl, _ := logrus.ParseLevel(cfg.LogLevel)
	logrus.SetLevel(lvl)
	logrus.SetFormatter(&logrus.JSONFormatter{})
	return cfg, nil
}

func openDB(cfg *config.Config) (*gorm.DB, error) {
	return db.OpenGorm(cfg.DBDriver, cfg.DSN())
}
