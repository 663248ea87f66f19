package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/subfolio-dev/subfolio/internal/config"
	"github.com/subfolio-dev/subfolio/internal/logging"
	"go.uber.org/zap"
)

var (
	// Global flags
	configPath string
	verbose    bool

	cfg    config.Config
	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "subfolio",
	Short: "Multi-tenant portfolio builder",
	Long: `subfolio hosts one portfolio per subdomain. Owners edit their profile,
work history, projects and contact links in the dashboard, and each
subdomain publishes the result at <name>.<root domain>.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		dotenvErr := config.LoadDotenv()

		var err error
		cfg, err = config.Load(configPath)
		if err != nil {
			return err
		}

		logger, err = logging.New(verbose || cfg.Debug())
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}

		if dotenvErr != nil {
			logger.Warn("no .env file loaded", zap.Error(dotenvErr))
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "optional YAML config file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")

	rootCmd.AddCommand(serveCmd, migrateCmd, bootstrapCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
