package fitnutrition

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/coocood/freecache"
	"github.com/spf13/cobra"

	"github.com/madDev-12/fitnutrition/internal/api"
	"github.com/madDev-12/fitnutrition/internal/app"
	"github.com/madDev-12/fitnutrition/internal/config"
	"github.com/madDev-12/fitnutrition/internal/logging"
)

var (
	configPath string
	dbPath     string
	apiURL     string
	logLevel   string
	assumeYes  bool

	settings = config.Default()
	// responseCache is shared by every client built during one invocation.
	responseCache *freecache.Cache
)

var rootCmd = &cobra.Command{
	Use:   "fitnutrition",
	Short: "fitnutrition tracks meals, plans, workouts and body progress from your terminal",
	Long: "fitnutrition is a terminal client for the fitness and nutrition tracker backend: " +
		"daily dashboard, meal logging, meal plans, recipes, body measurements, workouts and progress reports.",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return loadSettings(cmd)
	},
}

func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to config TOML file")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "Path to local state SQLite database")
	rootCmd.PersistentFlags().StringVar(&apiURL, "api-url", "", "Backend API base URL (overrides config and "+config.EnvAPIURL+")")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level: trace|debug|info|warn|error")
	rootCmd.PersistentFlags().BoolVarP(&assumeYes, "yes", "y", false, "Skip confirmation prompts")
}

func loadSettings(cmd *cobra.Command) error {
	path, err := resolveConfigPath()
	if err != nil {
		return err
	}
	cfg, err := config.Load(path, ".env")
	if err != nil {
		return err
	}
	if apiURL != "" {
		cfg.API.BaseURL = apiURL
	}
	if logLevel != "" {
		cfg.Log.Level = logLevel
	}
	logging.Setup(logging.LoggerSetupParams{
		LogFileName:   cfg.Log.Path,
		LogToStderr:   cfg.Log.ToStderr,
		LogLevel:      cfg.Log.Level,
		LogFormatJSON: cfg.Log.JSON,
		Stderr:        cmd.ErrOrStderr(),
	})
	settings = cfg
	responseCache = nil
	if cfg.Cache.SizeMB > 0 {
		responseCache = api.NewCache(cfg.Cache.SizeMB)
	}
	return nil
}

func resolveConfigPath() (string, error) {
	if configPath != "" {
		return configPath, nil
	}
	return app.DefaultConfigPath()
}

func resolveDBPath() (string, error) {
	if dbPath != "" {
		return dbPath, nil
	}
	return app.DefaultDBPath()
}
