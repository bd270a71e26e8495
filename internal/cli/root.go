package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/gyaneshwarpardhi/inspector/internal/classifier"
	"github.com/gyaneshwarpardhi/inspector/internal/config"
	"github.com/gyaneshwarpardhi/inspector/internal/engine"
	"github.com/gyaneshwarpardhi/inspector/internal/logging"
)

var (
	configPath string
	logLevel   string
	logFormat  string
)

var rootCmd = &cobra.Command{
	Use:   "inspector",
	Short: "Correlate AI devtools inspector events into logical entries",
	Long:  "Classifies raw inspector events, pairs requests with their responses\nand projects each entry into panel rows. Runs as an HTTP service, an MCP\ntool server or an offline merge over a recorded stream.",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logging.Init(os.Stderr, logFormat, logging.ParseLevel(logLevel))
	},
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to lookup tables YAML (built-in tables when empty)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Log level (debug|info|warn|error)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "text", "Log format (text|json)")
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// newEngine loads the tables at path and builds an engine on them.
func newEngine(path string) (*config.Loader, *engine.Engine, error) {
	loader, err := config.NewLoader(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}
	cfg := loader.Config()
	eng := engine.New(classifier.New(cfg.Tables), cfg.Server)
	return loader, eng, nil
}
