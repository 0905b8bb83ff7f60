package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/chatdigest/internal/app"
	"github.com/custodia-labs/chatdigest/internal/config"
	"github.com/custodia-labs/chatdigest/internal/logger"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// SetVersionInfo sets the version information injected via ldflags.
func SetVersionInfo(v, c, d string) {
	version = v
	commit = c
	date = d
}

var (
	cfgFile string
	verbose bool
)

// application is opened on first use by a command that needs it.
// Tests install one built over in-memory stores.
var application *app.App

var rootCmd = &cobra.Command{
	Use:   "chatdigest",
	Short: "Browse and search chat group summaries",
	Long: `chatdigest publishes periodic summaries of chat groups as a searchable,
topic-aware corpus.

Run "chatdigest generate" after new summaries are written to rebuild the
group list, search index and topic index. Browse the result from the
terminal (search, topics, tui), over HTTP (serve) or from an AI assistant
(mcp serve).`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "settings file (default ./chatdigest.toml or ~/.chatdigest/chatdigest.toml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "print debug output")
}

// Execute runs the root command until it finishes or the process is interrupted.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	defer closeApp()

	return rootCmd.ExecuteContext(ctx)
}

// loadApp returns the wired application, opening it from the settings file
// on first use.
func loadApp(cmd *cobra.Command) (*app.App, error) {
	if application != nil {
		return application, nil
	}

	settings, err := config.Load(cfgFile)
	if err != nil {
		return nil, err
	}
	if settings.ConfigFile != "" {
		logger.Debug("Settings: %s", settings.ConfigFile)
	}

	a, err := app.Open(cmd.Context(), settings)
	if err != nil {
		return nil, err
	}
	application = a
	return a, nil
}

func closeApp() {
	if application == nil {
		return
	}
	if err := application.Close(); err != nil {
		logger.Warn("closing stores: %v", err)
	}
	application = nil
}
