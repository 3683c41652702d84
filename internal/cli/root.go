// Package cli implements the partsync-reconcile batch command.
package cli

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"partsync/internal/config"
	"partsync/internal/logging"
)

// app carries what every subcommand needs once flags are parsed.
type app struct {
	envFiles []string
	cfg      *config.Config
	logger   *zap.Logger
}

// NewRootCommand builds the command tree.
func NewRootCommand() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:   "partsync-reconcile",
		Short: "Reconcile part models against their drawings from job files",
		Long: `partsync-reconcile runs the reconciliation engine and property mapper on
job files (YAML or JSON) without a database, printing the results as JSON.

Configuration is read from PARTSYNC_* environment variables, optionally
loaded from .env files, and from PARTSYNC_CONFIG_FILE.`,
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
		PersistentPostRun: func(*cobra.Command, []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}
	root.PersistentFlags().StringSliceVar(&a.envFiles, "env-file", []string{".env"}, "dotenv files to load before reading configuration")

	root.AddCommand(newRunCommand(a), newKeysCommand())
	return root
}

func (a *app) setup(cmd *cobra.Command, _ []string) error {
	for _, f := range a.envFiles {
		// A missing .env is normal outside development.
		_ = godotenv.Load(f)
	}
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.logger = logging.Must(&cfg.Log, "partsync-reconcile")
	return nil
}

// Execute runs the root command with signal-aware cancellation and returns the exit code.
func Execute() int {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := NewRootCommand().ExecuteContext(ctx); err != nil {
		return 1
	}
	return 0
}
