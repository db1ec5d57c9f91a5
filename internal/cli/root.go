package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"expensetracker/internal/backend"
	"expensetracker/internal/core"
	"expensetracker/internal/session"
)

// NewRootCommand returns the expense-tracker command. It runs the interactive
// menu until the user quits or input ends.
func NewRootCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "expense-tracker",
		Short: "Track personal expenses in a spreadsheet",
		Long: `expense-tracker records personal expenses in a Google Sheets worksheet
(or a local SQLite/in-memory table) and prints yearly and monthly statements
and comparisons from an interactive menu.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runSession,
	}
}

func runSession(cmd *cobra.Command, _ []string) error {
	LoadEnvFile()

	cfg, err := LoadAndValidateConfig()
	if err != nil {
		return err
	}
	logger := SetupLogger(cfg.SlogLevel())

	backendCfg, err := backend.FromAppConfig(cfg)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	res, err := backend.NewFactory(logger).CreateBackend(ctx, backendCfg)
	if err != nil {
		return fmt.Errorf("create %s backend: %w", backendCfg.Type, err)
	}
	defer func() {
		if cerr := res.Cleanup(); cerr != nil {
			logger.Warn("Backend cleanup failed", "error", cerr)
		}
	}()

	logger.Debug("Starting session", "backend", string(backendCfg.Type))
	return session.New(session.Config{
		Service:    res.Service,
		Categories: core.Categories(),
		In:         cmd.InOrStdin(),
		Out:        cmd.OutOrStdout(),
		ExitPause:  cfg.ExitPause,
	}).Run(ctx)
}
