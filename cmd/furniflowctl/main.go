// Command furniflowctl runs maintenance tasks against the configured store.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	_ "time/tzdata"

	"github.com/furniflow/erp-backend-go/internal/bootstrap"
	"github.com/furniflow/erp-backend-go/internal/config"
	"github.com/spf13/cobra"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "furniflowctl",
		Short:         "Operate a FurniFlow ERP store",
		SilenceUsage:  true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn})))
		},
	}
	root.AddCommand(
		newExportCmd(),
		newImportCmd(),
		newSeedCmd(),
		newSnapshotCmd(),
		newReportCmd(),
	)
	return root
}

// withApp loads the configuration, opens the store and hands the wired app
// to fn. Integration events are not published from the CLI.
func withApp(cmd *cobra.Command, fn func(ctx context.Context, app *bootstrap.App) error) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	ctx := cmd.Context()

	store, err := bootstrap.OpenStore(ctx, cfg)
	if err != nil {
		return fmt.Errorf("open %s store: %w", cfg.Store.Driver, err)
	}
	app, err := bootstrap.New(ctx, cfg, store, nil)
	if err != nil {
		store.Close()
		return err
	}
	defer app.Close()

	return fn(ctx, app)
}
