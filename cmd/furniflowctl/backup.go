package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/furniflow/erp-backend-go/internal/bootstrap"
	"github.com/spf13/cobra"
)

func newExportCmd() *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write every collection to a JSON backup",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(ctx context.Context, app *bootstrap.App) error {
				backup, err := app.Settings.ExportBackup(ctx)
				if err != nil {
					return err
				}
				return writeOutput(cmd, out, func(w io.Writer) error {
					enc := json.NewEncoder(w)
					enc.SetIndent("", "  ")
					return enc.Encode(backup)
				})
			})
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "-", "output file, - for stdout")
	return cmd
}

func newImportCmd() *cobra.Command {
	var in string
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Restore collections from a JSON backup",
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(in)
			if err != nil {
				return err
			}
			defer f.Close()

			var backup map[string]json.RawMessage
			if err := json.NewDecoder(f).Decode(&backup); err != nil {
				return fmt.Errorf("decode %s: %w", in, err)
			}

			return withApp(cmd, func(ctx context.Context, app *bootstrap.App) error {
				if err := app.Settings.ImportBackup(ctx, backup); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "restored %d collections\n", len(backup))
				return nil
			})
		},
	}
	cmd.Flags().StringVarP(&in, "in", "i", "", "backup file to restore")
	_ = cmd.MarkFlagRequired("in")
	return cmd
}

func newSeedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Write fixture data for collections that are not stored yet",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(ctx context.Context, app *bootstrap.App) error {
				keys, err := app.Collections.Seed(ctx)
				if err != nil {
					return err
				}
				sort.Strings(keys)
				for _, k := range keys {
					fmt.Fprintln(cmd.OutOrStdout(), k)
				}
				return nil
			})
		},
	}
}

func newSnapshotCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "snapshot",
		Short: "Write a backup snapshot to BACKUP_DIR and prune old ones",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(ctx context.Context, app *bootstrap.App) error {
				return app.Snapshot(ctx)
			})
		},
	}
}

// writeOutput streams to stdout for "-" and to a file otherwise.
func writeOutput(cmd *cobra.Command, path string, write func(w io.Writer) error) error {
	if path == "" || path == "-" {
		return write(cmd.OutOrStdout())
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
