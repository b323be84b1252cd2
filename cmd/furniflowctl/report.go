package main

import (
	"context"
	"fmt"
	"io"

	"github.com/furniflow/erp-backend-go/internal/bootstrap"
	"github.com/furniflow/erp-backend-go/internal/domain/master/branch"
	"github.com/furniflow/erp-backend-go/internal/domain/report"
	"github.com/spf13/cobra"
)

func newReportCmd() *cobra.Command {
	var (
		branchID string
		out      string
	)
	cmd := &cobra.Command{
		Use:       "report ledger|payroll",
		Short:     "Export the ledger or payroll workbook",
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{string(report.KindLedger), string(report.KindPayroll)},
		RunE: func(cmd *cobra.Command, args []string) error {
			kind := report.Kind(args[0])
			if out == "" {
				out = fmt.Sprintf("%s-%s.xlsx", kind, branchID)
			}
			return withApp(cmd, func(ctx context.Context, app *bootstrap.App) error {
				return writeOutput(cmd, out, func(w io.Writer) error {
					return app.Report.Export(ctx, report.ExportRequest{Kind: kind, BranchScope: branchID}, w)
				})
			})
		},
	}
	cmd.Flags().StringVarP(&branchID, "branch", "b", branch.HeadquartersID, "branch scope, HQ for all branches")
	cmd.Flags().StringVarP(&out, "out", "o", "", "output file, defaults to <kind>-<branch>.xlsx")
	return cmd
}
