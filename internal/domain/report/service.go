package report

import (
	"context"
	"io"
)

// ReportService defines the interface for report generation
type ReportService interface {
	// Export writes the requested report as an XLSX workbook to w.
	Export(ctx context.Context, req ExportRequest, w io.Writer) error
}
