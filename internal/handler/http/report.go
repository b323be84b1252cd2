package http

import (
	"bytes"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/furniflow/erp-backend-go/internal/domain/report"
	"github.com/furniflow/erp-backend-go/internal/handler/http/middleware"
	"github.com/furniflow/erp-backend-go/internal/handler/http/response"
)

type ReportHandler interface {
	// LedgerWorkbook handles GET /transactions/export.xlsx
	LedgerWorkbook(w http.ResponseWriter, r *http.Request)
	// PayrollWorkbook handles GET /payroll/report.xlsx
	PayrollWorkbook(w http.ResponseWriter, r *http.Request)
}

type reportHandlerImpl struct {
	reportService report.ReportService
	now           func() time.Time
}

func NewReportHandler(reportService report.ReportService) ReportHandler {
	return &reportHandlerImpl{reportService: reportService, now: time.Now}
}

func (h *reportHandlerImpl) LedgerWorkbook(w http.ResponseWriter, r *http.Request) {
	h.export(w, r, report.KindLedger)
}

func (h *reportHandlerImpl) PayrollWorkbook(w http.ResponseWriter, r *http.Request) {
	h.export(w, r, report.KindPayroll)
}

// export renders into memory first so a failure still answers with JSON.
func (h *reportHandlerImpl) export(w http.ResponseWriter, r *http.Request, kind report.Kind) {
	scope := middleware.BranchScope(r.Context())

	var buf bytes.Buffer
	err := h.reportService.Export(r.Context(), report.ExportRequest{Kind: kind, BranchScope: scope}, &buf)
	if err != nil {
		slog.Error("report export failed", "kind", kind, "branch_id", scope, "error", err)
		response.HandleError(w, err)
		return
	}

	filename := fmt.Sprintf("%s-%s.xlsx", kind, h.now().Format("2006-01-02"))
	response.Attachment(w, report.ContentType, filename)
	if _, err := buf.WriteTo(w); err != nil {
		slog.Warn("report write interrupted", "kind", kind, "error", err)
	}
}
