package report

import (
	"context"
	"fmt"
	"io"

	"github.com/furniflow/erp-backend-go/internal/domain/ledger"
	"github.com/furniflow/erp-backend-go/internal/domain/payroll"
	"github.com/furniflow/erp-backend-go/internal/domain/report"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

const (
	sheetLedger   = "Ledger"
	sheetAccounts = "Accounts"
	sheetPayroll  = "Payroll"
	moneyFormat   = "#,##0.00"
)

type ReportServiceImpl struct {
	ledgerService  ledger.LedgerService
	payrollService payroll.PayrollService
}

func NewReportService(ledgerService ledger.LedgerService, payrollService payroll.PayrollService) report.ReportService {
	return &ReportServiceImpl{
		ledgerService:  ledgerService,
		payrollService: payrollService,
	}
}

func (s *ReportServiceImpl) Export(ctx context.Context, req report.ExportRequest, w io.Writer) error {
	var f *excelize.File
	var err error

	switch req.Kind {
	case report.KindLedger:
		f, err = s.ledgerWorkbook(ctx, req.BranchScope)
	case report.KindPayroll:
		f, err = s.payrollWorkbook(ctx, req.BranchScope)
	default:
		return report.ErrUnknownReport
	}
	if err != nil {
		return err
	}
	defer f.Close()

	if err := f.Write(w); err != nil {
		return fmt.Errorf("%w: %v", report.ErrReportGenerationFailed, err)
	}
	return nil
}

// ========== LEDGER ==========

func (s *ReportServiceImpl) ledgerWorkbook(ctx context.Context, branchScope string) (*excelize.File, error) {
	transactions, err := s.ledgerService.List(ctx, ledger.ListTransactionRequest{BranchScope: branchScope})
	if err != nil {
		return nil, err
	}
	summary, err := s.ledgerService.Summary(ctx, branchScope)
	if err != nil {
		return nil, err
	}

	b, err := newBook(sheetLedger)
	if err != nil {
		return nil, err
	}

	rows := make([][]any, 0, len(transactions))
	for _, t := range transactions {
		rows = append(rows, []any{
			t.Date, t.Description, string(t.Type), t.Category, string(t.Status),
			t.BranchID, t.PaymentMethod, money(t.Amount),
		})
	}
	if err := b.table(sheetLedger,
		[]string{"Date", "Description", "Type", "Category", "Status", "Branch", "Payment Method", "Amount"},
		rows, []int{8}); err != nil {
		return nil, err
	}

	if _, err := b.f.NewSheet(sheetAccounts); err != nil {
		return nil, b.fail(err)
	}
	accounts := make([][]any, 0, len(summary.Accounts)+1)
	for _, a := range summary.Accounts {
		accounts = append(accounts, []any{a.PaymentMethod, a.BranchID, money(a.Income), money(a.Expense), money(a.Balance)})
	}
	accounts = append(accounts, []any{"Total", "", money(summary.Income), money(summary.Expense), money(summary.Net)})
	if err := b.table(sheetAccounts,
		[]string{"Payment Method", "Branch", "Income", "Expense", "Balance"},
		accounts, []int{3, 4, 5}); err != nil {
		return nil, err
	}

	return b.f, nil
}

// ========== PAYROLL ==========

func (s *ReportServiceImpl) payrollWorkbook(ctx context.Context, branchScope string) (*excelize.File, error) {
	sheet, err := s.payrollService.PayrollSheet(ctx, branchScope)
	if err != nil {
		return nil, err
	}

	b, err := newBook(sheetPayroll)
	if err != nil {
		return nil, err
	}

	totals := struct{ salary, earned, pending, loans, paid decimal.Decimal }{}
	rows := make([][]any, 0, len(sheet)+1)
	for _, r := range sheet {
		rows = append(rows, []any{
			r.EmployeeID, r.EmployeeName, r.BranchID, money(r.Salary), r.WorkingDays, r.AttendanceDays,
			money(r.EarnedToDate), money(r.PendingCommission), money(r.LoanBalance), money(r.TotalPaid),
		})
		totals.salary = totals.salary.Add(r.Salary)
		totals.earned = totals.earned.Add(r.EarnedToDate)
		totals.pending = totals.pending.Add(r.PendingCommission)
		totals.loans = totals.loans.Add(r.LoanBalance)
		totals.paid = totals.paid.Add(r.TotalPaid)
	}
	rows = append(rows, []any{
		"Total", "", "", money(totals.salary), "", "",
		money(totals.earned), money(totals.pending), money(totals.loans), money(totals.paid),
	})

	if err := b.table(sheetPayroll,
		[]string{"Employee ID", "Name", "Branch", "Salary", "Working Days", "Attendance Days",
			"Earned To Date", "Pending Commission", "Loan Balance", "Total Paid"},
		rows, []int{4, 7, 8, 9, 10}); err != nil {
		return nil, err
	}
	return b.f, nil
}

// ========== WORKBOOK HELPERS ==========

type book struct {
	f           *excelize.File
	headerStyle int
	moneyStyle  int
}

func newBook(firstSheet string) (*book, error) {
	f := excelize.NewFile()
	b := &book{f: f}

	if err := f.SetSheetName("Sheet1", firstSheet); err != nil {
		return nil, b.fail(err)
	}

	var err error
	b.headerStyle, err = f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "#FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#3b82f6"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if err != nil {
		return nil, b.fail(err)
	}
	format := moneyFormat
	b.moneyStyle, err = f.NewStyle(&excelize.Style{CustomNumFmt: &format})
	if err != nil {
		return nil, b.fail(err)
	}
	return b, nil
}

// table writes a header row and data rows starting at A1. moneyCols are
// 1-based column numbers formatted as amounts.
func (b *book) table(sheet string, headers []string, rows [][]any, moneyCols []int) error {
	for i, h := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return b.fail(err)
		}
		if err := b.f.SetCellValue(sheet, cell, h); err != nil {
			return b.fail(err)
		}
	}
	last, _ := excelize.CoordinatesToCellName(len(headers), 1)
	if err := b.f.SetCellStyle(sheet, "A1", last, b.headerStyle); err != nil {
		return b.fail(err)
	}

	for r, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, r+2)
		if err != nil {
			return b.fail(err)
		}
		if err := b.f.SetSheetRow(sheet, cell, &row); err != nil {
			return b.fail(err)
		}
	}

	if len(rows) > 0 {
		for _, col := range moneyCols {
			top, _ := excelize.CoordinatesToCellName(col, 2)
			bottom, _ := excelize.CoordinatesToCellName(col, len(rows)+1)
			if err := b.f.SetCellStyle(sheet, top, bottom, b.moneyStyle); err != nil {
				return b.fail(err)
			}
		}
	}
	return nil
}

func (b *book) fail(err error) error {
	b.f.Close()
	return fmt.Errorf("%w: %v", report.ErrReportGenerationFailed, err)
}

func money(d decimal.Decimal) float64 {
	return d.Round(2).InexactFloat64()
}
