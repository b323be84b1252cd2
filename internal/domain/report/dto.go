package report

// Kind names an exportable workbook.
type Kind string

const (
	KindLedger  Kind = "ledger"
	KindPayroll Kind = "payroll"
)

// ContentType is the media type of generated workbooks.
const ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type ExportRequest struct {
	Kind        Kind
	BranchScope string
}
