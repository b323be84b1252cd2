package payroll

import (
	"github.com/furniflow/erp-backend-go/internal/domain/ledger"
	"github.com/shopspring/decimal"
)

// PaymentType is the kind of direct payment made to an employee.
type PaymentType string

const (
	PaymentSalary  PaymentType = "Salary"
	PaymentAdvance PaymentType = "Advance"
	PaymentBonus   PaymentType = "Bonus"
)

// Category returns the ledger category a direct payment is booked against.
func (t PaymentType) Category() (string, bool) {
	switch t {
	case PaymentSalary, PaymentBonus:
		return ledger.CategorySalaries, true
	case PaymentAdvance:
		return ledger.CategoryEmployeeAdvances, true
	}
	return "", false
}

// Proration is the month-to-date salary position of one employee.
type Proration struct {
	Salary         decimal.Decimal `json:"salary"`
	WorkingDays    int             `json:"working_days"`
	AttendanceDays int             `json:"attendance_days"`
	DailyRate      decimal.Decimal `json:"daily_rate"`
	EarnedToDate   decimal.Decimal `json:"earned_to_date"`
	Progress       float64         `json:"progress"`
}

var hundred = decimal.NewFromInt(100)

// Prorate computes the salary earned for attendanceDays out of workingDays.
// earnedToDate is computed as salary × days / workingDays so no intermediate
// rounding of the daily rate leaks into it.
func Prorate(salary decimal.Decimal, workingDays, attendanceDays int) Proration {
	if workingDays <= 0 {
		workingDays = 1
	}
	if attendanceDays < 0 {
		attendanceDays = 0
	}
	wd := decimal.NewFromInt(int64(workingDays))
	days := decimal.NewFromInt(int64(attendanceDays))

	progress, _ := days.Div(wd).Mul(hundred).Round(2).Float64()
	if progress > 100 {
		progress = 100
	}

	return Proration{
		Salary:         salary,
		WorkingDays:    workingDays,
		AttendanceDays: attendanceDays,
		DailyRate:      salary.Div(wd).Round(2),
		EarnedToDate:   salary.Mul(days).Div(wd).Round(2),
		Progress:       progress,
	}
}

// WorkingDays resolves the month length used for proration: the employee's
// own value, then the system standard, then DefaultWorkingDays.
func WorkingDays(employeeDays, systemDays int) int {
	if employeeDays > 0 {
		return employeeDays
	}
	if systemDays > 0 {
		return systemDays
	}
	return DefaultWorkingDays
}

const DefaultWorkingDays = 26
