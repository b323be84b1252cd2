package employee

import (
	"time"

	"github.com/shopspring/decimal"
)

type Employee struct {
	ID               string          `json:"id"`
	Name             string          `json:"name"`
	Role             string          `json:"role"`
	Department       string          `json:"department"`
	Email            string          `json:"email"`
	Status           string          `json:"status"`
	BranchID         string          `json:"branchId"`
	Salary           decimal.Decimal `json:"salary"`
	LoanBalance      decimal.Decimal `json:"loanBalance"`
	CommissionRate   decimal.Decimal `json:"commissionRate"`
	SalesTarget      decimal.Decimal `json:"salesTarget"`
	AttendanceDays   int             `json:"attendanceDays"`
	TotalWorkingDays int             `json:"totalWorkingDays"`

	IsCheckedIn     bool            `json:"isCheckedIn"`
	LastCheckInTime *time.Time      `json:"lastCheckInTime,omitempty"`
	Logs            []AttendanceLog `json:"logs"`

	AvatarURL string `json:"avatarUrl,omitempty"`
}

// AttendanceLog is one clock-in/out session. Date is the local calendar day
// the session started on.
type AttendanceLog struct {
	Date          string     `json:"date"`
	CheckIn       time.Time  `json:"checkIn"`
	CheckOut      *time.Time `json:"checkOut,omitempty"`
	DurationHours *float64   `json:"durationHours,omitempty"`
}

func (l AttendanceLog) IsOpen() bool {
	return l.CheckOut == nil
}

// OpenLogIndex returns the index of the most recent session without a
// check-out, or -1.
func (e Employee) OpenLogIndex() int {
	for i := len(e.Logs) - 1; i >= 0; i-- {
		if e.Logs[i].IsOpen() {
			return i
		}
	}
	return -1
}

// Status values used by the seed data. Statuses are user-configurable.
const (
	StatusActive     = "Active"
	StatusOnLeave    = "On Leave"
	StatusProbation  = "Probation"
	StatusTerminated = "Terminated"
)

// EmployeeStatus is a configurable employment status with a display colour.
type EmployeeStatus struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
}

type Department struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func FindByID(employees []Employee, id string) (int, bool) {
	for i, e := range employees {
		if e.ID == id {
			return i, true
		}
	}
	return -1, false
}
