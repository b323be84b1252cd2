package attendance

import (
	"context"
	"time"

	"github.com/furniflow/erp-backend-go/internal/domain/employee"
)

// AttendanceService runs the geofenced clock and the live attendance views.
type AttendanceService interface {
	// CheckIn opens a session after the device passes the branch geofence.
	CheckIn(ctx context.Context, employeeID string, location LocationProvider) (ClockResponse, error)

	// CheckOut closes the open session and credits a day for long sessions.
	CheckOut(ctx context.Context, employeeID string, location LocationProvider) (ClockResponse, error)

	// HoursToday sums today's closed sessions plus the running one.
	HoursToday(ctx context.Context, emp employee.Employee, now time.Time) (float64, error)

	LiveBoard(ctx context.Context, branchScope string) (LiveBoardResponse, error)
	MonthLogs(ctx context.Context, req CalendarRequest) ([]CalendarEntry, error)
}
