package attendance

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/furniflow/erp-backend-go/internal/domain/attendance"
	"github.com/furniflow/erp-backend-go/internal/domain/employee"
	"github.com/furniflow/erp-backend-go/internal/domain/master/branch"
	"github.com/furniflow/erp-backend-go/internal/domain/settings"
	"github.com/furniflow/erp-backend-go/internal/pkg/utils"
	"github.com/furniflow/erp-backend-go/internal/repository"
)

type Options struct {
	// DefaultRadiusMeters applies to branches without a positive radius.
	DefaultRadiusMeters float64
	// AllowUnlocatedBranch skips the geofence for branches without coordinates.
	AllowUnlocatedBranch bool
	Now                  func() time.Time
	// OnChange runs after a committed check-in or check-out.
	OnChange func(ctx context.Context)
}

type AttendanceServiceImpl struct {
	store        repository.Store
	employeeRepo employee.EmployeeRepository
	branchRepo   branch.BranchRepository
	configRepo   settings.SystemConfigRepository
	opts         Options
}

func NewAttendanceService(
	store repository.Store,
	employeeRepo employee.EmployeeRepository,
	branchRepo branch.BranchRepository,
	configRepo settings.SystemConfigRepository,
	opts Options,
) attendance.AttendanceService {
	if opts.DefaultRadiusMeters <= 0 {
		opts.DefaultRadiusMeters = attendance.DefaultRadiusMeters
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &AttendanceServiceImpl{
		store:        store,
		employeeRepo: employeeRepo,
		branchRepo:   branchRepo,
		configRepo:   configRepo,
		opts:         opts,
	}
}

// CheckIn implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) CheckIn(ctx context.Context, employeeID string, location attendance.LocationProvider) (attendance.ClockResponse, error) {
	var resp attendance.ClockResponse

	err := repository.WithTransaction(ctx, s.store, func(ctx context.Context) error {
		employees, err := s.employeeRepo.Load(ctx)
		if err != nil {
			return err
		}
		idx, ok := employee.FindByID(employees, employeeID)
		if !ok {
			return employee.ErrEmployeeNotFound
		}
		emp := &employees[idx]
		if emp.IsCheckedIn {
			return attendance.ErrAlreadyCheckedIn
		}

		distance, err := s.verifyGeofence(ctx, emp.BranchID, location)
		if err != nil {
			return err
		}

		loc, err := s.location(ctx)
		if err != nil {
			return err
		}
		now := s.opts.Now().UTC()
		entry := employee.AttendanceLog{
			Date:    now.In(loc).Format(attendance.DateLayout),
			CheckIn: now,
		}
		emp.Logs = append(emp.Logs, entry)
		emp.IsCheckedIn = true
		emp.LastCheckInTime = &now

		if err := s.employeeRepo.Store(ctx, employees); err != nil {
			return err
		}

		resp = attendance.ClockResponse{
			EmployeeID:     emp.ID,
			IsCheckedIn:    true,
			Date:           entry.Date,
			CheckIn:        now,
			AttendanceDays: emp.AttendanceDays,
			DistanceMeters: distance,
		}
		return nil
	})
	if err != nil {
		return attendance.ClockResponse{}, err
	}

	slog.Info("employee checked in", "employee_id", employeeID, "date", resp.Date)
	s.changed(ctx)
	return resp, nil
}

// CheckOut implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) CheckOut(ctx context.Context, employeeID string, location attendance.LocationProvider) (attendance.ClockResponse, error) {
	var resp attendance.ClockResponse

	err := repository.WithTransaction(ctx, s.store, func(ctx context.Context) error {
		employees, err := s.employeeRepo.Load(ctx)
		if err != nil {
			return err
		}
		idx, ok := employee.FindByID(employees, employeeID)
		if !ok {
			return employee.ErrEmployeeNotFound
		}
		emp := &employees[idx]
		if !emp.IsCheckedIn {
			return attendance.ErrNotCheckedIn
		}

		distance, err := s.verifyGeofence(ctx, emp.BranchID, location)
		if err != nil {
			return err
		}

		loc, err := s.location(ctx)
		if err != nil {
			return err
		}
		now := s.opts.Now().UTC()

		open := emp.OpenLogIndex()
		if open < 0 {
			// Checked in without a session on record: rebuild it from the
			// last check-in time.
			start := now
			if emp.LastCheckInTime != nil {
				start = emp.LastCheckInTime.UTC()
			}
			emp.Logs = append(emp.Logs, employee.AttendanceLog{
				Date:    start.In(loc).Format(attendance.DateLayout),
				CheckIn: start,
			})
			open = len(emp.Logs) - 1
		}

		entry := &emp.Logs[open]
		hours := now.Sub(entry.CheckIn).Hours()
		if hours < 0 {
			hours = 0
		}
		entry.CheckOut = &now
		entry.DurationHours = &hours

		counted := hours > attendance.FullDayThresholdHours
		if counted {
			emp.AttendanceDays++
		}
		emp.IsCheckedIn = false
		emp.LastCheckInTime = nil

		if err := s.employeeRepo.Store(ctx, employees); err != nil {
			return err
		}

		resp = attendance.ClockResponse{
			EmployeeID:     emp.ID,
			IsCheckedIn:    false,
			Date:           entry.Date,
			CheckIn:        entry.CheckIn,
			CheckOut:       entry.CheckOut,
			DurationHours:  entry.DurationHours,
			AttendanceDays: emp.AttendanceDays,
			DayCounted:     counted,
			DistanceMeters: distance,
		}
		return nil
	})
	if err != nil {
		return attendance.ClockResponse{}, err
	}

	slog.Info("employee checked out", "employee_id", employeeID, "hours", *resp.DurationHours, "day_counted", resp.DayCounted)
	s.changed(ctx)
	return resp, nil
}

// verifyGeofence returns the measured distance, or nil when the branch has
// no geofence and unlocated branches are allowed.
func (s *AttendanceServiceImpl) verifyGeofence(ctx context.Context, branchID string, location attendance.LocationProvider) (*float64, error) {
	branches, err := s.branchRepo.Load(ctx)
	if err != nil {
		return nil, err
	}
	b, ok := branch.FindByID(branches, branchID)
	if !ok {
		return nil, branch.ErrBranchNotFound
	}
	if b.Coordinates == nil {
		if s.opts.AllowUnlocatedBranch {
			return nil, nil
		}
		return nil, branch.ErrBranchLocationNotSet
	}

	if location == nil {
		return nil, attendance.ErrLocationUnavailable
	}
	pos, err := location.Current(ctx)
	if err != nil {
		return nil, err
	}

	radius := b.Coordinates.Radius
	if radius <= 0 {
		radius = s.opts.DefaultRadiusMeters
	}
	distance := utils.CalculateHaversineDistance(b.Coordinates.Lat, b.Coordinates.Lng, pos.Latitude, pos.Longitude)
	if distance > radius {
		return nil, &attendance.GeofenceError{Distance: distance, Radius: radius}
	}
	return &distance, nil
}

// location is the timezone calendar-day keys are computed in.
func (s *AttendanceServiceImpl) location(ctx context.Context) (*time.Location, error) {
	configs, err := s.configRepo.Load(ctx)
	if err != nil {
		return nil, err
	}
	return settings.Current(configs).Location(), nil
}

func (s *AttendanceServiceImpl) changed(ctx context.Context) {
	if s.opts.OnChange != nil {
		s.opts.OnChange(context.WithoutCancel(ctx))
	}
}

// HoursToday implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) HoursToday(ctx context.Context, emp employee.Employee, now time.Time) (float64, error) {
	loc, err := s.location(ctx)
	if err != nil {
		return 0, err
	}
	return hoursToday(emp, now, loc), nil
}

func hoursToday(emp employee.Employee, now time.Time, loc *time.Location) float64 {
	today := now.In(loc).Format(attendance.DateLayout)

	var total float64
	for _, l := range emp.Logs {
		if l.Date != today || l.IsOpen() {
			continue
		}
		if l.DurationHours != nil {
			total += *l.DurationHours
		} else {
			total += l.CheckOut.Sub(l.CheckIn).Hours()
		}
	}
	if emp.IsCheckedIn && emp.LastCheckInTime != nil {
		if running := now.Sub(*emp.LastCheckInTime).Hours(); running > 0 {
			total += running
		}
	}
	return total
}

// LiveBoard implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) LiveBoard(ctx context.Context, branchScope string) (attendance.LiveBoardResponse, error) {
	employees, err := s.employeeRepo.Load(ctx)
	if err != nil {
		return attendance.LiveBoardResponse{}, fmt.Errorf("failed to load employees: %w", err)
	}
	loc, err := s.location(ctx)
	if err != nil {
		return attendance.LiveBoardResponse{}, err
	}

	now := s.opts.Now()
	today := now.In(loc).Format(attendance.DateLayout)

	board := attendance.LiveBoardResponse{Date: today, Sessions: []attendance.Session{}}
	for _, emp := range employees {
		if !branch.InScope(branchScope, emp.BranchID) {
			continue
		}

		session := attendance.Session{
			EmployeeID:   emp.ID,
			EmployeeName: emp.Name,
			BranchID:     emp.BranchID,
			Department:   emp.Department,
			IsCheckedIn:  emp.IsCheckedIn,
			HoursToday:   hoursToday(emp, now, loc),
		}
		for _, l := range emp.Logs {
			if l.Date != today {
				continue
			}
			if session.FirstIn == nil || l.CheckIn.Before(*session.FirstIn) {
				checkIn := l.CheckIn
				session.FirstIn = &checkIn
			}
			if l.CheckOut != nil && (session.LastOut == nil || l.CheckOut.After(*session.LastOut)) {
				checkOut := *l.CheckOut
				session.LastOut = &checkOut
			}
		}
		if session.FirstIn == nil && emp.IsCheckedIn && emp.LastCheckInTime != nil {
			checkIn := *emp.LastCheckInTime
			session.FirstIn = &checkIn
		}

		if session.FirstIn != nil {
			board.Present++
		} else {
			board.Absent++
		}
		board.Sessions = append(board.Sessions, session)
	}

	sort.SliceStable(board.Sessions, func(i, j int) bool {
		if board.Sessions[i].IsCheckedIn != board.Sessions[j].IsCheckedIn {
			return board.Sessions[i].IsCheckedIn
		}
		return strings.ToLower(board.Sessions[i].EmployeeName) < strings.ToLower(board.Sessions[j].EmployeeName)
	})
	return board, nil
}

// MonthLogs implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) MonthLogs(ctx context.Context, req attendance.CalendarRequest) ([]attendance.CalendarEntry, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	employees, err := s.employeeRepo.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load employees: %w", err)
	}

	prefix := fmt.Sprintf("%04d-%02d-", req.Year, int(req.Month))
	entries := []attendance.CalendarEntry{}
	for _, emp := range employees {
		if !branch.InScope(req.BranchScope, emp.BranchID) {
			continue
		}
		entry := attendance.CalendarEntry{EmployeeID: emp.ID, EmployeeName: emp.Name, Days: []attendance.CalendarDay{}}
		for _, l := range emp.Logs {
			if !strings.HasPrefix(l.Date, prefix) {
				continue
			}
			entry.Days = append(entry.Days, attendance.CalendarDay{
				Date:          l.Date,
				CheckIn:       l.CheckIn,
				CheckOut:      l.CheckOut,
				DurationHours: l.DurationHours,
			})
		}
		entries = append(entries, entry)
	}
	return entries, nil
}
