package attendance

import (
	"context"
	"errors"
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/furniflow/erp-backend-go/internal/domain/attendance"
	"github.com/furniflow/erp-backend-go/internal/domain/employee"
	"github.com/furniflow/erp-backend-go/internal/domain/master/branch"
	"github.com/furniflow/erp-backend-go/internal/domain/settings"
	"github.com/furniflow/erp-backend-go/internal/repository"
	"github.com/furniflow/erp-backend-go/internal/repository/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const (
	branchLat = 30.0444
	branchLng = 31.2357
)

type mockLocation struct {
	mock.Mock
}

func (m *mockLocation) Current(ctx context.Context) (attendance.Coordinates, error) {
	args := m.Called(ctx)
	return args.Get(0).(attendance.Coordinates), args.Error(1)
}

type testEnv struct {
	svc     attendance.AttendanceService
	cols    *repository.Collections
	now     time.Time
	changes int
}

func newTestEnv(t *testing.T, opts Options) *testEnv {
	t.Helper()
	ctx := context.Background()

	env := &testEnv{
		cols: repository.NewCollections(memory.NewStore(), "test_"),
		now:  time.Date(2024, 3, 10, 8, 0, 0, 0, time.UTC),
	}

	require.NoError(t, env.cols.SystemConfig.Store(ctx, []settings.SystemConfig{
		{ID: settings.SystemConfigID, DefaultTimezone: "UTC", StandardMonthlyWorkingDays: 26},
	}))
	require.NoError(t, env.cols.Branches.Store(ctx, []branch.Branch{
		{ID: "CAI", Name: "Cairo", Coordinates: &branch.Coordinates{Lat: branchLat, Lng: branchLng, Radius: 100}},
		{ID: "NOLOC", Name: "Pop-up store"},
	}))
	require.NoError(t, env.cols.Employees.Store(ctx, []employee.Employee{
		{ID: "e1", Name: "Mohamed", BranchID: "CAI", AttendanceDays: 5, TotalWorkingDays: 26},
		{ID: "e2", Name: "Khaled", BranchID: "CAI"},
		{ID: "e9", Name: "Nadia", BranchID: "NOLOC"},
	}))

	opts.Now = func() time.Time { return env.now }
	opts.OnChange = func(context.Context) { env.changes++ }
	env.svc = NewAttendanceService(env.cols.Store, env.cols.Employees, env.cols.Branches, env.cols.SystemConfig, opts)
	return env
}

func (e *testEnv) employee(t *testing.T, id string) employee.Employee {
	t.Helper()
	employees, err := e.cols.Employees.Load(context.Background())
	require.NoError(t, err)
	idx, ok := employee.FindByID(employees, id)
	require.True(t, ok)
	return employees[idx]
}

// metersNorth returns a location d meters north of the branch.
func metersNorth(d float64) attendance.StaticLocation {
	return attendance.StaticLocation{Latitude: branchLat + d/111195.0, Longitude: branchLng}
}

func TestCheckIn_InsideRadius(t *testing.T) {
	env := newTestEnv(t, Options{})

	resp, err := env.svc.CheckIn(context.Background(), "e1", metersNorth(40))
	require.NoError(t, err)

	assert.True(t, resp.IsCheckedIn)
	assert.Equal(t, "2024-03-10", resp.Date)
	require.NotNil(t, resp.DistanceMeters)
	assert.InDelta(t, 40, *resp.DistanceMeters, 0.5)

	emp := env.employee(t, "e1")
	assert.True(t, emp.IsCheckedIn)
	require.NotNil(t, emp.LastCheckInTime)
	assert.True(t, emp.LastCheckInTime.Equal(env.now))
	require.Len(t, emp.Logs, 1)
	assert.True(t, emp.Logs[0].IsOpen())
	assert.Equal(t, 1, env.changes)
}

func TestCheckIn_OutsideRadiusLeavesStateUntouched(t *testing.T) {
	env := newTestEnv(t, Options{})

	_, err := env.svc.CheckIn(context.Background(), "e1", metersNorth(150))
	require.Error(t, err)
	assert.ErrorIs(t, err, attendance.ErrOutsideAllowedRadius)

	var geoErr *attendance.GeofenceError
	require.True(t, errors.As(err, &geoErr))
	assert.InDelta(t, 150, geoErr.Distance, 0.5)
	assert.Equal(t, 100.0, geoErr.Radius)

	emp := env.employee(t, "e1")
	assert.False(t, emp.IsCheckedIn)
	assert.Nil(t, emp.LastCheckInTime)
	assert.Empty(t, emp.Logs)
	assert.Zero(t, env.changes)
}

func TestCheckIn_AlreadyCheckedIn(t *testing.T) {
	env := newTestEnv(t, Options{})
	ctx := context.Background()

	_, err := env.svc.CheckIn(ctx, "e1", metersNorth(10))
	require.NoError(t, err)

	_, err = env.svc.CheckIn(ctx, "e1", metersNorth(10))
	assert.ErrorIs(t, err, attendance.ErrAlreadyCheckedIn)
	assert.Len(t, env.employee(t, "e1").Logs, 1)
}

func TestCheckIn_LocationFailureIsSoft(t *testing.T) {
	env := newTestEnv(t, Options{})

	loc := new(mockLocation)
	loc.On("Current", mock.Anything).Return(attendance.Coordinates{}, attendance.ErrLocationPermissionDenied)

	_, err := env.svc.CheckIn(context.Background(), "e1", loc)
	assert.ErrorIs(t, err, attendance.ErrLocationPermissionDenied)
	assert.False(t, env.employee(t, "e1").IsCheckedIn)
	loc.AssertExpectations(t)
}

func TestCheckIn_UnknownEmployee(t *testing.T) {
	env := newTestEnv(t, Options{})

	_, err := env.svc.CheckIn(context.Background(), "nobody", metersNorth(0))
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}

func TestCheckIn_BranchWithoutLocation(t *testing.T) {
	t.Run("blocked by default", func(t *testing.T) {
		env := newTestEnv(t, Options{})
		loc := new(mockLocation)

		_, err := env.svc.CheckIn(context.Background(), "e9", loc)
		assert.ErrorIs(t, err, branch.ErrBranchLocationNotSet)
		loc.AssertNotCalled(t, "Current", mock.Anything)
	})

	t.Run("allowed when configured", func(t *testing.T) {
		env := newTestEnv(t, Options{AllowUnlocatedBranch: true})
		loc := new(mockLocation)

		resp, err := env.svc.CheckIn(context.Background(), "e9", loc)
		require.NoError(t, err)
		assert.Nil(t, resp.DistanceMeters)
		loc.AssertNotCalled(t, "Current", mock.Anything)
	})
}

func TestCheckOut_FullDayThreshold(t *testing.T) {
	tests := []struct {
		name     string
		session  time.Duration
		wantDays int
	}{
		{"exactly four hours", 4 * time.Hour, 5},
		{"four hours and 36 seconds", 4*time.Hour + 36*time.Second, 6},
		{"short session", 90 * time.Minute, 5},
		{"full shift", 9 * time.Hour, 6},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t, Options{})
			ctx := context.Background()

			_, err := env.svc.CheckIn(ctx, "e1", metersNorth(5))
			require.NoError(t, err)

			env.now = env.now.Add(tt.session)
			resp, err := env.svc.CheckOut(ctx, "e1", metersNorth(5))
			require.NoError(t, err)

			require.NotNil(t, resp.DurationHours)
			assert.InDelta(t, tt.session.Hours(), *resp.DurationHours, 1e-9)
			assert.Equal(t, tt.wantDays, resp.AttendanceDays)

			emp := env.employee(t, "e1")
			assert.Equal(t, tt.wantDays, emp.AttendanceDays)
			assert.False(t, emp.IsCheckedIn)
			assert.Nil(t, emp.LastCheckInTime)
			require.Len(t, emp.Logs, 1)
			require.NotNil(t, emp.Logs[0].CheckOut)
			assert.True(t, emp.Logs[0].CheckOut.Equal(env.now))
		})
	}
}

func TestCheckOut_NotCheckedIn(t *testing.T) {
	env := newTestEnv(t, Options{})

	_, err := env.svc.CheckOut(context.Background(), "e1", metersNorth(0))
	assert.ErrorIs(t, err, attendance.ErrNotCheckedIn)
}

func TestCheckOut_OutsideRadiusKeepsSessionOpen(t *testing.T) {
	env := newTestEnv(t, Options{})
	ctx := context.Background()

	_, err := env.svc.CheckIn(ctx, "e1", metersNorth(0))
	require.NoError(t, err)

	env.now = env.now.Add(6 * time.Hour)
	_, err = env.svc.CheckOut(ctx, "e1", metersNorth(500))
	assert.ErrorIs(t, err, attendance.ErrOutsideAllowedRadius)

	emp := env.employee(t, "e1")
	assert.True(t, emp.IsCheckedIn)
	assert.Equal(t, 5, emp.AttendanceDays)
	assert.True(t, emp.Logs[0].IsOpen())
}

func TestCheckOut_SynthesizesMissingSession(t *testing.T) {
	env := newTestEnv(t, Options{})
	ctx := context.Background()

	started := env.now.Add(-5 * time.Hour)
	employees, err := env.cols.Employees.Load(ctx)
	require.NoError(t, err)
	employees[1].IsCheckedIn = true
	employees[1].LastCheckInTime = &started
	require.NoError(t, env.cols.Employees.Store(ctx, employees))

	resp, err := env.svc.CheckOut(ctx, "e2", metersNorth(0))
	require.NoError(t, err)
	assert.True(t, resp.DayCounted)
	assert.InDelta(t, 5.0, *resp.DurationHours, 1e-9)

	emp := env.employee(t, "e2")
	require.Len(t, emp.Logs, 1)
	assert.True(t, emp.Logs[0].CheckIn.Equal(started))
	assert.Equal(t, 1, emp.AttendanceDays)
}

func TestCheckIn_DateKeyUsesConfiguredTimezone(t *testing.T) {
	env := newTestEnv(t, Options{})
	ctx := context.Background()
	require.NoError(t, env.cols.SystemConfig.Store(ctx, []settings.SystemConfig{
		{ID: settings.SystemConfigID, DefaultTimezone: "Africa/Cairo"},
	}))

	env.now = time.Date(2024, 3, 10, 23, 30, 0, 0, time.UTC)
	resp, err := env.svc.CheckIn(ctx, "e1", metersNorth(0))
	require.NoError(t, err)
	assert.Equal(t, "2024-03-11", resp.Date)
}

func TestLiveBoard(t *testing.T) {
	env := newTestEnv(t, Options{})
	ctx := context.Background()

	_, err := env.svc.CheckIn(ctx, "e1", metersNorth(0))
	require.NoError(t, err)
	env.now = env.now.Add(2 * time.Hour)
	_, err = env.svc.CheckOut(ctx, "e1", metersNorth(0))
	require.NoError(t, err)

	_, err = env.svc.CheckIn(ctx, "e2", metersNorth(0))
	require.NoError(t, err)
	env.now = env.now.Add(30 * time.Minute)

	board, err := env.svc.LiveBoard(ctx, "CAI")
	require.NoError(t, err)

	assert.Equal(t, "2024-03-10", board.Date)
	assert.Equal(t, 2, board.Present)
	assert.Equal(t, 0, board.Absent)
	require.Len(t, board.Sessions, 2)

	// Checked-in staff are listed first.
	assert.Equal(t, "e2", board.Sessions[0].EmployeeID)
	assert.InDelta(t, 0.5, board.Sessions[0].HoursToday, 1e-9)
	assert.Equal(t, "e1", board.Sessions[1].EmployeeID)
	assert.InDelta(t, 2.0, board.Sessions[1].HoursToday, 1e-9)
	require.NotNil(t, board.Sessions[1].LastOut)

	all, err := env.svc.LiveBoard(ctx, branch.HeadquartersID)
	require.NoError(t, err)
	assert.Len(t, all.Sessions, 3)
	assert.Equal(t, 1, all.Absent)
}

func TestMonthLogs(t *testing.T) {
	env := newTestEnv(t, Options{})
	ctx := context.Background()

	_, err := env.svc.CheckIn(ctx, "e1", metersNorth(0))
	require.NoError(t, err)
	env.now = env.now.Add(5 * time.Hour)
	_, err = env.svc.CheckOut(ctx, "e1", metersNorth(0))
	require.NoError(t, err)

	entries, err := env.svc.MonthLogs(ctx, attendance.CalendarRequest{BranchScope: "CAI", Year: 2024, Month: time.March})
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Len(t, entries[0].Days, 1)
	assert.Empty(t, entries[1].Days)

	entries, err = env.svc.MonthLogs(ctx, attendance.CalendarRequest{BranchScope: "CAI", Year: 2024, Month: time.April})
	require.NoError(t, err)
	assert.Empty(t, entries[0].Days)

	_, err = env.svc.MonthLogs(ctx, attendance.CalendarRequest{Year: 2024, Month: 13})
	assert.Error(t, err)
}
