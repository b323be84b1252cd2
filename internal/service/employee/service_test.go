package employee

import (
	"context"
	"testing"
	"time"

	"github.com/furniflow/erp-backend-go/internal/domain/employee"
	"github.com/furniflow/erp-backend-go/internal/domain/master/branch"
	"github.com/furniflow/erp-backend-go/internal/pkg/validator"
	"github.com/furniflow/erp-backend-go/internal/repository"
	"github.com/furniflow/erp-backend-go/internal/repository/memory"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T) (employee.EmployeeService, *repository.Collections) {
	t.Helper()
	cols := repository.NewCollections(memory.NewStore(), "test_")
	return NewEmployeeService(cols.Store, cols.Employees, cols.Branches, cols.Departments, cols.EmployeeStatuses), cols
}

func TestCreate_StartsCheckedOut(t *testing.T) {
	ctx := context.Background()
	svc, cols := newTestService(t)

	created, err := svc.Create(ctx, employee.CreateEmployeeRequest{
		Name: "Mona Adel", Email: "mona@furniflow.com", BranchID: "JED",
		Salary: decimal.NewFromInt(7000), CommissionRate: decimal.NewFromInt(3),
	})
	require.NoError(t, err)
	assert.Equal(t, employee.StatusActive, created.Status)
	assert.False(t, created.IsCheckedIn)
	assert.Zero(t, created.AttendanceDays)
	assert.True(t, created.LoanBalance.IsZero())

	employees, err := cols.Employees.Load(ctx)
	require.NoError(t, err)
	idx, ok := employee.FindByID(employees, created.ID)
	require.True(t, ok)
	assert.NotNil(t, employees[idx].Logs)
	assert.Empty(t, employees[idx].Logs)
}

func TestCreate_Rejections(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	_, err := svc.Create(ctx, employee.CreateEmployeeRequest{Name: "X", BranchID: "NOWHERE"})
	assert.ErrorIs(t, err, branch.ErrBranchNotFound)

	_, err = svc.Create(ctx, employee.CreateEmployeeRequest{Name: "X", BranchID: "CAI", Email: "MOHAMED@furniflow.com"})
	assert.ErrorIs(t, err, employee.ErrEmployeeEmailExists)

	_, err = svc.Create(ctx, employee.CreateEmployeeRequest{Salary: decimal.NewFromInt(-1)})
	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	fields := verrs.ToMap()
	assert.Contains(t, fields, "name")
	assert.Contains(t, fields, "branch_id")
	assert.Contains(t, fields, "salary")
}

func TestListAndUpdate(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	cai, err := svc.List(ctx, employee.ListEmployeeRequest{BranchScope: "CAI"})
	require.NoError(t, err)
	require.Len(t, cai, 1)
	assert.Equal(t, "e1", cai[0].ID)

	all, err := svc.List(ctx, employee.ListEmployeeRequest{BranchScope: branch.HeadquartersID, Search: "khaled"})
	require.NoError(t, err)
	require.Len(t, all, 1)

	salary := decimal.NewFromInt(9000)
	days := 22
	updated, err := svc.Update(ctx, employee.UpdateEmployeeRequest{ID: "e1", Salary: &salary, TotalWorkingDays: &days})
	require.NoError(t, err)
	assert.True(t, updated.Salary.Equal(salary))
	assert.Equal(t, 22, updated.TotalWorkingDays)
	assert.Equal(t, "Mohamed Ali", updated.Name)

	_, err = svc.Update(ctx, employee.UpdateEmployeeRequest{ID: "ghost"})
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}

func TestDelete(t *testing.T) {
	ctx := context.Background()
	svc, cols := newTestService(t)

	now := time.Now()
	employees, err := cols.Employees.Load(ctx)
	require.NoError(t, err)
	employees[0].IsCheckedIn = true
	employees[0].LastCheckInTime = &now
	require.NoError(t, cols.Employees.Store(ctx, employees))

	assert.ErrorIs(t, svc.Delete(ctx, "e1"), employee.ErrEmployeeCheckedIn)
	require.NoError(t, svc.Delete(ctx, "e3"))
	assert.ErrorIs(t, svc.Delete(ctx, "e3"), employee.ErrEmployeeNotFound)
}

func TestDepartmentsAndStatuses(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	dept, err := svc.CreateDepartment(ctx, employee.NamedRequest{Name: "Logistics"})
	require.NoError(t, err)
	departments, err := svc.ListDepartments(ctx)
	require.NoError(t, err)
	assert.Contains(t, departments, dept)
	require.NoError(t, svc.DeleteDepartment(ctx, dept.ID))
	assert.ErrorIs(t, svc.DeleteDepartment(ctx, dept.ID), employee.ErrDepartmentNotFound)

	status, err := svc.CreateStatus(ctx, employee.NamedRequest{Name: "Remote"})
	require.NoError(t, err)
	assert.Equal(t, "gray", status.Color)
	require.NoError(t, svc.DeleteStatus(ctx, status.ID))
	assert.ErrorIs(t, svc.DeleteStatus(ctx, status.ID), employee.ErrStatusNotFound)
}
