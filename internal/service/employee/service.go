package employee

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/furniflow/erp-backend-go/internal/domain/employee"
	"github.com/furniflow/erp-backend-go/internal/domain/master/branch"
	"github.com/furniflow/erp-backend-go/internal/pkg/utils"
	"github.com/furniflow/erp-backend-go/internal/repository"
	"github.com/shopspring/decimal"
)

type EmployeeServiceImpl struct {
	store          repository.Store
	employeeRepo   employee.EmployeeRepository
	branchRepo     branch.BranchRepository
	departmentRepo employee.DepartmentRepository
	statusRepo     employee.StatusRepository
}

func NewEmployeeService(
	store repository.Store,
	employeeRepo employee.EmployeeRepository,
	branchRepo branch.BranchRepository,
	departmentRepo employee.DepartmentRepository,
	statusRepo employee.StatusRepository,
) employee.EmployeeService {
	return &EmployeeServiceImpl{
		store:          store,
		employeeRepo:   employeeRepo,
		branchRepo:     branchRepo,
		departmentRepo: departmentRepo,
		statusRepo:     statusRepo,
	}
}

func (s *EmployeeServiceImpl) List(ctx context.Context, req employee.ListEmployeeRequest) ([]employee.EmployeeResponse, error) {
	employees, err := s.employeeRepo.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load employees: %w", err)
	}

	search := strings.ToLower(strings.TrimSpace(req.Search))
	result := []employee.EmployeeResponse{}
	for _, e := range employees {
		if !branch.InScope(req.BranchScope, e.BranchID) {
			continue
		}
		if req.Department != "" && e.Department != req.Department {
			continue
		}
		if req.Status != "" && e.Status != req.Status {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(e.Name), search) && !strings.Contains(strings.ToLower(e.Email), search) {
			continue
		}
		result = append(result, employee.ToResponse(e))
	}
	return result, nil
}

func (s *EmployeeServiceImpl) GetByID(ctx context.Context, id string) (employee.EmployeeResponse, error) {
	employees, err := s.employeeRepo.Load(ctx)
	if err != nil {
		return employee.EmployeeResponse{}, fmt.Errorf("failed to load employees: %w", err)
	}
	idx, ok := employee.FindByID(employees, id)
	if !ok {
		return employee.EmployeeResponse{}, employee.ErrEmployeeNotFound
	}
	return employee.ToResponse(employees[idx]), nil
}

// Create hires an employee. New hires start checked out with no attendance,
// no logs and no loan.
func (s *EmployeeServiceImpl) Create(ctx context.Context, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}

	var created employee.Employee
	err := repository.WithTransaction(ctx, s.store, func(ctx context.Context) error {
		if err := s.ensureBranch(ctx, req.BranchID); err != nil {
			return err
		}

		employees, err := s.employeeRepo.Load(ctx)
		if err != nil {
			return err
		}
		if emailTaken(employees, req.Email, "") {
			return employee.ErrEmployeeEmailExists
		}

		status := req.Status
		if status == "" {
			status = employee.StatusActive
		}
		created = employee.Employee{
			ID:               utils.NewID("EMP"),
			Name:             strings.TrimSpace(req.Name),
			Role:             req.Role,
			Department:       req.Department,
			Email:            strings.TrimSpace(req.Email),
			Status:           status,
			BranchID:         req.BranchID,
			Salary:           req.Salary,
			LoanBalance:      decimal.Zero,
			CommissionRate:   req.CommissionRate,
			SalesTarget:      req.SalesTarget,
			TotalWorkingDays: req.TotalWorkingDays,
			Logs:             []employee.AttendanceLog{},
			AvatarURL:        req.AvatarURL,
		}
		return s.employeeRepo.Store(ctx, append(employees, created))
	})
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	slog.Info("employee created", "employee_id", created.ID, "branch_id", created.BranchID)
	return employee.ToResponse(created), nil
}

func (s *EmployeeServiceImpl) Update(ctx context.Context, req employee.UpdateEmployeeRequest) (employee.EmployeeResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}

	var updated employee.Employee
	err := repository.WithTransaction(ctx, s.store, func(ctx context.Context) error {
		employees, err := s.employeeRepo.Load(ctx)
		if err != nil {
			return err
		}
		idx, ok := employee.FindByID(employees, req.ID)
		if !ok {
			return employee.ErrEmployeeNotFound
		}
		e := &employees[idx]

		if req.BranchID != nil && *req.BranchID != e.BranchID {
			if err := s.ensureBranch(ctx, *req.BranchID); err != nil {
				return err
			}
			e.BranchID = *req.BranchID
		}
		if req.Email != nil {
			if emailTaken(employees, *req.Email, e.ID) {
				return employee.ErrEmployeeEmailExists
			}
			e.Email = strings.TrimSpace(*req.Email)
		}
		if req.Name != nil {
			e.Name = strings.TrimSpace(*req.Name)
		}
		if req.Role != nil {
			e.Role = *req.Role
		}
		if req.Department != nil {
			e.Department = *req.Department
		}
		if req.Status != nil {
			e.Status = *req.Status
		}
		if req.Salary != nil {
			e.Salary = *req.Salary
		}
		if req.CommissionRate != nil {
			e.CommissionRate = *req.CommissionRate
		}
		if req.SalesTarget != nil {
			e.SalesTarget = *req.SalesTarget
		}
		if req.AttendanceDays != nil {
			e.AttendanceDays = *req.AttendanceDays
		}
		if req.TotalWorkingDays != nil {
			e.TotalWorkingDays = *req.TotalWorkingDays
		}
		if req.AvatarURL != nil {
			e.AvatarURL = *req.AvatarURL
		}

		updated = *e
		return s.employeeRepo.Store(ctx, employees)
	})
	if err != nil {
		return employee.EmployeeResponse{}, err
	}
	return employee.ToResponse(updated), nil
}

// Delete removes an employee who is not on the clock.
func (s *EmployeeServiceImpl) Delete(ctx context.Context, id string) error {
	return repository.WithTransaction(ctx, s.store, func(ctx context.Context) error {
		employees, err := s.employeeRepo.Load(ctx)
		if err != nil {
			return err
		}
		idx, ok := employee.FindByID(employees, id)
		if !ok {
			return employee.ErrEmployeeNotFound
		}
		if employees[idx].IsCheckedIn {
			return employee.ErrEmployeeCheckedIn
		}
		return s.employeeRepo.Store(ctx, slices.Delete(employees, idx, idx+1))
	})
}

// ========== DEPARTMENTS ==========

func (s *EmployeeServiceImpl) ListDepartments(ctx context.Context) ([]employee.Department, error) {
	return s.departmentRepo.Load(ctx)
}

func (s *EmployeeServiceImpl) CreateDepartment(ctx context.Context, req employee.NamedRequest) (employee.Department, error) {
	if err := req.Validate(); err != nil {
		return employee.Department{}, err
	}
	dept := employee.Department{ID: utils.NewID("DEP"), Name: strings.TrimSpace(req.Name)}
	err := repository.WithTransaction(ctx, s.store, func(ctx context.Context) error {
		departments, err := s.departmentRepo.Load(ctx)
		if err != nil {
			return err
		}
		return s.departmentRepo.Store(ctx, append(departments, dept))
	})
	if err != nil {
		return employee.Department{}, err
	}
	return dept, nil
}

func (s *EmployeeServiceImpl) DeleteDepartment(ctx context.Context, id string) error {
	return repository.WithTransaction(ctx, s.store, func(ctx context.Context) error {
		departments, err := s.departmentRepo.Load(ctx)
		if err != nil {
			return err
		}
		idx := slices.IndexFunc(departments, func(d employee.Department) bool { return d.ID == id })
		if idx < 0 {
			return employee.ErrDepartmentNotFound
		}
		return s.departmentRepo.Store(ctx, slices.Delete(departments, idx, idx+1))
	})
}

// ========== STATUSES ==========

func (s *EmployeeServiceImpl) ListStatuses(ctx context.Context) ([]employee.EmployeeStatus, error) {
	return s.statusRepo.Load(ctx)
}

func (s *EmployeeServiceImpl) CreateStatus(ctx context.Context, req employee.NamedRequest) (employee.EmployeeStatus, error) {
	if err := req.Validate(); err != nil {
		return employee.EmployeeStatus{}, err
	}
	color := req.Color
	if color == "" {
		color = "gray"
	}
	status := employee.EmployeeStatus{ID: utils.NewID("ST"), Name: strings.TrimSpace(req.Name), Color: color}
	err := repository.WithTransaction(ctx, s.store, func(ctx context.Context) error {
		statuses, err := s.statusRepo.Load(ctx)
		if err != nil {
			return err
		}
		return s.statusRepo.Store(ctx, append(statuses, status))
	})
	if err != nil {
		return employee.EmployeeStatus{}, err
	}
	return status, nil
}

func (s *EmployeeServiceImpl) DeleteStatus(ctx context.Context, id string) error {
	return repository.WithTransaction(ctx, s.store, func(ctx context.Context) error {
		statuses, err := s.statusRepo.Load(ctx)
		if err != nil {
			return err
		}
		idx := slices.IndexFunc(statuses, func(st employee.EmployeeStatus) bool { return st.ID == id })
		if idx < 0 {
			return employee.ErrStatusNotFound
		}
		return s.statusRepo.Store(ctx, slices.Delete(statuses, idx, idx+1))
	})
}

func (s *EmployeeServiceImpl) ensureBranch(ctx context.Context, id string) error {
	branches, err := s.branchRepo.Load(ctx)
	if err != nil {
		return err
	}
	if _, ok := branch.FindByID(branches, id); !ok {
		return branch.ErrBranchNotFound
	}
	return nil
}

func emailTaken(employees []employee.Employee, email, exceptID string) bool {
	email = strings.TrimSpace(email)
	if email == "" {
		return false
	}
	for _, e := range employees {
		if e.ID != exceptID && strings.EqualFold(e.Email, email) {
			return true
		}
	}
	return false
}
