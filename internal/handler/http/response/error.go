package response

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/furniflow/erp-backend-go/internal/domain/attendance"
	"github.com/furniflow/erp-backend-go/internal/domain/auth"
	"github.com/furniflow/erp-backend-go/internal/domain/customer"
	"github.com/furniflow/erp-backend-go/internal/domain/employee"
	"github.com/furniflow/erp-backend-go/internal/domain/inventory"
	"github.com/furniflow/erp-backend-go/internal/domain/ledger"
	"github.com/furniflow/erp-backend-go/internal/domain/master/branch"
	"github.com/furniflow/erp-backend-go/internal/domain/order"
	"github.com/furniflow/erp-backend-go/internal/domain/payroll"
	"github.com/furniflow/erp-backend-go/internal/domain/purchasing"
	"github.com/furniflow/erp-backend-go/internal/domain/report"
	"github.com/furniflow/erp-backend-go/internal/domain/settings"
	"github.com/furniflow/erp-backend-go/internal/domain/user"
	"github.com/furniflow/erp-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	// The measured distance is part of the message shown to the employee.
	var geofenceErr *attendance.GeofenceError
	if errors.As(err, &geofenceErr) {
		Forbidden(w, geofenceErr.Error())
		return
	}

	switch {
	// Auth
	case errors.Is(err, auth.ErrInvalidCredentials),
		errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, err.Error())
	case errors.Is(err, auth.ErrBranchForbidden),
		errors.Is(err, auth.ErrGoogleAccountUnknown),
		errors.Is(err, user.ErrInsufficientPermissions):
		Forbidden(w, err.Error())
	case errors.Is(err, auth.ErrGoogleNotConfigured):
		NotFound(w, err.Error())
	case errors.Is(err, auth.ErrInvalidOAuthState):
		BadRequest(w, err.Error())

	// Not found
	case errors.Is(err, branch.ErrBranchNotFound),
		errors.Is(err, customer.ErrCustomerNotFound),
		errors.Is(err, employee.ErrEmployeeNotFound),
		errors.Is(err, employee.ErrDepartmentNotFound),
		errors.Is(err, employee.ErrStatusNotFound),
		errors.Is(err, inventory.ErrItemNotFound),
		errors.Is(err, inventory.ErrCategoryNotFound),
		errors.Is(err, ledger.ErrTransactionNotFound),
		errors.Is(err, ledger.ErrCategoryNotFound),
		errors.Is(err, ledger.ErrPaymentMethodNotFound),
		errors.Is(err, order.ErrOrderNotFound),
		errors.Is(err, order.ErrSalesRepNotFound),
		errors.Is(err, purchasing.ErrSupplierNotFound),
		errors.Is(err, purchasing.ErrPONotFound),
		errors.Is(err, purchasing.ErrProductNotFound),
		errors.Is(err, settings.ErrGeoRegionNotFound),
		errors.Is(err, user.ErrUserNotFound),
		errors.Is(err, user.ErrRoleNotFound):
		NotFound(w, err.Error())

	// Conflicts with stored state
	case errors.Is(err, attendance.ErrAlreadyCheckedIn),
		errors.Is(err, attendance.ErrNotCheckedIn),
		errors.Is(err, branch.ErrBranchIDExists),
		errors.Is(err, branch.ErrCannotDeleteHeadquarters),
		errors.Is(err, customer.ErrCustomerEmailExists),
		errors.Is(err, customer.ErrCustomerHasOrders),
		errors.Is(err, employee.ErrEmployeeEmailExists),
		errors.Is(err, employee.ErrEmployeeCheckedIn),
		errors.Is(err, inventory.ErrSKUExists),
		errors.Is(err, inventory.ErrCategoryNameExists),
		errors.Is(err, payroll.ErrOrderNotEligible),
		errors.Is(err, purchasing.ErrSupplierInUse),
		errors.Is(err, purchasing.ErrPONotReceivable),
		errors.Is(err, purchasing.ErrPONotCancellable),
		errors.Is(err, user.ErrUserEmailExists),
		errors.Is(err, user.ErrRoleNameExists),
		errors.Is(err, user.ErrCannotDeleteSystemRole),
		errors.Is(err, user.ErrRoleInUse):
		Conflict(w, err.Error())

	// Rejected input
	case errors.Is(err, attendance.ErrLocationUnavailable),
		errors.Is(err, attendance.ErrLocationPermissionDenied),
		errors.Is(err, attendance.ErrInvalidMonth),
		errors.Is(err, branch.ErrBranchLocationNotSet),
		errors.Is(err, ledger.ErrPaymentMethodRequired),
		errors.Is(err, ledger.ErrInvalidAmount),
		errors.Is(err, order.ErrCustomerRequired),
		errors.Is(err, order.ErrEmptyCart),
		errors.Is(err, order.ErrInvalidStatus),
		errors.Is(err, order.ErrInvalidCartAction),
		errors.Is(err, payroll.ErrNoOrdersSelected),
		errors.Is(err, payroll.ErrInvalidAmount),
		errors.Is(err, payroll.ErrNegativeOverride),
		errors.Is(err, payroll.ErrPaymentMethodRequired),
		errors.Is(err, payroll.ErrInvalidPaymentType),
		errors.Is(err, report.ErrUnknownReport),
		errors.Is(err, settings.ErrInvalidBackup):
		BadRequest(w, err.Error())

	default:
		slog.Error("unhandled error", "error", err)
		InternalServerError(w, "An unexpected error occurred")
	}
}
