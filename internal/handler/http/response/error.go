package response

import (
	"errors"
	"net/http"

	"github.com/astrahr/payroll-backend-go/internal/domain/attendance"
	"github.com/astrahr/payroll-backend-go/internal/domain/employee"
	"github.com/astrahr/payroll-backend-go/internal/domain/importjob"
	"github.com/astrahr/payroll-backend-go/internal/domain/leave"
	"github.com/astrahr/payroll-backend-go/internal/domain/payroll"
	"github.com/astrahr/payroll-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, employee.ErrShiftNotFound):
		NotFound(w, "Shift not found")

	// Leave domain errors
	case errors.Is(err, leave.ErrLeaveRequestNotFound):
		NotFound(w, "Leave request not found")
	case errors.Is(err, leave.ErrLeaveOverlap):
		Conflict(w, "Leave request overlaps an existing request")
	case errors.Is(err, leave.ErrInvalidPeriod):
		BadRequest(w, "End date must not be before start date", nil)
	case errors.Is(err, leave.ErrAlreadyDecided):
		Conflict(w, "Leave request already decided")

	// Attendance domain errors
	case errors.Is(err, attendance.ErrDuplicateDay):
		Conflict(w, "Attendance already recorded for this day")

	// Payroll domain errors
	case errors.Is(err, payroll.ErrPayrollRecordNotFound):
		NotFound(w, "Payroll record not found")
	case errors.Is(err, payroll.ErrPayrollRecordAlreadyExists):
		Conflict(w, "Payroll already generated for this period")
	case errors.Is(err, payroll.ErrPayrollRecordAlreadyPaid):
		Conflict(w, "Payroll record already paid")
	case errors.Is(err, payroll.ErrRuleNotFound):
		NotFound(w, "Payroll rule not found")
	case errors.Is(err, payroll.ErrInvalidPeriod):
		BadRequest(w, "End date must not be before start date", nil)

	// Import job domain errors
	case errors.Is(err, importjob.ErrJobNotFound):
		NotFound(w, "Import job not found")
	case errors.Is(err, importjob.ErrJobAlreadyRunning):
		Conflict(w, "Import job is already running")
	case errors.Is(err, importjob.ErrEmptyFile):
		BadRequest(w, "Uploaded file contains no data rows", nil)
	case errors.Is(err, importjob.ErrMissingColumn):
		BadRequest(w, "Required column not found in header row", nil)

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
