package payroll

import (
	"context"
	"time"
)

type PayrollRepository interface {
	// Records
	CreateRecord(ctx context.Context, record Record) (Record, error)
	GetRecordByID(ctx context.Context, id string) (Record, error)
	// GetRecordByEmployeePeriod returns ErrPayrollRecordNotFound when no
	// record exists for the exact (employee, period) pair.
	GetRecordByEmployeePeriod(ctx context.Context, employeeID string, periodStart, periodEnd time.Time) (Record, error)
	ListRecords(ctx context.Context, filter RecordFilter) ([]Record, error)
	// MarkPaid stamps the payment date on a Pending record. Returns
	// ErrPayrollRecordAlreadyPaid when the record is already Paid.
	MarkPaid(ctx context.Context, id string, paymentDate time.Time) error

	// Rules
	CreateRule(ctx context.Context, rule Rule) (Rule, error)
	// ListEffectiveRules selects rules with is_active, effective_from <= periodEnd,
	// effective_to unset or >= periodStart, scoped company-wide or to the employee.
	ListEffectiveRules(ctx context.Context, employeeID string, periodStart, periodEnd time.Time) ([]Rule, error)
	ListRules(ctx context.Context) ([]Rule, error)
}

type RecordFilter struct {
	EmployeeID    *string
	PaymentStatus *PaymentStatus
}
