package employee

import (
	"time"

	"github.com/shopspring/decimal"
)

type Employee struct {
	ID           string
	EmployeeCode string
	FullName     string
	BasicSalary  decimal.Decimal
	Status       Status
	// MachineID is the identifier the time-clock device reports for this
	// employee. Nil when the employee has no device enrollment.
	MachineID *int64
	ShiftID   *string
	CreatedAt time.Time
	UpdatedAt time.Time
}

type Status string

const (
	StatusActive   Status = "Active"
	StatusInactive Status = "Inactive"
)

// Shift holds the scheduled clock-in/clock-out times used to derive
// attendance status. Times carry only a meaningful time-of-day component.
type Shift struct {
	ID        string
	Name      string
	StartTime time.Time
	EndTime   time.Time
}
