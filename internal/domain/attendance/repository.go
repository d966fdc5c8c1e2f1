package attendance

import (
	"context"
	"time"
)

type AttendanceRepository interface {
	Create(ctx context.Context, record Attendance) (Attendance, error)

	// GetByEmployeeAndDate returns nil (no error) when no record exists.
	// Used by the punch reconciler's skip-if-exists check.
	GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (*Attendance, error)

	// CountPresentDays counts the distinct calendar dates in [start, end]
	// with a Present record for the employee. Counting dates rather than rows
	// keeps the aggregate correct even if the uniqueness invariant is ever
	// violated.
	CountPresentDays(ctx context.Context, employeeID string, start, end time.Time) (int, error)

	List(ctx context.Context, filter Filter) ([]Attendance, error)
}

type Filter struct {
	EmployeeID *string
	DateFrom   *time.Time
	DateTo     *time.Time
}
