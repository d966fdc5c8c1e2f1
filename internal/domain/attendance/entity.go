package attendance

import "time"

type Attendance struct {
	ID         string
	EmployeeID string
	// Date is the calendar date of the record. One record may exist per
	// (employee, date); the storage layer enforces this with a unique index.
	Date    time.Time
	ClockIn *time.Time
	// ClockOut is nil for incomplete days (a single punch, or a manual entry
	// without a clock-out yet).
	ClockOut          *time.Time
	Status            string
	WorkMinutes       *int
	LateMinutes       *int
	EarlyLeaveMinutes *int
	// ShiftID is nil for records created by the punch reconciler; status and
	// hour derivation are deferred until a shift is assigned.
	ShiftID   *string
	CreatedAt time.Time
	UpdatedAt time.Time
}

const (
	StatusPresent = "Present"
	StatusAbsent  = "Absent"
)
