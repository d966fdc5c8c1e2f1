package attendance

import "errors"

var (
	ErrAttendanceNotFound = errors.New("attendance record not found")
	// ErrDuplicateDay is returned when a record already exists for the same
	// employee and date. Backed by the unique (employee_id, date) index.
	ErrDuplicateDay = errors.New("attendance record already exists for this date")
)
