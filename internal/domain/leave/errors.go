package leave

import "errors"

var (
	ErrLeaveRequestNotFound = errors.New("leave request not found")
	// ErrLeaveOverlap is returned when a new request overlaps an existing
	// non-rejected request for the same employee. The overlap invariant is
	// enforced here, at write time; the payroll calculator relies on it and
	// never deduplicates.
	ErrLeaveOverlap   = errors.New("leave request overlaps an existing request")
	ErrInvalidPeriod  = errors.New("leave end date is before start date")
	ErrAlreadyDecided = errors.New("leave request has already been approved or rejected")
)
