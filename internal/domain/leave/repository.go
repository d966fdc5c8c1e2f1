package leave

import (
	"context"
	"time"
)

type LeaveRequestRepository interface {
	Create(ctx context.Context, request LeaveRequest) (LeaveRequest, error)

	GetByID(ctx context.Context, id string) (LeaveRequest, error)

	// ListApprovedOverlapping returns approved requests for the employee whose
	// [start_date, end_date] range intersects [start, end].
	ListApprovedOverlapping(ctx context.Context, employeeID string, start, end time.Time) ([]LeaveRequest, error)

	// HasOverlap reports whether any non-rejected request for the employee
	// intersects [start, end]. Used to enforce the write-time overlap invariant.
	HasOverlap(ctx context.Context, employeeID string, start, end time.Time) (bool, error)

	UpdateStatus(ctx context.Context, id string, status Status) error

	List(ctx context.Context, employeeID string) ([]LeaveRequest, error)
}
