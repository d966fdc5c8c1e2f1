package leave

import "time"

type LeaveRequest struct {
	ID         string
	EmployeeID string
	// LeaveType categorizes pay treatment: TypeUnpaid days are unpaid,
	// every other value is treated as paid leave.
	LeaveType string
	StartDate time.Time
	EndDate   time.Time
	Status    Status
	Remarks   *string
	CreatedAt time.Time
	UpdatedAt time.Time
}

type Status string

const (
	StatusPending  Status = "Pending"
	StatusApproved Status = "Approved"
	StatusRejected Status = "Rejected"
)

const TypeUnpaid = "Unpaid"
