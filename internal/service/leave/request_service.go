package leave

import (
	"context"
	"errors"
	"time"

	"github.com/astrahr/payroll-backend-go/internal/domain/employee"
	"github.com/astrahr/payroll-backend-go/internal/domain/leave"
	"github.com/astrahr/payroll-backend-go/internal/pkg/dateutil"
)

// RequestService owns the leave request write path. The non-overlap invariant
// (no two non-rejected requests for the same employee may intersect) is
// enforced here so downstream aggregation can rely on it.
type RequestService struct {
	leaveRepo    leave.LeaveRequestRepository
	employeeRepo employee.EmployeeRepository
}

func NewRequestService(leaveRepo leave.LeaveRequestRepository, employeeRepo employee.EmployeeRepository) *RequestService {
	return &RequestService{leaveRepo: leaveRepo, employeeRepo: employeeRepo}
}

func (s *RequestService) Create(ctx context.Context, employeeID, leaveType string, startDate, endDate time.Time, remarks *string) (leave.LeaveRequest, error) {
	startDate = dateutil.DateOnly(startDate)
	endDate = dateutil.DateOnly(endDate)
	if endDate.Before(startDate) {
		return leave.LeaveRequest{}, leave.ErrInvalidPeriod
	}

	if _, err := s.employeeRepo.GetByID(ctx, employeeID); err != nil {
		return leave.LeaveRequest{}, err
	}

	overlaps, err := s.leaveRepo.HasOverlap(ctx, employeeID, startDate, endDate)
	if err != nil {
		return leave.LeaveRequest{}, err
	}
	if overlaps {
		return leave.LeaveRequest{}, leave.ErrLeaveOverlap
	}

	return s.leaveRepo.Create(ctx, leave.LeaveRequest{
		EmployeeID: employeeID,
		LeaveType:  leaveType,
		StartDate:  startDate,
		EndDate:    endDate,
		Status:     leave.StatusPending,
		Remarks:    remarks,
	})
}

// Decide moves a pending request to Approved or Rejected.
func (s *RequestService) Decide(ctx context.Context, id string, status leave.Status) error {
	if status != leave.StatusApproved && status != leave.StatusRejected {
		return errors.New("decision must be Approved or Rejected")
	}

	request, err := s.leaveRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if request.Status != leave.StatusPending {
		return leave.ErrAlreadyDecided
	}

	return s.leaveRepo.UpdateStatus(ctx, id, status)
}

func (s *RequestService) List(ctx context.Context, employeeID string) ([]leave.LeaveRequest, error) {
	return s.leaveRepo.List(ctx, employeeID)
}
