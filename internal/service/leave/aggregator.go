package leave

import (
	"context"
	"fmt"
	"time"

	"github.com/astrahr/payroll-backend-go/internal/domain/leave"
	"github.com/astrahr/payroll-backend-go/internal/pkg/dateutil"
)

// Aggregator computes paid and unpaid leave day counts for a pay period.
type Aggregator struct {
	leaveRepo leave.LeaveRequestRepository
}

func NewAggregator(leaveRepo leave.LeaveRequestRepository) *Aggregator {
	return &Aggregator{leaveRepo: leaveRepo}
}

// Days sums the clipped lengths of approved leave requests overlapping
// [periodStart, periodEnd]. Requests of type "Unpaid" count as unpaid days;
// every other type counts as paid. Overlap between requests is prevented at
// write time; if that invariant is ever violated the overlap is double-counted
// here rather than silently corrected.
func (a *Aggregator) Days(ctx context.Context, employeeID string, periodStart, periodEnd time.Time) (paid, unpaid int, err error) {
	requests, err := a.leaveRepo.ListApprovedOverlapping(ctx, employeeID, periodStart, periodEnd)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to aggregate leave days: %w", err)
	}

	for _, request := range requests {
		days := dateutil.ClippedDays(request.StartDate, request.EndDate, periodStart, periodEnd)
		if request.LeaveType == leave.TypeUnpaid {
			unpaid += days
		} else {
			paid += days
		}
	}

	return paid, unpaid, nil
}
