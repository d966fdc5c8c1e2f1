package leave

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/astrahr/payroll-backend-go/internal/pkg/validator"
)

func TestCreateLeaveRequest_Validate(t *testing.T) {
	t.Parallel()

	valid := CreateLeaveRequest{
		EmployeeID: "emp-1",
		LeaveType:  "Annual",
		StartDate:  "2025-01-06",
		EndDate:    "2025-01-08",
	}
	assert.NoError(t, valid.Validate())

	backwards := valid
	backwards.StartDate, backwards.EndDate = backwards.EndDate, backwards.StartDate
	err := backwards.Validate()
	require.Error(t, err)

	var errs validator.ValidationErrors
	require.ErrorAs(t, err, &errs)
	assert.Equal(t, "must not be before start_date", errs.ToMap()["end_date"])

	empty := CreateLeaveRequest{}
	err = empty.Validate()
	require.ErrorAs(t, err, &errs)
	assert.Len(t, errs, 4)
}

func TestDecideLeaveRequest_Validate(t *testing.T) {
	t.Parallel()

	for _, status := range []string{"Approved", "Rejected"} {
		decision := DecideLeaveRequest{Status: status}
		assert.NoError(t, decision.Validate(), status)
	}
	for _, status := range []string{"", "Pending", "approved", "Cancelled"} {
		decision := DecideLeaveRequest{Status: status}
		assert.Error(t, decision.Validate(), status)
	}
}
