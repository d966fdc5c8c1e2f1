package importjob

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToStatusResponse_Percentage(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		job       Job
		wantPct   int
		wantState string
	}{
		{"zero total", Job{Status: StatusPending}, 0, "Pending"},
		{"halfway", Job{Status: StatusProcessing, TotalRows: 200, ProcessedRows: 100}, 50, "Processing"},
		{"rounds down", Job{Status: StatusProcessing, TotalRows: 3, ProcessedRows: 2}, 66, "Processing"},
		{"forced to 100 at completed", Job{Status: StatusCompleted, TotalRows: 3, ProcessedRows: 2}, 100, "Completed"},
		{"completed with zero total", Job{Status: StatusCompleted}, 100, "Completed"},
		{"failed keeps partial progress", Job{Status: StatusFailed, TotalRows: 10, ProcessedRows: 4}, 40, "Failed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := ToStatusResponse(tt.job)
			assert.Equal(t, tt.wantPct, resp.Percentage)
			assert.Equal(t, tt.wantState, resp.Status)
		})
	}
}

func TestStatusTerminal(t *testing.T) {
	t.Parallel()

	assert.True(t, StatusCompleted.Terminal())
	assert.True(t, StatusFailed.Terminal())
	assert.False(t, StatusPending.Terminal())
	assert.False(t, StatusProcessing.Terminal())
	assert.False(t, StatusSaving.Terminal())
}
