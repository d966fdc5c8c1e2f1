package importjob

import "time"

// Status enum. Transitions are one-directional:
// Pending -> Processing -> Saving -> Completed | Failed.
type Status string

const (
	StatusPending    Status = "Pending"
	StatusProcessing Status = "Processing"
	StatusSaving     Status = "Saving"
	StatusCompleted  Status = "Completed"
	StatusFailed     Status = "Failed"
)

// Terminal reports whether no further transition is allowed from s.
func (s Status) Terminal() bool {
	return s == StatusCompleted || s == StatusFailed
}

// Job is one punch-export upload and its reconciliation progress.
type Job struct {
	ID       string
	FileName string
	FileData []byte
	Status   Status

	TotalRows     int
	ProcessedRows int

	// ErrorLog accumulates the failure message plus a bounded prefix of
	// per-row diagnostics. Populated on Failed and on Completed with skipped rows.
	ErrorLog *string

	CreatedAt time.Time
	UpdatedAt time.Time
}
