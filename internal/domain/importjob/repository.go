package importjob

import "context"

type JobRepository interface {
	Create(ctx context.Context, job Job) (Job, error)
	GetByID(ctx context.Context, id string) (Job, error)
	// UpdateProgress persists status plus counters; the reconciler calls it at
	// coarse intervals, so counters must only ever grow.
	UpdateProgress(ctx context.Context, id string, status Status, totalRows, processedRows int) error
	// Finish moves the job to a terminal status and stores the error log.
	Finish(ctx context.Context, id string, status Status, totalRows, processedRows int, errorLog *string) error
}
