package punchimport

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/astrahr/payroll-backend-go/internal/domain/importjob"
)

// Runner owns one background goroutine per import job. The job id is the
// concurrency boundary: a second Start for an id that is still running is
// rejected. Workers get a context detached from the triggering HTTP request
// so an abandoned upload keeps reconciling to completion.
type Runner struct {
	mu     sync.Mutex
	active map[string]chan struct{}
	wg     sync.WaitGroup
}

func NewRunner() *Runner {
	return &Runner{
		active: make(map[string]chan struct{}),
	}
}

// Start launches fn for the given job id. Returns ErrJobAlreadyRunning when a
// worker for the id is still in flight.
func (r *Runner) Start(jobID string, fn func(ctx context.Context)) error {
	r.mu.Lock()
	if _, running := r.active[jobID]; running {
		r.mu.Unlock()
		return importjob.ErrJobAlreadyRunning
	}
	done := make(chan struct{})
	r.active[jobID] = done
	r.wg.Add(1)
	r.mu.Unlock()

	go func() {
		start := time.Now()
		defer func() {
			r.mu.Lock()
			delete(r.active, jobID)
			r.mu.Unlock()
			close(done)
			r.wg.Done()
			slog.Debug("Import worker finished", "job_id", jobID, "duration", time.Since(start))
		}()

		fn(context.Background())
	}()

	return nil
}

// Wait blocks until the worker for the given job id has finished. Returns
// immediately when no worker is running for the id.
func (r *Runner) Wait(jobID string) {
	r.mu.Lock()
	done, running := r.active[jobID]
	r.mu.Unlock()
	if !running {
		return
	}
	<-done
}

// Drain waits for all in-flight workers, giving up when ctx expires. Called
// during shutdown so jobs are not killed mid-save.
func (r *Runner) Drain(ctx context.Context) error {
	finished := make(chan struct{})
	go func() {
		r.wg.Wait()
		close(finished)
	}()

	select {
	case <-finished:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
