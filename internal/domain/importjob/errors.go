package importjob

import "errors"

var (
	ErrJobNotFound = errors.New("import job not found")
	// ErrJobAlreadyRunning is returned when a second reconciliation worker is
	// requested for a job id that already has one.
	ErrJobAlreadyRunning = errors.New("import job is already running")
	ErrMissingColumn     = errors.New("required column not found in header row")
	ErrEmptyFile         = errors.New("uploaded file contains no data rows")
)
