package postgresql

import (
	"context"
	"fmt"

	"github.com/astrahr/payroll-backend-go/internal/domain/importjob"
	"github.com/astrahr/payroll-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type jobRepositoryImpl struct {
	db *database.DB
}

func NewImportJobRepository(db *database.DB) importjob.JobRepository {
	return &jobRepositoryImpl{db: db}
}

// Create implements importjob.JobRepository.
func (j *jobRepositoryImpl) Create(ctx context.Context, job importjob.Job) (importjob.Job, error) {
	q := GetQuerier(ctx, j.db)

	query := `
		INSERT INTO import_jobs (id, file_name, file_data, status, total_rows, processed_rows)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		job.ID, job.FileName, job.FileData, job.Status, job.TotalRows, job.ProcessedRows,
	).Scan(&job.CreatedAt, &job.UpdatedAt)
	if err != nil {
		return importjob.Job{}, fmt.Errorf("failed to create import job: %w", err)
	}

	return job, nil
}

// GetByID implements importjob.JobRepository.
func (j *jobRepositoryImpl) GetByID(ctx context.Context, id string) (importjob.Job, error) {
	q := GetQuerier(ctx, j.db)

	query := `
		SELECT id, file_name, file_data, status, total_rows, processed_rows, error_log,
			   created_at, updated_at
		FROM import_jobs
		WHERE id = $1
	`

	var job importjob.Job
	err := q.QueryRow(ctx, query, id).Scan(
		&job.ID, &job.FileName, &job.FileData, &job.Status, &job.TotalRows,
		&job.ProcessedRows, &job.ErrorLog, &job.CreatedAt, &job.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return importjob.Job{}, importjob.ErrJobNotFound
		}
		return importjob.Job{}, fmt.Errorf("failed to get import job: %w", err)
	}

	return job, nil
}

// UpdateProgress implements importjob.JobRepository.
func (j *jobRepositoryImpl) UpdateProgress(ctx context.Context, id string, status importjob.Status, totalRows, processedRows int) error {
	q := GetQuerier(ctx, j.db)

	query := `
		UPDATE import_jobs
		SET status = $1, total_rows = $2, processed_rows = $3, updated_at = NOW()
		WHERE id = $4
		RETURNING id
	`

	var updatedID string
	if err := q.QueryRow(ctx, query, status, totalRows, processedRows, id).Scan(&updatedID); err != nil {
		if err == pgx.ErrNoRows {
			return importjob.ErrJobNotFound
		}
		return fmt.Errorf("failed to update import job progress: %w", err)
	}

	return nil
}

// Finish implements importjob.JobRepository.
func (j *jobRepositoryImpl) Finish(ctx context.Context, id string, status importjob.Status, totalRows, processedRows int, errorLog *string) error {
	q := GetQuerier(ctx, j.db)

	query := `
		UPDATE import_jobs
		SET status = $1, total_rows = $2, processed_rows = $3, error_log = $4, updated_at = NOW()
		WHERE id = $5
		RETURNING id
	`

	var updatedID string
	if err := q.QueryRow(ctx, query, status, totalRows, processedRows, errorLog, id).Scan(&updatedID); err != nil {
		if err == pgx.ErrNoRows {
			return importjob.ErrJobNotFound
		}
		return fmt.Errorf("failed to finish import job: %w", err)
	}

	return nil
}
