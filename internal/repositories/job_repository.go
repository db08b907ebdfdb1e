package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"placementhub/internal/database"
	"placementhub/internal/models"

	"go.uber.org/zap"
)

type jobRepository struct {
	*BaseRepository
}

// NewJobRepository creates a new instance of JobRepository
func NewJobRepository(db *database.Manager, logger *zap.Logger) JobRepository {
	return &jobRepository{
		BaseRepository: NewBaseRepository(db, logger),
	}
}

// Create inserts a new job posting
func (r *jobRepository) Create(ctx context.Context, job *models.Job) error {
	query := `
		INSERT INTO jobs (company_id, title, description, requirements, location, salary, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at`

	err := r.QueryRowContext(ctx, query,
		job.CompanyID, job.Title, job.Description, job.Requirements,
		job.Location, job.Salary, job.Status,
	).Scan(&job.ID, &job.CreatedAt)
	if err != nil {
		r.GetLogger().Error("Failed to create job",
			zap.Error(err),
			zap.Int64("company_id", job.CompanyID),
			zap.String("title", job.Title),
		)
		return fmt.Errorf("failed to create job: %w", err)
	}

	r.GetLogger().Info("Job created",
		zap.Int64("job_id", job.ID),
		zap.Int64("company_id", job.CompanyID),
		zap.String("title", job.Title),
	)
	return nil
}

// GetByID retrieves a job with its company name joined, or nil when absent.
func (r *jobRepository) GetByID(ctx context.Context, id int64) (*models.Job, error) {
	query := `
		SELECT
			j.id, j.company_id, j.title, j.description, j.requirements,
			j.location, j.salary, j.status, j.created_at,
			cp.company_name
		FROM jobs j
		INNER JOIN company_profiles cp ON j.company_id = cp.id
		WHERE j.id = $1`

	var job models.Job
	err := r.QueryRowContext(ctx, query, id).Scan(
		&job.ID, &job.CompanyID, &job.Title, &job.Description, &job.Requirements,
		&job.Location, &job.Salary, &job.Status, &job.CreatedAt,
		&job.CompanyName,
	)
	if err != nil {
		if r.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get job: %w", err)
	}
	return &job, nil
}

// ListVisible returns jobs whose owning company's account is ACTIVE,
// newest first. Jobs of pending or blocked companies are hidden, not
// deleted.
func (r *jobRepository) ListVisible(ctx context.Context) ([]*models.Job, error) {
	query := `
		SELECT
			j.id, j.company_id, j.title, j.description, j.requirements,
			j.location, j.salary, j.status, j.created_at,
			cp.company_name
		FROM jobs j
		INNER JOIN company_profiles cp ON j.company_id = cp.id
		INNER JOIN users u ON cp.user_id = u.id
		WHERE u.status = 'ACTIVE'
		ORDER BY j.created_at DESC`

	rows, err := r.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list jobs: %w", err)
	}
	defer rows.Close()

	return r.scanJobRows(rows)
}

// ListByCompany returns every job owned by the company, newest first.
func (r *jobRepository) ListByCompany(ctx context.Context, companyID int64) ([]*models.Job, error) {
	query := `
		SELECT
			j.id, j.company_id, j.title, j.description, j.requirements,
			j.location, j.salary, j.status, j.created_at,
			cp.company_name
		FROM jobs j
		INNER JOIN company_profiles cp ON j.company_id = cp.id
		WHERE j.company_id = $1
		ORDER BY j.created_at DESC`

	rows, err := r.QueryContext(ctx, query, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list company jobs: %w", err)
	}
	defer rows.Close()

	return r.scanJobRows(rows)
}

// Update persists the mutable fields of a job.
func (r *jobRepository) Update(ctx context.Context, job *models.Job) error {
	result, err := r.ExecContext(ctx, `
		UPDATE jobs SET
			title = $2, description = $3, requirements = $4,
			location = $5, salary = $6, status = $7
		WHERE id = $1`,
		job.ID, job.Title, job.Description, job.Requirements,
		job.Location, job.Salary, job.Status,
	)
	if err != nil {
		return fmt.Errorf("failed to update job: %w", err)
	}
	affected, _ := result.RowsAffected()
	if affected == 0 {
		return sql.ErrNoRows
	}

	r.GetLogger().Info("Job updated", zap.Int64("job_id", job.ID))
	return nil
}

// DeleteCascade removes all applications referencing the job, then the
// job itself. Both steps run in one transaction so a partial failure
// cannot leave applications pointing at a nonexistent job.
func (r *jobRepository) DeleteCascade(ctx context.Context, id int64) error {
	err := r.WithTransaction(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM applications WHERE job_id = $1`, id); err != nil {
			return fmt.Errorf("failed to delete job applications: %w", err)
		}

		result, err := tx.ExecContext(ctx, `DELETE FROM jobs WHERE id = $1`, id)
		if err != nil {
			return fmt.Errorf("failed to delete job: %w", err)
		}
		affected, _ := result.RowsAffected()
		if affected == 0 {
			return sql.ErrNoRows
		}
		return nil
	})
	if err != nil {
		return err
	}

	r.GetLogger().Info("Job deleted with applications", zap.Int64("job_id", id))
	return nil
}

// Count returns the total number of jobs.
func (r *jobRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.QueryRowContext(ctx, `SELECT COUNT(*) FROM jobs`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count jobs: %w", err)
	}
	return count, nil
}

// CountByCompany returns total and open job counts for a company.
func (r *jobRepository) CountByCompany(ctx context.Context, companyID int64) (int, int, error) {
	var total, open int
	err := r.QueryRowContext(ctx, `
		SELECT COUNT(*), COUNT(*) FILTER (WHERE status = 'OPEN')
		FROM jobs WHERE company_id = $1`, companyID,
	).Scan(&total, &open)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to count company jobs: %w", err)
	}
	return total, open, nil
}

func (r *jobRepository) scanJobRows(rows *sql.Rows) ([]*models.Job, error) {
	var jobs []*models.Job
	for rows.Next() {
		var job models.Job
		if err := rows.Scan(
			&job.ID, &job.CompanyID, &job.Title, &job.Description, &job.Requirements,
			&job.Location, &job.Salary, &job.Status, &job.CreatedAt,
			&job.CompanyName,
		); err != nil {
			return nil, fmt.Errorf("failed to scan job row: %w", err)
		}
		jobs = append(jobs, &job)
	}
	return jobs, rows.Err()
}
