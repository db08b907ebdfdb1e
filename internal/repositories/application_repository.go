package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"placementhub/internal/database"
	"placementhub/internal/models"

	"go.uber.org/zap"
)

type applicationRepository struct {
	*BaseRepository
}

// NewApplicationRepository creates a new instance of ApplicationRepository
func NewApplicationRepository(db *database.Manager, logger *zap.Logger) ApplicationRepository {
	return &applicationRepository{
		BaseRepository: NewBaseRepository(db, logger),
	}
}

// Columns selected for every joined application read. Keep the order in
// sync with scanApplicationRows.
const applicationSelect = `
	SELECT
		a.id, a.job_id, a.student_id, a.status, a.applied_at,
		j.title, j.description, j.company_id,
		cp.company_name,
		sp.first_name, sp.last_name,
		u.email
	FROM applications a
	INNER JOIN jobs j ON a.job_id = j.id
	INNER JOIN company_profiles cp ON j.company_id = cp.id
	INNER JOIN student_profiles sp ON a.student_id = sp.id
	INNER JOIN users u ON sp.user_id = u.id`

// Create inserts a new application. A duplicate (job, student) pair
// surfaces as a unique violation for the caller to classify.
func (r *applicationRepository) Create(ctx context.Context, app *models.Application) error {
	err := r.QueryRowContext(ctx, `
		INSERT INTO applications (job_id, student_id, status)
		VALUES ($1, $2, $3)
		RETURNING id, applied_at`,
		app.JobID, app.StudentID, app.Status,
	).Scan(&app.ID, &app.AppliedAt)
	if err != nil {
		if r.IsUniqueViolation(err) {
			return err
		}
		r.GetLogger().Error("Failed to create application",
			zap.Error(err),
			zap.Int64("job_id", app.JobID),
			zap.Int64("student_id", app.StudentID),
		)
		return fmt.Errorf("failed to create application: %w", err)
	}

	r.GetLogger().Info("Application created",
		zap.Int64("application_id", app.ID),
		zap.Int64("job_id", app.JobID),
		zap.Int64("student_id", app.StudentID),
	)
	return nil
}

// GetByID retrieves an application with job, company, and student
// context joined, or nil when absent.
func (r *applicationRepository) GetByID(ctx context.Context, id int64) (*models.Application, error) {
	rows, err := r.QueryContext(ctx, applicationSelect+` WHERE a.id = $1`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get application: %w", err)
	}
	defer rows.Close()

	apps, err := r.scanApplicationRows(rows)
	if err != nil {
		return nil, err
	}
	if len(apps) == 0 {
		return nil, nil
	}
	return apps[0], nil
}

// ListByStudent returns the student's applications, newest first.
func (r *applicationRepository) ListByStudent(ctx context.Context, studentID int64) ([]*models.Application, error) {
	return r.list(ctx, applicationSelect+` WHERE a.student_id = $1 ORDER BY a.applied_at DESC`, studentID)
}

// ListByJob returns all applications for one job, newest first.
func (r *applicationRepository) ListByJob(ctx context.Context, jobID int64) ([]*models.Application, error) {
	return r.list(ctx, applicationSelect+` WHERE a.job_id = $1 ORDER BY a.applied_at DESC`, jobID)
}

// ListByCompany returns applications across all of a company's jobs,
// newest first.
func (r *applicationRepository) ListByCompany(ctx context.Context, companyID int64) ([]*models.Application, error) {
	return r.list(ctx, applicationSelect+` WHERE j.company_id = $1 ORDER BY a.applied_at DESC`, companyID)
}

// ListAll returns every application, newest first. Admin-only view.
func (r *applicationRepository) ListAll(ctx context.Context) ([]*models.Application, error) {
	return r.list(ctx, applicationSelect+` ORDER BY a.applied_at DESC`)
}

// RecentByStudent returns the student's latest applications.
func (r *applicationRepository) RecentByStudent(ctx context.Context, studentID int64, limit int) ([]*models.Application, error) {
	return r.list(ctx, applicationSelect+` WHERE a.student_id = $1 ORDER BY a.applied_at DESC LIMIT $2`, studentID, limit)
}

// RecentByCompany returns the latest applications against the company's jobs.
func (r *applicationRepository) RecentByCompany(ctx context.Context, companyID int64, limit int) ([]*models.Application, error) {
	return r.list(ctx, applicationSelect+` WHERE j.company_id = $1 ORDER BY a.applied_at DESC LIMIT $2`, companyID, limit)
}

// UpdateStatus moves the application to the given status.
func (r *applicationRepository) UpdateStatus(ctx context.Context, id int64, status string) error {
	result, err := r.ExecContext(ctx, `
		UPDATE applications SET status = $2 WHERE id = $1`, id, status)
	if err != nil {
		return fmt.Errorf("failed to update application status: %w", err)
	}
	affected, _ := result.RowsAffected()
	if affected == 0 {
		return sql.ErrNoRows
	}

	r.GetLogger().Info("Application status updated",
		zap.Int64("application_id", id),
		zap.String("status", status),
	)
	return nil
}

// Count returns the total number of applications.
func (r *applicationRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.QueryRowContext(ctx, `SELECT COUNT(*) FROM applications`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count applications: %w", err)
	}
	return count, nil
}

// CountByStatus counts applications in the given status.
func (r *applicationRepository) CountByStatus(ctx context.Context, status string) (int, error) {
	var count int
	err := r.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM applications WHERE status = $1`, status).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count applications by status: %w", err)
	}
	return count, nil
}

// CountByStudentStatus returns the student's applications grouped by
// status. Statuses with no applications are absent from the map.
func (r *applicationRepository) CountByStudentStatus(ctx context.Context, studentID int64) (map[string]int, error) {
	return r.countGrouped(ctx, `
		SELECT status, COUNT(*) FROM applications
		WHERE student_id = $1 GROUP BY status`, studentID)
}

// CountByCompanyStatus returns applications against the company's jobs
// grouped by status.
func (r *applicationRepository) CountByCompanyStatus(ctx context.Context, companyID int64) (map[string]int, error) {
	return r.countGrouped(ctx, `
		SELECT a.status, COUNT(*) FROM applications a
		INNER JOIN jobs j ON a.job_id = j.id
		WHERE j.company_id = $1 GROUP BY a.status`, companyID)
}

func (r *applicationRepository) countGrouped(ctx context.Context, query string, args ...interface{}) (map[string]int, error) {
	rows, err := r.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to count applications: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var status string
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, fmt.Errorf("failed to scan count row: %w", err)
		}
		counts[status] = count
	}
	return counts, rows.Err()
}

func (r *applicationRepository) list(ctx context.Context, query string, args ...interface{}) ([]*models.Application, error) {
	rows, err := r.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list applications: %w", err)
	}
	defer rows.Close()

	return r.scanApplicationRows(rows)
}

func (r *applicationRepository) scanApplicationRows(rows *sql.Rows) ([]*models.Application, error) {
	var apps []*models.Application
	for rows.Next() {
		var app models.Application
		var firstName, lastName string
		if err := rows.Scan(
			&app.ID, &app.JobID, &app.StudentID, &app.Status, &app.AppliedAt,
			&app.JobTitle, &app.JobDescription, &app.JobCompanyID,
			&app.CompanyName,
			&firstName, &lastName,
			&app.StudentEmail,
		); err != nil {
			return nil, fmt.Errorf("failed to scan application row: %w", err)
		}
		app.StudentName = firstName + " " + lastName
		apps = append(apps, &app)
	}
	return apps, rows.Err()
}
