package repositories

import (
	"context"

	"placementhub/internal/models"
)

// UserRepository defines the contract for account data operations.
type UserRepository interface {
	// CreateWithProfile inserts the user and its role profile atomically.
	// Exactly one of student/company may be non-nil; both nil is valid
	// for admin accounts. A duplicate email yields a conflict.
	CreateWithProfile(ctx context.Context, user *models.User, student *models.StudentProfile, company *models.CompanyProfile) error

	GetByID(ctx context.Context, id int64) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)

	// ListWithProfiles returns all users with their role profiles joined,
	// newest first. Admin-only view.
	ListWithProfiles(ctx context.Context) ([]*models.User, error)

	UpdateStatus(ctx context.Context, id int64, status string) (*models.User, error)

	// DeleteCascade removes the user's applications, jobs (with their
	// applications), profiles, and finally the user row, in one
	// transaction.
	DeleteCascade(ctx context.Context, id int64) error

	CountByRole(ctx context.Context, role string) (int, error)
}

// ProfileRepository defines the contract for student and company
// profile operations.
type ProfileRepository interface {
	GetStudentByUserID(ctx context.Context, userID int64) (*models.StudentProfile, error)
	GetCompanyByUserID(ctx context.Context, userID int64) (*models.CompanyProfile, error)
	UpdateStudent(ctx context.Context, profile *models.StudentProfile) error
	SetResumeURL(ctx context.Context, userID int64, resumeURL string) error
}

// JobRepository defines the contract for job posting operations.
type JobRepository interface {
	Create(ctx context.Context, job *models.Job) error

	// GetByID returns the job with its company name joined, or nil when
	// no such job exists.
	GetByID(ctx context.Context, id int64) (*models.Job, error)

	// ListVisible returns jobs whose owning company's account is ACTIVE,
	// newest first. This is the public listing filter.
	ListVisible(ctx context.Context) ([]*models.Job, error)

	ListByCompany(ctx context.Context, companyID int64) ([]*models.Job, error)
	Update(ctx context.Context, job *models.Job) error

	// DeleteCascade removes all applications referencing the job, then
	// the job itself, in one transaction.
	DeleteCascade(ctx context.Context, id int64) error

	Count(ctx context.Context) (int, error)
	CountByCompany(ctx context.Context, companyID int64) (total, open int, err error)
}

// ApplicationRepository defines the contract for application operations.
type ApplicationRepository interface {
	// Create inserts a new application in APPLIED state. A second
	// application for the same (student, job) pair yields a conflict.
	Create(ctx context.Context, app *models.Application) error

	// GetByID returns the application with job, company, and student
	// joined (title, owning company id and name, student name and
	// email), or nil when no such application exists.
	GetByID(ctx context.Context, id int64) (*models.Application, error)

	ListByStudent(ctx context.Context, studentID int64) ([]*models.Application, error)
	ListByJob(ctx context.Context, jobID int64) ([]*models.Application, error)
	ListByCompany(ctx context.Context, companyID int64) ([]*models.Application, error)
	ListAll(ctx context.Context) ([]*models.Application, error)

	RecentByStudent(ctx context.Context, studentID int64, limit int) ([]*models.Application, error)
	RecentByCompany(ctx context.Context, companyID int64, limit int) ([]*models.Application, error)

	UpdateStatus(ctx context.Context, id int64, status string) error

	Count(ctx context.Context) (int, error)
	CountByStatus(ctx context.Context, status string) (int, error)
	CountByStudentStatus(ctx context.Context, studentID int64) (map[string]int, error)
	CountByCompanyStatus(ctx context.Context, companyID int64) (map[string]int, error)
}
