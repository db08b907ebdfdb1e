package services

import (
	"context"

	"placementhub/internal/models"
	"placementhub/internal/storage"
)

// Caller identifies the authenticated account making a request. It is
// derived from the verified token by the auth middleware.
type Caller struct {
	UserID int64
	Role   string
}

// IsAdmin reports whether the caller holds the admin role.
func (c Caller) IsAdmin() bool { return c.Role == models.RoleAdmin }

// ===============================
// REQUEST / RESPONSE TYPES
// ===============================

// RegisterRequest creates a new account. FirstName/LastName are required
// for students, CompanyName for companies.
type RegisterRequest struct {
	Email       string `json:"email" validate:"required,email"`
	Password    string `json:"password" validate:"required,min=6"`
	Role        string `json:"role" validate:"required,oneof=STUDENT COMPANY ADMIN"`
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	CompanyName string `json:"companyName"`
}

// LoginRequest authenticates an existing account.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// AuthUser is the account summary returned with a token.
type AuthUser struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
	Role  string `json:"role"`
	Name  string `json:"name"`
}

// AuthResponse carries a signed token and the account it identifies.
type AuthResponse struct {
	Token string   `json:"token"`
	User  AuthUser `json:"user"`
}

// TokenClaims is the verified content of a bearer token.
type TokenClaims struct {
	UserID int64
	Role   string
}

// CreateJobRequest creates a job posting.
type CreateJobRequest struct {
	Title        string  `json:"title" validate:"required"`
	Description  string  `json:"description" validate:"required"`
	Requirements string  `json:"requirements"`
	Location     *string `json:"location"`
	Salary       *string `json:"salary"`
	Status       string  `json:"status" validate:"omitempty,oneof=OPEN CLOSED"`
}

// UpdateJobRequest replaces the mutable fields of a job posting.
type UpdateJobRequest struct {
	Title        string  `json:"title" validate:"required"`
	Description  string  `json:"description" validate:"required"`
	Requirements string  `json:"requirements"`
	Location     *string `json:"location"`
	Salary       *string `json:"salary"`
	Status       string  `json:"status" validate:"omitempty,oneof=OPEN CLOSED"`
}

// ApplyRequest submits an application to a job.
type ApplyRequest struct {
	JobID int64 `json:"jobId" validate:"required"`
}

// UpdateApplicationStatusRequest moves an application through its
// lifecycle.
type UpdateApplicationStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=APPLIED SHORTLISTED REJECTED HIRED"`
}

// UpdateStudentProfileRequest replaces the student profile fields.
type UpdateStudentProfileRequest struct {
	FirstName      string   `json:"first_name" validate:"required"`
	LastName       string   `json:"last_name" validate:"required"`
	Phone          *string  `json:"phone"`
	Location       *string  `json:"location"`
	About          *string  `json:"about"`
	University     *string  `json:"university"`
	GraduationYear *string  `json:"graduation_year"`
	Skills         []string `json:"skills"`
}

// UpdateUserStatusRequest sets an account's status. Admin only.
type UpdateUserStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=ACTIVE PENDING BLOCKED REJECTED"`
}

// ===============================
// SERVICE INTERFACES
// ===============================

// AuthService handles registration, login, and token verification.
type AuthService interface {
	Register(ctx context.Context, req RegisterRequest) (*AuthResponse, error)
	Login(ctx context.Context, req LoginRequest) (*AuthResponse, error)

	// VerifyToken parses and validates a bearer token string.
	VerifyToken(token string) (*TokenClaims, error)
}

// JobService handles job posting CRUD with ownership checks.
type JobService interface {
	Create(ctx context.Context, caller Caller, req CreateJobRequest) (*models.Job, error)

	// ListVisible returns the public listing: jobs of ACTIVE companies only.
	ListVisible(ctx context.Context) ([]*models.Job, error)

	// ListMine returns the caller company's own postings.
	ListMine(ctx context.Context, caller Caller) ([]*models.Job, error)

	Get(ctx context.Context, id int64) (*models.Job, error)

	// Update and Delete require the caller to own the job or be an admin.
	Update(ctx context.Context, caller Caller, id int64, req UpdateJobRequest) (*models.Job, error)
	Delete(ctx context.Context, caller Caller, id int64) error
}

// ApplicationService handles the application lifecycle.
type ApplicationService interface {
	Apply(ctx context.Context, caller Caller, req ApplyRequest) (*models.Application, error)

	ListMine(ctx context.Context, caller Caller) ([]*models.Application, error)
	ListForCompany(ctx context.Context, caller Caller) ([]*models.Application, error)
	ListForJob(ctx context.Context, caller Caller, jobID int64) ([]*models.Application, error)

	// UpdateStatus enforces the lifecycle transition table and, on
	// success, dispatches a notification without blocking.
	UpdateStatus(ctx context.Context, caller Caller, id int64, req UpdateApplicationStatusRequest) (*models.Application, error)
}

// StudentService handles student profile reads, updates, and resume storage.
type StudentService interface {
	GetProfile(ctx context.Context, caller Caller) (*models.StudentProfile, error)
	UpdateProfile(ctx context.Context, caller Caller, req UpdateStudentProfileRequest) (*models.StudentProfile, error)

	// StoreResume validates, uploads, and records the resume reference,
	// returning the stored URL.
	StoreResume(ctx context.Context, caller Caller, input storage.UploadInput) (string, error)
}

// AdminService handles account administration.
type AdminService interface {
	ListUsers(ctx context.Context) ([]*models.User, error)
	UpdateUserStatus(ctx context.Context, id int64, req UpdateUserStatusRequest) (*models.User, error)

	// DeleteUser removes the account and everything it owns in one
	// transaction.
	DeleteUser(ctx context.Context, caller Caller, id int64) error
}

// StatsService aggregates dashboard and report data.
type StatsService interface {
	PlacementStats(ctx context.Context) (*models.PlacementStats, error)
	StudentDashboard(ctx context.Context, caller Caller) (*models.StudentDashboard, error)
	CompanyDashboard(ctx context.Context, caller Caller) (*models.CompanyDashboard, error)
	PlacementReport(ctx context.Context) ([]*models.PlacementReportRow, error)
}
