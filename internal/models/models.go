package models

import (
	"time"

	"github.com/lib/pq"
)

// ===============================
// ENUMS
// ===============================

// User roles
const (
	RoleStudent = "STUDENT"
	RoleCompany = "COMPANY"
	RoleAdmin   = "ADMIN"
)

// Account statuses
const (
	StatusActive   = "ACTIVE"
	StatusPending  = "PENDING"
	StatusBlocked  = "BLOCKED"
	StatusRejected = "REJECTED"
)

// Job statuses
const (
	JobOpen   = "OPEN"
	JobClosed = "CLOSED"
)

// Application statuses
const (
	AppApplied     = "APPLIED"
	AppShortlisted = "SHORTLISTED"
	AppRejected    = "REJECTED"
	AppHired       = "HIRED"
)

// ValidRole reports whether role is one of the known user roles.
func ValidRole(role string) bool {
	return role == RoleStudent || role == RoleCompany || role == RoleAdmin
}

// ValidAccountStatus reports whether status is a known account status.
func ValidAccountStatus(status string) bool {
	switch status {
	case StatusActive, StatusPending, StatusBlocked, StatusRejected:
		return true
	}
	return false
}

// ValidApplicationStatus reports whether status is a known application status.
func ValidApplicationStatus(status string) bool {
	switch status {
	case AppApplied, AppShortlisted, AppRejected, AppHired:
		return true
	}
	return false
}

// ===============================
// CORE MODELS
// ===============================

// User represents an account. Exactly one of StudentProfile/CompanyProfile
// exists for non-admin users.
type User struct {
	ID           int64     `json:"id" db:"id"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"password_hash"`
	Role         string    `json:"role" db:"role"`
	Status       string    `json:"status" db:"status"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`

	// Joined profile data, populated by admin listings.
	StudentProfile *StudentProfile `json:"student_profile,omitempty" db:"-"`
	CompanyProfile *CompanyProfile `json:"company_profile,omitempty" db:"-"`
}

// IsActive reports whether the account may log in and act.
func (u *User) IsActive() bool { return u.Status == StatusActive }

// StudentProfile is the student extension record, owned 1:1 by a User.
type StudentProfile struct {
	ID             int64          `json:"id" db:"id"`
	UserID         int64          `json:"user_id" db:"user_id"`
	FirstName      string         `json:"first_name" db:"first_name"`
	LastName       string         `json:"last_name" db:"last_name"`
	Phone          *string        `json:"phone,omitempty" db:"phone"`
	Location       *string        `json:"location,omitempty" db:"location"`
	About          *string        `json:"about,omitempty" db:"about"`
	University     *string        `json:"university,omitempty" db:"university"`
	GraduationYear *string        `json:"graduation_year,omitempty" db:"graduation_year"`
	Skills         pq.StringArray `json:"skills" db:"skills"`
	ResumeURL      *string        `json:"resume_url,omitempty" db:"resume_url"`

	// Joined user fields for profile reads.
	Email string `json:"email,omitempty" db:"-"`
	Role  string `json:"role,omitempty" db:"-"`
}

// FullName returns the student's display name.
func (p *StudentProfile) FullName() string {
	if p.FirstName == "" && p.LastName == "" {
		return "Student"
	}
	return p.FirstName + " " + p.LastName
}

// CompanyProfile is the company extension record, owned 1:1 by a User.
type CompanyProfile struct {
	ID          int64   `json:"id" db:"id"`
	UserID      int64   `json:"user_id" db:"user_id"`
	CompanyName string  `json:"company_name" db:"company_name"`
	Website     *string `json:"website,omitempty" db:"website"`
	About       *string `json:"about,omitempty" db:"about"`
	Location    *string `json:"location,omitempty" db:"location"`
}

// Job is a posting owned by exactly one CompanyProfile.
type Job struct {
	ID           int64     `json:"id" db:"id"`
	CompanyID    int64     `json:"company_id" db:"company_id"`
	Title        string    `json:"title" db:"title"`
	Description  string    `json:"description" db:"description"`
	Requirements string    `json:"requirements" db:"requirements"`
	Location     *string   `json:"location,omitempty" db:"location"`
	Salary       *string   `json:"salary,omitempty" db:"salary"`
	Status       string    `json:"status" db:"status"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`

	// Joined company name for listings.
	CompanyName string `json:"company_name,omitempty" db:"-"`
}

// Application links one StudentProfile to one Job. At most one per
// (student, job) pair, enforced by a unique constraint.
type Application struct {
	ID        int64     `json:"id" db:"id"`
	JobID     int64     `json:"job_id" db:"job_id"`
	StudentID int64     `json:"student_id" db:"student_id"`
	Status    string    `json:"status" db:"status"`
	AppliedAt time.Time `json:"applied_at" db:"applied_at"`

	// Joined fields for scoped listings. Which of these are populated
	// depends on the query; see ApplicationRepository.
	JobTitle       string `json:"job_title,omitempty" db:"-"`
	JobDescription string `json:"job_description,omitempty" db:"-"`
	JobCompanyID   int64  `json:"-" db:"-"`
	CompanyName    string `json:"company_name,omitempty" db:"-"`
	StudentName    string `json:"student_name,omitempty" db:"-"`
	StudentEmail   string `json:"student_email,omitempty" db:"-"`
}

// ===============================
// REPORTING MODELS
// ===============================

// PlacementStats is the global dashboard rollup.
type PlacementStats struct {
	TotalStudents     int `json:"totalStudents"`
	TotalCompanies    int `json:"totalCompanies"`
	TotalJobs         int `json:"totalJobs"`
	TotalApplications int `json:"totalApplications"`
	PlacedStudents    int `json:"placedStudents"`
}

// StudentDashboard groups a student's applications by status with a
// recent-activity window.
type StudentDashboard struct {
	TotalApplied       int            `json:"totalApplied"`
	HiredCount         int            `json:"hiredCount"`
	ShortlistedCount   int            `json:"shortlistedCount"`
	RejectedCount      int            `json:"rejectedCount"`
	RecentApplications []*Application `json:"recentApplications"`
}

// CompanyDashboard summarizes a company's postings and applicants.
type CompanyDashboard struct {
	TotalJobs          int            `json:"totalJobs"`
	OpenJobs           int            `json:"openJobs"`
	TotalApps          int            `json:"totalApps"`
	HiredCount         int            `json:"hiredCount"`
	ShortlistedCount   int            `json:"shortlistedCount"`
	RecentApplications []*Application `json:"recentApplications"`
}

// PlacementReportRow is one flattened line of the admin placement report.
type PlacementReportRow struct {
	StudentName  string    `json:"studentName"`
	StudentEmail string    `json:"studentEmail"`
	CompanyName  string    `json:"companyName"`
	JobTitle     string    `json:"jobTitle"`
	Status       string    `json:"status"`
	AppliedAt    time.Time `json:"appliedAt"`
}
