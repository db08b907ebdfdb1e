package services

import (
	"context"

	"placementhub/internal/cache"
	"placementhub/internal/models"
	"placementhub/internal/repositories"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// allowedTransitions is the application lifecycle. HIRED and REJECTED
// are terminal; absent entries are illegal moves.
var allowedTransitions = map[string]map[string]bool{
	models.AppApplied: {
		models.AppShortlisted: true,
		models.AppRejected:    true,
	},
	models.AppShortlisted: {
		models.AppHired:    true,
		models.AppRejected: true,
	},
}

type applicationService struct {
	applications repositories.ApplicationRepository
	jobs         repositories.JobRepository
	profiles     repositories.ProfileRepository
	notifier     Notifier
	cache        cache.Cache
	validate     *validator.Validate
	logger       *zap.Logger
}

// NewApplicationService creates a new instance of ApplicationService
func NewApplicationService(
	applications repositories.ApplicationRepository,
	jobs repositories.JobRepository,
	profiles repositories.ProfileRepository,
	notifier Notifier,
	c cache.Cache,
	validate *validator.Validate,
	logger *zap.Logger,
) ApplicationService {
	return &applicationService{
		applications: applications,
		jobs:         jobs,
		profiles:     profiles,
		notifier:     notifier,
		cache:        c,
		validate:     validate,
		logger:       logger,
	}
}

// Apply submits the caller student's application to a job. A second
// application to the same job is a conflict.
func (s *applicationService) Apply(ctx context.Context, caller Caller, req ApplyRequest) (*models.Application, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, NewValidationError("invalid application request", err)
	}

	profile, err := s.profiles.GetStudentByUserID(ctx, caller.UserID)
	if err != nil {
		return nil, NewInternalError("failed to load student profile")
	}
	if profile == nil {
		return nil, NewNotFoundError("Student profile not found")
	}

	job, err := s.jobs.GetByID(ctx, req.JobID)
	if err != nil {
		return nil, NewInternalError("failed to load job")
	}
	if job == nil {
		return nil, NewNotFoundError("Job not found")
	}

	app := &models.Application{
		JobID:     job.ID,
		StudentID: profile.ID,
		Status:    models.AppApplied,
	}
	if err := s.applications.Create(ctx, app); err != nil {
		if repositories.IsUniqueViolation(err) {
			return nil, NewConflictError("You have already applied to this job", "ALREADY_APPLIED")
		}
		return nil, NewInternalError("failed to create application")
	}

	app.JobTitle = job.Title
	app.JobDescription = job.Description
	app.JobCompanyID = job.CompanyID
	app.CompanyName = job.CompanyName
	app.StudentName = profile.FullName()
	app.StudentEmail = profile.Email

	s.invalidateStats(ctx)

	s.logger.Info("Application submitted",
		zap.Int64("application_id", app.ID),
		zap.Int64("job_id", job.ID),
		zap.Int64("student_id", profile.ID),
	)
	return app, nil
}

// ListMine returns the caller student's applications.
func (s *applicationService) ListMine(ctx context.Context, caller Caller) ([]*models.Application, error) {
	profile, err := s.profiles.GetStudentByUserID(ctx, caller.UserID)
	if err != nil {
		return nil, NewInternalError("failed to load student profile")
	}
	if profile == nil {
		return nil, NewNotFoundError("Student profile not found")
	}

	apps, err := s.applications.ListByStudent(ctx, profile.ID)
	if err != nil {
		return nil, NewInternalError("failed to list applications")
	}
	return apps, nil
}

// ListForCompany returns applications across all of the caller
// company's jobs. Admins see every application.
func (s *applicationService) ListForCompany(ctx context.Context, caller Caller) ([]*models.Application, error) {
	if caller.IsAdmin() {
		apps, err := s.applications.ListAll(ctx)
		if err != nil {
			return nil, NewInternalError("failed to list applications")
		}
		return apps, nil
	}

	profile, err := s.profiles.GetCompanyByUserID(ctx, caller.UserID)
	if err != nil {
		return nil, NewInternalError("failed to load company profile")
	}
	if profile == nil {
		return nil, NewNotFoundError("Company profile not found")
	}

	apps, err := s.applications.ListByCompany(ctx, profile.ID)
	if err != nil {
		return nil, NewInternalError("failed to list applications")
	}
	return apps, nil
}

// ListForJob returns applications for one job. The caller must own the
// job or be an admin.
func (s *applicationService) ListForJob(ctx context.Context, caller Caller, jobID int64) ([]*models.Application, error) {
	job, err := s.jobs.GetByID(ctx, jobID)
	if err != nil {
		return nil, NewInternalError("failed to load job")
	}
	if job == nil {
		return nil, NewNotFoundError("Job not found")
	}

	if !caller.IsAdmin() {
		profile, err := s.profiles.GetCompanyByUserID(ctx, caller.UserID)
		if err != nil {
			return nil, NewInternalError("failed to load company profile")
		}
		if profile == nil || profile.ID != job.CompanyID {
			return nil, NewForbiddenError("You do not own this job")
		}
	}

	apps, err := s.applications.ListByJob(ctx, jobID)
	if err != nil {
		return nil, NewInternalError("failed to list applications")
	}
	return apps, nil
}

// UpdateStatus moves an application through the lifecycle. The move
// must be permitted by the transition table, and only the company
// owning the job or an admin may make it. On success a notification is
// dispatched without blocking; delivery failure never affects the
// update.
func (s *applicationService) UpdateStatus(ctx context.Context, caller Caller, id int64, req UpdateApplicationStatusRequest) (*models.Application, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, NewValidationError("invalid status request", err)
	}

	app, err := s.applications.GetByID(ctx, id)
	if err != nil {
		return nil, NewInternalError("failed to load application")
	}
	if app == nil {
		return nil, NewNotFoundError("Application not found")
	}

	if !caller.IsAdmin() {
		profile, err := s.profiles.GetCompanyByUserID(ctx, caller.UserID)
		if err != nil {
			return nil, NewInternalError("failed to load company profile")
		}
		if profile == nil || profile.ID != app.JobCompanyID {
			return nil, NewForbiddenError("You do not own the job for this application")
		}
	}

	if !allowedTransitions[app.Status][req.Status] {
		return nil, NewInvalidTransitionError(app.Status, req.Status)
	}

	if err := s.applications.UpdateStatus(ctx, id, req.Status); err != nil {
		if repositories.IsNotFound(err) {
			return nil, NewNotFoundError("Application not found")
		}
		return nil, NewInternalError("failed to update application status")
	}
	app.Status = req.Status

	s.notifier.Dispatch(StatusNotification{
		To:          app.StudentEmail,
		StudentName: app.StudentName,
		JobTitle:    app.JobTitle,
		CompanyName: app.CompanyName,
		Status:      app.Status,
	})

	s.invalidateStats(ctx)

	s.logger.Info("Application status updated",
		zap.Int64("application_id", app.ID),
		zap.String("status", app.Status),
	)
	return app, nil
}

func (s *applicationService) invalidateStats(ctx context.Context) {
	if err := s.cache.DeletePattern(ctx, cacheKeyStatsPrefix+"*"); err != nil {
		s.logger.Warn("Failed to invalidate stats cache", zap.Error(err))
	}
}
