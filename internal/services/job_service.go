package services

import (
	"context"
	"encoding/json"
	"time"

	"placementhub/internal/cache"
	"placementhub/internal/models"
	"placementhub/internal/repositories"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// Cache keys for hot read paths. Any job or application mutation
// invalidates them.
const (
	cacheKeyVisibleJobs = "jobs:visible"
	cacheKeyStatsPrefix = "stats:"
)

type jobService struct {
	jobs     repositories.JobRepository
	profiles repositories.ProfileRepository
	cache    cache.Cache
	cacheTTL time.Duration
	validate *validator.Validate
	logger   *zap.Logger
}

// NewJobService creates a new instance of JobService
func NewJobService(
	jobs repositories.JobRepository,
	profiles repositories.ProfileRepository,
	c cache.Cache,
	cacheTTL time.Duration,
	validate *validator.Validate,
	logger *zap.Logger,
) JobService {
	return &jobService{
		jobs:     jobs,
		profiles: profiles,
		cache:    c,
		cacheTTL: cacheTTL,
		validate: validate,
		logger:   logger,
	}
}

// Create posts a new job owned by the caller's company profile.
func (s *jobService) Create(ctx context.Context, caller Caller, req CreateJobRequest) (*models.Job, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, NewValidationError("invalid job request", err)
	}

	profile, err := s.profiles.GetCompanyByUserID(ctx, caller.UserID)
	if err != nil {
		return nil, NewInternalError("failed to load company profile")
	}
	if profile == nil {
		return nil, NewNotFoundError("Company profile not found")
	}

	status := req.Status
	if status == "" {
		status = models.JobOpen
	}

	job := &models.Job{
		CompanyID:    profile.ID,
		Title:        req.Title,
		Description:  req.Description,
		Requirements: req.Requirements,
		Location:     req.Location,
		Salary:       req.Salary,
		Status:       status,
	}
	if err := s.jobs.Create(ctx, job); err != nil {
		return nil, NewInternalError("failed to create job")
	}
	job.CompanyName = profile.CompanyName

	s.invalidateListings(ctx)
	return job, nil
}

// ListVisible serves the public listing through the cache.
func (s *jobService) ListVisible(ctx context.Context) ([]*models.Job, error) {
	if data, err := s.cache.Get(ctx, cacheKeyVisibleJobs); err == nil {
		var jobs []*models.Job
		if err := json.Unmarshal(data, &jobs); err == nil {
			return jobs, nil
		}
	}

	jobs, err := s.jobs.ListVisible(ctx)
	if err != nil {
		return nil, NewInternalError("failed to list jobs")
	}

	if data, err := json.Marshal(jobs); err == nil {
		if err := s.cache.Set(ctx, cacheKeyVisibleJobs, data, s.cacheTTL); err != nil {
			s.logger.Warn("Failed to cache job listing", zap.Error(err))
		}
	}
	return jobs, nil
}

// ListMine returns the caller company's own postings.
func (s *jobService) ListMine(ctx context.Context, caller Caller) ([]*models.Job, error) {
	profile, err := s.profiles.GetCompanyByUserID(ctx, caller.UserID)
	if err != nil {
		return nil, NewInternalError("failed to load company profile")
	}
	if profile == nil {
		return nil, NewNotFoundError("Company profile not found")
	}

	jobs, err := s.jobs.ListByCompany(ctx, profile.ID)
	if err != nil {
		return nil, NewInternalError("failed to list jobs")
	}
	return jobs, nil
}

// Get returns one job by id.
func (s *jobService) Get(ctx context.Context, id int64) (*models.Job, error) {
	job, err := s.jobs.GetByID(ctx, id)
	if err != nil {
		return nil, NewInternalError("failed to load job")
	}
	if job == nil {
		return nil, NewNotFoundError("Job not found")
	}
	return job, nil
}

// Update replaces the job's fields. Only the owning company or an admin
// may update.
func (s *jobService) Update(ctx context.Context, caller Caller, id int64, req UpdateJobRequest) (*models.Job, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, NewValidationError("invalid job request", err)
	}

	job, err := s.authorizeOwner(ctx, caller, id)
	if err != nil {
		return nil, err
	}

	job.Title = req.Title
	job.Description = req.Description
	job.Requirements = req.Requirements
	job.Location = req.Location
	job.Salary = req.Salary
	if req.Status != "" {
		job.Status = req.Status
	}

	if err := s.jobs.Update(ctx, job); err != nil {
		if repositories.IsNotFound(err) {
			return nil, NewNotFoundError("Job not found")
		}
		return nil, NewInternalError("failed to update job")
	}

	s.invalidateListings(ctx)
	return job, nil
}

// Delete removes the job and all of its applications. Only the owning
// company or an admin may delete.
func (s *jobService) Delete(ctx context.Context, caller Caller, id int64) error {
	if _, err := s.authorizeOwner(ctx, caller, id); err != nil {
		return err
	}

	if err := s.jobs.DeleteCascade(ctx, id); err != nil {
		if repositories.IsNotFound(err) {
			return NewNotFoundError("Job not found")
		}
		return NewInternalError("failed to delete job")
	}

	s.invalidateListings(ctx)
	return nil
}

// authorizeOwner loads the job and verifies the caller owns it or is an
// admin. Existence is checked before ownership so a missing job is
// NotFound for everyone.
func (s *jobService) authorizeOwner(ctx context.Context, caller Caller, jobID int64) (*models.Job, error) {
	job, err := s.jobs.GetByID(ctx, jobID)
	if err != nil {
		return nil, NewInternalError("failed to load job")
	}
	if job == nil {
		return nil, NewNotFoundError("Job not found")
	}

	if caller.IsAdmin() {
		return job, nil
	}

	profile, err := s.profiles.GetCompanyByUserID(ctx, caller.UserID)
	if err != nil {
		return nil, NewInternalError("failed to load company profile")
	}
	if profile == nil || profile.ID != job.CompanyID {
		return nil, NewForbiddenError("You do not own this job")
	}
	return job, nil
}

func (s *jobService) invalidateListings(ctx context.Context) {
	if err := s.cache.Delete(ctx, cacheKeyVisibleJobs); err != nil {
		s.logger.Warn("Failed to invalidate job listing cache", zap.Error(err))
	}
	if err := s.cache.DeletePattern(ctx, cacheKeyStatsPrefix+"*"); err != nil {
		s.logger.Warn("Failed to invalidate stats cache", zap.Error(err))
	}
}
