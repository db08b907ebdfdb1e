package services

import (
	"context"
	"encoding/json"
	"time"

	"placementhub/internal/cache"
	"placementhub/internal/models"
	"placementhub/internal/repositories"

	"go.uber.org/zap"
)

const (
	cacheKeyPlacementStats = cacheKeyStatsPrefix + "placement"
	recentWindow           = 5
)

type statsService struct {
	users        repositories.UserRepository
	profiles     repositories.ProfileRepository
	jobs         repositories.JobRepository
	applications repositories.ApplicationRepository
	cache        cache.Cache
	cacheTTL     time.Duration
	logger       *zap.Logger
}

// NewStatsService creates a new instance of StatsService
func NewStatsService(
	users repositories.UserRepository,
	profiles repositories.ProfileRepository,
	jobs repositories.JobRepository,
	applications repositories.ApplicationRepository,
	c cache.Cache,
	cacheTTL time.Duration,
	logger *zap.Logger,
) StatsService {
	return &statsService{
		users:        users,
		profiles:     profiles,
		jobs:         jobs,
		applications: applications,
		cache:        c,
		cacheTTL:     cacheTTL,
		logger:       logger,
	}
}

// PlacementStats returns the global rollup, served through the cache.
// placedStudents counts HIRED applications.
func (s *statsService) PlacementStats(ctx context.Context) (*models.PlacementStats, error) {
	if data, err := s.cache.Get(ctx, cacheKeyPlacementStats); err == nil {
		var stats models.PlacementStats
		if err := json.Unmarshal(data, &stats); err == nil {
			return &stats, nil
		}
	}

	stats := &models.PlacementStats{}
	var err error
	if stats.TotalStudents, err = s.users.CountByRole(ctx, models.RoleStudent); err != nil {
		return nil, NewInternalError("failed to aggregate stats")
	}
	if stats.TotalCompanies, err = s.users.CountByRole(ctx, models.RoleCompany); err != nil {
		return nil, NewInternalError("failed to aggregate stats")
	}
	if stats.TotalJobs, err = s.jobs.Count(ctx); err != nil {
		return nil, NewInternalError("failed to aggregate stats")
	}
	if stats.TotalApplications, err = s.applications.Count(ctx); err != nil {
		return nil, NewInternalError("failed to aggregate stats")
	}
	if stats.PlacedStudents, err = s.applications.CountByStatus(ctx, models.AppHired); err != nil {
		return nil, NewInternalError("failed to aggregate stats")
	}

	if data, err := json.Marshal(stats); err == nil {
		if err := s.cache.Set(ctx, cacheKeyPlacementStats, data, s.cacheTTL); err != nil {
			s.logger.Warn("Failed to cache placement stats", zap.Error(err))
		}
	}
	return stats, nil
}

// StudentDashboard summarizes the caller student's applications by
// status with the five most recent.
func (s *statsService) StudentDashboard(ctx context.Context, caller Caller) (*models.StudentDashboard, error) {
	profile, err := s.profiles.GetStudentByUserID(ctx, caller.UserID)
	if err != nil {
		return nil, NewInternalError("failed to load student profile")
	}
	if profile == nil {
		return nil, NewNotFoundError("Student profile not found")
	}

	counts, err := s.applications.CountByStudentStatus(ctx, profile.ID)
	if err != nil {
		return nil, NewInternalError("failed to aggregate applications")
	}
	recent, err := s.applications.RecentByStudent(ctx, profile.ID, recentWindow)
	if err != nil {
		return nil, NewInternalError("failed to load recent applications")
	}
	if recent == nil {
		recent = []*models.Application{}
	}

	total := 0
	for _, n := range counts {
		total += n
	}

	return &models.StudentDashboard{
		TotalApplied:       total,
		HiredCount:         counts[models.AppHired],
		ShortlistedCount:   counts[models.AppShortlisted],
		RejectedCount:      counts[models.AppRejected],
		RecentApplications: recent,
	}, nil
}

// CompanyDashboard summarizes the caller company's postings and
// applicants with the five most recent applications.
func (s *statsService) CompanyDashboard(ctx context.Context, caller Caller) (*models.CompanyDashboard, error) {
	profile, err := s.profiles.GetCompanyByUserID(ctx, caller.UserID)
	if err != nil {
		return nil, NewInternalError("failed to load company profile")
	}
	if profile == nil {
		return nil, NewNotFoundError("Company profile not found")
	}

	totalJobs, openJobs, err := s.jobs.CountByCompany(ctx, profile.ID)
	if err != nil {
		return nil, NewInternalError("failed to aggregate jobs")
	}
	counts, err := s.applications.CountByCompanyStatus(ctx, profile.ID)
	if err != nil {
		return nil, NewInternalError("failed to aggregate applications")
	}
	recent, err := s.applications.RecentByCompany(ctx, profile.ID, recentWindow)
	if err != nil {
		return nil, NewInternalError("failed to load recent applications")
	}
	if recent == nil {
		recent = []*models.Application{}
	}

	total := 0
	for _, n := range counts {
		total += n
	}

	return &models.CompanyDashboard{
		TotalJobs:          totalJobs,
		OpenJobs:           openJobs,
		TotalApps:          total,
		HiredCount:         counts[models.AppHired],
		ShortlistedCount:   counts[models.AppShortlisted],
		RecentApplications: recent,
	}, nil
}

// PlacementReport returns one flattened row per application for the
// admin export.
func (s *statsService) PlacementReport(ctx context.Context) ([]*models.PlacementReportRow, error) {
	apps, err := s.applications.ListAll(ctx)
	if err != nil {
		return nil, NewInternalError("failed to build placement report")
	}

	rows := make([]*models.PlacementReportRow, 0, len(apps))
	for _, app := range apps {
		rows = append(rows, &models.PlacementReportRow{
			StudentName:  app.StudentName,
			StudentEmail: app.StudentEmail,
			CompanyName:  app.CompanyName,
			JobTitle:     app.JobTitle,
			Status:       app.Status,
			AppliedAt:    app.AppliedAt,
		})
	}
	return rows, nil
}
