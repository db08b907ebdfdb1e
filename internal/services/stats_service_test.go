package services

import (
	"context"
	"testing"
	"time"

	"placementhub/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newStatsService(users *fakeUserRepo, profiles *fakeProfileRepo, jobs *fakeJobRepo, apps *fakeApplicationRepo) StatsService {
	return NewStatsService(users, profiles, jobs, apps, noopCache{}, time.Minute, zap.NewNop())
}

func TestPlacementStatsAggregates(t *testing.T) {
	users := &fakeUserRepo{
		countByRoleFn: func(_ context.Context, role string) (int, error) {
			if role == models.RoleStudent {
				return 10, nil
			}
			return 3, nil
		},
	}
	jobs := &fakeJobRepo{jobs: map[int64]*models.Job{1: {}, 2: {}}}
	apps := &fakeApplicationRepo{all: []*models.Application{
		{Status: models.AppApplied},
		{Status: models.AppHired},
		{Status: models.AppHired},
	}}
	svc := newStatsService(users, &fakeProfileRepo{}, jobs, apps)

	stats, err := svc.PlacementStats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 10, stats.TotalStudents)
	assert.Equal(t, 3, stats.TotalCompanies)
	assert.Equal(t, 2, stats.TotalJobs)
	assert.Equal(t, 3, stats.TotalApplications)
	assert.Equal(t, 2, stats.PlacedStudents)
}

func TestStudentDashboardCounts(t *testing.T) {
	profiles := &fakeProfileRepo{
		students: map[int64]*models.StudentProfile{1: {ID: 10, UserID: 1}},
	}
	apps := &fakeApplicationRepo{
		countByStudent: map[string]int{
			models.AppApplied:     2,
			models.AppShortlisted: 1,
			models.AppHired:       1,
		},
		byStudent: []*models.Application{{ID: 1}, {ID: 2}},
	}
	svc := newStatsService(&fakeUserRepo{}, profiles, &fakeJobRepo{}, apps)

	dashboard, err := svc.StudentDashboard(context.Background(), Caller{UserID: 1, Role: models.RoleStudent})
	require.NoError(t, err)
	assert.Equal(t, 4, dashboard.TotalApplied)
	assert.Equal(t, 1, dashboard.HiredCount)
	assert.Equal(t, 1, dashboard.ShortlistedCount)
	assert.Equal(t, 0, dashboard.RejectedCount)
	assert.Len(t, dashboard.RecentApplications, 2)
}

func TestStudentDashboardMissingProfile(t *testing.T) {
	svc := newStatsService(&fakeUserRepo{}, &fakeProfileRepo{}, &fakeJobRepo{}, &fakeApplicationRepo{})

	_, err := svc.StudentDashboard(context.Background(), Caller{UserID: 1, Role: models.RoleStudent})
	require.Error(t, err)
	assert.True(t, IsNotFoundError(err))
}

func TestCompanyDashboardCounts(t *testing.T) {
	profiles := &fakeProfileRepo{
		companies: map[int64]*models.CompanyProfile{2: {ID: 7, UserID: 2}},
	}
	jobs := &fakeJobRepo{byCompany: []*models.Job{{ID: 1}, {ID: 2}, {ID: 3}}}
	apps := &fakeApplicationRepo{
		countByCompany: map[string]int{
			models.AppApplied: 5,
			models.AppHired:   2,
		},
		byCompany: []*models.Application{{ID: 1}},
	}
	svc := newStatsService(&fakeUserRepo{}, profiles, jobs, apps)

	dashboard, err := svc.CompanyDashboard(context.Background(), Caller{UserID: 2, Role: models.RoleCompany})
	require.NoError(t, err)
	assert.Equal(t, 3, dashboard.TotalJobs)
	assert.Equal(t, 7, dashboard.TotalApps)
	assert.Equal(t, 2, dashboard.HiredCount)
	assert.Len(t, dashboard.RecentApplications, 1)
}

func TestPlacementReportFlattens(t *testing.T) {
	apps := &fakeApplicationRepo{all: []*models.Application{
		{
			Status: models.AppHired, JobTitle: "Backend Engineer", CompanyName: "Acme",
			StudentName: "Ada Lovelace", StudentEmail: "ada@example.com",
		},
	}}
	svc := newStatsService(&fakeUserRepo{}, &fakeProfileRepo{}, &fakeJobRepo{}, apps)

	rows, err := svc.PlacementReport(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Ada Lovelace", rows[0].StudentName)
	assert.Equal(t, "Acme", rows[0].CompanyName)
	assert.Equal(t, models.AppHired, rows[0].Status)
}
