package services

import (
	"context"
	"testing"
	"time"

	"placementhub/internal/models"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newJobService(jobs *fakeJobRepo, profiles *fakeProfileRepo) JobService {
	return NewJobService(jobs, profiles, noopCache{}, time.Minute, validator.New(), zap.NewNop())
}

func TestCreateJobRequiresCompanyProfile(t *testing.T) {
	svc := newJobService(&fakeJobRepo{}, &fakeProfileRepo{})

	_, err := svc.Create(context.Background(), Caller{UserID: 1, Role: models.RoleCompany}, CreateJobRequest{
		Title: "Backend Engineer", Description: "Go services",
	})
	require.Error(t, err)
	assert.True(t, IsNotFoundError(err))
}

func TestCreateJobDefaultsToOpen(t *testing.T) {
	jobs := &fakeJobRepo{}
	profiles := &fakeProfileRepo{
		companies: map[int64]*models.CompanyProfile{1: {ID: 7, UserID: 1, CompanyName: "Acme"}},
	}
	svc := newJobService(jobs, profiles)

	job, err := svc.Create(context.Background(), Caller{UserID: 1, Role: models.RoleCompany}, CreateJobRequest{
		Title: "Backend Engineer", Description: "Go services",
	})
	require.NoError(t, err)
	assert.Equal(t, models.JobOpen, job.Status)
	assert.Equal(t, int64(7), job.CompanyID)
	assert.Equal(t, "Acme", job.CompanyName)
	require.NotNil(t, jobs.created)
}

func TestUpdateJobForbiddenForNonOwner(t *testing.T) {
	jobs := &fakeJobRepo{jobs: map[int64]*models.Job{5: {ID: 5, CompanyID: 7}}}
	profiles := &fakeProfileRepo{
		companies: map[int64]*models.CompanyProfile{2: {ID: 99, UserID: 2}},
	}
	svc := newJobService(jobs, profiles)

	_, err := svc.Update(context.Background(), Caller{UserID: 2, Role: models.RoleCompany}, 5, UpdateJobRequest{
		Title: "New", Description: "New",
	})
	require.Error(t, err)
	assert.True(t, IsForbiddenError(err))
	assert.Nil(t, jobs.updated)
}

func TestUpdateJobByOwner(t *testing.T) {
	jobs := &fakeJobRepo{jobs: map[int64]*models.Job{5: {ID: 5, CompanyID: 7, Status: models.JobOpen}}}
	profiles := &fakeProfileRepo{
		companies: map[int64]*models.CompanyProfile{2: {ID: 7, UserID: 2}},
	}
	svc := newJobService(jobs, profiles)

	job, err := svc.Update(context.Background(), Caller{UserID: 2, Role: models.RoleCompany}, 5, UpdateJobRequest{
		Title: "Senior Backend Engineer", Description: "Go services", Status: models.JobClosed,
	})
	require.NoError(t, err)
	assert.Equal(t, "Senior Backend Engineer", job.Title)
	assert.Equal(t, models.JobClosed, job.Status)
	require.NotNil(t, jobs.updated)
}

func TestDeleteJobByAdmin(t *testing.T) {
	jobs := &fakeJobRepo{jobs: map[int64]*models.Job{5: {ID: 5, CompanyID: 7}}}
	svc := newJobService(jobs, &fakeProfileRepo{})

	err := svc.Delete(context.Background(), Caller{UserID: 42, Role: models.RoleAdmin}, 5)
	require.NoError(t, err)
	assert.Equal(t, []int64{5}, jobs.deleted)
}

func TestDeleteUnknownJobIsNotFound(t *testing.T) {
	svc := newJobService(&fakeJobRepo{jobs: map[int64]*models.Job{}}, &fakeProfileRepo{})

	err := svc.Delete(context.Background(), Caller{UserID: 42, Role: models.RoleAdmin}, 5)
	require.Error(t, err)
	assert.True(t, IsNotFoundError(err))
}

func TestGetUnknownJobIsNotFound(t *testing.T) {
	svc := newJobService(&fakeJobRepo{jobs: map[int64]*models.Job{}}, &fakeProfileRepo{})

	_, err := svc.Get(context.Background(), 5)
	require.Error(t, err)
	assert.True(t, IsNotFoundError(err))
}

func TestListVisiblePassesThrough(t *testing.T) {
	jobs := &fakeJobRepo{visible: []*models.Job{{ID: 1, Title: "A"}, {ID: 2, Title: "B"}}}
	svc := newJobService(jobs, &fakeProfileRepo{})

	got, err := svc.ListVisible(context.Background())
	require.NoError(t, err)
	assert.Len(t, got, 2)
}
