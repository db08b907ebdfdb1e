package services

import (
	"context"
	"testing"

	"placementhub/internal/models"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newApplicationService(apps *fakeApplicationRepo, jobs *fakeJobRepo, profiles *fakeProfileRepo, notifier Notifier) ApplicationService {
	return NewApplicationService(apps, jobs, profiles, notifier, noopCache{}, validator.New(), zap.NewNop())
}

func TestApplyCreatesApplication(t *testing.T) {
	profiles := &fakeProfileRepo{
		students: map[int64]*models.StudentProfile{
			1: {ID: 10, UserID: 1, FirstName: "Ada", LastName: "Lovelace", Email: "ada@example.com"},
		},
	}
	jobs := &fakeJobRepo{jobs: map[int64]*models.Job{
		5: {ID: 5, CompanyID: 7, Title: "Backend Engineer", CompanyName: "Acme"},
	}}
	apps := &fakeApplicationRepo{}
	svc := newApplicationService(apps, jobs, profiles, &recordingNotifier{})

	app, err := svc.Apply(context.Background(), Caller{UserID: 1, Role: models.RoleStudent}, ApplyRequest{JobID: 5})
	require.NoError(t, err)
	assert.Equal(t, models.AppApplied, app.Status)
	assert.Equal(t, int64(10), app.StudentID)
	assert.Equal(t, "Backend Engineer", app.JobTitle)
	assert.Equal(t, "Acme", app.CompanyName)
}

func TestApplyDuplicateIsConflict(t *testing.T) {
	profiles := &fakeProfileRepo{
		students: map[int64]*models.StudentProfile{1: {ID: 10, UserID: 1}},
	}
	jobs := &fakeJobRepo{jobs: map[int64]*models.Job{5: {ID: 5, CompanyID: 7}}}
	apps := &fakeApplicationRepo{createErr: errDuplicate}
	svc := newApplicationService(apps, jobs, profiles, &recordingNotifier{})

	_, err := svc.Apply(context.Background(), Caller{UserID: 1, Role: models.RoleStudent}, ApplyRequest{JobID: 5})
	require.Error(t, err)
	assert.True(t, IsConflictError(err))
}

func TestApplyUnknownJobIsNotFound(t *testing.T) {
	profiles := &fakeProfileRepo{
		students: map[int64]*models.StudentProfile{1: {ID: 10, UserID: 1}},
	}
	svc := newApplicationService(&fakeApplicationRepo{}, &fakeJobRepo{jobs: map[int64]*models.Job{}}, profiles, &recordingNotifier{})

	_, err := svc.Apply(context.Background(), Caller{UserID: 1, Role: models.RoleStudent}, ApplyRequest{JobID: 99})
	require.Error(t, err)
	assert.True(t, IsNotFoundError(err))
}

func TestUpdateStatusAllowedTransitions(t *testing.T) {
	cases := []struct {
		from, to string
		allowed  bool
	}{
		{models.AppApplied, models.AppShortlisted, true},
		{models.AppApplied, models.AppRejected, true},
		{models.AppApplied, models.AppHired, false},
		{models.AppApplied, models.AppApplied, false},
		{models.AppShortlisted, models.AppHired, true},
		{models.AppShortlisted, models.AppRejected, true},
		{models.AppShortlisted, models.AppApplied, false},
		{models.AppHired, models.AppRejected, false},
		{models.AppHired, models.AppShortlisted, false},
		{models.AppRejected, models.AppShortlisted, false},
		{models.AppRejected, models.AppHired, false},
	}

	for _, tc := range cases {
		t.Run(tc.from+"_to_"+tc.to, func(t *testing.T) {
			apps := &fakeApplicationRepo{apps: map[int64]*models.Application{
				1: {ID: 1, JobID: 5, Status: tc.from, JobCompanyID: 7, StudentEmail: "s@example.com"},
			}}
			profiles := &fakeProfileRepo{
				companies: map[int64]*models.CompanyProfile{2: {ID: 7, UserID: 2}},
			}
			svc := newApplicationService(apps, &fakeJobRepo{}, profiles, &recordingNotifier{})

			app, err := svc.UpdateStatus(context.Background(), Caller{UserID: 2, Role: models.RoleCompany}, 1, UpdateApplicationStatusRequest{Status: tc.to})
			if tc.allowed {
				require.NoError(t, err)
				assert.Equal(t, tc.to, app.Status)
				assert.Equal(t, tc.to, apps.statusUpdates[1])
			} else {
				require.Error(t, err)
				assert.True(t, IsErrorType(err, "INVALID_TRANSITION"))
				assert.Empty(t, apps.statusUpdates)
			}
		})
	}
}

func TestUpdateStatusForbiddenForNonOwner(t *testing.T) {
	apps := &fakeApplicationRepo{apps: map[int64]*models.Application{
		1: {ID: 1, Status: models.AppApplied, JobCompanyID: 7},
	}}
	profiles := &fakeProfileRepo{
		companies: map[int64]*models.CompanyProfile{3: {ID: 99, UserID: 3}},
	}
	svc := newApplicationService(apps, &fakeJobRepo{}, profiles, &recordingNotifier{})

	_, err := svc.UpdateStatus(context.Background(), Caller{UserID: 3, Role: models.RoleCompany}, 1, UpdateApplicationStatusRequest{Status: models.AppShortlisted})
	require.Error(t, err)
	assert.True(t, IsForbiddenError(err))
	assert.Empty(t, apps.statusUpdates)
}

func TestUpdateStatusAdminBypassesOwnership(t *testing.T) {
	apps := &fakeApplicationRepo{apps: map[int64]*models.Application{
		1: {ID: 1, Status: models.AppApplied, JobCompanyID: 7},
	}}
	svc := newApplicationService(apps, &fakeJobRepo{}, &fakeProfileRepo{}, &recordingNotifier{})

	app, err := svc.UpdateStatus(context.Background(), Caller{UserID: 42, Role: models.RoleAdmin}, 1, UpdateApplicationStatusRequest{Status: models.AppShortlisted})
	require.NoError(t, err)
	assert.Equal(t, models.AppShortlisted, app.Status)
}

func TestUpdateStatusDispatchesNotification(t *testing.T) {
	apps := &fakeApplicationRepo{apps: map[int64]*models.Application{
		1: {
			ID: 1, Status: models.AppShortlisted, JobCompanyID: 7,
			JobTitle: "Backend Engineer", CompanyName: "Acme",
			StudentName: "Ada Lovelace", StudentEmail: "ada@example.com",
		},
	}}
	notifier := &recordingNotifier{}
	svc := newApplicationService(apps, &fakeJobRepo{}, &fakeProfileRepo{}, notifier)

	_, err := svc.UpdateStatus(context.Background(), Caller{UserID: 42, Role: models.RoleAdmin}, 1, UpdateApplicationStatusRequest{Status: models.AppHired})
	require.NoError(t, err)

	sent := notifier.notifications()
	require.Len(t, sent, 1)
	assert.Equal(t, "ada@example.com", sent[0].To)
	assert.Equal(t, models.AppHired, sent[0].Status)
	assert.Equal(t, "Backend Engineer", sent[0].JobTitle)
}

func TestUpdateStatusRejectsUnknownStatus(t *testing.T) {
	apps := &fakeApplicationRepo{apps: map[int64]*models.Application{
		1: {ID: 1, Status: models.AppApplied, JobCompanyID: 7},
	}}
	svc := newApplicationService(apps, &fakeJobRepo{}, &fakeProfileRepo{}, &recordingNotifier{})

	_, err := svc.UpdateStatus(context.Background(), Caller{UserID: 42, Role: models.RoleAdmin}, 1, UpdateApplicationStatusRequest{Status: "ACCEPTED"})
	require.Error(t, err)
	assert.True(t, IsErrorType(err, "VALIDATION_ERROR"))
}

func TestListForJobChecksOwnership(t *testing.T) {
	jobs := &fakeJobRepo{jobs: map[int64]*models.Job{5: {ID: 5, CompanyID: 7}}}
	profiles := &fakeProfileRepo{
		companies: map[int64]*models.CompanyProfile{
			2: {ID: 7, UserID: 2},
			3: {ID: 8, UserID: 3},
		},
	}
	apps := &fakeApplicationRepo{byJob: []*models.Application{{ID: 1, JobID: 5}}}
	svc := newApplicationService(apps, jobs, profiles, &recordingNotifier{})

	got, err := svc.ListForJob(context.Background(), Caller{UserID: 2, Role: models.RoleCompany}, 5)
	require.NoError(t, err)
	assert.Len(t, got, 1)

	_, err = svc.ListForJob(context.Background(), Caller{UserID: 3, Role: models.RoleCompany}, 5)
	require.Error(t, err)
	assert.True(t, IsForbiddenError(err))
}
