package services

import (
	"context"
	"database/sql"
	"sync"
	"time"

	"placementhub/internal/cache"
	"placementhub/internal/models"

	"github.com/lib/pq"
)

// errDuplicate simulates a Postgres unique-constraint violation.
var errDuplicate = &pq.Error{Code: "23505"}

type fakeUserRepo struct {
	createFn       func(ctx context.Context, user *models.User, student *models.StudentProfile, company *models.CompanyProfile) error
	getByEmailFn   func(ctx context.Context, email string) (*models.User, error)
	getByIDFn      func(ctx context.Context, id int64) (*models.User, error)
	listFn         func(ctx context.Context) ([]*models.User, error)
	updateStatusFn func(ctx context.Context, id int64, status string) (*models.User, error)
	deleteFn       func(ctx context.Context, id int64) error
	countByRoleFn  func(ctx context.Context, role string) (int, error)
}

func (f *fakeUserRepo) CreateWithProfile(ctx context.Context, user *models.User, student *models.StudentProfile, company *models.CompanyProfile) error {
	return f.createFn(ctx, user, student, company)
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id int64) (*models.User, error) {
	if f.getByIDFn == nil {
		return nil, nil
	}
	return f.getByIDFn(ctx, id)
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return f.getByEmailFn(ctx, email)
}

func (f *fakeUserRepo) ListWithProfiles(ctx context.Context) ([]*models.User, error) {
	return f.listFn(ctx)
}

func (f *fakeUserRepo) UpdateStatus(ctx context.Context, id int64, status string) (*models.User, error) {
	return f.updateStatusFn(ctx, id, status)
}

func (f *fakeUserRepo) DeleteCascade(ctx context.Context, id int64) error {
	return f.deleteFn(ctx, id)
}

func (f *fakeUserRepo) CountByRole(ctx context.Context, role string) (int, error) {
	return f.countByRoleFn(ctx, role)
}

type fakeProfileRepo struct {
	students  map[int64]*models.StudentProfile
	companies map[int64]*models.CompanyProfile

	updatedStudent *models.StudentProfile
	resumeURL      string
}

func (f *fakeProfileRepo) GetStudentByUserID(_ context.Context, userID int64) (*models.StudentProfile, error) {
	return f.students[userID], nil
}

func (f *fakeProfileRepo) GetCompanyByUserID(_ context.Context, userID int64) (*models.CompanyProfile, error) {
	return f.companies[userID], nil
}

func (f *fakeProfileRepo) UpdateStudent(_ context.Context, profile *models.StudentProfile) error {
	f.updatedStudent = profile
	return nil
}

func (f *fakeProfileRepo) SetResumeURL(_ context.Context, _ int64, resumeURL string) error {
	f.resumeURL = resumeURL
	return nil
}

type fakeJobRepo struct {
	jobs map[int64]*models.Job

	created *models.Job
	updated *models.Job
	deleted []int64

	visible   []*models.Job
	byCompany []*models.Job
}

func (f *fakeJobRepo) Create(_ context.Context, job *models.Job) error {
	job.ID = 100
	f.created = job
	return nil
}

func (f *fakeJobRepo) GetByID(_ context.Context, id int64) (*models.Job, error) {
	return f.jobs[id], nil
}

func (f *fakeJobRepo) ListVisible(_ context.Context) ([]*models.Job, error) {
	return f.visible, nil
}

func (f *fakeJobRepo) ListByCompany(_ context.Context, _ int64) ([]*models.Job, error) {
	return f.byCompany, nil
}

func (f *fakeJobRepo) Update(_ context.Context, job *models.Job) error {
	f.updated = job
	return nil
}

func (f *fakeJobRepo) DeleteCascade(_ context.Context, id int64) error {
	if _, ok := f.jobs[id]; !ok {
		return sql.ErrNoRows
	}
	f.deleted = append(f.deleted, id)
	return nil
}

func (f *fakeJobRepo) Count(_ context.Context) (int, error) { return len(f.jobs), nil }

func (f *fakeJobRepo) CountByCompany(_ context.Context, _ int64) (int, int, error) {
	return len(f.byCompany), 0, nil
}

type fakeApplicationRepo struct {
	apps map[int64]*models.Application

	createErr     error
	created       *models.Application
	statusUpdates map[int64]string

	byStudent []*models.Application
	byCompany []*models.Application
	byJob     []*models.Application
	all       []*models.Application

	countByStudent map[string]int
	countByCompany map[string]int
}

func (f *fakeApplicationRepo) Create(_ context.Context, app *models.Application) error {
	if f.createErr != nil {
		return f.createErr
	}
	app.ID = 200
	f.created = app
	return nil
}

func (f *fakeApplicationRepo) GetByID(_ context.Context, id int64) (*models.Application, error) {
	return f.apps[id], nil
}

func (f *fakeApplicationRepo) ListByStudent(_ context.Context, _ int64) ([]*models.Application, error) {
	return f.byStudent, nil
}

func (f *fakeApplicationRepo) ListByJob(_ context.Context, _ int64) ([]*models.Application, error) {
	return f.byJob, nil
}

func (f *fakeApplicationRepo) ListByCompany(_ context.Context, _ int64) ([]*models.Application, error) {
	return f.byCompany, nil
}

func (f *fakeApplicationRepo) ListAll(_ context.Context) ([]*models.Application, error) {
	return f.all, nil
}

func (f *fakeApplicationRepo) RecentByStudent(_ context.Context, _ int64, _ int) ([]*models.Application, error) {
	return f.byStudent, nil
}

func (f *fakeApplicationRepo) RecentByCompany(_ context.Context, _ int64, _ int) ([]*models.Application, error) {
	return f.byCompany, nil
}

func (f *fakeApplicationRepo) UpdateStatus(_ context.Context, id int64, status string) error {
	if f.statusUpdates == nil {
		f.statusUpdates = make(map[int64]string)
	}
	f.statusUpdates[id] = status
	return nil
}

func (f *fakeApplicationRepo) Count(_ context.Context) (int, error) { return len(f.all), nil }

func (f *fakeApplicationRepo) CountByStatus(_ context.Context, status string) (int, error) {
	n := 0
	for _, app := range f.all {
		if app.Status == status {
			n++
		}
	}
	return n, nil
}

func (f *fakeApplicationRepo) CountByStudentStatus(_ context.Context, _ int64) (map[string]int, error) {
	return f.countByStudent, nil
}

func (f *fakeApplicationRepo) CountByCompanyStatus(_ context.Context, _ int64) (map[string]int, error) {
	return f.countByCompany, nil
}

type recordingNotifier struct {
	mu   sync.Mutex
	sent []StatusNotification
}

func (n *recordingNotifier) Dispatch(notification StatusNotification) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sent = append(n.sent, notification)
}

func (n *recordingNotifier) notifications() []StatusNotification {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]StatusNotification(nil), n.sent...)
}

// noopCache satisfies cache.Cache and always misses.
type noopCache struct{}

func (noopCache) Get(context.Context, string) ([]byte, error)             { return nil, cache.ErrCacheMiss }
func (noopCache) Set(context.Context, string, []byte, time.Duration) error { return nil }
func (noopCache) Delete(context.Context, ...string) error                 { return nil }
func (noopCache) DeletePattern(context.Context, string) error             { return nil }
func (noopCache) Health(context.Context) error                            { return nil }
func (noopCache) Close() error                                            { return nil }
