package services

import (
	"placementhub/internal/cache"
	"placementhub/internal/config"
	"placementhub/internal/repositories"
	"placementhub/internal/storage"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// notificationQueueSize bounds the in-flight notification backlog.
const notificationQueueSize = 128

// ServiceCollection aggregates all services for injection into the
// handler layer.
type ServiceCollection struct {
	Auth         AuthService
	Jobs         JobService
	Applications ApplicationService
	Students     StudentService
	Admin        AdminService
	Stats        StatsService

	notifier *EmailNotifier
}

// NewServiceCollection wires the full service graph: validator, email
// notifier, and every domain service against the shared repositories
// and cache.
func NewServiceCollection(
	repos *repositories.Repositories,
	c cache.Cache,
	files storage.FileStorage,
	cfg *config.Config,
	logger *zap.Logger,
) *ServiceCollection {
	validate := validator.New()

	sender := NewEmailSender(cfg.SMTP, logger)
	notifier := NewEmailNotifier(sender, notificationQueueSize, logger)

	return &ServiceCollection{
		Auth:         NewAuthService(repos.Users, repos.Profiles, cfg.Auth, validate, logger),
		Jobs:         NewJobService(repos.Jobs, repos.Profiles, c, cfg.Cache.TTL, validate, logger),
		Applications: NewApplicationService(repos.Applications, repos.Jobs, repos.Profiles, notifier, c, validate, logger),
		Students:     NewStudentService(repos.Profiles, files, cfg.Cloudinary.MaxFileSize, validate, logger),
		Admin:        NewAdminService(repos.Users, c, validate, logger),
		Stats:        NewStatsService(repos.Users, repos.Profiles, repos.Jobs, repos.Applications, c, cfg.Cache.TTL, logger),
		notifier:     notifier,
	}
}

// Close drains and stops the notification worker.
func (s *ServiceCollection) Close() {
	if s.notifier != nil {
		s.notifier.Close()
	}
}
