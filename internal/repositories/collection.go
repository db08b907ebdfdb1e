package repositories

import (
	"placementhub/internal/database"

	"go.uber.org/zap"
)

// Repositories aggregates all repository implementations for dependency
// injection into the service layer.
type Repositories struct {
	Users        UserRepository
	Profiles     ProfileRepository
	Jobs         JobRepository
	Applications ApplicationRepository
}

// NewRepositories wires every repository against the shared manager.
func NewRepositories(db *database.Manager, logger *zap.Logger) *Repositories {
	return &Repositories{
		Users:        NewUserRepository(db, logger),
		Profiles:     NewProfileRepository(db, logger),
		Jobs:         NewJobRepository(db, logger),
		Applications: NewApplicationRepository(db, logger),
	}
}
