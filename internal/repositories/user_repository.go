package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"placementhub/internal/database"
	"placementhub/internal/models"

	"github.com/lib/pq"
	"go.uber.org/zap"
)

type userRepository struct {
	*BaseRepository
}

// NewUserRepository creates a new instance of UserRepository
func NewUserRepository(db *database.Manager, logger *zap.Logger) UserRepository {
	return &userRepository{
		BaseRepository: NewBaseRepository(db, logger),
	}
}

// CreateWithProfile inserts the user and its role profile in a single
// transaction so a mid-sequence failure leaves no half-created account.
func (r *userRepository) CreateWithProfile(ctx context.Context, user *models.User, student *models.StudentProfile, company *models.CompanyProfile) error {
	err := r.WithTransaction(ctx, func(tx *sql.Tx) error {
		query := `
			INSERT INTO users (email, password_hash, role, status)
			VALUES ($1, $2, $3, $4)
			RETURNING id, created_at`

		if err := tx.QueryRowContext(ctx, query,
			user.Email, user.PasswordHash, user.Role, user.Status,
		).Scan(&user.ID, &user.CreatedAt); err != nil {
			return fmt.Errorf("failed to create user: %w", err)
		}

		if student != nil {
			student.UserID = user.ID
			if err := tx.QueryRowContext(ctx, `
				INSERT INTO student_profiles (user_id, first_name, last_name, skills)
				VALUES ($1, $2, $3, $4)
				RETURNING id`,
				student.UserID, student.FirstName, student.LastName, pq.Array([]string{}),
			).Scan(&student.ID); err != nil {
				return fmt.Errorf("failed to create student profile: %w", err)
			}
		}

		if company != nil {
			company.UserID = user.ID
			if err := tx.QueryRowContext(ctx, `
				INSERT INTO company_profiles (user_id, company_name)
				VALUES ($1, $2)
				RETURNING id`,
				company.UserID, company.CompanyName,
			).Scan(&company.ID); err != nil {
				return fmt.Errorf("failed to create company profile: %w", err)
			}
		}

		return nil
	})

	if err != nil {
		r.GetLogger().Error("Failed to create user with profile",
			zap.Error(err),
			zap.String("email", user.Email),
			zap.String("role", user.Role),
		)
		return err
	}

	r.GetLogger().Info("User created",
		zap.Int64("user_id", user.ID),
		zap.String("role", user.Role),
		zap.String("status", user.Status),
	)
	return nil
}

// GetByID retrieves a user by id, or nil when absent.
func (r *userRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	return r.scanUser(r.QueryRowContext(ctx, `
		SELECT id, email, password_hash, role, status, created_at
		FROM users WHERE id = $1`, id))
}

// GetByEmail retrieves a user by email, or nil when absent.
func (r *userRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.scanUser(r.QueryRowContext(ctx, `
		SELECT id, email, password_hash, role, status, created_at
		FROM users WHERE email = $1`, email))
}

func (r *userRepository) scanUser(row *sql.Row) (*models.User, error) {
	var user models.User
	err := row.Scan(&user.ID, &user.Email, &user.PasswordHash, &user.Role, &user.Status, &user.CreatedAt)
	if err != nil {
		if r.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &user, nil
}

// ListWithProfiles returns all users with their role profiles joined,
// newest first.
func (r *userRepository) ListWithProfiles(ctx context.Context) ([]*models.User, error) {
	query := `
		SELECT
			u.id, u.email, u.role, u.status, u.created_at,
			sp.id, sp.first_name, sp.last_name, sp.resume_url,
			cp.id, cp.company_name
		FROM users u
		LEFT JOIN student_profiles sp ON sp.user_id = u.id
		LEFT JOIN company_profiles cp ON cp.user_id = u.id
		ORDER BY u.created_at DESC`

	rows, err := r.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	var users []*models.User
	for rows.Next() {
		var user models.User
		var spID sql.NullInt64
		var spFirst, spLast, spResume sql.NullString
		var cpID sql.NullInt64
		var cpName sql.NullString

		if err := rows.Scan(
			&user.ID, &user.Email, &user.Role, &user.Status, &user.CreatedAt,
			&spID, &spFirst, &spLast, &spResume,
			&cpID, &cpName,
		); err != nil {
			return nil, fmt.Errorf("failed to scan user row: %w", err)
		}

		if spID.Valid {
			profile := &models.StudentProfile{
				ID:        spID.Int64,
				UserID:    user.ID,
				FirstName: spFirst.String,
				LastName:  spLast.String,
			}
			if spResume.Valid {
				profile.ResumeURL = &spResume.String
			}
			user.StudentProfile = profile
		}
		if cpID.Valid {
			user.CompanyProfile = &models.CompanyProfile{
				ID:          cpID.Int64,
				UserID:      user.ID,
				CompanyName: cpName.String,
			}
		}

		users = append(users, &user)
	}
	return users, rows.Err()
}

// UpdateStatus sets the account status and returns the updated user.
func (r *userRepository) UpdateStatus(ctx context.Context, id int64, status string) (*models.User, error) {
	var user models.User
	err := r.QueryRowContext(ctx, `
		UPDATE users SET status = $2
		WHERE id = $1
		RETURNING id, email, password_hash, role, status, created_at`,
		id, status,
	).Scan(&user.ID, &user.Email, &user.PasswordHash, &user.Role, &user.Status, &user.CreatedAt)
	if err != nil {
		if r.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to update user status: %w", err)
	}

	r.GetLogger().Info("User status updated",
		zap.Int64("user_id", user.ID),
		zap.String("status", user.Status),
	)
	return &user, nil
}

// DeleteCascade removes everything owned by the user, leaf tables
// first, so no orphaned rows survive a partial failure.
func (r *userRepository) DeleteCascade(ctx context.Context, id int64) error {
	return r.WithTransaction(ctx, func(tx *sql.Tx) error {
		// Applications made by the user as a student.
		if _, err := tx.ExecContext(ctx, `
			DELETE FROM applications
			WHERE student_id IN (SELECT id FROM student_profiles WHERE user_id = $1)`, id); err != nil {
			return fmt.Errorf("failed to delete student applications: %w", err)
		}

		// Applications against jobs owned by the user as a company,
		// then the jobs themselves.
		if _, err := tx.ExecContext(ctx, `
			DELETE FROM applications
			WHERE job_id IN (
				SELECT j.id FROM jobs j
				JOIN company_profiles cp ON j.company_id = cp.id
				WHERE cp.user_id = $1
			)`, id); err != nil {
			return fmt.Errorf("failed to delete job applications: %w", err)
		}
		if _, err := tx.ExecContext(ctx, `
			DELETE FROM jobs
			WHERE company_id IN (SELECT id FROM company_profiles WHERE user_id = $1)`, id); err != nil {
			return fmt.Errorf("failed to delete company jobs: %w", err)
		}

		if _, err := tx.ExecContext(ctx, `DELETE FROM student_profiles WHERE user_id = $1`, id); err != nil {
			return fmt.Errorf("failed to delete student profile: %w", err)
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM company_profiles WHERE user_id = $1`, id); err != nil {
			return fmt.Errorf("failed to delete company profile: %w", err)
		}

		result, err := tx.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id)
		if err != nil {
			return fmt.Errorf("failed to delete user: %w", err)
		}
		affected, _ := result.RowsAffected()
		if affected == 0 {
			return sql.ErrNoRows
		}
		return nil
	})
}

// CountByRole counts users holding the given role.
func (r *userRepository) CountByRole(ctx context.Context, role string) (int, error) {
	var count int
	err := r.QueryRowContext(ctx, `SELECT COUNT(*) FROM users WHERE role = $1`, role).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count users by role: %w", err)
	}
	return count, nil
}
