package repositories

import (
	"context"
	"fmt"

	"placementhub/internal/database"
	"placementhub/internal/models"

	"go.uber.org/zap"
)

type profileRepository struct {
	*BaseRepository
}

// NewProfileRepository creates a new instance of ProfileRepository
func NewProfileRepository(db *database.Manager, logger *zap.Logger) ProfileRepository {
	return &profileRepository{
		BaseRepository: NewBaseRepository(db, logger),
	}
}

// GetStudentByUserID retrieves the student profile owned by the user,
// with the account email and role joined, or nil when absent.
func (r *profileRepository) GetStudentByUserID(ctx context.Context, userID int64) (*models.StudentProfile, error) {
	query := `
		SELECT
			sp.id, sp.user_id, sp.first_name, sp.last_name, sp.phone, sp.location,
			sp.about, sp.university, sp.graduation_year, sp.skills, sp.resume_url,
			u.email, u.role
		FROM student_profiles sp
		INNER JOIN users u ON sp.user_id = u.id
		WHERE sp.user_id = $1`

	var p models.StudentProfile
	err := r.QueryRowContext(ctx, query, userID).Scan(
		&p.ID, &p.UserID, &p.FirstName, &p.LastName, &p.Phone, &p.Location,
		&p.About, &p.University, &p.GraduationYear, &p.Skills, &p.ResumeURL,
		&p.Email, &p.Role,
	)
	if err != nil {
		if r.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get student profile: %w", err)
	}
	return &p, nil
}

// GetCompanyByUserID retrieves the company profile owned by the user,
// or nil when absent.
func (r *profileRepository) GetCompanyByUserID(ctx context.Context, userID int64) (*models.CompanyProfile, error) {
	var p models.CompanyProfile
	err := r.QueryRowContext(ctx, `
		SELECT id, user_id, company_name, website, about, location
		FROM company_profiles
		WHERE user_id = $1`, userID,
	).Scan(&p.ID, &p.UserID, &p.CompanyName, &p.Website, &p.About, &p.Location)
	if err != nil {
		if r.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get company profile: %w", err)
	}
	return &p, nil
}

// UpdateStudent persists the mutable fields of a student profile.
func (r *profileRepository) UpdateStudent(ctx context.Context, profile *models.StudentProfile) error {
	result, err := r.ExecContext(ctx, `
		UPDATE student_profiles SET
			first_name = $2, last_name = $3, phone = $4, location = $5,
			about = $6, university = $7, graduation_year = $8, skills = $9
		WHERE user_id = $1`,
		profile.UserID, profile.FirstName, profile.LastName, profile.Phone, profile.Location,
		profile.About, profile.University, profile.GraduationYear, profile.Skills,
	)
	if err != nil {
		return fmt.Errorf("failed to update student profile: %w", err)
	}
	affected, _ := result.RowsAffected()
	if affected == 0 {
		return fmt.Errorf("student profile not found for user %d", profile.UserID)
	}

	r.GetLogger().Info("Student profile updated", zap.Int64("user_id", profile.UserID))
	return nil
}

// SetResumeURL stores the uploaded resume reference on the profile.
func (r *profileRepository) SetResumeURL(ctx context.Context, userID int64, resumeURL string) error {
	result, err := r.ExecContext(ctx, `
		UPDATE student_profiles SET resume_url = $2 WHERE user_id = $1`,
		userID, resumeURL,
	)
	if err != nil {
		return fmt.Errorf("failed to set resume url: %w", err)
	}
	affected, _ := result.RowsAffected()
	if affected == 0 {
		return fmt.Errorf("student profile not found for user %d", userID)
	}
	return nil
}
