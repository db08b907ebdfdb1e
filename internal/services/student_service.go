package services

import (
	"context"
	"errors"

	"placementhub/internal/models"
	"placementhub/internal/repositories"
	"placementhub/internal/storage"

	"github.com/go-playground/validator/v10"
	"github.com/lib/pq"
	"go.uber.org/zap"
)

type studentService struct {
	profiles    repositories.ProfileRepository
	files       storage.FileStorage
	maxFileSize int64
	validate    *validator.Validate
	logger      *zap.Logger
}

// NewStudentService creates a new instance of StudentService
func NewStudentService(
	profiles repositories.ProfileRepository,
	files storage.FileStorage,
	maxFileSize int64,
	validate *validator.Validate,
	logger *zap.Logger,
) StudentService {
	return &studentService{
		profiles:    profiles,
		files:       files,
		maxFileSize: maxFileSize,
		validate:    validate,
		logger:      logger,
	}
}

// GetProfile returns the caller's student profile.
func (s *studentService) GetProfile(ctx context.Context, caller Caller) (*models.StudentProfile, error) {
	profile, err := s.profiles.GetStudentByUserID(ctx, caller.UserID)
	if err != nil {
		return nil, NewInternalError("failed to load student profile")
	}
	if profile == nil {
		return nil, NewNotFoundError("Student profile not found")
	}
	return profile, nil
}

// UpdateProfile replaces the caller's student profile fields and
// returns the updated profile.
func (s *studentService) UpdateProfile(ctx context.Context, caller Caller, req UpdateStudentProfileRequest) (*models.StudentProfile, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, NewValidationError("invalid profile request", err)
	}

	profile, err := s.GetProfile(ctx, caller)
	if err != nil {
		return nil, err
	}

	profile.FirstName = req.FirstName
	profile.LastName = req.LastName
	profile.Phone = req.Phone
	profile.Location = req.Location
	profile.About = req.About
	profile.University = req.University
	profile.GraduationYear = req.GraduationYear
	if req.Skills != nil {
		profile.Skills = pq.StringArray(req.Skills)
	} else {
		profile.Skills = pq.StringArray{}
	}

	if err := s.profiles.UpdateStudent(ctx, profile); err != nil {
		return nil, NewInternalError("failed to update student profile")
	}

	s.logger.Info("Student profile updated", zap.Int64("user_id", caller.UserID))
	return profile, nil
}

// StoreResume validates the upload, stores it, and records the URL on
// the caller's profile.
func (s *studentService) StoreResume(ctx context.Context, caller Caller, input storage.UploadInput) (string, error) {
	profile, err := s.GetProfile(ctx, caller)
	if err != nil {
		return "", err
	}

	input.OwnerID = caller.UserID
	if err := storage.ValidateResume(input, s.maxFileSize); err != nil {
		switch {
		case errors.Is(err, storage.ErrFileTooLarge):
			return "", NewValidationError("Resume exceeds the maximum allowed size", err)
		case errors.Is(err, storage.ErrInvalidFileType):
			return "", NewValidationError("Resume must be a PDF file", err)
		default:
			return "", NewValidationError("Invalid resume file", err)
		}
	}

	url, err := s.files.UploadResume(ctx, input)
	if err != nil {
		s.logger.Error("Resume upload failed",
			zap.Int64("user_id", caller.UserID),
			zap.Error(err),
		)
		return "", NewInternalError("failed to store resume")
	}

	if err := s.profiles.SetResumeURL(ctx, caller.UserID, url); err != nil {
		return "", NewInternalError("failed to record resume")
	}

	s.logger.Info("Resume stored",
		zap.Int64("user_id", caller.UserID),
		zap.Int64("profile_id", profile.ID),
	)
	return url, nil
}
