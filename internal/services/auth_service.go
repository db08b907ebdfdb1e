package services

import (
	"context"
	"fmt"
	"time"

	"placementhub/internal/config"
	"placementhub/internal/models"
	"placementhub/internal/repositories"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// dummyHash keeps password comparison work roughly constant when the
// account does not exist, so response timing does not leak which emails
// are registered.
const dummyHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

type authService struct {
	users    repositories.UserRepository
	profiles repositories.ProfileRepository
	cfg      config.AuthConfig
	validate *validator.Validate
	logger   *zap.Logger
}

// NewAuthService creates a new instance of AuthService
func NewAuthService(
	users repositories.UserRepository,
	profiles repositories.ProfileRepository,
	cfg config.AuthConfig,
	validate *validator.Validate,
	logger *zap.Logger,
) AuthService {
	return &authService{
		users:    users,
		profiles: profiles,
		cfg:      cfg,
		validate: validate,
		logger:   logger,
	}
}

// Register creates an account with its role profile. Students and
// admins start ACTIVE; companies start PENDING and must be approved by
// an admin before they can log in. Admin accounts carry no profile.
func (s *authService) Register(ctx context.Context, req RegisterRequest) (*AuthResponse, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, NewValidationError("invalid registration request", err)
	}

	var student *models.StudentProfile
	var company *models.CompanyProfile
	status := models.StatusActive
	name := ""

	switch req.Role {
	case models.RoleStudent:
		if req.FirstName == "" || req.LastName == "" {
			return nil, NewValidationError("first name and last name are required for students", nil)
		}
		student = &models.StudentProfile{FirstName: req.FirstName, LastName: req.LastName}
		name = student.FullName()
	case models.RoleCompany:
		if req.CompanyName == "" {
			return nil, NewValidationError("company name is required for companies", nil)
		}
		company = &models.CompanyProfile{CompanyName: req.CompanyName}
		status = models.StatusPending
		name = req.CompanyName
	case models.RoleAdmin:
		name = "Admin"
	default:
		return nil, NewValidationError("unsupported role", nil)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.cfg.BCryptCost)
	if err != nil {
		return nil, NewInternalError("failed to process password")
	}

	user := &models.User{
		Email:        req.Email,
		PasswordHash: string(hash),
		Role:         req.Role,
		Status:       status,
	}

	if err := s.users.CreateWithProfile(ctx, user, student, company); err != nil {
		if repositories.IsUniqueViolation(err) {
			return nil, NewConflictError("An account with this email already exists", "EMAIL_EXISTS")
		}
		return nil, NewInternalError("failed to create account")
	}

	token, err := s.issueToken(user)
	if err != nil {
		return nil, NewInternalError("failed to issue token")
	}

	s.logger.Info("Account registered",
		zap.Int64("user_id", user.ID),
		zap.String("role", user.Role),
		zap.String("status", user.Status),
	)

	return &AuthResponse{
		Token: token,
		User:  AuthUser{ID: user.ID, Email: user.Email, Role: user.Role, Name: name},
	}, nil
}

// Login authenticates the account and refuses non-ACTIVE accounts with
// a status-specific error.
func (s *authService) Login(ctx context.Context, req LoginRequest) (*AuthResponse, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, NewValidationError("invalid login request", err)
	}

	user, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, NewInternalError("failed to look up account")
	}
	if user == nil {
		bcrypt.CompareHashAndPassword([]byte(dummyHash), []byte(req.Password))
		return nil, NewUnauthorizedError("Invalid email or password")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, NewUnauthorizedError("Invalid email or password")
	}

	switch user.Status {
	case models.StatusBlocked:
		return nil, NewAccountBlockedError()
	case models.StatusPending:
		return nil, NewAccountPendingError()
	case models.StatusRejected:
		return nil, NewAccountRejectedError()
	}

	name, err := s.displayName(ctx, user)
	if err != nil {
		return nil, NewInternalError("failed to load profile")
	}

	token, err := s.issueToken(user)
	if err != nil {
		return nil, NewInternalError("failed to issue token")
	}

	s.logger.Info("Login succeeded", zap.Int64("user_id", user.ID), zap.String("role", user.Role))

	return &AuthResponse{
		Token: token,
		User:  AuthUser{ID: user.ID, Email: user.Email, Role: user.Role, Name: name},
	}, nil
}

// VerifyToken parses a bearer token and returns its claims. Only HS256
// is accepted.
func (s *authService) VerifyToken(tokenString string) (*TokenClaims, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return []byte(s.cfg.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return nil, NewUnauthorizedError("Invalid or expired token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, NewUnauthorizedError("Invalid token claims")
	}

	userID, ok := claims["user_id"].(float64)
	if !ok {
		return nil, NewUnauthorizedError("Invalid token claims")
	}
	role, ok := claims["role"].(string)
	if !ok || !models.ValidRole(role) {
		return nil, NewUnauthorizedError("Invalid token claims")
	}

	return &TokenClaims{UserID: int64(userID), Role: role}, nil
}

func (s *authService) issueToken(user *models.User) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": user.ID,
		"role":    user.Role,
		"iat":     now.Unix(),
		"exp":     now.Add(s.cfg.JWTExpiry).Unix(),
	})
	return token.SignedString([]byte(s.cfg.JWTSecret))
}

func (s *authService) displayName(ctx context.Context, user *models.User) (string, error) {
	switch user.Role {
	case models.RoleStudent:
		profile, err := s.profiles.GetStudentByUserID(ctx, user.ID)
		if err != nil {
			return "", err
		}
		if profile == nil {
			return "Student", nil
		}
		return profile.FullName(), nil
	case models.RoleCompany:
		profile, err := s.profiles.GetCompanyByUserID(ctx, user.ID)
		if err != nil {
			return "", err
		}
		if profile == nil {
			return "Company", nil
		}
		return profile.CompanyName, nil
	default:
		return "Admin", nil
	}
}
