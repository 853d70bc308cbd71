package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/SBShweta/blood-donation-app/internal/auth"
	"github.com/SBShweta/blood-donation-app/internal/config"
	"github.com/SBShweta/blood-donation-app/internal/domain"
	"github.com/SBShweta/blood-donation-app/internal/repository"
	apperrors "github.com/SBShweta/blood-donation-app/pkg/util"
)

// AuthService coordinates registration and login flows.
type AuthService struct {
	users      repository.UserRepository
	tokenMgr   *auth.TokenManager
	bcryptCost int
	logger     *zap.Logger
}

// AuthDependencies encapsulates repo requirements for auth service.
type AuthDependencies struct {
	UserRepo repository.UserRepository
	Logger   *zap.Logger
}

// RegisterInput carries the registration form.
type RegisterInput struct {
	Name      string `json:"name" validate:"required"`
	Email     string `json:"email" validate:"required"`
	Password  string `json:"password" validate:"required"`
	Role      string `json:"role"`
	Age       int    `json:"age"`
	Gender    string `json:"gender"`
	BloodType string `json:"bloodType"`
	Location  string `json:"location"`
}

// AdminInput carries the bootstrap administrator credentials.
type AdminInput struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// AuthResult is returned by successful register and login calls.
type AuthResult struct {
	User      domain.UserSummary
	Token     string
	ExpiresAt time.Time
}

// NewAuthService builds the service.
func NewAuthService(cfg config.Config, deps AuthDependencies) *AuthService {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthService{
		users:      deps.UserRepo,
		tokenMgr:   auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL()),
		bcryptCost: cfg.Auth.BcryptCost,
		logger:     logger,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register creates a new account and signs a token for it.
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*AuthResult, error) {
	input.Name = strings.TrimSpace(input.Name)
	input.Email = normalizeEmail(input.Email)
	if err := validateInput(input, "Name, email and password are required"); err != nil {
		return nil, err
	}

	role, err := domain.ParseRole(input.Role)
	if err != nil {
		return nil, apperrors.NewValidationError(err.Error(), map[string]any{"fields": []string{"role"}})
	}

	if _, err := s.users.GetByEmail(ctx, input.Email); err == nil {
		return nil, apperrors.NewDuplicateEmail()
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, apperrors.NewInternalError(err)
	}

	hash, err := auth.HashPassword(input.Password, s.bcryptCost)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}

	user := &domain.User{
		Name:         input.Name,
		Email:        input.Email,
		PasswordHash: hash,
		Age:          input.Age,
		Gender:       strings.TrimSpace(input.Gender),
		BloodType:    strings.TrimSpace(input.BloodType),
		Location:     strings.TrimSpace(input.Location),
		Role:         role,
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, apperrors.NewDuplicateEmail()
		}
		return nil, apperrors.NewInternalError(err)
	}

	s.logger.Info("user registered", zap.String("user_id", user.ID), zap.String("role", string(user.Role)))
	return s.issue(user)
}

// Login verifies credentials. Unknown emails and wrong passwords fail identically.
func (s *AuthService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return nil, apperrors.NewInvalidCredentials()
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NewInvalidCredentials()
		}
		return nil, apperrors.NewInternalError(err)
	}
	if err := auth.ComparePassword(user.PasswordHash, password); err != nil {
		return nil, apperrors.NewInvalidCredentials()
	}
	return s.issue(user)
}

// EnsureAdmin creates the bootstrap administrator unless an admin already exists.
// It reports whether an account was created.
func (s *AuthService) EnsureAdmin(ctx context.Context, input AdminInput) (bool, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return false, apperrors.NewInternalError(err)
	}
	for i := range users {
		if users[i].IsAdmin() {
			s.logger.Info("admin already exists", zap.String("email", users[i].Email))
			return false, nil
		}
	}

	input.Name = strings.TrimSpace(input.Name)
	input.Email = normalizeEmail(input.Email)
	if err := validateInput(input, "Admin name, email and password are required"); err != nil {
		return false, err
	}

	hash, err := auth.HashPassword(input.Password, s.bcryptCost)
	if err != nil {
		return false, apperrors.NewInternalError(err)
	}

	admin := &domain.User{
		Name:         input.Name,
		Email:        input.Email,
		PasswordHash: hash,
		Role:         domain.RoleAdmin,
	}
	if err := s.users.Create(ctx, admin); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return false, apperrors.NewDuplicateEmail()
		}
		return false, apperrors.NewInternalError(err)
	}

	s.logger.Info("admin user created", zap.String("user_id", admin.ID), zap.String("email", admin.Email))
	return true, nil
}

func (s *AuthService) issue(user *domain.User) (*AuthResult, error) {
	token, exp, err := s.tokenMgr.GenerateToken(user.ID, user.Role)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	return &AuthResult{User: user.Summary(), Token: token, ExpiresAt: exp}, nil
}

// TokenManager exposes the underlying token manager for middleware usage.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}
