package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"kanban-board-api/internal/auth"
	"kanban-board-api/internal/domain"
	"kanban-board-api/internal/dto"
	"kanban-board-api/internal/metrics"
	"kanban-board-api/internal/repository"
	"kanban-board-api/internal/response"
)

// UserService defines the interface for account business logic
type UserService interface {
	Register(ctx context.Context, req *dto.RegistrationRequest) (*dto.AuthResponse, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error)
	Logout(ctx context.Context, token string) error
	CheckEmail(ctx context.Context, email string) (*dto.EmailCheckResponse, error)
}

// userServiceImpl is the implementation of UserService
type userServiceImpl struct {
	userRepo repository.UserRepository
	tokens   auth.TokenManager
	metrics  *metrics.Metrics
	logger   *zap.Logger
}

// NewUserService creates a new instance of UserService
func NewUserService(
	userRepo repository.UserRepository,
	tokens auth.TokenManager,
	m *metrics.Metrics,
	logger *zap.Logger,
) UserService {
	return &userServiceImpl{
		userRepo: userRepo,
		tokens:   tokens,
		metrics:  m,
		logger:   logger,
	}
}

// Register creates an account and returns a signed token for it
func (s *userServiceImpl) Register(ctx context.Context, req *dto.RegistrationRequest) (*dto.AuthResponse, error) {
	if req.Password != req.RepeatedPassword {
		return nil, response.NewValidationError("Passwords do not match", "")
	}

	exists, err := s.userRepo.ExistsByEmail(ctx, req.Email)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to check email", err.Error())
	}
	if exists {
		return nil, response.NewAppError(response.ErrCodeAlreadyExists, "An account with this email already exists", "")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to hash password", err.Error())
	}

	user := &domain.User{
		FullName:     req.FullName,
		Email:        req.Email,
		PasswordHash: string(hash),
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		// A concurrent registration can slip past the existence check;
		// the unique index on email is the authority
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, response.NewAppError(response.ErrCodeAlreadyExists, "An account with this email already exists", "")
		}
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to create account", err.Error())
	}

	if s.metrics != nil {
		s.metrics.IncrementUserRegistered()
	}
	s.logger.Info("User registered", zap.String("user_id", user.ID.String()))

	return s.authResponse(user)
}

// Login verifies credentials and returns a signed token. Unknown email
// and wrong password produce the same error.
func (s *userServiceImpl) Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	user, err := s.userRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewUnauthorizedError("Invalid email or password", "")
		}
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to fetch account", err.Error())
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, response.NewUnauthorizedError("Invalid email or password", "")
	}

	return s.authResponse(user)
}

// Logout revokes the presented token for its remaining lifetime
func (s *userServiceImpl) Logout(ctx context.Context, token string) error {
	if err := s.tokens.RevokeToken(ctx, token); err != nil {
		if errors.Is(err, auth.ErrInvalidToken) {
			return response.NewUnauthorizedError("Invalid token", "")
		}
		return response.NewAppError(response.ErrCodeInternal, "Failed to revoke token", err.Error())
	}
	return nil
}

// CheckEmail reports whether an account exists for the email
func (s *userServiceImpl) CheckEmail(ctx context.Context, email string) (*dto.EmailCheckResponse, error) {
	exists, err := s.userRepo.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to check email", err.Error())
	}
	return &dto.EmailCheckResponse{Exists: exists}, nil
}

func (s *userServiceImpl) authResponse(user *domain.User) (*dto.AuthResponse, error) {
	token, err := s.tokens.GenerateToken(user.ID)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to issue token", err.Error())
	}
	return &dto.AuthResponse{
		Token:    token,
		UserID:   user.ID,
		FullName: user.FullName,
		Email:    user.Email,
	}, nil
}
