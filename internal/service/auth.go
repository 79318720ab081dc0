// Package service implements the application logic between the HTTP
// handlers and the store.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/banglakobita/kobita-server/internal/auth"
	"github.com/banglakobita/kobita-server/internal/domain"
	domainerrors "github.com/banglakobita/kobita-server/internal/errors"
	"github.com/banglakobita/kobita-server/internal/id"
	"github.com/banglakobita/kobita-server/internal/ratelimit"
	"github.com/banglakobita/kobita-server/internal/store"
	"github.com/banglakobita/kobita-server/internal/validation"
)

// AuthService handles registration, login and token verification.
type AuthService struct {
	store        store.Store
	tokenService *auth.TokenService
	loginLimiter *ratelimit.KeyedRateLimiter
	validator    *validation.Validator
	logger       *slog.Logger
}

// NewAuthService creates a new authentication service.
func NewAuthService(
	store store.Store,
	tokenService *auth.TokenService,
	loginLimiter *ratelimit.KeyedRateLimiter,
	validator *validation.Validator,
	logger *slog.Logger,
) *AuthService {
	return &AuthService{
		store:        store,
		tokenService: tokenService,
		loginLimiter: loginLimiter,
		validator:    validator,
		logger:       logger,
	}
}

// RegisterRequest contains user registration data.
type RegisterRequest struct {
	Username string `json:"username" validate:"required,min=3,max=32"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=1024"`
	FullName string `json:"full_name" validate:"max=128"`
}

// LoginRequest contains user credentials.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
	ClientIP string `json:"-"` // Extracted from request by handler
}

// AuthResponse contains the bearer token and user data.
type AuthResponse struct {
	User  *domain.User `json:"user"`
	Token string       `json:"token"`
}

// Register creates a new user account. The very first account becomes
// admin; every later one starts as a viewer and is promoted by an admin.
func (s *AuthService) Register(ctx context.Context, req RegisterRequest) (*AuthResponse, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	passwordHash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	userID, err := id.Generate("user")
	if err != nil {
		return nil, fmt.Errorf("generate user ID: %w", err)
	}

	count, err := s.store.CountUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("count users: %w", err)
	}
	role := domain.RoleViewer
	if count == 0 {
		role = domain.RoleAdmin
	}

	user := &domain.User{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: passwordHash,
		Role:         role,
		IsActive:     true,
		FullName:     req.FullName,
	}
	user.ID = userID
	user.InitTimestamps()

	if err := s.store.CreateUser(ctx, user); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return nil, domainerrors.Conflict("username or email already in use")
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	token, err := s.tokenService.GenerateToken(user)
	if err != nil {
		return nil, fmt.Errorf("generate token: %w", err)
	}

	s.logger.Info("user registered",
		"user_id", userID,
		"username", user.Username,
		"role", user.Role,
	)

	return &AuthResponse{User: user, Token: token}, nil
}

// Login authenticates a user and issues a bearer token. Failures report
// the same error whether the email is unknown or the password is wrong.
func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*AuthResponse, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	if req.ClientIP != "" && !s.loginLimiter.Allow(req.ClientIP) {
		return nil, domainerrors.RateLimited("too many login attempts, try again later")
	}

	user, err := s.store.GetUserByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, domainerrors.InvalidCredentials("invalid email or password")
		}
		return nil, fmt.Errorf("lookup user: %w", err)
	}

	valid, err := auth.VerifyPassword(user.PasswordHash, req.Password)
	if err != nil {
		return nil, fmt.Errorf("verify password: %w", err)
	}
	if !valid {
		return nil, domainerrors.InvalidCredentials("invalid email or password")
	}

	// Checked after password verification so a wrong-password guess
	// cannot tell an active account from a disabled one.
	if !user.IsActive {
		s.logger.Info("login rejected for disabled account", "user_id", user.ID)
		return nil, domainerrors.InvalidCredentials("invalid email or password")
	}

	token, err := s.tokenService.GenerateToken(user)
	if err != nil {
		return nil, fmt.Errorf("generate token: %w", err)
	}

	s.logger.Info("user logged in", "user_id", user.ID)

	return &AuthResponse{User: user, Token: token}, nil
}

// VerifyToken validates a bearer token and returns its claims.
// Used by authentication middleware.
func (s *AuthService) VerifyToken(tokenString string) (*auth.Claims, error) {
	claims, err := s.tokenService.VerifyToken(tokenString)
	if err != nil {
		return nil, domainerrors.Unauthorized("invalid or expired token").WithCause(err)
	}
	return claims, nil
}

// GetUser returns the account behind a verified token, for /auth/verify.
func (s *AuthService) GetUser(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.store.GetUser(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, domainerrors.Unauthorized("account no longer exists")
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return user, nil
}

// UpdateUserRequest contains the account fields an admin may change.
type UpdateUserRequest struct {
	Role     *domain.Role `json:"role" validate:"omitempty,oneof=admin viewer"`
	IsActive *bool        `json:"is_active"`
	FullName *string      `json:"full_name" validate:"omitempty,max=128"`
	Bio      *string      `json:"bio" validate:"omitempty,max=1024"`
}

// ListUsers returns every account, for admin management.
func (s *AuthService) ListUsers(ctx context.Context) ([]*domain.User, error) {
	return s.store.ListUsers(ctx)
}

// UpdateUser changes an account's role, active flag or profile fields.
// The acting admin cannot demote or disable their own account, so the
// system always keeps at least one working admin.
func (s *AuthService) UpdateUser(ctx context.Context, actorID, userID string, req UpdateUserRequest) (*domain.User, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	if actorID == userID && (req.Role != nil || req.IsActive != nil) {
		return nil, domainerrors.Validation("cannot change your own role or active status")
	}

	user, err := s.store.GetUser(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, domainerrors.NotFound("user not found")
		}
		return nil, fmt.Errorf("get user: %w", err)
	}

	if req.Role != nil {
		user.Role = *req.Role
	}
	if req.IsActive != nil {
		user.IsActive = *req.IsActive
	}
	if req.FullName != nil {
		user.FullName = *req.FullName
	}
	if req.Bio != nil {
		user.Bio = *req.Bio
	}
	user.Touch()

	if err := s.store.UpdateUser(ctx, user); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, domainerrors.NotFound("user not found")
		}
		return nil, fmt.Errorf("update user: %w", err)
	}

	s.logger.Info("user updated", "user_id", userID, "actor_id", actorID)
	return user, nil
}
