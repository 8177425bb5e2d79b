package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/quizforge/quizforge-backend/internal/model"
	"github.com/quizforge/quizforge-backend/internal/repository"
	"github.com/rs/zerolog"
)

// ErrAdminImmutable is returned for status changes or deletion attempts
// against administrator accounts.
var ErrAdminImmutable = errors.New("administrator accounts cannot be modified or deleted")

// SeedAdminUsername is the account guaranteed to exist after startup.
const SeedAdminUsername = "admin"

// UserService handles account management.
type UserService struct {
	userRepo *repository.UserRepository
	auth     *AuthService
	log      zerolog.Logger
}

// NewUserService creates a new UserService.
func NewUserService(userRepo *repository.UserRepository, auth *AuthService, log zerolog.Logger) *UserService {
	return &UserService{
		userRepo: userRepo,
		auth:     auth,
		log:      log.With().Str("component", "user_service").Logger(),
	}
}

// EnsureSeedAdmin creates the seed admin account if it does not exist.
// Called once at startup, before the server accepts traffic.
func (s *UserService) EnsureSeedAdmin(ctx context.Context, password string) error {
	_, err := s.userRepo.GetByUsername(ctx, SeedAdminUsername)
	if err == nil {
		return nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return fmt.Errorf("look up seed admin: %w", err)
	}

	hash, err := s.auth.HashPassword(password)
	if err != nil {
		return fmt.Errorf("hash seed admin password: %w", err)
	}

	admin := &model.User{
		Username:     SeedAdminUsername,
		PasswordHash: hash,
		Role:         model.RoleAdmin,
		Status:       model.UserStatusActive,
	}
	if err := s.userRepo.Create(ctx, admin); err != nil {
		// A concurrent boot may have created it first.
		if errors.Is(err, repository.ErrDuplicateUsername) {
			return nil
		}
		return fmt.Errorf("create seed admin: %w", err)
	}

	s.log.Info().Msg("Seed admin account created")
	return nil
}

// Register creates a regular active user account.
func (s *UserService) Register(ctx context.Context, username, password string) (*model.User, error) {
	hash, err := s.auth.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		Username:     username,
		PasswordHash: hash,
		Role:         model.RoleUser,
		Status:       model.UserStatusActive,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Login verifies credentials, rejects disabled accounts, stamps last_login
// and returns the user and a signed token.
func (s *UserService) Login(ctx context.Context, username, password string) (*model.User, string, error) {
	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", err
	}

	if user.Status == model.UserStatusDisabled {
		return nil, "", ErrAccountDisabled
	}

	if err := s.auth.CheckPassword(user.PasswordHash, password); err != nil {
		return nil, "", ErrInvalidCredentials
	}

	if err := s.userRepo.UpdateLastLogin(ctx, user.ID); err != nil {
		s.log.Warn().Err(err).Int("user_id", user.ID).Msg("failed to stamp last login")
	}

	token, err := s.auth.GenerateToken(user)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// GetByID retrieves one user.
func (s *UserService) GetByID(ctx context.Context, id int) (*model.User, error) {
	return s.userRepo.GetByID(ctx, id)
}

// List retrieves all users, newest first.
func (s *UserService) List(ctx context.Context) ([]model.User, error) {
	return s.userRepo.List(ctx)
}

// Create adds an account with an explicit role (admin operation).
func (s *UserService) Create(ctx context.Context, username, password string, role model.Role) (*model.User, error) {
	hash, err := s.auth.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		Username:     username,
		PasswordHash: hash,
		Role:         role,
		Status:       model.UserStatusActive,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// UpdateStatus enables or disables a regular account. Admin accounts are
// immune.
func (s *UserService) UpdateStatus(ctx context.Context, id int, status model.UserStatus) (*model.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user.Role == model.RoleAdmin {
		return nil, ErrAdminImmutable
	}

	if err := s.userRepo.UpdateStatus(ctx, id, status); err != nil {
		return nil, err
	}
	user.Status = status
	return user, nil
}

// Delete removes a regular account. Admin accounts are immune.
func (s *UserService) Delete(ctx context.Context, id int) error {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if user.Role == model.RoleAdmin {
		return ErrAdminImmutable
	}
	return s.userRepo.Delete(ctx, id)
}
