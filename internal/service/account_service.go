package service

import (
	"context"
	"errors"
	"fmt"

	"account_service/internal/model"
	"account_service/internal/repository"
	"account_service/internal/utils"

	"go.uber.org/zap"
)

var (
	ErrDuplicateMobileNumber = errors.New("user with this mobile number already exists")
	ErrInvalidCredentials    = errors.New("invalid mobile number or password")
	ErrUserNotFound          = errors.New("user not found")
)

// TokenIssuer signs session tokens for a user id.
type TokenIssuer interface {
	GenerateToken(userID string) (string, error)
}

// AccountService provides registration, login and profile operations
type AccountService interface {
	Register(ctx context.Context, req model.RegisterRequest) (*model.User, string, error)
	Login(ctx context.Context, mobileNumber, password string) (*model.User, string, error)
	GetProfile(ctx context.Context, userID string) (*model.User, error)
	UpdateProfile(ctx context.Context, userID string, update model.ProfileUpdate) (*model.User, error)
}

type accountService struct {
	userRepo repository.UserRepository
	tokens   TokenIssuer
	logger   *zap.Logger
}

// NewAccountService creates a new AccountService
func NewAccountService(userRepo repository.UserRepository, tokens TokenIssuer, logger *zap.Logger) AccountService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &accountService{
		userRepo: userRepo,
		tokens:   tokens,
		logger:   logger,
	}
}

// Register creates a new user account and returns a session token for it.
func (s *accountService) Register(ctx context.Context, req model.RegisterRequest) (*model.User, string, error) {
	_, err := s.userRepo.FindByMobileNumber(ctx, req.MobileNumber)
	switch {
	case err == nil:
		return nil, "", ErrDuplicateMobileNumber
	case !errors.Is(err, repository.ErrUserNotFound):
		return nil, "", fmt.Errorf("failed to check existing user: %w", err)
	}

	hashedPassword, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, "", err
	}

	user := &model.User{
		Name:         req.Name,
		Email:        req.Email,
		MobileNumber: req.MobileNumber,
		PasswordHash: hashedPassword,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		// Lost a race with a concurrent registration.
		if errors.Is(err, repository.ErrDuplicateMobileNumber) {
			return nil, "", ErrDuplicateMobileNumber
		}
		return nil, "", fmt.Errorf("failed to create user in repository: %w", err)
	}

	token, err := s.tokens.GenerateToken(user.ID)
	if err != nil {
		s.logger.Error("user created but token generation failed", zap.String("user_id", user.ID), zap.Error(err))
		return user, "", fmt.Errorf("user created, but failed to generate token: %w", err)
	}

	s.logger.Info("user registered", zap.String("user_id", user.ID))
	return user, token, nil
}

// Login authenticates a user by mobile number and password. Unknown numbers
// and wrong passwords both yield ErrInvalidCredentials.
func (s *accountService) Login(ctx context.Context, mobileNumber, password string) (*model.User, string, error) {
	user, err := s.userRepo.FindByMobileNumber(ctx, mobileNumber)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", fmt.Errorf("error finding user by mobile number: %w", err)
	}

	if !utils.CheckPasswordHash(password, user.PasswordHash) {
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.tokens.GenerateToken(user.ID)
	if err != nil {
		return nil, "", fmt.Errorf("failed to generate token: %w", err)
	}

	s.logger.Info("user logged in", zap.String("user_id", user.ID))
	return user, token, nil
}

// GetProfile returns the stored record of the authenticated user.
func (s *accountService) GetProfile(ctx context.Context, userID string) (*model.User, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to load profile: %w", err)
	}
	return user, nil
}

// UpdateProfile applies the allow-listed fields of update to the
// authenticated user's record.
func (s *accountService) UpdateProfile(ctx context.Context, userID string, update model.ProfileUpdate) (*model.User, error) {
	if update.IsEmpty() {
		return s.GetProfile(ctx, userID)
	}

	changes := model.UserChanges{
		Name:         update.Name,
		Email:        update.Email,
		MobileNumber: update.MobileNumber,
	}

	if update.MobileNumber != nil {
		existing, err := s.userRepo.FindByMobileNumber(ctx, *update.MobileNumber)
		switch {
		case err == nil && existing.ID != userID:
			return nil, ErrDuplicateMobileNumber
		case err != nil && !errors.Is(err, repository.ErrUserNotFound):
			return nil, fmt.Errorf("failed to check existing user: %w", err)
		}
	}

	if update.Password != nil {
		hashedPassword, err := utils.HashPassword(*update.Password)
		if err != nil {
			return nil, err
		}
		changes.PasswordHash = &hashedPassword
	}

	user, err := s.userRepo.Update(ctx, userID, changes)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrUserNotFound):
			return nil, ErrUserNotFound
		case errors.Is(err, repository.ErrDuplicateMobileNumber):
			return nil, ErrDuplicateMobileNumber
		}
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}

	s.logger.Info("profile updated", zap.String("user_id", user.ID))
	return user, nil
}
