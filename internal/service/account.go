package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/hongminglow/attendance-be/internal/auth"
	"github.com/hongminglow/attendance-be/internal/models"
	"github.com/hongminglow/attendance-be/internal/storage"
)

// AccountService covers login, self-registration and admin approval.
type AccountService struct {
	users   storage.UserStore
	hasher  *auth.Hasher
	timeout time.Duration
	logger  *slog.Logger
}

func NewAccountService(users storage.UserStore, hasher *auth.Hasher, timeout time.Duration, logger *slog.Logger) *AccountService {
	return &AccountService{
		users:   users,
		hasher:  hasher,
		timeout: timeout,
		logger:  logger,
	}
}

// Authenticate resolves the identity for an email/password pair.
// A pending employee with correct credentials gets ErrAuthorization, never ErrAuthentication.
func (s *AccountService) Authenticate(ctx context.Context, email, password string) (models.User, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return models.User{}, newError(ErrValidation, "email and password are required")
	}

	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			s.logger.Warn("login failed: unknown email", "email", email)
			return models.User{}, newError(ErrAuthentication, "invalid credentials")
		}
		s.logger.Error("login failed: fetch user", "email", email, "error", err)
		return models.User{}, storageError("failed to fetch user", err)
	}
	if !s.hasher.Check(password, user.Password) {
		s.logger.Warn("login failed: password mismatch", "email", email)
		return models.User{}, newError(ErrAuthentication, "invalid credentials")
	}
	if user.Pending() {
		s.logger.Info("login refused: approval pending", "user_id", user.ID)
		return models.User{}, newError(ErrAuthorization, "admin approval pending")
	}

	s.logger.Info("login successful", "user_id", user.ID, "role", user.Role)
	return user, nil
}

// Register creates a pending employee account together with its employee row.
func (s *AccountService) Register(ctx context.Context, email, password string) (models.User, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return models.User{}, newError(ErrValidation, "email and password are required")
	}

	stored, err := s.hasher.Hash(password)
	if err != nil {
		s.logger.Error("register failed: hash password", "email", email, "error", err)
		return models.User{}, &Error{Kind: ErrStorage, Message: "failed to hash password", Err: err}
	}

	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	created, err := s.users.CreateEmployeeUser(ctx, models.User{
		Email:    email,
		Password: stored,
		Role:     models.RoleEmployee,
		Approved: false,
	})
	if err != nil {
		if errors.Is(err, storage.ErrAlreadyExists) {
			return models.User{}, newError(ErrConflict, "email already registered")
		}
		s.logger.Error("register failed: create user", "email", email, "error", err)
		return models.User{}, storageError("failed to create user", err)
	}

	s.logger.Info("employee registered", "user_id", created.ID, "email", email)
	return created, nil
}

// ListPending returns employees awaiting approval in registration order.
func (s *AccountService) ListPending(ctx context.Context) ([]models.PendingUser, error) {
	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	pending, err := s.users.ListPending(ctx)
	if err != nil {
		s.logger.Error("list pending failed", "error", err)
		return nil, storageError("failed to list pending users", err)
	}
	return pending, nil
}

// Approve unlocks login for userID. Unknown or already approved ids succeed without change.
func (s *AccountService) Approve(ctx context.Context, userID int64) error {
	if userID <= 0 {
		return newError(ErrValidation, "user_id is required")
	}

	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	changed, err := s.users.Approve(ctx, userID)
	if err != nil {
		s.logger.Error("approve failed", "user_id", userID, "error", err)
		return storageError("failed to approve user", err)
	}
	if !changed {
		s.logger.Warn("approve changed no rows", "user_id", userID)
		return nil
	}
	s.logger.Info("user approved", "user_id", userID)
	return nil
}

// EnsureAdmin seeds an approved admin account if the email is not taken yet.
func (s *AccountService) EnsureAdmin(ctx context.Context, email, password string) error {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return newError(ErrValidation, "admin email and password are required")
	}
	stored, err := s.hasher.Hash(password)
	if err != nil {
		return &Error{Kind: ErrStorage, Message: "failed to hash password", Err: err}
	}

	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	created, err := s.users.EnsureUser(ctx, models.User{
		Email:    email,
		Password: stored,
		Role:     models.RoleAdmin,
		Approved: true,
	})
	if err != nil {
		return storageError("failed to seed admin", err)
	}
	if !created {
		s.logger.Warn("admin seed skipped: email already registered", "email", email)
		return nil
	}
	s.logger.Info("admin account seeded", "email", email)
	return nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
