// Copyright (c) 2026 Anicat. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/taibuivan/anicat/internal/platform/apperr"
	"github.com/taibuivan/anicat/internal/platform/constants"
	"github.com/taibuivan/anicat/internal/platform/sec"
	"github.com/taibuivan/anicat/internal/platform/validate"
	"github.com/taibuivan/anicat/pkg/uuid"
)

// errInvalidCredentials never says which half of the pair was wrong.
var errInvalidCredentials = apperr.BadRequest("Invalid credentials")

// # Contracts & Types

// TokenProvider signs and verifies access tokens. [*sec.TokenService] is the
// production implementation.
type TokenProvider interface {
	GenerateAccessToken(userID, username, role string, timeToLive time.Duration) (string, error)
	VerifyToken(token string) (*sec.AuthClaims, error)
}

// Service implements account and token use cases.
type Service struct {
	users  UserRepository
	tokens TokenProvider
	guard  AttemptGuard
	logger *slog.Logger
}

// NewService constructs a new auth [Service]. guard may be nil.
func NewService(users UserRepository, tokens TokenProvider, guard AttemptGuard, logger *slog.Logger) *Service {
	if guard == nil {
		guard = (*RedisAttemptGuard)(nil)
	}
	return &Service{
		users:  users,
		tokens: tokens,
		guard:  guard,
		logger: logger,
	}
}

// Credentials is the body of login and register requests.
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// # Registration Flow

/*
Register creates a regular user and signs them in.

Description: The role is always [sec.RoleUser]; admins are created with the
seed-admin command.

Returns:
  - *Session: identity plus a fresh access token
  - error: Validation or Conflict ("User already exists")
*/
func (service *Service) Register(ctx context.Context, input Credentials) (*Session, error) {
	user, err := service.createUser(ctx, input, sec.RoleUser)
	if err != nil {
		return nil, err
	}

	service.logger.Info("user_registered",
		slog.String("user_id", user.ID),
		slog.String("username", user.Username),
	)

	return service.issue(user)
}

/*
EnsureAdmin creates an admin account unless the username is already taken.

Returns:
  - bool: true when a new account was created
  - error: Validation or storage errors
*/
func (service *Service) EnsureAdmin(ctx context.Context, input Credentials) (bool, error) {
	user, err := service.createUser(ctx, input, sec.RoleAdmin)
	if apperr.IsConflict(err) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	service.logger.Info("admin_created", slog.String("user_id", user.ID), slog.String("username", user.Username))
	return true, nil
}

// # Authentication Flow

/*
Login checks a username and password pair.

Description: Unknown users and wrong passwords fail identically and both
count towards the per-username lock-out. A guard that cannot reach Redis is
logged and ignored.

Returns:
  - *Session: identity plus a fresh access token
  - error: BadRequest ("Invalid credentials") or RateLimited
*/
func (service *Service) Login(ctx context.Context, input Credentials) (*Session, error) {
	username := strings.TrimSpace(input.Username)
	if username == "" || input.Password == "" {
		return nil, errInvalidCredentials
	}

	if err := service.guard.Check(ctx, username); err != nil {
		if apperr.IsAppError(err) {
			return nil, err
		}
		service.logger.Warn("login_guard_unavailable", slog.String("error", err.Error()))
	}

	user, err := service.users.FindByUsername(ctx, username)
	if err != nil && !apperr.IsNotFound(err) {
		return nil, err
	}

	if user == nil || !sec.PasswordMatches(input.Password, user.PasswordHash) {
		if err := service.guard.RecordFailure(ctx, username); err != nil {
			service.logger.Warn("login_guard_unavailable", slog.String("error", err.Error()))
		}
		service.logger.Info("login_failed", slog.String("username", username))
		return nil, errInvalidCredentials
	}

	if err := service.guard.Reset(ctx, username); err != nil {
		service.logger.Warn("login_guard_unavailable", slog.String("error", err.Error()))
	}

	service.logger.Info("login_succeeded", slog.String("user_id", user.ID))
	return service.issue(user)
}

/*
VerifyToken resolves a bearer token into claims for the authentication
middleware.

Description: The signature, issuer and expiry are checked first; then the
subject must still exist. Username and role come from the stored account, so
a demoted admin loses access immediately.

Returns:
  - *sec.AuthClaims: the caller identity
  - error: sec.ErrInvalidToken for any rejected token, or storage errors
*/
func (service *Service) VerifyToken(ctx context.Context, token string) (*sec.AuthClaims, error) {
	claims, err := service.tokens.VerifyToken(token)
	if err != nil {
		return nil, err
	}

	user, err := service.users.FindByID(ctx, claims.UserID)
	if apperr.IsNotFound(err) {
		return nil, fmt.Errorf("%w: subject %s not found", sec.ErrInvalidToken, claims.UserID)
	}
	if err != nil {
		return nil, err
	}

	claims.Username = user.Username
	claims.Role = string(user.Role)
	return claims, nil
}

// Me returns the account behind an authenticated request.
func (service *Service) Me(ctx context.Context, userID string) (*User, error) {
	return service.users.FindByID(ctx, userID)
}

// # Internal Helpers

func (service *Service) createUser(ctx context.Context, input Credentials, role sec.UserRole) (*User, error) {
	username := strings.TrimSpace(input.Username)

	validator := &validate.Validator{}
	validator.Required(FieldUsername, username).MaxLen(FieldUsername, username, MaxUsernameLength)
	validator.Required(FieldPassword, input.Password).MinLen(FieldPassword, input.Password, MinPasswordLength)
	validator.Custom(FieldPassword, len(input.Password) > MaxPasswordLength, fmt.Sprintf("Maximum %d bytes", MaxPasswordLength))
	if err := validator.Err(); err != nil {
		return nil, err
	}

	if _, err := service.users.FindByUsername(ctx, username); err == nil {
		return nil, apperr.Conflict("User already exists")
	} else if !apperr.IsNotFound(err) {
		return nil, err
	}

	hash, err := sec.HashPassword(input.Password)
	if err != nil {
		return nil, apperr.Internal(err)
	}

	now := time.Now().UTC()
	user := &User{
		ID:           uuid.New(),
		Username:     username,
		PasswordHash: hash,
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := service.users.Create(ctx, user); err != nil {
		if apperr.IsConflict(err) {
			return nil, apperr.Conflict("User already exists")
		}
		return nil, err
	}

	return user, nil
}

func (service *Service) issue(user *User) (*Session, error) {
	token, err := service.tokens.GenerateAccessToken(user.ID, user.Username, string(user.Role), constants.AccessTokenTTL)
	if err != nil {
		return nil, apperr.Internal(err)
	}

	return &Session{
		ID:       user.ID,
		Username: user.Username,
		Role:     user.Role,
		Token:    token,
	}, nil
}
