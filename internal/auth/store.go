// Copyright (c) 2026 Anicat. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import "context"

// UserRepository defines the data access contract for accounts.
type UserRepository interface {
	// FindByID returns the account with the given ID.
	//
	// Returns [apperr.NotFound] if the account does not exist.
	FindByID(ctx context.Context, id string) (*User, error)

	// FindByUsername returns the account with the exact username.
	//
	// Returns [apperr.NotFound] if the username is available.
	FindByUsername(ctx context.Context, username string) (*User, error)

	// Create persists a new account.
	//
	// Returns [apperr.Conflict] if the username is taken.
	Create(ctx context.Context, user *User) error
}

// AttemptGuard throttles repeated failed logins for one username.
type AttemptGuard interface {
	// Check returns [apperr.RateLimited] while the username is locked out.
	Check(ctx context.Context, username string) error

	// RecordFailure counts one failed login.
	RecordFailure(ctx context.Context, username string) error

	// Reset clears the failure count after a successful login.
	Reset(ctx context.Context, username string) error
}
