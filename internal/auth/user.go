// Copyright (c) 2026 Anicat. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package auth implements accounts and access tokens.

It registers users, checks credentials, issues RS256 access tokens and
resolves bearer tokens back into an identity for the authentication
middleware. Failed logins are throttled per username when Redis is available.
*/
package auth

import (
	"time"

	"github.com/taibuivan/anicat/internal/platform/sec"
)

// # Domain Entities

// User is an account that can sign in. Catalog writes require [sec.RoleAdmin].
type User struct {
	ID           string       `json:"id"`
	Username     string       `json:"username"`
	PasswordHash string       `json:"-"`
	Role         sec.UserRole `json:"role"`
	CreatedAt    time.Time    `json:"createdAt"`
	UpdatedAt    time.Time    `json:"updatedAt"`
}

// Session is returned by login and register.
type Session struct {
	ID       string       `json:"id"`
	Username string       `json:"username"`
	Role     sec.UserRole `json:"role"`
	Token    string       `json:"token"`
}

// # Field Identifiers

const (
	FieldUsername = "username"
	FieldPassword = "password"
)

// # Constraints

const (
	// MaxUsernameLength matches the users.account.username column.
	MaxUsernameLength = 64

	// MinPasswordLength applies to new passwords only.
	MinPasswordLength = 8

	// MaxPasswordLength is the bcrypt input limit in bytes.
	MaxPasswordLength = sec.MaxPasswordBytes
)
