// Copyright (c) 2026 Anicat. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

const (
	// PasswordCost is the bcrypt work factor for stored account passwords.
	PasswordCost = 10

	// MaxPasswordBytes is the longest input bcrypt accepts. Registration
	// rejects anything longer so no password is silently truncated.
	MaxPasswordBytes = 72
)

// ErrPasswordTooLong is returned by [HashPassword] for inputs over [MaxPasswordBytes].
var ErrPasswordTooLong = errors.New("sec: password exceeds 72 bytes")

/*
HashPassword derives the stored bcrypt hash of an account password.

Description: the length is counted in bytes, not runes, because that is what
bcrypt consumes. Callers validate first and report [MaxPasswordBytes] to the
user; this check only guards other entry points such as the seed command.
*/
func HashPassword(password string) (string, error) {
	if len(password) > MaxPasswordBytes {
		return "", ErrPasswordTooLong
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), PasswordCost)
	if err != nil {
		return "", fmt.Errorf("sec: failed to hash password: %w", err)
	}
	return string(hashed), nil
}

// PasswordMatches reports whether password produces storedHash. A malformed
// hash never matches.
func PasswordMatches(password, storedHash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(storedHash), []byte(password)) == nil
}
