// Copyright (c) 2026 Anicat. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package ctxutil_test

import (
	"context"
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/anicat/internal/platform/ctxutil"
	"github.com/taibuivan/anicat/internal/platform/sec"
)

/*
TestContext_RequestID verifies that Request IDs can be injected and retrieved.
*/
func TestContext_RequestID(t *testing.T) {
	ctx := context.Background()
	requestID := "test-request-id"

	// 1. Initially should be empty
	assert.Empty(t, ctxutil.GetRequestID(ctx))

	// 2. Inject and retrieve
	ctx = ctxutil.WithRequestID(ctx, requestID)
	assert.Equal(t, requestID, ctxutil.GetRequestID(ctx))
}

/*
TestContext_Logger verifies that a custom logger can be stored in context.
*/
func TestContext_Logger(t *testing.T) {
	ctx := context.Background()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	// 1. Initially should return the default logger
	assert.Equal(t, slog.Default(), ctxutil.GetLogger(ctx))

	// 2. Inject and retrieve
	ctx = ctxutil.WithLogger(ctx, logger)
	assert.Equal(t, logger, ctxutil.GetLogger(ctx))
}

/*
TestContext_AuthUser verifies that AuthClaims can be stored in context.
*/
func TestContext_AuthUser(t *testing.T) {
	ctx := context.Background()
	claims := &sec.AuthClaims{
		UserID:   "user-123",
		Username: "admin",
		Role:     "admin",
	}

	// 1. Initially should be nil
	assert.Nil(t, ctxutil.GetAuthUser(ctx))

	// 2. Inject and retrieve
	ctx = ctxutil.WithAuthUser(ctx, claims)
	retrieved := ctxutil.GetAuthUser(ctx)

	assert.NotNil(t, retrieved)
	assert.Equal(t, "user-123", retrieved.UserID)
	assert.Equal(t, "admin", retrieved.Username)
	assert.Equal(t, "admin", retrieved.Role)
}

/*
TestContext_ExposeErrors verifies the debug exposure flag defaults to false.
*/
func TestContext_ExposeErrors(t *testing.T) {
	ctx := context.Background()

	// 1. Unmarked requests never expose internals
	assert.False(t, ctxutil.ExposeErrors(ctx))

	// 2. Explicit marking is honored both ways
	assert.True(t, ctxutil.ExposeErrors(ctxutil.WithExposeErrors(ctx, true)))
	assert.False(t, ctxutil.ExposeErrors(ctxutil.WithExposeErrors(ctx, false)))
}

/*
TestContext_AuthFailure verifies the rejected-token reason round trip.
*/
func TestContext_AuthFailure(t *testing.T) {
	ctx := context.Background()
	assert.Empty(t, ctxutil.GetAuthFailure(ctx))

	ctx = ctxutil.WithAuthFailure(ctx, "Not authorized, token failed")
	assert.Equal(t, "Not authorized, token failed", ctxutil.GetAuthFailure(ctx))
}

/*
TestContext_LookupLogger distinguishes an attached logger from the default.
*/
func TestContext_LookupLogger(t *testing.T) {
	_, ok := ctxutil.LookupLogger(context.Background())
	assert.False(t, ok)

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	found, ok := ctxutil.LookupLogger(ctxutil.WithLogger(context.Background(), logger))
	assert.True(t, ok)
	assert.Same(t, logger, found)
}
