// Copyright (c) 2026 Anicat. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/anicat/internal/auth"
	"github.com/taibuivan/anicat/internal/platform/apperr"
	"github.com/taibuivan/anicat/internal/platform/constants"
)

func newRedisGuard(t *testing.T) (*auth.RedisAttemptGuard, *miniredis.Miniredis) {
	t.Helper()

	server := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: server.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return auth.NewAttemptGuard(client), server
}

/*
TestRedisAttemptGuard_LockOut blocks a username after the failure budget and
lets it through again once the window has passed.
*/
func TestRedisAttemptGuard_LockOut(t *testing.T) {
	guard, server := newRedisGuard(t)
	ctx := context.Background()
	key := constants.RedisPrefixLoginFailures + "mika"

	for range constants.LoginMaxFailures {
		require.NoError(t, guard.Check(ctx, "mika"))
		require.NoError(t, guard.RecordFailure(ctx, "Mika"))
	}

	err := guard.Check(ctx, "MIKA")
	appError := apperr.As(err)
	require.NotNil(t, appError)
	assert.Equal(t, http.StatusTooManyRequests, appError.HTTPStatus)
	assert.Contains(t, appError.Message, "900s")

	value, err := server.Get(key)
	require.NoError(t, err)
	assert.Equal(t, "5", value)
	assert.Equal(t, constants.LoginFailureWindow, server.TTL(key))

	server.FastForward(constants.LoginFailureWindow)

	assert.False(t, server.Exists(key))
	assert.NoError(t, guard.Check(ctx, "mika"))
}

/*
TestRedisAttemptGuard_WindowAnchored keeps the expiry of the first failure
when more failures arrive.
*/
func TestRedisAttemptGuard_WindowAnchored(t *testing.T) {
	guard, server := newRedisGuard(t)
	ctx := context.Background()
	key := constants.RedisPrefixLoginFailures + "mika"

	require.NoError(t, guard.RecordFailure(ctx, "mika"))
	server.FastForward(10 * time.Minute)
	require.NoError(t, guard.RecordFailure(ctx, "mika"))

	assert.Equal(t, constants.LoginFailureWindow-10*time.Minute, server.TTL(key))
}

/*
TestRedisAttemptGuard_CounterWithoutTTL gives a counter left without an
expiry one on the next failure, so it cannot lock the user out forever.
*/
func TestRedisAttemptGuard_CounterWithoutTTL(t *testing.T) {
	guard, server := newRedisGuard(t)
	ctx := context.Background()
	key := constants.RedisPrefixLoginFailures + "mika"

	require.NoError(t, server.Set(key, "9"))
	require.Zero(t, server.TTL(key))

	require.NoError(t, guard.RecordFailure(ctx, "mika"))

	assert.Equal(t, constants.LoginFailureWindow, server.TTL(key))
	server.FastForward(constants.LoginFailureWindow)
	assert.NoError(t, guard.Check(ctx, "mika"))
}

/*
TestRedisAttemptGuard_Reset clears the counter after a successful login.
*/
func TestRedisAttemptGuard_Reset(t *testing.T) {
	guard, server := newRedisGuard(t)
	ctx := context.Background()

	for range constants.LoginMaxFailures {
		require.NoError(t, guard.RecordFailure(ctx, "mika"))
	}
	require.Error(t, guard.Check(ctx, "mika"))

	require.NoError(t, guard.Reset(ctx, "Mika"))

	assert.False(t, server.Exists(constants.RedisPrefixLoginFailures+"mika"))
	assert.NoError(t, guard.Check(ctx, "mika"))
}

/*
TestRedisAttemptGuard_Unavailable reports plain errors, not AppErrors, so the
login flow can fail open.
*/
func TestRedisAttemptGuard_Unavailable(t *testing.T) {
	guard, server := newRedisGuard(t)
	server.Close()

	err := guard.Check(context.Background(), "mika")
	require.Error(t, err)
	assert.Nil(t, apperr.As(err))

	assert.Error(t, guard.RecordFailure(context.Background(), "mika"))
}
