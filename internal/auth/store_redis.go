// Copyright (c) 2026 Anicat. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/taibuivan/anicat/internal/platform/apperr"
	"github.com/taibuivan/anicat/internal/platform/constants"
)

// RedisAttemptGuard implements [AttemptGuard] with one counter per username.
//
// The counter expires LoginFailureWindow after the first failure; later
// failures do not extend it. A nil guard allows every attempt.
type RedisAttemptGuard struct {
	client      redis.UniversalClient
	maxFailures int64
	window      time.Duration
}

// NewAttemptGuard creates a Redis-backed guard with the platform limits.
// It returns nil when client is nil.
func NewAttemptGuard(client redis.UniversalClient) *RedisAttemptGuard {
	if client == nil {
		return nil
	}
	return &RedisAttemptGuard{
		client:      client,
		maxFailures: constants.LoginMaxFailures,
		window:      constants.LoginFailureWindow,
	}
}

/*
Check rejects the attempt once the failure budget is spent.

Returns:
  - error: apperr.RateLimited carrying the seconds until the counter expires
*/
func (guard *RedisAttemptGuard) Check(context context.Context, username string) error {
	if guard == nil {
		return nil
	}

	key := failureKey(username)

	count, err := guard.client.Get(context, key).Int64()
	if errors.Is(err, redis.Nil) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("redis_login_guard_get_failed: %w", err)
	}

	if count < guard.maxFailures {
		return nil
	}

	ttl, err := guard.client.TTL(context, key).Result()
	if err != nil || ttl <= 0 {
		ttl = guard.window
	}

	return apperr.RateLimited(int(math.Ceil(ttl.Seconds())))
}

/*
RecordFailure increments the counter.

Description: INCR and EXPIRE NX run in one MULTI/EXEC, so the counter can
never exist without a TTL. NX keeps the window anchored at the first failure.
*/
func (guard *RedisAttemptGuard) RecordFailure(context context.Context, username string) error {
	if guard == nil {
		return nil
	}

	key := failureKey(username)

	_, err := guard.client.TxPipelined(context, func(pipe redis.Pipeliner) error {
		pipe.Incr(context, key)
		pipe.ExpireNX(context, key, guard.window)
		return nil
	})
	if err != nil {
		return fmt.Errorf("redis_login_guard_record_failed: %w", err)
	}

	return nil
}

// Reset deletes the counter.
func (guard *RedisAttemptGuard) Reset(context context.Context, username string) error {
	if guard == nil {
		return nil
	}

	if err := guard.client.Del(context, failureKey(username)).Err(); err != nil {
		return fmt.Errorf("redis_login_guard_reset_failed: %w", err)
	}

	return nil
}

// failureKey lowercases the username so case variants share one budget.
func failureKey(username string) string {
	return constants.RedisPrefixLoginFailures + strings.ToLower(username)
}
