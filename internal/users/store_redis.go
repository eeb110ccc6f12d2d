// Copyright (c) 2026 Clipstream. All rights reserved.

package users

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/clipstream/api/internal/platform/constants"
)

// RedisSignupGuard implements [SignupGuard] with short-lived SETNX claims.
//
// Two concurrent registrations for the same normalized email or username
// both pass the application-level uniqueness read; the guard serializes
// them so only one proceeds to the insert. The TTL bounds how long a
// crashed request can hold a claim.
type RedisSignupGuard struct {
	client *redis.Client
}

// NewSignupGuard creates a Redis-backed signup guard.
func NewSignupGuard(client *redis.Client) *RedisSignupGuard {
	return &RedisSignupGuard{client: client}
}

/*
Acquire claims every identity key with SETNX under a shared TTL.

Description: Claims are all-or-nothing. If any key is already held, the
keys claimed by this call are released before returning false.

Parameters:
  - context: context.Context
  - keys: ...string (normalized email and username)

Returns:
  - bool: true when all keys were claimed
  - error: Redis command failures
*/
func (guard *RedisSignupGuard) Acquire(context context.Context, keys ...string) (bool, error) {
	claimed := make([]string, 0, len(keys))

	for _, key := range keys {
		ok, err := guard.client.SetNX(context, guardKey(key), "1", constants.SignupGuardTTL).Result()
		if err != nil {
			_ = guard.Release(context, claimed...)
			return false, fmt.Errorf("redis_signup_guard_acquire_failed: %w", err)
		}
		if !ok {
			_ = guard.Release(context, claimed...)
			return false, nil
		}
		claimed = append(claimed, key)
	}

	return true, nil
}

/*
Release frees previously claimed signup slots.

Parameters:
  - context: context.Context
  - keys: ...string

Returns:
  - error: Redis command failures
*/
func (guard *RedisSignupGuard) Release(context context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}

	prefixed := make([]string, len(keys))
	for i, key := range keys {
		prefixed[i] = guardKey(key)
	}

	if err := guard.client.Del(context, prefixed...).Err(); err != nil {
		return fmt.Errorf("redis_signup_guard_release_failed: %w", err)
	}

	return nil
}

// guardKey namespaces an identity key under the signup prefix.
func guardKey(key string) string {
	return constants.RedisPrefixSignup + key
}
