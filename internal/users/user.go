// Copyright (c) 2026 Clipstream. All rights reserved.

/*
Package users implements account registration for Clipstream.

It owns the User entity, its persistence contracts, the registration
workflow, and the HTTP delivery layer for the signup endpoint.

# Architecture

  - Entities: User (persisted identity and profile).
  - Service: Registration workflow orchestration (validation, uniqueness,
    media upload, persistence).
  - Storage: PostgreSQL repository plus a Redis in-flight signup guard.
*/
package users

import (
	"context"
	"time"

	"github.com/clipstream/api/internal/platform/sec"
)

// # Domain Entities

// User represents a registered Clipstream account.
//
// # Security
//
// PasswordHash and RefreshToken are excluded from JSON serialization so
// they can never leak through an API response, no matter which handler
// serializes the entity.
type User struct {
	ID            string    `json:"id"`
	Username      string    `json:"username"`
	Email         string    `json:"email"`
	FullName      string    `json:"fullname"`
	AvatarURL     string    `json:"avatar"`
	CoverImageURL string    `json:"coverImage"`
	PasswordHash  string    `json:"-"`
	RefreshToken  string    `json:"-"`
	WatchHistory  []string  `json:"watchHistory"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

/*
SetPassword replaces the account credential with a salted hash of plaintext.

Description: This is the only write path for PasswordHash. Persisting the
entity without calling SetPassword never re-hashes, which keeps repeated
saves idempotent.

Parameters:
  - plaintext: string

Returns:
  - error: Hashing failures
*/
func (user *User) SetPassword(plaintext string) error {
	hash, err := sec.HashPassword(plaintext)
	if err != nil {
		return err
	}
	user.PasswordHash = hash
	return nil
}

// CheckPassword reports whether the plaintext candidate matches the stored
// hash. It returns false on mismatch and never errors.
func (user *User) CheckPassword(plaintext string) bool {
	return sec.CheckPasswordHash(plaintext, user.PasswordHash)
}

// # Repository Contracts

// UserRepository defines the persistence contract for user accounts.
//
// Create and Update rely on the store's unique indexes over username and
// email as the final backstop against duplicate identities.
type UserRepository interface {
	/*
		Create persists a new user account.

		Parameters:
		  - context: context.Context
		  - user: *User (ID and timestamps already assigned)

		Returns:
		  - error: apperr.Conflict on duplicate identity, storage failures
	*/
	Create(context context.Context, user *User) error

	/*
		FindByID retrieves a user record by its unique ID.

		Parameters:
		  - context: context.Context
		  - id: string (UUID)

		Returns:
		  - *User: Loaded account entity
		  - error: apperr.NotFound or storage failures
	*/
	FindByID(context context.Context, id string) (*User, error)

	/*
		FindByIdentity retrieves a user matching the email OR the username.

		Description: Both arguments must already be normalized (trimmed,
		lowercased); the store compares them verbatim.

		Parameters:
		  - context: context.Context
		  - email: string
		  - username: string

		Returns:
		  - *User: First matching account
		  - error: apperr.NotFound when neither identity exists
	*/
	FindByIdentity(context context.Context, email, username string) (*User, error)

	/*
		FindByEmail retrieves a user by normalized email address.

		Parameters:
		  - context: context.Context
		  - email: string

		Returns:
		  - *User: Matching account
		  - error: apperr.NotFound or storage failures
	*/
	FindByEmail(context context.Context, email string) (*User, error)

	/*
		FindByUsername retrieves a user by normalized handle.

		Parameters:
		  - context: context.Context
		  - username: string

		Returns:
		  - *User: Matching account
		  - error: apperr.NotFound or storage failures
	*/
	FindByUsername(context context.Context, username string) (*User, error)

	/*
		Update persists the mutable fields of an existing account.

		Parameters:
		  - context: context.Context
		  - user: *User

		Returns:
		  - error: apperr.Conflict or storage failures
	*/
	Update(context context.Context, user *User) error

	/*
		UpdateRefreshToken stores the latest issued refresh token.

		Parameters:
		  - context: context.Context
		  - userID: string
		  - refreshToken: string (empty string clears it)

		Returns:
		  - error: Storage failures
	*/
	UpdateRefreshToken(context context.Context, userID, refreshToken string) error
}

// SignupGuard coordinates concurrent registrations for the same identity.
//
// The guard narrows the window between the application-level uniqueness
// check and the insert; the store's unique index remains the backstop.
type SignupGuard interface {
	/*
		Acquire claims a short-lived signup slot for the identity keys.

		Parameters:
		  - context: context.Context
		  - keys: ...string (normalized email and username)

		Returns:
		  - bool: true when all keys were claimed by this request
		  - error: Coordination-store failures
	*/
	Acquire(context context.Context, keys ...string) (bool, error)

	/*
		Release frees previously claimed signup slots.

		Parameters:
		  - context: context.Context
		  - keys: ...string

		Returns:
		  - error: Coordination-store failures
	*/
	Release(context context.Context, keys ...string) error
}
