// Copyright (c) 2026 Clipstream. All rights reserved.

/*
Package users (Postgres) implements the storage layer for user accounts.

# Schema Table Mapping
  - users.account: Master identity, profile, and credential data.
*/
package users

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/clipstream/api/internal/platform/database/schema"
	"github.com/clipstream/api/internal/platform/dberr"
)

// conflictDuplicateIdentity is the client-facing message for a unique-index
// violation on username or email.
const conflictDuplicateIdentity = "User with email or username already exists"

// # Repository Implementations

// PostgresUserRepository implements [UserRepository] using pgx.
type PostgresUserRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository creates a new Postgres implementation for account storage.
func NewUserRepository(pool *pgxpool.Pool) *PostgresUserRepository {
	return &PostgresUserRepository{pool: pool}
}

// # UserRepository Methods

/*
Create persists a new user account row.

Description: Timestamps are assigned here so entity construction stays free
of clock concerns. A unique-index violation on username or email surfaces
as apperr.Conflict, the storage backstop for two identical registrations
racing past the application-level uniqueness check.

Parameters:
  - context: context.Context
  - user: *User (ID already assigned)

Returns:
  - error: apperr.Conflict or storage failures
*/
func (repository *PostgresUserRepository) Create(context context.Context, user *User) error {
	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now
	if user.WatchHistory == nil {
		user.WatchHistory = []string{}
	}

	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		schema.UserAccount.Table,
		schema.UserAccount.ID, schema.UserAccount.Username, schema.UserAccount.Email,
		schema.UserAccount.FullName, schema.UserAccount.AvatarURL, schema.UserAccount.CoverImageURL,
		schema.UserAccount.PasswordHash, schema.UserAccount.RefreshToken, schema.UserAccount.WatchHistory,
		schema.UserAccount.CreatedAt, schema.UserAccount.UpdatedAt,
	)

	_, err := repository.pool.Exec(context, query,
		user.ID,
		user.Username,
		user.Email,
		user.FullName,
		user.AvatarURL,
		user.CoverImageURL,
		user.PasswordHash,
		user.RefreshToken,
		user.WatchHistory,
		user.CreatedAt,
		user.UpdatedAt,
	)

	if err != nil {
		return dberr.Wrap(fmt.Errorf("postgres_user_repo_create_failed: %w", err), conflictDuplicateIdentity)
	}

	return nil
}

/*
FindByID retrieves a user record from the users.account table.

Parameters:
  - context: context.Context
  - id: string (UUID)

Returns:
  - *User: Hydrated account entity
  - error: apperr.NotFound or database execution failure
*/
func (repository *PostgresUserRepository) FindByID(context context.Context, id string) (*User, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s
		FROM %s
		WHERE %s = $1`,
		schema.UserAccount.ID, schema.UserAccount.Username, schema.UserAccount.Email,
		schema.UserAccount.FullName, schema.UserAccount.AvatarURL, schema.UserAccount.CoverImageURL,
		schema.UserAccount.PasswordHash, schema.UserAccount.RefreshToken, schema.UserAccount.WatchHistory,
		schema.UserAccount.CreatedAt, schema.UserAccount.UpdatedAt,
		schema.UserAccount.Table,
		schema.UserAccount.ID,
	)

	return repository.scanOne(context, query, id)
}

/*
FindByIdentity retrieves a user matching either identity key.

Parameters:
  - context: context.Context
  - email: string (normalized)
  - username: string (normalized)

Returns:
  - *User: First matching account
  - error: apperr.NotFound when neither identity exists
*/
func (repository *PostgresUserRepository) FindByIdentity(context context.Context, email, username string) (*User, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s
		FROM %s
		WHERE %s = $1 OR %s = $2
		LIMIT 1`,
		schema.UserAccount.ID, schema.UserAccount.Username, schema.UserAccount.Email,
		schema.UserAccount.FullName, schema.UserAccount.AvatarURL, schema.UserAccount.CoverImageURL,
		schema.UserAccount.PasswordHash, schema.UserAccount.RefreshToken, schema.UserAccount.WatchHistory,
		schema.UserAccount.CreatedAt, schema.UserAccount.UpdatedAt,
		schema.UserAccount.Table,
		schema.UserAccount.Email, schema.UserAccount.Username,
	)

	return repository.scanOne(context, query, email, username)
}

/*
FindByEmail retrieves a user by normalized email address.

Parameters:
  - context: context.Context
  - email: string

Returns:
  - *User: Matching account
  - error: apperr.NotFound or storage failures
*/
func (repository *PostgresUserRepository) FindByEmail(context context.Context, email string) (*User, error) {
	return repository.findByColumn(context, schema.UserAccount.Email, email)
}

/*
FindByUsername retrieves a user by normalized handle.

Parameters:
  - context: context.Context
  - username: string

Returns:
  - *User: Matching account
  - error: apperr.NotFound or storage failures
*/
func (repository *PostgresUserRepository) FindByUsername(context context.Context, username string) (*User, error) {
	return repository.findByColumn(context, schema.UserAccount.Username, username)
}

// findByColumn hydrates a single user matched on one identity column.
func (repository *PostgresUserRepository) findByColumn(context context.Context, column, value string) (*User, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s
		FROM %s
		WHERE %s = $1`,
		schema.UserAccount.ID, schema.UserAccount.Username, schema.UserAccount.Email,
		schema.UserAccount.FullName, schema.UserAccount.AvatarURL, schema.UserAccount.CoverImageURL,
		schema.UserAccount.PasswordHash, schema.UserAccount.RefreshToken, schema.UserAccount.WatchHistory,
		schema.UserAccount.CreatedAt, schema.UserAccount.UpdatedAt,
		schema.UserAccount.Table,
		column,
	)

	return repository.scanOne(context, query, value)
}

/*
Update persists the mutable fields of an existing account.

Description: PasswordHash is written as-is. Hashing happens exactly once in
User.SetPassword, so saving an unchanged entity never alters the stored hash.

Parameters:
  - context: context.Context
  - user: *User

Returns:
  - error: apperr.Conflict or storage failures
*/
func (repository *PostgresUserRepository) Update(context context.Context, user *User) error {
	user.UpdatedAt = time.Now()

	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $2, %s = $3, %s = $4, %s = $5, %s = $6, %s = $7, %s = $8
		WHERE %s = $1`,
		schema.UserAccount.Table,
		schema.UserAccount.FullName, schema.UserAccount.AvatarURL, schema.UserAccount.CoverImageURL,
		schema.UserAccount.PasswordHash, schema.UserAccount.RefreshToken, schema.UserAccount.WatchHistory,
		schema.UserAccount.UpdatedAt,
		schema.UserAccount.ID,
	)

	_, err := repository.pool.Exec(context, query,
		user.ID,
		user.FullName,
		user.AvatarURL,
		user.CoverImageURL,
		user.PasswordHash,
		user.RefreshToken,
		user.WatchHistory,
		user.UpdatedAt,
	)

	if err != nil {
		return dberr.Wrap(fmt.Errorf("postgres_user_repo_update_failed: %w", err), conflictDuplicateIdentity)
	}

	return nil
}

/*
UpdateRefreshToken stores the latest issued refresh token for a user.

Parameters:
  - context: context.Context
  - userID: string
  - refreshToken: string

Returns:
  - error: Storage failures
*/
func (repository *PostgresUserRepository) UpdateRefreshToken(context context.Context, userID, refreshToken string) error {
	query := fmt.Sprintf(`UPDATE %s SET %s = $2, %s = $3 WHERE %s = $1`,
		schema.UserAccount.Table,
		schema.UserAccount.RefreshToken, schema.UserAccount.UpdatedAt,
		schema.UserAccount.ID,
	)

	_, err := repository.pool.Exec(context, query, userID, refreshToken, time.Now())
	if err != nil {
		return fmt.Errorf("postgres_user_repo_update_refresh_token_failed: %w", err)
	}

	return nil
}

// scanOne executes a single-row query and hydrates a [User].
func (repository *PostgresUserRepository) scanOne(context context.Context, query string, args ...any) (*User, error) {
	user := &User{}
	err := repository.pool.QueryRow(context, query, args...).Scan(
		&user.ID,
		&user.Username,
		&user.Email,
		&user.FullName,
		&user.AvatarURL,
		&user.CoverImageURL,
		&user.PasswordHash,
		&user.RefreshToken,
		&user.WatchHistory,
		&user.CreatedAt,
		&user.UpdatedAt,
	)

	if err != nil {
		return nil, dberr.Wrap(err, conflictDuplicateIdentity)
	}

	return user, nil
}
