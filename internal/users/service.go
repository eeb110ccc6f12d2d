// Copyright (c) 2026 Clipstream. All rights reserved.

package users

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/clipstream/api/internal/media"
	"github.com/clipstream/api/internal/platform/apperr"
	"github.com/clipstream/api/internal/platform/validate"
	"github.com/clipstream/api/pkg/normalize"
	"github.com/clipstream/api/pkg/uuidv7"
)

// # Service Layer

// Service orchestrates the registration workflow.
//
// The workflow is strictly sequential: validation, uniqueness check, avatar
// requirement, remote uploads, persistence, confirmation read. Every failure
// short-circuits the remaining steps. Remote assets uploaded before a later
// failure are not rolled back.
type Service struct {
	userRepository UserRepository
	signupGuard    SignupGuard
	uploader       media.Uploader
	logger         *slog.Logger
}

// NewService constructs a new [Service] with its dependencies.
func NewService(
	userRepo UserRepository,
	guard SignupGuard,
	uploader media.Uploader,
	logger *slog.Logger,
) *Service {
	return &Service{
		userRepository: userRepo,
		signupGuard:    guard,
		uploader:       uploader,
		logger:         logger,
	}
}

// RegisterInput carries everything the registration workflow consumes.
//
// AvatarPath and CoverImagePath are local scratch paths produced by the
// staging middleware; empty means the client supplied no file for that field.
type RegisterInput struct {
	Email          string
	FullName       string
	Username       string
	Password       string
	AvatarPath     string
	CoverImagePath string
}

/*
Register executes the full signup workflow and returns the created account.

Description: Runs the sequential state machine described on [Service]. The
returned entity comes from a confirmation re-read of storage, never from the
in-memory copy, so the caller sees exactly what was persisted.

Parameters:
  - context: context.Context
  - input: RegisterInput

Returns:
  - *User: The persisted, re-read account
  - error: apperr.ValidationError, apperr.Conflict, apperr.UploadFailed,
    or internal failures
*/
func (service *Service) Register(context context.Context, input RegisterInput) (*User, error) {

	// Step 1: Intake validation. Fails before any storage or upload call.
	email := normalize.Email(input.Email)
	username := normalize.Username(input.Username)
	fullName := normalize.FullName(input.FullName)

	if err := service.validateInput(email, fullName, username, input.Password); err != nil {
		return nil, err
	}

	// Narrow the check-then-insert race for this identity. The guard is
	// best-effort: if the coordination store is down, the unique index
	// still backstops duplicates at write time.
	acquired, err := service.signupGuard.Acquire(context, email, username)
	if err != nil {
		service.logger.Warn("signup_guard_unavailable", slog.Any("error", err))
	} else if !acquired {
		return nil, apperr.Conflict("A registration for this email or username is already in progress")
	} else {
		defer func() {
			if releaseErr := service.signupGuard.Release(context, email, username); releaseErr != nil {
				service.logger.Warn("signup_guard_release_failed", slog.Any("error", releaseErr))
			}
		}()
	}

	// Step 2: Uniqueness check.
	if err := service.checkIdentityAvailable(context, email, username); err != nil {
		return nil, err
	}

	// Step 3: Attachment resolution. The avatar must have been staged.
	if input.AvatarPath == "" {
		return nil, validate.RequiredError("avatar", "Avatar file is required")
	}

	// Step 4: Remote uploads. Avatar is required; cover image degrades to
	// an empty value on failure.
	avatar := service.uploader.Upload(context, input.AvatarPath)
	if avatar == nil {
		return nil, apperr.UploadFailed("Avatar upload failed")
	}

	coverImageURL := ""
	if input.CoverImagePath != "" {
		if cover := service.uploader.Upload(context, input.CoverImagePath); cover != nil {
			coverImageURL = cover.URL
		} else {
			service.logger.Warn("cover_image_upload_degraded", slog.String("username", username))
		}
	}

	// Step 5: Persistence.
	user := &User{
		ID:            uuidv7.New(),
		Username:      username,
		Email:         email,
		FullName:      fullName,
		AvatarURL:     avatar.URL,
		CoverImageURL: coverImageURL,
		WatchHistory:  []string{},
	}

	if err := user.SetPassword(input.Password); err != nil {
		return nil, fmt.Errorf("user_service_hash_password_failed: %w", err)
	}

	if err := service.userRepository.Create(context, user); err != nil {
		return nil, fmt.Errorf("user_service_create_failed: %w", err)
	}

	// Step 6: Confirmation read. A missing row here is a post-write
	// consistency failure, not a client error.
	created, err := service.userRepository.FindByID(context, user.ID)
	if err != nil {
		service.logger.Error("user_post_create_read_failed",
			slog.String("user_id", user.ID),
			slog.Any("error", err),
		)
		return nil, apperr.InternalMessage("Something went wrong while registering the user")
	}

	service.logger.Info("user_registered",
		slog.String("user_id", created.ID),
		slog.String("username", created.Username),
	)

	return created, nil
}

// validateInput applies the intake rules to normalized field values.
func (service *Service) validateInput(email, fullName, username, password string) error {
	v := &validate.Validator{}
	v.Required("email", email).
		Required("fullname", fullName).
		Required("username", username).
		Required("password", password)

	// Format rules only make sense once presence holds.
	if !v.HasErrors() {
		v.Email("email", email).
			Username("username", username).
			MaxLen("username", username, 30).
			MaxLen("fullname", fullName, 100)
	}

	return v.Err()
}

// checkIdentityAvailable fails with a conflict when either identity key is
// already registered. A not-found result is the success path.
func (service *Service) checkIdentityAvailable(context context.Context, email, username string) error {
	existing, err := service.userRepository.FindByIdentity(context, email, username)
	if err != nil {
		if appError := apperr.As(err); appError != nil && appError.Code == "NOT_FOUND" {
			return nil
		}
		return fmt.Errorf("user_service_uniqueness_check_failed: %w", err)
	}

	if existing != nil {
		return apperr.Conflict("User with email or username already exists")
	}

	return nil
}
