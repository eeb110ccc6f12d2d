// Copyright (c) 2026 Clipstream. All rights reserved.

package ctxutil_test

import (
	"context"
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/clipstream/api/internal/platform/ctxutil"
	"github.com/clipstream/api/internal/platform/sec"
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
		Username: "ada",
	}

	// 1. Initially should be nil
	assert.Nil(t, ctxutil.GetAuthUser(ctx))

	// 2. Inject and retrieve
	ctx = ctxutil.WithAuthUser(ctx, claims)
	retrieved := ctxutil.GetAuthUser(ctx)

	assert.NotNil(t, retrieved)
	assert.Equal(t, "user-123", retrieved.UserID)
	assert.Equal(t, "ada", retrieved.Username)
}

/*
TestContext_StagedFiles verifies staged upload paths travel through context.
*/
func TestContext_StagedFiles(t *testing.T) {
	ctx := context.Background()

	// 1. Missing map yields empty paths for every field
	assert.Empty(t, ctxutil.GetStagedFile(ctx, "avatar"))

	// 2. Inject and retrieve per field
	ctx = ctxutil.WithStagedFiles(ctx, map[string]string{
		"avatar": "/tmp/scratch/avatar.png",
	})

	assert.Equal(t, "/tmp/scratch/avatar.png", ctxutil.GetStagedFile(ctx, "avatar"))
	assert.Empty(t, ctxutil.GetStagedFile(ctx, "coverImage"))
}
