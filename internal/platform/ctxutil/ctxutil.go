// Copyright (c) 2026 Clipstream. All rights reserved.

// Package ctxutil provides helpers for interacting with values stored in [context.Context].
package ctxutil

import (
	"context"
	"log/slog"

	"github.com/clipstream/api/internal/platform/ctxkey"
	"github.com/clipstream/api/internal/platform/sec"
)

// # Request Tracing

// WithRequestID returns a new context with the provided request ID attached.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ctxkey.KeyRequestID, id)
}

// GetRequestID retrieves the request ID from the context.
// Returns an empty string if not found.
func GetRequestID(ctx context.Context) string {
	id, _ := ctx.Value(ctxkey.KeyRequestID).(string)
	return id
}

// # Structured Logging

// WithLogger returns a new context with the provided logger attached.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, ctxkey.KeyLogger, logger)
}

// GetLogger retrieves the logger from the context.
// If no logger is found, it returns the global default logger.
func GetLogger(ctx context.Context) *slog.Logger {
	logger, ok := ctx.Value(ctxkey.KeyLogger).(*slog.Logger)
	if !ok {
		return slog.Default()
	}
	return logger
}

// # Identity & Access

// WithAuthUser returns a new context with the provided auth claims attached.
func WithAuthUser(ctx context.Context, user *sec.AuthClaims) context.Context {
	return context.WithValue(ctx, ctxkey.KeyUser, user)
}

// GetAuthUser retrieves the [*sec.AuthClaims] from the [context.Context].
func GetAuthUser(ctx context.Context) *sec.AuthClaims {
	claims, ok := ctx.Value(ctxkey.KeyUser).(*sec.AuthClaims)
	if !ok {
		return nil
	}
	return claims
}

// # Staged Uploads

// WithStagedFiles returns a new context carrying the multipart staging result.
//
// The map is keyed by form field name (e.g. "avatar") and holds the local
// scratch path written by the staging middleware.
func WithStagedFiles(ctx context.Context, files map[string]string) context.Context {
	return context.WithValue(ctx, ctxkey.KeyStagedFiles, files)
}

// GetStagedFile retrieves the local scratch path staged for the given form
// field. Returns an empty string when no file was supplied for the field.
func GetStagedFile(ctx context.Context, field string) string {
	files, ok := ctx.Value(ctxkey.KeyStagedFiles).(map[string]string)
	if !ok {
		return ""
	}
	return files[field]
}
