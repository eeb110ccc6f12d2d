// Copyright (c) 2026 Clipstream. All rights reserved.

package media_test

import (
	"bytes"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clipstream/api/internal/media"
	"github.com/clipstream/api/internal/platform/ctxutil"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// buildMultipart assembles a multipart body with the given text and file fields.
func buildMultipart(t *testing.T, fields map[string]string, files map[string][]string) (*bytes.Buffer, string) {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	for field, value := range fields {
		require.NoError(t, writer.WriteField(field, value))
	}

	for field, filenames := range files {
		for _, filename := range filenames {
			part, err := writer.CreateFormFile(field, filename)
			require.NoError(t, err)
			_, err = part.Write([]byte("content of " + filename))
			require.NoError(t, err)
		}
	}

	require.NoError(t, writer.Close())
	return body, writer.FormDataContentType()
}

/*
TestStaging_WritesFilesToScratchDir verifies staged files land under their
original names and the paths reach the handler through context.
*/
func TestStaging_WritesFilesToScratchDir(t *testing.T) {
	scratchDir := t.TempDir()
	staging := media.NewStaging(scratchDir, discardLogger(), "avatar", "coverImage")

	var avatarPath, coverPath string
	handler := staging.Middleware(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		avatarPath = ctxutil.GetStagedFile(request.Context(), "avatar")
		coverPath = ctxutil.GetStagedFile(request.Context(), "coverImage")
		writer.WriteHeader(http.StatusOK)
	}))

	body, contentType := buildMultipart(t,
		map[string]string{"username": "ada"},
		map[string][]string{"avatar": {"me.png"}},
	)

	request := httptest.NewRequest(http.MethodPost, "/register", body)
	request.Header.Set("Content-Type", contentType)
	recorder := httptest.NewRecorder()

	handler.ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, filepath.Join(scratchDir, "me.png"), avatarPath)
	assert.Empty(t, coverPath)

	// Original filename preserved, content intact
	staged, err := os.ReadFile(avatarPath)
	require.NoError(t, err)
	assert.Equal(t, "content of me.png", string(staged))
}

/*
TestStaging_NonMultipartPassesThrough verifies plain requests skip staging.
*/
func TestStaging_NonMultipartPassesThrough(t *testing.T) {
	staging := media.NewStaging(t.TempDir(), discardLogger(), "avatar")

	handlerRan := false
	handler := staging.Middleware(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		handlerRan = true
		assert.Empty(t, ctxutil.GetStagedFile(request.Context(), "avatar"))
		writer.WriteHeader(http.StatusOK)
	}))

	request := httptest.NewRequest(http.MethodPost, "/register", strings.NewReader(`{"a":1}`))
	request.Header.Set("Content-Type", "application/json")
	recorder := httptest.NewRecorder()

	handler.ServeHTTP(recorder, request)

	assert.True(t, handlerRan)
	assert.Equal(t, http.StatusOK, recorder.Code)
}

/*
TestStaging_OneFilePerField verifies extra parts under the same field name
are ignored.
*/
func TestStaging_OneFilePerField(t *testing.T) {
	scratchDir := t.TempDir()
	staging := media.NewStaging(scratchDir, discardLogger(), "avatar")

	var avatarPath string
	handler := staging.Middleware(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		avatarPath = ctxutil.GetStagedFile(request.Context(), "avatar")
		writer.WriteHeader(http.StatusOK)
	}))

	body, contentType := buildMultipart(t, nil,
		map[string][]string{"avatar": {"first.png", "second.png"}},
	)

	request := httptest.NewRequest(http.MethodPost, "/register", body)
	request.Header.Set("Content-Type", contentType)
	recorder := httptest.NewRecorder()

	handler.ServeHTTP(recorder, request)

	assert.Equal(t, filepath.Join(scratchDir, "first.png"), avatarPath)

	// Only the first part was staged
	_, err := os.Stat(filepath.Join(scratchDir, "second.png"))
	assert.True(t, os.IsNotExist(err))
}

/*
TestStaging_MalformedMultipart verifies a broken body is rejected with a 400
validation envelope before the handler runs.
*/
func TestStaging_MalformedMultipart(t *testing.T) {
	staging := media.NewStaging(t.TempDir(), discardLogger(), "avatar")

	handlerRan := false
	handler := staging.Middleware(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		handlerRan = true
	}))

	request := httptest.NewRequest(http.MethodPost, "/register", strings.NewReader("not multipart at all"))
	request.Header.Set("Content-Type", "multipart/form-data; boundary=missing")
	recorder := httptest.NewRecorder()

	handler.ServeHTTP(recorder, request)

	assert.False(t, handlerRan)
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}
