// Copyright (c) 2026 Clipstream. All rights reserved.

package media

import (
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/clipstream/api/internal/platform/constants"
	"github.com/clipstream/api/internal/platform/ctxutil"
	"github.com/clipstream/api/internal/platform/respond"
	"github.com/clipstream/api/internal/platform/validate"
)

// Staging is HTTP middleware that intercepts multipart uploads and writes
// the configured file fields to a local scratch directory before the
// handler runs.
//
// At most one file per field is staged; extra parts under the same name are
// ignored. Staged paths travel to the handler through the request context.
// Staged files are NOT removed by this middleware; the upload stage owns
// their lifecycle from here on.
type Staging struct {
	scratchDir string
	fields     []string
	logger     *slog.Logger
}

// NewStaging builds a staging middleware for the given scratch directory and
// file field names. The directory is created on first use if missing.
func NewStaging(scratchDir string, logger *slog.Logger, fields ...string) *Staging {
	return &Staging{
		scratchDir: scratchDir,
		fields:     fields,
		logger:     logger,
	}
}

// Middleware returns the chi-compatible middleware function.
//
// Non-multipart requests pass through untouched; the handler's own
// validation decides whether the missing fields matter.
func (s *Staging) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		contentType := r.Header.Get("Content-Type")
		if !strings.HasPrefix(contentType, "multipart/form-data") {
			next.ServeHTTP(w, r)
			return
		}

		r.Body = http.MaxBytesReader(w, r.Body, constants.MaxUploadBytes)

		if err := r.ParseMultipartForm(constants.MaxMultipartMemory); err != nil {
			s.logger.Warn("multipart_parse_failed", slog.Any("error", err))
			respond.Error(w, r, validate.ErrInvalidForm)
			return
		}

		staged := make(map[string]string, len(s.fields))
		for _, field := range s.fields {
			header := firstFile(r.MultipartForm, field)
			if header == nil {
				continue
			}

			path, err := s.stageFile(header)
			if err != nil {
				s.logger.Error("file_staging_failed",
					slog.String("field", field),
					slog.String("filename", header.Filename),
					slog.Any("error", err),
				)
				respond.Error(w, r, validate.ErrInvalidForm)
				return
			}
			staged[field] = path
		}

		next.ServeHTTP(w, r.WithContext(ctxutil.WithStagedFiles(r.Context(), staged)))
	})
}

// stageFile copies one multipart part into the scratch directory under its
// original filename and returns the local path.
func (s *Staging) stageFile(header *multipart.FileHeader) (string, error) {
	if err := os.MkdirAll(s.scratchDir, 0o755); err != nil {
		return "", err
	}

	part, err := header.Open()
	if err != nil {
		return "", err
	}
	defer part.Close()

	// Base strips any client-supplied directory components.
	localPath := filepath.Join(s.scratchDir, filepath.Base(header.Filename))

	destination, err := os.Create(localPath)
	if err != nil {
		return "", err
	}

	if _, err := io.Copy(destination, part); err != nil {
		_ = destination.Close()
		_ = os.Remove(localPath)
		return "", err
	}

	if err := destination.Close(); err != nil {
		_ = os.Remove(localPath)
		return "", err
	}

	return localPath, nil
}

// firstFile returns the first uploaded file for a field, or nil.
func firstFile(form *multipart.Form, field string) *multipart.FileHeader {
	if form == nil {
		return nil
	}
	headers := form.File[field]
	if len(headers) == 0 {
		return nil
	}
	return headers[0]
}
