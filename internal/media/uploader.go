// Copyright (c) 2026 Clipstream. All rights reserved.

/*
Package media implements the two-stage upload pipeline for user images.

Stage one (Staging) accepts multipart file fields and writes them to a local
scratch directory. Stage two (Uploader) pushes a staged file to the remote
media host and guarantees the scratch copy is removed afterwards, on success
and failure alike.

# Architecture

  - Staging: HTTP middleware, transport-level concern.
  - Uploader: Infrastructure service injected into the registration workflow.
  - Result: Transient value; only its URL ever reaches persistent storage.
*/
package media

import "context"

// Result describes a successfully hosted remote asset.
//
// It is never persisted independently; the registration workflow copies the
// URL onto the user record and discards the rest.
type Result struct {
	// URL is the public retrieval URL for the uploaded object.
	URL string
	// Key is the object key within the storage bucket.
	Key string
	// Bytes is the size of the uploaded object.
	Bytes int64
}

// Uploader pushes a locally staged file to the remote media host.
//
// # Contract
//
// Upload returns nil (never an error) when no asset could be obtained:
// a missing/empty localPath is a silent no-op, and any transport or
// service-side failure is logged, cleaned up locally, and reported as nil.
// Callers must treat nil as "could not obtain an asset".
//
// Regardless of outcome, the local file at localPath is removed if it still
// exists once an upload was attempted. Deletion failures are logged, never
// propagated, and never overturn the upload's own result.
type Uploader interface {
	Upload(ctx context.Context, localPath string) *Result
}
