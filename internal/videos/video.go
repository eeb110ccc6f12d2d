// Copyright (c) 2026 Clipstream. All rights reserved.

/*
Package videos declares the VideoAsset entity and its storage layer.

No HTTP surface exposes videos yet. The entity exists because user watch
history holds weak references to video IDs, so the schema and lookup path
ship ahead of the delivery layer.
*/
package videos

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/clipstream/api/internal/platform/database/schema"
	"github.com/clipstream/api/internal/platform/dberr"
)

// # Domain Entities

// VideoAsset represents a hosted video and its presentation metadata.
type VideoAsset struct {
	ID              string    `json:"id"`
	OwnerID         string    `json:"owner"`
	VideoURL        string    `json:"videoFile"`
	ThumbnailURL    string    `json:"thumbnail"`
	Title           string    `json:"title"`
	Description     string    `json:"description"`
	DurationSeconds float64   `json:"duration"`
	ViewCount       int64     `json:"views"`
	IsPublished     bool      `json:"isPublished"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// # Repository

// PostgresVideoRepository provides read/write access to core.videoasset.
type PostgresVideoRepository struct {
	pool *pgxpool.Pool
}

// NewVideoRepository creates a new Postgres implementation for video storage.
func NewVideoRepository(pool *pgxpool.Pool) *PostgresVideoRepository {
	return &PostgresVideoRepository{pool: pool}
}

/*
Create persists a new video asset row.

Parameters:
  - context: context.Context
  - video: *VideoAsset (ID already assigned)

Returns:
  - error: Storage failures
*/
func (repository *PostgresVideoRepository) Create(context context.Context, video *VideoAsset) error {
	now := time.Now()
	video.CreatedAt = now
	video.UpdatedAt = now

	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		schema.CoreVideoAsset.Table,
		schema.CoreVideoAsset.ID, schema.CoreVideoAsset.OwnerID, schema.CoreVideoAsset.VideoURL,
		schema.CoreVideoAsset.ThumbnailURL, schema.CoreVideoAsset.Title, schema.CoreVideoAsset.Description,
		schema.CoreVideoAsset.DurationSeconds, schema.CoreVideoAsset.ViewCount, schema.CoreVideoAsset.IsPublished,
		schema.CoreVideoAsset.CreatedAt, schema.CoreVideoAsset.UpdatedAt,
	)

	_, err := repository.pool.Exec(context, query,
		video.ID,
		video.OwnerID,
		video.VideoURL,
		video.ThumbnailURL,
		video.Title,
		video.Description,
		video.DurationSeconds,
		video.ViewCount,
		video.IsPublished,
		video.CreatedAt,
		video.UpdatedAt,
	)

	if err != nil {
		return fmt.Errorf("postgres_video_repo_create_failed: %w", err)
	}

	return nil
}

/*
FindByID retrieves a video asset by its unique ID.

Parameters:
  - context: context.Context
  - id: string (UUID)

Returns:
  - *VideoAsset: Hydrated entity
  - error: apperr.NotFound or database execution failure
*/
func (repository *PostgresVideoRepository) FindByID(context context.Context, id string) (*VideoAsset, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s
		FROM %s
		WHERE %s = $1`,
		schema.CoreVideoAsset.ID, schema.CoreVideoAsset.OwnerID, schema.CoreVideoAsset.VideoURL,
		schema.CoreVideoAsset.ThumbnailURL, schema.CoreVideoAsset.Title, schema.CoreVideoAsset.Description,
		schema.CoreVideoAsset.DurationSeconds, schema.CoreVideoAsset.ViewCount, schema.CoreVideoAsset.IsPublished,
		schema.CoreVideoAsset.CreatedAt, schema.CoreVideoAsset.UpdatedAt,
		schema.CoreVideoAsset.Table,
		schema.CoreVideoAsset.ID,
	)

	video := &VideoAsset{}
	err := repository.pool.QueryRow(context, query, id).Scan(
		&video.ID,
		&video.OwnerID,
		&video.VideoURL,
		&video.ThumbnailURL,
		&video.Title,
		&video.Description,
		&video.DurationSeconds,
		&video.ViewCount,
		&video.IsPublished,
		&video.CreatedAt,
		&video.UpdatedAt,
	)

	if err != nil {
		return nil, dberr.Wrap(err, "")
	}

	return video, nil
}
