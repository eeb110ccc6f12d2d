// Copyright (c) 2026 Clipstream. All rights reserved.

package media

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

// objectPutter is the slice of the S3 API the uploader needs. Tests swap in
// a fake; production uses *s3.Client.
type objectPutter interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3Uploader implements Uploader on top of an S3-compatible object store.
type S3Uploader struct {
	client     objectPutter
	bucket     string
	publicBase string
	logger     *slog.Logger
}

// S3Config carries the credentials and addressing for the media bucket.
type S3Config struct {
	Bucket     string
	Region     string
	Endpoint   string
	AccessKey  string
	SecretKey  string
	PublicBase string
}

/*
NewS3Uploader builds an uploader backed by a real S3-compatible endpoint.

# Parameters
  - ctx: Context for credential resolution.
  - cfg: Bucket, region, endpoint, and key material.
  - logger: Structured logger for upload and cleanup events.

# Returns
  - *S3Uploader: Ready-to-use uploader.
  - error: When the AWS configuration cannot be assembled.
*/
func NewS3Uploader(ctx context.Context, cfg S3Config, logger *slog.Logger) (*S3Uploader, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AccessKey,
			cfg.SecretKey,
			"",
		)),
	)
	if err != nil {
		return nil, fmt.Errorf("media: failed to load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(options *s3.Options) {
		if cfg.Endpoint != "" {
			options.BaseEndpoint = aws.String(cfg.Endpoint)
		}
		// MinIO and R2 require path-style addressing.
		options.UsePathStyle = true
	})

	return &S3Uploader{
		client:     client,
		bucket:     cfg.Bucket,
		publicBase: strings.TrimRight(cfg.PublicBase, "/"),
		logger:     logger,
	}, nil
}

/*
Upload pushes the file at localPath to the media bucket.

# Behavior
  - Empty or nonexistent localPath: logged, nil returned, nothing deleted.
  - Successful upload: Result returned, local file removed.
  - Failed upload: error logged, nil returned, local file still removed.

Nil is the single "no asset" signal; callers never see an error.
*/
func (u *S3Uploader) Upload(ctx context.Context, localPath string) *Result {
	if localPath == "" {
		u.logger.Debug("upload_skipped_no_path")
		return nil
	}

	info, err := os.Stat(localPath)
	if err != nil {
		// The file was never staged. There is nothing to clean up.
		u.logger.Warn("upload_skipped_missing_file",
			slog.String("path", localPath),
			slog.Any("error", err),
		)
		return nil
	}

	file, err := os.Open(localPath)
	if err != nil {
		u.logger.Error("upload_open_failed",
			slog.String("path", localPath),
			slog.Any("error", err),
		)
		u.removeStaged(localPath)
		return nil
	}

	contentType := detectContentType(file)

	key := storageKey(filepath.Ext(localPath))
	_, putErr := u.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(u.bucket),
		Key:           aws.String(key),
		Body:          file,
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(info.Size()),
	})

	// Close before removal so the unlink is not racing an open handle.
	if closeErr := file.Close(); closeErr != nil {
		u.logger.Warn("upload_close_failed",
			slog.String("path", localPath),
			slog.Any("error", closeErr),
		)
	}
	u.removeStaged(localPath)

	if putErr != nil {
		u.logger.Error("upload_put_failed",
			slog.String("path", localPath),
			slog.String("key", key),
			slog.Any("error", putErr),
		)
		return nil
	}

	u.logger.Info("upload_successful",
		slog.String("key", key),
		slog.Int64("bytes", info.Size()),
		slog.String("content_type", contentType),
	)

	return &Result{
		URL:   u.publicBase + "/" + key,
		Key:   key,
		Bytes: info.Size(),
	}
}

// removeStaged deletes a scratch file if it still exists. Failures are
// logged and swallowed so cleanup can never change an upload's outcome.
func (u *S3Uploader) removeStaged(localPath string) {
	if _, err := os.Stat(localPath); err != nil {
		u.logger.Debug("staged_file_already_absent", slog.String("path", localPath))
		return
	}
	if err := os.Remove(localPath); err != nil {
		u.logger.Error("staged_file_cleanup_failed",
			slog.String("path", localPath),
			slog.Any("error", err),
		)
	}
}

// storageKey builds a date-partitioned object key with a random suffix so
// that identical filenames never collide in the bucket.
func storageKey(ext string) string {
	now := time.Now().UTC()
	return fmt.Sprintf("uploads/%d/%02d/%02d/%s%s",
		now.Year(), now.Month(), now.Day(), uuid.New(), strings.ToLower(ext))
}

// detectContentType sniffs the MIME type from the first 512 bytes and
// rewinds the file. Falls back to octet-stream when sniffing fails.
func detectContentType(file *os.File) string {
	buffer := make([]byte, 512)
	n, err := file.Read(buffer)
	if err != nil && n == 0 {
		return "application/octet-stream"
	}
	contentType := http.DetectContentType(buffer[:n])

	if _, err := file.Seek(0, 0); err != nil {
		return "application/octet-stream"
	}
	return contentType
}
