/*
Package storage provides S3-compatible object storage for profile avatars.

The user service only ever hands out presigned URLs; avatar bytes never pass
through the backend.
*/
package storage

import (
	"context"
	"time"
)

// PresignedURLDuration bounds the validity of issued upload/download URLs.
const PresignedURLDuration = 10 * time.Minute

// ServiceConfig holds the configuration required to connect to the storage service.
type ServiceConfig struct {
	S3BucketName      string
	S3Endpoint        string
	S3AccessKeyID     string
	S3SecretAccessKey string
}

// Service defines the public interface of the avatar storage service.
type Service interface {
	// PresignUpload generates a pre-signed URL for uploading an object.
	PresignUpload(ctx context.Context, key string, mimeType string, fileSize int64, duration time.Duration) (string, error)

	// PresignDownload generates a pre-signed URL for downloading an object.
	PresignDownload(ctx context.Context, key string, duration time.Duration) (string, error)

	// Delete removes the object with the given key.
	Delete(ctx context.Context, key string) error
}

// NewService initializes and returns a concrete Service for the given
// configuration. Only S3-compatible backends are supported.
func NewService(cfg ServiceConfig) (Service, error) {
	return newS3Client(cfg)
}
