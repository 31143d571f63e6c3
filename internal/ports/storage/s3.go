package storage

import (
	"context"
	"time"
)

// IContentStorage хранилище крупных материалов предметов (S3/MinIO)
type IContentStorage interface {
	GetPresignedURL(ctx context.Context, key string, expires time.Duration) (string, error)
}
