package s3

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/admin/tg-bots/exam-shop-bot/internal/ports/storage"
	"github.com/minio/minio-go/v7"
)

const defaultLinkTTL = 5 * time.Minute

// Client выдаёт временные ссылки на материалы предметов
type Client struct {
	client *minio.Client
	bucket string
	log    *slog.Logger
}

func NewClient(client *minio.Client, bucket string, log *slog.Logger) *Client {
	return &Client{
		client: client,
		bucket: bucket,
		log:    log,
	}
}

var _ storage.IContentStorage = (*Client)(nil)

// GetPresignedURL presigned GET-ссылка на объект по ключу из subjects.content_key
func (c *Client) GetPresignedURL(ctx context.Context, key string, expires time.Duration) (string, error) {
	if expires <= 0 {
		expires = defaultLinkTTL
	}

	if _, err := c.client.StatObject(ctx, c.bucket, key, minio.StatObjectOptions{}); err != nil {
		c.log.Warn("content object is not available", "key", key, "error", err)
		return "", fmt.Errorf("stat object %s: %w", key, err)
	}

	url, err := c.client.PresignedGetObject(ctx, c.bucket, key, expires, nil)
	if err != nil {
		return "", fmt.Errorf("failed to generate presigned URL for %s: %w", key, err)
	}

	return url.String(), nil
}
