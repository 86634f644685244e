package storage

import (
	"context"
	"io"
)

// Storage 对象存储边界。生产实现走阿里云 OSS，测试可注入假实现。
type Storage interface {
	Put(ctx context.Context, key string, reader io.Reader, contentType string) error
	SignedReadURL(ctx context.Context, key string) (string, error)
	SignedUploadURL(ctx context.Context, key, contentType string) (string, error)
	Delete(ctx context.Context, key string) error
	Enabled() bool
}
