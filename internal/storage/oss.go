package storage

import (
	"context"
	"errors"
	"io"

	"github.com/lipai-ops/internal/config"

	"github.com/aliyun/aliyun-oss-go-sdk/oss"
)

// OSSStorage 阿里云 OSS 实现
type OSSStorage struct {
	bucket        *oss.Bucket
	uploadExpireS int64
	viewExpireS   int64
}

var errOSSDisabled = errors.New("对象存储未启用")

// NewOSSStorage 根据配置创建 OSS 存储。未启用时返回 (nil, nil)，
// 调用方需用 Enabled() 判断后再使用。
func NewOSSStorage(cfg config.OSSConfig) (*OSSStorage, error) {
	if !cfg.Enabled {
		return nil, nil
	}
	client, err := oss.New(cfg.Endpoint, cfg.AccessKeyID, cfg.AccessKeySecret)
	if err != nil {
		return nil, err
	}
	bucket, err := client.Bucket(cfg.Bucket)
	if err != nil {
		return nil, err
	}
	uploadExpire := int64(cfg.UploadExpireS)
	if uploadExpire <= 0 {
		uploadExpire = 300
	}
	viewExpire := int64(cfg.ViewExpireS)
	if viewExpire <= 0 {
		viewExpire = 3600
	}
	return &OSSStorage{
		bucket:        bucket,
		uploadExpireS: uploadExpire,
		viewExpireS:   viewExpire,
	}, nil
}

// Enabled 是否可用
func (s *OSSStorage) Enabled() bool {
	return s != nil && s.bucket != nil
}

// Put 上传对象
func (s *OSSStorage) Put(ctx context.Context, key string, reader io.Reader, contentType string) error {
	if !s.Enabled() {
		return errOSSDisabled
	}
	options := []oss.Option{oss.WithContext(ctx)}
	if contentType != "" {
		options = append(options, oss.ContentType(contentType))
	}
	return s.bucket.PutObject(key, reader, options...)
}

// SignedReadURL 生成限时读取链接
func (s *OSSStorage) SignedReadURL(ctx context.Context, key string) (string, error) {
	if !s.Enabled() {
		return "", errOSSDisabled
	}
	return s.bucket.SignURL(key, oss.HTTPGet, s.viewExpireS, oss.WithContext(ctx))
}

// SignedUploadURL 生成限时直传链接
func (s *OSSStorage) SignedUploadURL(ctx context.Context, key, contentType string) (string, error) {
	if !s.Enabled() {
		return "", errOSSDisabled
	}
	options := []oss.Option{oss.WithContext(ctx)}
	if contentType != "" {
		options = append(options, oss.ContentType(contentType))
	}
	return s.bucket.SignURL(key, oss.HTTPPut, s.uploadExpireS, options...)
}

// Delete 删除对象
func (s *OSSStorage) Delete(ctx context.Context, key string) error {
	if !s.Enabled() {
		return errOSSDisabled
	}
	return s.bucket.DeleteObject(key, oss.WithContext(ctx))
}
