package service

import (
	"context"
	"io"
	"strings"
	"time"

	"github.com/lipai-ops/internal/config"
	"github.com/lipai-ops/internal/constants"
	"github.com/lipai-ops/internal/models"
	"github.com/lipai-ops/internal/queue"
	"github.com/lipai-ops/internal/repository"
	"github.com/lipai-ops/internal/storage"
)

// MediaService 素材上传服务
type MediaService struct {
	repo        repository.MediaRepository
	userRepo    repository.UserRepository
	store       storage.Storage
	queueClient *queue.Client
	dailyTarget int
}

// NewMediaService 创建素材服务
func NewMediaService(
	repo repository.MediaRepository,
	userRepo repository.UserRepository,
	store storage.Storage,
	queueClient *queue.Client,
	mediaCfg config.MediaConfig,
) *MediaService {
	target := mediaCfg.DailyTarget
	if target <= 0 {
		target = constants.MediaDailyTarget
	}
	return &MediaService{
		repo:        repo,
		userRepo:    userRepo,
		store:       store,
		queueClient: queueClient,
		dailyTarget: target,
	}
}

// UploadInput 素材上传输入
type UploadInput struct {
	UserID      uint
	UserName    string
	FileName    string
	ContentType string
	FileSize    int64
	Reader      io.Reader
}

func fileTypeFromContentType(contentType string) string {
	if strings.HasPrefix(contentType, "video/") {
		return constants.MediaFileTypeVideo
	}
	return constants.MediaFileTypeImage
}

// Upload 上传素材到对象存储并落库
func (s *MediaService) Upload(ctx context.Context, input UploadInput) (*models.MediaUpload, error) {
	if s.store == nil || !s.store.Enabled() {
		return nil, ErrStorageDisabled
	}
	if input.UserID == 0 || input.Reader == nil || strings.TrimSpace(input.FileName) == "" {
		return nil, ErrInvalidInput
	}

	user, err := s.userRepo.GetByID(input.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrNotFound
	}

	now := time.Now()
	key := storage.MediaKey(input.UserID, input.FileName, now)
	if err := s.store.Put(ctx, key, input.Reader, input.ContentType); err != nil {
		return nil, err
	}

	upload := &models.MediaUpload{
		UserID:     input.UserID,
		UserName:   input.UserName,
		LeaderID:   user.LeaderID,
		OSSKey:     key,
		FileName:   input.FileName,
		FileType:   fileTypeFromContentType(input.ContentType),
		FileSize:   input.FileSize,
		UploadDate: now.Format("2006-01-02"),
	}
	if err := s.repo.Create(upload); err != nil {
		// 落库失败时异步清理孤儿对象
		_ = s.queueClient.EnqueueStorageDelete(queue.StorageDeletePayload{Keys: []string{key}})
		return nil, err
	}
	return upload, nil
}

// SignedUploadURL 生成素材直传链接，返回对象键与限时 PUT 地址
func (s *MediaService) SignedUploadURL(ctx context.Context, userID uint, fileName, contentType string) (string, string, error) {
	if s.store == nil || !s.store.Enabled() {
		return "", "", ErrStorageDisabled
	}
	if userID == 0 || strings.TrimSpace(fileName) == "" {
		return "", "", ErrInvalidInput
	}
	key := storage.MediaKey(userID, fileName, time.Now())
	url, err := s.store.SignedUploadURL(ctx, key, contentType)
	if err != nil {
		return "", "", err
	}
	return key, url, nil
}

// ViewURL 生成素材限时访问链接
func (s *MediaService) ViewURL(ctx context.Context, key string) (string, error) {
	if s.store == nil || !s.store.Enabled() {
		return "", ErrStorageDisabled
	}
	return s.store.SignedReadURL(ctx, key)
}

// List 素材列表
func (s *MediaService) List(filter repository.MediaListFilter) ([]models.MediaUpload, int64, error) {
	return s.repo.List(filter)
}

// TodayStats 今日上传量与达标目标
type TodayStats struct {
	Count  int64 `json:"count"`
	Target int   `json:"target"`
	Done   bool  `json:"done"`
}

// TodayStatsFor 用户今日上传统计
func (s *MediaService) TodayStatsFor(userID uint) (*TodayStats, error) {
	today := time.Now().Format("2006-01-02")
	count, err := s.repo.CountByUserAndDate(userID, today)
	if err != nil {
		return nil, err
	}
	return &TodayStats{
		Count:  count,
		Target: s.dailyTarget,
		Done:   count >= int64(s.dailyTarget),
	}, nil
}

// DailyCounts 用户按日期的上传量分布
func (s *MediaService) DailyCounts(userID uint, startDate, endDate string) ([]repository.MediaDailyCount, error) {
	return s.repo.DailyCounts(userID, startDate, endDate)
}

// TeamCount 组长名下某日上传量
func (s *MediaService) TeamCount(leaderID uint, date string) (int64, error) {
	if strings.TrimSpace(date) == "" {
		date = time.Now().Format("2006-01-02")
	}
	return s.repo.CountByLeaderAndDate(leaderID, date)
}

// UpdateCopywriting 组长为名下素材编辑文案
func (s *MediaService) UpdateCopywriting(mediaID, operatorID uint, copywriting string) (*models.MediaUpload, error) {
	upload, err := s.repo.GetByID(mediaID)
	if err != nil {
		return nil, err
	}
	if upload == nil {
		return nil, ErrNotFound
	}
	if upload.LeaderID == nil || *upload.LeaderID != operatorID {
		return nil, ErrForbidden
	}

	now := time.Now()
	upload.Copywriting = copywriting
	upload.CopywritingUpdatedAt = &now
	upload.CopywritingUpdatedBy = &operatorID
	if err := s.repo.Update(upload); err != nil {
		return nil, err
	}
	return upload, nil
}

// Delete 删除素材记录并异步清理存储对象
func (s *MediaService) Delete(mediaID, operatorID uint, viewAll bool) error {
	upload, err := s.repo.GetByID(mediaID)
	if err != nil {
		return err
	}
	if upload == nil {
		return ErrNotFound
	}
	if upload.UserID != operatorID && !viewAll {
		return ErrForbidden
	}
	if err := s.repo.Delete(mediaID); err != nil {
		return err
	}
	_ = s.queueClient.EnqueueStorageDelete(queue.StorageDeletePayload{Keys: []string{upload.OSSKey}})
	return nil
}
