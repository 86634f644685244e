package repository

import (
	"errors"
	"strings"

	"github.com/lipai-ops/internal/models"

	"gorm.io/gorm"
)

// MediaDailyCount 按日期统计的素材上传量
type MediaDailyCount struct {
	UploadDate string `json:"uploadDate"`
	Count      int64  `json:"count"`
}

// MediaUserCount 按用户统计的素材上传量
type MediaUserCount struct {
	UserID uint  `json:"userId"`
	Count  int64 `json:"count"`
}

// MediaRepository 素材上传数据访问接口
type MediaRepository interface {
	List(filter MediaListFilter) ([]models.MediaUpload, int64, error)
	GetByID(id uint) (*models.MediaUpload, error)
	Create(upload *models.MediaUpload) error
	Update(upload *models.MediaUpload) error
	Delete(id uint) error
	CountByUserAndDate(userID uint, uploadDate string) (int64, error)
	CountByLeaderAndDate(leaderID uint, uploadDate string) (int64, error)
	DailyCounts(userID uint, startDate, endDate string) ([]MediaDailyCount, error)
	UserCountsByDate(uploadDate string) ([]MediaUserCount, error)
	WithTx(tx *gorm.DB) MediaRepository
}

// GormMediaRepository GORM 实现
type GormMediaRepository struct {
	db *gorm.DB
}

// NewMediaRepository 创建素材仓库
func NewMediaRepository(db *gorm.DB) *GormMediaRepository {
	return &GormMediaRepository{db: db}
}

// WithTx 绑定事务
func (r *GormMediaRepository) WithTx(tx *gorm.DB) MediaRepository {
	if tx == nil {
		return r
	}
	return &GormMediaRepository{db: tx}
}

// List 素材列表
func (r *GormMediaRepository) List(filter MediaListFilter) ([]models.MediaUpload, int64, error) {
	var uploads []models.MediaUpload

	query := r.db.Model(&models.MediaUpload{})
	if filter.UserID > 0 {
		query = query.Where("user_id = ?", filter.UserID)
	}
	if filter.LeaderID > 0 {
		query = query.Where("leader_id = ?", filter.LeaderID)
	}
	if uploadDate := strings.TrimSpace(filter.UploadDate); uploadDate != "" {
		query = query.Where("upload_date = ?", uploadDate)
	}
	if fileType := strings.TrimSpace(filter.FileType); fileType != "" {
		query = query.Where("file_type = ?", fileType)
	}
	switch filter.CopywritingFilter {
	case "with":
		query = query.Where("copywriting IS NOT NULL AND copywriting != ''")
	case "without":
		query = query.Where("copywriting IS NULL OR copywriting = ''")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)

	if err := query.Order("id DESC").Find(&uploads).Error; err != nil {
		return nil, 0, err
	}

	return uploads, total, nil
}

// GetByID 根据 ID 获取素材
func (r *GormMediaRepository) GetByID(id uint) (*models.MediaUpload, error) {
	var upload models.MediaUpload
	if err := r.db.First(&upload, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &upload, nil
}

// Create 创建素材记录
func (r *GormMediaRepository) Create(upload *models.MediaUpload) error {
	return r.db.Create(upload).Error
}

// Update 更新素材记录
func (r *GormMediaRepository) Update(upload *models.MediaUpload) error {
	return r.db.Save(upload).Error
}

// Delete 删除素材记录
func (r *GormMediaRepository) Delete(id uint) error {
	return r.db.Delete(&models.MediaUpload{}, id).Error
}

// CountByUserAndDate 统计用户某日上传量
func (r *GormMediaRepository) CountByUserAndDate(userID uint, uploadDate string) (int64, error) {
	var count int64
	if err := r.db.Model(&models.MediaUpload{}).
		Where("user_id = ? AND upload_date = ?", userID, uploadDate).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// CountByLeaderAndDate 统计组长名下某日上传量
func (r *GormMediaRepository) CountByLeaderAndDate(leaderID uint, uploadDate string) (int64, error) {
	var count int64
	if err := r.db.Model(&models.MediaUpload{}).
		Where("leader_id = ? AND upload_date = ?", leaderID, uploadDate).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// DailyCounts 用户按日期的上传量分布
func (r *GormMediaRepository) DailyCounts(userID uint, startDate, endDate string) ([]MediaDailyCount, error) {
	var counts []MediaDailyCount
	query := r.db.Model(&models.MediaUpload{}).
		Select("upload_date, COUNT(*) as count").
		Where("user_id = ?", userID)
	if startDate != "" {
		query = query.Where("upload_date >= ?", startDate)
	}
	if endDate != "" {
		query = query.Where("upload_date <= ?", endDate)
	}
	if err := query.Group("upload_date").
		Order("upload_date DESC").
		Scan(&counts).Error; err != nil {
		return nil, err
	}
	return counts, nil
}

// UserCountsByDate 某日各用户的上传量分布
func (r *GormMediaRepository) UserCountsByDate(uploadDate string) ([]MediaUserCount, error) {
	var counts []MediaUserCount
	if err := r.db.Model(&models.MediaUpload{}).
		Select("user_id, COUNT(*) as count").
		Where("upload_date = ?", uploadDate).
		Group("user_id").
		Scan(&counts).Error; err != nil {
		return nil, err
	}
	return counts, nil
}
