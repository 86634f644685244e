package service

import (
	"strings"
	"time"

	"github.com/lipai-ops/internal/models"
	"github.com/lipai-ops/internal/repository"

	"github.com/shopspring/decimal"
)

// DailyLogService 工作日志服务
type DailyLogService struct {
	repo repository.DailyLogRepository
}

// NewDailyLogService 创建工作日志服务
func NewDailyLogService(repo repository.DailyLogRepository) *DailyLogService {
	return &DailyLogService{repo: repo}
}

var defaultWorkHours = decimal.NewFromInt(8)

// Upsert 按用户+日期写入日志，同一天重复提交覆盖原内容
func (s *DailyLogService) Upsert(userID uint, logDate, content string, workHours *decimal.Decimal) (*models.DailyLog, error) {
	content = strings.TrimSpace(content)
	if userID == 0 || content == "" {
		return nil, ErrInvalidInput
	}
	logDate = strings.TrimSpace(logDate)
	if logDate == "" {
		logDate = time.Now().Format("2006-01-02")
	} else if _, err := time.Parse("2006-01-02", logDate); err != nil {
		return nil, ErrInvalidInput
	}

	hours := defaultWorkHours
	if workHours != nil {
		if workHours.IsNegative() {
			return nil, ErrInvalidInput
		}
		hours = *workHours
	}

	existing, err := s.repo.GetByUserAndDate(userID, logDate)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		existing.Content = content
		existing.WorkHours = hours
		if err := s.repo.Update(existing); err != nil {
			return nil, err
		}
		return existing, nil
	}

	log := &models.DailyLog{
		UserID:    userID,
		LogDate:   logDate,
		Content:   content,
		WorkHours: hours,
	}
	if err := s.repo.Create(log); err != nil {
		return nil, err
	}
	return log, nil
}

// List 工作日志列表
func (s *DailyLogService) List(filter repository.DailyLogListFilter) ([]models.DailyLog, int64, error) {
	return s.repo.List(filter)
}

// GetByDate 某用户某日的日志
func (s *DailyLogService) GetByDate(userID uint, logDate string) (*models.DailyLog, error) {
	log, err := s.repo.GetByUserAndDate(userID, logDate)
	if err != nil {
		return nil, err
	}
	if log == nil {
		return nil, ErrNotFound
	}
	return log, nil
}
