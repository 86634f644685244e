package service

import (
	"github.com/lipai-ops/internal/models"
	"github.com/lipai-ops/internal/queue"
	"github.com/lipai-ops/internal/repository"
)

// OperationLogService 操作日志服务。
// 写入走异步队列，查询直接读库；队列未启用时降级为同步写入。
type OperationLogService struct {
	repo        repository.OperationLogRepository
	queueClient *queue.Client
}

// NewOperationLogService 创建操作日志服务
func NewOperationLogService(
	repo repository.OperationLogRepository,
	queueClient *queue.Client,
) *OperationLogService {
	return &OperationLogService{
		repo:        repo,
		queueClient: queueClient,
	}
}

// Record 记录一次操作
func (s *OperationLogService) Record(payload queue.OperationLogPayload) error {
	if s.queueClient.Enabled() {
		return s.queueClient.EnqueueOperationLog(payload)
	}
	return s.repo.Create(&models.OperationLog{
		UserID:     payload.UserID,
		Username:   payload.Username,
		Action:     payload.Action,
		TargetType: payload.TargetType,
		TargetID:   payload.TargetID,
		Detail:     payload.Detail,
		IP:         payload.IP,
	})
}

// Persist 直接落库（队列消费侧使用）
func (s *OperationLogService) Persist(payload queue.OperationLogPayload) error {
	return s.repo.Create(&models.OperationLog{
		UserID:     payload.UserID,
		Username:   payload.Username,
		Action:     payload.Action,
		TargetType: payload.TargetType,
		TargetID:   payload.TargetID,
		Detail:     payload.Detail,
		IP:         payload.IP,
	})
}

// List 操作日志列表
func (s *OperationLogService) List(filter repository.OperationLogListFilter) ([]models.OperationLog, int64, error) {
	return s.repo.List(filter)
}
