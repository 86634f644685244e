package queue

import (
	"encoding/json"

	"github.com/lipai-ops/internal/constants"

	"github.com/hibiken/asynq"
)

const (
	// TaskOperationLog 操作日志落库任务
	TaskOperationLog = constants.TaskOperationLog
	// TaskStorageDelete 对象存储清理任务
	TaskStorageDelete = constants.TaskStorageDelete
)

// OperationLogPayload 操作日志任务载荷
type OperationLogPayload struct {
	UserID     uint   `json:"user_id"`
	Username   string `json:"username"`
	Action     string `json:"action"`
	TargetType string `json:"target_type"`
	TargetID   uint   `json:"target_id"`
	Detail     string `json:"detail"`
	IP         string `json:"ip"`
}

// StorageDeletePayload 对象存储清理任务载荷
type StorageDeletePayload struct {
	Keys []string `json:"keys"`
}

// NewOperationLogTask 创建操作日志任务
func NewOperationLogTask(payload OperationLogPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskOperationLog, body), nil
}

// NewStorageDeleteTask 创建对象存储清理任务
func NewStorageDeleteTask(payload StorageDeletePayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskStorageDelete, body), nil
}
