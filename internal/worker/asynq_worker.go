package worker

import (
	"context"
	"encoding/json"

	"github.com/lipai-ops/internal/logger"
	"github.com/lipai-ops/internal/provider"
	"github.com/lipai-ops/internal/queue"

	"github.com/hibiken/asynq"
)

// Consumer 异步任务消费者
type Consumer struct {
	*provider.Container
}

// NewConsumer 创建消费者
func NewConsumer(c *provider.Container) *Consumer {
	return &Consumer{
		Container: c,
	}
}

// Register 注册消费者
func (c *Consumer) Register(mux *asynq.ServeMux) {
	if c == nil || mux == nil {
		logger.Debugw("worker_register_skip_nil", "consumer_nil", c == nil, "mux_nil", mux == nil)
		return
	}
	mux.HandleFunc(queue.TaskOperationLog, c.handleOperationLog)
	mux.HandleFunc(queue.TaskStorageDelete, c.handleStorageDelete)
}

func (c *Consumer) handleOperationLog(_ context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		logger.Debugw("worker_operation_log_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	var payload queue.OperationLogPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_operation_log_unmarshal_failed", "error", err)
		return err
	}
	if payload.Action == "" {
		logger.Debugw("worker_operation_log_skip_empty_action", "user_id", payload.UserID)
		return nil
	}
	if c.OperationLogService == nil {
		logger.Warnw("worker_operation_log_skip_service_nil", "user_id", payload.UserID, "action", payload.Action)
		return nil
	}
	if err := c.OperationLogService.Persist(payload); err != nil {
		logger.Warnw("worker_operation_log_persist_failed",
			"user_id", payload.UserID,
			"action", payload.Action,
			"target_type", payload.TargetType,
			"target_id", payload.TargetID,
			"error", err,
		)
		return err
	}
	return nil
}

func (c *Consumer) handleStorageDelete(ctx context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		logger.Debugw("worker_storage_delete_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	var payload queue.StorageDeletePayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_storage_delete_unmarshal_failed", "error", err)
		return err
	}
	if len(payload.Keys) == 0 {
		logger.Debugw("worker_storage_delete_skip_empty_keys")
		return nil
	}
	if c.Storage == nil || !c.Storage.Enabled() {
		logger.Warnw("worker_storage_delete_skip_storage_disabled", "keys", payload.Keys)
		return nil
	}
	var lastErr error
	for _, key := range payload.Keys {
		if key == "" {
			continue
		}
		if err := c.Storage.Delete(ctx, key); err != nil {
			logger.Warnw("worker_storage_delete_failed", "key", key, "error", err)
			lastErr = err
		}
	}
	return lastErr
}
