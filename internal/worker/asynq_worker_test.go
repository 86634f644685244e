package worker

import (
	"context"
	"testing"

	"github.com/lipai-ops/internal/provider"
	"github.com/lipai-ops/internal/queue"

	"github.com/hibiken/asynq"
)

func TestRegisterNilConsumer(t *testing.T) {
	var c *Consumer
	c.Register(asynq.NewServeMux())
}

func TestHandleOperationLogInvalidPayload(t *testing.T) {
	c := NewConsumer(&provider.Container{})
	task := asynq.NewTask(queue.TaskOperationLog, []byte("not json"))
	if err := c.handleOperationLog(context.Background(), task); err == nil {
		t.Fatal("expected unmarshal error for invalid payload")
	}
}

func TestHandleOperationLogSkipEmptyAction(t *testing.T) {
	c := NewConsumer(&provider.Container{})
	task := asynq.NewTask(queue.TaskOperationLog, []byte(`{"user_id":1,"action":""}`))
	if err := c.handleOperationLog(context.Background(), task); err != nil {
		t.Fatalf("expected empty action to be skipped, got %v", err)
	}
}

func TestHandleStorageDeleteSkipEmptyKeys(t *testing.T) {
	c := NewConsumer(&provider.Container{})
	task := asynq.NewTask(queue.TaskStorageDelete, []byte(`{"keys":[]}`))
	if err := c.handleStorageDelete(context.Background(), task); err != nil {
		t.Fatalf("expected empty keys to be skipped, got %v", err)
	}
}
