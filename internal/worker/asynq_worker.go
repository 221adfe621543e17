package worker

import (
	"context"
	"strings"

	"github.com/tienda-next/internal/logger"
	"github.com/tienda-next/internal/queue"

	"github.com/hibiken/asynq"
)

// MediaRemover 删除本地媒体文件
type MediaRemover interface {
	RemoveProductImage(ref string) error
}

// Consumer 异步任务消费者
type Consumer struct {
	media MediaRemover
}

// NewConsumer 创建消费者
func NewConsumer(media MediaRemover) *Consumer {
	return &Consumer{media: media}
}

// Register 注册任务处理器
func (c *Consumer) Register(mux *asynq.ServeMux) {
	if c == nil || mux == nil {
		logger.Debugw("worker_register_skip_nil", "consumer_nil", c == nil, "mux_nil", mux == nil)
		return
	}
	mux.HandleFunc(queue.TaskMediaRemove, c.handleMediaRemove)
}

func (c *Consumer) handleMediaRemove(_ context.Context, task *asynq.Task) error {
	if c == nil || task == nil || c.media == nil {
		logger.Debugw("worker_media_remove_skip_nil", "task_nil", task == nil)
		return nil
	}
	payload, err := queue.ParseMediaRemovePayload(task)
	if err != nil {
		logger.Warnw("worker_media_remove_unmarshal_failed", "error", err)
		// 载荷损坏时重试无意义
		return asynq.SkipRetry
	}
	if strings.TrimSpace(payload.Ref) == "" {
		logger.Debugw("worker_media_remove_skip_empty_ref")
		return nil
	}
	if err := c.media.RemoveProductImage(payload.Ref); err != nil {
		logger.Warnw("worker_media_remove_failed", "ref", payload.Ref, "error", err)
		return err
	}
	logger.Infow("worker_media_removed", "ref", payload.Ref)
	return nil
}
