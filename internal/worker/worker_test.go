package worker

import (
	"context"
	"errors"
	"testing"

	"github.com/tienda-next/internal/config"
	"github.com/tienda-next/internal/queue"

	"github.com/hibiken/asynq"
)

type fakeRemover struct {
	refs []string
	err  error
}

func (f *fakeRemover) RemoveProductImage(ref string) error {
	f.refs = append(f.refs, ref)
	return f.err
}

func TestHandleMediaRemove(t *testing.T) {
	remover := &fakeRemover{}
	consumer := NewConsumer(remover)

	task, err := queue.NewMediaRemoveTask(queue.MediaRemovePayload{Ref: "productos/a.png"})
	if err != nil {
		t.Fatalf("new task failed: %v", err)
	}
	if err := consumer.handleMediaRemove(context.Background(), task); err != nil {
		t.Fatalf("handle task failed: %v", err)
	}
	if len(remover.refs) != 1 || remover.refs[0] != "productos/a.png" {
		t.Fatalf("unexpected removed refs: %v", remover.refs)
	}

	empty, _ := queue.NewMediaRemoveTask(queue.MediaRemovePayload{Ref: "  "})
	if err := consumer.handleMediaRemove(context.Background(), empty); err != nil {
		t.Fatalf("empty ref should be skipped, got %v", err)
	}
	if len(remover.refs) != 1 {
		t.Fatalf("empty ref should not reach remover")
	}
}

func TestHandleMediaRemoveErrors(t *testing.T) {
	remover := &fakeRemover{err: errors.New("disk busy")}
	consumer := NewConsumer(remover)

	broken := asynq.NewTask(queue.TaskMediaRemove, []byte("{"))
	if err := consumer.handleMediaRemove(context.Background(), broken); !errors.Is(err, asynq.SkipRetry) {
		t.Fatalf("broken payload should skip retry, got %v", err)
	}

	task, _ := queue.NewMediaRemoveTask(queue.MediaRemovePayload{Ref: "productos/a.png"})
	if err := consumer.handleMediaRemove(context.Background(), task); err == nil {
		t.Fatalf("remover error should be returned for retry")
	}
}

func TestNewServiceRequiresEnabledQueue(t *testing.T) {
	if _, err := NewService(&config.QueueConfig{Enabled: false}, NewConsumer(&fakeRemover{})); !errors.Is(err, queue.ErrDisabled) {
		t.Fatalf("want ErrDisabled, got %v", err)
	}
	if _, err := NewService(&config.QueueConfig{Enabled: true}, nil); err == nil {
		t.Fatalf("nil consumer should fail")
	}
}
