package queue

import (
	"encoding/json"

	"github.com/tienda-next/internal/constants"

	"github.com/hibiken/asynq"
)

// TaskMediaRemove 删除不再被引用的媒体文件
const TaskMediaRemove = constants.TaskMediaRemove

// MediaRemovePayload 媒体删除任务载荷
type MediaRemovePayload struct {
	Ref string `json:"ref"`
}

// NewMediaRemoveTask 创建媒体删除任务
func NewMediaRemoveTask(payload MediaRemovePayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskMediaRemove, body), nil
}

// ParseMediaRemovePayload 解析媒体删除任务载荷
func ParseMediaRemovePayload(task *asynq.Task) (MediaRemovePayload, error) {
	var payload MediaRemovePayload
	if task == nil {
		return payload, nil
	}
	err := json.Unmarshal(task.Payload(), &payload)
	return payload, err
}
