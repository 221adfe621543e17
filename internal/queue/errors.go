package queue

import "errors"

// ErrDisabled 队列未启用
var ErrDisabled = errors.New("queue disabled")
