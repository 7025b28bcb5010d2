package queue

import "errors"

// Sentinel errors returned by Enqueue.
var (
	ErrQueueClosed = errors.New("queue is closed")
	ErrQueueFull   = errors.New("queue is full")
)
