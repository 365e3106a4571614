package dispatch

import "errors"

var (
	// ErrNotRunning is returned when work is submitted before Start or after Stop
	ErrNotRunning = errors.New("dispatcher is not running")

	// ErrQueueFull is returned when the task queue cannot accept more work
	ErrQueueFull = errors.New("dispatcher queue is full")
)
