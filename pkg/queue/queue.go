package queue

import "errors"

var (
	// ErrQueueFull is returned by Enqueue when the queue has no room left.
	ErrQueueFull = errors.New("queue is full")
	// ErrQueueEmpty is returned by Dequeue when there is nothing to read.
	ErrQueueEmpty = errors.New("queue is empty")
)

// Queue represents a basic queue. Implementations must never block.
type Queue interface {
	Enqueue(item interface{}) error
	Dequeue() (interface{}, error)
	Size() int
	ReadAllMessages() ([]interface{}, error)
	ClearQueue()
}
