package queue

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInMemoryQueue(t *testing.T) {
	q := NewInMemoryQueue(3)

	require.NoError(t, q.Enqueue(1))
	require.NoError(t, q.Enqueue(2))
	assert.Equal(t, 2, q.Size())

	item, err := q.Dequeue()
	require.NoError(t, err)
	assert.Equal(t, 1, item)

	require.NoError(t, q.Enqueue(3))
	all, err := q.ReadAllMessages()
	require.NoError(t, err)
	assert.Equal(t, []interface{}{2, 3}, all)
	assert.Equal(t, 0, q.Size())

	_, err = q.Dequeue()
	assert.ErrorIs(t, err, ErrQueueEmpty)

	all, err = q.ReadAllMessages()
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestInMemoryQueueFull(t *testing.T) {
	q := NewInMemoryQueue(2)
	require.NoError(t, q.Enqueue("a"))
	require.NoError(t, q.Enqueue("b"))
	assert.ErrorIs(t, q.Enqueue("c"), ErrQueueFull)
	assert.Equal(t, 2, q.Size())

	q.ClearQueue()
	assert.Equal(t, 0, q.Size())
	assert.NoError(t, q.Enqueue("c"))
}

func TestInMemoryQueueDefaultSize(t *testing.T) {
	q := NewInMemoryQueue(0)
	assert.Equal(t, DefaultQueueBufferSize, cap(q.ch))
}

func TestInMemoryQueueConcurrent(t *testing.T) {
	q := NewInMemoryQueue(1000)
	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				_ = q.Enqueue(j)
			}
		}()
	}
	wg.Wait()

	all, err := q.ReadAllMessages()
	require.NoError(t, err)
	assert.Len(t, all, 1000)
}
