package queue

import (
	"errors"
	"sync"
)

// ErrTaskDoneUnderflow is returned when TaskDone is called more times than
// items were put.
var ErrTaskDoneUnderflow = errors.New("task done called too many times")

// Item is either a unit of work or the shutdown signal for one consumer.
type Item[T any] struct {
	value    T
	shutdown bool
}

// Work wraps a value as a work item.
func Work[T any](v T) Item[T] {
	return Item[T]{value: v}
}

// Shutdown returns the item that tells one consumer to exit.
func Shutdown[T any]() Item[T] {
	return Item[T]{shutdown: true}
}

// IsShutdown reports whether the item is the shutdown signal.
func (i Item[T]) IsShutdown() bool {
	return i.shutdown
}

// Value returns the wrapped work value.
func (i Item[T]) Value() T {
	return i.value
}

// Queue is an unbounded FIFO with join semantics: every Put raises an
// unfinished-task count that TaskDone lowers, and Join blocks until it
// reaches zero. It is safe for concurrent use.
type Queue[T any] struct {
	mu         sync.Mutex
	notEmpty   *sync.Cond
	drained    *sync.Cond
	items      []Item[T]
	unfinished int
}

// New creates an empty queue.
func New[T any]() *Queue[T] {
	q := &Queue[T]{}
	q.notEmpty = sync.NewCond(&q.mu)
	q.drained = sync.NewCond(&q.mu)
	return q
}

// Put appends an item and counts it as unfinished.
func (q *Queue[T]) Put(item Item[T]) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.items = append(q.items, item)
	q.unfinished++
	q.notEmpty.Signal()
}

// Get removes and returns the oldest item, blocking while the queue is empty.
func (q *Queue[T]) Get() Item[T] {
	q.mu.Lock()
	defer q.mu.Unlock()
	for len(q.items) == 0 {
		q.notEmpty.Wait()
	}
	item := q.items[0]
	var zero Item[T]
	q.items[0] = zero
	q.items = q.items[1:]
	return item
}

// TaskDone marks one previously fetched item as finished.
func (q *Queue[T]) TaskDone() error {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.unfinished <= 0 {
		return ErrTaskDoneUnderflow
	}
	q.unfinished--
	if q.unfinished == 0 {
		q.drained.Broadcast()
	}
	return nil
}

// Join blocks until every item put so far has been marked done.
func (q *Queue[T]) Join() {
	q.mu.Lock()
	defer q.mu.Unlock()
	for q.unfinished > 0 {
		q.drained.Wait()
	}
}

// Len returns the number of items waiting to be fetched.
func (q *Queue[T]) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}

// Unfinished returns the number of items put but not yet marked done.
func (q *Queue[T]) Unfinished() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.unfinished
}
