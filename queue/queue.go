package queue

import (
	"errors"
	"sync"
)

// Returned by New when the requested capacity is not positive
var ErrInvalidCapacity = errors.New("queue capacity must be positive")

type (
	// Bounded blocking FIFO shared by one producer and one consumer.
	// There is no cancellation in the contract, blocking is unbounded
	// until space/data appears.
	Queue[T any] interface {
		// Blocks while the buffer is full, then appends item at the tail
		Put(item T)

		// Blocks while the buffer is empty, then removes and returns the head.
		// Items come out in exactly the order they were put.
		Get() T

		// Snapshots taken under the lock.
		// The value may be stale as soon as the call returns.
		Size() int
		IsEmpty() bool
		IsFull() bool

		Capacity() int
	}

	queueImpl[T any] struct {
		mu       sync.Mutex
		notEmpty *sync.Cond
		notFull  *sync.Cond
		buf      []T // Ring storage, fixed at construction
		head     int
		tail     int
		size     int
	}
)

func New[T any](capacity int) (Queue[T], error) {
	if capacity <= 0 {
		return nil, ErrInvalidCapacity
	}
	q := &queueImpl[T]{buf: make([]T, capacity)}
	q.notEmpty = sync.NewCond(&q.mu)
	q.notFull = sync.NewCond(&q.mu)
	return q, nil
}

func (q *queueImpl[T]) Put(item T) {
	q.mu.Lock()
	defer q.mu.Unlock()
	// Wait releases the lock; re-check on wakeup guards against
	// spurious wakeups and lost races for the freed slot
	for q.size == len(q.buf) {
		q.notFull.Wait()
	}
	q.buf[q.tail] = item
	q.tail = q.next(q.tail)
	q.size++
	q.notEmpty.Signal()
}

func (q *queueImpl[T]) Get() T {
	q.mu.Lock()
	defer q.mu.Unlock()
	for q.size == 0 {
		q.notEmpty.Wait()
	}
	item := q.buf[q.head]
	var zero T
	q.buf[q.head] = zero // Do not retain the slot reference
	q.head = q.next(q.head)
	q.size--
	q.notFull.Signal()
	return item
}

func (q *queueImpl[T]) next(i int) int {
	i++
	if i == len(q.buf) {
		return 0
	}
	return i
}

func (q *queueImpl[T]) Size() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.size
}

func (q *queueImpl[T]) IsEmpty() bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.size == 0
}

func (q *queueImpl[T]) IsFull() bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.size == len(q.buf)
}

func (q *queueImpl[T]) Capacity() int {
	return len(q.buf)
}
