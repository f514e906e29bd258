// Package pipeline moves a finite source sequence through a shared bounded
// queue with one producer and one consumer goroutine, returning the collected
// items to the caller synchronously.
package pipeline

import (
	"fmt"
	"sync"

	"github.com/Dinesh0602/Producer-Consumer-Online-Retail-Analysis/queue"
)

type (
	// Source is iterated to completion exactly once in a fixed order.
	// Next reports the next item, false when the sequence is exhausted,
	// or a terminal error that aborts the iteration.
	Source[T any] interface {
		Next() (T, bool, error)
	}

	// Message is the envelope flowing through the shared queue.
	// Done marks end of production; termination is decided by this tag,
	// never by comparing payload values, so an item equal-by-value to
	// anything cannot be mistaken for the marker.
	Message[T any] struct {
		Item T
		Done bool
	}

	Producer[T any] struct {
		q      queue.Queue[Message[T]]
		source Source[T]
	}

	Consumer[T any] struct {
		q    queue.Queue[Message[T]]
		dest []T
		sink func(T) error
	}
)

func NewProducer[T any](q queue.Queue[Message[T]], source Source[T]) *Producer[T] {
	return &Producer[T]{q: q, source: source}
}

// Run drives the source into the queue and is expected to execute on its own
// goroutine. The done marker is pushed exactly once after the source is
// exhausted. On a source failure the marker is still pushed (best effort)
// so the consumer is always released; the error is returned to the joiner.
func (p *Producer[T]) Run() (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("source panicked: %v", r)
		}
		p.q.Put(Message[T]{Done: true})
	}()
	for {
		item, ok, nerr := p.source.Next()
		if nerr != nil {
			return nerr
		}
		if !ok {
			return nil
		}
		p.q.Put(Message[T]{Item: item})
	}
}

func NewConsumer[T any](q queue.Queue[Message[T]]) *Consumer[T] {
	return &Consumer[T]{q: q}
}

// WithSink registers a per-item hook invoked in arrival order before the item
// lands in the destination. A sink error is a consumer failure.
func (c *Consumer[T]) WithSink(sink func(T) error) *Consumer[T] {
	c.sink = sink
	return c
}

// Run drains the queue until the done marker and is expected to execute on
// its own goroutine. After a failure it keeps draining to the marker without
// appending, so a blocked producer always gets its slots back.
func (c *Consumer[T]) Run() error {
	var first error
	for {
		m := c.q.Get()
		if m.Done {
			return first
		}
		if first != nil {
			continue
		}
		first = c.consume(m.Item)
	}
}

func (c *Consumer[T]) consume(item T) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("sink panicked: %v", r)
		}
	}()
	if c.sink != nil {
		if err = c.sink(item); err != nil {
			return err
		}
	}
	c.dest = append(c.dest, item)
	return nil
}

// Destination hands over the collected items. Valid only after Run returned;
// during the run the slice belongs to the consumer goroutine alone.
func (c *Consumer[T]) Destination() []T {
	return c.dest
}

// Run executes one producer/consumer round over a fresh queue of the given
// capacity and blocks until both goroutines terminated. On any worker failure
// the partial destination is withheld and the first failure is returned.
func Run[T any](source Source[T], capacity int) ([]T, error) {
	return RunWith(source, capacity, nil)
}

func RunWith[T any](source Source[T], capacity int, sink func(T) error) ([]T, error) {
	q, err := queue.New[Message[T]](capacity)
	if err != nil {
		return nil, err
	}
	producer := NewProducer(q, source)
	consumer := NewConsumer(q)
	if sink != nil {
		consumer.WithSink(sink)
	}

	var (
		wg   sync.WaitGroup
		perr error
		cerr error
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		perr = producer.Run()
	}()
	go func() {
		defer wg.Done()
		cerr = consumer.Run()
	}()
	wg.Wait()

	if perr != nil {
		return nil, &ProducerError{Err: perr}
	}
	if cerr != nil {
		return nil, &ConsumerError{Err: cerr}
	}
	return consumer.Destination(), nil
}

// RunSlice is Run over a snapshot of the given slice.
func RunSlice[T any](items []T, capacity int) ([]T, error) {
	return Run[T](NewSliceSource(items), capacity)
}
