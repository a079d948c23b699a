package deso

import (
	"sync"
	"time"

	"github.com/pkg/errors"
)

type PubSubQueue[T any] interface {
	On(func(message T)) (cleanup func())
	Broadcast(message T)
	Wait(timeout time.Duration) error
	Close()
}

type subscriber[T any] struct {
	messages chan T
	callback func(message T)
}

// queue delivers every broadcast to each subscriber in order, on one
// goroutine per subscriber.
type queue[T any] struct {
	mu          sync.RWMutex
	subscribers map[int]*subscriber[T]
	nextID      int
	inFlight    sync.WaitGroup
	closed      bool
}

var _ PubSubQueue[SessionEvent] = &queue[SessionEvent]{}

func NewQueue[T any]() PubSubQueue[T] {
	return &queue[T]{subscribers: make(map[int]*subscriber[T])}
}

func (q *queue[T]) On(callback func(message T)) (cleanup func()) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return func() {}
	}

	id := q.nextID
	q.nextID++

	sub := &subscriber[T]{
		messages: make(chan T, 100),
		callback: callback,
	}
	q.subscribers[id] = sub

	go func() {
		for msg := range sub.messages {
			sub.callback(msg)
			q.inFlight.Done()
		}
	}()

	return func() {
		q.mu.Lock()
		defer q.mu.Unlock()
		if s, exists := q.subscribers[id]; exists {
			delete(q.subscribers, id)
			close(s.messages)
		}
	}
}

// Broadcast blocks while a subscriber's buffer is full.
func (q *queue[T]) Broadcast(message T) {
	q.mu.RLock()
	defer q.mu.RUnlock()

	if q.closed {
		return
	}

	for _, sub := range q.subscribers {
		q.inFlight.Add(1)
		sub.messages <- message
	}
}

// Wait returns once every message broadcast so far has been handled.
func (q *queue[T]) Wait(timeout time.Duration) error {
	done := make(chan struct{})
	go func() {
		q.inFlight.Wait()
		close(done)
	}()

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case <-done:
		return nil
	case <-timer.C:
		return errors.New("timeout waiting for messages to be processed")
	}
}

func (q *queue[T]) Close() {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return
	}
	q.closed = true

	for id, sub := range q.subscribers {
		delete(q.subscribers, id)
		close(sub.messages)
	}
}
