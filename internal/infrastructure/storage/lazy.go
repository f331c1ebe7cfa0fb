package storage

import (
	"context"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

const defaultOpenTimeout = 10 * time.Second

// Lazy opens its value on the first Get and keeps it until Close. Concurrent
// first calls share one open attempt. A failed open is not remembered, so the
// next Get tries again.
type Lazy[T any] struct {
	open    func(ctx context.Context) (T, error)
	close   func(T) error
	timeout time.Duration

	group  singleflight.Group
	mu     sync.RWMutex
	value  T
	ready  bool
	closed bool
}

type LazyOption[T any] func(*Lazy[T])

// WithOpenTimeout bounds a single open attempt.
func WithOpenTimeout[T any](d time.Duration) LazyOption[T] {
	return func(l *Lazy[T]) {
		l.timeout = d
	}
}

func NewLazy[T any](open func(ctx context.Context) (T, error), closeFn func(T) error, opts ...LazyOption[T]) *Lazy[T] {
	l := &Lazy[T]{
		open:    open,
		close:   closeFn,
		timeout: defaultOpenTimeout,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

func (l *Lazy[T]) Get(ctx context.Context) (T, error) {
	var zero T

	l.mu.RLock()
	value, ready, closed := l.value, l.ready, l.closed
	l.mu.RUnlock()
	if closed {
		return zero, ErrClosed
	}
	if ready {
		return value, nil
	}

	// the open outlives a caller that gives up, others may be waiting on it
	openCtx := context.WithoutCancel(ctx)
	ch := l.group.DoChan("open", func() (any, error) {
		return l.doOpen(openCtx)
	})

	select {
	case <-ctx.Done():
		return zero, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return zero, res.Err
		}
		return res.Val.(T), nil
	}
}

func (l *Lazy[T]) doOpen(ctx context.Context) (T, error) {
	var zero T

	l.mu.RLock()
	if l.closed {
		l.mu.RUnlock()
		return zero, ErrClosed
	}
	if l.ready {
		v := l.value
		l.mu.RUnlock()
		return v, nil
	}
	l.mu.RUnlock()

	ctx, cancel := context.WithTimeout(ctx, l.timeout)
	defer cancel()

	v, err := l.open(ctx)
	if err != nil {
		return zero, fmt.Errorf("open storage: %w", err)
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed {
		if l.close != nil {
			_ = l.close(v)
		}
		return zero, ErrClosed
	}
	l.value, l.ready = v, true

	return v, nil
}

// Ready reports whether the value has been opened.
func (l *Lazy[T]) Ready() bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.ready
}

// Close releases the value if it was ever opened. Get fails with ErrClosed afterwards.
func (l *Lazy[T]) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.closed {
		return nil
	}
	l.closed = true

	if !l.ready || l.close == nil {
		return nil
	}

	var zero T
	v := l.value
	l.value, l.ready = zero, false

	return l.close(v)
}
