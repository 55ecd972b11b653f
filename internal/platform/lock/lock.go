package lock

import (
	"context"
	"errors"
	"sync"
)

// ErrLockHeld is returned when another request currently holds the key.
var ErrLockHeld = errors.New("lock is held by another request")

// ReleaseFunc releases a previously acquired lock. It is safe to call more than once.
type ReleaseFunc func()

// Locker grants short-lived, non-blocking mutual exclusion on a string key.
// Locks are advisory: the store's version check remains the correctness boundary.
type Locker interface {
	Acquire(ctx context.Context, key string) (ReleaseFunc, error)
}

// LocalLocker serialises keys within a single process.
type LocalLocker struct {
	mu   sync.Mutex
	held map[string]struct{}
}

// NewLocalLocker creates an in-process locker.
func NewLocalLocker() *LocalLocker {
	return &LocalLocker{held: make(map[string]struct{})}
}

func (l *LocalLocker) Acquire(_ context.Context, key string) (ReleaseFunc, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if _, ok := l.held[key]; ok {
		return nil, ErrLockHeld
	}
	l.held[key] = struct{}{}

	var once sync.Once
	return func() {
		once.Do(func() {
			l.mu.Lock()
			delete(l.held, key)
			l.mu.Unlock()
		})
	}, nil
}
