package lock

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalLocker_ExclusivePerKey(t *testing.T) {
	l := NewLocalLocker()
	ctx := context.Background()

	release, err := l.Acquire(ctx, "late-fee:c1")
	require.NoError(t, err)

	_, err = l.Acquire(ctx, "late-fee:c1")
	assert.ErrorIs(t, err, ErrLockHeld)

	other, err := l.Acquire(ctx, "late-fee:c2")
	require.NoError(t, err)
	other()

	release()
	release() // idempotent

	again, err := l.Acquire(ctx, "late-fee:c1")
	require.NoError(t, err)
	again()
}

func TestLocalLocker_ConcurrentAcquire(t *testing.T) {
	l := NewLocalLocker()
	var winners int32
	var wg sync.WaitGroup
	start := make(chan struct{})

	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			if _, err := l.Acquire(context.Background(), "lease:1"); err == nil {
				atomic.AddInt32(&winners, 1)
			}
		}()
	}
	close(start)
	wg.Wait()

	assert.Equal(t, int32(1), winners)
}
