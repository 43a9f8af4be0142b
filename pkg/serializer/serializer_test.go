package serializer

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestDoRunsSerialPerKey(t *testing.T) {
	k := New()

	var inFlight atomic.Int32
	var maxSeen atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := k.Do("doc-1", func() error {
				n := inFlight.Add(1)
				if m := maxSeen.Load(); n > m {
					maxSeen.Store(n)
				}
				time.Sleep(time.Millisecond)
				inFlight.Add(-1)
				return nil
			})
			require.NoError(t, err)
		}()
	}
	wg.Wait()

	require.Equal(t, int32(1), maxSeen.Load())
}

func TestDoKeysRunConcurrently(t *testing.T) {
	k := New()

	release := make(chan struct{})
	started := make(chan struct{})
	go func() {
		_ = k.Do("slow", func() error {
			close(started)
			<-release
			return nil
		})
	}()
	<-started

	// A different key must not wait for the slow one.
	done := make(chan struct{})
	go func() {
		_ = k.Do("fast", func() error { return nil })
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("operation under a different key was blocked")
	}
	close(release)
}

func TestDoFIFOWithinKey(t *testing.T) {
	k := New()

	var order []int
	var mu sync.Mutex
	var wg sync.WaitGroup

	// Hold the key so later submissions queue behind one another in a
	// known submission order.
	gate := make(chan struct{})
	started := make(chan struct{})
	go func() {
		_ = k.Do("doc", func() error {
			close(started)
			<-gate
			return nil
		})
	}()
	<-started

	for i := 0; i < 8; i++ {
		i := i
		submitted := make(chan struct{})
		wg.Add(1)
		go func() {
			defer wg.Done()
			close(submitted)
			_ = k.Do("doc", func() error {
				mu.Lock()
				order = append(order, i)
				mu.Unlock()
				return nil
			})
		}()
		<-submitted
		// Give the goroutine time to take its queue position before
		// the next one is submitted.
		time.Sleep(5 * time.Millisecond)
	}
	close(gate)
	wg.Wait()

	require.Equal(t, []int{0, 1, 2, 3, 4, 5, 6, 7}, order)
}

func TestDoFailureDoesNotBlockQueue(t *testing.T) {
	k := New()

	boom := errors.New("boom")
	err := k.Do("doc", func() error { return boom })
	require.ErrorIs(t, err, boom)

	ran := false
	err = k.Do("doc", func() error { ran = true; return nil })
	require.NoError(t, err)
	require.True(t, ran)
}

func TestDoReleasesBookkeeping(t *testing.T) {
	k := New()

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = k.Do("a", func() error { return nil })
			_ = k.Do("b", func() error { return nil })
		}()
	}
	wg.Wait()

	k.mu.Lock()
	defer k.mu.Unlock()
	require.Empty(t, k.keys)
}
