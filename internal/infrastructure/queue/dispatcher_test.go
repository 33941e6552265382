package queue

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func TestDispatcher_SameKeyRunsSerially(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	d := NewDispatcher(4, zerolog.Nop())
	d.Start(ctx)

	var running, maxRunning int32
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = d.Do(ctx, "eatery-1", func(context.Context) error {
				n := atomic.AddInt32(&running, 1)
				for {
					m := atomic.LoadInt32(&maxRunning)
					if n <= m || atomic.CompareAndSwapInt32(&maxRunning, m, n) {
						break
					}
				}
				time.Sleep(time.Millisecond)
				atomic.AddInt32(&running, -1)
				return nil
			})
		}()
	}
	wg.Wait()

	if maxRunning != 1 {
		t.Fatalf("expected serial execution for one key, saw %d concurrent", maxRunning)
	}
}

func TestDispatcher_ReturnsWorkError(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	d := NewDispatcher(2, zerolog.Nop())
	d.Start(ctx)

	want := errors.New("boom")
	if err := d.Do(ctx, "k", func(context.Context) error { return want }); !errors.Is(err, want) {
		t.Fatalf("expected %v, got %v", want, err)
	}
}

func TestDispatcher_CancelledCallerSkipsWork(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	d := NewDispatcher(1, zerolog.Nop())
	d.Start(ctx)

	callCtx, callCancel := context.WithCancel(ctx)
	callCancel()
	called := false
	err := d.Do(callCtx, "k", func(context.Context) error {
		called = true
		return nil
	})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if called {
		t.Fatalf("cancelled work must not run")
	}
}

func TestDispatcher_StoppedRejectsWork(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	d := NewDispatcher(1, zerolog.Nop())
	d.Start(ctx)
	cancel()

	select {
	case <-d.stopped:
	case <-time.After(time.Second):
		t.Fatalf("workers did not stop")
	}
	if err := d.Do(context.Background(), "k", func(context.Context) error { return nil }); !errors.Is(err, ErrStopped) {
		t.Fatalf("expected ErrStopped, got %v", err)
	}
}

func TestDispatcher_ShardIndexStable(t *testing.T) {
	d := NewDispatcher(0, zerolog.Nop())
	if len(d.workers) != defaultWorkers {
		t.Fatalf("expected %d workers, got %d", defaultWorkers, len(d.workers))
	}
	if d.shardIndex("eatery-42") != d.shardIndex("eatery-42") {
		t.Fatalf("shard index must be deterministic")
	}
}
