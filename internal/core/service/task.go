package service

import (
	"context"
	"errors"
)

// ErrSessionSuperseded is returned by a background task whose session was
// signed out or replaced before it finished. Its result was discarded.
var ErrSessionSuperseded = errors.New("session superseded")

// Task is a unit of background work that can be joined or cancelled.
type Task struct {
	done   chan struct{}
	cancel context.CancelFunc
	err    error
}

func startTask(parent context.Context, fn func(ctx context.Context) error) *Task {
	ctx, cancel := context.WithCancel(parent)
	t := &Task{done: make(chan struct{}), cancel: cancel}
	go func() {
		defer close(t.done)
		defer cancel()
		t.err = fn(ctx)
	}()
	return t
}

// Wait blocks until the task finishes or ctx is done. A nil task is a no-op.
func (t *Task) Wait(ctx context.Context) error {
	if t == nil {
		return nil
	}
	select {
	case <-t.done:
		return t.err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Cancel asks the task to stop. It does not wait.
func (t *Task) Cancel() {
	if t != nil {
		t.cancel()
	}
}

// Done is closed when the task has finished.
func (t *Task) Done() <-chan struct{} {
	if t == nil {
		ch := make(chan struct{})
		close(ch)
		return ch
	}
	return t.done
}
