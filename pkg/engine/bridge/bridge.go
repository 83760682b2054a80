// Package bridge serializes world mutations onto the render goroutine.
//
// The render goroutine owns the world. Other goroutines hand it closures with
// Submit and block until the render goroutine has run them during Drain. Code
// already running on the render goroutine uses the Local executor, which runs
// closures immediately, so mutations apply in the order they were issued.
package bridge

import (
	"context"
	"errors"
	"fmt"
	"runtime/debug"
	"sync"
	"sync/atomic"

	"github.com/zyedidia/generic/queue"
)

// ErrClosed is returned by Submit once the bridge has been closed
var ErrClosed = errors.New("bridge: closed")

// call states
const (
	callQueued int32 = iota
	callRunning
	callAbandoned
)

type call struct {
	fn    func()
	done  chan error
	state atomic.Int32
}

// Bridge is a single-consumer FIFO of closures with synchronous completion.
type Bridge struct {
	mu      sync.Mutex
	pending *queue.Queue[*call]
	queued  int
	closed  bool
}

// New creates an open bridge
func New() *Bridge {
	return &Bridge{pending: queue.New[*call]()}
}

// Submit queues fn for the render goroutine and waits until it has run.
// It must not be called from the render goroutine; use Local there.
//
// If ctx ends while fn is still queued, fn is dropped and ctx.Err() is
// returned. Once fn has started, Submit always waits for it to finish.
func (b *Bridge) Submit(ctx context.Context, fn func()) error {
	c := &call{fn: fn, done: make(chan error, 1)}

	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return ErrClosed
	}
	b.pending.Enqueue(c)
	b.queued++
	b.mu.Unlock()

	select {
	case err := <-c.done:
		return err
	case <-ctx.Done():
		if c.state.CompareAndSwap(callQueued, callAbandoned) {
			return ctx.Err()
		}
		return <-c.done
	}
}

// Drain runs every closure queued at the moment of the call, in FIFO order,
// completing each submitter before starting the next. Closures submitted while
// Drain runs wait for the next Drain. It returns the number of closures run.
func (b *Bridge) Drain() int {
	b.mu.Lock()
	batch := b.pending
	b.pending = queue.New[*call]()
	b.queued = 0
	b.mu.Unlock()

	n := 0
	for !batch.Empty() {
		c := batch.Dequeue()
		if !c.state.CompareAndSwap(callQueued, callRunning) {
			continue
		}
		c.done <- run(c.fn)
		n++
	}
	return n
}

// Close fails every queued closure and all future Submit calls with ErrClosed.
func (b *Bridge) Close() {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return
	}
	b.closed = true
	batch := b.pending
	b.pending = queue.New[*call]()
	b.queued = 0
	b.mu.Unlock()

	for !batch.Empty() {
		c := batch.Dequeue()
		if c.state.CompareAndSwap(callQueued, callAbandoned) {
			c.done <- ErrClosed
		}
	}
}

// Pending returns the number of closures waiting for the next Drain,
// including any whose submitter has since given up.
func (b *Bridge) Pending() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.queued
}

// Closed reports whether Close has been called
func (b *Bridge) Closed() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.closed
}

// run executes fn, turning a panic into an error so the render loop survives
func run(fn func()) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("bridge: panic in submitted call: %v\n%s", r, debug.Stack())
		}
	}()
	fn()
	return nil
}

// Executor runs world mutations under the bridge's ordering guarantee.
type Executor interface {
	Exec(ctx context.Context, fn func()) error
}

// Local returns the executor for code running on the render goroutine.
// It runs fn immediately.
func (b *Bridge) Local() Executor {
	return localExecutor{}
}

// Remote returns the executor for worker goroutines. It queues fn and blocks
// until the render goroutine has drained it.
func (b *Bridge) Remote() Executor {
	return remoteExecutor{b: b}
}

type localExecutor struct{}

func (localExecutor) Exec(_ context.Context, fn func()) error {
	return run(fn)
}

type remoteExecutor struct {
	b *Bridge
}

func (r remoteExecutor) Exec(ctx context.Context, fn func()) error {
	return r.b.Submit(ctx, fn)
}
