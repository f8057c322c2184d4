// Package controller holds the per-feature UI state machines that drive the
// study request layer: input, in-flight flag, error message and result.
package controller

import (
	"context"
	"strings"
	"sync"

	"study-buddy/internal/study"
)

// Status is the outcome of the latest submission.
type Status int

const (
	StatusIdle Status = iota
	StatusPending
	StatusSuccess
	StatusFailure
)

func (s Status) String() string {
	switch s {
	case StatusPending:
		return "pending"
	case StatusSuccess:
		return "success"
	case StatusFailure:
		return "failure"
	default:
		return "idle"
	}
}

// RunFunc performs the request for one submission.
type RunFunc[T any] func(ctx context.Context, input string) (T, error)

// Snapshot is a consistent copy of a controller's state. At most one of
// Loading, Error and Result is set.
type Snapshot[T any] struct {
	Input  string
	Status Status
	Result T
	Error  string
}

func (s Snapshot[T]) Loading() bool { return s.Status == StatusPending }

// CanSubmit mirrors the submit control: enabled for non-blank input when
// nothing is in flight.
func (s Snapshot[T]) CanSubmit() bool {
	return s.Status != StatusPending && strings.TrimSpace(s.Input) != ""
}

// Controller owns the state of one feature panel. At most one request is in
// flight at a time; a resolution that arrives after the state was discarded
// or resubmitted is dropped.
type Controller[T any] struct {
	mu     sync.Mutex
	run    RunFunc[T]
	input  string
	status Status
	result T
	errMsg string
	gen    uint64

	// hooks run with mu held
	onSuccess func(T)
	onClear   func()
}

func New[T any](run RunFunc[T]) *Controller[T] {
	return &Controller[T]{run: run}
}

// Text drives the explain and summarize panels.
type Text = Controller[string]

func NewText(run RunFunc[string]) *Text {
	return New(run)
}

// SetInput replaces the input text. It is ignored while a request is in
// flight.
func (c *Controller[T]) SetInput(s string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.status == StatusPending {
		return false
	}
	c.input = s
	return true
}

func (c *Controller[T]) Input() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.input
}

func (c *Controller[T]) CanSubmit() bool {
	return c.Snapshot().CanSubmit()
}

// Submit starts a request for the current input. It returns nil when the
// submission is rejected (blank input or a request already in flight);
// otherwise the returned channel is closed once the outcome is stored.
func (c *Controller[T]) Submit(ctx context.Context) <-chan struct{} {
	c.mu.Lock()
	if c.status == StatusPending || strings.TrimSpace(c.input) == "" {
		c.mu.Unlock()
		return nil
	}
	c.gen++
	gen, input := c.gen, c.input
	c.clearLocked()
	c.status = StatusPending
	c.mu.Unlock()

	done := make(chan struct{})
	go func() {
		defer close(done)
		res, err := c.run(ctx, input)
		c.resolve(gen, res, err)
	}()
	return done
}

func (c *Controller[T]) resolve(gen uint64, res T, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.gen {
		return
	}
	if err != nil {
		c.status = StatusFailure
		c.errMsg = study.UserMessage(err)
		return
	}
	c.status = StatusSuccess
	c.result = res
	if c.onSuccess != nil {
		c.onSuccess(res)
	}
}

func (c *Controller[T]) Snapshot() Snapshot[T] {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

func (c *Controller[T]) snapshotLocked() Snapshot[T] {
	return Snapshot[T]{Input: c.input, Status: c.status, Result: c.result, Error: c.errMsg}
}

// Discard drops all state, input included, and orphans any request in
// flight. The panel behaves as if freshly opened.
func (c *Controller[T]) Discard() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gen++
	c.input = ""
	c.clearLocked()
}

// clearLocked returns the outcome to idle, keeping the input.
func (c *Controller[T]) clearLocked() {
	var zero T
	c.status = StatusIdle
	c.result = zero
	c.errMsg = ""
	if c.onClear != nil {
		c.onClear()
	}
}
