package reactive

import (
	"context"
	"errors"
	"sync/atomic"
	"time"
)

// ActionState represents the current state of an Action.
type ActionState int

const (
	// ActionIdle is the initial state before any Do call.
	ActionIdle ActionState = iota

	// ActionRunning indicates an operation is in progress.
	ActionRunning

	// ActionSuccess indicates the last operation completed successfully.
	ActionSuccess

	// ActionError indicates the last operation failed.
	ActionError
)

// String returns a human-readable name for the action state.
func (s ActionState) String() string {
	switch s {
	case ActionIdle:
		return "idle"
	case ActionRunning:
		return "running"
	case ActionSuccess:
		return "success"
	case ActionError:
		return "error"
	default:
		return "unknown"
	}
}

// ConcurrencyPolicy defines how an Action handles a Do call while a
// previous call is still running.
type ConcurrencyPolicy int

const (
	// PolicyDropWhileRunning rejects Do calls while work is in progress.
	// This is the default: it is what keeps a double-clicked submit
	// button from firing two simulated network calls.
	PolicyDropWhileRunning ConcurrencyPolicy = iota

	// PolicyAllowConcurrent places no restriction; the caller owns
	// serialization.
	PolicyAllowConcurrent
)

// ErrBusy is returned by Do when the action is already running under
// PolicyDropWhileRunning.
var ErrBusy = errors.New("reactive: action already running")

// Action wraps an asynchronous operation with observable state.
// In this module the "asynchronous operation" is a simulated network
// call: a fixed latency followed by the work function.
//
// A started attempt is never cancelled. The context is consulted only
// before the attempt starts; once running, the call always resolves to
// success or the work function's error after the full latency.
type Action[A any, R any] struct {
	// do is the work function, invoked after the simulated latency.
	do func(ctx context.Context, arg A) (R, error)

	// state is observable by callers (e.g. to disable a submit button).
	state *Signal[ActionState]

	// lastErr holds the error from the most recent failed attempt.
	lastErr *Signal[error]

	latency time.Duration
	policy  ConcurrencyPolicy
	name    string

	onStart   func()
	onSuccess func(R)
	onError   func(error)

	running atomic.Bool
}

// ActionOption configures an Action.
type ActionOption func(applyActionConfig)

// applyActionConfig is the type-erased view of Action options operate on.
type applyActionConfig interface {
	setLatency(time.Duration)
	setPolicy(ConcurrencyPolicy)
	setName(string)
}

func (a *Action[A, R]) setLatency(d time.Duration)    { a.latency = d }
func (a *Action[A, R]) setPolicy(p ConcurrencyPolicy) { a.policy = p }
func (a *Action[A, R]) setName(name string)           { a.name = name }

// WithLatency sets the simulated network latency applied before the
// work function runs. Default: no latency.
func WithLatency(d time.Duration) ActionOption {
	return func(a applyActionConfig) { a.setLatency(d) }
}

// WithPolicy sets the concurrency policy. Default: PolicyDropWhileRunning.
func WithPolicy(p ConcurrencyPolicy) ActionOption {
	return func(a applyActionConfig) { a.setPolicy(p) }
}

// WithName sets the action name for observability hooks.
func WithName(name string) ActionOption {
	return func(a applyActionConfig) { a.setName(name) }
}

// NewAction creates an Action with the given work function.
func NewAction[A any, R any](
	do func(ctx context.Context, arg A) (R, error),
	opts ...ActionOption,
) *Action[A, R] {
	a := &Action[A, R]{
		do:      do,
		state:   NewSignal(ActionIdle),
		lastErr: NewSignal[error](nil),
		policy:  PolicyDropWhileRunning,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// OnStart registers a hook invoked when an attempt starts.
func (a *Action[A, R]) OnStart(fn func()) *Action[A, R] {
	a.onStart = fn
	return a
}

// OnSuccess registers a hook invoked with the result of a successful attempt.
func (a *Action[A, R]) OnSuccess(fn func(R)) *Action[A, R] {
	a.onSuccess = fn
	return a
}

// OnError registers a hook invoked with the error of a failed attempt.
// ErrBusy rejections do not count as attempts and do not trigger it.
func (a *Action[A, R]) OnError(fn func(error)) *Action[A, R] {
	a.onError = fn
	return a
}

// Do runs the operation and blocks until it resolves.
//
// Under PolicyDropWhileRunning, a call made while another is in
// progress returns ErrBusy without starting an attempt. A context that
// is already done also prevents the attempt from starting; after that
// point the context is ignored.
func (a *Action[A, R]) Do(ctx context.Context, arg A) (R, error) {
	var zero R

	if err := ctx.Err(); err != nil {
		return zero, err
	}

	if a.policy == PolicyDropWhileRunning {
		if !a.running.CompareAndSwap(false, true) {
			return zero, ErrBusy
		}
		defer a.running.Store(false)
	}

	a.state.Set(ActionRunning)
	if a.onStart != nil {
		a.onStart()
	}

	// Simulated network latency. Not interruptible: a submitted
	// attempt has no cancellation path.
	if a.latency > 0 {
		time.Sleep(a.latency)
	}

	result, err := a.do(ctx, arg)
	if err != nil {
		a.lastErr.Set(err)
		a.state.Set(ActionError)
		if a.onError != nil {
			a.onError(err)
		}
		return zero, err
	}

	a.lastErr.Set(nil)
	a.state.Set(ActionSuccess)
	if a.onSuccess != nil {
		a.onSuccess(result)
	}
	return result, nil
}

// State returns the observable action state.
func (a *Action[A, R]) State() *Signal[ActionState] {
	return a.state
}

// Running reports whether an attempt is currently in progress.
func (a *Action[A, R]) Running() bool {
	return a.state.Get() == ActionRunning
}

// Err returns the error from the most recent failed attempt, or nil.
func (a *Action[A, R]) Err() error {
	return a.lastErr.Get()
}

// Name returns the action's configured name.
func (a *Action[A, R]) Name() string {
	return a.name
}
