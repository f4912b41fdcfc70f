package flowsdk

import (
	"context"
	"sync"
	"time"
)

// Outcome is the terminal state of a poll.
type Outcome int

const (
	OutcomePending Outcome = iota
	OutcomeResolved
	OutcomeTimedOut
)

func (o Outcome) String() string {
	switch o {
	case OutcomePending:
		return "pending"
	case OutcomeResolved:
		return "resolved"
	case OutcomeTimedOut:
		return "timed-out"
	}
	return "unknown"
}

const (
	// DefaultPollInterval is the fixed delay between re-fetches.
	DefaultPollInterval = 3 * time.Second

	// DefaultMaxAttempts bounds the wait: 20 attempts at 3 seconds is a
	// one-minute ceiling before the poll gives up.
	DefaultMaxAttempts = 20
)

// FetchFunc re-fetches the entity being polled.
type FetchFunc[T any] func(ctx context.Context) (T, error)

// PlaceholderFunc reports whether a value is still the server's stand-in
// rather than the final computed result. Each entity type names its own
// predicate; see DreamIsPlaceholder.
type PlaceholderFunc[T any] func(T) bool

// MergeFunc folds a freshly fetched value into the previously held one.
// Merges preserve known-good data: a field absent or zero in the fetched
// payload must not clobber a positive value already held. See MergeDreams.
type MergeFunc[T any] func(prev, fetched T) T

// Poller waits for an asynchronously computed result by re-fetching an
// entity on a fixed interval, up to a bounded number of placeholder
// attempts. Polling stops permanently on resolution, exhaustion, or Cancel.
type Poller[T any] struct {
	Interval    time.Duration
	MaxAttempts int

	fetch         FetchFunc[T]
	isPlaceholder PlaceholderFunc[T]
	merge         MergeFunc[T]

	mu       sync.Mutex
	current  T
	attempts int
	outcome  Outcome
	started  bool
	stopCh   chan struct{}
	doneCh   chan struct{}
}

// NewPoller creates a poller holding an initial (possibly placeholder)
// value. merge may be nil, in which case fetched values replace held ones.
func NewPoller[T any](initial T, fetch FetchFunc[T], isPlaceholder PlaceholderFunc[T], merge MergeFunc[T]) *Poller[T] {
	if merge == nil {
		merge = func(_, fetched T) T { return fetched }
	}
	return &Poller[T]{
		Interval:      DefaultPollInterval,
		MaxAttempts:   DefaultMaxAttempts,
		fetch:         fetch,
		isPlaceholder: isPlaceholder,
		merge:         merge,
		current:       initial,
		doneCh:        make(chan struct{}),
	}
}

// Start begins polling. If the initial value is already genuine, the poll
// resolves immediately without any fetch. Start is a no-op after the first
// call.
func (p *Poller[T]) Start(ctx context.Context) {
	p.mu.Lock()
	if p.started {
		p.mu.Unlock()
		return
	}
	p.started = true

	if !p.isPlaceholder(p.current) {
		p.outcome = OutcomeResolved
		close(p.doneCh)
		p.mu.Unlock()
		return
	}

	p.stopCh = make(chan struct{})
	stopCh := p.stopCh
	p.mu.Unlock()

	go p.run(ctx, stopCh)
}

func (p *Poller[T]) run(ctx context.Context, stopCh chan struct{}) {
	defer close(p.doneCh)

	ticker := time.NewTicker(p.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if p.poll(ctx) {
				return
			}
		case <-stopCh:
			return
		case <-ctx.Done():
			return
		}
	}
}

// poll performs one fetch and returns true when polling should stop. Fetch
// errors count as placeholder attempts: the bound must fire even when the
// network never succeeds.
func (p *Poller[T]) poll(ctx context.Context) bool {
	fetched, err := p.fetch(ctx)

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.outcome != OutcomePending {
		return true
	}

	if err == nil && !p.isPlaceholder(fetched) {
		p.current = p.merge(p.current, fetched)
		p.outcome = OutcomeResolved
		return true
	}

	p.attempts++
	if p.attempts >= p.MaxAttempts {
		p.outcome = OutcomeTimedOut
		return true
	}
	return false
}

// Cancel stops polling without changing the outcome. Safe to call multiple
// times and after resolution.
func (p *Poller[T]) Cancel() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.stopCh != nil {
		select {
		case <-p.stopCh:
		default:
			close(p.stopCh)
		}
		p.stopCh = nil
	}
}

// Done is closed when polling has stopped for any reason.
func (p *Poller[T]) Done() <-chan struct{} { return p.doneCh }

// Result returns the latest held value, the number of placeholder attempts
// made, and the outcome.
func (p *Poller[T]) Result() (T, int, Outcome) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.current, p.attempts, p.outcome
}

// canceler lets the registry stop any poller regardless of type parameter.
type canceler interface {
	Cancel()
}

// Registry guarantees at most one active poll per entity id. Starting a poll
// for an id cancels any previous one for the same id first.
type Registry struct {
	mu     sync.Mutex
	active map[string]canceler
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{active: make(map[string]canceler)}
}

// StartPoll registers the poller under id, cancelling any existing poll for
// the same id, then starts it.
func StartPoll[T any](ctx context.Context, r *Registry, id string, p *Poller[T]) {
	r.mu.Lock()
	if prev, ok := r.active[id]; ok {
		prev.Cancel()
	}
	r.active[id] = p
	r.mu.Unlock()

	p.Start(ctx)

	go func() {
		<-p.Done()
		r.mu.Lock()
		if r.active[id] == canceler(p) {
			delete(r.active, id)
		}
		r.mu.Unlock()
	}()
}

// CancelAll stops every active poll, for teardown.
func (r *Registry) CancelAll() {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, p := range r.active {
		p.Cancel()
		delete(r.active, id)
	}
}
