package slack

import (
	"context"
	"strings"
	"time"
)

// Timeouts is the static table of self-imposed time budgets
type Timeouts struct {
	// Sync is the budget of a lookup on the request path
	Sync time.Duration
	// Async is the budget of a lookup inside a deferred job
	Async time.Duration
	// Post bounds a single fire-and-forget message delivery
	Post time.Duration
}

// DefaultTimeouts returns the production time budgets
func DefaultTimeouts() Timeouts {
	return Timeouts{
		Sync:  10 * time.Second,
		Async: 3 * time.Minute,
		Post:  5 * time.Second,
	}
}

// Scheduler is the resolution entry point surfaced to callers. It
// picks the time budget and delegates to the resolver.
type Scheduler struct {
	resolver *Resolver
	timeouts Timeouts
	now      func() time.Time
}

// SchedulerOption is a functional option for Scheduler configuration
type SchedulerOption func(*Scheduler)

// WithTimeouts overrides the resolution time budgets
func WithTimeouts(t Timeouts) SchedulerOption {
	return func(s *Scheduler) {
		s.timeouts = t
	}
}

// NewScheduler creates a scheduler over the given resolver
func NewScheduler(resolver *Resolver, opts ...SchedulerOption) *Scheduler {
	s := &Scheduler{
		resolver: resolver,
		timeouts: DefaultTimeouts(),
		now:      time.Now,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// StripChannelName removes leading display prefixes ("#", "@")
func StripChannelName(name string) string {
	return strings.TrimLeft(name, MemberPrefix+ChannelPrefix)
}

// ResolveChannelID fetches the internal ID of a channel or user by
// name. useAsyncLookup selects the longer budget for lookups that
// already run inside a deferred job; on the request path large
// workspaces can exceed the short budget, in which case the result
// reports TimedOut and the caller is expected to enqueue an
// asynchronous retry rather than fail hard.
func (x *Scheduler) ResolveChannelID(ctx context.Context, name string, useAsyncLookup bool) (*Resolution, error) {
	timeout := x.timeouts.Sync
	if useAsyncLookup {
		timeout = x.timeouts.Async
	}

	query := Query{
		Name:     StripChannelName(name),
		Deadline: x.now().Add(timeout),
	}

	return x.resolver.Resolve(ctx, query)
}

// Timeouts returns the configured time budgets
func (x *Scheduler) Timeouts() Timeouts {
	return x.timeouts
}
