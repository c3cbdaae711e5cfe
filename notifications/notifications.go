// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package notifications

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/danielhkuo/teamup/backend"
	"github.com/danielhkuo/teamup/models"
	"github.com/danielhkuo/teamup/optimistic"
)

var (
	ErrAlreadyStarted      = errors.New("poller already started")
	ErrUnknownNotification = errors.New("unknown notification")
	ErrAlreadyResolved     = errors.New("request already resolved")
)

// Resolution decisions
const (
	DecisionApprove = "approve"
	DecisionReject  = "reject"
)

// Poller lifecycle states
type State int

const (
	StateIdle State = iota
	StateScheduled
	StateFetching
	StateStopped
)

// Poller surfaces pending join requests to a team administrator. It fetches
// once on start and then on a fixed period; fetches never overlap.
type Poller struct {
	client   *backend.Client
	interval time.Duration

	// replaced by tests to drive ticks deterministically
	newScheduler func() Scheduler

	mu       sync.Mutex
	state    State
	list     []models.Notification
	unseen   bool
	fetching bool
	cancel   context.CancelFunc
	done     chan struct{}
}

func NewPoller(client *backend.Client, interval time.Duration) *Poller {
	p := &Poller{client: client, interval: interval}
	p.newScheduler = func() Scheduler { return newTickerScheduler(p.interval) }
	return p
}

// Start begins polling: one immediate fetch, then one per tick. A tick that
// fires while a fetch is still in flight is skipped.
func (p *Poller) Start(parent context.Context) error {
	p.mu.Lock()
	if p.state != StateIdle && p.state != StateStopped {
		p.mu.Unlock()
		return ErrAlreadyStarted
	}
	ctx, cancel := context.WithCancel(parent)
	p.cancel = cancel
	p.done = make(chan struct{})
	p.state = StateScheduled
	p.mu.Unlock()

	sched := p.newScheduler()
	go p.loop(ctx, sched)

	p.fetch(ctx)
	return nil
}

// Stop cancels the scheduled timer deterministically. No fetch starts after
// Stop returns, and a fetch already in flight discards its result.
func (p *Poller) Stop() {
	p.mu.Lock()
	if p.state == StateIdle || p.state == StateStopped {
		p.mu.Unlock()
		return
	}
	cancel, done := p.cancel, p.done
	p.state = StateStopped
	p.mu.Unlock()

	cancel()
	<-done
}

func (p *Poller) loop(ctx context.Context, sched Scheduler) {
	defer close(p.done)
	defer sched.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-sched.Ticks():
			p.mu.Lock()
			busy := p.fetching
			p.mu.Unlock()
			if busy {
				slog.Debug("poll tick skipped, fetch in flight")
				continue
			}
			p.fetch(ctx)
		}
	}
}

// fetch replaces the pending list with the server's current set. The
// server's answer is authoritative: an overwrite, not a merge. A non-empty
// set raises the unseen flag; a fetch never lowers it.
func (p *Poller) fetch(ctx context.Context) {
	p.mu.Lock()
	if p.fetching || p.state == StateStopped {
		p.mu.Unlock()
		return
	}
	p.fetching = true
	p.state = StateFetching
	p.mu.Unlock()

	list, err := p.client.PendingRequests(ctx)

	p.mu.Lock()
	defer p.mu.Unlock()
	p.fetching = false
	if p.state != StateStopped {
		p.state = StateScheduled
	}

	// Torn down while the request was in flight: discard, never apply.
	if ctx.Err() != nil {
		return
	}
	if err != nil {
		slog.Warn("notification fetch failed", "error", err)
		return
	}

	p.list = list
	if len(list) > 0 {
		p.unseen = true
	}
	slog.Debug("notifications fetched", "pending", len(list))
}

// Notifications returns a copy of the current pending list.
func (p *Poller) Notifications() []models.Notification {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]models.Notification, len(p.list))
	copy(out, p.list)
	return out
}

// Unseen reports whether pending requests arrived since the list was last
// opened.
func (p *Poller) Unseen() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.unseen
}

// Open marks the list as seen and returns it. Purely a display concern; the
// list itself is untouched.
func (p *Poller) Open() []models.Notification {
	p.mu.Lock()
	p.unseen = false
	p.mu.Unlock()
	return p.Notifications()
}

// State reports the lifecycle state.
func (p *Poller) State() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// Resolve approves or rejects a pending request. The notification leaves the
// local list immediately; a remote failure re-inserts it and surfaces the
// error. A request the backend reports as already resolved stays removed and
// returns ErrAlreadyResolved.
func (p *Poller) Resolve(ctx context.Context, requestID int64, decision string) error {
	if decision != DecisionApprove && decision != DecisionReject {
		return errors.New("decision must be approve or reject")
	}

	p.mu.Lock()
	known := false
	for _, n := range p.list {
		if n.RequestID == requestID {
			known = true
			break
		}
	}
	p.mu.Unlock()
	if !known {
		return ErrUnknownNotification
	}

	// A fetch may overwrite the list between the check above and Apply, so
	// the removal locates the notification by id under the lock; a stale
	// index must never be trusted.
	var (
		removed         models.Notification
		removedAt       int
		didRemove       bool
		alreadyResolved bool
	)
	err := optimistic.Run(ctx, optimistic.Command{
		Apply: func() {
			p.mu.Lock()
			for i, n := range p.list {
				if n.RequestID == requestID {
					removed, removedAt, didRemove = n, i, true
					p.list = append(p.list[:i], p.list[i+1:]...)
					break
				}
			}
			p.mu.Unlock()
		},
		Send: func(ctx context.Context) error {
			var err error
			if decision == DecisionApprove {
				err = p.client.ApproveRequest(ctx, requestID)
			} else {
				err = p.client.RejectRequest(ctx, requestID)
			}
			if errors.Is(err, backend.ErrConflict) {
				// Resolved elsewhere; the notification must not come back.
				alreadyResolved = true
				return nil
			}
			return err
		},
		Revert: func() {
			p.mu.Lock()
			if didRemove {
				at := removedAt
				if at > len(p.list) {
					at = len(p.list)
				}
				p.list = append(p.list[:at], append([]models.Notification{removed}, p.list[at:]...)...)
			}
			p.mu.Unlock()
		},
	})
	if err != nil {
		slog.Warn("resolution rolled back", "request_id", requestID, "decision", decision, "error", err)
		return err
	}
	if alreadyResolved {
		return ErrAlreadyResolved
	}

	slog.Info("request resolved", "request_id", requestID, "decision", decision)
	return nil
}
