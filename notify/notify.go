// Package notify polls the unread-notification count on a fixed interval.
// After a failed poll the interval ticks go quiet; polling resumes once an
// explicit Check (e.g. the user opening the notification panel) succeeds and
// clears the error flag. The last known count is kept through errors.
package notify

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
)

// CountFunc fetches the current unread count from the backend.
type CountFunc func(ctx context.Context) (int, error)

// Poller runs CountFunc on a cron "@every" schedule.
type Poller struct {
	cron    *cron.Cron
	fetch   CountFunc
	timeout time.Duration

	mu      sync.Mutex
	count   int
	errored bool
}

// NewPoller builds a poller; call Start to begin ticking.
func NewPoller(interval time.Duration, fetch CountFunc) (*Poller, error) {
	if interval <= 0 {
		return nil, fmt.Errorf("poll interval must be positive, got %s", interval)
	}
	p := &Poller{
		cron:    cron.New(),
		fetch:   fetch,
		timeout: interval,
	}
	if _, err := p.cron.AddFunc(fmt.Sprintf("@every %s", interval), p.tick); err != nil {
		return nil, fmt.Errorf("adding poll entry: %w", err)
	}
	return p, nil
}

// Start begins interval polling.
func (p *Poller) Start() {
	p.cron.Start()
}

// Stop halts interval polling.
func (p *Poller) Stop() {
	p.cron.Stop()
}

// tick runs one scheduled poll unless the poller is suppressed by a prior
// failure.
func (p *Poller) tick() {
	p.mu.Lock()
	suppressed := p.errored
	p.mu.Unlock()
	if suppressed {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), p.timeout)
	defer cancel()
	if _, err := p.Check(ctx); err != nil {
		slog.Warn("unread count poll failed, suppressing until next manual check", "error", err)
	}
}

// Check fetches the unread count now, regardless of suppression. Success
// updates the count and clears the error flag, resuming interval polling;
// failure sets the flag and leaves the last known count in place.
func (p *Poller) Check(ctx context.Context) (int, error) {
	count, err := p.fetch(ctx)

	p.mu.Lock()
	defer p.mu.Unlock()
	if err != nil {
		p.errored = true
		return p.count, fmt.Errorf("fetching unread count: %w", err)
	}
	p.count = count
	p.errored = false
	return count, nil
}

// Unread returns the last known count and whether the poller is currently
// degraded (last attempt failed).
func (p *Poller) Unread() (int, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.count, p.errored
}
