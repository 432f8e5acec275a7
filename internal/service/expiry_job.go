package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/robfig/cron/v3"
)

// DefaultExpirySchedule runs the membership sweep once an hour.
const DefaultExpirySchedule = "@hourly"

const expiryRunTimeout = 2 * time.Minute

// MembershipExpirer is the part of PurchaseService the sweep needs.
type MembershipExpirer interface {
	ExpireMemberships(ctx context.Context) (int64, error)
}

// SessionSweeper drops admin sessions whose tokens have expired.
type SessionSweeper interface {
	CloseExpired() int
}

// StartExpiryJob schedules the sweep that marks elapsed purchases as
// expired and, when sessions is not nil, drops expired admin sessions on the
// same schedule. A run still in progress makes the next one skip. The caller
// stops the returned cron on shutdown.
func StartExpiryJob(expirer MembershipExpirer, sessions SessionSweeper, schedule string) (*cron.Cron, error) {
	if schedule == "" {
		schedule = DefaultExpirySchedule
	}
	c := cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DefaultLogger)))
	if _, err := c.AddFunc(schedule, func() { runExpiry(expirer) }); err != nil {
		return nil, fmt.Errorf("schedule membership expiry %q: %w", schedule, err)
	}
	if sessions != nil {
		if _, err := c.AddFunc(schedule, func() { sweepSessions(sessions) }); err != nil {
			return nil, fmt.Errorf("schedule session sweep %q: %w", schedule, err)
		}
	}
	c.Start()
	log.Printf("INFO: Membership expiry job scheduled (%s)", schedule)
	return c, nil
}

func runExpiry(expirer MembershipExpirer) {
	ctx, cancel := context.WithTimeout(context.Background(), expiryRunTimeout)
	defer cancel()

	n, err := expirer.ExpireMemberships(ctx)
	if err != nil {
		log.Printf("ERROR: Membership expiry sweep failed: %v", err)
		return
	}
	if n > 0 {
		log.Printf("INFO: Marked %d membership purchases as expired", n)
	}
}

func sweepSessions(sessions SessionSweeper) {
	if n := sessions.CloseExpired(); n > 0 {
		log.Printf("INFO: Closed %d expired admin sessions", n)
	}
}
