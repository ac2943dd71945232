// Package scheduler runs the daily background jobs: the membership
// expiration check and the event reminder check.
package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/oviedojeepclub/clubhub/internal/emailer"
	"github.com/oviedojeepclub/clubhub/internal/event"
	"github.com/oviedojeepclub/clubhub/internal/model"
)

const (
	expirationSchedule = "30 17 * * *"
	remindersSchedule  = "0 9 * * *"
)

type MemberLister interface {
	All(ctx context.Context) ([]model.Member, error)
}

type EventsReader interface {
	Events(ctx context.Context) ([]event.Event, error)
}

// Locker hands out a release function on success. Failure means another
// process holds the lock and the run must be skipped.
type Locker interface {
	Acquire(ctx context.Context) (func(), error)
}

type Mailer interface {
	Send(toAddress, toName string, msg emailer.Message) error
}

// Start registers both jobs on their daily schedules and starts the cron
// runner. The returned cron can be stopped on shutdown.
func Start(expiration *ExpirationCheck, reminders *EventReminders) (*cron.Cron, error) {
	runner := cron.New()
	if _, err := runner.AddJob(expirationSchedule, expiration); err != nil {
		return nil, fmt.Errorf("scheduling expiration check: %w", err)
	}
	if _, err := runner.AddJob(remindersSchedule, reminders); err != nil {
		return nil, fmt.Errorf("scheduling event reminders: %w", err)
	}
	runner.Start()
	return runner, nil
}

func dateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func daysBetween(from, to time.Time) int {
	return int(to.Sub(from).Hours() / 24)
}

func contains(values []int, v int) bool {
	for _, candidate := range values {
		if candidate == v {
			return true
		}
	}
	return false
}
