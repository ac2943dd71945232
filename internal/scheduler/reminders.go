package scheduler

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/oviedojeepclub/clubhub/internal/emailer"
	"github.com/oviedojeepclub/clubhub/internal/event"
)

var reminderThresholds = []int{15, 8, 1}

// EventReminders emails every member still active at event time when an
// upcoming event is exactly 15, 8 or 1 days away. One send per qualifying
// (member, event) pair; individual failures do not abort the run.
type EventReminders struct {
	events    EventsReader
	directory MemberLister
	sender    Mailer
	now       func() time.Time
}

func NewEventReminders(events EventsReader, directory MemberLister, sender Mailer) *EventReminders {
	return &EventReminders{
		events:    events,
		directory: directory,
		sender:    sender,
		now:       time.Now,
	}
}

// Run implements cron.Job.
func (j *EventReminders) Run() {
	j.run(context.Background())
}

func (j *EventReminders) run(ctx context.Context) {
	logger := log.With().
		Str("job", "event_reminders").
		Str("run_id", uuid.NewString()).
		Logger()

	all, err := j.events.Events(ctx)
	if err != nil {
		logger.Error().Err(err).Msg("could not load events")
		return
	}
	now := j.now().UTC()
	upcoming := event.Upcoming(all, now)
	if len(upcoming) == 0 {
		return
	}

	members, err := j.directory.All(ctx)
	if err != nil {
		logger.Error().Err(err).Msg("could not fetch directory users")
		return
	}

	today := dateOf(now)
	for _, e := range upcoming {
		start, err := e.Start()
		if err != nil {
			continue
		}
		eventDate := dateOf(start)
		daysLeft := daysBetween(today, eventDate)
		if !contains(reminderThresholds, daysLeft) {
			continue
		}

		for _, member := range members {
			expiration, ok := member.ExpirationDate()
			if !ok || !eventDate.Before(expiration) {
				continue
			}

			name := member.DisplayName
			if name == "" {
				name = "Member"
			}
			msg, err := emailer.EventReminder(name, e.Name, e.StartTime, daysLeft)
			if err != nil {
				logger.Error().Err(err).Str("event_id", e.ID).Msg("could not render reminder")
				continue
			}
			if err := j.sender.Send(member.Email(), name, msg); err != nil {
				logger.Error().Err(err).Str("email", member.Email()).Str("event_id", e.ID).Msg("could not send reminder")
			}
		}
	}
}
