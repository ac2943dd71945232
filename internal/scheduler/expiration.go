package scheduler

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/oviedojeepclub/clubhub/internal/emailer"
)

// Reminders go out when a membership expires in exactly one of these many
// days.
var expirationThresholds = []int{90, 60, 30, 15, 1}

// ExpirationCheck emails members whose membership is about to lapse. A blob
// lease guards against multiple process instances running the job at once:
// on contention the run is skipped outright, there is no retry or queueing.
type ExpirationCheck struct {
	directory MemberLister
	sender    Mailer
	lock      Locker
	loginURL  string
	now       func() time.Time
}

func NewExpirationCheck(directory MemberLister, sender Mailer, lock Locker, loginURL string) *ExpirationCheck {
	return &ExpirationCheck{
		directory: directory,
		sender:    sender,
		lock:      lock,
		loginURL:  loginURL,
		now:       time.Now,
	}
}

// Run implements cron.Job.
func (j *ExpirationCheck) Run() {
	j.run(context.Background())
}

func (j *ExpirationCheck) run(ctx context.Context) {
	logger := log.With().
		Str("job", "expiration_check").
		Str("run_id", uuid.NewString()).
		Logger()
	logger.Info().Msg("expiration check started")

	release, err := j.lock.Acquire(ctx)
	if err != nil {
		logger.Info().Err(err).Msg("another instance is processing, skipping this run")
		return
	}
	defer release()

	members, err := j.directory.All(ctx)
	if err != nil {
		logger.Error().Err(err).Msg("could not fetch directory users")
		return
	}

	today := dateOf(j.now().UTC())
	processed := make(map[string]struct{}, len(members))
	sent := 0
	for _, member := range members {
		if _, seen := processed[member.ID]; seen {
			continue
		}
		processed[member.ID] = struct{}{}

		expiration, ok := member.ExpirationDate()
		if !ok {
			continue
		}
		daysLeft := daysBetween(today, expiration)
		if !contains(expirationThresholds, daysLeft) {
			continue
		}

		name := member.DisplayName
		if name == "" {
			name = "Member"
		}
		msg, err := emailer.ExpirationReminder(name, daysLeft, j.loginURL)
		if err != nil {
			logger.Error().Err(err).Str("member_id", member.ID).Msg("could not render reminder")
			continue
		}
		if err := j.sender.Send(member.Email(), name, msg); err != nil {
			logger.Error().Err(err).Str("email", member.Email()).Msg("could not send reminder")
			continue
		}
		sent++
	}

	logger.Info().Int("reminders_sent", sent).Msg("expiration check finished")
}
