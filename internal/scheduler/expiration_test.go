package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/oviedojeepclub/clubhub/internal/emailer"
	"github.com/oviedojeepclub/clubhub/internal/event"
	"github.com/oviedojeepclub/clubhub/internal/model"
)

type directoryMock struct {
	members []model.Member
	err     error
}

func (d *directoryMock) All(ctx context.Context) ([]model.Member, error) {
	return d.members, d.err
}

type mailerMock struct {
	sent    []string
	failFor string
}

func (m *mailerMock) Send(toAddress, toName string, msg emailer.Message) error {
	if toAddress == m.failFor {
		return errors.New("delivery failed")
	}
	m.sent = append(m.sent, toAddress)
	return nil
}

type lockMock struct {
	held     bool
	acquired int
	released int
}

func (l *lockMock) Acquire(ctx context.Context) (func(), error) {
	if l.held {
		return nil, errors.New("lease already present")
	}
	l.acquired++
	return func() { l.released++ }, nil
}

func memberExpiring(id string, daysLeft int, now time.Time) model.Member {
	expiration := now.AddDate(0, 0, daysLeft)
	return model.Member{
		ID:           id,
		DisplayName:  "Member " + id,
		MailNickname: id + "_at_example.com",
		Expiration:   time.Date(expiration.Year(), expiration.Month(), expiration.Day(), 0, 0, 0, 0, time.UTC).Unix(),
	}
}

func TestExpirationCheckThresholds(t *testing.T) {
	now := time.Date(2026, time.January, 10, 17, 30, 0, 0, time.UTC)
	dir := &directoryMock{members: []model.Member{
		memberExpiring("ninety", 90, now),
		memberExpiring("fifteen", 15, now),
		memberExpiring("one", 1, now),
		memberExpiring("fourteen", 14, now),
		memberExpiring("sixteen", 16, now),
		{ID: "noexpiration", MailNickname: "none_at_example.com"},
	}}
	sender := &mailerMock{}
	lock := &lockMock{}

	job := NewExpirationCheck(dir, sender, lock, "https://club.example/login")
	job.now = func() time.Time { return now }
	job.run(context.Background())

	if len(sender.sent) != 3 {
		t.Fatalf("Expected 3 reminders, got %d: %v", len(sender.sent), sender.sent)
	}
	for _, addr := range sender.sent {
		if addr == "fourteen@example.com" || addr == "sixteen@example.com" {
			t.Errorf("Unexpected reminder for %s", addr)
		}
	}
	if lock.acquired != 1 || lock.released != 1 {
		t.Errorf("Expected the lock to be acquired and released once, got %d/%d", lock.acquired, lock.released)
	}
}

func TestExpirationCheckSkipsOnContention(t *testing.T) {
	now := time.Date(2026, time.January, 10, 17, 30, 0, 0, time.UTC)
	dir := &directoryMock{members: []model.Member{memberExpiring("one", 1, now)}}
	sender := &mailerMock{}

	job := NewExpirationCheck(dir, sender, &lockMock{held: true}, "https://club.example/login")
	job.now = func() time.Time { return now }
	job.run(context.Background())

	if len(sender.sent) != 0 {
		t.Errorf("Expected no reminders while another instance holds the lock, got %v", sender.sent)
	}
}

func TestExpirationCheckDeduplicates(t *testing.T) {
	now := time.Date(2026, time.January, 10, 17, 30, 0, 0, time.UTC)
	duplicated := memberExpiring("dup", 30, now)
	dir := &directoryMock{members: []model.Member{duplicated, duplicated}}
	sender := &mailerMock{}

	job := NewExpirationCheck(dir, sender, &lockMock{}, "https://club.example/login")
	job.now = func() time.Time { return now }
	job.run(context.Background())

	if len(sender.sent) != 1 {
		t.Errorf("Expected a single reminder for a duplicated directory entry, got %d", len(sender.sent))
	}
}

func TestExpirationCheckSendFailureDoesNotAbort(t *testing.T) {
	now := time.Date(2026, time.January, 10, 17, 30, 0, 0, time.UTC)
	dir := &directoryMock{members: []model.Member{
		memberExpiring("first", 60, now),
		memberExpiring("second", 60, now),
	}}
	sender := &mailerMock{failFor: "first@example.com"}

	job := NewExpirationCheck(dir, sender, &lockMock{}, "https://club.example/login")
	job.now = func() time.Time { return now }
	job.run(context.Background())

	if len(sender.sent) != 1 || sender.sent[0] != "second@example.com" {
		t.Errorf("Expected the run to continue past a failed send, got %v", sender.sent)
	}
}

type eventsMock struct {
	events []event.Event
	err    error
}

func (e *eventsMock) Events(ctx context.Context) ([]event.Event, error) {
	return e.events, e.err
}

func TestEventReminders(t *testing.T) {
	now := time.Date(2026, time.June, 1, 9, 0, 0, 0, time.UTC)
	events := &eventsMock{events: []event.Event{
		{ID: "OJC1", Name: "Trail ride", StartTime: "2026-06-16T10:00"},
		{ID: "OJC2", Name: "Meetup", StartTime: "2026-06-10T10:00"},
		{ID: "OJC3", Name: "Past event", StartTime: "2026-05-01T10:00"},
	}}
	dir := &directoryMock{members: []model.Member{
		// Active past the event date.
		memberExpiring("active", 300, now),
		// Expires before the event, no reminder.
		memberExpiring("lapsing", 5, now),
	}}
	sender := &mailerMock{}

	job := NewEventReminders(events, dir, sender)
	job.now = func() time.Time { return now }
	job.run(context.Background())

	// Only OJC1 is exactly 15 days out, and only the active member gets it.
	if len(sender.sent) != 1 || sender.sent[0] != "active@example.com" {
		t.Errorf("Expected one reminder to the active member, got %v", sender.sent)
	}
}

func TestEventRemindersNoUpcoming(t *testing.T) {
	now := time.Date(2026, time.June, 1, 9, 0, 0, 0, time.UTC)
	events := &eventsMock{events: []event.Event{
		{ID: "OJC3", Name: "Past event", StartTime: "2026-05-01T10:00"},
	}}
	dir := &directoryMock{err: errors.New("should not be called")}
	sender := &mailerMock{}

	job := NewEventReminders(events, dir, sender)
	job.now = func() time.Time { return now }
	job.run(context.Background())

	if len(sender.sent) != 0 {
		t.Errorf("Expected no reminders, got %v", sender.sent)
	}
}
