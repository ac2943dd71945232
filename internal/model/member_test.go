package model_test

import (
	"testing"
	"time"

	"github.com/oviedojeepclub/clubhub/internal/model"
)

func TestEpochSeconds(t *testing.T) {
	var cases = []struct {
		name     string
		in       float64
		expected int64
	}{
		{"Seconds pass through unchanged", 1735689600, 1735689600},
		{"Milliseconds are scaled down", 1735689600000, 1735689600},
		{"Zero stays zero", 0, 0},
		{"Threshold value is kept as seconds", 1e10, 10000000000},
	}

	for _, tcase := range cases {
		t.Run(tcase.name, func(t *testing.T) {
			if got := model.EpochSeconds(tcase.in); got != tcase.expected {
				t.Errorf("Expected %d, got %d", tcase.expected, got)
			}
		})
	}
}

func TestMemberEmail(t *testing.T) {
	member := model.Member{MailNickname: "jane.doe_at_example.com"}
	if got := member.Email(); got != "jane.doe@example.com" {
		t.Errorf("Expected jane.doe@example.com, got %s", got)
	}

	member = model.Member{MailNickname: ""}
	if got := member.Email(); got != "" {
		t.Errorf("Expected empty email, got %s", got)
	}
}

func TestMemberExpirationDate(t *testing.T) {
	member := model.Member{Expiration: time.Date(2026, time.March, 31, 18, 45, 12, 0, time.UTC).Unix()}
	expiration, ok := member.ExpirationDate()
	if !ok {
		t.Fatal("Expected a valid expiration date")
	}
	expected := time.Date(2026, time.March, 31, 0, 0, 0, 0, time.UTC)
	if !expiration.Equal(expected) {
		t.Errorf("Expected %v, got %v", expected, expiration)
	}

	member = model.Member{}
	if _, ok := member.ExpirationDate(); ok {
		t.Error("Expected no expiration date for a member without one")
	}

	// Millisecond timestamps coming from the directory are normalized.
	member = model.Member{Expiration: time.Date(2026, time.March, 31, 0, 0, 0, 0, time.UTC).UnixMilli()}
	expiration, ok = member.ExpirationDate()
	if !ok || !expiration.Equal(expected) {
		t.Errorf("Expected %v, got %v", expected, expiration)
	}
}

func TestIsBoardMember(t *testing.T) {
	session := model.Session{JobTitle: model.BoardMemberTitle}
	if !session.IsBoardMember() {
		t.Error("Expected board member")
	}
	session.JobTitle = "Member"
	if session.IsBoardMember() {
		t.Error("Expected regular member")
	}
}

func TestInvitationExpired(t *testing.T) {
	now := time.Date(2026, time.June, 1, 12, 0, 0, 0, time.UTC)
	invitation := model.Invitation{CreatedAt: now.Add(-73 * time.Hour)}

	if !invitation.Expired(72*time.Hour, now) {
		t.Error("Expected invitation older than the timeout to be expired")
	}
	if invitation.Expired(0, now) {
		t.Error("Expected invitation to never expire with a zero timeout")
	}

	invitation.CreatedAt = now.Add(-time.Hour)
	if invitation.Expired(72*time.Hour, now) {
		t.Error("Expected fresh invitation to still be valid")
	}
}
