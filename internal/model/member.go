package model

import (
	"strings"
	"time"
)

// BoardMemberTitle is the directory job title that grants event administration.
const BoardMemberTitle = "OJC Board Member"

// Member is a club member as surfaced by the B2C directory. Custom membership
// fields live on directory extension attributes and are flattened here.
type Member struct {
	ID               string
	DisplayName      string
	MailNickname     string
	JobTitle         string
	MembershipNumber string
	// Joined and Expiration are raw epoch timestamps as stored in the
	// directory, either seconds or milliseconds.
	Joined     int64
	Expiration int64
}

// Email recovers the sign-in address from the directory mail nickname,
// which encodes "@" as "_at_".
func (m Member) Email() string {
	return strings.Replace(m.MailNickname, "_at_", "@", 1)
}

// ExpirationDate returns the membership expiration as a calendar date.
// The second return value is false when no expiration is recorded.
func (m Member) ExpirationDate() (time.Time, bool) {
	if m.Expiration == 0 {
		return time.Time{}, false
	}
	t := time.Unix(EpochSeconds(float64(m.Expiration)), 0).UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), true
}

// EpochSeconds normalizes an epoch timestamp that may be expressed in seconds
// or milliseconds. Values above 1e10 are treated as milliseconds.
func EpochSeconds(ts float64) int64 {
	if ts > 1e10 {
		ts = ts / 1000
	}
	return int64(ts)
}
