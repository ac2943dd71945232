package model

import "time"

// Invitation is a family membership invitation stored in the Invitations
// table, keyed by its token (partition key = row key = token).
type Invitation struct {
	Token            string
	FamilyEmail      string
	FamilyName       string
	MembershipNumber string
	// MemberJoined and MemberExpiration are inherited from the inviting
	// member, raw directory timestamps.
	MemberJoined     int64
	MemberExpiration int64
	CreatedAt        time.Time
}

// Expired reports whether the invitation is older than the given timeout.
// A zero timeout means invitations never expire.
func (i Invitation) Expired(timeout time.Duration, now time.Time) bool {
	if timeout == 0 {
		return false
	}
	return now.Sub(i.CreatedAt) > timeout
}
