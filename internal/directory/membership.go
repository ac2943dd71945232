package directory

import (
	"strconv"
	"time"
)

const membershipNumberPrefix = "OJC"

// MembershipDetails carries the custom attributes attached to a new member.
type MembershipDetails struct {
	Number string
	// Joined is epoch seconds; Expiration is the epoch second of the
	// membership window end computed by ComputeExpirationDate.
	Joined     int64
	Expiration int64
}

// ComputeExpirationDate returns the end of the membership window bought at
// time now: March 31 of next year, or of the year after when the purchase
// lands after October 31 (late-year joins get the extra months free).
func ComputeExpirationDate(now time.Time) time.Time {
	oct31 := time.Date(now.Year(), time.October, 31, 0, 0, 0, 0, now.Location())
	if now.After(oct31) {
		return time.Date(now.Year()+2, time.March, 31, 0, 0, 0, 0, now.Location())
	}
	return time.Date(now.Year()+1, time.March, 31, 0, 0, 0, 0, now.Location())
}

// NewMembershipDetails generates a fresh membership number from the current
// epoch milliseconds plus the join and expiration timestamps.
func NewMembershipDetails(now time.Time) MembershipDetails {
	return MembershipDetails{
		Number:     membershipNumberPrefix + strconv.FormatInt(now.UnixMilli(), 10),
		Joined:     now.Unix(),
		Expiration: ComputeExpirationDate(now).Unix(),
	}
}
