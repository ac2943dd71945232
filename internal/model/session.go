package model

// Session holds the signed-in member data carried in the session JWT.
type Session struct {
	ID               string
	Name             string
	Email            string
	JobTitle         string
	MembershipNumber string
	// MemberJoined and MemberExpiration are the raw directory timestamps.
	MemberJoined     int64
	MemberExpiration int64
	// ExpirationDate is the expiration formatted for display, e.g.
	// "March 31, 2026", or empty when not available.
	ExpirationDate string
	Exp            float64
}

func (s Session) IsBoardMember() bool {
	return s.JobTitle == BoardMemberTitle
}
