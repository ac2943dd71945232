package webserver

import "time"

type Config struct {
	// FQDN is the host name used to compose absolute URLs in emails and
	// OAuth redirects.
	FQDN              string
	JwtSecret         []byte
	SessionTimeout    time.Duration
	InvitationTimeout time.Duration
	// LogoutURL is the B2C logout endpoint, including the
	// post_logout_redirect_uri parameter.
	LogoutURL           string
	SquareApplicationID string
}
