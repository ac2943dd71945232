package auth

import (
	"context"
	"time"

	"golang.org/x/oauth2"
)

const sessionCookieName = "session"

// CodeFlow is the authorization code grant against the B2C sign-in user
// flow.
type CodeFlow interface {
	AuthCodeURL(state string, opts ...oauth2.AuthCodeOption) string
	Exchange(ctx context.Context, code string, opts ...oauth2.AuthCodeOption) (*oauth2.Token, error)
}

type Config struct {
	Secret         []byte
	SessionTimeout time.Duration
	// LogoutURL is the B2C logout endpoint, including the
	// post_logout_redirect_uri parameter.
	LogoutURL string
}

type Controller struct {
	flow   CodeFlow
	config Config
}

func NewController(flow CodeFlow, cfg Config) *Controller {
	return &Controller{
		flow:   flow,
		config: cfg,
	}
}
