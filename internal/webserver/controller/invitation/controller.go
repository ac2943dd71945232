package invitation

import (
	"context"
	"time"

	"github.com/oviedojeepclub/clubhub/internal/directory"
	"github.com/oviedojeepclub/clubhub/internal/emailer"
	"github.com/oviedojeepclub/clubhub/internal/model"
)

type invitationStore interface {
	Store(ctx context.Context, invitation model.Invitation) error
	Get(ctx context.Context, token string) (*model.Invitation, error)
	Delete(ctx context.Context, token string) error
}

type memberDirectory interface {
	CreateMember(ctx context.Context, email, displayName, password string, details directory.MembershipDetails) (string, error)
	FamilyMembers(ctx context.Context, membershipNumber string) ([]model.Member, error)
}

type invitationEmail interface {
	Send(toAddress, toName string, msg emailer.Message) error
}

type Config struct {
	// Timeout is how long an invitation stays usable. Zero means forever.
	Timeout time.Duration
}

type Controller struct {
	invitations invitationStore
	directory   memberDirectory
	sender      invitationEmail
	config      Config
}

func NewController(invitations invitationStore, directory memberDirectory, sender invitationEmail, cfg Config) *Controller {
	return &Controller{
		invitations: invitations,
		directory:   directory,
		sender:      sender,
		config:      cfg,
	}
}
