package payment

import (
	"context"

	"github.com/oviedojeepclub/clubhub/internal/directory"
	"github.com/oviedojeepclub/clubhub/internal/emailer"
	"github.com/oviedojeepclub/clubhub/internal/payments"
)

type paymentsService interface {
	CreatePayment(ctx context.Context, sourceID, idempotencyKey string, amountCents int64) (*payments.Payment, error)
	ListCatalogItems(ctx context.Context) ([]payments.CatalogItem, error)
}

type memberDirectory interface {
	CreateMember(ctx context.Context, email, displayName, password string, details directory.MembershipDetails) (string, error)
	UpdateExpiration(ctx context.Context, userID string, expiration int64) error
	Exists(ctx context.Context, email string) (bool, error)
}

type welcomeEmail interface {
	Send(toAddress, toName string, msg emailer.Message) error
}

type Config struct {
	// ApplicationID is the Square web payments application id handed to the
	// card form.
	ApplicationID string
}

type Controller struct {
	payments  paymentsService
	directory memberDirectory
	sender    welcomeEmail
	config    Config
}

func NewController(payments paymentsService, directory memberDirectory, sender welcomeEmail, cfg Config) *Controller {
	return &Controller{
		payments:  payments,
		directory: directory,
		sender:    sender,
		config:    cfg,
	}
}
