package webserver

import (
	"context"
	"errors"
	"io"

	"github.com/gofiber/fiber/v2"
	"github.com/oviedojeepclub/clubhub/internal/directory"
	"github.com/oviedojeepclub/clubhub/internal/emailer"
	"github.com/oviedojeepclub/clubhub/internal/event"
	"github.com/oviedojeepclub/clubhub/internal/model"
	"github.com/oviedojeepclub/clubhub/internal/payments"
	"github.com/oviedojeepclub/clubhub/internal/webserver/controller/auth"
	"github.com/oviedojeepclub/clubhub/internal/webserver/controller/events"
	"github.com/oviedojeepclub/clubhub/internal/webserver/controller/home"
	"github.com/oviedojeepclub/clubhub/internal/webserver/controller/invitation"
	"github.com/oviedojeepclub/clubhub/internal/webserver/controller/payment"
	"github.com/rs/zerolog/log"
)

// Directory is the member directory behind the identity provider.
type Directory interface {
	CreateMember(ctx context.Context, email, displayName, password string, details directory.MembershipDetails) (string, error)
	UpdateExpiration(ctx context.Context, userID string, expiration int64) error
	Exists(ctx context.Context, email string) (bool, error)
	FamilyMembers(ctx context.Context, membershipNumber string) ([]model.Member, error)
}

// EventStore reads and writes the event calendar blob.
type EventStore interface {
	Events(ctx context.Context) ([]event.Event, error)
	SaveEvents(ctx context.Context, events []event.Event) error
	SaveCoverImage(ctx context.Context, name string, contents io.Reader) (string, error)
}

// InvitationStore persists pending family invitations.
type InvitationStore interface {
	Store(ctx context.Context, invitation model.Invitation) error
	Get(ctx context.Context, token string) (*model.Invitation, error)
	Delete(ctx context.Context, token string) error
}

// Payments charges cards and reads the catalog.
type Payments interface {
	CreatePayment(ctx context.Context, sourceID, idempotencyKey string, amountCents int64) (*payments.Payment, error)
	ListCatalogItems(ctx context.Context) ([]payments.CatalogItem, error)
}

// PageEvents reads the club's Facebook page events.
type PageEvents interface {
	PageEvents(ctx context.Context, accessToken string) ([]event.Event, error)
}

// Sender delivers a composed email to a single recipient.
type Sender interface {
	Send(toAddress, toName string, msg emailer.Message) error
}

// Dependencies bundles the external services the controllers talk to.
type Dependencies struct {
	Directory    Directory
	Events       EventStore
	Invitations  InvitationStore
	Payments     Payments
	Facebook     PageEvents
	Sender       Sender
	AuthFlow     auth.CodeFlow
	FacebookFlow auth.CodeFlow
}

type Controllers struct {
	Auth        *auth.Controller
	Payments    *payment.Controller
	Events      *events.Controller
	Invitations *invitation.Controller
	Home        *home.Controller

	RequireSession  fiber.Handler
	OptionalSession fiber.Handler
	ErrorHandler    func(c *fiber.Ctx, err error) error
}

func SetupControllers(cfg Config, deps Dependencies) Controllers {
	authController := auth.NewController(deps.AuthFlow, auth.Config{
		Secret:         cfg.JwtSecret,
		SessionTimeout: cfg.SessionTimeout,
		LogoutURL:      cfg.LogoutURL,
	})

	paymentController := payment.NewController(deps.Payments, deps.Directory, deps.Sender, payment.Config{
		ApplicationID: cfg.SquareApplicationID,
	})

	eventsController := events.NewController(deps.Events, deps.Facebook, deps.FacebookFlow)

	invitationController := invitation.NewController(deps.Invitations, deps.Directory, deps.Sender, invitation.Config{
		Timeout: cfg.InvitationTimeout,
	})

	return Controllers{
		Auth:        authController,
		Payments:    paymentController,
		Events:      eventsController,
		Invitations: invitationController,
		Home:        home.NewController(),

		RequireSession:  RequireSession(cfg.JwtSecret),
		OptionalSession: OptionalSession(cfg.JwtSecret),

		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError

			var e *fiber.Error
			if errors.As(err, &e) {
				code = e.Code
			}

			err = c.Status(code).Render("error", fiber.Map{
				"Title":   "Oviedo Jeep Club",
				"Code":    code,
				"Message": err.Error(),
			}, "layout")

			if err != nil {
				log.Error().Err(err).Msg("cannot render error page")
				return c.Status(fiber.StatusInternalServerError).SendString("Internal Server Error")
			}

			return nil
		},
	}
}
