package payment

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/oviedojeepclub/clubhub/internal/directory"
	"github.com/oviedojeepclub/clubhub/internal/emailer"
	"github.com/oviedojeepclub/clubhub/internal/payments"
	"github.com/oviedojeepclub/clubhub/internal/webserver/flash"
	"github.com/rs/zerolog/log"
)

// Pay charges the joining fee and provisions the member account in the
// directory.
func (p *Controller) Pay(c *fiber.Ctx) error {
	nonce := strings.TrimSpace(c.FormValue("nonce"))
	email := strings.TrimSpace(c.FormValue("email"))
	name := strings.TrimSpace(c.FormValue("displayName"))
	password := c.FormValue("password")

	if nonce == "" || email == "" || name == "" || password == "" {
		flash.Set(c, "danger", "Missing payment or account information.")
		return c.Redirect("/join")
	}

	exists, err := p.directory.Exists(c.Context(), email)
	if err != nil {
		log.Error().Err(err).Msg("cannot check for existing account")
		flash.Set(c, "danger", "Could not verify account availability. Please try again.")
		return c.Redirect("/join")
	}
	if exists {
		flash.Set(c, "danger", "An account with that email already exists.")
		return c.Redirect("/join")
	}

	payment, err := p.payments.CreatePayment(c.Context(), nonce, idempotencyKey(), payments.JoinAmountCents)
	if err != nil {
		log.Error().Err(err).Msg("payment failed")
		flash.Set(c, "danger", "Payment failed. You have not been charged.")
		return c.Redirect("/join")
	}

	details := directory.NewMembershipDetails(time.Now())
	if _, err := p.directory.CreateMember(c.Context(), email, name, password, details); err != nil {
		log.Error().Err(err).Str("payment_id", payment.ID).Msg("account creation failed after payment")
		flash.Set(c, "danger", fmt.Sprintf("Payment succeeded but the account could not be created: %s", err))
		return c.Redirect("/join")
	}

	msg, err := emailer.Welcome(name, payment.ReceiptURL)
	if err == nil {
		if err := p.sender.Send(email, name, msg); err != nil {
			log.Error().Err(err).Msg("cannot send welcome email")
		}
	}

	flash.Set(c, "success", "Welcome to the club! Please sign in with your new account.")
	return c.Redirect("/join")
}

func idempotencyKey() string {
	var b [12]byte
	rand.Read(b[:])
	return hex.EncodeToString(b[:])
}
