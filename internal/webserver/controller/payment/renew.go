package payment

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/oviedojeepclub/clubhub/internal/directory"
	"github.com/oviedojeepclub/clubhub/internal/emailer"
	"github.com/oviedojeepclub/clubhub/internal/model"
	"github.com/oviedojeepclub/clubhub/internal/payments"
	"github.com/rs/zerolog/log"
)

// Renew charges the renewal fee and pushes the new expiration date to the
// directory.
func (p *Controller) Renew(c *fiber.Ctx) error {
	session, ok := c.Locals("Session").(model.Session)
	if !ok {
		return fiber.ErrUnauthorized
	}

	var body struct {
		Nonce string `json:"nonce" form:"nonce"`
	}
	if err := c.BodyParser(&body); err != nil || body.Nonce == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Missing card information",
		})
	}

	if _, err := p.payments.CreatePayment(c.Context(), body.Nonce, idempotencyKey(), payments.RenewAmountCents); err != nil {
		log.Error().Err(err).Msg("renewal payment failed")
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Payment failed. You have not been charged.",
		})
	}

	expiration := directory.ComputeExpirationDate(time.Now())
	if err := p.directory.UpdateExpiration(c.Context(), session.ID, expiration.Unix()); err != nil {
		log.Error().Err(err).Str("member_id", session.ID).Msg("cannot update expiration after renewal")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "Payment succeeded but the membership could not be updated. Please contact the board.",
		})
	}

	if msg, err := emailer.RenewalConfirmation(session.Name); err == nil {
		if err := p.sender.Send(session.Email, session.Name, msg); err != nil {
			log.Error().Err(err).Msg("cannot send renewal confirmation")
		}
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Membership renewed successfully",
	})
}
