package payment

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
)

// Webhook acknowledges Square payment notifications. Payments are confirmed
// synchronously during checkout, so the notification is only logged.
func (p *Controller) Webhook(c *fiber.Ctx) error {
	var body struct {
		Type string `json:"type"`
	}
	if err := c.BodyParser(&body); err == nil && body.Type != "" {
		log.Info().Str("type", body.Type).Msg("square webhook received")
	}

	return c.SendStatus(fiber.StatusOK)
}
