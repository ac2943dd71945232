package payment

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
)

// Items returns the Square catalog so the membership page can show current
// pricing.
func (p *Controller) Items(c *fiber.Ctx) error {
	items, err := p.payments.ListCatalogItems(c.Context())
	if err != nil {
		log.Error().Err(err).Msg("cannot fetch catalog items")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Unable to fetch items",
		})
	}

	return c.JSON(items)
}
