package payment

import (
	"github.com/gofiber/fiber/v2"
)

func (p *Controller) Join(c *fiber.Ctx) error {
	return c.Render("join", fiber.Map{
		"Title":               "Join the club",
		"SquareApplicationID": p.config.ApplicationID,
		"AmountDollars":       "50.00",
	}, "layout")
}
