package home

import (
	"github.com/gofiber/fiber/v2"
	"github.com/oviedojeepclub/clubhub/internal/model"
)

func (h *Controller) Index(c *fiber.Ctx) error {
	var session model.Session
	if val, ok := c.Locals("Session").(model.Session); ok {
		session = val
	}

	return c.Render("index", fiber.Map{
		"Title":         "Oviedo Jeep Club",
		"Session":       session,
		"LoggedIn":      session.ID != "",
		"IsBoardMember": session.IsBoardMember(),
		"Section":       c.Query("section"),
	}, "layout")
}

// Welcome answers API health probes with a greeting.
func (h *Controller) Welcome(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"message": "Welcome to the Oviedo Jeep Club membership portal",
	})
}

func (h *Controller) Privacy(c *fiber.Ctx) error {
	return c.Render("privacy", fiber.Map{
		"Title": "Privacy policy",
	}, "layout")
}
