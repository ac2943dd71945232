package auth

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const stateCookieName = "oauth_state"

// Login redirects the visitor to the B2C sign-in page. The state value is
// kept in a short-lived cookie and checked again on callback.
func (a *Controller) Login(c *fiber.Ctx) error {
	c.Cookie(&fiber.Cookie{
		Name:     sessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HTTPOnly: true,
	})

	state := uuid.NewString()

	c.Cookie(&fiber.Cookie{
		Name:     stateCookieName,
		Value:    state,
		Path:     "/",
		MaxAge:   600,
		HTTPOnly: true,
	})

	return c.Redirect(a.flow.AuthCodeURL(state))
}
