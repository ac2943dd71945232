package auth

import (
	"github.com/gofiber/fiber/v2"
)

// Logs out the member, removes their JWT and sends them through the B2C
// logout endpoint so the provider session is cleared as well.
func (a *Controller) SignOut(c *fiber.Ctx) error {
	c.Cookie(&fiber.Cookie{
		Name:     sessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Secure:   false,
		HTTPOnly: true,
	})

	return c.Redirect(a.config.LogoutURL)
}
