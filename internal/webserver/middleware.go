package webserver

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	jwtware "github.com/gofiber/jwt/v3"
	"github.com/oviedojeepclub/clubhub/internal/webserver/flash"
)

// RequireSession rejects requests without a valid session cookie.
func RequireSession(jwtSecret []byte) fiber.Handler {
	return jwtware.New(jwtware.Config{
		SigningKey:    jwtSecret,
		SigningMethod: "HS256",
		TokenLookup:   "cookie:session",
		SuccessHandler: func(c *fiber.Ctx) error {
			c.Locals("Session", sessionData(c))
			return c.Next()
		},
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return c.Status(fiber.StatusUnauthorized).SendString("Unauthorized")
		},
	})
}

// OptionalSession populates the session when the cookie is present and valid
// and lets the request through either way.
func OptionalSession(jwtSecret []byte) fiber.Handler {
	return jwtware.New(jwtware.Config{
		SigningKey:    jwtSecret,
		SigningMethod: "HS256",
		TokenLookup:   "cookie:session",
		SuccessHandler: func(c *fiber.Ctx) error {
			c.Locals("Session", sessionData(c))
			return c.Next()
		},
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return c.Next()
		},
	})
}

// SetFQDN composes the fully qualified address of the host running the app
// and sets it as a local variable of the request
func SetFQDN(cfg Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Locals("fqdn", fmt.Sprintf("%s://%s",
			c.Protocol(),
			cfg.FQDN,
		))
		return c.Next()
	}
}

// LoadFlash moves a pending flash message from its cookie into request
// locals so templates can show it once.
func LoadFlash(c *fiber.Ctx) error {
	if level, message, ok := flash.Pop(c); ok {
		c.Locals("FlashLevel", level)
		c.Locals("FlashMessage", message)
	}
	return c.Next()
}
