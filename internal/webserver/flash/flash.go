// Package flash stores a one-shot notification in a cookie so it survives
// the redirect that usually follows a form submission.
package flash

import (
	"net/url"
	"strings"

	"github.com/gofiber/fiber/v2"
)

const cookieName = "flash"

func Set(c *fiber.Ctx, level, message string) {
	c.Cookie(&fiber.Cookie{
		Name:     cookieName,
		Value:    url.QueryEscape(level + "|" + message),
		Path:     "/",
		HTTPOnly: true,
	})
}

// Pop returns the pending message, if any, and clears the cookie.
func Pop(c *fiber.Ctx) (level, message string, ok bool) {
	raw := c.Cookies(cookieName)
	if raw == "" {
		return "", "", false
	}
	decoded, err := url.QueryUnescape(raw)
	if err != nil {
		return "", "", false
	}
	parts := strings.SplitN(decoded, "|", 2)
	if len(parts) != 2 {
		return "", "", false
	}
	c.Cookie(&fiber.Cookie{
		Name:     cookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HTTPOnly: true,
	})
	return parts[0], parts[1], true
}
