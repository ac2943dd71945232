package webserver

import (
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/oviedojeepclub/clubhub/internal/model"
)

func sessionData(c *fiber.Ctx) model.Session {
	var session model.Session

	t, ok := c.Locals("user").(*jwt.Token)
	if !ok {
		return session
	}
	claims, ok := t.Claims.(jwt.MapClaims)
	if !ok {
		return session
	}
	userData, ok := claims["userdata"].(map[string]interface{})
	if !ok {
		return session
	}

	if value, ok := userData["ID"].(string); ok {
		session.ID = value
	}
	if value, ok := userData["Name"].(string); ok {
		session.Name = value
	}
	if value, ok := userData["Email"].(string); ok {
		session.Email = value
	}
	if value, ok := userData["JobTitle"].(string); ok {
		session.JobTitle = value
	}
	if value, ok := userData["MembershipNumber"].(string); ok {
		session.MembershipNumber = value
	}
	if value, ok := userData["MemberJoined"].(float64); ok {
		session.MemberJoined = int64(value)
	}
	if value, ok := userData["MemberExpiration"].(float64); ok {
		session.MemberExpiration = int64(value)
	}
	if value, ok := userData["ExpirationDate"].(string); ok {
		session.ExpirationDate = value
	}
	if value, ok := claims["exp"].(float64); ok {
		session.Exp = value
	}

	return session
}
