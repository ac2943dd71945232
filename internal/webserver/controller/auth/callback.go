package auth

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/oviedojeepclub/clubhub/internal/model"
	"github.com/rs/zerolog/log"
)

// Callback finishes the authorization code flow. It exchanges the code for
// tokens, reads the member profile out of the id_token claims and sends back
// the session JWT as a cookie.
func (a *Controller) Callback(c *fiber.Ctx) error {
	state := c.Query("state")
	if state == "" || state != c.Cookies(stateCookieName) {
		return c.Status(fiber.StatusUnauthorized).SendString("State mismatch")
	}

	code := c.Query("code")
	if code == "" {
		return c.Status(fiber.StatusUnauthorized).SendString("Authorization code missing")
	}

	token, err := a.flow.Exchange(c.Context(), code)
	if err != nil {
		log.Error().Err(err).Msg("code exchange failed")
		return c.Status(fiber.StatusUnauthorized).SendString("Login failed")
	}

	rawIDToken, ok := token.Extra("id_token").(string)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).SendString("Login failed")
	}

	claims, err := idTokenClaims(rawIDToken)
	if err != nil {
		log.Error().Err(err).Msg("cannot parse id_token")
		return c.Status(fiber.StatusUnauthorized).SendString("Login failed")
	}

	session := sessionFromClaims(claims)

	expiration := time.Now().Add(a.config.SessionTimeout)
	signedToken, err := GenerateToken(session, expiration, a.config.Secret)
	if err != nil {
		return fiber.ErrInternalServerError
	}

	c.Cookie(&fiber.Cookie{
		Name:     sessionCookieName,
		Value:    signedToken,
		Path:     "/",
		MaxAge:   int(a.config.SessionTimeout.Seconds()),
		Secure:   false,
		HTTPOnly: true,
	})

	c.Cookie(&fiber.Cookie{
		Name:     stateCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HTTPOnly: true,
	})

	return c.Redirect("/")
}

// idTokenClaims decodes the id_token without re-verifying its signature, as
// it arrives straight from the token endpoint over TLS.
func idTokenClaims(raw string) (jwt.MapClaims, error) {
	claims := jwt.MapClaims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(raw, claims); err != nil {
		return nil, err
	}
	return claims, nil
}

func sessionFromClaims(claims jwt.MapClaims) model.Session {
	session := model.Session{
		ID:               stringClaim(claims, "oid"),
		Name:             stringClaim(claims, "name"),
		JobTitle:         stringClaim(claims, "jobTitle"),
		MembershipNumber: stringClaim(claims, "extension_MembershipNumber"),
		MemberJoined:     epochClaim(claims, "extension_MemberJoinedDate"),
		MemberExpiration: epochClaim(claims, "extension_MemberExpirationDate"),
	}

	if emails, ok := claims["emails"].([]any); ok && len(emails) > 0 {
		if email, ok := emails[0].(string); ok {
			session.Email = email
		}
	}

	if session.MemberExpiration != 0 {
		session.ExpirationDate = time.Unix(session.MemberExpiration, 0).UTC().Format("January 02, 2006")
	}

	return session
}

func stringClaim(claims jwt.MapClaims, name string) string {
	value, _ := claims[name].(string)
	return value
}

func epochClaim(claims jwt.MapClaims, name string) int64 {
	switch value := claims[name].(type) {
	case float64:
		return model.EpochSeconds(value)
	case string:
		if ts, err := time.Parse(time.RFC3339, value); err == nil {
			return ts.Unix()
		}
	}
	return 0
}

// GenerateToken signs a session JWT carrying the member profile.
func GenerateToken(session model.Session, expiration time.Time, secret []byte) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"userdata": session,
		"exp":      jwt.NewNumericDate(expiration),
	})

	return token.SignedString(secret)
}
