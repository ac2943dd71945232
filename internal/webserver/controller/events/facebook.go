package events

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/oviedojeepclub/clubhub/internal/event"
	"github.com/oviedojeepclub/clubhub/internal/webserver/flash"
	"github.com/rs/zerolog/log"
)

const (
	fbStateCookieName = "fb_oauth_state"
	fbTokenCookieName = "fb_access_token"
)

// Sync starts the Facebook login that authorizes reading the club page
// events.
func (e *Controller) Sync(c *fiber.Ctx) error {
	state := uuid.NewString()

	c.Cookie(&fiber.Cookie{
		Name:     fbStateCookieName,
		Value:    state,
		Path:     "/",
		MaxAge:   600,
		HTTPOnly: true,
	})

	return c.Redirect(e.flow.AuthCodeURL(state))
}

// FacebookCallback finishes the Facebook login, pulls the page events and
// merges them into the calendar blob. Club-authored events survive the
// merge, previously synced Facebook events are replaced wholesale.
func (e *Controller) FacebookCallback(c *fiber.Ctx) error {
	if c.Query("state") == "" || c.Query("state") != c.Cookies(fbStateCookieName) {
		return c.Status(fiber.StatusBadRequest).SendString("State mismatch")
	}

	code := c.Query("code")
	if code == "" {
		return c.Status(fiber.StatusBadRequest).SendString("Authorization code missing")
	}

	token, err := e.flow.Exchange(c.Context(), code)
	if err != nil {
		log.Error().Err(err).Msg("facebook code exchange failed")
		return c.Status(fiber.StatusBadRequest).SendString("Error fetching access token")
	}

	c.Cookie(&fiber.Cookie{
		Name:     fbTokenCookieName,
		Value:    token.AccessToken,
		Path:     "/",
		MaxAge:   3600,
		HTTPOnly: true,
	})

	fetched, err := e.facebook.PageEvents(c.Context(), token.AccessToken)
	if err != nil {
		log.Error().Err(err).Msg("cannot fetch page events")
		flash.Set(c, "danger", "Could not fetch Facebook events.")
		return c.Redirect("/?section=events")
	}

	existing, err := e.store.Events(c.Context())
	if err != nil {
		log.Error().Err(err).Msg("cannot read events")
		flash.Set(c, "danger", "Could not load the event calendar.")
		return c.Redirect("/?section=events")
	}

	merged := event.Merge(event.Upcoming(existing, time.Now()), fetched)
	if err := e.store.SaveEvents(c.Context(), merged); err != nil {
		log.Error().Err(err).Msg("cannot save merged events")
		flash.Set(c, "danger", "Could not save the synced events.")
		return c.Redirect("/?section=events")
	}

	flash.Set(c, "success", "Facebook events synced.")
	return c.Redirect("/?section=events")
}

// Facebook returns the club page events straight from the Graph API, using
// the access token stored during the last sync.
func (e *Controller) Facebook(c *fiber.Ctx) error {
	token := c.Cookies(fbTokenCookieName)
	if token == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Facebook access token missing. Sync events first.",
		})
	}

	fetched, err := e.facebook.PageEvents(c.Context(), token)
	if err != nil {
		log.Error().Err(err).Msg("cannot fetch page events")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Unable to fetch Facebook events",
		})
	}

	return c.JSON(event.SortByStart(fetched))
}
