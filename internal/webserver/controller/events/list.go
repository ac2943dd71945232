package events

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/oviedojeepclub/clubhub/internal/event"
	"github.com/rs/zerolog/log"
)

// Upcoming returns the events from the calendar blob that have not started
// yet, soonest first.
func (e *Controller) Upcoming(c *fiber.Ctx) error {
	all, err := e.store.Events(c.Context())
	if err != nil {
		log.Error().Err(err).Msg("cannot read events")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Unable to load events",
		})
	}

	return c.JSON(event.SortByStart(event.Upcoming(all, time.Now())))
}

// Past returns the events that have already taken place.
func (e *Controller) Past(c *fiber.Ctx) error {
	all, err := e.store.Events(c.Context())
	if err != nil {
		log.Error().Err(err).Msg("cannot read events")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Unable to load events",
		})
	}

	return c.JSON(event.SortByStart(event.Past(all, time.Now())))
}
