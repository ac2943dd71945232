package events

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/oviedojeepclub/clubhub/internal/event"
	"github.com/oviedojeepclub/clubhub/internal/model"
	"github.com/oviedojeepclub/clubhub/internal/webserver/flash"
	"github.com/rs/zerolog/log"
)

// Delete removes an event from the calendar blob. Only board members may do
// this.
func (e *Controller) Delete(c *fiber.Ctx) error {
	session, _ := c.Locals("Session").(model.Session)
	if !session.IsBoardMember() {
		flash.Set(c, "danger", "Not authorized to delete events.")
		return c.Redirect("/")
	}

	id := c.Params("id")
	existing, err := e.store.Events(c.Context())
	if err != nil {
		log.Error().Err(err).Msg("cannot read events")
		flash.Set(c, "danger", "Could not load the event calendar.")
		return c.Redirect("/?section=events")
	}

	kept := make([]event.Event, 0, len(existing))
	for _, ev := range event.Upcoming(existing, time.Now()) {
		if ev.ID != id {
			kept = append(kept, ev)
		}
	}

	if err := e.store.SaveEvents(c.Context(), kept); err != nil {
		log.Error().Err(err).Msg("cannot save events")
		flash.Set(c, "danger", "Could not delete the event.")
		return c.Redirect("/?section=events")
	}

	flash.Set(c, "success", "Event deleted.")
	return c.Redirect("/?section=events")
}
