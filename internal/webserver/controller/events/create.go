package events

import (
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/oviedojeepclub/clubhub/internal/event"
	"github.com/oviedojeepclub/clubhub/internal/webserver/flash"
	"github.com/rs/zerolog/log"
)

// Create adds a club event to the calendar blob. An uploaded cover image is
// stored in blob storage and referenced by URL.
func (e *Controller) Create(c *fiber.Ctx) error {
	if c.Method() != fiber.MethodPost {
		return c.Redirect("/")
	}

	name := strings.TrimSpace(c.FormValue("name"))
	startTime := strings.TrimSpace(c.FormValue("start_time"))
	if name == "" || startTime == "" {
		flash.Set(c, "danger", "Event name and start time are required.")
		return c.Redirect("/?section=events")
	}
	if _, err := event.ParseStart(startTime); err != nil {
		flash.Set(c, "danger", "Start time is not in a recognized format.")
		return c.Redirect("/?section=events")
	}

	ev := event.Event{
		ID:          event.NewLocalID(),
		Name:        name,
		Description: c.FormValue("description"),
		StartTime:   startTime,
		EndTime:     optional(c.FormValue("end_time")),
		Place: event.Place{
			Name: c.FormValue("place_name"),
			ID:   optional(c.FormValue("place_id")),
			Location: event.Location{
				City:      c.FormValue("city"),
				Country:   c.FormValue("country"),
				State:     c.FormValue("state"),
				Street:    optional(c.FormValue("street")),
				Zip:       optional(c.FormValue("zip")),
				Latitude:  floatValue(c.FormValue("latitude")),
				Longitude: floatValue(c.FormValue("longitude")),
			},
		},
		Cover: event.Cover{
			OffsetX: intValue(c.FormValue("cover_offset_x")),
			OffsetY: intValue(c.FormValue("cover_offset_y")),
			Source:  strings.TrimSpace(c.FormValue("cover_source")),
			ID:      optional(c.FormValue("cover_id")),
		},
	}

	if file, err := c.FormFile("cover_image"); err == nil {
		contents, err := file.Open()
		if err != nil {
			flash.Set(c, "danger", "Could not read the cover image.")
			return c.Redirect("/?section=events")
		}
		defer contents.Close()

		url, err := e.store.SaveCoverImage(c.Context(), file.Filename, contents)
		if err != nil {
			log.Error().Err(err).Msg("cannot store cover image")
			flash.Set(c, "danger", "Could not store the cover image.")
			return c.Redirect("/?section=events")
		}
		ev.Cover.Source = url
	}

	existing, err := e.store.Events(c.Context())
	if err != nil {
		log.Error().Err(err).Msg("cannot read events")
		flash.Set(c, "danger", "Could not load the event calendar.")
		return c.Redirect("/?section=events")
	}

	events := event.SortByStart(append(event.Upcoming(existing, time.Now()), ev))
	if err := e.store.SaveEvents(c.Context(), events); err != nil {
		log.Error().Err(err).Msg("cannot save events")
		flash.Set(c, "danger", "Could not save the event.")
		return c.Redirect("/?section=events")
	}

	flash.Set(c, "success", "Event created successfully.")
	return c.Redirect("/?section=events")
}

func optional(value string) *string {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}
	return &value
}

func floatValue(value string) float64 {
	f, _ := strconv.ParseFloat(strings.TrimSpace(value), 64)
	return f
}

func intValue(value string) int {
	i, _ := strconv.Atoi(strings.TrimSpace(value))
	return i
}
