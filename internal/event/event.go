package event

import (
	"encoding/binary"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// LocalIDPrefix marks events authored through the club site, as opposed to
// events pulled from Facebook, which keep Facebook's numeric ids.
const LocalIDPrefix = "OJC"

// Event matches the objects stored in the events.json blob. Facebook page
// events come back from the Graph API in the same shape.
type Event struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	StartTime   string  `json:"start_time"`
	EndTime     *string `json:"end_time"`
	Place       Place   `json:"place"`
	Cover       Cover   `json:"cover"`
}

type Place struct {
	Name     string   `json:"name"`
	Location Location `json:"location"`
	ID       *string  `json:"id"`
}

type Location struct {
	City      string  `json:"city"`
	Country   string  `json:"country"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	State     string  `json:"state"`
	Street    *string `json:"street"`
	Zip       *string `json:"zip"`
}

type Cover struct {
	OffsetX int     `json:"offset_x"`
	OffsetY int     `json:"offset_y"`
	Source  string  `json:"source"`
	ID      *string `json:"id"`
}

// Local reports whether the event was authored locally.
func (e Event) Local() bool {
	return strings.HasPrefix(e.ID, LocalIDPrefix)
}

// NewLocalID returns a fresh club event id: the prefix followed by the
// decimal rendering of 64 random bits.
func NewLocalID() string {
	u := uuid.New()
	return LocalIDPrefix + strconv.FormatUint(binary.BigEndian.Uint64(u[:8]), 10)
}
