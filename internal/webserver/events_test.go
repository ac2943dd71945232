package webserver_test

import (
	"encoding/json"
	"net/http"
	"net/url"
	"strings"
	"testing"

	"github.com/oviedojeepclub/clubhub/internal/event"
)

func calendarFixture() []event.Event {
	return []event.Event{
		{ID: "OJC1", Name: "Past ride", StartTime: "2020-01-01T10:00", Cover: event.Cover{Source: "https://x/1.jpg"}},
		{ID: "OJC2", Name: "Far ride", StartTime: "2099-07-01T10:00", Cover: event.Cover{Source: "https://x/2.jpg"}},
		{ID: "OJC3", Name: "Near ride", StartTime: "2099-06-01T10:00", Cover: event.Cover{Source: "https://x/3.jpg"}},
		{ID: "555", Name: "FB event", StartTime: "2099-08-01T10:00", Cover: event.Cover{Source: "https://x/4.jpg"}},
	}
}

func TestUpcomingEvents(t *testing.T) {
	env := newTestEnv(t)
	env.events.events = calendarFixture()

	req, _ := http.NewRequest(http.MethodGet, "/blob-events", nil)
	req.AddCookie(sessionCookie(t, memberSession()))

	response, err := env.app.Test(req)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if response.StatusCode != http.StatusOK {
		t.Fatalf("Expected %d, got %d", http.StatusOK, response.StatusCode)
	}

	var events []event.Event
	if err := json.NewDecoder(response.Body).Decode(&events); err != nil {
		t.Fatalf("Unexpected error decoding response: %v", err)
	}
	if len(events) != 3 {
		t.Fatalf("Expected 3 upcoming events, got %d", len(events))
	}
	// Soonest first.
	if events[0].ID != "OJC3" || events[1].ID != "OJC2" || events[2].ID != "555" {
		t.Errorf("Unexpected order %s, %s, %s", events[0].ID, events[1].ID, events[2].ID)
	}
}

func TestPastEvents(t *testing.T) {
	env := newTestEnv(t)
	env.events.events = calendarFixture()

	req, _ := http.NewRequest(http.MethodGet, "/list_old_events", nil)
	req.AddCookie(sessionCookie(t, memberSession()))

	response, err := env.app.Test(req)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	var events []event.Event
	if err := json.NewDecoder(response.Body).Decode(&events); err != nil {
		t.Fatalf("Unexpected error decoding response: %v", err)
	}
	if len(events) != 1 || events[0].ID != "OJC1" {
		t.Errorf("Unexpected past events %v", events)
	}
}

func TestCreateEvent(t *testing.T) {
	env := newTestEnv(t)
	env.events.events = calendarFixture()

	form := url.Values{}
	form.Set("name", "New ride")
	form.Set("start_time", "2099-09-01T10:00")
	form.Set("description", "A brand new ride")
	form.Set("place_name", "Black Hammock")
	form.Set("city", "Oviedo")
	form.Set("state", "FL")
	form.Set("country", "United States")
	req, _ := http.NewRequest(http.MethodPost, "/create_event", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.AddCookie(sessionCookie(t, boardSession()))

	response, err := env.app.Test(req)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if response.StatusCode != http.StatusFound {
		t.Fatalf("Expected a redirect, got %d", response.StatusCode)
	}

	// Past events are pruned, the new event joins the upcoming ones.
	if len(env.events.events) != 4 {
		t.Fatalf("Expected 4 events after creation, got %d", len(env.events.events))
	}
	var created *event.Event
	for i := range env.events.events {
		if env.events.events[i].Name == "New ride" {
			created = &env.events.events[i]
		}
		if env.events.events[i].ID == "OJC1" {
			t.Error("Expected the past event to be pruned")
		}
	}
	if created == nil {
		t.Fatal("Expected the new event to be saved")
	}
	if !created.Local() {
		t.Errorf("Expected a club event id, got %s", created.ID)
	}
}

func TestCreateEventRejectsBadStartTime(t *testing.T) {
	env := newTestEnv(t)

	form := url.Values{}
	form.Set("name", "New ride")
	form.Set("start_time", "whenever")
	req, _ := http.NewRequest(http.MethodPost, "/create_event", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.AddCookie(sessionCookie(t, boardSession()))

	response, err := env.app.Test(req)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if response.StatusCode != http.StatusFound {
		t.Fatalf("Expected a redirect, got %d", response.StatusCode)
	}
	if !strings.HasPrefix(flashCookie(response), "danger|") {
		t.Error("Expected a danger flash message")
	}
	if len(env.events.events) != 0 {
		t.Error("Expected no event to be saved")
	}
}

func TestDeleteEventRequiresBoardMember(t *testing.T) {
	env := newTestEnv(t)
	env.events.events = calendarFixture()

	req, _ := http.NewRequest(http.MethodPost, "/delete_event/OJC2", nil)
	req.AddCookie(sessionCookie(t, memberSession()))

	response, err := env.app.Test(req)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if response.StatusCode != http.StatusFound {
		t.Fatalf("Expected a redirect, got %d", response.StatusCode)
	}
	if flash := flashCookie(response); flash != "danger|Not authorized to delete events." {
		t.Errorf("Unexpected flash message %q", flash)
	}
	if len(env.events.events) != 4 {
		t.Error("Expected the calendar to be untouched")
	}
}

func TestDeleteEvent(t *testing.T) {
	env := newTestEnv(t)
	env.events.events = calendarFixture()

	req, _ := http.NewRequest(http.MethodPost, "/delete_event/OJC2", nil)
	req.AddCookie(sessionCookie(t, boardSession()))

	response, err := env.app.Test(req)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if response.StatusCode != http.StatusFound {
		t.Fatalf("Expected a redirect, got %d", response.StatusCode)
	}

	for _, e := range env.events.events {
		if e.ID == "OJC2" {
			t.Error("Expected the event to be removed")
		}
	}
}

func TestFacebookSyncMergesEvents(t *testing.T) {
	env := newTestEnv(t)
	env.events.events = calendarFixture()
	env.fbFlow.accessToken = "page-token"
	env.facebook.events = []event.Event{
		{ID: "999", Name: "Fresh FB event", StartTime: "2099-05-01T10:00", Cover: event.Cover{Source: "https://x/9.jpg"}},
	}

	req, _ := http.NewRequest(http.MethodGet, "/facebook/callback?state=xyz&code=fbcode", nil)
	req.AddCookie(sessionCookie(t, boardSession()))
	req.AddCookie(&http.Cookie{Name: "fb_oauth_state", Value: "xyz"})

	response, err := env.app.Test(req)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if response.StatusCode != http.StatusFound {
		t.Fatalf("Expected a redirect, got %d", response.StatusCode)
	}

	ids := make([]string, 0, len(env.events.events))
	for _, e := range env.events.events {
		ids = append(ids, e.ID)
	}
	// Club events survive, the stale Facebook event is replaced by the
	// fresh fetch, the past event is pruned.
	expected := []string{"999", "OJC3", "OJC2"}
	if len(ids) != len(expected) {
		t.Fatalf("Unexpected events after sync: %v", ids)
	}
	for i := range expected {
		if ids[i] != expected[i] {
			t.Errorf("Expected %v, got %v", expected, ids)
			break
		}
	}
}

func TestFacebookSyncStateMismatch(t *testing.T) {
	env := newTestEnv(t)

	req, _ := http.NewRequest(http.MethodGet, "/facebook/callback?state=evil&code=fbcode", nil)
	req.AddCookie(sessionCookie(t, boardSession()))
	req.AddCookie(&http.Cookie{Name: "fb_oauth_state", Value: "xyz"})

	response, err := env.app.Test(req)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if response.StatusCode != http.StatusBadRequest {
		t.Errorf("Expected %d, got %d", http.StatusBadRequest, response.StatusCode)
	}
}
