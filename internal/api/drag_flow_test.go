package api

import (
	"net/http"
	"testing"
	"time"

	"github.com/solenedv/cadence/internal/models"
)

func TestDragFlowPersistsRepositionedEvent(t *testing.T) {
	app, database := newCalendarTestApp(t)
	user := createTestUser(t, database, "front-desk@example.com", "StrongPass1")
	session := loginTestUser(t, app, user.Email, "StrongPass1")

	event := seedScheduleEvent(t, database, "Morning Yoga", time.Date(2024, time.June, 10, 9, 0, 0, 0, time.UTC), 60)

	startResponse := postJSON(t, app, "/api/drag/start", session, map[string]any{
		"eventId":     event.ID,
		"grabOffsetY": 0,
	})
	defer startResponse.Body.Close()
	if startResponse.StatusCode != http.StatusOK {
		t.Fatalf("drag start returned %d, want 200", startResponse.StatusCode)
	}

	startPayload := struct {
		GestureID          string `json:"gestureId"`
		State              string `json:"state"`
		StartOffsetMinutes int    `json:"startOffsetMinutes"`
		DurationMinutes    int    `json:"durationMinutes"`
	}{}
	decodeJSONBody(t, startResponse, &startPayload)

	if startPayload.State != "dragging" || startPayload.GestureID == "" {
		t.Fatalf("drag start payload = %+v, want a dragging gesture", startPayload)
	}
	if startPayload.StartOffsetMinutes != 120 || startPayload.DurationMinutes != 60 {
		t.Fatalf("drag start geometry = %+v, want offset 120 and duration 60", startPayload)
	}

	// Pointer 50px below the grid origin with 40px rows: 75 raw minutes,
	// snapping to the 90 minute slot.
	moveResponse := postJSON(t, app, "/api/drag/move", session, map[string]any{
		"gestureId": startPayload.GestureID,
		"dateKey":   "2024-06-11",
		"pointerY":  150,
		"metrics":   map[string]any{"rowHeightPx": 40, "originYPx": 100, "dayLengthMinutes": 960},
	})
	defer moveResponse.Body.Close()
	if moveResponse.StatusCode != http.StatusOK {
		t.Fatalf("drag move returned %d, want 200", moveResponse.StatusCode)
	}

	movePayload := struct {
		State     string `json:"state"`
		Candidate struct {
			DateKey       string `json:"dateKey"`
			OffsetMinutes int    `json:"offsetMinutes"`
		} `json:"candidate"`
	}{}
	decodeJSONBody(t, moveResponse, &movePayload)

	if movePayload.State != "hovering" {
		t.Fatalf("state after move = %q, want hovering", movePayload.State)
	}
	if movePayload.Candidate.DateKey != "2024-06-11" || movePayload.Candidate.OffsetMinutes != 90 {
		t.Fatalf("candidate = %+v, want 2024-06-11 at 90", movePayload.Candidate)
	}

	dropResponse := postJSON(t, app, "/api/drag/drop", session, map[string]any{
		"gestureId": startPayload.GestureID,
	})
	defer dropResponse.Body.Close()
	if dropResponse.StatusCode != http.StatusOK {
		t.Fatalf("drag drop returned %d, want 200", dropResponse.StatusCode)
	}

	dropPayload := struct {
		Committed bool   `json:"committed"`
		State     string `json:"state"`
	}{}
	decodeJSONBody(t, dropResponse, &dropPayload)

	if !dropPayload.Committed {
		t.Fatalf("drop did not commit")
	}
	if dropPayload.State != "idle" {
		t.Fatalf("state after drop = %q, want idle", dropPayload.State)
	}

	reloaded := models.ScheduleEvent{}
	if err := database.First(&reloaded, event.ID).Error; err != nil {
		t.Fatalf("reload event: %v", err)
	}
	// Grid origin 07:00 plus the 90 minute slot lands at 08:30.
	if got := reloaded.StartsAt.UTC().Format("2006-01-02 15:04"); got != "2024-06-11 08:30" {
		t.Fatalf("persisted start = %s, want 2024-06-11 08:30", got)
	}
	if reloaded.EndsAt == nil {
		t.Fatalf("persisted end was dropped")
	}
	if got := reloaded.EndsAt.UTC().Format("2006-01-02 15:04"); got != "2024-06-11 09:30" {
		t.Fatalf("persisted end = %s, want 2024-06-11 09:30", got)
	}
}

func TestDragStartRejectsUnknownEvent(t *testing.T) {
	app, database := newCalendarTestApp(t)
	user := createTestUser(t, database, "front-desk@example.com", "StrongPass1")
	session := loginTestUser(t, app, user.Email, "StrongPass1")

	response := postJSON(t, app, "/api/drag/start", session, map[string]any{"eventId": 9999})
	defer response.Body.Close()

	if response.StatusCode != http.StatusNotFound {
		t.Fatalf("drag start for missing event returned %d, want 404", response.StatusCode)
	}
}

func TestDragMoveWithoutGestureConflicts(t *testing.T) {
	app, database := newCalendarTestApp(t)
	user := createTestUser(t, database, "front-desk@example.com", "StrongPass1")
	session := loginTestUser(t, app, user.Email, "StrongPass1")

	response := postJSON(t, app, "/api/drag/move", session, map[string]any{
		"gestureId": "nope",
		"dateKey":   "2024-06-11",
		"pointerY":  150,
		"metrics":   map[string]any{"rowHeightPx": 40, "originYPx": 100, "dayLengthMinutes": 960},
	})
	defer response.Body.Close()

	if response.StatusCode != http.StatusConflict {
		t.Fatalf("drag move without gesture returned %d, want 409", response.StatusCode)
	}
}

func TestDragCancelDiscardsGestureWithoutWriting(t *testing.T) {
	app, database := newCalendarTestApp(t)
	user := createTestUser(t, database, "front-desk@example.com", "StrongPass1")
	session := loginTestUser(t, app, user.Email, "StrongPass1")

	event := seedScheduleEvent(t, database, "Morning Yoga", time.Date(2024, time.June, 10, 9, 0, 0, 0, time.UTC), 60)

	startResponse := postJSON(t, app, "/api/drag/start", session, map[string]any{"eventId": event.ID})
	startPayload := struct {
		GestureID string `json:"gestureId"`
	}{}
	decodeJSONBody(t, startResponse, &startPayload)
	startResponse.Body.Close()

	cancelResponse := postJSON(t, app, "/api/drag/cancel", session, map[string]any{"gestureId": startPayload.GestureID})
	defer cancelResponse.Body.Close()
	if cancelResponse.StatusCode != http.StatusOK {
		t.Fatalf("drag cancel returned %d, want 200", cancelResponse.StatusCode)
	}

	reloaded := models.ScheduleEvent{}
	if err := database.First(&reloaded, event.ID).Error; err != nil {
		t.Fatalf("reload event: %v", err)
	}
	if !reloaded.StartsAt.UTC().Equal(event.StartsAt) {
		t.Fatalf("cancel moved the event to %s", reloaded.StartsAt)
	}
}

func TestRescheduleEndpointMovesEvent(t *testing.T) {
	app, database := newCalendarTestApp(t)
	user := createTestUser(t, database, "front-desk@example.com", "StrongPass1")
	session := loginTestUser(t, app, user.Email, "StrongPass1")

	event := seedScheduleEvent(t, database, "Morning Yoga", time.Date(2024, time.June, 10, 9, 0, 0, 0, time.UTC), 60)

	newStart := time.Date(2024, time.June, 12, 14, 0, 0, 0, time.UTC)
	newEnd := newStart.Add(time.Hour)
	response := postJSON(t, app, "/api/events/"+itoa(event.ID)+"/reschedule", session, map[string]any{
		"newStartsAt": newStart.Format(time.RFC3339),
		"newEndsAt":   newEnd.Format(time.RFC3339),
	})
	defer response.Body.Close()

	if response.StatusCode != http.StatusOK {
		t.Fatalf("reschedule returned %d, want 200", response.StatusCode)
	}

	reloaded := models.ScheduleEvent{}
	if err := database.First(&reloaded, event.ID).Error; err != nil {
		t.Fatalf("reload event: %v", err)
	}
	if got := reloaded.StartsAt.UTC().Format("2006-01-02 15:04"); got != "2024-06-12 14:00" {
		t.Fatalf("persisted start = %s, want 2024-06-12 14:00", got)
	}
}
