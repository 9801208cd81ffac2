package services

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Drag snapping and day-grid geometry.
const (
	SnapMinutes       = 30
	MinutesPerGridRow = 60
	DayLengthMinutes  = 960 // 07:00 grid origin through 23:00
)

// Drag state machine errors.
var (
	ErrDragActive      = errors.New("drag: another gesture is already active")
	ErrDragIdle        = errors.New("drag: no active gesture")
	ErrDragLocked      = errors.New("drag: event is locked")
	ErrDragGesture     = errors.New("drag: unknown gesture")
	ErrDragGeometry    = errors.New("drag: grid geometry unavailable")
	ErrDragCommitting  = errors.New("drag: commit in progress")
	ErrDragUnavailable = errors.New("drag: reschedule target unavailable")
)

// DragState enumerates the gesture lifecycle.
type DragState int

const (
	DragIdle DragState = iota
	DragDragging
	DragHovering
	DragCommitting
)

func (s DragState) String() string {
	switch s {
	case DragDragging:
		return "dragging"
	case DragHovering:
		return "hovering"
	case DragCommitting:
		return "committing"
	default:
		return "idle"
	}
}

// GridMetrics describes the rendered day grid as measured by the client:
// the pixel height of one hour row, the top origin of the grid, and the
// length of the visible day in minutes.
type GridMetrics struct {
	RowHeightPx      float64 `json:"rowHeightPx"`
	OriginYPx        float64 `json:"originYPx"`
	DayLengthMinutes int     `json:"dayLengthMinutes"`
}

func (m GridMetrics) valid() bool {
	return m.RowHeightPx > 0 && m.DayLengthMinutes > 0
}

// RescheduleRequest is the commit contract handed to the persistence
// collaborator: a new start preserving duration, room, and instructor.
type RescheduleRequest struct {
	EventID      uint
	NewStartsAt  time.Time
	NewEndsAt    *time.Time
	RoomID       *uint
	InstructorID *uint
}

// Rescheduler commits a reschedule. Failure leaves the rendered view
// untouched; the caller restores correctness with a fresh fetch.
type Rescheduler interface {
	Reschedule(request RescheduleRequest) error
}

// DragCandidate is the currently hovered drop position.
type DragCandidate struct {
	DateKey       string `json:"dateKey"`
	OffsetMinutes int    `json:"offsetMinutes"`
}

// DragController owns one drag-and-drop gesture at a time. It replaces the
// module-level "currently dragging" globals of ad hoc UI code with explicit
// state constructed per console session. All methods are safe for concurrent
// use; the commit itself runs outside the lock so a gesture arriving mid-commit
// still observes the committing state and is rejected.
type DragController struct {
	rescheduler Rescheduler
	location    *time.Location

	mu          sync.Mutex
	state       DragState
	gestureID   string
	event       DisplayEvent
	grabOffsetY float64
	candidate   DragCandidate
}

// NewDragController builds an idle controller committing through the given
// persistence collaborator.
func NewDragController(rescheduler Rescheduler, location *time.Location) *DragController {
	if location == nil {
		location = time.UTC
	}
	return &DragController{rescheduler: rescheduler, location: location}
}

// State exposes the current lifecycle phase.
func (ctrl *DragController) State() DragState {
	ctrl.mu.Lock()
	defer ctrl.mu.Unlock()
	return ctrl.state
}

// GestureID identifies the active gesture, or is empty when idle.
func (ctrl *DragController) GestureID() string {
	ctrl.mu.Lock()
	defer ctrl.mu.Unlock()
	return ctrl.gestureID
}

// Begin starts a gesture for a draggable event. The grab offset records where
// inside the element the pointer took hold, so drops land where the element's
// top edge points rather than under the cursor.
func (ctrl *DragController) Begin(event DisplayEvent, grabOffsetY float64) (string, error) {
	ctrl.mu.Lock()
	defer ctrl.mu.Unlock()

	if ctrl.state == DragCommitting {
		return "", ErrDragCommitting
	}
	if ctrl.state != DragIdle {
		return "", ErrDragActive
	}
	if event.IsLocked {
		return "", ErrDragLocked
	}

	ctrl.state = DragDragging
	ctrl.gestureID = uuid.NewString()
	ctrl.event = event
	ctrl.grabOffsetY = grabOffsetY
	return ctrl.gestureID, nil
}

// Hover computes the candidate drop position for a pointer over a day cell.
// Unusable geometry cancels the gesture instead of deriving an invalid time.
func (ctrl *DragController) Hover(gestureID string, dateKey string, pointerY float64, metrics GridMetrics) (DragCandidate, error) {
	ctrl.mu.Lock()
	defer ctrl.mu.Unlock()

	if ctrl.state != DragDragging && ctrl.state != DragHovering {
		return DragCandidate{}, ErrDragIdle
	}
	if gestureID != ctrl.gestureID {
		return DragCandidate{}, ErrDragGesture
	}
	if !metrics.valid() {
		ctrl.reset()
		return DragCandidate{}, ErrDragGeometry
	}

	rawMinutes := (pointerY - ctrl.grabOffsetY - metrics.OriginYPx) / metrics.RowHeightPx * MinutesPerGridRow
	offset := SnapOffsetMinutes(rawMinutes, metrics.DayLengthMinutes, ctrl.event.DurationMinutes)

	ctrl.state = DragHovering
	ctrl.candidate = DragCandidate{DateKey: dateKey, OffsetMinutes: offset}
	return ctrl.candidate, nil
}

// Drop commits the hovered candidate when it moves the event to a different
// day or time. It reports whether a commit happened; either way the
// controller returns to idle and the caller rebuilds from refreshed data.
func (ctrl *DragController) Drop(gestureID string) (bool, error) {
	ctrl.mu.Lock()
	if ctrl.state != DragHovering {
		if ctrl.state == DragDragging {
			// Dropped without ever entering a valid target.
			ctrl.reset()
			ctrl.mu.Unlock()
			return false, nil
		}
		ctrl.mu.Unlock()
		return false, ErrDragIdle
	}
	if gestureID != ctrl.gestureID {
		ctrl.mu.Unlock()
		return false, ErrDragGesture
	}

	event := ctrl.event
	candidate := ctrl.candidate
	if candidate.DateKey == event.DateKey && candidate.OffsetMinutes == event.StartOffsetMinutes {
		ctrl.reset()
		ctrl.mu.Unlock()
		return false, nil
	}
	if ctrl.rescheduler == nil {
		ctrl.reset()
		ctrl.mu.Unlock()
		return false, ErrDragUnavailable
	}

	ctrl.state = DragCommitting
	request := ctrl.buildRequest(event, candidate)
	ctrl.mu.Unlock()

	// The commit is the one blocking call; it runs unlocked so concurrent
	// gestures are rejected with ErrDragCommitting instead of queueing.
	err := ctrl.rescheduler.Reschedule(request)

	ctrl.mu.Lock()
	ctrl.reset()
	ctrl.mu.Unlock()
	if err != nil {
		return false, err
	}
	return true, nil
}

// Cancel discards the gesture with no side effects.
func (ctrl *DragController) Cancel(gestureID string) error {
	ctrl.mu.Lock()
	defer ctrl.mu.Unlock()

	if ctrl.state == DragIdle {
		return nil
	}
	if ctrl.state == DragCommitting {
		return ErrDragCommitting
	}
	if gestureID != ctrl.gestureID {
		return ErrDragGesture
	}
	ctrl.reset()
	return nil
}

func (ctrl *DragController) reset() {
	ctrl.state = DragIdle
	ctrl.gestureID = ""
	ctrl.event = DisplayEvent{}
	ctrl.grabOffsetY = 0
	ctrl.candidate = DragCandidate{}
}

func (ctrl *DragController) buildRequest(event DisplayEvent, candidate DragCandidate) RescheduleRequest {
	day := ParseDateKey(candidate.DateKey, event.StartsAt, ctrl.location)
	start := DayStart(day, ctrl.location).Add(time.Duration(GridOriginMinutes+candidate.OffsetMinutes) * time.Minute)

	request := RescheduleRequest{
		EventID:      event.ID,
		NewStartsAt:  start,
		RoomID:       event.RoomID,
		InstructorID: event.InstructorID,
	}
	// Open-ended events stay open-ended; only events that already carry an
	// end instant get one at the new position.
	if event.EndsAt != nil {
		end := start.Add(time.Duration(event.DurationMinutes) * time.Minute)
		request.NewEndsAt = &end
	}
	return request
}

// SnapOffsetMinutes rounds a raw minutes-from-origin value to the nearest
// half-hour slot and clamps it so the event still fits inside the day.
func SnapOffsetMinutes(rawMinutes float64, dayLengthMinutes int, durationMinutes int) int {
	if dayLengthMinutes <= 0 {
		dayLengthMinutes = DayLengthMinutes
	}
	if durationMinutes <= 0 {
		durationMinutes = DefaultDurationMinutes
	}

	snapped := int((rawMinutes+float64(SnapMinutes)/2)/float64(SnapMinutes)) * SnapMinutes
	if rawMinutes < 0 {
		snapped = 0
	}

	max := dayLengthMinutes - durationMinutes
	if max < 0 {
		max = 0
	}
	if snapped < 0 {
		snapped = 0
	}
	if snapped > max {
		snapped = max
	}
	return snapped
}
