package api

import (
	"sync"
	"time"

	"github.com/solenedv/cadence/internal/services"
)

// dragRegistry hands out one DragController per console session. The pointer
// owns a single gesture, so one controller per user is enough; the controller
// itself rejects overlapping gestures.
type dragRegistry struct {
	mu          sync.Mutex
	controllers map[uint]*services.DragController
	rescheduler services.Rescheduler
	location    *time.Location
}

func newDragRegistry(rescheduler services.Rescheduler, location *time.Location) *dragRegistry {
	return &dragRegistry{
		controllers: make(map[uint]*services.DragController),
		rescheduler: rescheduler,
		location:    location,
	}
}

func (registry *dragRegistry) controllerFor(userID uint) *services.DragController {
	registry.mu.Lock()
	defer registry.mu.Unlock()

	controller, ok := registry.controllers[userID]
	if !ok {
		controller = services.NewDragController(registry.rescheduler, registry.location)
		registry.controllers[userID] = controller
	}
	return controller
}

func (registry *dragRegistry) release(userID uint) {
	registry.mu.Lock()
	defer registry.mu.Unlock()
	delete(registry.controllers, userID)
}
