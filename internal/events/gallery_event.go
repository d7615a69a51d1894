package events

import (
	"time"

	"github.com/google/uuid"
)

type EventType string

const (
	EventInfo    EventType = "info"
	EventWarn    EventType = "warn"
	EventSuccess EventType = "success"
	EventError   EventType = "error"
)

// Event channel names the frontend subscribes to.
const (
	GalleryChanged  = "events:gallery:changed"
	GalleryCleared  = "events:gallery:cleared"
	SettingsChanged = "events:settings:changed"
)

// GalleryEvent is the payload emitted when the gallery or settings
// projection changes.
type GalleryEvent struct {
	ID        string    `json:"id"`
	Type      EventType `json:"type"`
	Message   string    `json:"message"`
	ImageID   int64     `json:"imageId,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

func CreateGalleryEvent(eventType EventType, message string) GalleryEvent {
	return GalleryEvent{
		ID:        uuid.NewString(),
		Type:      eventType,
		Message:   message,
		Timestamp: time.Now(),
	}
}

// NewSuccess creates a success GalleryEvent.
func NewSuccess(message string) GalleryEvent {
	return CreateGalleryEvent(EventSuccess, message)
}

// NewError creates an error GalleryEvent.
func NewError(message string) GalleryEvent {
	return CreateGalleryEvent(EventError, message)
}

// WithImage annotates the event with the affected record id.
func (e GalleryEvent) WithImage(id int64) GalleryEvent {
	e.ImageID = id
	return e
}
