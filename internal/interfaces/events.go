package interfaces

import "context"

// EventType identifies a category of event
type EventType string

const (
	EventImportStarted   EventType = "import_started"
	EventImportProgress  EventType = "import_progress"
	EventImportCompleted EventType = "import_completed"
	EventSitemapUpdated  EventType = "sitemap_updated"
)

// Event is a message published to subscribers
type Event struct {
	Type    EventType
	Payload interface{}
}

// EventHandler processes a published event
type EventHandler func(ctx context.Context, event Event) error

// EventService defines the pub/sub contract between services and the
// presentation layer. Import progress is delivered through events rather
// than shared mutable counters.
type EventService interface {
	Subscribe(eventType EventType, handler EventHandler) error
	Publish(ctx context.Context, event Event) error
	PublishSync(ctx context.Context, event Event) error
}
