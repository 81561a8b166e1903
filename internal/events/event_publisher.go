package events

import (
	"context"
	"sync"
	"time"

	"dashboard-service/internal/auth"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// EventPublisher defines the interface for publishing auth events
type EventPublisher interface {
	Publish(ctx context.Context, event AuthStateEvent) error
	Close() error
}

// AuthStateEvent is the wire form of an auth state change
type AuthStateEvent struct {
	EventID    string    `json:"event_id"`
	EventType  string    `json:"event_type"`
	Email      string    `json:"email,omitempty"`
	UserID     string    `json:"user_id,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

// NewAuthStateEvent converts an auth state change into an event
func NewAuthStateEvent(change auth.StateChange) AuthStateEvent {
	occurredAt := change.OccurredAt
	if occurredAt.IsZero() {
		occurredAt = time.Now().UTC()
	}
	return AuthStateEvent{
		EventID:    uuid.New().String(),
		EventType:  string(change.Event),
		Email:      change.Email,
		UserID:     change.UserID,
		OccurredAt: occurredAt,
	}
}

// PartitionKey keeps one user's events on one partition
func (e AuthStateEvent) PartitionKey() string {
	if e.UserID != "" {
		return e.UserID
	}
	return e.Email
}

// SubscribeAuthEvents publishes every auth state change of client. Listeners
// run on the request goroutine, so publishing is bounded by timeout.
func SubscribeAuthEvents(client *auth.Client, publisher EventPublisher, timeout time.Duration, logger *zap.Logger) (unsubscribe func()) {
	return client.OnAuthStateChange(func(change auth.StateChange) {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		event := NewAuthStateEvent(change)
		if err := publisher.Publish(ctx, event); err != nil {
			logger.Error("Failed to publish auth event",
				zap.String("event_type", event.EventType),
				zap.String("user_id", event.UserID),
				zap.Error(err),
			)
		}
	})
}

// DefaultRetainedEvents is how many events an InMemoryEventPublisher keeps
const DefaultRetainedEvents = 256

// InMemoryEventPublisher keeps the most recent events in a fixed-size ring.
// Used when Kafka is disabled and in tests.
type InMemoryEventPublisher struct {
	logger *zap.Logger
	mu     sync.Mutex
	events []AuthStateEvent
	next   int
	full   bool
}

// NewInMemoryEventPublisher creates a publisher retaining up to capacity events
func NewInMemoryEventPublisher(capacity int, logger *zap.Logger) *InMemoryEventPublisher {
	if capacity <= 0 {
		capacity = DefaultRetainedEvents
	}
	return &InMemoryEventPublisher{
		logger: logger,
		events: make([]AuthStateEvent, capacity),
	}
}

func (p *InMemoryEventPublisher) Publish(ctx context.Context, event AuthStateEvent) error {
	p.mu.Lock()
	p.events[p.next] = event
	p.next = (p.next + 1) % len(p.events)
	if p.next == 0 {
		p.full = true
	}
	p.mu.Unlock()

	p.logger.Debug("Auth event recorded (in-memory)",
		zap.String("event_type", event.EventType),
		zap.String("user_id", event.UserID),
	)
	return nil
}

// Events returns the retained events, oldest first
func (p *InMemoryEventPublisher) Events() []AuthStateEvent {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.full {
		return append([]AuthStateEvent(nil), p.events[:p.next]...)
	}
	out := make([]AuthStateEvent, 0, len(p.events))
	out = append(out, p.events[p.next:]...)
	return append(out, p.events[:p.next]...)
}

func (p *InMemoryEventPublisher) Close() error {
	return nil
}
