// Package events carries queue-change notifications to front-desk screens and
// the message bus.
package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Topics and event types.
const (
	TopicQueue = "queue"

	TypeEntryAdded = "queue.entry_added"
	TypeQueueReset = "queue.reset"
)

// Event is a single notification. Data is the JSON payload of the change.
type Event struct {
	ID        string          `json:"id"`
	Type      string          `json:"type"`
	Topic     string          `json:"topic"`
	Timestamp time.Time       `json:"timestamp"`
	Data      json.RawMessage `json:"data,omitempty"`
}

// New builds an event with a fresh id and the current time.
func New(topic, typ string, data interface{}) (Event, error) {
	ev := Event{
		ID:        uuid.New().String(),
		Type:      typ,
		Topic:     topic,
		Timestamp: time.Now().UTC(),
	}
	if data != nil {
		raw, err := json.Marshal(data)
		if err != nil {
			return Event{}, fmt.Errorf("marshal %s payload: %w", typ, err)
		}
		ev.Data = raw
	}
	return ev, nil
}

// Publisher delivers events somewhere.
type Publisher interface {
	Publish(ctx context.Context, ev Event) error
}

// Fanout delivers every event to all registered publishers. One publisher
// failing does not stop delivery to the others.
type Fanout struct {
	mu   sync.RWMutex
	pubs []Publisher
}

func NewFanout(pubs ...Publisher) *Fanout {
	return &Fanout{pubs: pubs}
}

// Add registers another publisher.
func (f *Fanout) Add(p Publisher) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.pubs = append(f.pubs, p)
}

// Len returns the number of registered publishers.
func (f *Fanout) Len() int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return len(f.pubs)
}

func (f *Fanout) Publish(ctx context.Context, ev Event) error {
	f.mu.RLock()
	pubs := append([]Publisher(nil), f.pubs...)
	f.mu.RUnlock()

	var errs []error
	for _, p := range pubs {
		if err := p.Publish(ctx, ev); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// PublisherFunc adapts a function to Publisher.
type PublisherFunc func(ctx context.Context, ev Event) error

func (fn PublisherFunc) Publish(ctx context.Context, ev Event) error { return fn(ctx, ev) }
