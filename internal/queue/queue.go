package queue

import (
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"time"
)

// TopicCampaignEvents carries campaign lifecycle notifications.
const TopicCampaignEvents = "campaign_events"

// Lifecycle event types.
const (
	EventCampaignCreated = "campaign.created"
	EventCampaignUpdated = "campaign.updated"
	EventCampaignDeleted = "campaign.deleted"
	EventCampaignExpired = "campaign.expired"
)

// Event is the payload published whenever a campaign changes.
type Event struct {
	Type       string    `json:"type"`
	CampaignID string    `json:"campaign_id"`
	OccurredAt time.Time `json:"occurred_at"`
}

// Queue interface
type Queue interface {
	Publish(topic string, payload any) error
	Subscribe(topic string, handler func(payload any) error) error
}

// DecodeEvent recovers an Event from a delivered payload. In-memory
// deliveries carry the Event value directly; AMQP deliveries carry the
// JSON-encoded body.
func DecodeEvent(payload any) (Event, error) {
	switch p := payload.(type) {
	case Event:
		return p, nil
	case []byte:
		var e Event
		if err := json.Unmarshal(p, &e); err != nil {
			return Event{}, fmt.Errorf("decode event: %w", err)
		}
		return e, nil
	}
	return Event{}, fmt.Errorf("decode event: unexpected payload type %T", payload)
}

// InMemoryQueue is the default bus when no broker is configured. Handlers
// run asynchronously with bounded retries.
type InMemoryQueue struct {
	mu       sync.Mutex
	handlers map[string][]func(payload any) error
}

func NewInMemoryQueue() *InMemoryQueue {
	return &InMemoryQueue{
		handlers: make(map[string][]func(payload any) error),
	}
}

type job struct {
	payload    any
	retryCount int
	maxRetries int
}

// Publish sends a message to all subscribers of the topic.
func (q *InMemoryQueue) Publish(topic string, payload any) error {
	q.mu.Lock()
	handlers := q.handlers[topic]
	q.mu.Unlock()

	if len(handlers) == 0 {
		return fmt.Errorf("no subscribers for topic %s", topic)
	}

	j := job{payload: payload, maxRetries: 3}
	for _, handler := range handlers {
		go q.process(handler, j)
	}
	return nil
}

func (q *InMemoryQueue) process(handler func(payload any) error, j job) {
	for {
		err := handler(j.payload)
		if err == nil {
			return // ACK
		}

		j.retryCount++
		log.Printf("queue: handler failed (attempt %d/%d): %v", j.retryCount, j.maxRetries, err)
		if j.retryCount > j.maxRetries {
			log.Printf("queue: dropping payload after %d attempts: %+v", j.maxRetries, j.payload)
			return
		}
		time.Sleep(time.Duration(j.retryCount*500) * time.Millisecond)
	}
}

// Subscribe adds a handler for a topic.
func (q *InMemoryQueue) Subscribe(topic string, handler func(payload any) error) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.handlers[topic] = append(q.handlers[topic], handler)
	return nil
}

// StartEventLogger subscribes a handler that just logs lifecycle events.
// The server uses it when running with the in-memory queue so publishes
// always have a consumer.
func StartEventLogger(q Queue) {
	err := q.Subscribe(TopicCampaignEvents, func(payload any) error {
		e, err := DecodeEvent(payload)
		if err != nil {
			log.Println("⚠️ event logger: ", err)
			return nil // malformed events are not retried
		}
		log.Printf("📩 %s campaign=%s at=%s", e.Type, e.CampaignID, e.OccurredAt.Format(time.RFC3339))
		return nil
	})
	if err != nil {
		log.Println("⚠️ failed to subscribe event logger:", err)
	}
}
