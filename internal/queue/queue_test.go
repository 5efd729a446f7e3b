package queue

import (
	"errors"
	"testing"
	"time"
)

func TestInMemoryQueueDeliversToSubscriber(t *testing.T) {
	q := NewInMemoryQueue()
	got := make(chan Event, 1)

	err := q.Subscribe(TopicCampaignEvents, func(payload any) error {
		e, err := DecodeEvent(payload)
		if err != nil {
			return err
		}
		got <- e
		return nil
	})
	if err != nil {
		t.Fatalf("Subscribe() error: %v", err)
	}

	sent := Event{Type: EventCampaignCreated, CampaignID: "c-1", OccurredAt: time.Now()}
	if err := q.Publish(TopicCampaignEvents, sent); err != nil {
		t.Fatalf("Publish() error: %v", err)
	}

	select {
	case e := <-got:
		if e.Type != EventCampaignCreated || e.CampaignID != "c-1" {
			t.Errorf("received %+v, want %+v", e, sent)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for delivery")
	}
}

func TestInMemoryQueueRetriesFailedHandler(t *testing.T) {
	q := NewInMemoryQueue()
	attempts := make(chan int, 4)
	count := 0

	q.Subscribe("retry_topic", func(payload any) error {
		count++
		attempts <- count
		if count < 2 {
			return errors.New("transient failure")
		}
		return nil
	})

	if err := q.Publish("retry_topic", "payload"); err != nil {
		t.Fatalf("Publish() error: %v", err)
	}

	deadline := time.After(3 * time.Second)
	for want := 1; want <= 2; want++ {
		select {
		case got := <-attempts:
			if got != want {
				t.Fatalf("attempt = %d, want %d", got, want)
			}
		case <-deadline:
			t.Fatalf("timed out waiting for attempt %d", want)
		}
	}
}

func TestInMemoryQueuePublishWithoutSubscribers(t *testing.T) {
	q := NewInMemoryQueue()
	if err := q.Publish("empty_topic", "payload"); err == nil {
		t.Error("expected error when publishing to a topic with no subscribers")
	}
}

func TestDecodeEvent(t *testing.T) {
	e := Event{Type: EventCampaignDeleted, CampaignID: "c-9", OccurredAt: time.Now().UTC()}

	t.Run("from value", func(t *testing.T) {
		got, err := DecodeEvent(e)
		if err != nil {
			t.Fatalf("DecodeEvent() error: %v", err)
		}
		if got != e {
			t.Errorf("got %+v, want %+v", got, e)
		}
	})

	t.Run("from json bytes", func(t *testing.T) {
		got, err := DecodeEvent([]byte(`{"type":"campaign.deleted","campaign_id":"c-9"}`))
		if err != nil {
			t.Fatalf("DecodeEvent() error: %v", err)
		}
		if got.Type != EventCampaignDeleted || got.CampaignID != "c-9" {
			t.Errorf("got %+v", got)
		}
	})

	t.Run("unexpected type", func(t *testing.T) {
		if _, err := DecodeEvent(42); err == nil {
			t.Error("expected error for unexpected payload type")
		}
	})
}
