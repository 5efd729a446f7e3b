// cmd/worker/main.go
//
// Consumes campaign lifecycle events into the audit table and runs the
// expiry sweep that converges stored statuses with reality.
package main

import (
	"encoding/json"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/dmarins/campaigns-backend/internal/db"
	"github.com/dmarins/campaigns-backend/internal/model"
	"github.com/dmarins/campaigns-backend/internal/queue"
	"github.com/dmarins/campaigns-backend/internal/repository"
	"github.com/dmarins/campaigns-backend/internal/service"
)

const defaultSweepInterval = time.Minute

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️ No .env file found, relying on OS environment variables")
	}

	db.Init()

	campaignRepo := &repository.CampaignRepository{DB: db.DB}
	eventRepo := &repository.EventRepository{DB: db.DB}

	campaignService := &service.CampaignService{
		CampaignRepo: campaignRepo,
	}

	if url := os.Getenv("RABBITMQ_URL"); url != "" {
		q, err := queue.NewAMQPQueue(url)
		if err != nil {
			log.Fatal("Failed to connect to RabbitMQ:", err)
		}
		defer q.Close()

		campaignService.Queue = q
		if err := q.Subscribe(queue.TopicCampaignEvents, recordEvent(eventRepo)); err != nil {
			log.Fatal("Failed to subscribe to campaign events:", err)
		}
		log.Println("✅ Consuming", queue.TopicCampaignEvents)
	} else {
		log.Println("⚠️ RABBITMQ_URL not set, running sweep only")
	}

	interval := defaultSweepInterval
	if v := os.Getenv("SWEEP_INTERVAL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			log.Fatalf("invalid SWEEP_INTERVAL %q: %v", v, err)
		}
		interval = d
	}

	log.Println("Worker running, sweeping every", interval)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for range ticker.C {
		ids, err := campaignService.SweepExpired(time.Now())
		if err != nil {
			log.Println("⚠️ expiry sweep failed:", err)
			continue
		}
		if len(ids) > 0 {
			log.Printf("Expired %d campaign(s): %v", len(ids), ids)
		}
	}
}

// recordEvent writes one consumed lifecycle event to the audit table.
// Malformed payloads are dropped; repository failures are returned so the
// delivery is retried.
func recordEvent(repo repository.EventRepositoryInterface) func(payload any) error {
	return func(payload any) error {
		e, err := queue.DecodeEvent(payload)
		if err != nil {
			log.Println("⚠️ dropping malformed event:", err)
			return nil
		}

		body, err := json.Marshal(e)
		if err != nil {
			return err
		}

		row := &model.CampaignEvent{
			CampaignID: e.CampaignID,
			EventType:  e.Type,
			Payload:    body,
		}
		if err := repo.Insert(row); err != nil {
			log.Println("⚠️ failed to record event:", err)
			return err
		}
		return nil
	}
}
