// cmd/server/main.go
package main

import (
	"log"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"

	"github.com/dmarins/campaigns-backend/internal/controller"
	"github.com/dmarins/campaigns-backend/internal/db"
	"github.com/dmarins/campaigns-backend/internal/queue"
	"github.com/dmarins/campaigns-backend/internal/repository"
	"github.com/dmarins/campaigns-backend/internal/service"
)

func main() {
	// Load .env
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️ No .env file found, relying on OS environment variables")
	}

	// Init DB
	db.Init()

	q := newQueue()
	campaignRepo := &repository.CampaignRepository{DB: db.DB}
	eventRepo := &repository.EventRepository{DB: db.DB}

	campaignService := &service.CampaignService{
		CampaignRepo: campaignRepo,
		EventRepo:    eventRepo,
		Queue:        q,
	}

	campaignController := &controller.CampaignController{
		CampaignService: campaignService,
	}

	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})

	// Campaign routes
	r.Get("/campaigns", campaignController.ListCampaigns)
	r.Post("/campaigns", campaignController.CreateCampaign)
	r.Get("/campaigns/{id}", campaignController.GetCampaign)
	r.Get("/campaigns/{id}/events", campaignController.ListCampaignEvents)
	r.Put("/campaigns/{id}", campaignController.UpdateCampaign)
	r.Delete("/campaigns/{id}", campaignController.DeleteCampaign)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Println("🚀 Server running on :" + port)
	log.Fatal(http.ListenAndServe(":"+port, r))
}

// newQueue prefers RabbitMQ when RABBITMQ_URL is set; otherwise events go
// through the in-memory queue with a logging subscriber.
func newQueue() queue.Queue {
	if url := os.Getenv("RABBITMQ_URL"); url != "" {
		q, err := queue.NewAMQPQueue(url)
		if err == nil {
			log.Println("✅ Connected to RabbitMQ")
			return q
		}
		log.Println("⚠️ RabbitMQ unavailable, falling back to in-memory queue:", err)
	}
	q := queue.NewInMemoryQueue()
	queue.StartEventLogger(q)
	return q
}
