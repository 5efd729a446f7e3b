// cmd/seeder/main.go
package main

import (
	"fmt"
	"log"
	"time"

	"github.com/joho/godotenv"

	"github.com/dmarins/campaigns-backend/internal/db"
	"github.com/dmarins/campaigns-backend/internal/model"
	"github.com/dmarins/campaigns-backend/internal/repository"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on OS environment variables")
	}

	db.Init()
	repo := &repository.CampaignRepository{DB: db.DB}

	now := time.Now()
	samples := []*model.Campaign{
		{
			Name:      "Campanha de Verão",
			Category:  model.CategoryMarketing,
			StartDate: now.AddDate(0, 0, 1),
			EndDate:   now.AddDate(0, 1, 0),
			Status:    model.StatusActive,
		},
		{
			Name:      "Black Friday",
			Category:  model.CategorySales,
			StartDate: now.AddDate(0, 0, 7),
			EndDate:   now.AddDate(0, 0, 14),
			Status:    model.StatusPaused,
		},
		{
			Name:      "Lançamento do Produto X",
			Category:  model.CategoryProduct,
			StartDate: now.AddDate(0, 0, 2),
			EndDate:   now.AddDate(0, 0, 30),
			Status:    model.StatusActive,
		},
	}

	for _, c := range samples {
		if err := repo.Create(c); err != nil {
			log.Fatalf("failed to seed %q: %v", c.Name, err)
		}
		fmt.Printf("Seeded: %s (%s)\n", c.Name, c.ID)
	}

	fmt.Println("Database seeding completed successfully!")
}
