package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/dmarins/campaigns-backend/internal/model"
)

// EventRepositoryInterface is the audit-trail contract used by the worker.
type EventRepositoryInterface interface {
	Insert(e *model.CampaignEvent) error
	ListByCampaign(campaignID string) ([]model.CampaignEvent, error)
}

type EventRepository struct {
	DB *sql.DB
}

// Insert records one lifecycle event and fills in the generated id.
func (r *EventRepository) Insert(e *model.CampaignEvent) error {
	e.CreatedAt = time.Now()
	query := `
        INSERT INTO campaign_events (campaign_id, event_type, payload, created_at)
        VALUES ($1, $2, $3, $4)
        RETURNING id
    `
	if err := r.DB.QueryRow(query, e.CampaignID, e.EventType, e.Payload, e.CreatedAt).Scan(&e.ID); err != nil {
		return fmt.Errorf("insert campaign event: %w", err)
	}
	return nil
}

// ListByCampaign returns the audit trail for one campaign, oldest first.
func (r *EventRepository) ListByCampaign(campaignID string) ([]model.CampaignEvent, error) {
	query := `
        SELECT id, campaign_id, event_type, payload, created_at
        FROM campaign_events
        WHERE campaign_id=$1
        ORDER BY id
    `
	rows, err := r.DB.Query(query, campaignID)
	if err != nil {
		return nil, fmt.Errorf("list campaign events: %w", err)
	}
	defer rows.Close()

	events := []model.CampaignEvent{}
	for rows.Next() {
		var e model.CampaignEvent
		if err := rows.Scan(&e.ID, &e.CampaignID, &e.EventType, &e.Payload, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan campaign event: %w", err)
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

var _ EventRepositoryInterface = (*EventRepository)(nil)
