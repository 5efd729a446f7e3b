// internal/model/campaign_event.go
package model

import (
	"encoding/json"
	"time"
)

type CampaignEvent struct {
	ID         int             `db:"id" json:"id"`
	CampaignID string          `db:"campaign_id" json:"campaign_id"`
	EventType  string          `db:"event_type" json:"event_type"` // campaign.created, campaign.updated, campaign.deleted, campaign.expired
	Payload    json.RawMessage `db:"payload" json:"payload"`
	CreatedAt  time.Time       `db:"created_at" json:"created_at"`
}
