// internal/model/campaign.go
package model

import "time"

// Campaign statuses. A stored status may lag behind reality after the end
// date passes; reads project "expired" on top of it (see service package).
const (
	StatusActive  = "active"
	StatusPaused  = "paused"
	StatusExpired = "expired"
)

// Campaign categories.
const (
	CategoryMarketing = "marketing"
	CategorySales     = "sales"
	CategoryProduct   = "product"
	CategoryEvents    = "events"
	CategoryOther     = "other"
)

type Campaign struct {
	ID        string     `db:"id" json:"id"`
	Name      string     `db:"name" json:"name"`
	Category  string     `db:"category" json:"category"`
	StartDate time.Time  `db:"start_date" json:"startDate"`
	EndDate   time.Time  `db:"end_date" json:"endDate"`
	Status    string     `db:"status" json:"status"`
	CreatedAt time.Time  `db:"created_at" json:"createdAt"`
	DeletedAt *time.Time `db:"deleted_at" json:"deletedAt"`
}

// Deleted reports whether the campaign has been soft-deleted. A deleted
// campaign is invisible to every read and write path.
func (c *Campaign) Deleted() bool {
	return c.DeletedAt != nil
}
