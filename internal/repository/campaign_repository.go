package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	appErrors "github.com/dmarins/campaigns-backend/internal/errors"
	"github.com/dmarins/campaigns-backend/internal/model"
)

type CampaignRepositoryInterface interface {
	// FindByID returns a live campaign. Soft-deleted rows behave as absent.
	FindByID(id string) (*model.Campaign, error)
	// FindAll returns live campaigns, optionally filtered by stored status
	// and category, newest first.
	FindAll(status, category string) ([]*model.Campaign, error)
	Create(c *model.Campaign) error
	// Update rewrites the mutable fields of a live campaign. The write is
	// predicated on deleted_at IS NULL so a concurrent soft delete cannot
	// be overwritten; zero affected rows maps to not-found.
	Update(c *model.Campaign) error
	// SoftDelete latches deleted_at in a single conditional statement.
	// Deleting an already-deleted or missing id returns not-found.
	SoftDelete(id string) error
	// MarkExpired flips stored status to expired for every live campaign
	// whose end date has passed, returning the ids it touched.
	MarkExpired(now time.Time) ([]string, error)
}

type CampaignRepository struct {
	DB *sql.DB
}

const campaignColumns = `id, name, category, start_date, end_date, status, created_at, deleted_at`

func (r *CampaignRepository) Create(c *model.Campaign) error {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	c.CreatedAt = time.Now()
	if c.Status == "" {
		c.Status = model.StatusActive
	}
	query := `
        INSERT INTO campaigns (id, name, category, start_date, end_date, status, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
    `
	_, err := r.DB.Exec(query, c.ID, c.Name, c.Category, c.StartDate, c.EndDate, c.Status, c.CreatedAt)
	if err != nil {
		return fmt.Errorf("create campaign: %w", err)
	}
	return nil
}

func (r *CampaignRepository) FindByID(id string) (*model.Campaign, error) {
	query := `SELECT ` + campaignColumns + ` FROM campaigns WHERE id=$1 AND deleted_at IS NULL`
	var c model.Campaign
	err := r.DB.QueryRow(query, id).Scan(
		&c.ID, &c.Name, &c.Category, &c.StartDate, &c.EndDate,
		&c.Status, &c.CreatedAt, &c.DeletedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.NewCampaignNotFound(id)
		}
		return nil, fmt.Errorf("find campaign: %w", err)
	}
	return &c, nil
}

func (r *CampaignRepository) FindAll(status, category string) ([]*model.Campaign, error) {
	campaigns := []*model.Campaign{}
	query := `SELECT ` + campaignColumns + ` FROM campaigns WHERE deleted_at IS NULL`
	args := []interface{}{}
	argPos := 1

	if status != "" {
		query += fmt.Sprintf(" AND status=$%d", argPos)
		args = append(args, status)
		argPos++
	}
	if category != "" {
		query += fmt.Sprintf(" AND category=$%d", argPos)
		args = append(args, category)
		argPos++
	}
	query += " ORDER BY created_at DESC"

	rows, err := r.DB.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list campaigns: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		c := &model.Campaign{}
		if err := rows.Scan(
			&c.ID, &c.Name, &c.Category, &c.StartDate, &c.EndDate,
			&c.Status, &c.CreatedAt, &c.DeletedAt,
		); err != nil {
			return nil, fmt.Errorf("scan campaign: %w", err)
		}
		campaigns = append(campaigns, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list campaigns: %w", err)
	}
	return campaigns, nil
}

func (r *CampaignRepository) Update(c *model.Campaign) error {
	query := `
        UPDATE campaigns
        SET name=$1, category=$2, start_date=$3, end_date=$4, status=$5
        WHERE id=$6 AND deleted_at IS NULL
    `
	res, err := r.DB.Exec(query, c.Name, c.Category, c.StartDate, c.EndDate, c.Status, c.ID)
	if err != nil {
		return fmt.Errorf("update campaign: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update campaign: %w", err)
	}
	if n == 0 {
		return appErrors.NewCampaignNotFound(c.ID)
	}
	return nil
}

func (r *CampaignRepository) SoftDelete(id string) error {
	query := `UPDATE campaigns SET deleted_at=NOW() WHERE id=$1 AND deleted_at IS NULL`
	res, err := r.DB.Exec(query, id)
	if err != nil {
		return fmt.Errorf("soft delete campaign: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("soft delete campaign: %w", err)
	}
	if n == 0 {
		return appErrors.NewCampaignNotFound(id)
	}
	return nil
}

func (r *CampaignRepository) MarkExpired(now time.Time) ([]string, error) {
	query := `
        UPDATE campaigns
        SET status=$1
        WHERE end_date < $2 AND status <> $1 AND deleted_at IS NULL
        RETURNING id
    `
	rows, err := r.DB.Query(query, model.StatusExpired, now)
	if err != nil {
		return nil, fmt.Errorf("mark expired: %w", err)
	}
	defer rows.Close()

	ids := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("mark expired: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("mark expired: %w", err)
	}
	return ids, nil
}

var _ CampaignRepositoryInterface = (*CampaignRepository)(nil)
