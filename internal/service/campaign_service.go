// internal/service/campaign_service.go
package service

import (
	"log"
	"time"

	appErrors "github.com/dmarins/campaigns-backend/internal/errors"
	"github.com/dmarins/campaigns-backend/internal/model"
	"github.com/dmarins/campaigns-backend/internal/queue"
	"github.com/dmarins/campaigns-backend/internal/repository"
	"github.com/dmarins/campaigns-backend/internal/validation"
)

type CampaignService struct {
	CampaignRepo repository.CampaignRepositoryInterface
	EventRepo    repository.EventRepositoryInterface
	Queue        queue.Queue // optional; nil disables event publishing
}

// ListCampaigns returns all live campaigns with the expiry projection
// applied. Filters match the stored status, so a campaign past its end date
// still matches status=active until the sweeper converges it.
func (s *CampaignService) ListCampaigns(status, category string) ([]model.Campaign, error) {
	ptrs, err := s.CampaignRepo.FindAll(status, category)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	campaigns := make([]model.Campaign, len(ptrs))
	for i, c := range ptrs {
		ProjectExpiry(c, now)
		campaigns[i] = *c
	}
	return campaigns, nil
}

// GetCampaign fetches one live campaign with the expiry projection applied.
func (s *CampaignService) GetCampaign(id string) (*model.Campaign, error) {
	c, err := s.CampaignRepo.FindByID(id)
	if err != nil {
		return nil, err
	}
	ProjectExpiry(c, time.Now())
	return c, nil
}

// CreateCampaign validates and persists a new campaign. A fresh campaign
// cannot already be past its end date (the create rules require a future
// end date), so no projection is needed on the way out.
func (s *CampaignService) CreateCampaign(in validation.CreateCampaignInput) (*model.Campaign, error) {
	payload, fields := validation.ValidateCreate(in)
	if fields != nil {
		return nil, appErrors.NewValidationError(fields)
	}

	c := &model.Campaign{
		Name:      payload.Name,
		Category:  payload.Category,
		StartDate: payload.StartDate,
		EndDate:   payload.EndDate,
		Status:    payload.Status,
	}
	if err := s.CampaignRepo.Create(c); err != nil {
		return nil, err
	}

	s.publish(queue.EventCampaignCreated, c.ID)
	return c, nil
}

// UpdateCampaign merges the provided fields over the stored record and
// persists the result. Date ordering is enforced on the merged record, so
// sending only one of the two dates cannot leave endDate <= startDate.
func (s *CampaignService) UpdateCampaign(id string, in validation.UpdateCampaignInput) (*model.Campaign, error) {
	payload, fields := validation.ValidateUpdate(in)
	if fields != nil {
		return nil, appErrors.NewValidationError(fields)
	}

	c, err := s.CampaignRepo.FindByID(id)
	if err != nil {
		return nil, err
	}

	if payload.Name != nil {
		c.Name = *payload.Name
	}
	if payload.Category != nil {
		c.Category = *payload.Category
	}
	if payload.StartDate != nil {
		c.StartDate = *payload.StartDate
	}
	if payload.EndDate != nil {
		c.EndDate = *payload.EndDate
	}
	if payload.Status != nil {
		c.Status = *payload.Status
	}

	if !c.EndDate.After(c.StartDate) {
		return nil, appErrors.NewValidationError(map[string][]string{
			"endDate": {"endDate must be after startDate"},
		})
	}

	if err := s.CampaignRepo.Update(c); err != nil {
		return nil, err
	}

	ProjectExpiry(c, time.Now())
	s.publish(queue.EventCampaignUpdated, c.ID)
	return c, nil
}

// DeleteCampaign soft-deletes a live campaign. A second delete of the same
// id reports not-found, because the first one latched deleted_at.
func (s *CampaignService) DeleteCampaign(id string) error {
	if err := s.CampaignRepo.SoftDelete(id); err != nil {
		return err
	}
	s.publish(queue.EventCampaignDeleted, id)
	return nil
}

// CampaignEvents returns the recorded audit trail for a live campaign,
// oldest first. A missing or soft-deleted campaign reports not-found even
// when audit rows for it still exist.
func (s *CampaignService) CampaignEvents(id string) ([]model.CampaignEvent, error) {
	if _, err := s.CampaignRepo.FindByID(id); err != nil {
		return nil, err
	}
	return s.EventRepo.ListByCampaign(id)
}

// SweepExpired converges stored statuses for campaigns past their end date.
// Run periodically by the worker; reads stay correct without it because
// they always project.
func (s *CampaignService) SweepExpired(now time.Time) ([]string, error) {
	ids, err := s.CampaignRepo.MarkExpired(now)
	if err != nil {
		return nil, err
	}
	for _, id := range ids {
		s.publish(queue.EventCampaignExpired, id)
	}
	return ids, nil
}

// publish is best effort. A broker outage must not fail the request.
func (s *CampaignService) publish(eventType, campaignID string) {
	if s.Queue == nil {
		return
	}
	e := queue.Event{
		Type:       eventType,
		CampaignID: campaignID,
		OccurredAt: time.Now(),
	}
	if err := s.Queue.Publish(queue.TopicCampaignEvents, e); err != nil {
		log.Println("⚠️ failed to publish", eventType, "event:", err)
	}
}
