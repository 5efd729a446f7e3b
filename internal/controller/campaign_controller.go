// internal/controller/campaign_controller.go
package controller

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	appErrors "github.com/dmarins/campaigns-backend/internal/errors"
	"github.com/dmarins/campaigns-backend/internal/service"
	"github.com/dmarins/campaigns-backend/internal/validation"
)

type CampaignController struct {
	CampaignService *service.CampaignService
}

// ListCampaigns handles GET /campaigns. Optional ?status= and ?category=
// filter on the stored values; the response is always a plain JSON array.
func (c *CampaignController) ListCampaigns(w http.ResponseWriter, r *http.Request) {
	status := r.URL.Query().Get("status")
	category := r.URL.Query().Get("category")

	campaigns, err := c.CampaignService.ListCampaigns(status, category)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, campaigns)
}

// GetCampaign handles GET /campaigns/{id}.
func (c *CampaignController) GetCampaign(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	campaign, err := c.CampaignService.GetCampaign(id)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, campaign)
}

// CreateCampaign handles POST /campaigns.
func (c *CampaignController) CreateCampaign(w http.ResponseWriter, r *http.Request) {
	var body validation.CreateCampaignInput
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	campaign, err := c.CampaignService.CreateCampaign(body)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, campaign)
}

// UpdateCampaign handles PUT /campaigns/{id}.
func (c *CampaignController) UpdateCampaign(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var body validation.UpdateCampaignInput
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	campaign, err := c.CampaignService.UpdateCampaign(id, body)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, campaign)
}

// ListCampaignEvents handles GET /campaigns/{id}/events, exposing the
// audit trail recorded by the worker.
func (c *CampaignController) ListCampaignEvents(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	events, err := c.CampaignService.CampaignEvents(id)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, events)
}

// DeleteCampaign handles DELETE /campaigns/{id} (soft delete).
func (c *CampaignController) DeleteCampaign(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := c.CampaignService.DeleteCampaign(id); err != nil {
		writeServiceError(w, err)
		return
	}

	writeMessage(w, http.StatusOK, "campaign deleted")
}

// writeServiceError maps service errors onto the HTTP error contract:
// 400 {"errors": {field: [msgs]}}, 404/500 {"message": "..."}. Backend
// failures are logged server-side and surfaced as a generic message.
func writeServiceError(w http.ResponseWriter, err error) {
	var ve *appErrors.ValidationError
	if errors.As(err, &ve) {
		writeJSON(w, http.StatusBadRequest, map[string]interface{}{"errors": ve.Fields})
		return
	}

	var nf *appErrors.ErrCampaignNotFound
	if errors.As(err, &nf) {
		writeMessage(w, http.StatusNotFound, "campaign not found")
		return
	}

	log.Println("❌ internal error:", err)
	writeMessage(w, http.StatusInternalServerError, "internal server error")
}

func writeMessage(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"message": msg})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Println("failed to encode response:", err)
	}
}
