package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/veligame/adminpanel/internal/panel/domain"
	"github.com/veligame/adminpanel/internal/panel/service"
	"github.com/veligame/adminpanel/internal/panel/store"
	"github.com/veligame/adminpanel/pkg/httpx"
	"github.com/veligame/adminpanel/pkg/slogx"
)

// ConfigurationRequest is the POST /api/configurations body.
type ConfigurationRequest struct {
	BuildingType     string  `json:"buildingType"`
	BuildingCost     float64 `json:"buildingCost"`
	ConstructionTime int     `json:"constructionTime"`
}

// ConfigurationsHandler handles the building-configuration endpoints.
type ConfigurationsHandler struct {
	ConfigurationService *service.ConfigurationService
}

// HandleList handles GET /api/configurations
//
//	@Summary		List Building Configurations
//	@Description	Returns every stored building configuration
//	@Tags			Configurations
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{array}		domain.BuildingConfiguration
//	@Failure		401	{object}	httpx.ErrorResponse	"error, error_description"
//	@Failure		500	{object}	httpx.ErrorResponse	"error, error_description"
//	@Router			/api/configurations [get].
func (h *ConfigurationsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	configs, err := h.ConfigurationService.ListConfigurations(ctx)
	if err != nil {
		log.Error("failed to list configurations", "error", err)
		httpx.WriteError(w, http.StatusInternalServerError,
			"server_error", "Failed to list configurations")
		return
	}

	if configs == nil {
		configs = []domain.BuildingConfiguration{}
	}
	httpx.WriteJSON(w, http.StatusOK, configs)
}

// HandleCreate handles POST /api/configurations
//
//	@Summary		Create Building Configuration
//	@Description	Stores a new building configuration after validating the building type, cost and construction time bounds
//	@Tags			Configurations
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			request	body		ConfigurationRequest	true	"Configuration fields"
//	@Success		201		{object}	domain.BuildingConfiguration
//	@Failure		400		{object}	httpx.ErrorResponse	"error, error_description"
//	@Failure		401		{object}	httpx.ErrorResponse	"error, error_description"
//	@Failure		500		{object}	httpx.ErrorResponse	"error, error_description"
//	@Router			/api/configurations [post].
func (h *ConfigurationsHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req ConfigurationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest,
			"invalid_request", "Invalid JSON in request body")
		return
	}

	cfg, err := h.ConfigurationService.CreateConfiguration(
		ctx, req.BuildingType, req.BuildingCost, req.ConstructionTime)
	if err != nil {
		if errors.Is(err, service.ErrInvalidConfiguration) {
			httpx.WriteError(w, http.StatusBadRequest,
				"invalid_configuration", err.Error())
			return
		}
		log.Error("failed to create configuration", "error", err)
		httpx.WriteError(w, http.StatusInternalServerError,
			"server_error", "Failed to create configuration")
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, cfg)
}

// HandleDelete handles DELETE /api/configurations/{id}
//
//	@Summary		Delete Building Configuration
//	@Description	Removes a building configuration by id
//	@Tags			Configurations
//	@Produce		json
//	@Security		BearerAuth
//	@Param			id	path	string	true	"Configuration ID (ULID)"
//	@Success		200	"Configuration deleted"
//	@Failure		401	{object}	httpx.ErrorResponse	"error, error_description"
//	@Failure		404	{object}	httpx.ErrorResponse	"error, error_description"
//	@Failure		500	{object}	httpx.ErrorResponse	"error, error_description"
//	@Router			/api/configurations/{id} [delete].
func (h *ConfigurationsHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	id := r.PathValue("id")
	if err := h.ConfigurationService.DeleteConfiguration(ctx, id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			httpx.WriteError(w, http.StatusNotFound,
				"configuration_not_found", "Configuration not found")
			return
		}
		log.Error("failed to delete configuration", "error", err, "id", id)
		httpx.WriteError(w, http.StatusInternalServerError,
			"server_error", "Failed to delete configuration")
		return
	}

	w.WriteHeader(http.StatusOK)
}
