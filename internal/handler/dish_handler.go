package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"bistro/internal/model"
	"bistro/internal/service"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// DishHandler handles dish catalogue HTTP requests.
type DishHandler struct {
	service service.DishService
	logger  zerolog.Logger
}

// NewDishHandler creates a new dish handler.
func NewDishHandler(service service.DishService, logger zerolog.Logger) *DishHandler {
	return &DishHandler{
		service: service,
		logger:  logger.With().Str("handler", "dish").Logger(),
	}
}

// GetAll handles GET /api/dishes requests.
func (h *DishHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	limit := parseQueryInt(r, "limit", 10)
	offset := parseQueryInt(r, "offset", 0)

	dishes, err := h.service.GetAll(r.Context(), limit, offset)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, dishes)
}

// GetByID handles GET /api/dishes/{id} requests.
func (h *DishHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, model.ErrCodeInvalidJSON, "invalid dish ID format", h.logger)
		return
	}

	dish, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, dish)
}

// Create handles POST /api/dishes requests.
func (h *DishHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req model.DishRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, model.ErrCodeInvalidJSON, "invalid request body", h.logger)
		return
	}

	dish, err := h.service.Create(r.Context(), &req)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusCreated, dish)
}

// parseQueryInt reads a non-negative integer query parameter, falling back
// to a default on absence or garbage.
func parseQueryInt(r *http.Request, key string, fallback int) int {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		return fallback
	}
	return v
}
