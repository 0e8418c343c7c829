package handler

import (
	"net/http"

	"bistro/internal/middleware"
	"bistro/internal/model"
	"bistro/internal/service"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// FavoriteHandler handles favorite dish HTTP requests.
type FavoriteHandler struct {
	service service.FavoriteService
	logger  zerolog.Logger
}

// NewFavoriteHandler creates a new favorite handler.
func NewFavoriteHandler(service service.FavoriteService, logger zerolog.Logger) *FavoriteHandler {
	return &FavoriteHandler{
		service: service,
		logger:  logger.With().Str("handler", "favorite").Logger(),
	}
}

// Get handles GET /api/favorites requests.
func (h *FavoriteHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, model.ErrCodeUnauthorised, "authentication required", h.logger)
		return
	}

	favorites, err := h.service.GetFavorites(r.Context(), userID)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}
	if favorites == nil {
		favorites = []model.FavoriteWithDish{}
	}

	writeJSON(w, http.StatusOK, favorites)
}

// Add handles POST /api/favorites/{dishID} requests.
func (h *FavoriteHandler) Add(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, model.ErrCodeUnauthorised, "authentication required", h.logger)
		return
	}

	dishID, err := uuid.Parse(r.PathValue("dishID"))
	if err != nil {
		writeError(w, http.StatusBadRequest, model.ErrCodeValidation, "invalid dish ID format", h.logger)
		return
	}

	favorite, err := h.service.Add(r.Context(), userID, dishID)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusCreated, favorite)
}

// Remove handles DELETE /api/favorites/{dishID} requests.
func (h *FavoriteHandler) Remove(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, model.ErrCodeUnauthorised, "authentication required", h.logger)
		return
	}

	dishID, err := uuid.Parse(r.PathValue("dishID"))
	if err != nil {
		writeError(w, http.StatusBadRequest, model.ErrCodeValidation, "invalid dish ID format", h.logger)
		return
	}

	if err := h.service.Remove(r.Context(), userID, dishID); err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
