package get_artist_settings

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/INK-BookingService/internal/api/handlers"
)

const msgInvalidArtistID = "некорректный ID мастера"

type Handler struct {
	service ConfigService
	logger  Logger
}

func NewHandler(service ConfigService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/artists/{artistId}/settings
// Публичный endpoint: клиент видит расписание и правила депозита до записи
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	artistID, err := strconv.ParseInt(vars["artistId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /artists/{id}/settings - Invalid artist ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidArtistID)
		return
	}

	settings, err := h.service.Get(r.Context(), artistID)
	if err != nil {
		h.logger.Error("GET /artists/{id}/settings - Failed to get settings: artist_id=%d, error=%v", artistID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /artists/{id}/settings - Settings retrieved successfully: artist_id=%d", artistID)
	handlers.RespondJSON(w, http.StatusOK, settings)
}
