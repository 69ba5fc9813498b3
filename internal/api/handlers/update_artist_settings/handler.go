package update_artist_settings

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/INK-BookingService/internal/api/handlers"
	"github.com/m04kA/INK-BookingService/internal/api/middleware"
	configService "github.com/m04kA/INK-BookingService/internal/service/config"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidArtistID    = "некорректный ID мастера"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgForbidden          = "доступ запрещен"
	msgInvalidSchedule    = "некорректное расписание"
	msgInvalidGranularity = "некорректный шаг слотов"
	msgInvalidDeposit     = "некорректный процент депозита"
	msgInvalidTier        = "неизвестный тариф подписки"
	msgInvalidSettings    = "некорректные настройки"
)

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

// Handle PUT /api/v1/artists/{artistId}/settings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	artistID, err := strconv.ParseInt(vars["artistId"], 10, 64)
	if err != nil {
		h.logger.Warn("PUT /artists/{id}/settings - Invalid artist ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidArtistID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PUT /artists/{id}/settings - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req UpdateSettingsRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /artists/{id}/settings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	settings, err := h.service.Update(r.Context(), req.ToServiceRequest(artistID, userID))
	if err != nil {
		switch {
		case errors.Is(err, configService.ErrAccessDenied):
			h.logger.Warn("PUT /artists/{id}/settings - Access denied: artist_id=%d, user_id=%d", artistID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, configService.ErrInvalidSchedule):
			h.logger.Warn("PUT /artists/{id}/settings - Invalid schedule: artist_id=%d, error=%v", artistID, err)
			handlers.RespondBadRequest(w, msgInvalidSchedule)

		case errors.Is(err, configService.ErrInvalidGranularity):
			h.logger.Warn("PUT /artists/{id}/settings - Invalid granularity: artist_id=%d, error=%v", artistID, err)
			handlers.RespondBadRequest(w, msgInvalidGranularity)

		case errors.Is(err, configService.ErrInvalidDeposit):
			h.logger.Warn("PUT /artists/{id}/settings - Invalid deposit: artist_id=%d, error=%v", artistID, err)
			handlers.RespondBadRequest(w, msgInvalidDeposit)

		case errors.Is(err, configService.ErrInvalidTier):
			h.logger.Warn("PUT /artists/{id}/settings - Invalid tier: artist_id=%d, tier=%s", artistID, req.Tier)
			handlers.RespondBadRequest(w, msgInvalidTier)

		case errors.Is(err, configService.ErrInvalidInput):
			h.logger.Warn("PUT /artists/{id}/settings - Invalid settings: artist_id=%d, error=%v", artistID, err)
			handlers.RespondBadRequest(w, msgInvalidSettings)

		default:
			h.logger.Error("PUT /artists/{id}/settings - Failed to update settings: artist_id=%d, error=%v", artistID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /artists/{id}/settings - Settings updated successfully: artist_id=%d", artistID)
	handlers.RespondJSON(w, http.StatusOK, settings)
}
