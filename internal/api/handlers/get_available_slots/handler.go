package get_available_slots

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/INK-BookingService/internal/api/handlers"
	getAvailableSlots "github.com/m04kA/INK-BookingService/internal/usecase/get_available_slots"
)

const (
	msgInvalidArtistID      = "некорректный ID мастера"
	msgMissingDateRange     = "параметры from и to обязательны"
	msgInvalidDate          = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidRange         = "некорректный диапазон дат"
	msgInvalidConfiguration = "настройки мастера не позволяют построить слоты"
	msgDateTooFar           = "диапазон дат превышает глубину записи мастера"
)

type Handler struct {
	useCase GetAvailableSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/artists/{artistId}/available-slots
// Query params: from (required, YYYY-MM-DD), to (required, YYYY-MM-DD)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	artistIDStr := vars["artistId"]
	artistID, err := strconv.ParseInt(artistIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("GET /artists/{id}/available-slots - Invalid artist ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidArtistID)
		return
	}

	fromStr := r.URL.Query().Get("from")
	toStr := r.URL.Query().Get("to")
	if fromStr == "" || toStr == "" {
		h.logger.Warn("GET /artists/{id}/available-slots - Missing date range: artist_id=%d", artistID)
		handlers.RespondBadRequest(w, msgMissingDateRange)
		return
	}

	useCaseReq, err := ToUseCaseRequest(artistID, fromStr, toStr)
	if err != nil {
		h.logger.Warn("GET /artists/{id}/available-slots - Invalid date format: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, getAvailableSlots.ErrInvalidInput):
			h.logger.Warn("GET /artists/{id}/available-slots - Invalid range: artist_id=%d, error=%v", artistID, err)
			handlers.RespondBadRequest(w, msgInvalidRange)

		case errors.Is(err, getAvailableSlots.ErrDateTooFarInFuture):
			h.logger.Warn("GET /artists/{id}/available-slots - Date too far: artist_id=%d", artistID)
			handlers.RespondBadRequest(w, msgDateTooFar)

		case errors.Is(err, getAvailableSlots.ErrInvalidConfiguration):
			h.logger.Warn("GET /artists/{id}/available-slots - Invalid configuration: artist_id=%d, error=%v", artistID, err)
			handlers.RespondError(w, http.StatusUnprocessableEntity, msgInvalidConfiguration)

		default:
			h.logger.Error("GET /artists/{id}/available-slots - Failed to get slots: artist_id=%d, error=%v", artistID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	response := FromUseCaseResponse(result)

	h.logger.Info("GET /artists/{id}/available-slots - Slots retrieved successfully: artist_id=%d, slots_count=%d",
		artistID, len(result.Slots))
	handlers.RespondJSON(w, http.StatusOK, response)
}
