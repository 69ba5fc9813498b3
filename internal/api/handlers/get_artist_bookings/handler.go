package get_artist_bookings

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/INK-BookingService/internal/api/handlers"
	"github.com/m04kA/INK-BookingService/internal/api/middleware"
	"github.com/m04kA/INK-BookingService/internal/service/bookings"
)

const (
	msgInvalidArtistID = "некорректный ID мастера"
	msgInvalidQuery    = "некорректные параметры фильтра"
	msgMissingUserID   = "отсутствует ID пользователя"
	msgForbidden       = "доступ запрещен"
)

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/artists/{artistId}/bookings
// Query params: startDate, endDate, status, includeInactive (все опциональны)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	artistID, err := strconv.ParseInt(vars["artistId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /artists/{id}/bookings - Invalid artist ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidArtistID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /artists/{id}/bookings - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	req, err := ParseQuery(artistID, userID, r.URL.Query())
	if err != nil {
		h.logger.Warn("GET /artists/{id}/bookings - Invalid query params: artist_id=%d, error=%v", artistID, err)
		handlers.RespondBadRequest(w, msgInvalidQuery)
		return
	}

	result, err := h.service.GetArtistBookings(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrAccessDenied):
			h.logger.Warn("GET /artists/{id}/bookings - Access denied: artist_id=%d, user_id=%d", artistID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, bookings.ErrInvalidInput):
			h.logger.Warn("GET /artists/{id}/bookings - Invalid filter: artist_id=%d, error=%v", artistID, err)
			handlers.RespondBadRequest(w, msgInvalidQuery)

		default:
			h.logger.Error("GET /artists/{id}/bookings - Failed to get bookings: artist_id=%d, error=%v", artistID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /artists/{id}/bookings - Bookings retrieved successfully: artist_id=%d, count=%d",
		artistID, len(result.Bookings))
	handlers.RespondJSON(w, http.StatusOK, result)
}
