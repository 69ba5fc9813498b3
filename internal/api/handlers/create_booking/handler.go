package create_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/INK-BookingService/internal/api/handlers"
	"github.com/m04kA/INK-BookingService/internal/api/middleware"
	createBooking "github.com/m04kA/INK-BookingService/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidSource      = "некорректный источник бронирования"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgSlotConflict       = "выбранный интервал уже занят"
	msgInvalidAmount      = "некорректные денежные параметры"
	msgInvalidDate        = "некорректная дата бронирования"
	msgDateTooFar         = "дата бронирования превышает глубину записи мастера"
	msgTooLateToBook      = "слишком поздно для записи на этот слот"
	msgOutsideHours       = "интервал выходит за рабочие часы мастера"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /bookings - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(userID)
	if err != nil {
		h.logger.Warn("POST /bookings - Invalid booking source: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSource)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createBooking.ErrSlotConflict):
			h.logger.Warn("POST /bookings - Slot conflict: client_id=%d, artist_id=%d", userID, req.ArtistID)
			handlers.RespondConflict(w, msgSlotConflict)

		case errors.Is(err, createBooking.ErrInvalidAmount):
			h.logger.Warn("POST /bookings - Invalid amount: client_id=%d, artist_id=%d, error=%v", userID, req.ArtistID, err)
			handlers.RespondBadRequest(w, msgInvalidAmount)

		case errors.Is(err, createBooking.ErrInvalidDate):
			h.logger.Warn("POST /bookings - Invalid booking date: client_id=%d, artist_id=%d", userID, req.ArtistID)
			handlers.RespondBadRequest(w, msgInvalidDate)

		case errors.Is(err, createBooking.ErrDateTooFarInFuture):
			h.logger.Warn("POST /bookings - Date too far in future: client_id=%d, artist_id=%d", userID, req.ArtistID)
			handlers.RespondBadRequest(w, msgDateTooFar)

		case errors.Is(err, createBooking.ErrTooLateToBook):
			h.logger.Warn("POST /bookings - Too late to book: client_id=%d, artist_id=%d", userID, req.ArtistID)
			handlers.RespondBadRequest(w, msgTooLateToBook)

		case errors.Is(err, createBooking.ErrOutsideWorkingHours):
			h.logger.Warn("POST /bookings - Outside working hours: client_id=%d, artist_id=%d", userID, req.ArtistID)
			handlers.RespondBadRequest(w, msgOutsideHours)

		case errors.Is(err, createBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings - Invalid input: client_id=%d, artist_id=%d, error=%v", userID, req.ArtistID, err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		default:
			h.logger.Error("POST /bookings - Failed to create booking: client_id=%d, artist_id=%d, error=%v",
				userID, req.ArtistID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	response := FromUseCaseResponse(result)

	h.logger.Info("POST /bookings - Booking created successfully: booking_id=%d, client_id=%d, artist_id=%d",
		result.ID, userID, req.ArtistID)
	handlers.RespondJSON(w, http.StatusCreated, response)
}
