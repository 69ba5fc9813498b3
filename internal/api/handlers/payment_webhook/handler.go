package payment_webhook

import (
	"crypto/subtle"
	"errors"
	"net/http"

	"github.com/m04kA/INK-BookingService/internal/api/handlers"
	"github.com/m04kA/INK-BookingService/internal/integrations/payproc"
	"github.com/m04kA/INK-BookingService/internal/service/bookings"
)

const (
	// HeaderWebhookSecret заголовок с общим секретом процессора
	HeaderWebhookSecret = "X-Webhook-Secret"

	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidSecret      = "некорректный секрет webhook"
	msgUnknownOutcome     = "неизвестный исход платежа"
	msgBookingNotFound    = "бронирование для платежа не найдено"
	msgInvalidTransition  = "недопустимый переход статуса оплаты"
)

type Handler struct {
	service       BookingService
	webhookSecret string
	logger        Logger
}

func NewHandler(service BookingService, webhookSecret string, logger Logger) *Handler {
	return &Handler{
		service:       service,
		webhookSecret: webhookSecret,
		logger:        logger,
	}
}

// Handle POST /api/v1/payments/webhook
// Процессор ретраит доставку, поэтому обработка идемпотентна:
// повторное событие с уже применённым статусом отвечает 200
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	secret := r.Header.Get(HeaderWebhookSecret)
	if subtle.ConstantTimeCompare([]byte(secret), []byte(h.webhookSecret)) != 1 {
		h.logger.Warn("POST /payments/webhook - Invalid webhook secret")
		handlers.RespondUnauthorized(w, msgInvalidSecret)
		return
	}

	var event payproc.WebhookEvent
	if err := handlers.DecodeJSON(r, &event); err != nil {
		h.logger.Warn("POST /payments/webhook - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	paymentStatus, err := event.PaymentStatus()
	if err != nil {
		h.logger.Warn("POST /payments/webhook - Unknown outcome: event_id=%s, outcome=%s", event.EventID, event.Outcome)
		handlers.RespondBadRequest(w, msgUnknownOutcome)
		return
	}

	if err := h.service.HandlePaymentOutcome(r.Context(), event.Handle, paymentStatus); err != nil {
		switch {
		case errors.Is(err, bookings.ErrBookingNotFound):
			h.logger.Warn("POST /payments/webhook - Booking not found: event_id=%s, handle=%s", event.EventID, event.Handle)
			handlers.RespondNotFound(w, msgBookingNotFound)

		case errors.Is(err, bookings.ErrInvalidPaymentTransition):
			h.logger.Warn("POST /payments/webhook - Invalid payment transition: event_id=%s, handle=%s, error=%v",
				event.EventID, event.Handle, err)
			handlers.RespondUnprocessable(w, msgInvalidTransition)

		default:
			h.logger.Error("POST /payments/webhook - Failed to process event: event_id=%s, handle=%s, error=%v",
				event.EventID, event.Handle, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /payments/webhook - Event processed successfully: event_id=%s, outcome=%s",
		event.EventID, event.Outcome)
	handlers.RespondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
