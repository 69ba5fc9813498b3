package payproc

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Client клиент платёжного процессора
// Сервис потребляет только контракт (сумма, комиссия) → handle и обратный
// webhook; протокол процессора за этим контрактом не специфицирован
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента платёжного процессора
func NewClient(baseURL, apiKey string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// CreateCheckout создает платёжную сессию на депозит с комиссией платформы
// Idempotency-Key защищает от дублей при ретраях на сетевых ошибках
func (c *Client) CreateCheckout(ctx context.Context, checkoutReq *CheckoutRequest) (*Checkout, error) {
	url := fmt.Sprintf("%s/v1/checkouts", c.baseURL)

	body, err := json.Marshal(checkoutReq)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to marshal request: %v", ErrInternal, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Idempotency-Key", uuid.NewString())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	// Обработка статус-кодов
	switch resp.StatusCode {
	case http.StatusOK, http.StatusCreated:
		// Продолжаем обработку
	case http.StatusPaymentRequired, http.StatusUnprocessableEntity:
		var errResp ErrorResponse
		_ = json.NewDecoder(resp.Body).Decode(&errResp)
		return nil, fmt.Errorf("%w: %s", ErrCheckoutDeclined, errResp.Message)
	default:
		respBody, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(respBody))
	}

	var checkout Checkout
	if err := json.NewDecoder(resp.Body).Decode(&checkout); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}
	if checkout.Handle == "" {
		return nil, fmt.Errorf("%w: empty checkout handle", ErrInvalidResponse)
	}

	return &checkout, nil
}

// CreateCheckoutWithGracefulDegradation создает checkout с graceful degradation
// При недоступности процессора возвращает ErrServiceDegraded: бронирование
// остаётся без платёжной ссылки, а не падает целиком
func (c *Client) CreateCheckoutWithGracefulDegradation(ctx context.Context, checkoutReq *CheckoutRequest) (*Checkout, error) {
	c.log.Info("Creating checkout for booking_id=%d, amount=%d, fee=%d",
		checkoutReq.BookingID, checkoutReq.Amount, checkoutReq.ApplicationFee)

	checkout, err := c.CreateCheckout(ctx, checkoutReq)
	if err != nil {
		// Отклонение процессором - бизнес-ошибка, пробрасываем дальше
		if errors.Is(err, ErrCheckoutDeclined) {
			c.log.Info("Checkout declined for booking_id=%d: %v", checkoutReq.BookingID, err)
			return nil, err
		}

		// Недоступность сервиса, timeout, ошибки парсинга - degradation
		c.log.Error("PayProc unavailable, applying graceful degradation for booking_id=%d: %v",
			checkoutReq.BookingID, err)
		return nil, fmt.Errorf("%w: booking_id=%d, error=%v", ErrServiceDegraded, checkoutReq.BookingID, err)
	}

	c.log.Info("Checkout created for booking_id=%d, handle=%s", checkoutReq.BookingID, checkout.Handle)
	return checkout, nil
}
