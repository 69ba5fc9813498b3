package payproc

import "errors"

var (
	// ErrCheckoutDeclined возвращается, когда процессор отклонил создание checkout
	ErrCheckoutDeclined = errors.New("payproc client: checkout declined")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("payproc client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе процессора
	ErrInvalidResponse = errors.New("payproc client: invalid response")

	// ErrServiceDegraded возвращается при применении graceful degradation:
	// процессор недоступен, бронирование создаётся без платёжной ссылки,
	// оплату можно инициировать повторно позже
	ErrServiceDegraded = errors.New("payproc unavailable: graceful degradation applied")

	// ErrUnknownOutcome возвращается при неизвестном исходе платежа в webhook
	ErrUnknownOutcome = errors.New("payproc client: unknown payment outcome")
)
