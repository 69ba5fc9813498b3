package get_available_slots

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("get_available_slots: invalid input data")

	// ErrInvalidConfiguration возвращается при несогласованных параметрах
	// генерации слотов: шаг не делит рабочее окно нацело, перевёрнутый диапазон
	ErrInvalidConfiguration = errors.New("get_available_slots: invalid slot configuration")

	// ErrDateTooFarInFuture возвращается, когда диапазон превышает
	// ограничение advance_booking_days мастера
	ErrDateTooFarInFuture = errors.New("get_available_slots: date is too far in the future")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("get_available_slots: internal error")
)
