package create_booking

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrInvalidAmount возвращается при некорректных денежных данных:
	// отрицательная цена, депозит больше цены
	ErrInvalidAmount = errors.New("create_booking: invalid amount")

	// ErrSlotConflict возвращается, когда запрошенный интервал пересекается
	// с активным бронированием. Восстановимая ошибка: клиент должен
	// перечитать доступность и выбрать другой слот
	ErrSlotConflict = errors.New("create_booking: slot conflict")

	// ErrInvalidDate возвращается при некорректной дате бронирования
	ErrInvalidDate = errors.New("create_booking: invalid booking date")

	// ErrDateTooFarInFuture возвращается, когда дата превышает ограничение
	// advance_booking_days
	ErrDateTooFarInFuture = errors.New("create_booking: date is too far in the future")

	// ErrTooLateToBook возвращается при нарушении min_booking_notice_minutes
	ErrTooLateToBook = errors.New("create_booking: too late to book this slot")

	// ErrOutsideWorkingHours возвращается, когда клиентская заявка выходит
	// за рабочие часы мастера (ручные записи мастера не ограничены)
	ErrOutsideWorkingHours = errors.New("create_booking: outside working hours")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)
