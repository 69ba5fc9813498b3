package reschedule_booking

import "errors"

var (
	// ErrBookingNotFound бронирование не найдено
	ErrBookingNotFound = errors.New("reschedule_booking: booking not found")

	// ErrAccessDenied перенос доступен только участникам бронирования
	ErrAccessDenied = errors.New("reschedule_booking: access denied")

	// ErrNotReschedulable бронирование в терминальном статусе нельзя переносить
	ErrNotReschedulable = errors.New("reschedule_booking: booking is not reschedulable")

	// ErrSlotConflict новый интервал пересекается с другим активным бронированием
	ErrSlotConflict = errors.New("reschedule_booking: slot conflict")

	// ErrInvalidTimeRange некорректный интервал времени
	ErrInvalidTimeRange = errors.New("reschedule_booking: invalid time range")

	// ErrInvalidInput некорректные входные данные
	ErrInvalidInput = errors.New("reschedule_booking: invalid input")
)
