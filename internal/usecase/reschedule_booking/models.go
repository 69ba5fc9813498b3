package reschedule_booking

import "time"

// Request запрос на перенос бронирования на новый интервал
type Request struct {
	BookingID int64
	UserID    int64 // инициатор: клиент или мастер бронирования
	StartAt   time.Time
	EndAt     time.Time
}

// Response результат переноса
type Response struct {
	BookingID       int64
	StartAt         time.Time
	EndAt           time.Time
	DurationMinutes int
}
