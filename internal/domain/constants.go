package domain

// Значения конфигурации по умолчанию
const (
	DefaultSlotGranularityMinutes  = 60
	DefaultDepositPercentage       = 30
	DefaultMinBookingNoticeMinutes = 60 // 1 час
	DefaultAdvanceBookingDays      = 0  // 0 = без ограничения
	DefaultOpenTime                = "10:00"
	DefaultCloseTime               = "19:00"
)

// Границы бизнес-валидации
const (
	MinSlotGranularityMinutes = 15
	MaxSlotGranularityMinutes = 480 // 8 часов
	MinDepositPercentage      = 0
	MaxDepositPercentage      = 100
	MinAdvanceBookingDays     = 0
	MaxAdvanceBookingDays     = 365
	MinBookingNoticeMinutes   = 0
	MaxBookingNoticeMinutes   = 10080 // неделя
	MaxBookingDurationMinutes = 720   // 12 часов за один сеанс
	MaxNotesLength            = 500
	MaxCancellationReasonLen  = 500
	MaxAvailabilityRangeDays  = 92 // ~3 месяца за один запрос слотов
)

// Форматы дат и времени
const (
	DateFormat = "2006-01-02" // YYYY-MM-DD
	TimeFormat = "15:04"      // HH:MM
)

// BlockingStatuses статусы, занимающие время мастера
// Используются при проверке пересечений и подсчёте доступных слотов
var BlockingStatuses = []BookingStatus{
	StatusPending,
	StatusConfirmed,
}

// InactiveStatuses статусы, не занимающие время мастера
var InactiveStatuses = []BookingStatus{
	StatusRejected,
	StatusCancelled,
	StatusNoShow,
}
