package domain

import "time"

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	StatusPending   BookingStatus = "pending"
	StatusConfirmed BookingStatus = "confirmed"
	StatusRejected  BookingStatus = "rejected"
	StatusCompleted BookingStatus = "completed"
	StatusCancelled BookingStatus = "cancelled"
	StatusNoShow    BookingStatus = "no_show"
)

// PaymentStatus статус оплаты, независимая от статуса бронирования ось
type PaymentStatus string

const (
	PaymentPending     PaymentStatus = "pending"
	PaymentDepositPaid PaymentStatus = "deposit_paid"
	PaymentFullyPaid   PaymentStatus = "fully_paid"
	PaymentRefunded    PaymentStatus = "refunded"
	PaymentFailed      PaymentStatus = "failed"
)

// statusTransitions таблица допустимых переходов статуса бронирования
// pending и confirmed - единственные нетерминальные статусы
var statusTransitions = map[BookingStatus][]BookingStatus{
	StatusPending:   {StatusConfirmed, StatusRejected},
	StatusConfirmed: {StatusCompleted, StatusCancelled, StatusNoShow},
}

// paymentTransitions таблица допустимых переходов статуса оплаты
var paymentTransitions = map[PaymentStatus][]PaymentStatus{
	PaymentPending:     {PaymentDepositPaid, PaymentFailed},
	PaymentDepositPaid: {PaymentFullyPaid, PaymentRefunded},
	PaymentFullyPaid:   {PaymentRefunded},
}

// Booking represents a client booking of an artist's time
type Booking struct {
	ID       int64
	ArtistID int64
	ClientID int64
	Source   BookingSource

	// Контактные данные клиента (денормализованы для истории)
	ClientName  string
	ClientEmail string
	ClientPhone *string

	// Интервал [StartAt, EndAt), UTC
	StartAt         time.Time
	EndAt           time.Time
	DurationMinutes int

	// Деньги в минорных единицах валюты (центы)
	TotalPrice        int64
	DepositAmount     int64
	DepositPercentage int

	Status        BookingStatus
	PaymentStatus PaymentStatus
	PaymentRef    *string

	Notes              *string
	CancellationReason *string
	CancelledAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsBlocking возвращает true, если бронирование занимает время мастера
// Только pending и confirmed блокируют слоты
func (b *Booking) IsBlocking() bool {
	return b.Status == StatusPending || b.Status == StatusConfirmed
}

// IsTerminal возвращает true, если бронирование в терминальном статусе
func (b *Booking) IsTerminal() bool {
	_, ok := statusTransitions[b.Status]
	return !ok
}

// CanBeRescheduled возвращает true, если время бронирования можно менять
func (b *Booking) CanBeRescheduled() bool {
	return b.Status == StatusPending || b.Status == StatusConfirmed
}

// CanTransitionTo проверяет переход статуса по таблице переходов
func (b *Booking) CanTransitionTo(target BookingStatus) bool {
	for _, allowed := range statusTransitions[b.Status] {
		if allowed == target {
			return true
		}
	}
	return false
}

// CanChangePaymentTo проверяет переход статуса оплаты
func (b *Booking) CanChangePaymentTo(target PaymentStatus) bool {
	for _, allowed := range paymentTransitions[b.PaymentStatus] {
		if allowed == target {
			return true
		}
	}
	return false
}

// Overlaps проверяет пересечение двух полуоткрытых интервалов [aStart, aEnd)
// и [bStart, bEnd). Граничные случаи (конец одного равен началу другого)
// не считаются пересечением
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && bStart.Before(aEnd)
}

// ArtistBookingsFilter фильтр для получения бронирований мастера
type ArtistBookingsFilter struct {
	ArtistID        int64          // Обязательный параметр
	StartDate       *time.Time     // Начало периода (опционально)
	EndDate         *time.Time     // Конец периода (опционально)
	Status          *BookingStatus // Фильтр по статусу (опционально)
	IncludeInactive bool           // Включать ли отменённые/отклонённые/no-show
}
