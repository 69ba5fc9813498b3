package create_booking

import (
	"time"

	"github.com/m04kA/INK-BookingService/internal/domain"
)

// Request модель запроса на создание бронирования
type Request struct {
	ArtistID int64                // ID мастера
	ClientID int64                // ID клиента (инициатора); для ручной записи равен ArtistID
	Source   domain.BookingSource // Источник: flash / project / manual

	ClientName  string  // Имя клиента
	ClientEmail string  // Email клиента
	ClientPhone *string // Телефон (опционально)

	StartAt         time.Time // Начало сеанса, UTC
	DurationMinutes int       // Длительность в минутах

	TotalPrice        int64  // Полная цена в минорных единицах
	DepositPercentage *int   // Процент депозита (nil → дефолт мастера)
	DepositOverride   *int64 // Фиксированный депозит flash-эскиза (опционально)

	Notes *string // Заметки (опционально)
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID       int64
	ArtistID int64
	ClientID int64
	Source   domain.BookingSource

	StartAt         time.Time
	EndAt           time.Time
	DurationMinutes int

	TotalPrice        int64
	DepositAmount     int64
	DepositPercentage int
	CommissionAmount  int64 // Комиссия платформы с депозита

	Status        string
	PaymentStatus string

	// URL для редиректа клиента на оплату депозита
	// nil для ручных записей, нулевого депозита и при недоступности процессора
	PaymentRedirectURL *string

	CreatedAt time.Time
	UpdatedAt time.Time
}
