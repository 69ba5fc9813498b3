package get_available_slots

import (
	"time"

	"github.com/m04kA/INK-BookingService/internal/domain"
)

// Request модель запроса на получение доступных слотов
type Request struct {
	ArtistID int64     // ID мастера
	From     time.Time // Начало диапазона дат (без времени)
	To       time.Time // Конец диапазона дат (без времени, включительно)
}

// Response модель ответа со списком доступных слотов
type Response struct {
	ArtistID int64                     // ID мастера
	From     time.Time                 // Начало запрошенного диапазона
	To       time.Time                 // Конец запрошенного диапазона
	Slots    []domain.AvailabilitySlot // Свободные слоты в порядке генерации
}
