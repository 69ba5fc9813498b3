package domain

import "time"

// AvailabilitySlot represents a bookable free interval of time.
// Не персистится, вычисляется на лету
type AvailabilitySlot struct {
	StartAt time.Time `json:"startAt"`
	EndAt   time.Time `json:"endAt"`
}

// DurationMinutes возвращает длительность слота в минутах
func (s AvailabilitySlot) DurationMinutes() int {
	return int(s.EndAt.Sub(s.StartAt) / time.Minute)
}

// OverlapsBooking проверяет пересечение слота с бронированием
func (s AvailabilitySlot) OverlapsBooking(b *Booking) bool {
	return Overlaps(s.StartAt, s.EndAt, b.StartAt, b.EndAt)
}
