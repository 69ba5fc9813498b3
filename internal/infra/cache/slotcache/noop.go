package slotcache

import (
	"context"

	"github.com/m04kA/INK-BookingService/internal/domain"
)

// Noop заглушка кеша для конфигурации без Redis
// Каждый запрос слотов считается заново из БД
type Noop struct{}

// NewNoop создает отключенный кеш слотов
func NewNoop() *Noop {
	return &Noop{}
}

func (n *Noop) Get(ctx context.Context, artistID int64, from, to string) ([]domain.AvailabilitySlot, bool) {
	return nil, false
}

func (n *Noop) Set(ctx context.Context, artistID int64, from, to string, slots []domain.AvailabilitySlot) {
}

func (n *Noop) Invalidate(ctx context.Context, artistID int64) {}
