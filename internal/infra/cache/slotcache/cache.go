package slotcache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/m04kA/INK-BookingService/internal/domain"
)

// Logger интерфейс для логирования
type Logger interface {
	Warn(format string, v ...interface{})
}

// Cache кеш рассчитанных доступных слотов в Redis
// Ключ - мастер + запрошенный диапазон дат; инвалидация - удаление всех
// ключей мастера при любой записи, меняющей занятость.
// Кеш никогда не влияет на корректность: запись всё равно проходит через
// проверку пересечений на стороне БД
type Cache struct {
	client redis.Cmdable
	ttl    time.Duration
	log    Logger
}

// New создает кеш слотов с указанным TTL
func New(client redis.Cmdable, ttl time.Duration, log Logger) *Cache {
	return &Cache{client: client, ttl: ttl, log: log}
}

func slotKey(artistID int64, from, to string) string {
	return fmt.Sprintf("slots:%d:%s:%s", artistID, from, to)
}

func artistPattern(artistID int64) string {
	return fmt.Sprintf("slots:%d:*", artistID)
}

// Get возвращает закешированные слоты и признак попадания
func (c *Cache) Get(ctx context.Context, artistID int64, from, to string) ([]domain.AvailabilitySlot, bool) {
	raw, err := c.client.Get(ctx, slotKey(artistID, from, to)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.log.Warn("slotcache: get failed for artist=%d: %v", artistID, err)
		}
		return nil, false
	}

	var slots []domain.AvailabilitySlot
	if err := json.Unmarshal(raw, &slots); err != nil {
		c.log.Warn("slotcache: unmarshal failed for artist=%d: %v", artistID, err)
		return nil, false
	}

	return slots, true
}

// Set сохраняет рассчитанные слоты с TTL
// Ошибки Redis не пробрасываются: кеш best-effort
func (c *Cache) Set(ctx context.Context, artistID int64, from, to string, slots []domain.AvailabilitySlot) {
	raw, err := json.Marshal(slots)
	if err != nil {
		c.log.Warn("slotcache: marshal failed for artist=%d: %v", artistID, err)
		return
	}

	if err := c.client.Set(ctx, slotKey(artistID, from, to), raw, c.ttl).Err(); err != nil {
		c.log.Warn("slotcache: set failed for artist=%d: %v", artistID, err)
	}
}

// Invalidate удаляет все закешированные диапазоны мастера
// Вызывается после создания, переноса и терминальных переходов бронирований
func (c *Cache) Invalidate(ctx context.Context, artistID int64) {
	iter := c.client.Scan(ctx, 0, artistPattern(artistID), 100).Iterator()

	keys := make([]string, 0)
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		c.log.Warn("slotcache: scan failed for artist=%d: %v", artistID, err)
		return
	}

	if len(keys) == 0 {
		return
	}

	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		c.log.Warn("slotcache: del failed for artist=%d: %v", artistID, err)
	}
}
