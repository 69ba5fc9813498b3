package slotcache_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/INK-BookingService/internal/domain"
	"github.com/m04kA/INK-BookingService/internal/infra/cache/slotcache"
)

type nopLogger struct{}

func (l *nopLogger) Warn(format string, v ...interface{}) {}

func testSlots() []domain.AvailabilitySlot {
	start := time.Date(2025, 6, 3, 10, 0, 0, 0, time.UTC)
	return []domain.AvailabilitySlot{
		{StartAt: start, EndAt: start.Add(time.Hour)},
		{StartAt: start.Add(time.Hour), EndAt: start.Add(2 * time.Hour)},
	}
}

func TestGet_Hit(t *testing.T) {
	client, mock := redismock.NewClientMock()
	cache := slotcache.New(client, 30*time.Second, &nopLogger{})

	slots := testSlots()
	raw, err := json.Marshal(slots)
	require.NoError(t, err)

	mock.ExpectGet("slots:10:2025-06-03:2025-06-04").SetVal(string(raw))

	got, ok := cache.Get(context.Background(), 10, "2025-06-03", "2025-06-04")
	require.True(t, ok)
	assert.Equal(t, slots, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGet_Miss(t *testing.T) {
	client, mock := redismock.NewClientMock()
	cache := slotcache.New(client, 30*time.Second, &nopLogger{})

	mock.ExpectGet("slots:10:2025-06-03:2025-06-04").RedisNil()

	got, ok := cache.Get(context.Background(), 10, "2025-06-03", "2025-06-04")
	assert.False(t, ok)
	assert.Nil(t, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGet_RedisErrorTreatedAsMiss(t *testing.T) {
	client, mock := redismock.NewClientMock()
	cache := slotcache.New(client, 30*time.Second, &nopLogger{})

	mock.ExpectGet("slots:10:2025-06-03:2025-06-04").SetErr(errors.New("connection refused"))

	_, ok := cache.Get(context.Background(), 10, "2025-06-03", "2025-06-04")
	assert.False(t, ok)
}

func TestGet_CorruptedPayloadTreatedAsMiss(t *testing.T) {
	client, mock := redismock.NewClientMock()
	cache := slotcache.New(client, 30*time.Second, &nopLogger{})

	mock.ExpectGet("slots:10:2025-06-03:2025-06-04").SetVal("{not json")

	_, ok := cache.Get(context.Background(), 10, "2025-06-03", "2025-06-04")
	assert.False(t, ok)
}

func TestSet(t *testing.T) {
	client, mock := redismock.NewClientMock()
	cache := slotcache.New(client, 30*time.Second, &nopLogger{})

	slots := testSlots()
	raw, err := json.Marshal(slots)
	require.NoError(t, err)

	mock.ExpectSet("slots:10:2025-06-03:2025-06-04", raw, 30*time.Second).SetVal("OK")

	cache.Set(context.Background(), 10, "2025-06-03", "2025-06-04", slots)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSet_RedisErrorIsSwallowed(t *testing.T) {
	client, mock := redismock.NewClientMock()
	cache := slotcache.New(client, 30*time.Second, &nopLogger{})

	slots := testSlots()
	raw, _ := json.Marshal(slots)
	mock.ExpectSet("slots:10:2025-06-03:2025-06-04", raw, 30*time.Second).SetErr(errors.New("connection refused"))

	// Кеш best-effort: ошибка не должна паниковать и не пробрасывается
	cache.Set(context.Background(), 10, "2025-06-03", "2025-06-04", slots)
}

func TestInvalidate_DeletesAllArtistRanges(t *testing.T) {
	client, mock := redismock.NewClientMock()
	cache := slotcache.New(client, 30*time.Second, &nopLogger{})

	keys := []string{
		"slots:10:2025-06-03:2025-06-04",
		"slots:10:2025-06-10:2025-06-17",
	}
	mock.ExpectScan(0, "slots:10:*", 100).SetVal(keys, 0)
	mock.ExpectDel(keys...).SetVal(2)

	cache.Invalidate(context.Background(), 10)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInvalidate_NoKeysNoDel(t *testing.T) {
	client, mock := redismock.NewClientMock()
	cache := slotcache.New(client, 30*time.Second, &nopLogger{})

	mock.ExpectScan(0, "slots:10:*", 100).SetVal([]string{}, 0)

	cache.Invalidate(context.Background(), 10)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestNoop(t *testing.T) {
	cache := slotcache.NewNoop()

	got, ok := cache.Get(context.Background(), 10, "2025-06-03", "2025-06-04")
	assert.False(t, ok)
	assert.Nil(t, got)

	cache.Set(context.Background(), 10, "2025-06-03", "2025-06-04", testSlots())
	cache.Invalidate(context.Background(), 10)
}
