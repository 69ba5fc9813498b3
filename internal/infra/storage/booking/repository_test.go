package booking_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	storage "github.com/m04kA/INK-BookingService/internal/infra/storage/booking"
)

// errExecutor исполнитель, возвращающий заданную ошибку на любой запрос
type errExecutor struct {
	err error
}

func (e *errExecutor) ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	return nil, e.err
}

func (e *errExecutor) QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error) {
	return nil, e.err
}

func (e *errExecutor) QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row {
	return nil
}

func interval() (time.Time, time.Time) {
	start := time.Date(2025, 6, 3, 12, 0, 0, 0, time.UTC)
	return start, start.Add(2 * time.Hour)
}

func TestUpdateSchedule_ExclusionViolationIsSlotConflict(t *testing.T) {
	repo := storage.NewRepository(&errExecutor{err: &pq.Error{Code: "23P01"}})

	startAt, endAt := interval()
	err := repo.UpdateSchedule(context.Background(), 1, startAt, endAt, 120)
	assert.ErrorIs(t, err, storage.ErrSlotConflict)
}

func TestUpdateSchedule_SerializationFailureStaysInChain(t *testing.T) {
	// Ошибка 40001 должна оставаться в цепочке после обёртки: по ней
	// transaction manager решает, повторять ли сериализуемую транзакцию
	pqErr := &pq.Error{Code: "40001"}
	repo := storage.NewRepository(&errExecutor{err: pqErr})

	startAt, endAt := interval()
	err := repo.UpdateSchedule(context.Background(), 1, startAt, endAt, 120)
	require.Error(t, err)
	assert.ErrorIs(t, err, storage.ErrExecQuery)

	var unwrapped *pq.Error
	require.True(t, errors.As(err, &unwrapped))
	assert.Equal(t, pq.ErrorCode("40001"), unwrapped.Code)
}

func TestGetOverlapping_SerializationFailureStaysInChain(t *testing.T) {
	pqErr := &pq.Error{Code: "40001"}
	repo := storage.NewRepository(&errExecutor{err: pqErr})

	startAt, endAt := interval()
	_, err := repo.GetOverlapping(context.Background(), 10, startAt, endAt, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, storage.ErrExecQuery)

	var unwrapped *pq.Error
	assert.True(t, errors.As(err, &unwrapped))
}
