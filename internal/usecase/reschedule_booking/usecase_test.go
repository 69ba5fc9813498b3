package reschedule_booking_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/INK-BookingService/internal/domain"
	storage "github.com/m04kA/INK-BookingService/internal/infra/storage/booking"
	rescheduleBooking "github.com/m04kA/INK-BookingService/internal/usecase/reschedule_booking"
)

type fakeBookingRepo struct {
	mu       sync.Mutex
	nextID   int64
	bookings map[int64]*domain.Booking
}

func newFakeBookingRepo(bookings ...*domain.Booking) *fakeBookingRepo {
	repo := &fakeBookingRepo{nextID: 100, bookings: make(map[int64]*domain.Booking)}
	for _, b := range bookings {
		repo.bookings[b.ID] = b
	}
	return repo
}

func (r *fakeBookingRepo) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := *booking
	stored.ID = r.nextID
	r.nextID++
	r.bookings[stored.ID] = &stored

	copied := stored
	return &copied, nil
}

func (r *fakeBookingRepo) SetPaymentRef(ctx context.Context, id int64, paymentRef string) error {
	return nil
}

func (r *fakeBookingRepo) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.bookings[id]
	if !ok {
		return nil, storage.ErrBookingNotFound
	}
	copied := *b
	return &copied, nil
}

func (r *fakeBookingRepo) GetOverlapping(ctx context.Context, artistID int64, startAt, endAt time.Time, excludeID *int64) ([]*domain.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var overlapping []*domain.Booking
	for _, b := range r.bookings {
		if b.ArtistID != artistID || !b.IsBlocking() {
			continue
		}
		if excludeID != nil && b.ID == *excludeID {
			continue
		}
		if domain.Overlaps(b.StartAt, b.EndAt, startAt, endAt) {
			overlapping = append(overlapping, b)
		}
	}
	return overlapping, nil
}

func (r *fakeBookingRepo) UpdateSchedule(ctx context.Context, id int64, startAt, endAt time.Time, durationMinutes int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.bookings[id]
	if !ok {
		return storage.ErrBookingNotFound
	}
	b.StartAt = startAt
	b.EndAt = endAt
	b.DurationMinutes = durationMinutes
	return nil
}

type fakeTxManager struct {
	mu sync.Mutex
}

func (m *fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return fn(ctx)
}

type fakeCache struct {
	invalidated []int64
}

func (c *fakeCache) Invalidate(ctx context.Context, artistID int64) {
	c.invalidated = append(c.invalidated, artistID)
}

type fixedTimeProvider struct {
	now time.Time
}

func (p *fixedTimeProvider) Now() time.Time {
	return p.now
}

type nopLogger struct{}

func (l *nopLogger) Info(format string, v ...interface{})  {}
func (l *nopLogger) Warn(format string, v ...interface{})  {}
func (l *nopLogger) Error(format string, v ...interface{}) {}

var testNow = time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC)

func at(hour int) time.Time {
	return time.Date(2025, 6, 3, hour, 0, 0, 0, time.UTC)
}

func confirmedBooking(id, artistID, clientID int64, startHour, endHour int) *domain.Booking {
	return &domain.Booking{
		ID:              id,
		ArtistID:        artistID,
		ClientID:        clientID,
		Source:          domain.NewFlashSource(1),
		StartAt:         at(startHour),
		EndAt:           at(endHour),
		DurationMinutes: (endHour - startHour) * 60,
		Status:          domain.StatusConfirmed,
		PaymentStatus:   domain.PaymentDepositPaid,
	}
}

func newUseCase(repo *fakeBookingRepo, cache *fakeCache) *rescheduleBooking.UseCase {
	return rescheduleBooking.New(repo, cache, &fakeTxManager{}, &fixedTimeProvider{now: testNow}, &nopLogger{})
}

func TestExecute_MoveToFreeInterval(t *testing.T) {
	repo := newFakeBookingRepo(confirmedBooking(1, 10, 20, 12, 14))
	cache := &fakeCache{}
	uc := newUseCase(repo, cache)

	resp, err := uc.Execute(context.Background(), &rescheduleBooking.Request{
		BookingID: 1,
		UserID:    20,
		StartAt:   at(15),
		EndAt:     at(17),
	})
	require.NoError(t, err)

	assert.Equal(t, at(15), resp.StartAt)
	assert.Equal(t, at(17), resp.EndAt)
	assert.Equal(t, 120, resp.DurationMinutes)

	stored, _ := repo.GetByID(context.Background(), 1)
	assert.Equal(t, at(15), stored.StartAt)
	assert.Equal(t, []int64{10}, cache.invalidated)
}

func TestExecute_SelfOverlapAllowed(t *testing.T) {
	// Продление собственного интервала не должно конфликтовать с самим собой
	repo := newFakeBookingRepo(confirmedBooking(1, 10, 20, 12, 14))
	uc := newUseCase(repo, &fakeCache{})

	resp, err := uc.Execute(context.Background(), &rescheduleBooking.Request{
		BookingID: 1,
		UserID:    20,
		StartAt:   at(12),
		EndAt:     at(15),
	})
	require.NoError(t, err)
	assert.Equal(t, 180, resp.DurationMinutes)
}

func TestExecute_ConflictWithAnotherBooking(t *testing.T) {
	repo := newFakeBookingRepo(
		confirmedBooking(1, 10, 20, 12, 14),
		confirmedBooking(2, 10, 21, 15, 17),
	)
	uc := newUseCase(repo, &fakeCache{})

	_, err := uc.Execute(context.Background(), &rescheduleBooking.Request{
		BookingID: 1,
		UserID:    20,
		StartAt:   at(16),
		EndAt:     at(18),
	})
	assert.ErrorIs(t, err, rescheduleBooking.ErrSlotConflict)

	// Интервал не изменился
	stored, _ := repo.GetByID(context.Background(), 1)
	assert.Equal(t, at(12), stored.StartAt)
}

func TestExecute_BackToBackDoesNotConflict(t *testing.T) {
	repo := newFakeBookingRepo(
		confirmedBooking(1, 10, 20, 12, 14),
		confirmedBooking(2, 10, 21, 15, 17),
	)
	uc := newUseCase(repo, &fakeCache{})

	// Новый интервал заканчивается ровно в начале соседнего
	_, err := uc.Execute(context.Background(), &rescheduleBooking.Request{
		BookingID: 1,
		UserID:    20,
		StartAt:   at(13),
		EndAt:     at(15),
	})
	assert.NoError(t, err)
}

func TestExecute_TerminalStatusNotReschedulable(t *testing.T) {
	for _, status := range []domain.BookingStatus{
		domain.StatusCompleted,
		domain.StatusCancelled,
		domain.StatusRejected,
		domain.StatusNoShow,
	} {
		t.Run(string(status), func(t *testing.T) {
			booking := confirmedBooking(1, 10, 20, 12, 14)
			booking.Status = status
			uc := newUseCase(newFakeBookingRepo(booking), &fakeCache{})

			_, err := uc.Execute(context.Background(), &rescheduleBooking.Request{
				BookingID: 1,
				UserID:    20,
				StartAt:   at(15),
				EndAt:     at(17),
			})
			assert.ErrorIs(t, err, rescheduleBooking.ErrNotReschedulable)
		})
	}
}

func TestExecute_AccessDeniedForThirdParty(t *testing.T) {
	repo := newFakeBookingRepo(confirmedBooking(1, 10, 20, 12, 14))
	uc := newUseCase(repo, &fakeCache{})

	_, err := uc.Execute(context.Background(), &rescheduleBooking.Request{
		BookingID: 1,
		UserID:    99,
		StartAt:   at(15),
		EndAt:     at(17),
	})
	assert.ErrorIs(t, err, rescheduleBooking.ErrAccessDenied)
}

func TestExecute_ArtistMayReschedule(t *testing.T) {
	repo := newFakeBookingRepo(confirmedBooking(1, 10, 20, 12, 14))
	uc := newUseCase(repo, &fakeCache{})

	_, err := uc.Execute(context.Background(), &rescheduleBooking.Request{
		BookingID: 1,
		UserID:    10,
		StartAt:   at(15),
		EndAt:     at(17),
	})
	assert.NoError(t, err)
}

func TestExecute_BookingNotFound(t *testing.T) {
	uc := newUseCase(newFakeBookingRepo(), &fakeCache{})

	_, err := uc.Execute(context.Background(), &rescheduleBooking.Request{
		BookingID: 42,
		UserID:    20,
		StartAt:   at(15),
		EndAt:     at(17),
	})
	assert.ErrorIs(t, err, rescheduleBooking.ErrBookingNotFound)
}

func TestExecute_InvalidTimeRange(t *testing.T) {
	repo := newFakeBookingRepo(confirmedBooking(1, 10, 20, 12, 14))
	uc := newUseCase(repo, &fakeCache{})

	tests := []struct {
		name    string
		startAt time.Time
		endAt   time.Time
	}{
		{"start equals end", at(15), at(15)},
		{"start after end", at(17), at(15)},
		{"start in the past", testNow.Add(-time.Hour), testNow.Add(time.Hour)},
		{"duration exceeds maximum", at(0), at(0).Add(13 * time.Hour)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.Execute(context.Background(), &rescheduleBooking.Request{
				BookingID: 1,
				UserID:    20,
				StartAt:   tt.startAt,
				EndAt:     tt.endAt,
			})
			assert.ErrorIs(t, err, rescheduleBooking.ErrInvalidTimeRange)
		})
	}
}
