package bookings_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/INK-BookingService/internal/domain"
	storage "github.com/m04kA/INK-BookingService/internal/infra/storage/booking"
	"github.com/m04kA/INK-BookingService/internal/service/bookings"
	"github.com/m04kA/INK-BookingService/internal/service/bookings/models"
	"github.com/m04kA/INK-BookingService/pkg/ptr"
)

type fakeBookingRepo struct {
	byID     map[int64]*domain.Booking
	byPayRef map[string]*domain.Booking

	statusUpdates  map[int64]domain.BookingStatus
	paymentUpdates map[int64]domain.PaymentStatus
	cancellations  map[int64]string
}

func newFakeBookingRepo(bookings ...*domain.Booking) *fakeBookingRepo {
	repo := &fakeBookingRepo{
		byID:           make(map[int64]*domain.Booking),
		byPayRef:       make(map[string]*domain.Booking),
		statusUpdates:  make(map[int64]domain.BookingStatus),
		paymentUpdates: make(map[int64]domain.PaymentStatus),
		cancellations:  make(map[int64]string),
	}
	for _, b := range bookings {
		repo.byID[b.ID] = b
		if b.PaymentRef != nil {
			repo.byPayRef[*b.PaymentRef] = b
		}
	}
	return repo
}

func (r *fakeBookingRepo) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	b, ok := r.byID[id]
	if !ok {
		return nil, storage.ErrBookingNotFound
	}
	copied := *b
	return &copied, nil
}

func (r *fakeBookingRepo) GetByPaymentRef(ctx context.Context, paymentRef string) (*domain.Booking, error) {
	b, ok := r.byPayRef[paymentRef]
	if !ok {
		return nil, storage.ErrBookingNotFound
	}
	copied := *b
	return &copied, nil
}

func (r *fakeBookingRepo) GetByClientID(ctx context.Context, clientID int64, status *domain.BookingStatus) ([]*domain.Booking, error) {
	var result []*domain.Booking
	for _, b := range r.byID {
		if b.ClientID != clientID {
			continue
		}
		if status != nil && b.Status != *status {
			continue
		}
		result = append(result, b)
	}
	return result, nil
}

func (r *fakeBookingRepo) GetByArtistWithFilter(ctx context.Context, filter domain.ArtistBookingsFilter) ([]*domain.Booking, error) {
	var result []*domain.Booking
	for _, b := range r.byID {
		if b.ArtistID != filter.ArtistID {
			continue
		}
		if filter.Status != nil && b.Status != *filter.Status {
			continue
		}
		if !filter.IncludeInactive && b.IsTerminal() {
			continue
		}
		result = append(result, b)
	}
	return result, nil
}

func (r *fakeBookingRepo) UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) error {
	b, ok := r.byID[id]
	if !ok {
		return storage.ErrBookingNotFound
	}
	b.Status = status
	r.statusUpdates[id] = status
	return nil
}

func (r *fakeBookingRepo) UpdatePaymentStatus(ctx context.Context, id int64, paymentStatus domain.PaymentStatus) error {
	b, ok := r.byID[id]
	if !ok {
		return storage.ErrBookingNotFound
	}
	b.PaymentStatus = paymentStatus
	r.paymentUpdates[id] = paymentStatus
	return nil
}

func (r *fakeBookingRepo) Cancel(ctx context.Context, id int64, status domain.BookingStatus, reason string) error {
	b, ok := r.byID[id]
	if !ok {
		return storage.ErrBookingNotFound
	}
	b.Status = status
	b.CancellationReason = &reason
	r.cancellations[id] = reason
	return nil
}

type fakeCache struct {
	invalidated []int64
}

func (c *fakeCache) Invalidate(ctx context.Context, artistID int64) {
	c.invalidated = append(c.invalidated, artistID)
}

type nopLogger struct{}

func (l *nopLogger) Info(format string, v ...interface{})  {}
func (l *nopLogger) Warn(format string, v ...interface{})  {}
func (l *nopLogger) Error(format string, v ...interface{}) {}

const (
	testArtistID = int64(10)
	testClientID = int64(20)
)

func testBooking(id int64, status domain.BookingStatus, paymentStatus domain.PaymentStatus) *domain.Booking {
	startAt := time.Date(2025, 6, 3, 12, 0, 0, 0, time.UTC)
	return &domain.Booking{
		ID:              id,
		ArtistID:        testArtistID,
		ClientID:        testClientID,
		Source:          domain.NewFlashSource(1),
		ClientName:      "Mara",
		ClientEmail:     "mara@example.com",
		StartAt:         startAt,
		EndAt:           startAt.Add(2 * time.Hour),
		DurationMinutes: 120,
		TotalPrice:      20000,
		DepositAmount:   6000,
		Status:          status,
		PaymentStatus:   paymentStatus,
	}
}

func newService(repo *fakeBookingRepo, cache *fakeCache) *bookings.Service {
	return bookings.NewService(repo, cache, &nopLogger{})
}

func TestGetByID_AccessControl(t *testing.T) {
	repo := newFakeBookingRepo(testBooking(1, domain.StatusConfirmed, domain.PaymentDepositPaid))
	svc := newService(repo, &fakeCache{})
	ctx := context.Background()

	resp, err := svc.GetByID(ctx, 1, testClientID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.ID)
	assert.Equal(t, "flash", resp.Source)

	_, err = svc.GetByID(ctx, 1, testArtistID)
	assert.NoError(t, err)

	_, err = svc.GetByID(ctx, 1, int64(99))
	assert.ErrorIs(t, err, bookings.ErrAccessDenied)

	_, err = svc.GetByID(ctx, 42, testClientID)
	assert.ErrorIs(t, err, bookings.ErrBookingNotFound)
}

func TestGetClientBookings_StatusFilter(t *testing.T) {
	repo := newFakeBookingRepo(
		testBooking(1, domain.StatusConfirmed, domain.PaymentDepositPaid),
		testBooking(2, domain.StatusCompleted, domain.PaymentFullyPaid),
	)
	svc := newService(repo, &fakeCache{})
	ctx := context.Background()

	resp, err := svc.GetClientBookings(ctx, &models.GetClientBookingsRequest{ClientID: testClientID})
	require.NoError(t, err)
	assert.Len(t, resp.Bookings, 2)

	resp, err = svc.GetClientBookings(ctx, &models.GetClientBookingsRequest{
		ClientID: testClientID,
		Status:   ptr.Ptr("completed"),
	})
	require.NoError(t, err)
	require.Len(t, resp.Bookings, 1)
	assert.Equal(t, int64(2), resp.Bookings[0].ID)

	_, err = svc.GetClientBookings(ctx, &models.GetClientBookingsRequest{
		ClientID: testClientID,
		Status:   ptr.Ptr("unknown"),
	})
	assert.ErrorIs(t, err, bookings.ErrInvalidInput)
}

func TestGetArtistBookings_OnlyOwnCalendar(t *testing.T) {
	repo := newFakeBookingRepo(testBooking(1, domain.StatusConfirmed, domain.PaymentDepositPaid))
	svc := newService(repo, &fakeCache{})
	ctx := context.Background()

	resp, err := svc.GetArtistBookings(ctx, &models.GetArtistBookingsRequest{
		ArtistID: testArtistID,
		UserID:   testArtistID,
	})
	require.NoError(t, err)
	assert.Len(t, resp.Bookings, 1)

	// Календарь мастера закрыт для клиентов
	_, err = svc.GetArtistBookings(ctx, &models.GetArtistBookingsRequest{
		ArtistID: testArtistID,
		UserID:   testClientID,
	})
	assert.ErrorIs(t, err, bookings.ErrAccessDenied)
}

func TestConfirm(t *testing.T) {
	t.Run("artist confirms pending booking", func(t *testing.T) {
		repo := newFakeBookingRepo(testBooking(1, domain.StatusPending, domain.PaymentPending))
		svc := newService(repo, &fakeCache{})

		resp, err := svc.Confirm(context.Background(), 1, testArtistID)
		require.NoError(t, err)
		assert.Equal(t, string(domain.StatusConfirmed), resp.Status)
		assert.Equal(t, domain.StatusConfirmed, repo.statusUpdates[1])
	})

	t.Run("client cannot confirm", func(t *testing.T) {
		repo := newFakeBookingRepo(testBooking(1, domain.StatusPending, domain.PaymentPending))
		svc := newService(repo, &fakeCache{})

		_, err := svc.Confirm(context.Background(), 1, testClientID)
		assert.ErrorIs(t, err, bookings.ErrAccessDenied)
	})

	t.Run("terminal statuses are not confirmable", func(t *testing.T) {
		for _, status := range []domain.BookingStatus{
			domain.StatusConfirmed,
			domain.StatusCompleted,
			domain.StatusCancelled,
			domain.StatusRejected,
			domain.StatusNoShow,
		} {
			repo := newFakeBookingRepo(testBooking(1, status, domain.PaymentPending))
			svc := newService(repo, &fakeCache{})

			_, err := svc.Confirm(context.Background(), 1, testArtistID)
			assert.ErrorIs(t, err, bookings.ErrInvalidTransition, "status=%s", status)
		}
	})
}

func TestResolve(t *testing.T) {
	ctx := context.Background()

	t.Run("artist rejects pending booking with reason", func(t *testing.T) {
		repo := newFakeBookingRepo(testBooking(1, domain.StatusPending, domain.PaymentPending))
		cache := &fakeCache{}
		svc := newService(repo, cache)

		resp, err := svc.Resolve(ctx, 1, &models.ResolveBookingRequest{
			UserID:             testArtistID,
			Status:             "rejected",
			CancellationReason: ptr.Ptr("schedule closed"),
		})
		require.NoError(t, err)
		assert.Equal(t, string(domain.StatusRejected), resp.Status)
		assert.Equal(t, "schedule closed", repo.cancellations[1])
		assert.Equal(t, []int64{testArtistID}, cache.invalidated)
	})

	t.Run("client cancels confirmed booking", func(t *testing.T) {
		repo := newFakeBookingRepo(testBooking(1, domain.StatusConfirmed, domain.PaymentDepositPaid))
		cache := &fakeCache{}
		svc := newService(repo, cache)

		resp, err := svc.Resolve(ctx, 1, &models.ResolveBookingRequest{
			UserID: testClientID,
			Status: "cancelled",
		})
		require.NoError(t, err)
		assert.Equal(t, string(domain.StatusCancelled), resp.Status)
		assert.Equal(t, []int64{testArtistID}, cache.invalidated)
	})

	t.Run("client cannot mark no_show", func(t *testing.T) {
		repo := newFakeBookingRepo(testBooking(1, domain.StatusConfirmed, domain.PaymentDepositPaid))
		svc := newService(repo, &fakeCache{})

		_, err := svc.Resolve(ctx, 1, &models.ResolveBookingRequest{
			UserID: testClientID,
			Status: "no_show",
		})
		assert.ErrorIs(t, err, bookings.ErrAccessDenied)
	})

	t.Run("artist completes confirmed booking", func(t *testing.T) {
		repo := newFakeBookingRepo(testBooking(1, domain.StatusConfirmed, domain.PaymentDepositPaid))
		svc := newService(repo, &fakeCache{})

		resp, err := svc.Resolve(ctx, 1, &models.ResolveBookingRequest{
			UserID: testArtistID,
			Status: "completed",
		})
		require.NoError(t, err)
		assert.Equal(t, string(domain.StatusCompleted), resp.Status)
		assert.Equal(t, domain.StatusCompleted, repo.statusUpdates[1])
		assert.Empty(t, repo.cancellations)
	})

	t.Run("cannot reject confirmed booking", func(t *testing.T) {
		repo := newFakeBookingRepo(testBooking(1, domain.StatusConfirmed, domain.PaymentDepositPaid))
		svc := newService(repo, &fakeCache{})

		_, err := svc.Resolve(ctx, 1, &models.ResolveBookingRequest{
			UserID: testArtistID,
			Status: "rejected",
		})
		assert.ErrorIs(t, err, bookings.ErrInvalidTransition)
	})

	t.Run("unknown status", func(t *testing.T) {
		repo := newFakeBookingRepo(testBooking(1, domain.StatusConfirmed, domain.PaymentDepositPaid))
		svc := newService(repo, &fakeCache{})

		_, err := svc.Resolve(ctx, 1, &models.ResolveBookingRequest{
			UserID: testArtistID,
			Status: "archived",
		})
		assert.ErrorIs(t, err, bookings.ErrInvalidStatus)
	})
}

func TestHandlePaymentOutcome(t *testing.T) {
	ctx := context.Background()

	withRef := func(b *domain.Booking, ref string) *domain.Booking {
		b.PaymentRef = &ref
		return b
	}

	t.Run("deposit payment auto-confirms pending booking", func(t *testing.T) {
		repo := newFakeBookingRepo(withRef(testBooking(1, domain.StatusPending, domain.PaymentPending), "sess_1"))
		svc := newService(repo, &fakeCache{})

		err := svc.HandlePaymentOutcome(ctx, "sess_1", domain.PaymentDepositPaid)
		require.NoError(t, err)
		assert.Equal(t, domain.PaymentDepositPaid, repo.paymentUpdates[1])
		assert.Equal(t, domain.StatusConfirmed, repo.statusUpdates[1])
	})

	t.Run("deposit payment does not touch already confirmed booking status", func(t *testing.T) {
		repo := newFakeBookingRepo(withRef(testBooking(1, domain.StatusConfirmed, domain.PaymentPending), "sess_1"))
		svc := newService(repo, &fakeCache{})

		err := svc.HandlePaymentOutcome(ctx, "sess_1", domain.PaymentDepositPaid)
		require.NoError(t, err)
		assert.Equal(t, domain.PaymentDepositPaid, repo.paymentUpdates[1])
		assert.Empty(t, repo.statusUpdates)
	})

	t.Run("redelivery of applied event is a no-op", func(t *testing.T) {
		repo := newFakeBookingRepo(withRef(testBooking(1, domain.StatusConfirmed, domain.PaymentDepositPaid), "sess_1"))
		svc := newService(repo, &fakeCache{})

		err := svc.HandlePaymentOutcome(ctx, "sess_1", domain.PaymentDepositPaid)
		require.NoError(t, err)
		assert.Empty(t, repo.paymentUpdates)
		assert.Empty(t, repo.statusUpdates)
	})

	t.Run("invalid payment transition", func(t *testing.T) {
		repo := newFakeBookingRepo(withRef(testBooking(1, domain.StatusPending, domain.PaymentPending), "sess_1"))
		svc := newService(repo, &fakeCache{})

		// refunded возможен только из deposit_paid / fully_paid
		err := svc.HandlePaymentOutcome(ctx, "sess_1", domain.PaymentRefunded)
		assert.ErrorIs(t, err, bookings.ErrInvalidPaymentTransition)
	})

	t.Run("failed payment keeps booking pending", func(t *testing.T) {
		repo := newFakeBookingRepo(withRef(testBooking(1, domain.StatusPending, domain.PaymentPending), "sess_1"))
		svc := newService(repo, &fakeCache{})

		err := svc.HandlePaymentOutcome(ctx, "sess_1", domain.PaymentFailed)
		require.NoError(t, err)
		assert.Equal(t, domain.PaymentFailed, repo.paymentUpdates[1])
		assert.Empty(t, repo.statusUpdates)
	})

	t.Run("unknown payment ref", func(t *testing.T) {
		repo := newFakeBookingRepo()
		svc := newService(repo, &fakeCache{})

		err := svc.HandlePaymentOutcome(ctx, "sess_missing", domain.PaymentDepositPaid)
		assert.ErrorIs(t, err, bookings.ErrBookingNotFound)
	})
}
