package reschedule_booking_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	handler "github.com/m04kA/INK-BookingService/internal/api/handlers/reschedule_booking"
	rescheduleBooking "github.com/m04kA/INK-BookingService/internal/usecase/reschedule_booking"
)

func TestFromUseCaseResponse_FieldNames(t *testing.T) {
	startAt := time.Date(2025, 6, 3, 15, 0, 0, 0, time.UTC)

	resp := handler.FromUseCaseResponse(&rescheduleBooking.Response{
		BookingID:       1,
		StartAt:         startAt,
		EndAt:           startAt.Add(2 * time.Hour),
		DurationMinutes: 120,
	})

	raw, err := json.Marshal(resp)
	require.NoError(t, err)

	var fields map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &fields))

	// Поля ответа в том же camelCase, что и у остальных endpoint'ов
	for _, key := range []string{"bookingId", "startAt", "endAt", "durationMinutes"} {
		assert.Contains(t, fields, key)
	}
	assert.NotContains(t, fields, "booking_id")
	assert.Equal(t, float64(120), fields["durationMinutes"])
}
