package check_availability

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-RealtyService/internal/domain"
	"github.com/m04kA/SMC-RealtyService/pkg/logger"
)

// memoryBookings считает бронирования так же, как репозиторий: точное совпадение и статус не cancelled
type memoryBookings struct {
	bookings []*domain.Booking
	err      error
}

func (m *memoryBookings) CountActiveBySlot(_ context.Context, f domain.SlotFilter) (int, error) {
	if m.err != nil {
		return 0, m.err
	}
	count := 0
	for _, b := range m.bookings {
		if b.PropertyID == f.PropertyID && b.Date.Equal(f.Date) && b.TimeSlot == f.TimeSlot && b.IsActive() {
			count++
		}
	}
	return count, nil
}

var june1 = time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

func TestExecute_OccupiedAndFreeSlots(t *testing.T) {
	repo := &memoryBookings{bookings: []*domain.Booking{
		{PropertyID: "P", Date: june1, TimeSlot: "09:00-10:00", Status: domain.StatusPending},
	}}
	uc := NewUseCase(repo, logger.NewNop())

	resp, err := uc.Execute(context.Background(), &Request{PropertyID: "P", Date: june1, TimeSlot: "09:00-10:00"})
	require.NoError(t, err)
	assert.False(t, resp.Available)

	resp, err = uc.Execute(context.Background(), &Request{PropertyID: "P", Date: june1, TimeSlot: "10:00-11:00"})
	require.NoError(t, err)
	assert.True(t, resp.Available)
}

func TestExecute_CancelledBookingsIgnored(t *testing.T) {
	repo := &memoryBookings{bookings: []*domain.Booking{
		{PropertyID: "P", Date: june1, TimeSlot: "09:00-10:00", Status: domain.StatusCancelled},
	}}
	uc := NewUseCase(repo, logger.NewNop())

	resp, err := uc.Execute(context.Background(), &Request{PropertyID: "P", Date: june1, TimeSlot: "09:00-10:00"})
	require.NoError(t, err)
	assert.True(t, resp.Available)
}

func TestExecute_TimeOfDayIgnored(t *testing.T) {
	repo := &memoryBookings{bookings: []*domain.Booking{
		{PropertyID: "P", Date: june1, TimeSlot: "09:00-10:00", Status: domain.StatusConfirmed},
	}}
	uc := NewUseCase(repo, logger.NewNop())

	resp, err := uc.Execute(context.Background(), &Request{
		PropertyID: "P",
		Date:       june1.Add(15 * time.Hour),
		TimeSlot:   "09:00-10:00",
	})
	require.NoError(t, err)
	assert.False(t, resp.Available)
}

func TestExecute_QueryFailureIsNotAvailable(t *testing.T) {
	uc := NewUseCase(&memoryBookings{err: errors.New("timeout")}, logger.NewNop())

	resp, err := uc.Execute(context.Background(), &Request{PropertyID: "P", Date: june1, TimeSlot: "09:00-10:00"})
	assert.Nil(t, resp)
	assert.ErrorIs(t, err, ErrInternal)
}

func TestExecute_InvalidInput(t *testing.T) {
	uc := NewUseCase(&memoryBookings{}, logger.NewNop())

	for _, req := range []*Request{
		{Date: june1, TimeSlot: "09:00-10:00"},
		{PropertyID: "P", TimeSlot: "09:00-10:00"},
		{PropertyID: "P", Date: june1, TimeSlot: "12:00-13:00"},
	} {
		_, err := uc.Execute(context.Background(), req)
		assert.ErrorIs(t, err, ErrInvalidInput)
	}
}
