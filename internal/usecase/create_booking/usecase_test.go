package create_booking

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-RealtyService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-RealtyService/internal/infra/storage/booking"
	propertyRepo "github.com/m04kA/SMC-RealtyService/internal/infra/storage/property"
	"github.com/m04kA/SMC-RealtyService/internal/usecase/check_availability"
	"github.com/m04kA/SMC-RealtyService/pkg/logger"
	"github.com/m04kA/SMC-RealtyService/pkg/ptr"
)

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

type fakeAvailability struct {
	available bool
	err       error
	calls     int
}

func (f *fakeAvailability) Execute(context.Context, *check_availability.Request) (*check_availability.Response, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return &check_availability.Response{Available: f.available}, nil
}

type fakeProperties struct {
	property *domain.Property
	err      error
}

func (f *fakeProperties) GetByID(context.Context, string) (*domain.Property, error) {
	return f.property, f.err
}

type fakeBookings struct {
	created []*domain.Booking
	err     error
}

func (f *fakeBookings) Create(_ context.Context, b *domain.Booking) (*domain.Booking, error) {
	if f.err != nil {
		return nil, f.err
	}
	copied := *b
	copied.ID = "booking-1"
	f.created = append(f.created, &copied)
	return &copied, nil
}

type inlineTx struct {
	calls     int
	commitErr error
}

func (t *inlineTx) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	t.calls++
	if err := fn(ctx); err != nil {
		return err
	}
	return t.commitErr
}

// now: 2024-05-31 18:30 UTC
var now = time.Date(2024, 5, 31, 18, 30, 0, 0, time.UTC)

type fixture struct {
	availability *fakeAvailability
	properties   *fakeProperties
	bookings     *fakeBookings
	tx           *inlineTx
	uc           *UseCase
}

func newFixture(status domain.PropertyStatus) *fixture {
	f := &fixture{
		availability: &fakeAvailability{available: true},
		properties: &fakeProperties{property: &domain.Property{
			ID: "P", Status: status, AgentID: "agent-1",
		}},
		bookings: &fakeBookings{},
		tx:       &inlineTx{},
	}
	f.uc = NewUseCase(f.bookings, f.properties, f.availability, f.tx, logger.NewNop())
	f.uc.timeProvider = fixedClock{now: now}
	return f
}

func validRequest() *Request {
	return &Request{
		UserID:     "user-1",
		PropertyID: "P",
		Type:       domain.BookingTypeViewing,
		Date:       now.AddDate(0, 0, 1),
		TimeSlot:   "10:00-11:00",
	}
}

func TestExecute_TomorrowViewingSucceedsAsPending(t *testing.T) {
	f := newFixture(domain.PropertyStatusAvailable)

	resp, err := f.uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	b := resp.Booking
	assert.Equal(t, domain.StatusPending, b.Status)
	assert.Equal(t, "user-1", b.UserID)
	assert.Equal(t, "agent-1", b.AgentID)
	assert.Equal(t, domain.TimeSlot("10:00-11:00"), b.TimeSlot)
	assert.Equal(t, time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC), b.Date)
	assert.Equal(t, now, b.CreatedAt)
	assert.Equal(t, now, b.UpdatedAt)
	assert.Equal(t, 1, f.tx.calls)
}

func TestExecute_TodayIsNotPast(t *testing.T) {
	f := newFixture(domain.PropertyStatusAvailable)
	req := validRequest()
	req.Date = time.Date(2024, 5, 31, 0, 0, 0, 0, time.UTC)

	_, err := f.uc.Execute(context.Background(), req)
	assert.NoError(t, err)
}

func TestExecute_PastDateComparedInUTC(t *testing.T) {
	requested := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		now     time.Time
		wantErr error
	}{
		{
			// 2024-06-02 08:00 по местному времени, в UTC еще 1 июня
			name: "today in UTC, tomorrow locally",
			now:  time.Date(2024, 6, 1, 22, 0, 0, 0, time.UTC).In(time.FixedZone("UTC+10", 10*3600)),
		},
		{
			// 2024-06-01 22:00 по местному времени, в UTC уже 2 июня
			name:    "yesterday in UTC, today locally",
			now:     time.Date(2024, 6, 2, 8, 0, 0, 0, time.UTC).In(time.FixedZone("UTC-10", -10*3600)),
			wantErr: ErrDateInPast,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(domain.PropertyStatusAvailable)
			f.uc.timeProvider = fixedClock{now: tt.now}
			req := validRequest()
			req.Date = requested

			_, err := f.uc.Execute(context.Background(), req)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestExecute_PastDateRejectedBeforeAvailability(t *testing.T) {
	f := newFixture(domain.PropertyStatusAvailable)
	req := validRequest()
	req.Date = time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)

	_, err := f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrDateInPast)
	assert.Zero(t, f.availability.calls)
	assert.Zero(t, f.tx.calls)
}

func TestExecute_MissingDateOrSlot(t *testing.T) {
	f := newFixture(domain.PropertyStatusAvailable)

	req := validRequest()
	req.Date = time.Time{}
	_, err := f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrDateOrTimeSlotMissing)

	req = validRequest()
	req.TimeSlot = ""
	_, err = f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrDateOrTimeSlotMissing)

	assert.Zero(t, f.availability.calls)
}

func TestExecute_InvalidInput(t *testing.T) {
	f := newFixture(domain.PropertyStatusAvailable)

	mutations := map[string]func(r *Request){
		"no user":       func(r *Request) { r.UserID = "" },
		"no property":   func(r *Request) { r.PropertyID = "" },
		"bad type":      func(r *Request) { r.Type = "lease" },
		"bad slot":      func(r *Request) { r.TimeSlot = "12:00-13:00" },
		"long notes":    func(r *Request) { r.Notes = ptr.Ptr(string(make([]rune, domain.MaxNotesLength+1))) },
		"foreign agent": func(r *Request) { r.AgentID = "agent-2" },
	}

	for name, mutate := range mutations {
		t.Run(name, func(t *testing.T) {
			req := validRequest()
			mutate(req)
			_, err := f.uc.Execute(context.Background(), req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestExecute_SoldPropertyRejectedWithStatusName(t *testing.T) {
	f := newFixture(domain.PropertyStatusSold)

	_, err := f.uc.Execute(context.Background(), validRequest())
	require.Error(t, err)

	assert.ErrorIs(t, err, ErrPropertyNotBookable)
	var notBookable *PropertyNotBookableError
	require.True(t, errors.As(err, &notBookable))
	assert.Equal(t, domain.PropertyStatusSold, notBookable.Status)
	assert.Contains(t, err.Error(), "Sold")
	assert.Empty(t, f.bookings.created)
}

func TestExecute_NonBookableStatuses(t *testing.T) {
	for _, status := range []domain.PropertyStatus{
		domain.PropertyStatusRented,
		domain.PropertyStatusUnderContract,
		"",
		"Coming Soon",
	} {
		f := newFixture(status)
		_, err := f.uc.Execute(context.Background(), validRequest())
		assert.ErrorIs(t, err, ErrPropertyNotBookable, string(status))
	}
}

func TestExecute_SlotTaken(t *testing.T) {
	f := newFixture(domain.PropertyStatusAvailable)
	f.availability.available = false

	_, err := f.uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrSlotNotAvailable)
	assert.Empty(t, f.bookings.created)

	// Гонка, пойманная уникальным индексом
	f = newFixture(domain.PropertyStatusAvailable)
	f.bookings.err = bookingRepo.ErrSlotTaken
	_, err = f.uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrSlotNotAvailable)
}

func TestExecute_PropertyNotFound(t *testing.T) {
	f := newFixture(domain.PropertyStatusAvailable)
	f.properties.err = propertyRepo.ErrPropertyNotFound

	_, err := f.uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrPropertyNotFound)
}

func TestExecute_CollaboratorFailuresAreInternal(t *testing.T) {
	f := newFixture(domain.PropertyStatusAvailable)
	f.availability.err = errors.New("network")
	_, err := f.uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrInternal)

	f = newFixture(domain.PropertyStatusAvailable)
	f.properties.err = errors.New("network")
	_, err = f.uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrInternal)

	f = newFixture(domain.PropertyStatusAvailable)
	f.bookings.err = errors.New("disk full")
	_, err = f.uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrInternal)

	f = newFixture(domain.PropertyStatusAvailable)
	f.tx.commitErr = errors.New("could not serialize access")
	_, err = f.uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrInternal)
}
