package bookings

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-RealtyService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-RealtyService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-RealtyService/internal/service/bookings/models"
	"github.com/m04kA/SMC-RealtyService/pkg/logger"
	"github.com/m04kA/SMC-RealtyService/pkg/ptr"
)

type fakeBookings struct {
	items     map[string]*domain.Booking
	listErr   error
	updateErr error

	lastUser  domain.UserBookingsFilter
	lastAgent domain.AgentBookingsFilter
}

func (f *fakeBookings) GetByID(_ context.Context, id string) (*domain.Booking, error) {
	b, ok := f.items[id]
	if !ok {
		return nil, bookingRepo.ErrBookingNotFound
	}
	copied := *b
	return &copied, nil
}

func (f *fakeBookings) GetByUser(_ context.Context, filter domain.UserBookingsFilter) ([]*domain.Booking, error) {
	f.lastUser = filter
	if f.listErr != nil {
		return nil, f.listErr
	}
	var out []*domain.Booking
	for _, b := range f.items {
		if b.UserID == filter.UserID {
			out = append(out, b)
		}
	}
	return out, nil
}

func (f *fakeBookings) GetByAgent(_ context.Context, filter domain.AgentBookingsFilter) ([]*domain.Booking, error) {
	f.lastAgent = filter
	if f.listErr != nil {
		return nil, f.listErr
	}
	var out []*domain.Booking
	for _, b := range f.items {
		if b.AgentID == filter.AgentID {
			out = append(out, b)
		}
	}
	return out, nil
}

func (f *fakeBookings) UpdateStatus(_ context.Context, id string, from, to domain.BookingStatus, updatedAt time.Time) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	b := f.items[id]
	if b.Status != from {
		return bookingRepo.ErrStatusConflict
	}
	b.Status = to
	b.UpdatedAt = updatedAt
	return nil
}

type fakeProperties struct {
	items map[string]*domain.Property
	err   error
}

func (f fakeProperties) GetByIDs(_ context.Context, ids []string) (map[string]*domain.Property, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := make(map[string]*domain.Property)
	for _, id := range ids {
		if p, ok := f.items[id]; ok {
			out[id] = p
		}
	}
	return out, nil
}

type fakeImages struct{}

func (fakeImages) ViewURL(fileID string) string { return "http://files/" + fileID }

var now = time.Date(2024, 5, 20, 12, 0, 0, 0, time.UTC)

func newTestService(bookings *fakeBookings, properties fakeProperties) *Service {
	s := NewService(bookings, properties, fakeImages{}, logger.NewNop())
	s.now = func() time.Time { return now }
	return s
}

func booking(id string, status domain.BookingStatus) *domain.Booking {
	return &domain.Booking{
		ID:         id,
		PropertyID: "prop-1",
		UserID:     "user-1",
		AgentID:    "agent-1",
		Type:       domain.BookingTypeViewing,
		Status:     status,
		Date:       time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
		TimeSlot:   "09:00-10:00",
	}
}

func TestService_GetByID(t *testing.T) {
	repo := &fakeBookings{items: map[string]*domain.Booking{"b1": booking("b1", domain.StatusPending)}}
	props := fakeProperties{items: map[string]*domain.Property{
		"prop-1": {ID: "prop-1", Name: "Sea view", Images: []string{"img-1"}},
	}}
	s := newTestService(repo, props)

	t.Run("requester sees booking with property summary", func(t *testing.T) {
		resp, err := s.GetByID(context.Background(), "b1", "user-1")
		require.NoError(t, err)
		assert.Equal(t, "2024-06-01", resp.Date)
		require.NotNil(t, resp.Property)
		assert.Equal(t, "Sea view", resp.Property.Name)
		require.NotNil(t, resp.Property.Image)
		assert.Equal(t, "http://files/img-1", *resp.Property.Image)
	})

	t.Run("agent sees booking", func(t *testing.T) {
		_, err := s.GetByID(context.Background(), "b1", "agent-1")
		require.NoError(t, err)
	})

	t.Run("stranger is denied", func(t *testing.T) {
		_, err := s.GetByID(context.Background(), "b1", "user-2")
		assert.ErrorIs(t, err, ErrAccessDenied)
	})

	t.Run("missing booking", func(t *testing.T) {
		_, err := s.GetByID(context.Background(), "nope", "user-1")
		assert.ErrorIs(t, err, ErrBookingNotFound)
	})
}

func TestService_GetUserBookings(t *testing.T) {
	t.Run("deleted property leaves summary empty", func(t *testing.T) {
		b := booking("b1", domain.StatusPending)
		b.PropertyID = "deleted"
		repo := &fakeBookings{items: map[string]*domain.Booking{"b1": b}}
		s := newTestService(repo, fakeProperties{items: map[string]*domain.Property{}})

		resp, err := s.GetUserBookings(context.Background(), &models.GetUserBookingsRequest{UserID: "user-1"})
		require.NoError(t, err)
		require.Len(t, resp.Bookings, 1)
		assert.Nil(t, resp.Bookings[0].Property)
	})

	t.Run("status filter is passed to repository", func(t *testing.T) {
		repo := &fakeBookings{items: map[string]*domain.Booking{}}
		s := newTestService(repo, fakeProperties{})

		resp, err := s.GetUserBookings(context.Background(), &models.GetUserBookingsRequest{
			UserID: "user-1",
			Status: ptr.Ptr("confirmed"),
		})
		require.NoError(t, err)
		assert.Empty(t, resp.Bookings)
		require.NotNil(t, repo.lastUser.Status)
		assert.Equal(t, domain.StatusConfirmed, *repo.lastUser.Status)
	})

	t.Run("invalid status", func(t *testing.T) {
		s := newTestService(&fakeBookings{}, fakeProperties{})
		_, err := s.GetUserBookings(context.Background(), &models.GetUserBookingsRequest{
			UserID: "user-1",
			Status: ptr.Ptr("archived"),
		})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("repository failure", func(t *testing.T) {
		s := newTestService(&fakeBookings{listErr: errors.New("boom")}, fakeProperties{})
		_, err := s.GetUserBookings(context.Background(), &models.GetUserBookingsRequest{UserID: "user-1"})
		assert.ErrorIs(t, err, ErrInternal)
	})

	t.Run("property lookup failure", func(t *testing.T) {
		repo := &fakeBookings{items: map[string]*domain.Booking{"b1": booking("b1", domain.StatusPending)}}
		s := newTestService(repo, fakeProperties{err: errors.New("boom")})
		_, err := s.GetUserBookings(context.Background(), &models.GetUserBookingsRequest{UserID: "user-1"})
		assert.ErrorIs(t, err, ErrInternal)
	})
}

func TestService_GetAgentBookings(t *testing.T) {
	repo := &fakeBookings{items: map[string]*domain.Booking{"b1": booking("b1", domain.StatusConfirmed)}}
	s := newTestService(repo, fakeProperties{items: map[string]*domain.Property{"prop-1": {ID: "prop-1"}}})

	resp, err := s.GetAgentBookings(context.Background(), &models.GetAgentBookingsRequest{
		AgentID:          "agent-1",
		IncludeCancelled: true,
	})
	require.NoError(t, err)
	require.Len(t, resp.Bookings, 1)
	assert.True(t, repo.lastAgent.IncludeCancelled)
	assert.Nil(t, resp.Bookings[0].Property.Image)

	_, err = s.GetAgentBookings(context.Background(), &models.GetAgentBookingsRequest{})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestService_Cancel(t *testing.T) {
	tests := []struct {
		name    string
		status  domain.BookingStatus
		userID  string
		wantErr error
	}{
		{name: "requester cancels pending", status: domain.StatusPending, userID: "user-1"},
		{name: "agent cancels pending", status: domain.StatusPending, userID: "agent-1"},
		{name: "confirmed cannot be cancelled", status: domain.StatusConfirmed, userID: "user-1", wantErr: ErrCannotCancel},
		{name: "stranger", status: domain.StatusPending, userID: "user-2", wantErr: ErrAccessDenied},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &fakeBookings{items: map[string]*domain.Booking{"b1": booking("b1", tt.status)}}
			s := newTestService(repo, fakeProperties{})

			err := s.Cancel(context.Background(), "b1", &models.CancelBookingRequest{UserID: tt.userID})
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Equal(t, tt.status, repo.items["b1"].Status)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, domain.StatusCancelled, repo.items["b1"].Status)
			assert.Equal(t, now, repo.items["b1"].UpdatedAt)
		})
	}

	t.Run("concurrent change", func(t *testing.T) {
		repo := &fakeBookings{
			items:     map[string]*domain.Booking{"b1": booking("b1", domain.StatusPending)},
			updateErr: bookingRepo.ErrStatusConflict,
		}
		s := newTestService(repo, fakeProperties{})
		err := s.Cancel(context.Background(), "b1", &models.CancelBookingRequest{UserID: "user-1"})
		assert.ErrorIs(t, err, ErrCannotCancel)
	})
}

func TestService_UpdateStatus(t *testing.T) {
	tests := []struct {
		name    string
		from    domain.BookingStatus
		to      string
		userID  string
		wantErr error
	}{
		{name: "agent confirms", from: domain.StatusPending, to: "confirmed", userID: "agent-1"},
		{name: "agent completes", from: domain.StatusConfirmed, to: "completed", userID: "agent-1"},
		{name: "agent cancels confirmed", from: domain.StatusConfirmed, to: "cancelled", userID: "agent-1"},
		{name: "requester cannot confirm", from: domain.StatusPending, to: "confirmed", userID: "user-1", wantErr: ErrAccessDenied},
		{name: "pending to completed", from: domain.StatusPending, to: "completed", userID: "agent-1", wantErr: ErrInvalidTransition},
		{name: "completed is terminal", from: domain.StatusCompleted, to: "cancelled", userID: "agent-1", wantErr: ErrInvalidTransition},
		{name: "unknown status", from: domain.StatusPending, to: "archived", userID: "agent-1", wantErr: ErrInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &fakeBookings{items: map[string]*domain.Booking{"b1": booking("b1", tt.from)}}
			s := newTestService(repo, fakeProperties{})

			err := s.UpdateStatus(context.Background(), "b1", &models.UpdateStatusRequest{UserID: tt.userID, Status: tt.to})
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Equal(t, tt.from, repo.items["b1"].Status)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, domain.BookingStatus(tt.to), repo.items["b1"].Status)
		})
	}

	t.Run("repository failure", func(t *testing.T) {
		repo := &fakeBookings{
			items:     map[string]*domain.Booking{"b1": booking("b1", domain.StatusPending)},
			updateErr: errors.New("boom"),
		}
		s := newTestService(repo, fakeProperties{})
		err := s.UpdateStatus(context.Background(), "b1", &models.UpdateStatusRequest{UserID: "agent-1", Status: "confirmed"})
		assert.ErrorIs(t, err, ErrInternal)
	})
}
