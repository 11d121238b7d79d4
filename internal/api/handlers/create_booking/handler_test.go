package create_booking

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-RealtyService/internal/api/middleware"
	"github.com/m04kA/SMC-RealtyService/internal/domain"
	createBooking "github.com/m04kA/SMC-RealtyService/internal/usecase/create_booking"
	"github.com/m04kA/SMC-RealtyService/pkg/logger"
)

type fakeUseCase struct {
	err     error
	lastReq *createBooking.Request
}

func (f *fakeUseCase) Execute(_ context.Context, req *createBooking.Request) (*createBooking.Response, error) {
	f.lastReq = req
	if f.err != nil {
		return nil, f.err
	}
	return &createBooking.Response{Booking: &domain.Booking{
		ID:         "b1",
		PropertyID: req.PropertyID,
		UserID:     req.UserID,
		AgentID:    "agent-1",
		Type:       req.Type,
		Status:     domain.StatusPending,
		Date:       req.Date,
		TimeSlot:   req.TimeSlot,
	}}, nil
}

const validBody = `{"propertyId":"p1","bookingType":"viewing","date":"2024-06-02","timeSlot":"10:00-11:00"}`

func doRequest(h *Handler, body string, authorized bool) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/bookings", strings.NewReader(body))
	if authorized {
		req = req.WithContext(middleware.WithUser(req.Context(), "user-1", "user"))
	}
	w := httptest.NewRecorder()
	h.Handle(w, req)
	return w
}

func TestHandler_Created(t *testing.T) {
	uc := &fakeUseCase{}
	h := NewHandler(uc, logger.NewNop())

	w := doRequest(h, validBody, true)

	require.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"pending"`)
	assert.Contains(t, w.Body.String(), `"date":"2024-06-02"`)
	require.NotNil(t, uc.lastReq)
	assert.Equal(t, "user-1", uc.lastReq.UserID)
	assert.Equal(t, time.Date(2024, 6, 2, 0, 0, 0, 0, time.UTC), uc.lastReq.Date)
}

func TestHandler_Errors(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantBody   string
	}{
		{name: "missing slot", err: createBooking.ErrDateOrTimeSlotMissing, wantStatus: http.StatusBadRequest},
		{name: "past date", err: createBooking.ErrDateInPast, wantStatus: http.StatusBadRequest},
		{name: "slot taken", err: createBooking.ErrSlotNotAvailable, wantStatus: http.StatusConflict},
		{name: "property missing", err: createBooking.ErrPropertyNotFound, wantStatus: http.StatusNotFound},
		{
			name:       "sold property",
			err:        fmt.Errorf("wrapped: %w", &createBooking.PropertyNotBookableError{Status: domain.PropertyStatusSold}),
			wantStatus: http.StatusConflict,
			wantBody:   "Sold",
		},
		{name: "invalid input", err: createBooking.ErrInvalidInput, wantStatus: http.StatusBadRequest},
		{name: "internal", err: errors.New("boom"), wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHandler(&fakeUseCase{err: tt.err}, logger.NewNop())
			w := doRequest(h, validBody, true)

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Contains(t, w.Body.String(), `"error"`)
			if tt.wantBody != "" {
				assert.Contains(t, w.Body.String(), tt.wantBody)
			}
		})
	}
}

func TestHandler_BadRequests(t *testing.T) {
	h := NewHandler(&fakeUseCase{}, logger.NewNop())

	assert.Equal(t, http.StatusUnauthorized, doRequest(h, validBody, false).Code)
	assert.Equal(t, http.StatusBadRequest, doRequest(h, `{`, true).Code)
	assert.Equal(t, http.StatusBadRequest, doRequest(h, `{"date":"01.06.2024"}`, true).Code)
}
