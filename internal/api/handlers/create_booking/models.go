package create_booking

import (
	"time"

	"github.com/m04kA/SMC-RealtyService/internal/domain"
	createBooking "github.com/m04kA/SMC-RealtyService/internal/usecase/create_booking"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	PropertyID  string  `json:"propertyId"`
	AgentID     string  `json:"agentId,omitempty"`
	BookingType string  `json:"bookingType"` // viewing, rental, purchase
	Date        string  `json:"date"`        // "2024-06-01"
	TimeSlot    string  `json:"timeSlot"`    // "10:00-11:00"
	Notes       *string `json:"notes,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
// Пустая дата остается нулевой, чтобы use case вернул понятную ошибку
func (r *CreateBookingRequest) ToUseCaseRequest(userID string) (*createBooking.Request, error) {
	var date time.Time
	if r.Date != "" {
		parsed, err := time.Parse(domain.DateFormat, r.Date)
		if err != nil {
			return nil, err
		}
		date = parsed
	}

	return &createBooking.Request{
		UserID:     userID,
		PropertyID: r.PropertyID,
		AgentID:    r.AgentID,
		Type:       domain.BookingType(r.BookingType),
		Date:       date,
		TimeSlot:   domain.TimeSlot(r.TimeSlot),
		Notes:      r.Notes,
	}, nil
}
