package models

import (
	"errors"
	"time"

	"github.com/m04kA/SMC-RealtyService/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid booking status")
)

// Request модели

// CancelBookingRequest запрос на отмену бронирования
type CancelBookingRequest struct {
	UserID string `json:"-"`
}

// UpdateStatusRequest запрос на обновление статуса бронирования
type UpdateStatusRequest struct {
	UserID string `json:"-"`
	Status string `json:"status"`
}

// GetUserBookingsRequest запрос на получение бронирований пользователя
type GetUserBookingsRequest struct {
	UserID string
	Status *string
}

// GetAgentBookingsRequest запрос на получение бронирований агента
type GetAgentBookingsRequest struct {
	AgentID          string
	Status           *string
	IncludeCancelled bool
}

// Response модели

// PropertySummary краткие данные объекта в списке бронирований
type PropertySummary struct {
	ID      string  `json:"id"`
	Name    string  `json:"name"`
	Address string  `json:"address"`
	Type    string  `json:"type"`
	Status  string  `json:"status"`
	Price   float64 `json:"price"`
	Image   *string `json:"image,omitempty"` // Ссылка на первое изображение
}

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID         string  `json:"id"`
	PropertyID string  `json:"propertyId"`
	UserID     string  `json:"userId"`
	AgentID    string  `json:"agentId"`
	Type       string  `json:"bookingType"`
	Status     string  `json:"status"`
	Date       string  `json:"date"`     // "2024-06-01"
	TimeSlot   string  `json:"timeSlot"` // "10:00-11:00"
	Notes      *string `json:"notes,omitempty"`

	// Отсутствует, если объект удален
	Property *PropertySummary `json:"property,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BookingListResponse ответ со списком бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

// Методы конвертации

// FromDomainBooking конвертирует domain модель в DTO
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	if b == nil {
		return nil
	}

	return &BookingResponse{
		ID:         b.ID,
		PropertyID: b.PropertyID,
		UserID:     b.UserID,
		AgentID:    b.AgentID,
		Type:       string(b.Type),
		Status:     string(b.Status),
		Date:       b.Date.Format(domain.DateFormat),
		TimeSlot:   string(b.TimeSlot),
		Notes:      b.Notes,
		CreatedAt:  b.CreatedAt,
		UpdatedAt:  b.UpdatedAt,
	}
}

// FromDomainProperty строит краткое описание объекта
func FromDomainProperty(p *domain.Property, imageURL func(string) string) *PropertySummary {
	if p == nil {
		return nil
	}

	summary := &PropertySummary{
		ID:      p.ID,
		Name:    p.Name,
		Address: p.Address,
		Type:    string(p.Type),
		Status:  string(p.Status),
		Price:   p.Price,
	}
	if len(p.Images) > 0 && imageURL != nil {
		url := imageURL(p.Images[0])
		summary.Image = &url
	}
	return summary
}

// ToDomainBookingStatus конвертирует строку в domain.BookingStatus с валидацией
func ToDomainBookingStatus(status string) (domain.BookingStatus, error) {
	s := domain.BookingStatus(status)
	if !s.IsValid() {
		return "", ErrInvalidStatus
	}
	return s, nil
}
