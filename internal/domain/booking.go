package domain

import "time"

// BookingType тип бронирования
type BookingType string

const (
	BookingTypeViewing  BookingType = "viewing"
	BookingTypeRental   BookingType = "rental"
	BookingTypePurchase BookingType = "purchase"
)

// IsValid проверяет тип бронирования
func (t BookingType) IsValid() bool {
	switch t {
	case BookingTypeViewing, BookingTypeRental, BookingTypePurchase:
		return true
	default:
		return false
	}
}

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	StatusPending   BookingStatus = "pending"
	StatusConfirmed BookingStatus = "confirmed"
	StatusCompleted BookingStatus = "completed"
	StatusCancelled BookingStatus = "cancelled"
)

// IsValid проверяет статус бронирования
func (s BookingStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCompleted, StatusCancelled:
		return true
	default:
		return false
	}
}

// IsTerminal returns true if no transitions are possible from the status
func (s BookingStatus) IsTerminal() bool {
	switch s {
	case StatusCompleted, StatusCancelled:
		return true
	case StatusPending, StatusConfirmed:
		return false
	default:
		return true
	}
}

// CanTransitionTo проверяет переход по графу статусов:
// pending -> confirmed | cancelled, confirmed -> completed | cancelled
func (s BookingStatus) CanTransitionTo(next BookingStatus) bool {
	switch s {
	case StatusPending:
		return next == StatusConfirmed || next == StatusCancelled
	case StatusConfirmed:
		return next == StatusCompleted || next == StatusCancelled
	case StatusCompleted, StatusCancelled:
		return false
	default:
		return false
	}
}

// TimeSlot часовое окно для бронирования, например "09:00-10:00"
type TimeSlot string

// TimeSlots фиксированный набор окон в течение дня
var TimeSlots = []TimeSlot{
	"09:00-10:00",
	"10:00-11:00",
	"11:00-12:00",
	"13:00-14:00",
	"14:00-15:00",
	"15:00-16:00",
	"16:00-17:00",
}

// IsValid проверяет, что слот входит в набор TimeSlots
func (s TimeSlot) IsValid() bool {
	for _, slot := range TimeSlots {
		if slot == s {
			return true
		}
	}
	return false
}

// Booking represents a property booking request
type Booking struct {
	ID         string
	PropertyID string
	UserID     string // Кто запросил бронирование
	AgentID    string
	Type       BookingType
	Status     BookingStatus
	Date       time.Time // Календарная дата (UTC, без времени)
	TimeSlot   TimeSlot
	Notes      *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive returns true if the booking occupies its slot
func (b *Booking) IsActive() bool {
	return b.Status != StatusCancelled
}

// CanBeCancelled returns true if the booking can be cancelled by a participant
func (b *Booking) CanBeCancelled() bool {
	return b.Status == StatusPending
}

// IsParticipant проверяет, что пользователь является заявителем или агентом
func (b *Booking) IsParticipant(userID string) bool {
	return userID != "" && (b.UserID == userID || b.AgentID == userID)
}

// DateOnly отбрасывает время суток, оставляя календарную дату в UTC
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
