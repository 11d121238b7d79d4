package create_booking

import (
	"time"

	"github.com/m04kA/SMC-RealtyService/internal/domain"
)

// Request модель запроса на создание бронирования
type Request struct {
	UserID     string             // ID текущего пользователя
	PropertyID string             // ID объекта
	AgentID    string             // ID агента (пустой - берется из объекта)
	Type       domain.BookingType // viewing, rental или purchase
	Date       time.Time          // Дата бронирования (время суток игнорируется)
	TimeSlot   domain.TimeSlot    // Например "10:00-11:00"
	Notes      *string            // Дополнительные заметки (опционально)
}

// Response модель ответа с созданным бронированием
type Response struct {
	Booking *domain.Booking
}
