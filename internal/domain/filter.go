package domain

import (
	"time"

	"github.com/m04kA/SMC-RealtyService/pkg/geo"
)

// PropertyFilters критерии поиска объектов
// nil означает отсутствие ограничения, пустой список удобств тоже не ограничивает
type PropertyFilters struct {
	PriceMin   *float64
	PriceMax   *float64
	Type       *PropertyType
	Status     *PropertyStatus
	Facilities []string
	Query      *string    // Подстрока названия, адреса или типа без учета регистра
	Location   *geo.Point // Учитывается только вместе с RadiusKm
	RadiusKm   *float64
}

// IsEmpty сообщает, что ни один критерий не задан
func (f PropertyFilters) IsEmpty() bool {
	return f.PriceMin == nil && f.PriceMax == nil && f.Type == nil && f.Status == nil &&
		len(f.Facilities) == 0 && f.Query == nil && (f.Location == nil || f.RadiusKm == nil)
}

// SlotFilter бронирования на конкретный слот объекта
type SlotFilter struct {
	PropertyID string
	Date       time.Time
	TimeSlot   TimeSlot
}

// UserBookingsFilter фильтр бронирований пользователя
type UserBookingsFilter struct {
	UserID string
	Status *BookingStatus // опционально
}

// AgentBookingsFilter фильтр бронирований агента
type AgentBookingsFilter struct {
	AgentID          string
	Status           *BookingStatus
	IncludeCancelled bool
}
