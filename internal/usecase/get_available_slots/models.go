package get_available_slots

import (
	"time"

	"github.com/m04kA/SMC-RealtyService/internal/domain"
)

// Request модель запроса на получение слотов объекта
type Request struct {
	PropertyID string
	Date       time.Time // Дата без времени
}

// Response модель ответа со списком слотов
type Response struct {
	PropertyID string
	Date       time.Time
	Bookable   bool // false, если статус объекта не допускает бронирование
	Slots      []Slot
}

// Slot модель временного слота
type Slot struct {
	TimeSlot  domain.TimeSlot
	Available bool
}
