package check_availability

import (
	"time"

	"github.com/m04kA/SMC-RealtyService/internal/domain"
)

// Request модель запроса проверки слота
type Request struct {
	PropertyID string
	Date       time.Time
	TimeSlot   domain.TimeSlot
}

// Response модель ответа
type Response struct {
	Available bool
}
