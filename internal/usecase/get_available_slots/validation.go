package get_available_slots

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-RealtyService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.PropertyID == "" {
		return fmt.Errorf("%w: propertyID is required", ErrInvalidInput)
	}

	// Проверяем, что дата не является нулевой
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	return nil
}

// isDateInPast проверяет, что дата раньше сегодняшнего дня
func isDateInPast(date, now time.Time) bool {
	return domain.DateOnly(date).Before(domain.DateOnly(now.UTC()))
}
