package create_booking

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/m04kA/SMC-RealtyService/internal/domain"
)

// validateRequest валидирует входные данные запроса
// Отсутствие даты или слота проверяется первым и имеет собственную ошибку
func validateRequest(req *Request) error {
	if req.Date.IsZero() || strings.TrimSpace(string(req.TimeSlot)) == "" {
		return ErrDateOrTimeSlotMissing
	}

	if req.UserID == "" {
		return fmt.Errorf("%w: userID is required", ErrInvalidInput)
	}

	if req.PropertyID == "" {
		return fmt.Errorf("%w: propertyID is required", ErrInvalidInput)
	}

	if !req.Type.IsValid() {
		return fmt.Errorf("%w: unknown booking type %q", ErrInvalidInput, req.Type)
	}

	if !req.TimeSlot.IsValid() {
		return fmt.Errorf("%w: unknown time slot %q", ErrInvalidInput, req.TimeSlot)
	}

	if req.Notes != nil && utf8.RuneCountInString(*req.Notes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes must not exceed %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}

	return nil
}

// isDateInPast проверяет, что дата раньше сегодняшнего дня по UTC (время суток не учитывается)
func isDateInPast(date, now time.Time) bool {
	return domain.DateOnly(date).Before(domain.DateOnly(now.UTC()))
}
