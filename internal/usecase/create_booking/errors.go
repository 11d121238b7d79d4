package create_booking

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-RealtyService/internal/domain"
)

var (
	// ErrDateOrTimeSlotMissing возвращается, когда не выбраны дата или слот
	ErrDateOrTimeSlotMissing = errors.New("create_booking: date and time slot are required")

	// ErrDateInPast возвращается, когда дата раньше сегодняшнего дня
	ErrDateInPast = errors.New("create_booking: booking date is in the past")

	// ErrSlotNotAvailable возвращается, когда слот уже занят
	ErrSlotNotAvailable = errors.New("create_booking: time slot is no longer available")

	// ErrPropertyNotFound возвращается, когда объект не найден
	ErrPropertyNotFound = errors.New("create_booking: property not found")

	// ErrPropertyNotBookable возвращается, когда статус объекта не допускает бронирование
	// Конкретный статус передается через *PropertyNotBookableError
	ErrPropertyNotBookable = errors.New("create_booking: property cannot be booked")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)

// PropertyNotBookableError отказ с указанием текущего статуса объекта
type PropertyNotBookableError struct {
	Status domain.PropertyStatus
}

func (e *PropertyNotBookableError) Error() string {
	status := string(e.Status)
	if status == "" {
		status = "unknown"
	}
	return fmt.Sprintf("property cannot be booked as it is currently %s", status)
}

// Is позволяет сравнивать через errors.Is(err, ErrPropertyNotBookable)
func (e *PropertyNotBookableError) Is(target error) bool {
	return target == ErrPropertyNotBookable
}
