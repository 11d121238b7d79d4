package check_availability

import "fmt"

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.PropertyID == "" {
		return fmt.Errorf("%w: propertyID is required", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if !req.TimeSlot.IsValid() {
		return fmt.Errorf("%w: unknown time slot %q", ErrInvalidInput, req.TimeSlot)
	}

	return nil
}
