package toggle_favorite

import "fmt"

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.UserID == "" {
		return fmt.Errorf("%w: userID is required", ErrInvalidInput)
	}
	if req.PropertyID == "" {
		return fmt.Errorf("%w: propertyID is required", ErrInvalidInput)
	}
	return nil
}
