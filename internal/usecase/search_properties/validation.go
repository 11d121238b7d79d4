package search_properties

import (
	"fmt"

	"github.com/m04kA/SMC-RealtyService/internal/domain"
)

// validateRequest валидирует фильтр и нормализует лимит
func validateRequest(req *Request) error {
	f := req.Filters

	if f.PriceMin != nil && *f.PriceMin < 0 {
		return fmt.Errorf("%w: priceMin must be non-negative", ErrInvalidInput)
	}
	if f.PriceMax != nil && *f.PriceMax < 0 {
		return fmt.Errorf("%w: priceMax must be non-negative", ErrInvalidInput)
	}
	if f.PriceMin != nil && f.PriceMax != nil && *f.PriceMin > *f.PriceMax {
		return fmt.Errorf("%w: priceMin must not exceed priceMax", ErrInvalidInput)
	}

	if f.Type != nil && !f.Type.IsValid() {
		return fmt.Errorf("%w: unknown property type %q", ErrInvalidInput, *f.Type)
	}
	if f.Status != nil && !f.Status.IsValid() {
		return fmt.Errorf("%w: unknown property status %q", ErrInvalidInput, *f.Status)
	}

	if f.RadiusKm != nil && *f.RadiusKm < 0 {
		return fmt.Errorf("%w: radiusKm must be non-negative", ErrInvalidInput)
	}
	if f.Location != nil {
		if f.Location.Latitude < -90 || f.Location.Latitude > 90 {
			return fmt.Errorf("%w: latitude out of range", ErrInvalidInput)
		}
		if f.Location.Longitude < -180 || f.Location.Longitude > 180 {
			return fmt.Errorf("%w: longitude out of range", ErrInvalidInput)
		}
	}

	if req.Limit == 0 {
		req.Limit = domain.DefaultSearchLimit
	}
	if req.Limit < 1 || req.Limit > domain.MaxSearchLimit {
		return fmt.Errorf("%w: limit must be between 1 and %d", ErrInvalidInput, domain.MaxSearchLimit)
	}

	return nil
}
