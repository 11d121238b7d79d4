package properties

import (
	"fmt"
	"strings"

	"github.com/m04kA/SMC-RealtyService/internal/domain"
	"github.com/m04kA/SMC-RealtyService/internal/service/properties/models"
	"github.com/m04kA/SMC-RealtyService/pkg/geo"
	"github.com/m04kA/SMC-RealtyService/pkg/ptr"
)

func validateCreate(req *models.CreatePropertyRequest) error {
	if req.UserID == "" {
		return fmt.Errorf("%w: userID is required", ErrInvalidInput)
	}

	if err := validateName(req.Name); err != nil {
		return err
	}

	if !domain.PropertyType(req.Type).IsValid() {
		return fmt.Errorf("%w: unknown property type %q", ErrInvalidInput, req.Type)
	}

	if req.Status != "" && !domain.PropertyStatus(req.Status).IsValid() {
		return fmt.Errorf("%w: unknown property status %q", ErrInvalidInput, req.Status)
	}

	if len(req.Description) > domain.MaxDescriptionLength {
		return fmt.Errorf("%w: description exceeds %d characters", ErrInvalidInput, domain.MaxDescriptionLength)
	}

	if err := validateNumbers(req.Price, req.Bedrooms, req.Bathrooms, req.Area); err != nil {
		return err
	}

	if len(req.Images) > domain.MaxImagesPerProperty {
		return fmt.Errorf("%w: at most %d images allowed", ErrInvalidInput, domain.MaxImagesPerProperty)
	}

	_, err := buildLocation(req.Latitude, req.Longitude)
	return err
}

func validateUpdate(req *models.UpdatePropertyRequest) error {
	if req.UserID == "" {
		return fmt.Errorf("%w: userID is required", ErrInvalidInput)
	}

	if req.Name != nil {
		if err := validateName(*req.Name); err != nil {
			return err
		}
	}

	if req.Type != nil && !domain.PropertyType(*req.Type).IsValid() {
		return fmt.Errorf("%w: unknown property type %q", ErrInvalidInput, *req.Type)
	}

	if req.Status != nil && !domain.PropertyStatus(*req.Status).IsValid() {
		return fmt.Errorf("%w: unknown property status %q", ErrInvalidInput, *req.Status)
	}

	if req.Description != nil && len(*req.Description) > domain.MaxDescriptionLength {
		return fmt.Errorf("%w: description exceeds %d characters", ErrInvalidInput, domain.MaxDescriptionLength)
	}

	if err := validateNumbers(
		ptr.Value(req.Price), ptr.Value(req.Bedrooms), ptr.Value(req.Bathrooms), ptr.Value(req.Area),
	); err != nil {
		return err
	}

	if (req.Latitude == nil) != (req.Longitude == nil) {
		return fmt.Errorf("%w: latitude and longitude must be set together", ErrInvalidInput)
	}

	_, err := buildLocation(req.Latitude, req.Longitude)
	return err
}

func validateName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if len(name) > domain.MaxNameLength {
		return fmt.Errorf("%w: name exceeds %d characters", ErrInvalidInput, domain.MaxNameLength)
	}
	return nil
}

func validateNumbers(price float64, bedrooms, bathrooms int, area float64) error {
	if price < 0 {
		return fmt.Errorf("%w: price must be non-negative", ErrInvalidInput)
	}
	if bedrooms < 0 || bathrooms < 0 {
		return fmt.Errorf("%w: bedrooms and bathrooms must be non-negative", ErrInvalidInput)
	}
	if area < 0 {
		return fmt.Errorf("%w: area must be non-negative", ErrInvalidInput)
	}
	return nil
}

// buildLocation координаты задаются только парой
func buildLocation(lat, lon *float64) (*geo.Point, error) {
	if lat == nil && lon == nil {
		return nil, nil
	}
	if lat == nil || lon == nil {
		return nil, fmt.Errorf("%w: latitude and longitude must be set together", ErrInvalidInput)
	}
	if *lat < -90 || *lat > 90 || *lon < -180 || *lon > 180 {
		return nil, fmt.Errorf("%w: coordinates out of range", ErrInvalidInput)
	}
	return &geo.Point{Latitude: *lat, Longitude: *lon}, nil
}
