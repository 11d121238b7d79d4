package search_properties

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/m04kA/SMC-RealtyService/internal/api/handlers"
	"github.com/m04kA/SMC-RealtyService/internal/domain"
	searchProperties "github.com/m04kA/SMC-RealtyService/internal/usecase/search_properties"
	"github.com/m04kA/SMC-RealtyService/pkg/geo"
)

// ToUseCaseRequest разбирает query параметры поиска
// Параметры: minPrice, maxPrice, type, status, facilities (через запятую или повтором), q, lat, lon, radiusKm, limit
func ToUseCaseRequest(query url.Values) (*searchProperties.Request, error) {
	var (
		req searchProperties.Request
		err error
	)

	if req.Filters.PriceMin, err = parseFloat(query, "minPrice"); err != nil {
		return nil, err
	}
	if req.Filters.PriceMax, err = parseFloat(query, "maxPrice"); err != nil {
		return nil, err
	}
	if req.Filters.RadiusKm, err = parseFloat(query, "radiusKm"); err != nil {
		return nil, err
	}

	if v := query.Get("type"); v != "" {
		t := domain.PropertyType(v)
		req.Filters.Type = &t
	}
	if v := query.Get("status"); v != "" {
		s := domain.PropertyStatus(v)
		req.Filters.Status = &s
	}
	if v := query.Get("q"); v != "" {
		req.Filters.Query = &v
	}

	for _, raw := range query["facilities"] {
		for _, f := range strings.Split(raw, ",") {
			if f = strings.TrimSpace(f); f != "" {
				req.Filters.Facilities = append(req.Filters.Facilities, f)
			}
		}
	}

	lat, err := parseFloat(query, "lat")
	if err != nil {
		return nil, err
	}
	lon, err := parseFloat(query, "lon")
	if err != nil {
		return nil, err
	}
	if (lat == nil) != (lon == nil) {
		return nil, fmt.Errorf("lat and lon must be set together")
	}
	if lat != nil {
		req.Filters.Location = &geo.Point{Latitude: *lat, Longitude: *lon}
	}

	if v := query.Get("limit"); v != "" {
		limit, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid limit: %w", err)
		}
		req.Limit = limit
	}

	return &req, nil
}

func parseFloat(query url.Values, key string) (*float64, error) {
	v := query.Get(key)
	if v == "" {
		return nil, nil
	}
	return handlers.ParseFloat(key, v)
}
