package search_properties

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-RealtyService/internal/domain"
)

func TestToUseCaseRequest(t *testing.T) {
	query := url.Values{
		"minPrice":   {"0"},
		"maxPrice":   {"2500.5"},
		"type":       {"Villa"},
		"facilities": {"Wifi,Gym", "Car Parking"},
		"q":          {"beach"},
		"lat":        {"40.7"},
		"lon":        {"-74"},
		"radiusKm":   {"10"},
		"limit":      {"15"},
	}

	req, err := ToUseCaseRequest(query)
	require.NoError(t, err)

	f := req.Filters
	require.NotNil(t, f.PriceMin)
	assert.Equal(t, 0.0, *f.PriceMin)
	assert.Equal(t, 2500.5, *f.PriceMax)
	assert.Equal(t, domain.PropertyTypeVilla, *f.Type)
	assert.Nil(t, f.Status)
	assert.Equal(t, []string{"Wifi", "Gym", "Car Parking"}, f.Facilities)
	assert.Equal(t, "beach", *f.Query)
	require.NotNil(t, f.Location)
	assert.Equal(t, -74.0, f.Location.Longitude)
	assert.Equal(t, 10.0, *f.RadiusKm)
	assert.Equal(t, 15, req.Limit)
}

func TestToUseCaseRequest_Empty(t *testing.T) {
	req, err := ToUseCaseRequest(url.Values{})
	require.NoError(t, err)
	assert.True(t, req.Filters.IsEmpty())
	assert.Zero(t, req.Limit)
}

func TestToUseCaseRequest_Invalid(t *testing.T) {
	for name, query := range map[string]url.Values{
		"price":      {"minPrice": {"cheap"}},
		"half pair":  {"lat": {"40"}},
		"limit":      {"limit": {"ten"}},
		"nan price":  {"minPrice": {"NaN"}},
		"inf radius": {"lat": {"40"}, "lon": {"-74"}, "radiusKm": {"Inf"}},
		"nan lat":    {"lat": {"nan"}, "lon": {"-74"}},
	} {
		t.Run(name, func(t *testing.T) {
			_, err := ToUseCaseRequest(query)
			assert.Error(t, err)
		})
	}
}
