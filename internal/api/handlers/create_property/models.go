package create_property

import (
	"net/http"

	"github.com/m04kA/SMC-RealtyService/internal/api/handlers"
	"github.com/m04kA/SMC-RealtyService/internal/service/properties/models"
	"github.com/m04kA/SMC-RealtyService/pkg/ptr"
)

// ToServiceRequest собирает запрос к сервису из multipart формы
// Поля: name, type, status, description, address, price, bedrooms, bathrooms, area,
// facilities, latitude, longitude; файлы: images
func ToServiceRequest(r *http.Request, userID, role string) (*models.CreatePropertyRequest, error) {
	price, err := handlers.FormFloat(r, "price")
	if err != nil {
		return nil, err
	}
	area, err := handlers.FormFloat(r, "area")
	if err != nil {
		return nil, err
	}
	bedrooms, err := handlers.FormInt(r, "bedrooms")
	if err != nil {
		return nil, err
	}
	bathrooms, err := handlers.FormInt(r, "bathrooms")
	if err != nil {
		return nil, err
	}
	latitude, err := handlers.FormFloat(r, "latitude")
	if err != nil {
		return nil, err
	}
	longitude, err := handlers.FormFloat(r, "longitude")
	if err != nil {
		return nil, err
	}

	return &models.CreatePropertyRequest{
		UserID:      userID,
		Role:        role,
		Name:        r.FormValue("name"),
		Type:        r.FormValue("type"),
		Status:      r.FormValue("status"),
		Description: r.FormValue("description"),
		Address:     r.FormValue("address"),
		Price:       ptr.Value(price),
		Bedrooms:    ptr.Value(bedrooms),
		Bathrooms:   ptr.Value(bathrooms),
		Area:        ptr.Value(area),
		Facilities:  handlers.FormList(r, "facilities"),
		Latitude:    latitude,
		Longitude:   longitude,
	}, nil
}
