package update_property

import (
	"net/http"

	"github.com/m04kA/SMC-RealtyService/internal/api/handlers"
	"github.com/m04kA/SMC-RealtyService/internal/service/properties/models"
)

// ToServiceRequest собирает частичное обновление из multipart формы
// Непереданные поля не меняются; removeImages - ID удаляемых файлов, images - новые файлы
func ToServiceRequest(r *http.Request, userID string) (*models.UpdatePropertyRequest, error) {
	req := &models.UpdatePropertyRequest{
		UserID:       userID,
		Name:         handlers.FormString(r, "name"),
		Type:         handlers.FormString(r, "type"),
		Status:       handlers.FormString(r, "status"),
		Description:  handlers.FormString(r, "description"),
		Address:      handlers.FormString(r, "address"),
		Facilities:   handlers.FormList(r, "facilities"),
		RemoveImages: handlers.FormList(r, "removeImages"),
	}

	var err error
	if req.Price, err = handlers.FormFloat(r, "price"); err != nil {
		return nil, err
	}
	if req.Area, err = handlers.FormFloat(r, "area"); err != nil {
		return nil, err
	}
	if req.Bedrooms, err = handlers.FormInt(r, "bedrooms"); err != nil {
		return nil, err
	}
	if req.Bathrooms, err = handlers.FormInt(r, "bathrooms"); err != nil {
		return nil, err
	}
	if req.Latitude, err = handlers.FormFloat(r, "latitude"); err != nil {
		return nil, err
	}
	if req.Longitude, err = handlers.FormFloat(r, "longitude"); err != nil {
		return nil, err
	}

	return req, nil
}
