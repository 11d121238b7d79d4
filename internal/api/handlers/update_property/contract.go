package update_property

import (
	"context"

	"github.com/m04kA/SMC-RealtyService/internal/service/properties/models"
)

type PropertyService interface {
	Update(ctx context.Context, id string, req *models.UpdatePropertyRequest) (*models.PropertyResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
