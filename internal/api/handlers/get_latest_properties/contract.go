package get_latest_properties

import (
	"context"

	"github.com/m04kA/SMC-RealtyService/internal/service/properties/models"
)

type PropertyService interface {
	GetLatest(ctx context.Context, limit int) (*models.PropertyListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
