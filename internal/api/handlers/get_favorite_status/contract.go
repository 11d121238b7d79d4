package get_favorite_status

import (
	"context"

	"github.com/m04kA/SMC-RealtyService/internal/service/favorites/models"
)

type FavoriteService interface {
	Status(ctx context.Context, userID, propertyID string) (*models.FavoriteStatusResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
