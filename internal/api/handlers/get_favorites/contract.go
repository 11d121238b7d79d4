package get_favorites

import (
	"context"

	"github.com/m04kA/SMC-RealtyService/internal/service/favorites/models"
)

type FavoriteService interface {
	List(ctx context.Context, userID string) (*models.FavoriteListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
