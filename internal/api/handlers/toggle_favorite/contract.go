package toggle_favorite

import (
	"context"

	toggleFavorite "github.com/m04kA/SMC-RealtyService/internal/usecase/toggle_favorite"
)

type ToggleFavoriteUseCase interface {
	Execute(ctx context.Context, req *toggleFavorite.Request) (*toggleFavorite.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
