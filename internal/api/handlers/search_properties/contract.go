package search_properties

import (
	"context"

	searchProperties "github.com/m04kA/SMC-RealtyService/internal/usecase/search_properties"
)

type SearchPropertiesUseCase interface {
	Execute(ctx context.Context, req *searchProperties.Request) (*searchProperties.Response, error)
}

// ImageURLBuilder строит ссылку на изображение
type ImageURLBuilder interface {
	ViewURL(fileID string) string
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
