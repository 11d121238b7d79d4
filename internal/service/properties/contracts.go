package properties

import (
	"context"
	"io"

	"github.com/m04kA/SMC-RealtyService/internal/domain"
)

//go:generate mockgen -destination=../../mocks/file_storage_mock.go -package=mocks github.com/m04kA/SMC-RealtyService/internal/service/properties FileStorage

// PropertyRepository интерфейс репозитория объектов
type PropertyRepository interface {
	Create(ctx context.Context, property *domain.Property) (*domain.Property, error)
	GetByID(ctx context.Context, id string) (*domain.Property, error)
	GetLatest(ctx context.Context, limit int) ([]*domain.Property, error)
	Update(ctx context.Context, property *domain.Property) error
	Delete(ctx context.Context, id string) error
	BackfillStatus(ctx context.Context, status domain.PropertyStatus) (int64, error)
}

// FileStorage хранилище изображений
type FileStorage interface {
	Upload(ctx context.Context, filename, contentType string, r io.Reader) (string, error)
	Delete(ctx context.Context, fileID string) error
	ViewURL(fileID string) string
}

// SearchCache кеш поиска, сбрасываемый при изменении объектов
type SearchCache interface {
	Invalidate(ctx context.Context) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
