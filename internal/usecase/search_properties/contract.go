package search_properties

import (
	"context"

	"github.com/m04kA/SMC-RealtyService/internal/domain"
)

// PropertyRepository интерфейс репозитория объектов
type PropertyRepository interface {
	// Search фильтрует объекты на стороне БД (кроме радиуса), новые первыми
	// limit <= 0 означает отсутствие ограничения
	Search(ctx context.Context, filters domain.PropertyFilters, limit int) ([]*domain.Property, error)
}

// SearchCache кеш результатов поиска
type SearchCache interface {
	SearchKey(ctx context.Context, filters domain.PropertyFilters, limit int) (string, error)
	GetSearch(ctx context.Context, key string) ([]*domain.Property, bool, error)
	SetSearch(ctx context.Context, key string, properties []*domain.Property) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
