package search_properties

import "github.com/m04kA/SMC-RealtyService/internal/domain"

// Request модель запроса поиска
type Request struct {
	Filters domain.PropertyFilters
	Limit   int // 0 означает значение по умолчанию
}

// Response модель ответа поиска
type Response struct {
	Properties []*domain.Property
}
