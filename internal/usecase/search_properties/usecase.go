package search_properties

import (
	"context"
	"fmt"

	"github.com/m04kA/SMC-RealtyService/internal/domain"
)

// UseCase use case поиска объектов недвижимости
type UseCase struct {
	propertyRepo PropertyRepository
	cache        SearchCache
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(propertyRepo PropertyRepository, cache SearchCache, logger Logger) *UseCase {
	return &UseCase{
		propertyRepo: propertyRepo,
		cache:        cache,
		logger:       logger,
	}
}

// Execute выполняет поиск по фильтру
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("SearchProperties: validation failed: %v", err)
		return nil, err
	}

	// 2. Пробуем кеш; ошибка кеша не мешает поиску
	// Ключ фиксируется до запроса в БД, пустой ключ отключает кеш
	cacheKey, err := uc.cache.SearchKey(ctx, req.Filters, req.Limit)
	if err != nil {
		uc.logger.Warn("SearchProperties: cache key failed: %v", err)
		cacheKey = ""
	}
	if cacheKey != "" {
		cached, ok, err := uc.cache.GetSearch(ctx, cacheKey)
		if err != nil {
			uc.logger.Warn("SearchProperties: cache read failed: %v", err)
		} else if ok {
			return &Response{Properties: cached}, nil
		}
	}

	// 3. Фильтрация на стороне БД
	// При поиске по радиусу лимит применяется после проверки расстояния
	repoLimit := req.Limit
	if req.Filters.Location != nil && req.Filters.RadiusKm != nil {
		repoLimit = 0
	}

	properties, err := uc.propertyRepo.Search(ctx, req.Filters, repoLimit)
	if err != nil {
		uc.logger.Error("SearchProperties: failed to search properties: %v", err)
		return nil, fmt.Errorf("%w: failed to search properties: %v", ErrInternal, err)
	}

	// 4. Локальная проверка всех критериев и усечение до лимита
	result := make([]*domain.Property, 0, min(len(properties), req.Limit))
	for _, p := range properties {
		if !Matches(p, req.Filters) {
			continue
		}
		result = append(result, p)
		if len(result) == req.Limit {
			break
		}
	}

	if cacheKey != "" {
		if err := uc.cache.SetSearch(ctx, cacheKey, result); err != nil {
			uc.logger.Warn("SearchProperties: cache write failed: %v", err)
		}
	}

	uc.logger.Info("SearchProperties: found %d properties (scanned %d)", len(result), len(properties))

	return &Response{Properties: result}, nil
}
