package toggle_favorite

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-RealtyService/internal/domain"
	favoriteRepo "github.com/m04kA/SMC-RealtyService/internal/infra/storage/favorite"
	propertyRepo "github.com/m04kA/SMC-RealtyService/internal/infra/storage/property"
)

// UseCase добавляет объект в избранное или убирает его оттуда
type UseCase struct {
	favoriteRepo FavoriteRepository
	propertyRepo PropertyRepository
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(favoriteRepo FavoriteRepository, propertyRepo PropertyRepository, logger Logger) *UseCase {
	return &UseCase{
		favoriteRepo: favoriteRepo,
		propertyRepo: propertyRepo,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute переключает состояние избранного для пары (пользователь, объект)
// Ошибка хранилища никогда не превращается в ответ "не в избранном"
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("ToggleFavorite: validation failed: %v", err)
		return nil, err
	}

	// 2. Ищем текущую запись
	existing, err := uc.favoriteRepo.FindByUserAndProperty(ctx, req.UserID, req.PropertyID)
	if err != nil && !errors.Is(err, favoriteRepo.ErrFavoriteNotFound) {
		uc.logger.Error("ToggleFavorite: failed to find favorite: %v", err)
		return nil, fmt.Errorf("%w: failed to find favorite: %v", ErrInternal, err)
	}

	// 3. Запись есть - удаляем
	if existing != nil {
		err := uc.favoriteRepo.Delete(ctx, existing.ID)
		if err != nil && !errors.Is(err, favoriteRepo.ErrFavoriteNotFound) {
			uc.logger.Error("ToggleFavorite: failed to delete favorite id=%s: %v", existing.ID, err)
			return nil, fmt.Errorf("%w: failed to delete favorite: %v", ErrInternal, err)
		}

		uc.logger.Info("ToggleFavorite: user=%s removed property=%s from favorites", req.UserID, req.PropertyID)
		return &Response{Favorited: false}, nil
	}

	// 4. Записи нет - проверяем объект и создаем
	if _, err := uc.propertyRepo.GetByID(ctx, req.PropertyID); err != nil {
		if errors.Is(err, propertyRepo.ErrPropertyNotFound) {
			uc.logger.Warn("ToggleFavorite: property id=%s not found", req.PropertyID)
			return nil, ErrPropertyNotFound
		}
		uc.logger.Error("ToggleFavorite: failed to get property id=%s: %v", req.PropertyID, err)
		return nil, fmt.Errorf("%w: failed to get property: %v", ErrInternal, err)
	}

	created, err := uc.favoriteRepo.Create(ctx, &domain.Favorite{
		UserID:     req.UserID,
		PropertyID: req.PropertyID,
		CreatedAt:  uc.timeProvider.Now(),
	})
	switch {
	case err == nil:
		uc.logger.Info("ToggleFavorite: user=%s added property=%s to favorites", req.UserID, req.PropertyID)
		return &Response{Favorited: true, Favorite: created}, nil

	case errors.Is(err, favoriteRepo.ErrFavoriteExists):
		// Параллельный запрос успел создать запись
		concurrent, findErr := uc.favoriteRepo.FindByUserAndProperty(ctx, req.UserID, req.PropertyID)
		if findErr != nil {
			uc.logger.Error("ToggleFavorite: failed to re-read favorite: %v", findErr)
			return nil, fmt.Errorf("%w: failed to re-read favorite: %v", ErrInternal, findErr)
		}
		return &Response{Favorited: true, Favorite: concurrent}, nil

	case errors.Is(err, favoriteRepo.ErrPropertyNotFound):
		uc.logger.Warn("ToggleFavorite: property id=%s deleted concurrently", req.PropertyID)
		return nil, ErrPropertyNotFound

	default:
		uc.logger.Error("ToggleFavorite: failed to create favorite: %v", err)
		return nil, fmt.Errorf("%w: failed to create favorite: %v", ErrInternal, err)
	}
}
