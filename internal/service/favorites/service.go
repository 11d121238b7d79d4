package favorites

import (
	"context"
	"errors"
	"fmt"

	favoriteRepo "github.com/m04kA/SMC-RealtyService/internal/infra/storage/favorite"
	"github.com/m04kA/SMC-RealtyService/internal/service/favorites/models"
	propertyModels "github.com/m04kA/SMC-RealtyService/internal/service/properties/models"
)

// Service сервис избранного
type Service struct {
	favoriteRepo FavoriteRepository
	propertyRepo PropertyRepository
	images       ImageURLBuilder
	logger       Logger
}

// NewService создает новый экземпляр сервиса избранного
func NewService(favoriteRepo FavoriteRepository, propertyRepo PropertyRepository, images ImageURLBuilder, logger Logger) *Service {
	return &Service{
		favoriteRepo: favoriteRepo,
		propertyRepo: propertyRepo,
		images:       images,
		logger:       logger,
	}
}

// List возвращает избранные объекты пользователя, новые первыми
// Записи, чей объект уже удален, пропускаются
func (s *Service) List(ctx context.Context, userID string) (*models.FavoriteListResponse, error) {
	s.logger.Info("List: fetching favorites for user=%s", userID)

	if userID == "" {
		return nil, fmt.Errorf("%w: userID is required", ErrInvalidInput)
	}

	favorites, err := s.favoriteRepo.GetByUser(ctx, userID)
	if err != nil {
		s.logger.Error("List: favorite repository error for user=%s: %v", userID, err)
		return nil, fmt.Errorf("%w: List - favorite repository error: %v", ErrInternal, err)
	}

	resp := &models.FavoriteListResponse{Favorites: make([]models.FavoriteResponse, 0, len(favorites))}
	if len(favorites) == 0 {
		return resp, nil
	}

	ids := make([]string, 0, len(favorites))
	for _, f := range favorites {
		ids = append(ids, f.PropertyID)
	}

	properties, err := s.propertyRepo.GetByIDs(ctx, ids)
	if err != nil {
		s.logger.Error("List: property repository error for user=%s: %v", userID, err)
		return nil, fmt.Errorf("%w: List - property repository error: %v", ErrInternal, err)
	}

	for _, f := range favorites {
		property, ok := properties[f.PropertyID]
		if !ok {
			s.logger.Warn("List: property id=%s of favorite id=%s no longer exists", f.PropertyID, f.ID)
			continue
		}

		resp.Favorites = append(resp.Favorites, models.FavoriteResponse{
			ID:         f.ID,
			PropertyID: f.PropertyID,
			CreatedAt:  f.CreatedAt,
			Property:   *propertyModels.FromDomainProperty(property, s.images.ViewURL),
		})
	}

	s.logger.Info("List: successfully fetched %d favorites for user=%s", len(resp.Favorites), userID)
	return resp, nil
}

// Status сообщает, добавлен ли объект в избранное пользователя
// Ошибка хранилища возвращается как ошибка, а не как "не в избранном"
func (s *Service) Status(ctx context.Context, userID, propertyID string) (*models.FavoriteStatusResponse, error) {
	if userID == "" || propertyID == "" {
		return nil, fmt.Errorf("%w: userID and propertyID are required", ErrInvalidInput)
	}

	resp := &models.FavoriteStatusResponse{PropertyID: propertyID}

	favorite, err := s.favoriteRepo.FindByUserAndProperty(ctx, userID, propertyID)
	if err != nil {
		if errors.Is(err, favoriteRepo.ErrFavoriteNotFound) {
			return resp, nil
		}
		s.logger.Error("Status: favorite repository error for user=%s, property=%s: %v", userID, propertyID, err)
		return nil, fmt.Errorf("%w: Status - favorite repository error: %v", ErrInternal, err)
	}

	resp.Favorited = true
	resp.FavoriteID = &favorite.ID
	return resp, nil
}
