package properties

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/gammazero/workerpool"

	"github.com/m04kA/SMC-RealtyService/internal/domain"
	propertyRepo "github.com/m04kA/SMC-RealtyService/internal/infra/storage/property"
	"github.com/m04kA/SMC-RealtyService/internal/service/properties/models"
	"github.com/m04kA/SMC-RealtyService/pkg/jwtauth"
)

const defaultWorkers = 4

// Service сервис управления объектами недвижимости
type Service struct {
	repo    PropertyRepository
	files   FileStorage
	cache   SearchCache
	logger  Logger
	workers int
	now     func() time.Time
}

// NewService создает новый экземпляр сервиса объектов
// workers ограничивает число параллельных операций с файлами
func NewService(repo PropertyRepository, files FileStorage, cache SearchCache, logger Logger, workers int) *Service {
	if workers <= 0 {
		workers = defaultWorkers
	}

	return &Service{
		repo:    repo,
		files:   files,
		cache:   cache,
		logger:  logger,
		workers: workers,
		now:     time.Now,
	}
}

// Create создает объект; доступно только агентам
// Изображения загружаются параллельно, при ошибке загруженные файлы удаляются
func (s *Service) Create(ctx context.Context, req *models.CreatePropertyRequest) (*models.PropertyResponse, error) {
	s.logger.Info("Create: creating property name=%q by user=%s", req.Name, req.UserID)

	if req.Role != jwtauth.RoleAgent {
		s.logger.Warn("Create: user=%s with role=%q is not an agent", req.UserID, req.Role)
		return nil, ErrAccessDenied
	}

	if err := validateCreate(req); err != nil {
		s.logger.Warn("Create: validation failed for user=%s: %v", req.UserID, err)
		return nil, err
	}

	location, _ := buildLocation(req.Latitude, req.Longitude)
	status := domain.PropertyStatus(req.Status)
	if status == "" {
		status = domain.PropertyStatusAvailable
	}

	imageIDs, err := s.uploadImages(ctx, req.Images)
	if err != nil {
		return nil, err
	}

	now := s.now()
	created, err := s.repo.Create(ctx, &domain.Property{
		Name:        strings.TrimSpace(req.Name),
		Type:        domain.PropertyType(req.Type),
		Status:      status,
		Description: req.Description,
		Address:     req.Address,
		Price:       req.Price,
		Bedrooms:    req.Bedrooms,
		Bathrooms:   req.Bathrooms,
		Area:        req.Area,
		Facilities:  req.Facilities,
		Images:      imageIDs,
		AgentID:     req.UserID,
		Location:    location,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	if err != nil {
		s.logger.Error("Create: repository error for user=%s: %v", req.UserID, err)
		s.deleteImages(context.WithoutCancel(ctx), imageIDs)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	s.invalidate(ctx, "Create")

	s.logger.Info("Create: successfully created property id=%s with %d images", created.ID, len(imageIDs))
	return models.FromDomainProperty(created, s.files.ViewURL), nil
}

// Update частично обновляет объект; доступно только агенту-владельцу
func (s *Service) Update(ctx context.Context, id string, req *models.UpdatePropertyRequest) (*models.PropertyResponse, error) {
	s.logger.Info("Update: updating property id=%s by user=%s", id, req.UserID)

	if err := validateUpdate(req); err != nil {
		s.logger.Warn("Update: validation failed for property id=%s: %v", id, err)
		return nil, err
	}

	property, err := s.getOwned(ctx, "Update", id, req.UserID)
	if err != nil {
		return nil, err
	}

	kept, removed, err := splitImages(property.Images, req.RemoveImages)
	if err != nil {
		s.logger.Warn("Update: %v for property id=%s", err, id)
		return nil, err
	}
	if len(kept)+len(req.NewImages) > domain.MaxImagesPerProperty {
		return nil, fmt.Errorf("%w: at most %d images allowed", ErrInvalidInput, domain.MaxImagesPerProperty)
	}

	applyUpdate(property, req)

	uploaded, err := s.uploadImages(ctx, req.NewImages)
	if err != nil {
		return nil, err
	}
	property.Images = append(kept, uploaded...)
	property.UpdatedAt = s.now()

	if err := s.repo.Update(ctx, property); err != nil {
		s.deleteImages(context.WithoutCancel(ctx), uploaded)
		if errors.Is(err, propertyRepo.ErrPropertyNotFound) {
			s.logger.Warn("Update: property id=%s deleted concurrently", id)
			return nil, ErrPropertyNotFound
		}
		s.logger.Error("Update: repository error for property id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	s.deleteImages(ctx, removed)
	s.invalidate(ctx, "Update")

	s.logger.Info("Update: successfully updated property id=%s", id)
	return models.FromDomainProperty(property, s.files.ViewURL), nil
}

// Delete удаляет объект и его изображения; доступно только агенту-владельцу
func (s *Service) Delete(ctx context.Context, id string, userID string) error {
	s.logger.Info("Delete: deleting property id=%s by user=%s", id, userID)

	property, err := s.getOwned(ctx, "Delete", id, userID)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, propertyRepo.ErrPropertyNotFound) {
			return ErrPropertyNotFound
		}
		s.logger.Error("Delete: repository error for property id=%s: %v", id, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	s.deleteImages(ctx, property.Images)
	s.invalidate(ctx, "Delete")

	s.logger.Info("Delete: successfully deleted property id=%s", id)
	return nil
}

// GetByID получает объект по ID
func (s *Service) GetByID(ctx context.Context, id string) (*models.PropertyResponse, error) {
	property, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, propertyRepo.ErrPropertyNotFound) {
			return nil, ErrPropertyNotFound
		}
		s.logger.Error("GetByID: repository error for property id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainProperty(property, s.files.ViewURL), nil
}

// GetLatest возвращает последние добавленные объекты
func (s *Service) GetLatest(ctx context.Context, limit int) (*models.PropertyListResponse, error) {
	if limit == 0 {
		limit = domain.DefaultLatestLimit
	}
	if limit < 0 || limit > domain.MaxLatestLimit {
		return nil, fmt.Errorf("%w: limit must be between 1 and %d", ErrInvalidInput, domain.MaxLatestLimit)
	}

	properties, err := s.repo.GetLatest(ctx, limit)
	if err != nil {
		s.logger.Error("GetLatest: repository error: %v", err)
		return nil, fmt.Errorf("%w: GetLatest - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainPropertyList(properties, s.files.ViewURL), nil
}

// BackfillStatus проставляет Available объектам без статуса и возвращает их количество
func (s *Service) BackfillStatus(ctx context.Context) (int64, error) {
	updated, err := s.repo.BackfillStatus(ctx, domain.PropertyStatusAvailable)
	if err != nil {
		s.logger.Error("BackfillStatus: repository error: %v", err)
		return 0, fmt.Errorf("%w: BackfillStatus - repository error: %v", ErrInternal, err)
	}

	if updated > 0 {
		s.invalidate(ctx, "BackfillStatus")
	}

	s.logger.Info("BackfillStatus: set status %s on %d properties", domain.PropertyStatusAvailable, updated)
	return updated, nil
}

// Вспомогательные методы

func (s *Service) getOwned(ctx context.Context, op, id, userID string) (*domain.Property, error) {
	property, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, propertyRepo.ErrPropertyNotFound) {
			s.logger.Warn("%s: property id=%s not found", op, id)
			return nil, ErrPropertyNotFound
		}
		s.logger.Error("%s: repository error for property id=%s: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}

	if !property.IsOwnedBy(userID) {
		s.logger.Warn("%s: user=%s is not the owner of property id=%s", op, userID, id)
		return nil, ErrAccessDenied
	}

	return property, nil
}

// uploadImages загружает изображения пулом воркеров, сохраняя порядок
// При любой ошибке уже загруженные файлы удаляются
func (s *Service) uploadImages(ctx context.Context, images []models.ImageUpload) ([]string, error) {
	if len(images) == 0 {
		return nil, nil
	}

	ids := make([]string, len(images))
	var (
		mu       sync.Mutex
		firstErr error
	)

	wp := workerpool.New(min(s.workers, len(images)))
	for i, img := range images {
		wp.Submit(func() {
			id, err := s.files.Upload(ctx, img.Filename, img.ContentType, img.Content)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				if firstErr == nil {
					firstErr = err
				}
				return
			}
			ids[i] = id
		})
	}
	wp.StopWait()

	if firstErr != nil {
		s.logger.Error("uploadImages: failed to upload images: %v", firstErr)
		uploaded := make([]string, 0, len(ids))
		for _, id := range ids {
			if id != "" {
				uploaded = append(uploaded, id)
			}
		}
		s.deleteImages(context.WithoutCancel(ctx), uploaded)
		return nil, fmt.Errorf("%w: %v", ErrImageUpload, firstErr)
	}

	return ids, nil
}

// deleteImages удаляет файлы параллельно; ошибки только логируются
func (s *Service) deleteImages(ctx context.Context, ids []string) {
	if len(ids) == 0 {
		return
	}

	wp := workerpool.New(min(s.workers, len(ids)))
	for _, id := range ids {
		wp.Submit(func() {
			if err := s.files.Delete(ctx, id); err != nil {
				s.logger.Warn("deleteImages: failed to delete file id=%s: %v", id, err)
			}
		})
	}
	wp.StopWait()
}

func (s *Service) invalidate(ctx context.Context, op string) {
	if err := s.cache.Invalidate(ctx); err != nil {
		s.logger.Warn("%s: failed to invalidate search cache: %v", op, err)
	}
}

// splitImages делит текущие изображения на оставшиеся и удаляемые
func splitImages(current, remove []string) (kept, removed []string, err error) {
	toRemove := make(map[string]struct{}, len(remove))
	for _, id := range remove {
		toRemove[id] = struct{}{}
	}

	kept = make([]string, 0, len(current))
	for _, id := range current {
		if _, ok := toRemove[id]; ok {
			removed = append(removed, id)
			delete(toRemove, id)
			continue
		}
		kept = append(kept, id)
	}

	if len(toRemove) > 0 {
		return nil, nil, fmt.Errorf("%w: image does not belong to property", ErrInvalidInput)
	}
	return kept, removed, nil
}

func applyUpdate(p *domain.Property, req *models.UpdatePropertyRequest) {
	if req.Name != nil {
		p.Name = strings.TrimSpace(*req.Name)
	}
	if req.Type != nil {
		p.Type = domain.PropertyType(*req.Type)
	}
	if req.Status != nil {
		p.Status = domain.PropertyStatus(*req.Status)
	}
	if req.Description != nil {
		p.Description = *req.Description
	}
	if req.Address != nil {
		p.Address = *req.Address
	}
	if req.Price != nil {
		p.Price = *req.Price
	}
	if req.Bedrooms != nil {
		p.Bedrooms = *req.Bedrooms
	}
	if req.Bathrooms != nil {
		p.Bathrooms = *req.Bathrooms
	}
	if req.Area != nil {
		p.Area = *req.Area
	}
	if req.Facilities != nil {
		p.Facilities = req.Facilities
	}
	if location, _ := buildLocation(req.Latitude, req.Longitude); location != nil {
		p.Location = location
	}
}
