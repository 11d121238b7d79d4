package properties

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-RealtyService/internal/domain"
	propertyRepo "github.com/m04kA/SMC-RealtyService/internal/infra/storage/property"
	"github.com/m04kA/SMC-RealtyService/internal/mocks"
	"github.com/m04kA/SMC-RealtyService/internal/service/properties/models"
	"github.com/m04kA/SMC-RealtyService/pkg/jwtauth"
	"github.com/m04kA/SMC-RealtyService/pkg/logger"
	"github.com/m04kA/SMC-RealtyService/pkg/ptr"
)

type memoryProperties struct {
	items     map[string]*domain.Property
	createErr error
	latest    []*domain.Property
	backfill  int64
}

func newMemoryProperties(items ...*domain.Property) *memoryProperties {
	m := &memoryProperties{items: make(map[string]*domain.Property)}
	for _, p := range items {
		m.items[p.ID] = p
	}
	return m
}

func (m *memoryProperties) Create(_ context.Context, p *domain.Property) (*domain.Property, error) {
	if m.createErr != nil {
		return nil, m.createErr
	}
	created := *p
	created.ID = "prop-new"
	m.items[created.ID] = &created
	return &created, nil
}

func (m *memoryProperties) GetByID(_ context.Context, id string) (*domain.Property, error) {
	p, ok := m.items[id]
	if !ok {
		return nil, propertyRepo.ErrPropertyNotFound
	}
	copied := *p
	copied.Images = append([]string(nil), p.Images...)
	return &copied, nil
}

func (m *memoryProperties) GetLatest(_ context.Context, limit int) ([]*domain.Property, error) {
	if len(m.latest) > limit {
		return m.latest[:limit], nil
	}
	return m.latest, nil
}

func (m *memoryProperties) Update(_ context.Context, p *domain.Property) error {
	if _, ok := m.items[p.ID]; !ok {
		return propertyRepo.ErrPropertyNotFound
	}
	m.items[p.ID] = p
	return nil
}

func (m *memoryProperties) Delete(_ context.Context, id string) error {
	if _, ok := m.items[id]; !ok {
		return propertyRepo.ErrPropertyNotFound
	}
	delete(m.items, id)
	return nil
}

func (m *memoryProperties) BackfillStatus(_ context.Context, _ domain.PropertyStatus) (int64, error) {
	return m.backfill, nil
}

type countingCache struct{ calls int }

func (c *countingCache) Invalidate(context.Context) error {
	c.calls++
	return nil
}

var now = time.Date(2024, 5, 20, 12, 0, 0, 0, time.UTC)

func newTestService(t *testing.T, repo PropertyRepository) (*Service, *mocks.MockFileStorage, *countingCache) {
	t.Helper()

	ctrl := gomock.NewController(t)
	files := mocks.NewMockFileStorage(ctrl)
	files.EXPECT().ViewURL(gomock.Any()).DoAndReturn(func(id string) string {
		return "http://files/" + id
	}).AnyTimes()

	cache := &countingCache{}
	s := NewService(repo, files, cache, logger.NewNop(), 2)
	s.now = func() time.Time { return now }
	return s, files, cache
}

func uploadByName(_ context.Context, filename, _ string, _ io.Reader) (string, error) {
	return "file-" + filename, nil
}

func image(name string) models.ImageUpload {
	return models.ImageUpload{Filename: name, ContentType: "image/jpeg", Content: strings.NewReader(name)}
}

func validCreate() *models.CreatePropertyRequest {
	return &models.CreatePropertyRequest{
		UserID:     "agent-1",
		Role:       jwtauth.RoleAgent,
		Name:       "Sea view villa",
		Type:       string(domain.PropertyTypeVilla),
		Address:    "1 Beach road",
		Price:      1200,
		Bedrooms:   3,
		Bathrooms:  2,
		Area:       1500,
		Facilities: []string{"Wifi"},
		Latitude:   ptr.Ptr(40.0),
		Longitude:  ptr.Ptr(-73.0),
	}
}

func TestService_Create(t *testing.T) {
	t.Run("uploads images and stores property", func(t *testing.T) {
		repo := newMemoryProperties()
		s, files, cache := newTestService(t, repo)
		files.EXPECT().Upload(gomock.Any(), gomock.Any(), "image/jpeg", gomock.Any()).
			DoAndReturn(uploadByName).Times(3)

		req := validCreate()
		req.Images = []models.ImageUpload{image("a.jpg"), image("b.jpg"), image("c.jpg")}

		resp, err := s.Create(context.Background(), req)
		require.NoError(t, err)
		assert.Equal(t, "prop-new", resp.ID)
		assert.Equal(t, string(domain.PropertyStatusAvailable), resp.Status)
		assert.Equal(t, "agent-1", resp.AgentID)
		assert.Equal(t, []string{"file-a.jpg", "file-b.jpg", "file-c.jpg"}, resp.ImageIDs)
		assert.Equal(t, "http://files/file-a.jpg", resp.Images[0])
		assert.Equal(t, now, resp.CreatedAt)
		require.NotNil(t, resp.Location)
		assert.Equal(t, 40.0, resp.Location.Latitude)
		assert.Equal(t, 1, cache.calls)
	})

	t.Run("only agents can create", func(t *testing.T) {
		s, _, _ := newTestService(t, newMemoryProperties())
		req := validCreate()
		req.Role = jwtauth.RoleUser

		_, err := s.Create(context.Background(), req)
		assert.ErrorIs(t, err, ErrAccessDenied)
	})

	t.Run("validation", func(t *testing.T) {
		s, _, _ := newTestService(t, newMemoryProperties())

		for name, mutate := range map[string]func(r *models.CreatePropertyRequest){
			"empty name":      func(r *models.CreatePropertyRequest) { r.Name = "  " },
			"unknown type":    func(r *models.CreatePropertyRequest) { r.Type = "Castle" },
			"unknown status":  func(r *models.CreatePropertyRequest) { r.Status = "Gone" },
			"negative price":  func(r *models.CreatePropertyRequest) { r.Price = -1 },
			"half location":   func(r *models.CreatePropertyRequest) { r.Longitude = nil },
			"latitude range":  func(r *models.CreatePropertyRequest) { r.Latitude = ptr.Ptr(91.0) },
			"too many images": func(r *models.CreatePropertyRequest) { r.Images = make([]models.ImageUpload, 11) },
		} {
			t.Run(name, func(t *testing.T) {
				req := validCreate()
				mutate(req)
				_, err := s.Create(context.Background(), req)
				assert.ErrorIs(t, err, ErrInvalidInput)
			})
		}
	})

	t.Run("failed upload removes uploaded files", func(t *testing.T) {
		repo := newMemoryProperties()
		s, files, cache := newTestService(t, repo)
		files.EXPECT().Upload(gomock.Any(), "a.jpg", gomock.Any(), gomock.Any()).DoAndReturn(uploadByName)
		files.EXPECT().Upload(gomock.Any(), "b.jpg", gomock.Any(), gomock.Any()).Return("", errors.New("mongo down"))
		files.EXPECT().Delete(gomock.Any(), "file-a.jpg").Return(nil)

		req := validCreate()
		req.Images = []models.ImageUpload{image("a.jpg"), image("b.jpg")}

		_, err := s.Create(context.Background(), req)
		assert.ErrorIs(t, err, ErrImageUpload)
		assert.Empty(t, repo.items)
		assert.Zero(t, cache.calls)
	})

	t.Run("repository failure removes uploaded files", func(t *testing.T) {
		repo := newMemoryProperties()
		repo.createErr = errors.New("db down")
		s, files, _ := newTestService(t, repo)
		files.EXPECT().Upload(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(uploadByName)
		files.EXPECT().Delete(gomock.Any(), "file-a.jpg").Return(nil)

		req := validCreate()
		req.Images = []models.ImageUpload{image("a.jpg")}

		_, err := s.Create(context.Background(), req)
		assert.ErrorIs(t, err, ErrInternal)
	})
}

func existing() *domain.Property {
	return &domain.Property{
		ID:      "prop-1",
		Name:    "Loft",
		Type:    domain.PropertyTypeApartment,
		Status:  domain.PropertyStatusAvailable,
		Price:   900,
		AgentID: "agent-1",
		Images:  []string{"old-1", "old-2"},
	}
}

func TestService_Update(t *testing.T) {
	t.Run("replaces images and changes status", func(t *testing.T) {
		repo := newMemoryProperties(existing())
		s, files, cache := newTestService(t, repo)
		files.EXPECT().Upload(gomock.Any(), "new.jpg", gomock.Any(), gomock.Any()).DoAndReturn(uploadByName)
		files.EXPECT().Delete(gomock.Any(), "old-1").Return(nil)

		resp, err := s.Update(context.Background(), "prop-1", &models.UpdatePropertyRequest{
			UserID:       "agent-1",
			Status:       ptr.Ptr(string(domain.PropertyStatusSold)),
			Price:        ptr.Ptr(0.0),
			RemoveImages: []string{"old-1"},
			NewImages:    []models.ImageUpload{image("new.jpg")},
		})
		require.NoError(t, err)
		assert.Equal(t, []string{"old-2", "file-new.jpg"}, resp.ImageIDs)
		assert.Equal(t, string(domain.PropertyStatusSold), resp.Status)
		assert.Equal(t, 0.0, resp.Price)
		assert.Equal(t, "Loft", resp.Name)
		assert.Equal(t, domain.PropertyStatusSold, repo.items["prop-1"].Status)
		assert.Equal(t, 1, cache.calls)
	})

	t.Run("not the owner", func(t *testing.T) {
		s, _, _ := newTestService(t, newMemoryProperties(existing()))
		_, err := s.Update(context.Background(), "prop-1", &models.UpdatePropertyRequest{UserID: "agent-2"})
		assert.ErrorIs(t, err, ErrAccessDenied)
	})

	t.Run("foreign image", func(t *testing.T) {
		s, _, _ := newTestService(t, newMemoryProperties(existing()))
		_, err := s.Update(context.Background(), "prop-1", &models.UpdatePropertyRequest{
			UserID:       "agent-1",
			RemoveImages: []string{"someone-else"},
		})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("missing property", func(t *testing.T) {
		s, _, _ := newTestService(t, newMemoryProperties())
		_, err := s.Update(context.Background(), "prop-1", &models.UpdatePropertyRequest{UserID: "agent-1"})
		assert.ErrorIs(t, err, ErrPropertyNotFound)
	})

	t.Run("invalid status", func(t *testing.T) {
		s, _, _ := newTestService(t, newMemoryProperties(existing()))
		_, err := s.Update(context.Background(), "prop-1", &models.UpdatePropertyRequest{
			UserID: "agent-1",
			Status: ptr.Ptr("Demolished"),
		})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}

func TestService_Delete(t *testing.T) {
	t.Run("deletes document then images", func(t *testing.T) {
		repo := newMemoryProperties(existing())
		s, files, cache := newTestService(t, repo)
		files.EXPECT().Delete(gomock.Any(), "old-1").Return(nil)
		files.EXPECT().Delete(gomock.Any(), "old-2").Return(errors.New("already gone"))

		require.NoError(t, s.Delete(context.Background(), "prop-1", "agent-1"))
		assert.Empty(t, repo.items)
		assert.Equal(t, 1, cache.calls)
	})

	t.Run("not the owner", func(t *testing.T) {
		repo := newMemoryProperties(existing())
		s, _, _ := newTestService(t, repo)

		err := s.Delete(context.Background(), "prop-1", "user-1")
		assert.ErrorIs(t, err, ErrAccessDenied)
		assert.Len(t, repo.items, 1)
	})
}

func TestService_GetLatest(t *testing.T) {
	repo := newMemoryProperties()
	for i := 0; i < 7; i++ {
		repo.latest = append(repo.latest, &domain.Property{ID: string(rune('a' + i))})
	}
	s, _, _ := newTestService(t, repo)

	resp, err := s.GetLatest(context.Background(), 0)
	require.NoError(t, err)
	assert.Len(t, resp.Properties, domain.DefaultLatestLimit)

	_, err = s.GetLatest(context.Background(), domain.MaxLatestLimit+1)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestService_GetByID(t *testing.T) {
	s, _, _ := newTestService(t, newMemoryProperties(existing()))

	resp, err := s.GetByID(context.Background(), "prop-1")
	require.NoError(t, err)
	assert.Equal(t, []string{"http://files/old-1", "http://files/old-2"}, resp.Images)

	_, err = s.GetByID(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrPropertyNotFound)
}

func TestService_BackfillStatus(t *testing.T) {
	repo := newMemoryProperties()
	repo.backfill = 4
	s, _, cache := newTestService(t, repo)

	updated, err := s.BackfillStatus(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(4), updated)
	assert.Equal(t, 1, cache.calls)
}
