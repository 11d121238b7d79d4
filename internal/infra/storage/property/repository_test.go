package property_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-RealtyService/internal/domain"
	"github.com/m04kA/SMC-RealtyService/internal/infra/storage/property"
	"github.com/m04kA/SMC-RealtyService/internal/testutil"
	"github.com/m04kA/SMC-RealtyService/pkg/geo"
	"github.com/m04kA/SMC-RealtyService/pkg/ptr"
)

func newProperty(name string, typ domain.PropertyType, price float64, createdAt time.Time) *domain.Property {
	return &domain.Property{
		Name:       name,
		Type:       typ,
		Status:     domain.PropertyStatusAvailable,
		Address:    "1 Main St",
		Price:      price,
		Facilities: []string{"Wifi", "Gym"},
		AgentID:    "agent-1",
		Location:   &geo.Point{Latitude: 55.75, Longitude: 37.61},
		CreatedAt:  createdAt,
		UpdatedAt:  createdAt,
	}
}

func TestRepository_CreateAndGet(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := property.NewRepository(db)
	ctx := context.Background()

	now := time.Now().UTC().Truncate(time.Second)
	created, err := repo.Create(ctx, newProperty("Loft", domain.PropertyTypeCondo, 100, now))
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)

	got, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Loft", got.Name)
	assert.Equal(t, []string{"Wifi", "Gym"}, got.Facilities)
	assert.Empty(t, got.Images)
	require.NotNil(t, got.Location)
	assert.InDelta(t, 55.75, got.Location.Latitude, 1e-9)

	_, err = repo.GetByID(ctx, "missing")
	assert.ErrorIs(t, err, property.ErrPropertyNotFound)
}

func TestRepository_SearchAndLatest(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := property.NewRepository(db)
	ctx := context.Background()

	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	_, err := repo.Create(ctx, newProperty("Old House", domain.PropertyTypeHouse, 50, base))
	require.NoError(t, err)
	_, err = repo.Create(ctx, newProperty("New 100% Condo", domain.PropertyTypeCondo, 150, base.Add(time.Hour)))
	require.NoError(t, err)

	latest, err := repo.GetLatest(ctx, 5)
	require.NoError(t, err)
	require.Len(t, latest, 2)
	assert.Equal(t, "New 100% Condo", latest[0].Name)

	found, err := repo.Search(ctx, domain.PropertyFilters{
		Type:       ptr.Ptr(domain.PropertyTypeCondo),
		PriceMin:   ptr.Ptr(100.0),
		Facilities: []string{"Gym"},
	}, 10)
	require.NoError(t, err)
	require.Len(t, found, 1)

	found, err = repo.Search(ctx, domain.PropertyFilters{Query: ptr.Ptr("100%")}, 0)
	require.NoError(t, err)
	require.Len(t, found, 1)

	found, err = repo.Search(ctx, domain.PropertyFilters{Facilities: []string{"Laundry"}}, 0)
	require.NoError(t, err)
	assert.Empty(t, found)
}

func TestRepository_UpdateDeleteBackfill(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := property.NewRepository(db)
	ctx := context.Background()

	p := newProperty("Legacy", domain.PropertyTypeStudio, 10, time.Now().UTC())
	p.Status = ""
	created, err := repo.Create(ctx, p)
	require.NoError(t, err)

	updated, err := repo.BackfillStatus(ctx, domain.PropertyStatusAvailable)
	require.NoError(t, err)
	assert.Equal(t, int64(1), updated)

	got, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.PropertyStatusAvailable, got.Status)

	got.Status = domain.PropertyStatusSold
	got.Images = []string{"file-1"}
	require.NoError(t, repo.Update(ctx, got))

	got, err = repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.PropertyStatusSold, got.Status)
	assert.Equal(t, []string{"file-1"}, got.Images)

	require.NoError(t, repo.Delete(ctx, created.ID))
	assert.ErrorIs(t, repo.Delete(ctx, created.ID), property.ErrPropertyNotFound)
}
