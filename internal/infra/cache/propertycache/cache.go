package propertycache

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/m04kA/SMC-RealtyService/internal/domain"
	"github.com/m04kA/SMC-RealtyService/pkg/metrics"
)

const (
	keyPrefix     = "realty:search"
	generationKey = "realty:search:generation"
)

var (
	// ErrCache возвращается при ошибках обращения к redis
	ErrCache = errors.New("propertycache: redis error")
)

// Cache кеш результатов поиска объектов
// Ключ строится из нормализованных фильтров и поколения, которое увеличивается
// при любом изменении объектов, поэтому старые записи просто перестают читаться и истекают по TTL
type Cache struct {
	client  redis.UniversalClient
	ttl     time.Duration
	metrics *metrics.Metrics
}

// New создает кеш поверх redis клиента
func New(client redis.UniversalClient, ttl time.Duration, m *metrics.Metrics) *Cache {
	return &Cache{client: client, ttl: ttl, metrics: m}
}

// SearchKey возвращает ключ поиска для текущего поколения
// Ключ берется один раз до запроса в БД и переиспользуется в SetSearch, иначе результат,
// прочитанный до Invalidate, попал бы в уже новое поколение
func (c *Cache) SearchKey(ctx context.Context, filters domain.PropertyFilters, limit int) (string, error) {
	generation, err := c.client.Get(ctx, generationKey).Result()
	if errors.Is(err, redis.Nil) {
		generation = "0"
	} else if err != nil {
		return "", fmt.Errorf("%w: SearchKey - generation: %v", ErrCache, err)
	}

	return keyPrefix + ":" + generation + ":" + hashFilters(filters, limit), nil
}

// GetSearch возвращает закешированный результат поиска
func (c *Cache) GetSearch(ctx context.Context, key string) ([]*domain.Property, bool, error) {
	data, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		c.metrics.ObserveCache(false)
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("%w: GetSearch - get: %v", ErrCache, err)
	}

	var properties []*domain.Property
	if err := json.Unmarshal(data, &properties); err != nil {
		return nil, false, fmt.Errorf("%w: GetSearch - decode: %v", ErrCache, err)
	}

	c.metrics.ObserveCache(true)
	return properties, true, nil
}

// SetSearch сохраняет результат поиска под ключом, полученным из SearchKey
func (c *Cache) SetSearch(ctx context.Context, key string, properties []*domain.Property) error {
	data, err := json.Marshal(properties)
	if err != nil {
		return fmt.Errorf("%w: SetSearch - encode: %v", ErrCache, err)
	}

	if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
		return fmt.Errorf("%w: SetSearch - set: %v", ErrCache, err)
	}
	return nil
}

// Invalidate делает недоступными все закешированные результаты
func (c *Cache) Invalidate(ctx context.Context) error {
	if err := c.client.Incr(ctx, generationKey).Err(); err != nil {
		return fmt.Errorf("%w: Invalidate - incr: %v", ErrCache, err)
	}
	return nil
}

// hashFilters одинаковые по смыслу фильтры дают одинаковый ключ
func hashFilters(f domain.PropertyFilters, limit int) string {
	parts := []string{fmt.Sprintf("limit=%d", limit)}

	if f.PriceMin != nil {
		parts = append(parts, fmt.Sprintf("price_min=%g", *f.PriceMin))
	}
	if f.PriceMax != nil {
		parts = append(parts, fmt.Sprintf("price_max=%g", *f.PriceMax))
	}
	if f.Type != nil {
		parts = append(parts, "type="+string(*f.Type))
	}
	if f.Status != nil {
		parts = append(parts, "status="+string(*f.Status))
	}
	if len(f.Facilities) > 0 {
		facilities := append([]string(nil), f.Facilities...)
		sort.Strings(facilities)
		parts = append(parts, "facilities="+strings.Join(facilities, ","))
	}
	if f.Query != nil {
		parts = append(parts, "q="+strings.ToLower(*f.Query))
	}
	if f.Location != nil && f.RadiusKm != nil {
		parts = append(parts, fmt.Sprintf("near=%g,%g,%g", f.Location.Latitude, f.Location.Longitude, *f.RadiusKm))
	}

	sort.Strings(parts)
	hash := md5.Sum([]byte(strings.Join(parts, ":")))
	return hex.EncodeToString(hash[:])
}

// Disabled заглушка, используемая при выключенном redis
type Disabled struct{}

// SearchKey пустой ключ означает, что кеш не используется
func (Disabled) SearchKey(context.Context, domain.PropertyFilters, int) (string, error) {
	return "", nil
}

func (Disabled) GetSearch(context.Context, string) ([]*domain.Property, bool, error) {
	return nil, false, nil
}

func (Disabled) SetSearch(context.Context, string, []*domain.Property) error {
	return nil
}

func (Disabled) Invalidate(context.Context) error { return nil }
