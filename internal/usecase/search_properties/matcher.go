package search_properties

import (
	"strings"

	"github.com/m04kA/SMC-RealtyService/internal/domain"
	"github.com/m04kA/SMC-RealtyService/pkg/geo"
)

// Matches проверяет, что объект удовлетворяет всем заданным критериям фильтра
// Незаданный критерий не ограничивает выборку; функция никогда не возвращает ошибку
func Matches(p *domain.Property, f domain.PropertyFilters) bool {
	if p == nil {
		return false
	}

	// Границы цены включительные, ноль считается заданной границей
	if f.PriceMin != nil && p.Price < *f.PriceMin {
		return false
	}
	if f.PriceMax != nil && p.Price > *f.PriceMax {
		return false
	}

	if f.Type != nil && p.Type != *f.Type {
		return false
	}

	if f.Status != nil && p.Status != *f.Status {
		return false
	}

	if !p.HasFacilities(f.Facilities) {
		return false
	}

	if f.Query != nil && !matchesQuery(p, *f.Query) {
		return false
	}

	// Радиус применяется, только если заданы и точка, и радиус
	if f.Location != nil && f.RadiusKm != nil {
		if p.Location == nil {
			return false
		}
		if !geo.IsWithinRadius(*p.Location, *f.Location, *f.RadiusKm) {
			return false
		}
	}

	return true
}

func matchesQuery(p *domain.Property, query string) bool {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return true
	}

	for _, field := range []string{p.Name, p.Address, string(p.Type)} {
		if strings.Contains(strings.ToLower(field), q) {
			return true
		}
	}
	return false
}
