package domain

import (
	"time"

	"github.com/m04kA/SMC-RealtyService/pkg/geo"
)

// PropertyType тип объекта недвижимости
type PropertyType string

const (
	PropertyTypeHouse     PropertyType = "House"
	PropertyTypeTownhouse PropertyType = "Townhouse"
	PropertyTypeCondo     PropertyType = "Condo"
	PropertyTypeDuplex    PropertyType = "Duplex"
	PropertyTypeStudio    PropertyType = "Studio"
	PropertyTypeVilla     PropertyType = "Villa"
	PropertyTypeApartment PropertyType = "Apartment"
	PropertyTypeOther     PropertyType = "Other"
)

// IsValid проверяет, что тип входит в каталог
func (t PropertyType) IsValid() bool {
	switch t {
	case PropertyTypeHouse, PropertyTypeTownhouse, PropertyTypeCondo, PropertyTypeDuplex,
		PropertyTypeStudio, PropertyTypeVilla, PropertyTypeApartment, PropertyTypeOther:
		return true
	default:
		return false
	}
}

// PropertyStatus статус объекта недвижимости
type PropertyStatus string

const (
	PropertyStatusAvailable     PropertyStatus = "Available"
	PropertyStatusRented        PropertyStatus = "Rented"
	PropertyStatusSold          PropertyStatus = "Sold"
	PropertyStatusUnderContract PropertyStatus = "Under-Contract"
)

// IsValid проверяет, что статус входит в каталог
func (s PropertyStatus) IsValid() bool {
	switch s {
	case PropertyStatusAvailable, PropertyStatusRented, PropertyStatusSold, PropertyStatusUnderContract:
		return true
	default:
		return false
	}
}

// IsBookable сообщает, можно ли создавать бронирования на объект в этом статусе
// Неизвестный или пустой статус считается закрытым для бронирования
func (s PropertyStatus) IsBookable() bool {
	switch s {
	case PropertyStatusAvailable:
		return true
	case PropertyStatusRented, PropertyStatusSold, PropertyStatusUnderContract:
		return false
	default:
		return false
	}
}

// Property объект недвижимости
type Property struct {
	ID          string
	Name        string
	Type        PropertyType
	Status      PropertyStatus // Пустой у записей, созданных до введения статусов
	Description string
	Address     string
	Price       float64
	Bedrooms    int
	Bathrooms   int
	Area        float64 // кв. футы
	Facilities  []string
	Images      []string // ID файлов в файловом хранилище
	AgentID     string
	Location    *geo.Point

	CreatedAt time.Time
	UpdatedAt time.Time
}

// HasFacilities проверяет, что у объекта есть все перечисленные удобства
func (p *Property) HasFacilities(required []string) bool {
	if len(required) == 0 {
		return true
	}

	have := make(map[string]struct{}, len(p.Facilities))
	for _, f := range p.Facilities {
		have[f] = struct{}{}
	}

	for _, f := range required {
		if _, ok := have[f]; !ok {
			return false
		}
	}
	return true
}

// IsOwnedBy проверяет, что объект принадлежит агенту
func (p *Property) IsOwnedBy(agentID string) bool {
	return agentID != "" && p.AgentID == agentID
}
