package models

import (
	"io"
	"time"

	"github.com/m04kA/SMC-RealtyService/internal/domain"
	"github.com/m04kA/SMC-RealtyService/pkg/geo"
)

// ImageUpload изображение, загружаемое вместе с объектом
type ImageUpload struct {
	Filename    string
	ContentType string
	Content     io.Reader
}

// CreatePropertyRequest запрос на создание объекта
type CreatePropertyRequest struct {
	UserID string
	Role   string

	Name        string
	Type        string
	Status      string // Пустой статус означает Available
	Description string
	Address     string
	Price       float64
	Bedrooms    int
	Bathrooms   int
	Area        float64
	Facilities  []string
	Latitude    *float64
	Longitude   *float64

	Images []ImageUpload
}

// UpdatePropertyRequest частичное обновление объекта
// nil поля не меняются
type UpdatePropertyRequest struct {
	UserID string

	Name        *string
	Type        *string
	Status      *string
	Description *string
	Address     *string
	Price       *float64
	Bedrooms    *int
	Bathrooms   *int
	Area        *float64
	Facilities  []string // nil - без изменений, пустой список очищает
	Latitude    *float64
	Longitude   *float64

	RemoveImages []string // ID файлов, которые нужно удалить
	NewImages    []ImageUpload
}

// PropertyResponse ответ с данными объекта
type PropertyResponse struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Type        string     `json:"type"`
	Status      string     `json:"status"`
	Description string     `json:"description"`
	Address     string     `json:"address"`
	Price       float64    `json:"price"`
	Bedrooms    int        `json:"bedrooms"`
	Bathrooms   int        `json:"bathrooms"`
	Area        float64    `json:"area"`
	Facilities  []string   `json:"facilities"`
	ImageIDs    []string   `json:"imageIds"`
	Images      []string   `json:"images"` // Ссылки на просмотр
	AgentID     string     `json:"agentId"`
	Location    *geo.Point `json:"location,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// PropertyListResponse ответ со списком объектов
type PropertyListResponse struct {
	Properties []PropertyResponse `json:"properties"`
}

// FromDomainProperty конвертирует domain модель в DTO
func FromDomainProperty(p *domain.Property, viewURL func(string) string) *PropertyResponse {
	if p == nil {
		return nil
	}

	resp := &PropertyResponse{
		ID:          p.ID,
		Name:        p.Name,
		Type:        string(p.Type),
		Status:      string(p.Status),
		Description: p.Description,
		Address:     p.Address,
		Price:       p.Price,
		Bedrooms:    p.Bedrooms,
		Bathrooms:   p.Bathrooms,
		Area:        p.Area,
		Facilities:  nonNil(p.Facilities),
		ImageIDs:    nonNil(p.Images),
		Images:      make([]string, 0, len(p.Images)),
		AgentID:     p.AgentID,
		Location:    p.Location,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}

	for _, id := range p.Images {
		resp.Images = append(resp.Images, viewURL(id))
	}

	return resp
}

// FromDomainPropertyList конвертирует список объектов
func FromDomainPropertyList(properties []*domain.Property, viewURL func(string) string) *PropertyListResponse {
	resp := &PropertyListResponse{Properties: make([]PropertyResponse, 0, len(properties))}
	for _, p := range properties {
		resp.Properties = append(resp.Properties, *FromDomainProperty(p, viewURL))
	}
	return resp
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
