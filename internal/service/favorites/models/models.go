package models

import (
	"time"

	propertyModels "github.com/m04kA/SMC-RealtyService/internal/service/properties/models"
)

// FavoriteResponse избранный объект
type FavoriteResponse struct {
	ID         string                          `json:"id"`
	PropertyID string                          `json:"propertyId"`
	CreatedAt  time.Time                       `json:"createdAt"`
	Property   propertyModels.PropertyResponse `json:"property"`
}

// FavoriteListResponse ответ со списком избранного
type FavoriteListResponse struct {
	Favorites []FavoriteResponse `json:"favorites"`
}

// FavoriteStatusResponse признак того, что объект в избранном пользователя
type FavoriteStatusResponse struct {
	PropertyID string  `json:"propertyId"`
	Favorited  bool    `json:"favorited"`
	FavoriteID *string `json:"favoriteId,omitempty"`
}
