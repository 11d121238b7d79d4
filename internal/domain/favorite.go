package domain

import "time"

// Favorite избранный пользователем объект
type Favorite struct {
	ID         string
	UserID     string
	PropertyID string
	CreatedAt  time.Time
}
