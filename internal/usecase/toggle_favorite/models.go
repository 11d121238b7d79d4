package toggle_favorite

import "github.com/m04kA/SMC-RealtyService/internal/domain"

// Request модель запроса переключения избранного
type Request struct {
	UserID     string
	PropertyID string
}

// Response итоговое состояние
type Response struct {
	Favorited bool
	Favorite  *domain.Favorite // nil, если объект убран из избранного
}
