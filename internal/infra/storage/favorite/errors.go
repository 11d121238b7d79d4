package favorite

import "errors"

var (
	// ErrFavoriteNotFound возвращается, когда запись избранного не найдена
	ErrFavoriteNotFound = errors.New("favorite.repository: favorite not found")

	// ErrFavoriteExists возвращается при нарушении уникальности (user_id, property_id)
	ErrFavoriteExists = errors.New("favorite.repository: favorite already exists")

	// ErrPropertyNotFound возвращается, когда объект был удален до вставки
	ErrPropertyNotFound = errors.New("favorite.repository: property not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("favorite.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("favorite.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("favorite.repository: failed to scan row")
)
