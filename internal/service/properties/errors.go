package properties

import "errors"

var (
	// ErrPropertyNotFound возвращается, когда объект не найден
	ErrPropertyNotFound = errors.New("properties: property not found")

	// ErrAccessDenied возвращается, когда пользователь не агент или не владелец объекта
	ErrAccessDenied = errors.New("properties: access denied")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("properties: invalid input data")

	// ErrImageUpload возвращается, когда не удалось загрузить изображения
	ErrImageUpload = errors.New("properties: image upload failed")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("properties: internal error")
)
