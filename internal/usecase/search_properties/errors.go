package search_properties

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных параметрах фильтра
	ErrInvalidInput = errors.New("search_properties: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("search_properties: internal error")
)
