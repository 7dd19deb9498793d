package get_availability

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("get_availability: invalid input data")

	// ErrResourceNotFound возвращается, когда ресурс не найден в реестре
	ErrResourceNotFound = errors.New("get_availability: resource not found")

	// ErrInvalidDate возвращается, когда дата в прошлом
	ErrInvalidDate = errors.New("get_availability: invalid date")

	// ErrOutsideAdvanceWindow возвращается, когда дата превышает окно
	// предварительного бронирования
	ErrOutsideAdvanceWindow = errors.New("get_availability: date is outside the advance booking window")

	// ErrUpstreamUnavailable возвращается при недоступности реестра ресурсов
	ErrUpstreamUnavailable = errors.New("get_availability: upstream service unavailable")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("get_availability: internal error")
)
