package calendars

import "errors"

var (
	// ErrCalendarNotFound возвращается, когда календарь ресурса не найден
	ErrCalendarNotFound = errors.New("calendar not found")

	// ErrResourceNotFound возвращается, когда ресурс не найден в реестре
	ErrResourceNotFound = errors.New("resource not found")

	// ErrAccessDenied возвращается, когда у пользователя нет прав доступа
	ErrAccessDenied = errors.New("access denied")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrUpstreamUnavailable возвращается при недоступности реестра ресурсов
	ErrUpstreamUnavailable = errors.New("upstream service unavailable")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
