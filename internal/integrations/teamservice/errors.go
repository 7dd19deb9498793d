package teamservice

import "errors"

var (
	// ErrTeamNotFound возвращается, когда команда не найдена
	ErrTeamNotFound = errors.New("team not found")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("teamservice client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("teamservice client: invalid response")

	// ErrServiceDegraded возвращается при недоступности TeamService.
	// Вызывающий код может применить настроенный дефолтный размер группы
	// вместо состава команды; без настроенного фолбэка попытка завершается
	// retryable-ошибкой, чтобы не занизить цену бронирования молча.
	ErrServiceDegraded = errors.New("teamservice unavailable: graceful degradation applied")
)
