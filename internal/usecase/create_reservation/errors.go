package create_reservation

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_reservation: invalid input data")

	// ErrResourceNotFound возвращается, когда ресурс не найден в реестре
	ErrResourceNotFound = errors.New("create_reservation: resource not found")

	// ErrTeamNotFound возвращается, когда команда заявителя не найдена
	ErrTeamNotFound = errors.New("create_reservation: team not found")

	// ErrInvalidDate возвращается, когда дата бронирования в прошлом
	ErrInvalidDate = errors.New("create_reservation: invalid reservation date")

	// ErrOutsideAdvanceWindow возвращается, когда дата превышает ограничение
	// advanceBookingDays календаря
	ErrOutsideAdvanceWindow = errors.New("create_reservation: date is outside the advance booking window")

	// ErrDateBlocked возвращается, когда дата заблокирована в календаре
	// (разовая или повторяющаяся блокировка)
	ErrDateBlocked = errors.New("create_reservation: date is blocked")

	// ErrResourceClosed возвращается, когда ресурс закрыт в этот день недели
	ErrResourceClosed = errors.New("create_reservation: resource is closed on this date")

	// ErrOutsideWorkingHours возвращается, когда слот не помещается в рабочие часы
	ErrOutsideWorkingHours = errors.New("create_reservation: slot is outside working hours")

	// ErrSlotUnavailable возвращается при конфликте на ресурсе: слот занят
	// подтверждённым бронированием. Повторять тот же слот бессмысленно -
	// вызывающему стоит обновить доступность и выбрать другой.
	ErrSlotUnavailable = errors.New("create_reservation: slot is not available")

	// ErrRequesterDoubleBooked возвращается, когда заявитель уже держит
	// пересекающееся подтверждённое бронирование на любом ресурсе
	ErrRequesterDoubleBooked = errors.New("create_reservation: requester already has an overlapping reservation")

	// ErrBusy возвращается при конфликте сериализуемых транзакций или
	// тайм-ауте блокировки. Безопасно повторить тот же запрос после паузы.
	ErrBusy = errors.New("create_reservation: resource is busy, retry")

	// ErrUpstreamUnavailable возвращается, когда обязательный внешний факт
	// (метаданные ресурса, состав команды) получить не удалось. Безопасно
	// повторить запрос.
	ErrUpstreamUnavailable = errors.New("create_reservation: upstream service unavailable")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_reservation: internal error")
)
