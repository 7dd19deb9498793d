package resourceservice

// Resource метаданные бронируемого ресурса (корта) из реестра площадок
type Resource struct {
	ID                   int64  `json:"id"`
	OwnerID              int64  `json:"owner_id"`
	Name                 string `json:"name"`
	MatchDurationMinutes int    `json:"match_duration_minutes"`
	DefaultPartySize     int    `json:"default_party_size"` // 0 = фолбэк не настроен
}

// ErrorResponse модель ошибки от реестра ресурсов
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
