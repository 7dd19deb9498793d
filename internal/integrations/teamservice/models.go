package teamservice

// Team модель команды из TeamService
type Team struct {
	ID         int64  `json:"id"`
	CaptainID  int64  `json:"captain_id"`
	Name       string `json:"name"`
	RosterSize int    `json:"roster_size"`
}

// ErrorResponse модель ошибки от TeamService
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
