package teamservice

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Client клиент для работы с TeamService
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента TeamService
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// GetTeam получает команду по ID
func (c *Client) GetTeam(ctx context.Context, teamID int64) (*Team, error) {
	url := fmt.Sprintf("%s/internal/teams/%d", c.baseURL, teamID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		// Продолжаем обработку
	case http.StatusNotFound:
		return nil, ErrTeamNotFound
	default:
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
	}

	var team Team
	if err := json.NewDecoder(resp.Body).Decode(&team); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	return &team, nil
}

// GetTeamWithGracefulDegradation получает команду с graceful degradation.
// Бизнес-ошибка "команда не найдена" пробрасывается как есть; недоступность
// сервиса превращается в ErrServiceDegraded, чтобы вызывающий код мог принять
// решение о фолбэке на настроенный дефолтный размер группы.
func (c *Client) GetTeamWithGracefulDegradation(ctx context.Context, teamID int64) (*Team, error) {
	c.log.Info("Fetching team for team_id=%d", teamID)

	team, err := c.GetTeam(ctx, teamID)
	if err != nil {
		if errors.Is(err, ErrTeamNotFound) {
			c.log.Info("Team not found for team_id=%d", teamID)
			return nil, err
		}

		// Повышаем уровень логирования до ERROR, чтобы быстрее заметить проблему
		c.log.Error("TeamService unavailable, applying graceful degradation for team_id=%d: %v", teamID, err)
		return nil, fmt.Errorf("%w: team_id=%d, error=%v", ErrServiceDegraded, teamID, err)
	}

	c.log.Info("Successfully fetched team team_id=%d, roster_size=%d", teamID, team.RosterSize)
	return team, nil
}
