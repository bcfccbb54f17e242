package venueservice

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/m04kA/QuickCourt-SlotService/internal/domain"
)

// Client клиент для работы с VenueService
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента VenueService
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// GetCourt получает конфигурацию корта
func (c *Client) GetCourt(ctx context.Context, courtID int64) (*domain.Court, error) {
	url := fmt.Sprintf("%s/internal/courts/%d", c.baseURL, courtID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	// Обработка статус-кодов
	switch resp.StatusCode {
	case http.StatusOK:
		// Продолжаем обработку
	case http.StatusBadRequest:
		return nil, fmt.Errorf("%w: invalid court ID format", ErrInvalidResponse)
	case http.StatusNotFound:
		return nil, ErrCourtNotFound
	default:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
	}

	var court Court
	if err := json.NewDecoder(resp.Body).Decode(&court); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	result, err := court.ToDomain()
	if err != nil {
		return nil, fmt.Errorf("%w: invalid operating hours: %v", ErrInvalidResponse, err)
	}

	return result, nil
}

// GetActiveCourt получает конфигурацию корта и проверяет, что корт активен
func (c *Client) GetActiveCourt(ctx context.Context, courtID int64) (*domain.Court, error) {
	c.log.Info("Fetching court configuration for court_id=%d", courtID)

	court, err := c.GetCourt(ctx, courtID)
	if err != nil {
		if errors.Is(err, ErrCourtNotFound) {
			c.log.Warn("Court not found: court_id=%d", courtID)
			return nil, err
		}
		c.log.Error("VenueService request failed for court_id=%d: %v", courtID, err)
		return nil, err
	}

	if !court.IsActive {
		c.log.Warn("Court is inactive: court_id=%d", courtID)
		return nil, ErrCourtInactive
	}

	return court, nil
}
