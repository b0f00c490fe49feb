// Package geo answers single-shot geolocation queries against an HTTP
// JSON endpoint.
package geo

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"voxform/internal/ports"
)

// Client implements ports.Geolocator over an ipapi-style JSON endpoint.
type Client struct {
	endpoint string
	client   *http.Client
}

func NewClient(endpoint string, timeout time.Duration) *Client {
	if endpoint == "" {
		endpoint = "https://ipapi.co/json"
	}
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Client{
		endpoint: endpoint,
		client:   &http.Client{Timeout: timeout},
	}
}

type positionResponse struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Coordinates performs one position query. The context bounds the request;
// callers treat any failure as a degraded value, not a fault.
func (c *Client) Coordinates(ctx context.Context) (ports.Coordinates, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint, nil)
	if err != nil {
		return ports.Coordinates{}, fmt.Errorf("failed to build position request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return ports.Coordinates{}, fmt.Errorf("position query failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return ports.Coordinates{}, fmt.Errorf("position query returned status %d", resp.StatusCode)
	}

	var position positionResponse
	if err := json.NewDecoder(resp.Body).Decode(&position); err != nil {
		return ports.Coordinates{}, fmt.Errorf("failed to decode position response: %w", err)
	}

	return ports.Coordinates{Latitude: position.Latitude, Longitude: position.Longitude}, nil
}
