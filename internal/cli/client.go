package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/mcoot/jumpbble/internal/api/apierr"
	"github.com/mcoot/jumpbble/internal/api/request"
	"github.com/mcoot/jumpbble/internal/api/response"
	"github.com/mcoot/jumpbble/internal/model"
	"github.com/mcoot/jumpbble/internal/services/game"
)

// Client is an HTTP client for the API
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a new API client
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// RemoteError is an error response from the API
type RemoteError struct {
	Status int
	apierr.APIError
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("%s (%s)", e.Message, e.Code)
}

// Do performs an HTTP request
func (c *Client) Do(ctx context.Context, method, path string, body, result any) error {
	url := c.baseURL + path

	var bodyReader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		bodyReader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, bodyReader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	// Check for error responses
	if resp.StatusCode >= 400 {
		var errResp apierr.ErrorResponse
		if err := json.Unmarshal(respBody, &errResp); err == nil && errResp.Error.Code != "" {
			return &RemoteError{Status: resp.StatusCode, APIError: errResp.Error}
		}
		return fmt.Errorf("HTTP %d: %s", resp.StatusCode, string(respBody))
	}

	// Parse successful response
	if result != nil && len(respBody) > 0 {
		if err := json.Unmarshal(respBody, result); err != nil {
			return fmt.Errorf("failed to parse response: %w", err)
		}
	}

	return nil
}

// Health calls GET /api/v1/health
func (c *Client) Health(ctx context.Context) (*response.Health, error) {
	var result response.Health
	if err := c.Do(ctx, http.MethodGet, "/api/v1/health", nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// remoteBackend plays games on a server through the HTTP API
type remoteBackend struct {
	client *Client
}

var _ backend = (*remoteBackend)(nil)

func (b *remoteBackend) NewGame(ctx context.Context, opts game.NewGameOptions) (*response.Game, error) {
	var result response.Game
	req := request.CreateGameRequest{Seed: opts.Seed, GridSize: opts.GridSize}
	if err := b.client.Do(ctx, http.MethodPost, "/api/v1/games", req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (b *remoteBackend) GetGame(ctx context.Context, id string) (*response.Game, error) {
	var result response.Game
	if err := b.client.Do(ctx, http.MethodGet, "/api/v1/games/"+id, nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (b *remoteBackend) Move(ctx context.Context, id string, intent model.MoveIntent) (*response.MoveResponse, error) {
	handIndex := intent.HandIndex
	req := request.MoveRequest{
		HandIndex: &handIndex,
		Direction: string(intent.Direction),
	}
	if intent.Target != nil {
		req.Target = &request.Target{X: intent.Target.X, Y: intent.Target.Y}
	}
	if intent.Substitute != 0 {
		req.Substitute = string(intent.Substitute)
	}

	var result response.MoveResponse
	if err := b.client.Do(ctx, http.MethodPost, "/api/v1/games/"+id+"/moves", req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (b *remoteBackend) Abandon(ctx context.Context, id string) error {
	return b.client.Do(ctx, http.MethodDelete, "/api/v1/games/"+id, nil, nil)
}

func (b *remoteBackend) Close() error {
	return nil
}
