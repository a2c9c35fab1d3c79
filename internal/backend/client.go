package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"

	"schedule-console/config"
	"schedule-console/internal/model"
)

// Client talks to the external scheduling service. It never retries.
type Client struct {
	baseURL string
	client  *http.Client
}

// NewClient creates a client for the configured service.
func NewClient(cfg *config.BackendConfig) *Client {
	var transport http.RoundTripper = &http.Transport{}
	if cfg.HTTPProxy != "" {
		proxyURL, err := url.Parse(cfg.HTTPProxy)
		if err != nil {
			log.Printf("Warning: Invalid proxy URL %q: %v. Backend client will not use a proxy.", cfg.HTTPProxy, err)
		} else {
			transport = &http.Transport{Proxy: http.ProxyURL(proxyURL)}
		}
	}

	return &Client{
		baseURL: cfg.BaseURL,
		client: &http.Client{
			Transport: transport,
			Timeout:   cfg.Timeout,
		},
	}
}

// BaseURL returns the service root the client was built for.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Health pings GET /health.
func (c *Client) Health(ctx context.Context) error {
	resp, err := c.do(ctx, http.MethodGet, "/health", nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if !ok(resp) {
		return &StatusError{Op: "Health check", StatusCode: resp.StatusCode}
	}
	return nil
}

// CreateProvider posts a provider. The response is not inspected: a duplicate
// rejected by the service is not a failure, only transport errors are.
func (c *Client) CreateProvider(ctx context.Context, p model.Provider) error {
	return c.create(ctx, "/providers", p)
}

// CreateShiftType posts a shift type with the same semantics as CreateProvider.
func (c *Client) CreateShiftType(ctx context.Context, st model.ShiftType) error {
	return c.create(ctx, "/shift-types", st)
}

// ListProviders fetches the full provider list.
func (c *Client) ListProviders(ctx context.Context) ([]model.Provider, error) {
	providers := []model.Provider{}
	if err := c.list(ctx, "/providers", "List providers", &providers); err != nil {
		return nil, err
	}
	if providers == nil {
		providers = []model.Provider{}
	}
	return providers, nil
}

// ListAssignments fetches the full assignment list.
func (c *Client) ListAssignments(ctx context.Context) ([]model.Assignment, error) {
	assignments := []model.Assignment{}
	if err := c.list(ctx, "/assignments", "List assignments", &assignments); err != nil {
		return nil, err
	}
	if assignments == nil {
		assignments = []model.Assignment{}
	}
	return assignments, nil
}

// Generate asks the service to build a schedule for the range. A non-2xx
// response yields a *StatusError carrying the response text.
func (c *Client) Generate(ctx context.Context, req model.GenerateRequest) (*model.GenerateResult, error) {
	resp, err := c.do(ctx, http.MethodPost, "/generate", req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read generate response: %w", err)
	}

	if !ok(resp) {
		return nil, &StatusError{Op: "Generate", StatusCode: resp.StatusCode, Body: string(body)}
	}

	var result *model.GenerateResult
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("failed to decode generate response: %w", err)
	}
	// An object without conflicts means none; a null body carries no result.
	if result == nil {
		return nil, errors.New("generate response was null")
	}
	if result.Conflicts == nil {
		result.Conflicts = []string{}
	}
	return result, nil
}

func (c *Client) create(ctx context.Context, path string, payload any) error {
	resp, err := c.do(ctx, http.MethodPost, path, payload)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if !ok(resp) {
		log.Printf("POST %s answered %d; continuing", path, resp.StatusCode)
	}
	return nil
}

func (c *Client) list(ctx context.Context, path, op string, out any) error {
	resp, err := c.do(ctx, http.MethodGet, path, nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if !ok(resp) {
		body, _ := io.ReadAll(resp.Body)
		return &StatusError{Op: op, StatusCode: resp.StatusCode, Body: string(body)}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode %s response: %w", path, err)
	}
	return nil
}

func (c *Client) do(ctx context.Context, method, path string, payload any) (*http.Response, error) {
	var body io.Reader
	if payload != nil {
		jsonBody, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request payload: %w", err)
		}
		body = bytes.NewReader(jsonBody)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s failed: %w", method, path, err)
	}
	return resp, nil
}

func ok(resp *http.Response) bool {
	return resp.StatusCode >= 200 && resp.StatusCode < 300
}
