package libs

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"tailor-shop/models"

	"go.uber.org/zap"
)

// APIError is a non-success response from the remote shop API, carrying the
// server-provided message when one was decodable.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("remote API error (status %d)", e.StatusCode)
	}
	return fmt.Sprintf("remote API error (status %d): %s", e.StatusCode, e.Message)
}

// envelope is the remote API's uniform response wrapper.
type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// APIClient talks to the remote shop API. It is the only outbound seam in
// the client.
type APIClient struct {
	baseURL    string
	token      string
	httpClient *http.Client
	logger     *zap.Logger
}

func NewAPIClient(baseURL, token string, timeout time.Duration, logger *zap.Logger) *APIClient {
	return &APIClient{
		baseURL:    baseURL,
		token:      token,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

// ListAddresses fetches the user's saved addresses.
func (c *APIClient) ListAddresses(ctx context.Context) ([]models.Address, error) {
	var addresses []models.Address
	if err := c.do(ctx, http.MethodGet, "/addresses", nil, nil, &addresses); err != nil {
		return nil, err
	}
	return addresses, nil
}

// CreateOrder issues the single order-creation call. The idempotency key
// lets the server dedupe a retried request that actually landed.
func (c *APIClient) CreateOrder(ctx context.Context, order models.OrderRequest, idempotencyKey string) (*models.OrderConfirmation, error) {
	headers := map[string]string{"Idempotency-Key": idempotencyKey}

	var confirmation models.OrderConfirmation
	if err := c.do(ctx, http.MethodPost, "/orders", order, headers, &confirmation); err != nil {
		return nil, err
	}
	return &confirmation, nil
}

func (c *APIClient) do(ctx context.Context, method, path string, body interface{}, headers map[string]string, out interface{}) error {
	if c.token != "" && TokenExpired(c.token, time.Now()) {
		return &APIError{StatusCode: http.StatusUnauthorized, Message: "session token expired, sign in again"}
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request to %s failed: %w", path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response from %s: %w", path, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		var env envelope
		if json.Unmarshal(raw, &env) == nil {
			apiErr.Message = env.Message
		}
		c.logger.Debug("remote API rejected request",
			zap.String("path", path), zap.Int("status", resp.StatusCode), zap.String("message", apiErr.Message))
		return apiErr
	}

	if out == nil {
		return nil
	}

	// Successful responses may arrive enveloped or bare.
	var env envelope
	if err := json.Unmarshal(raw, &env); err == nil && len(env.Data) > 0 {
		return json.Unmarshal(env.Data, out)
	}
	return json.Unmarshal(raw, out)
}
