package httpclient

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/journey-planner/internal/config"
	"go.uber.org/zap"
)

// ErrorObserver sees every failed request before the failure is handed back
// to the caller. It must not alter the error.
type ErrorObserver func(err error)

// ResponseError is returned when the backend answers with a non-2xx status.
type ResponseError struct {
	StatusCode int
	Method     string
	URL        string
	Body       []byte
}

func (e *ResponseError) Error() string {
	return fmt.Sprintf("request failed with status code %d", e.StatusCode)
}

// Payload returns the response body when the backend sent a JSON one.
func (e *ResponseError) Payload() (json.RawMessage, bool) {
	body := strings.TrimSpace(string(e.Body))
	if body == "" || !json.Valid([]byte(body)) {
		return nil, false
	}
	return json.RawMessage(body), true
}

// StatusCode extracts the HTTP status from err, or 0 when no response was received.
func StatusCode(err error) int {
	var re *ResponseError
	if errors.As(err, &re) {
		return re.StatusCode
	}
	return 0
}

type Option func(*Client)

// WithObserver replaces the default logging observer.
func WithObserver(observer ErrorObserver) Option {
	return func(c *Client) {
		c.observer = observer
	}
}

// WithHTTPClient swaps the underlying http.Client. Its Timeout is overwritten
// with the configured one.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// Client is the single entry point for calls to the journey-planning backend.
// Every request gets the configured base URL and timeout. Failures are
// reported to the observer and returned unchanged: no retry, no rewrite.
type Client struct {
	httpClient *http.Client
	baseURL    string
	userAgent  string
	observer   ErrorObserver
	logger     *zap.Logger
}

// NewClient создает новый клиент для API планирования маршрутов
func NewClient(cfg *config.APIConfig, logger *zap.Logger, opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{},
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		userAgent:  cfg.UserAgent,
		logger:     logger,
	}
	c.observer = c.logFailure

	for _, opt := range opts {
		opt(c)
	}
	c.httpClient.Timeout = cfg.Timeout

	return c
}

// logFailure is the default observer.
func (c *Client) logFailure(err error) {
	c.logger.Error("[API ERROR]",
		zap.Int("status_code", StatusCode(err)),
		zap.String("message", err.Error()))
}

func (c *Client) fail(err error) error {
	c.observer(err)
	return err
}

// Get issues a GET for path relative to the base URL and returns the JSON body.
func (c *Client) Get(ctx context.Context, path string, params url.Values) (json.RawMessage, error) {
	reqURL := c.baseURL + path
	if encoded := params.Encode(); encoded != "" {
		reqURL += "?" + encoded
	}

	c.logger.Debug("Calling journey API",
		zap.String("method", http.MethodGet),
		zap.String("url", reqURL))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, c.fail(err)
	}
	req.Header.Set("Accept", "application/json")
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, c.fail(err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, c.fail(fmt.Errorf("failed to read response body: %w", err))
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, c.fail(&ResponseError{
			StatusCode: resp.StatusCode,
			Method:     http.MethodGet,
			URL:        reqURL,
			Body:       body,
		})
	}

	if len(strings.TrimSpace(string(body))) == 0 {
		return json.RawMessage(`null`), nil
	}
	if !json.Valid(body) {
		return nil, c.fail(fmt.Errorf("failed to decode response: body from %s is not JSON", path))
	}

	c.logger.Debug("Journey API call successful",
		zap.String("path", path),
		zap.Int("status_code", resp.StatusCode),
		zap.Int("bytes", len(body)))

	return json.RawMessage(body), nil
}
