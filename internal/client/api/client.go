package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/iudanet/recordsync/pkg/api"
)

// DefaultTimeout таймаут HTTP клиента по умолчанию
const DefaultTimeout = 30 * time.Second

// ErrServerUnavailable сервер ответил 503: батч прерван или хранилище недоступно
var ErrServerUnavailable = errors.New("server unavailable")

// StatusError ответ сервера с кодом вне 2xx
type StatusError struct {
	Message    string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("server error (%d): %s", e.StatusCode, e.Message)
}

// Unwrap позволяет проверять 503 через errors.Is(err, ErrServerUnavailable)
func (e *StatusError) Unwrap() error {
	if e.StatusCode == http.StatusServiceUnavailable {
		return ErrServerUnavailable
	}
	return nil
}

// Client представляет HTTP клиент для взаимодействия с сервером синхронизации
type Client struct {
	httpClient *http.Client
	baseURL    string
}

// Option настраивает Client
type Option func(*Client)

// WithTimeout задает таймаут HTTP клиента
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = d
	}
}

// WithHTTPClient подменяет HTTP клиент целиком
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// NewClient создает новый API клиент
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				// Ограничиваем количество редиректов
				if len(via) >= 10 {
					return fmt.Errorf("stopped after 10 redirects")
				}
				return nil
			},
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Push отправляет локальный батч, сервер согласует его с удаленной репликой
func (c *Client) Push(ctx context.Context, data []api.Record) (*api.BatchResponse, error) {
	var resp api.BatchResponse
	if err := c.doRequest(ctx, http.MethodPost, "/sync/push", api.BatchRequest{Data: data}, &resp); err != nil {
		return nil, fmt.Errorf("push request failed: %w", err)
	}
	return &resp, nil
}

// Merge согласует батч по тем же правилам, что и Push
func (c *Client) Merge(ctx context.Context, data []api.Record) (*api.BatchResponse, error) {
	var resp api.BatchResponse
	if err := c.doRequest(ctx, http.MethodPost, "/sync/merge", api.BatchRequest{Data: data}, &resp); err != nil {
		return nil, fmt.Errorf("merge request failed: %w", err)
	}
	return &resp, nil
}

// Pull возвращает удаленные записи, id которых нет среди localIDs
func (c *Client) Pull(ctx context.Context, localIDs []string) ([]api.Record, error) {
	if localIDs == nil {
		localIDs = []string{}
	}

	var resp []api.Record
	if err := c.doRequest(ctx, http.MethodPost, "/sync/pull", api.PullRequest{LocalIDs: localIDs}, &resp); err != nil {
		return nil, fmt.Errorf("pull request failed: %w", err)
	}
	return resp, nil
}

// CheckConflicts сообщает о расхождениях без изменения удаленной реплики
func (c *Client) CheckConflicts(ctx context.Context, data []api.Record) (*api.ConflictsResponse, error) {
	var resp api.ConflictsResponse
	if err := c.doRequest(ctx, http.MethodPost, "/sync/checkConflicts", api.BatchRequest{Data: data}, &resp); err != nil {
		return nil, fmt.Errorf("check conflicts request failed: %w", err)
	}
	return &resp, nil
}

// Resolve применяет решения по конфликтам и возвращает обновленный локальный набор
func (c *Client) Resolve(ctx context.Context, req api.ResolveRequest) (*api.ResolveResponse, error) {
	var resp api.ResolveResponse
	if err := c.doRequest(ctx, http.MethodPost, "/sync/resolve", req, &resp); err != nil {
		return nil, fmt.Errorf("resolve request failed: %w", err)
	}
	return &resp, nil
}

// Health проверяет доступность сервера и его хранилища
func (c *Client) Health(ctx context.Context) (*api.HealthResponse, error) {
	var resp api.HealthResponse
	if err := c.doRequest(ctx, http.MethodGet, "/health", nil, &resp); err != nil {
		return nil, fmt.Errorf("health request failed: %w", err)
	}
	return &resp, nil
}

// doRequest выполняет HTTP запрос
func (c *Client) doRequest(ctx context.Context, method, path string, body, result any) error {
	url := c.baseURL + path

	var bodyReader io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		bodyReader = bytes.NewReader(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, bodyReader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	// Читаем тело ответа
	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	// Проверяем статус код
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		statusErr := &StatusError{StatusCode: resp.StatusCode, Message: strings.TrimSpace(string(respBody))}
		var errResp api.ErrorResponse
		if err := json.Unmarshal(respBody, &errResp); err == nil && errResp.Error != "" {
			statusErr.Message = errResp.Error
			if errResp.Message != "" {
				statusErr.Message += ": " + errResp.Message
			}
		}
		return statusErr
	}

	// Декодируем успешный ответ
	if result != nil {
		if err := json.Unmarshal(respBody, result); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return nil
}
