package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/exp/slog"
)

const userAgent = "vaultkeeper-cli/1.0"

type httpClient struct {
	client  *http.Client
	log     *slog.Logger
	baseURL string
	token   string
}

func newHTTPClient(baseURL string, timeout time.Duration, log *slog.Logger) *httpClient {
	return &httpClient{
		client: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				MaxIdleConns:        10,
				IdleConnTimeout:     90 * time.Second,
				MaxIdleConnsPerHost: 10,
			},
		},
		log:     log.With("component", "http_client"),
		baseURL: baseURL,
	}
}

func (h *httpClient) setToken(token string) {
	h.token = token
}

func (h *httpClient) health(ctx context.Context) error {
	return h.call(ctx, http.MethodGet, "/api/health", nil, nil)
}

func (h *httpClient) register(ctx context.Context, email, password string) error {
	return h.call(ctx, http.MethodPost, "/api/auth/register", credentials{Email: email, Password: password}, nil)
}

func (h *httpClient) login(ctx context.Context, email, password string) (string, error) {
	var out tokenResponse
	if err := h.call(ctx, http.MethodPost, "/api/auth/login", credentials{Email: email, Password: password}, &out); err != nil {
		return "", err
	}
	return out.Token, nil
}

func (h *httpClient) listItems(ctx context.Context) ([]Item, error) {
	var items []Item
	if err := h.call(ctx, http.MethodGet, "/api/vault", nil, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (h *httpClient) getItem(ctx context.Context, id string) (Item, error) {
	var item Item
	err := h.call(ctx, http.MethodGet, "/api/vault/"+url.PathEscape(id), nil, &item)
	return item, err
}

func (h *httpClient) createItem(ctx context.Context, req createItemRequest) (Item, error) {
	var item Item
	err := h.call(ctx, http.MethodPost, "/api/vault", req, &item)
	return item, err
}

func (h *httpClient) updateItem(ctx context.Context, req updateItemRequest) (Item, error) {
	var item Item
	err := h.call(ctx, http.MethodPut, "/api/vault", req, &item)
	return item, err
}

func (h *httpClient) deleteItem(ctx context.Context, id string) error {
	return h.call(ctx, http.MethodDelete, "/api/vault", idRequest{ID: id}, nil)
}

// call sends body as JSON and decodes a 2xx answer into result when it is
// not nil. Other statuses become errors via statusError.
func (h *httpClient) call(ctx context.Context, method, path string, body, result any) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, h.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if h.token != "" {
		req.Header.Set("Authorization", "Bearer "+h.token)
	}

	h.log.Debug("sending request", "method", method, "path", path)

	resp, err := h.client.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	h.log.Debug("response received", "status", resp.StatusCode, "path", path)

	if resp.StatusCode >= http.StatusBadRequest {
		return statusError(resp.StatusCode, data)
	}

	if result != nil {
		if err := json.Unmarshal(data, result); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}

func statusError(status int, body []byte) error {
	var msg messageResponse
	_ = json.Unmarshal(body, &msg)

	switch status {
	case http.StatusUnauthorized:
		if msg.Message == "Invalid credentials" {
			return &APIError{Status: status, Message: msg.Message}
		}
		return ErrUnauthenticated
	case http.StatusForbidden:
		return ErrSessionExpired
	case http.StatusNotFound:
		return ErrNotFound
	default:
		return &APIError{Status: status, Message: msg.Message}
	}
}
