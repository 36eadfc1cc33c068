package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/dverbis/itemkeeper/internal/client/models"
)

// maxErrorBody caps how much of a failure response is read when looking for
// a detail message.
const maxErrorBody = 64 << 10

// HTTPClient implements Client over plain HTTP/JSON.
type HTTPClient struct {
	baseURL string
	http    *http.Client
}

// NewHTTPClient returns a client for the API rooted at baseURL
// (e.g. "http://127.0.0.1:8080"). A timeout of 0 disables the
// per-request deadline.
func NewHTTPClient(baseURL string, timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

type registerRequest struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	Password string `json:"password"`
}

func (c *HTTPClient) Login(ctx context.Context, username, password string) (string, *models.User, error) {
	status, body, err := c.do(ctx, http.MethodPost, "/auth/login", "", loginRequest{Username: username, Password: password})
	if err != nil {
		return "", nil, err
	}

	switch {
	case status == http.StatusOK:
		var resp loginResponse
		if err := json.Unmarshal(body, &resp); err != nil {
			return "", nil, newError(KindUnreachable, "", fmt.Errorf("decoding login response: %w", err))
		}
		return resp.Token, resp.User, nil
	case status == http.StatusUnauthorized:
		return "", nil, newError(KindAuthRejected, detailOf(body), nil)
	case status < 500:
		return "", nil, newError(KindRequestRejected, detailOf(body), nil)
	default:
		return "", nil, newError(KindUnreachable, detailOf(body), nil)
	}
}

func (c *HTTPClient) Register(ctx context.Context, email, username, password string) (*models.User, error) {
	status, body, err := c.do(ctx, http.MethodPost, "/auth/register", "", registerRequest{Email: email, Username: username, Password: password})
	if err != nil {
		return nil, err
	}

	switch {
	case status == http.StatusOK || status == http.StatusCreated:
		var user models.User
		if err := json.Unmarshal(body, &user); err != nil {
			return nil, newError(KindUnreachable, "", fmt.Errorf("decoding register response: %w", err))
		}
		return &user, nil
	case status == http.StatusBadRequest || status == http.StatusConflict || status == http.StatusUnprocessableEntity:
		return nil, newError(KindValidationRejected, detailOf(body), nil)
	case status < 500:
		return nil, newError(KindRequestRejected, detailOf(body), nil)
	default:
		return nil, newError(KindUnreachable, detailOf(body), nil)
	}
}

func (c *HTTPClient) Me(ctx context.Context, token string) (*models.User, error) {
	status, body, err := c.do(ctx, http.MethodGet, "/auth/me", token, nil)
	if err != nil {
		return nil, err
	}
	if status != http.StatusOK {
		return nil, protectedError(status, body)
	}

	var user models.User
	if err := json.Unmarshal(body, &user); err != nil {
		return nil, newError(KindUnreachable, "", fmt.Errorf("decoding user: %w", err))
	}
	return &user, nil
}

func (c *HTTPClient) ListItems(ctx context.Context, token string) ([]models.Item, error) {
	status, body, err := c.do(ctx, http.MethodGet, "/items", token, nil)
	if err != nil {
		return nil, err
	}
	if status != http.StatusOK {
		return nil, protectedError(status, body)
	}

	var items []models.Item
	if err := json.Unmarshal(body, &items); err != nil {
		return nil, newError(KindUnreachable, "", fmt.Errorf("decoding items: %w", err))
	}
	return items, nil
}

func (c *HTTPClient) CreateItem(ctx context.Context, token string, draft models.ItemDraft) (*models.Item, error) {
	status, body, err := c.do(ctx, http.MethodPost, "/items", token, draft)
	if err != nil {
		return nil, err
	}
	if status != http.StatusOK && status != http.StatusCreated {
		return nil, protectedError(status, body)
	}
	return decodeItem(body)
}

func (c *HTTPClient) UpdateItem(ctx context.Context, token, id string, draft models.ItemDraft) (*models.Item, error) {
	status, body, err := c.do(ctx, http.MethodPut, "/items/"+id, token, draft)
	if err != nil {
		return nil, err
	}
	if status != http.StatusOK {
		return nil, protectedError(status, body)
	}
	return decodeItem(body)
}

func (c *HTTPClient) DeleteItem(ctx context.Context, token, id string) error {
	status, body, err := c.do(ctx, http.MethodDelete, "/items/"+id, token, nil)
	if err != nil {
		return err
	}
	if status != http.StatusOK && status != http.StatusNoContent {
		return protectedError(status, body)
	}
	return nil
}

// do performs one round trip. A non-nil error is always a transport-level
// failure of kind KindUnreachable; HTTP-level failures are left to the
// caller, which knows the endpoint's status semantics.
func (c *HTTPClient) do(ctx context.Context, method, path, token string, payload any) (int, []byte, error) {
	var reqBody io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return 0, nil, newError(KindUnreachable, "", fmt.Errorf("encoding request: %w", err))
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return 0, nil, newError(KindUnreachable, "", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, nil, newError(KindUnreachable, "", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if err != nil {
		return 0, nil, newError(KindUnreachable, "", err)
	}

	return resp.StatusCode, body, nil
}

// protectedError maps a failure status on a credentialed endpoint. A 401 or
// 403 means the credential was rejected or insufficient, which the session
// layer treats as an expired session.
func protectedError(status int, body []byte) *Error {
	switch {
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return newError(KindSessionExpired, detailOf(body), nil)
	case status < 500:
		return newError(KindRequestRejected, detailOf(body), nil)
	default:
		return newError(KindUnreachable, detailOf(body), nil)
	}
}

func decodeItem(body []byte) (*models.Item, error) {
	var item models.Item
	if err := json.Unmarshal(body, &item); err != nil {
		return nil, newError(KindUnreachable, "", fmt.Errorf("decoding item: %w", err))
	}
	return &item, nil
}

// detailOf extracts the server's {"detail": "..."} message, returning ""
// when the body is not in that shape.
func detailOf(body []byte) string {
	var payload struct {
		Detail string `json:"detail"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return ""
	}
	return payload.Detail
}
