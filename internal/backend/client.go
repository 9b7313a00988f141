package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"treedash/internal/auth"
	"treedash/pkg/response"
)

// Client talks to the upstream booking API under /api.
type Client struct {
	baseURL string
	http    *http.Client
	log     *slog.Logger
}

func New(log *slog.Logger, baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		log:     log.With(slog.String("component", "backend")),
	}
}

// Error is a non-2xx upstream reply. Message is the upstream's own {error}
// text and is meant to be shown to the admin as is.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("upstream %d: %s", e.Status, e.Message)
}

func (e *Error) Unwrap() error {
	switch e.Status {
	case http.StatusUnauthorized, http.StatusForbidden:
		return response.ErrUnauthorized
	case http.StatusNotFound:
		return response.ErrNotFound
	case http.StatusConflict:
		return response.ErrConflict
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return response.ErrBadRequest
	}
	return nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode body: %w", err)
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}

	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if h := auth.Header(ctx); h != "" {
		req.Header.Set("Authorization", h)
	}
	if key := idempotencyKey(ctx, method, path); key != "" {
		req.Header.Set("Idempotency-Key", key)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	c.log.Debug("upstream call",
		slog.String("method", method),
		slog.String("path", path),
		slog.Int("status", resp.StatusCode),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &Error{Status: resp.StatusCode, Message: errorMessage(resp.StatusCode, data)}
	}

	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}

	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode %s %s: %w", method, path, err)
	}
	return nil
}

// idempotencyKey derives one key per write of a user action, so a retried
// action repeats the keys of its first attempt and fan-out writes stay distinct.
func idempotencyKey(ctx context.Context, method, path string) string {
	action := auth.ActionKey(ctx)
	if method == http.MethodGet || action == "" {
		return ""
	}
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte(action+" "+method+" "+path)).String()
}

func errorMessage(status int, data []byte) string {
	var body struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(data, &body); err == nil {
		if body.Error != "" {
			return body.Error
		}
		if body.Message != "" {
			return body.Message
		}
	}
	return http.StatusText(status)
}

// envelope accepts either a bare JSON value or an object wrapping it under
// one of keys.
type envelope struct {
	raw json.RawMessage
}

func (e *envelope) UnmarshalJSON(data []byte) error {
	e.raw = append(e.raw[:0], data...)
	return nil
}

func (e envelope) decode(out any, keys ...string) error {
	raw := bytes.TrimSpace(e.raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil
	}

	if raw[0] == '{' && len(keys) > 0 {
		var obj map[string]json.RawMessage
		if err := json.Unmarshal(raw, &obj); err != nil {
			return err
		}
		for _, k := range keys {
			if v, ok := obj[k]; ok {
				return json.Unmarshal(v, out)
			}
		}
	}

	return json.Unmarshal(raw, out)
}

func (c *Client) getList(ctx context.Context, path string, out any, keys ...string) error {
	var env envelope
	if err := c.do(ctx, http.MethodGet, path, nil, &env); err != nil {
		return err
	}
	return env.decode(out, keys...)
}
