package backend

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"treedash/pkg/response"
)

var billingReads = map[string]bool{
	"config":   true,
	"customer": true,
	"balance":  true,
}

var billingActions = map[string]bool{
	"payment-intent":  true,
	"subscription":    true,
	"payment-methods": true,
	"update-balance":  true,
	"send-receipt":    true,
}

func (c *Client) BillingGet(ctx context.Context, resource string) (json.RawMessage, error) {
	const op = "backend.BillingGet"

	if !billingReads[resource] {
		return nil, fmt.Errorf("%s: unknown resource %q: %w", op, resource, response.ErrNotFound)
	}

	var out json.RawMessage
	if err := c.do(ctx, http.MethodGet, "/api/billing/"+resource, nil, &out); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return out, nil
}

func (c *Client) BillingPost(ctx context.Context, action string, body json.RawMessage) (json.RawMessage, error) {
	const op = "backend.BillingPost"

	if !billingActions[action] {
		return nil, fmt.Errorf("%s: unknown action %q: %w", op, action, response.ErrNotFound)
	}
	if len(body) == 0 {
		body = json.RawMessage("{}")
	}

	var out json.RawMessage
	if err := c.do(ctx, http.MethodPost, "/api/billing/"+action, body, &out); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return out, nil
}
