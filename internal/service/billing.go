package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
)

// BillingGet passes a billing read through to the upstream unchanged.
func (s *Service) BillingGet(ctx context.Context, resource string) (json.RawMessage, error) {
	const op = "service.BillingGet"

	out, err := s.backend.BillingGet(ctx, resource)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return out, nil
}

func (s *Service) BillingPost(ctx context.Context, action string, body json.RawMessage) (json.RawMessage, error) {
	const op = "service.BillingPost"

	out, err := s.backend.BillingPost(ctx, action, body)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	s.log.Info("Billing action sent", slog.String("action", action))
	return out, nil
}
