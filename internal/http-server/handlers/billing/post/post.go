package post

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"treedash/internal/http-server/handlers/respond"
)

// maxBody bounds a billing request body.
const maxBody = 64 << 10

type BillingPoster interface {
	BillingPost(ctx context.Context, action string, body json.RawMessage) (json.RawMessage, error)
}

func New(log *slog.Logger, poster BillingPoster) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.billing.post.New"

		log := log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		action := chi.URLParam(r, "action")
		if action == "" {
			respond.Required(w, r, log, "action")
			return
		}

		body, err := io.ReadAll(io.LimitReader(r.Body, maxBody))
		if err != nil {
			respond.DecodeFailed(w, r, log, err)
			return
		}
		if len(body) > 0 && !json.Valid(body) {
			respond.DecodeFailed(w, r, log, errors.New("body is not valid JSON"))
			return
		}

		out, err := poster.BillingPost(r.Context(), action, body)
		if err != nil {
			respond.Fail(w, r, log, err, "send billing "+action)
			return
		}

		log.Info("Billing action sent", slog.String("action", action))
		render.JSON(w, r, out)
	}
}
