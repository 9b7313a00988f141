package get

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"treedash/internal/http-server/handlers/respond"
)

type BillingReader interface {
	BillingGet(ctx context.Context, resource string) (json.RawMessage, error)
}

func New(log *slog.Logger, reader BillingReader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.billing.get.New"

		log := log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		resource := chi.URLParam(r, "resource")
		if resource == "" {
			respond.Required(w, r, log, "resource")
			return
		}

		out, err := reader.BillingGet(r.Context(), resource)
		if err != nil {
			respond.Fail(w, r, log, err, "load billing "+resource)
			return
		}

		log.Info("Billing data retrieved", slog.String("resource", resource))
		render.JSON(w, r, out)
	}
}
