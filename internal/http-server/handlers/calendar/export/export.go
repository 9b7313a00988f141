package export

import (
	"context"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"

	"treedash/internal/http-server/handlers/respond"
	"treedash/pkg/sl"
)

type CalendarExporter interface {
	ExportICS(ctx context.Context, from, to string) (string, error)
}

func New(log *slog.Logger, exporter CalendarExporter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.calendar.export.New"

		log := log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		q := r.URL.Query()

		feed, err := exporter.ExportICS(r.Context(), q.Get("from"), q.Get("to"))
		if err != nil {
			respond.Fail(w, r, log, err, "export calendar")
			return
		}

		w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
		w.Header().Set("Content-Disposition", `attachment; filename="treedash.ics"`)
		w.WriteHeader(http.StatusOK)
		if _, err := io.WriteString(w, feed); err != nil {
			log.Error("Failed to write calendar feed", sl.Err(err))
			return
		}

		log.Info("Calendar exported", slog.Int("bytes", len(feed)))
	}
}
