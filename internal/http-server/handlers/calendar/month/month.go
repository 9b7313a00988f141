package month

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"treedash/api"
	"treedash/internal/calendar"
	"treedash/internal/http-server/handlers/respond"
	"treedash/pkg/response"
)

type MonthViewer interface {
	MonthView(ctx context.Context, year int, month time.Month, layout string) (api.MonthView, error)
	SelectedDate(ctx context.Context) string
}

type Response struct {
	response.Response
	Calendar api.MonthView `json:"calendar"`
}

func New(log *slog.Logger, viewer MonthViewer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.calendar.month.New"

		log := log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		q := r.URL.Query()

		// without an explicit month, open on the remembered date
		year, month := 0, 0
		if d, err := calendar.ParseDate(viewer.SelectedDate(r.Context())); err == nil {
			year, month = d.Year(), int(d.Month())
		}

		if v := q.Get("year"); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil {
				log.Error("year is not a number", slog.String("year", v))
				w.WriteHeader(http.StatusBadRequest)
				render.JSON(w, r, response.Error(string(response.BAD_REQUEST), "year must be a number"))
				return
			}
			year = n
		}
		if v := q.Get("month"); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil {
				log.Error("month is not a number", slog.String("month", v))
				w.WriteHeader(http.StatusBadRequest)
				render.JSON(w, r, response.Error(string(response.BAD_REQUEST), "month must be a number"))
				return
			}
			month = n
		}

		view, err := viewer.MonthView(r.Context(), year, time.Month(month), q.Get("layout"))
		if err != nil {
			respond.Fail(w, r, log, err, "load calendar")
			return
		}

		log.Info("Month view built", slog.Int("year", view.Year), slog.Int("month", view.Month))
		render.JSON(w, r, Response{Calendar: view})
	}
}
