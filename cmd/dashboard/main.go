package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/chi/v5"

	"treedash/internal/auth"
	"treedash/internal/backend"
	"treedash/internal/config"
	billingGet "treedash/internal/http-server/handlers/billing/get"
	billingPost "treedash/internal/http-server/handlers/billing/post"
	bookingGet "treedash/internal/http-server/handlers/bookings/get"
	bookingReschedule "treedash/internal/http-server/handlers/bookings/reschedule"
	bookingStatus "treedash/internal/http-server/handlers/bookings/status"
	bookingTrash "treedash/internal/http-server/handlers/bookings/trash"
	calendarAgenda "treedash/internal/http-server/handlers/calendar/agenda"
	calendarDay "treedash/internal/http-server/handlers/calendar/day"
	calendarExport "treedash/internal/http-server/handlers/calendar/export"
	calendarMonth "treedash/internal/http-server/handlers/calendar/month"
	calendarRelease "treedash/internal/http-server/handlers/calendar/release"
	calendarSelected "treedash/internal/http-server/handlers/calendar/selected"
	calendarToggle "treedash/internal/http-server/handlers/calendar/toggle"
	calendarWeek "treedash/internal/http-server/handlers/calendar/week"
	eventDelete "treedash/internal/http-server/handlers/events/delete"
	eventGet "treedash/internal/http-server/handlers/events/get"
	eventSave "treedash/internal/http-server/handlers/events/save"
	projectDelete "treedash/internal/http-server/handlers/projects/delete"
	projectGet "treedash/internal/http-server/handlers/projects/get"
	projectReorder "treedash/internal/http-server/handlers/projects/reorder"
	projectSave "treedash/internal/http-server/handlers/projects/save"
	trashCleanup "treedash/internal/http-server/handlers/trash/cleanup"
	trashDelete "treedash/internal/http-server/handlers/trash/delete"
	trashGet "treedash/internal/http-server/handlers/trash/get"
	trashRestore "treedash/internal/http-server/handlers/trash/restore"
	"treedash/internal/lock"
	"treedash/internal/scheduler"
	svc "treedash/internal/service"
	"treedash/internal/storage/postgres"
	"treedash/pkg/handlers/slogpretty"
	"treedash/pkg/middleware/mwLogger"
	"treedash/pkg/sl"
)

const (
	envLocal = "local"
	envDev   = "dev"
	envProd  = "prod"
)

func CORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, Idempotency-Key")
		w.Header().Set("Content-Type", "application/json; charset=utf-8")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func main() {

	cfg := config.MustLoad()

	log := setupLogger(cfg.Env)

	log.Info("Starting dashboard", slog.String("env", cfg.Env))
	log.Debug("Debug messages are enabled")

	storage, err := postgres.New(cfg.StoragePath)
	if err != nil {
		log.Error("Failed to init storage", sl.Err(err))
		os.Exit(1)
	}

	if err := storage.Migrate(context.Background()); err != nil {
		log.Error("Failed to migrate storage", sl.Err(err))
		os.Exit(1)
	}

	locker, err := lock.NewRedisLock(cfg.RedisAddr)
	if err != nil {
		log.Error("Failed to init redis lock", sl.Err(err))
		os.Exit(1)
	}

	upstream := backend.New(log, cfg.Backend.BaseURL, cfg.Backend.Timeout)

	service := svc.NewService(log, upstream, storage, locker, svc.Options{
		Location:        cfg.Dashboard.Location(),
		SessionTTL:      cfg.Dashboard.SessionTTL,
		SubmitTimeout:   cfg.Dashboard.SubmitTimeout,
		ReorderDebounce: cfg.Dashboard.ReorderDebounce,
		ScrollerSpan:    cfg.Dashboard.ScrollerSpan,
	})

	// the event form shares its page with the booking list
	service.OnChange(service.ReloadBookings)

	var cron *scheduler.Scheduler
	if cfg.Cleanup.Enabled {
		cron, err = scheduler.New(log, service, cfg.Cleanup.Schedule, cfg.Backend.ServiceToken, cfg.Dashboard.Location(), cfg.Backend.Timeout)
		if err != nil {
			log.Warn("Scheduled trash cleanup disabled", sl.Err(err))
		} else {
			cron.Start()
		}
	}

	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(mwLogger.New(log))
	router.Use(middleware.Recoverer)
	router.Use(CORS)

	router.Route("/dashboard", func(r chi.Router) {
		r.Use(auth.Middleware(log))

		// Calendar
		r.Get("/calendar/month", calendarMonth.New(log, service))
		r.Get("/calendar/week", calendarWeek.New(log, service))
		r.Get("/calendar/days/{date}", calendarDay.New(log, service))
		r.Post("/calendar/days/{date}/toggle", calendarToggle.New(log, service))
		r.Post("/calendar/days/{date}/release", calendarRelease.New(log, service))
		r.Get("/calendar/agenda", calendarAgenda.New(log, service))
		r.Get("/calendar/selected", calendarSelected.New(log, service))
		r.Put("/calendar/selected", calendarSelected.NewSet(log, service))
		r.Get("/calendar.ics", calendarExport.New(log, service))

		// Events
		r.Get("/events", eventGet.New(log, service))
		r.Post("/events", eventSave.New(log, service))
		r.Put("/events/{id}", eventSave.New(log, service))
		r.Delete("/events/{id}", eventDelete.New(log, service))

		// Bookings
		r.Get("/bookings", bookingGet.New(log, service))
		r.Patch("/bookings/{id}/status", bookingStatus.New(log, service))
		r.Post("/bookings/move", bookingReschedule.New(log, service))
		r.Post("/bookings/{id}/trash", bookingTrash.New(log, service))

		// Trash
		r.Get("/trash", trashGet.New(log, service))
		r.Post("/trash/cleanup", trashCleanup.New(log, service))
		r.Post("/trash/{id}/restore", trashRestore.New(log, service))
		r.Delete("/trash/{id}", trashDelete.New(log, service))

		// Projects
		r.Get("/projects", projectGet.New(log, service))
		r.Get("/projects/{id}", projectGet.New(log, service))
		r.Post("/projects", projectSave.New(log, service))
		r.Put("/projects/{id}", projectSave.New(log, service))
		r.Delete("/projects/{id}", projectDelete.New(log, service))
		r.Post("/projects/order", projectReorder.New(log, service))

		// Billing
		r.Get("/billing/{resource}", billingGet.New(log, service))
		r.Post("/billing/{action}", billingPost.New(log, service))
	})

	serv := &http.Server{
		Addr:         cfg.Address,
		Handler:      router,
		ReadTimeout:  cfg.HTTPServer.Timeout,
		WriteTimeout: cfg.HTTPServer.Timeout,
		IdleTimeout:  cfg.HTTPServer.IdleTimeout,
	}

	serverErrCh := make(chan error, 1)

	go func() {
		log.Info("Starting HTTP server", slog.String("addr", cfg.Address))
		if err := serv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrCh <- err
		} else {
			serverErrCh <- nil
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		log.Info("Received shutdown signal", slog.String("signal", sig.String()))
	case err := <-serverErrCh:
		if err != nil {
			log.Error("HTTP server stopped unexpectedly", sl.Err(err))
		} else {
			log.Info("HTTP server stopped gracefully")
		}
	}

	shutdownTimeout := cfg.HTTPServer.ShutdownTimeout

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	log.Info("Shutting down HTTP server", slog.String("timeout", shutdownTimeout.String()))

	if err := serv.Shutdown(ctx); err != nil {
		log.Error("Server shutdown failed", sl.Err(err))
	} else {
		log.Info("Server shutdown complete")
	}

	if cron != nil {
		cron.Stop(ctx)
		log.Info("Scheduler stopped")
	}

	if moved, err := service.FlushReorder(); err != nil {
		log.Error("Failed to flush pending project order", sl.Err(err))
	} else if moved > 0 {
		log.Info("Pending project order flushed", slog.Int("moved", moved))
	}

	if err := storage.Close(); err != nil {
		log.Error("Failed to close storage", sl.Err(err))
	} else {
		log.Info("Storage closed")
	}

	if err := locker.Close(); err != nil {
		log.Error("Failed to close locker", sl.Err(err))
	} else {
		log.Info("Locker closed")
	}

	log.Info("Shutdown finished, server stopped")

}

func setupLogger(env string) *slog.Logger {
	var log *slog.Logger
	switch env {
	case envLocal:
		log = setupPrettySlog()
	case envDev:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}),
		)
	case envProd:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}),
		)
	default:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}),
		)
	}

	return log
}

func setupPrettySlog() *slog.Logger {
	opts := slogpretty.PrettyHandlerOptions{
		SlogOpts: &slog.HandlerOptions{
			Level: slog.LevelDebug,
		},
	}

	handler := opts.NewPrettyHandler(os.Stdout)

	return slog.New(handler)
}
