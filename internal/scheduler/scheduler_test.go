package scheduler

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"treedash/internal/auth"
)

type cleanerFunc func(ctx context.Context) (int, error)

func (f cleanerFunc) CleanupTrash(ctx context.Context) (int, error) {
	return f(ctx)
}

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestRunCleanupUsesServiceToken(t *testing.T) {
	var header, subject string
	cleaner := cleanerFunc(func(ctx context.Context) (int, error) {
		header = auth.Header(ctx)
		subject = auth.Subject(ctx)
		return 4, nil
	})

	s, err := New(discard(), cleaner, "0 3 * * *", "svc-token", time.UTC, time.Minute)
	if err != nil {
		t.Fatalf("new scheduler: %v", err)
	}

	n, err := s.RunCleanup(context.Background())
	if err != nil {
		t.Fatalf("run cleanup: %v", err)
	}
	if n != 4 {
		t.Fatalf("deleted = %d, want 4", n)
	}
	if header != "Bearer svc-token" || subject != "scheduler" {
		t.Fatalf("session = %q / %q", header, subject)
	}
}

func TestNewRejectsBadInput(t *testing.T) {
	cleaner := cleanerFunc(func(ctx context.Context) (int, error) { return 0, nil })

	if _, err := New(discard(), cleaner, "not a schedule", "svc-token", nil, time.Minute); err == nil {
		t.Fatal("expected an error for a bad cron spec")
	}
	if _, err := New(discard(), cleaner, "0 3 * * *", "", nil, time.Minute); err == nil {
		t.Fatal("expected an error without a service token")
	}
}

func TestStartStop(t *testing.T) {
	cleaner := cleanerFunc(func(ctx context.Context) (int, error) { return 0, nil })

	s, err := New(discard(), cleaner, "@every 1h", "svc-token", time.UTC, time.Minute)
	if err != nil {
		t.Fatalf("new scheduler: %v", err)
	}
	s.Start()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	s.Stop(ctx)
}
