package projects

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"
)

type fakeOrderWriter struct {
	mu     sync.Mutex
	calls  map[string]int
	writes int
	fail   error
	done   chan struct{}
}

func (f *fakeOrderWriter) ReorderProject(_ context.Context, id string, order int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail != nil {
		return f.fail
	}
	if f.calls == nil {
		f.calls = make(map[string]int)
	}
	f.calls[id] = order
	f.writes++
	if f.done != nil && f.writes == 1 {
		close(f.done)
	}
	return nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestFlushWritesOnlyMovedProjects(t *testing.T) {
	w := &fakeOrderWriter{}
	r := NewReorderer(discardLogger(), w, time.Hour)

	current := map[string]int{"a": 0, "b": 1, "c": 2}
	r.Schedule(context.Background(), []string{"b", "a", "c"}, current)

	n, err := r.Flush()
	if err != nil {
		t.Fatal(err)
	}
	if n != 2 || w.calls["a"] != 1 || w.calls["b"] != 0 {
		t.Fatalf("moved=%d calls=%v", n, w.calls)
	}
	if _, ok := w.calls["c"]; ok {
		t.Fatal("unmoved project was written")
	}

	n, err = r.Flush()
	if err != nil || n != 0 {
		t.Fatalf("second flush moved=%d err=%v", n, err)
	}
}

func TestScheduleCoalescesBurst(t *testing.T) {
	w := &fakeOrderWriter{done: make(chan struct{})}
	r := NewReorderer(discardLogger(), w, 20*time.Millisecond)

	current := map[string]int{"a": 0, "b": 1}
	r.Schedule(context.Background(), []string{"b", "a"}, current)
	r.Schedule(context.Background(), []string{"a", "b"}, current)
	r.Schedule(context.Background(), []string{"b", "a"}, current)

	select {
	case <-w.done:
	case <-time.After(2 * time.Second):
		t.Fatal("debounced flush never ran")
	}

	time.Sleep(50 * time.Millisecond)
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.writes != 2 {
		t.Fatalf("expected one burst of 2 writes, got %d", w.writes)
	}
}

func TestFlushErrorResetsKnownOrder(t *testing.T) {
	w := &fakeOrderWriter{fail: errors.New("boom")}
	r := NewReorderer(discardLogger(), w, time.Hour)

	r.Schedule(context.Background(), []string{"b", "a"}, map[string]int{"a": 0, "b": 1})
	if _, err := r.Flush(); err == nil {
		t.Fatal("expected error")
	}

	w.fail = nil
	r.Schedule(context.Background(), []string{"b", "a"}, nil)
	n, err := r.Flush()
	if err != nil || n != 2 {
		t.Fatalf("retry moved=%d err=%v", n, err)
	}
}
