package projects

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"treedash/pkg/sl"
)

type OrderWriter interface {
	ReorderProject(ctx context.Context, id string, order int) error
}

// Reorderer coalesces a burst of drag-reorder requests into one round of
// PUTs once the list has been still for the debounce delay.
type Reorderer struct {
	log    *slog.Logger
	writer OrderWriter
	delay  time.Duration

	mu      sync.Mutex
	timer   *time.Timer
	ctx     context.Context
	pending []string
	known   map[string]int
}

func NewReorderer(log *slog.Logger, writer OrderWriter, delay time.Duration) *Reorderer {
	return &Reorderer{
		log:    log,
		writer: writer,
		delay:  delay,
		known:  make(map[string]int),
	}
}

// Schedule records the latest order and (re)arms the timer. ctx keeps its
// values (auth) but not its cancellation, since the flush outlives the request.
func (r *Reorderer) Schedule(ctx context.Context, ids []string, current map[string]int) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.ctx = context.WithoutCancel(ctx)
	r.pending = append(r.pending[:0], ids...)
	for id, order := range current {
		if _, ok := r.known[id]; !ok {
			r.known[id] = order
		}
	}

	if r.timer != nil {
		r.timer.Stop()
	}
	r.timer = time.AfterFunc(r.delay, func() {
		if _, err := r.Flush(); err != nil {
			r.log.Error("Failed to persist project order", sl.Err(err))
		}
	})
}

// Flush writes the pending order now. It returns how many projects moved.
func (r *Reorderer) Flush() (int, error) {
	const op = "projects.Reorderer.Flush"

	r.mu.Lock()
	if r.timer != nil {
		r.timer.Stop()
		r.timer = nil
	}
	ids := r.pending
	r.pending = nil
	ctx := r.ctx
	if ctx == nil {
		ctx = context.Background()
	}

	moved := make(map[string]int)
	for i, id := range ids {
		if prev, ok := r.known[id]; !ok || prev != i {
			moved[id] = i
		}
	}
	r.mu.Unlock()

	if len(moved) == 0 {
		return 0, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	for id, order := range moved {
		g.Go(func() error {
			return r.writer.ReorderProject(gctx, id, order)
		})
	}
	if err := g.Wait(); err != nil {
		// forget what we thought we knew; the next reorder rewrites every row
		r.mu.Lock()
		r.known = make(map[string]int)
		r.mu.Unlock()
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	r.mu.Lock()
	for id, order := range moved {
		r.known[id] = order
	}
	r.mu.Unlock()

	r.log.Info("Project order saved", slog.Int("moved", len(moved)))
	return len(moved), nil
}

// Forget drops cached orders, e.g. after the project list is reloaded.
func (r *Reorderer) Forget(current map[string]int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.known = make(map[string]int, len(current))
	for id, order := range current {
		r.known[id] = order
	}
}
