// Package analytics records link clicks off the redirect path.
//
// A Recorder accepts click events without blocking, queues them in a
// bounded buffer and persists them from a fixed pool of workers. When the
// buffer is full the event details are dropped but the click itself is
// kept in a per-link overflow counter that is flushed into the link's
// click count, so redirects are never delayed and clicks are never lost.
package analytics

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/vadimbarashkov/trimmer/internal/entity"
	"golang.org/x/sync/errgroup"
)

const (
	defaultBufferSize    = 1024
	defaultWorkers       = 4
	defaultWriteTimeout  = 2 * time.Second
	defaultMaxRetries    = 3
	defaultRetryInterval = 50 * time.Millisecond
	defaultDrainTimeout  = 5 * time.Second
	defaultFlushInterval = 100 * time.Millisecond
)

type clickStore interface {
	SaveClick(ctx context.Context, event entity.ClickEvent) error
	IncrementClick(ctx context.Context, linkID string) error
}

// Options configures a Recorder. Zero values fall back to defaults.
type Options struct {
	BufferSize    int
	Workers       int
	WriteTimeout  time.Duration
	MaxRetries    uint64
	RetryInterval time.Duration
	DrainTimeout  time.Duration
	FlushInterval time.Duration // FlushInterval paces the overflow counter flushes.
	Logger        *slog.Logger
}

// Stats is a snapshot of the Recorder counters.
type Stats struct {
	Queued   int64 `json:"queued"`
	Recorded int64 `json:"recorded"`
	Dropped  int64 `json:"dropped"` // Dropped counts events whose details were not queued.
	Counted  int64 `json:"counted"` // Counted counts dropped events flushed into click counts.
	Failed   int64 `json:"failed"`
	Pending  int   `json:"pending"`
}

// Recorder persists click events asynchronously.
type Recorder struct {
	store  clickStore
	queue  chan entity.ClickEvent
	opts   Options
	logger *slog.Logger

	queued   atomic.Int64
	recorded atomic.Int64
	dropped  atomic.Int64
	counted  atomic.Int64
	failed   atomic.Int64

	overflow sync.Map // link ID -> *atomic.Int64
}

func New(store clickStore, opts Options) *Recorder {
	if opts.BufferSize <= 0 {
		opts.BufferSize = defaultBufferSize
	}
	if opts.Workers <= 0 {
		opts.Workers = defaultWorkers
	}
	if opts.WriteTimeout <= 0 {
		opts.WriteTimeout = defaultWriteTimeout
	}
	if opts.MaxRetries == 0 {
		opts.MaxRetries = defaultMaxRetries
	}
	if opts.RetryInterval <= 0 {
		opts.RetryInterval = defaultRetryInterval
	}
	if opts.DrainTimeout <= 0 {
		opts.DrainTimeout = defaultDrainTimeout
	}
	if opts.FlushInterval <= 0 {
		opts.FlushInterval = defaultFlushInterval
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	return &Recorder{
		store:  store,
		queue:  make(chan entity.ClickEvent, opts.BufferSize),
		opts:   opts,
		logger: opts.Logger,
	}
}

// Record queues event for persistence and reports whether its details were
// accepted. It never blocks. When the queue is full only the click is kept.
func (r *Recorder) Record(event entity.ClickEvent) bool {
	select {
	case r.queue <- event:
		r.queued.Add(1)
		return true
	default:
		r.dropped.Add(1)
		r.overflowCounter(event.LinkID).Add(1)
		r.logger.Warn("click queue is full, keeping count only",
			slog.String("link_id", event.LinkID),
			slog.Int("buffer_size", r.opts.BufferSize),
		)
		return false
	}
}

func (r *Recorder) overflowCounter(linkID string) *atomic.Int64 {
	if c, ok := r.overflow.Load(linkID); ok {
		return c.(*atomic.Int64)
	}
	c, _ := r.overflow.LoadOrStore(linkID, new(atomic.Int64))
	return c.(*atomic.Int64)
}

// Run starts the workers and blocks until ctx is done and the queued events
// are drained or the drain timeout passes. Overflow counts are flushed one
// last time after the workers stop.
func (r *Recorder) Run(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)

	for i := 0; i < r.opts.Workers; i++ {
		g.Go(func() error {
			r.work(gctx)
			return nil
		})
	}

	g.Go(func() error {
		r.flushLoop(gctx)
		return nil
	})

	err := g.Wait()

	flushCtx, cancel := context.WithTimeout(context.Background(), r.opts.DrainTimeout)
	defer cancel()
	r.flush(flushCtx)

	return err
}

func (r *Recorder) Stats() Stats {
	return Stats{
		Queued:   r.queued.Load(),
		Recorded: r.recorded.Load(),
		Dropped:  r.dropped.Load(),
		Counted:  r.counted.Load(),
		Failed:   r.failed.Load(),
		Pending:  len(r.queue),
	}
}

func (r *Recorder) work(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			r.drain()
			return
		case event := <-r.queue:
			r.write(context.Background(), event)
		}
	}
}

func (r *Recorder) drain() {
	ctx, cancel := context.WithTimeout(context.Background(), r.opts.DrainTimeout)
	defer cancel()

	for {
		select {
		case <-ctx.Done():
			if n := len(r.queue); n > 0 {
				r.logger.Warn("drain timeout exceeded, events left unwritten", slog.Int("pending", n))
			}
			return
		case event := <-r.queue:
			r.write(ctx, event)
		default:
			return
		}
	}
}

func (r *Recorder) write(ctx context.Context, event entity.ClickEvent) {
	operation := func() error {
		ctx, cancel := context.WithTimeout(ctx, r.opts.WriteTimeout)
		defer cancel()

		err := r.store.SaveClick(ctx, event)
		if errors.Is(err, entity.ErrLinkNotFound) {
			return backoff.Permanent(err)
		}
		return err
	}

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = r.opts.RetryInterval

	err := backoff.Retry(operation, backoff.WithContext(backoff.WithMaxRetries(b, r.opts.MaxRetries), ctx))
	if err != nil {
		r.failed.Add(1)
		r.logger.Error("failed to record click",
			slog.String("link_id", event.LinkID),
			slog.Any("err", err),
		)
		return
	}

	r.recorded.Add(1)
}

func (r *Recorder) flushLoop(ctx context.Context) {
	ticker := time.NewTicker(r.opts.FlushInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.flush(context.Background())
		}
	}
}

// flush moves the overflow counts into the store. Counts that could not be
// written are put back for the next flush.
func (r *Recorder) flush(ctx context.Context) {
	r.overflow.Range(func(key, value any) bool {
		linkID, c := key.(string), value.(*atomic.Int64)

		n := c.Swap(0)
		for written := int64(0); written < n; written++ {
			if err := r.increment(ctx, linkID); err != nil {
				left := n - written
				if errors.Is(err, entity.ErrLinkNotFound) {
					r.failed.Add(left)
				} else {
					c.Add(left)
				}
				r.logger.Error("failed to flush click count",
					slog.String("link_id", linkID),
					slog.Int64("pending", left),
					slog.Any("err", err),
				)
				return ctx.Err() == nil
			}
			r.counted.Add(1)
		}

		return true
	})
}

func (r *Recorder) increment(ctx context.Context, linkID string) error {
	ctx, cancel := context.WithTimeout(ctx, r.opts.WriteTimeout)
	defer cancel()

	return r.store.IncrementClick(ctx, linkID)
}
