package feed

import (
	"context"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/bilgiconline/isealim/internal/store"
)

// Listener bridges Postgres NOTIFY events into feed refreshes. It holds one
// dedicated connection outside the pool and reconnects with backoff when the
// connection drops.
type Listener struct {
	pool *pgxpool.Pool
	feed *Feed
}

// NewListener creates a listener that drives f from pool's database.
func NewListener(pool *pgxpool.Pool, f *Feed) *Listener {
	return &Listener{pool: pool, feed: f}
}

// Run blocks listening for change notifications until ctx is cancelled.
// Intended to be started as a goroutine from main.
func (l *Listener) Run(ctx context.Context) {
	delay := time.Second
	const maxDelay = 30 * time.Second

	for {
		err := l.listen(ctx)
		if ctx.Err() != nil {
			return
		}

		slog.Warn("feed listener disconnected, reconnecting",
			"error", err,
			"retry_in", delay,
		)

		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return
		}

		delay *= 2
		if delay > maxDelay {
			delay = maxDelay
		}
	}
}

// listen acquires a dedicated connection, subscribes to the change channel
// and refreshes the feed on every notification. Returns when the connection
// fails or ctx is cancelled.
func (l *Listener) listen(ctx context.Context) error {
	poolConn, err := l.pool.Acquire(ctx)
	if err != nil {
		return err
	}

	// Take the connection out of the pool: it blocks in WaitForNotification
	// and must not be handed to other queries.
	conn := poolConn.Hijack()
	defer conn.Close(context.Background())

	if _, err := conn.Exec(ctx, "LISTEN "+store.NotifyChannel); err != nil {
		return err
	}

	// A write may have landed between the last snapshot and LISTEN taking
	// effect, so refresh once up front.
	if err := l.feed.Refresh(ctx); err != nil {
		slog.Warn("feed refresh failed", "error", err)
	}

	for {
		if _, err := conn.WaitForNotification(ctx); err != nil {
			return err
		}
		if err := l.feed.Refresh(ctx); err != nil {
			slog.Warn("feed refresh failed", "error", err)
		}
	}
}
