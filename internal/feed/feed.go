// Package feed maintains an always-current ordered view of the application
// records and delivers a fresh snapshot to every subscriber whenever any
// record is inserted or updated.
//
// The feed itself is transport-agnostic: Refresh reloads the snapshot from
// the repository and fans it out. In production a Listener feeds Refresh
// from Postgres NOTIFY events, so every process observes the same totally
// ordered view regardless of which session performed the write.
package feed

import (
	"context"
	"sync"

	"github.com/bilgiconline/isealim/internal/application"
	"github.com/bilgiconline/isealim/internal/store"
)

// Feed fans out ordered record snapshots to subscribers.
type Feed struct {
	repo store.Repository

	mu     sync.Mutex
	subs   map[uint64]chan []application.Record
	nextID uint64
}

// New creates a feed reading snapshots from repo.
func New(repo store.Repository) *Feed {
	return &Feed{
		repo: repo,
		subs: make(map[uint64]chan []application.Record),
	}
}

// Subscribe registers a subscriber and primes it with the current snapshot.
//
// The returned channel carries full ordered snapshots, newest submission
// first. Slow consumers only ever see the latest snapshot: a pending stale
// snapshot is replaced rather than queued.
//
// The release function unregisters the subscription and closes the channel.
// It is safe to call more than once; only the first call has effect.
func (f *Feed) Subscribe(ctx context.Context) (<-chan []application.Record, func(), error) {
	snapshot, err := f.repo.List(ctx)
	if err != nil {
		return nil, nil, err
	}

	ch := make(chan []application.Record, 1)
	ch <- snapshot

	f.mu.Lock()
	id := f.nextID
	f.nextID++
	f.subs[id] = ch
	f.mu.Unlock()

	var once sync.Once
	release := func() {
		once.Do(func() {
			f.mu.Lock()
			delete(f.subs, id)
			f.mu.Unlock()
			close(ch)
		})
	}
	return ch, release, nil
}

// Refresh reloads the snapshot from the repository and delivers it to every
// subscriber. Called on every change notification.
func (f *Feed) Refresh(ctx context.Context) error {
	snapshot, err := f.repo.List(ctx)
	if err != nil {
		return err
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	for _, ch := range f.subs {
		// Replace any undelivered snapshot so subscribers always read
		// the latest state.
		select {
		case <-ch:
		default:
		}
		select {
		case ch <- snapshot:
		default:
		}
	}
	return nil
}

// SubscriberCount returns the number of active subscriptions.
func (f *Feed) SubscriberCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.subs)
}
