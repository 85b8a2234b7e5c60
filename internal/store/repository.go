// Package store persists application records and exposes the change
// notification channel consumed by the live feed.
package store

import (
	"context"
	"errors"

	"github.com/bilgiconline/isealim/internal/application"
)

// NotifyChannel is the Postgres NOTIFY channel fired by the applications
// table trigger on every insert or update.
const NotifyChannel = "applications_changed"

// ErrNotFound is returned when no record exists for the given id.
var ErrNotFound = errors.New("application not found")

// Repository is the document-store contract: insert-one, update the single
// mutable field, and read the full ordered set.
type Repository interface {
	// Insert stores a new record, assigns its id and returns it.
	Insert(ctx context.Context, rec *application.Record) (string, error)

	// Get returns the record with the given id, or ErrNotFound.
	Get(ctx context.Context, id string) (*application.Record, error)

	// UpdateStatus sets the status of the record with the given id.
	// Applying the same status twice leaves the record unchanged.
	UpdateStatus(ctx context.Context, id string, status application.Status) error

	// List returns every record ordered by submitted_at descending, with
	// ties broken by id descending so the ordering is total.
	List(ctx context.Context) ([]application.Record, error)
}
