// Package review implements the reviewer-side status workflow over
// submitted applications.
package review

import (
	"context"
	"fmt"

	"github.com/bilgiconline/isealim/internal/application"
	"github.com/bilgiconline/isealim/internal/store"
)

// Manager applies reviewer decisions to application records.
type Manager struct {
	repo store.Repository
}

// NewManager creates a manager writing decisions to repo.
func NewManager(repo store.Repository) *Manager {
	return &Manager{repo: repo}
}

// StatusUpdateError reports that a legal status change could not be written.
// The record keeps its previous status.
type StatusUpdateError struct {
	ID     string
	Status application.Status
	Err    error
}

func (e *StatusUpdateError) Error() string {
	return fmt.Sprintf("status update to %q for application %s failed: %v", e.Status, e.ID, e.Err)
}

func (e *StatusUpdateError) Unwrap() error { return e.Err }

// SetStatus moves the application identified by id to status. Any transition
// between the four workflow states is legal, including re-setting the
// current status, which is a no-op for the record.
//
// Returns store.ErrNotFound when no such application exists, an error for an
// unknown status value, or a *StatusUpdateError when the write fails.
func (m *Manager) SetStatus(ctx context.Context, id string, status application.Status) error {
	if !status.Valid() {
		return fmt.Errorf("unknown status %q", status)
	}

	if err := m.repo.UpdateStatus(ctx, id, status); err != nil {
		if err == store.ErrNotFound {
			return err
		}
		return &StatusUpdateError{ID: id, Status: status, Err: err}
	}
	return nil
}
