package intake

import (
	"errors"
	"fmt"
)

// ErrMissingFile is returned when a submission arrives without a CV file.
var ErrMissingFile = errors.New("cv file is required")

// UploadError reports that the CV file could not be stored. Nothing was
// persisted: the submission can be retried safely.
type UploadError struct {
	Err error
}

func (e *UploadError) Error() string {
	return fmt.Sprintf("cv upload failed: %v", e.Err)
}

func (e *UploadError) Unwrap() error { return e.Err }

// PersistError reports that the CV file was stored but the application
// record could not be saved. CVURL identifies the now-orphaned object so
// operators can reconcile storage against the database.
type PersistError struct {
	CVURL string
	Err   error
}

func (e *PersistError) Error() string {
	return fmt.Sprintf("application save failed after cv upload (%s): %v", e.CVURL, e.Err)
}

func (e *PersistError) Unwrap() error { return e.Err }
