// Package intake runs the submission pipeline: validate the form and the CV
// file, store the file, then persist the application record.
//
// The steps are strictly ordered. Validation failures stop the pipeline
// before anything is written. An upload failure leaves no trace. A persist
// failure after a successful upload leaves the stored file orphaned; the
// returned PersistError carries its URL for reconciliation.
package intake

import (
	"bytes"
	"context"
	"io"
	"time"

	"github.com/bilgiconline/isealim/internal/application"
	"github.com/bilgiconline/isealim/internal/store"
	"github.com/bilgiconline/isealim/internal/validate"
)

// Uploader stores a CV file and returns its public URL.
type Uploader interface {
	Upload(ctx context.Context, fileName string, content io.Reader, size int64) (string, error)
}

// Pipeline accepts applications end to end.
type Pipeline struct {
	repo     store.Repository
	uploader Uploader

	// now is swappable in tests.
	now func() time.Time
}

// NewPipeline creates a pipeline persisting to repo and storing files via uploader.
func NewPipeline(repo store.Repository, uploader Uploader) *Pipeline {
	return &Pipeline{
		repo:     repo,
		uploader: uploader,
		now:      time.Now,
	}
}

// Submit processes one application. On success it returns the persisted
// record with its assigned id, pending status and submission time.
//
// Error cases, in evaluation order:
//   - ErrMissingFile when no CV file accompanies the form
//   - *validate.FileError when the CV file is rejected
//   - validate.FieldErrors when form fields are invalid
//   - *UploadError when storing the file fails (nothing persisted)
//   - *PersistError when saving the record fails (file already stored)
func (p *Pipeline) Submit(ctx context.Context, form validate.FormData, fileName string, content io.Reader, size int64) (*application.Record, error) {
	if fileName == "" || content == nil {
		return nil, ErrMissingFile
	}
	if err := validate.CheckFile(fileName, size); err != nil {
		return nil, err
	}
	if errs := validate.Form(form); errs != nil {
		return nil, errs
	}

	// Extension checks are client-trust only; re-validate the content
	// signature before the file reaches durable storage.
	header := make([]byte, validate.SignatureLen)
	n, err := io.ReadFull(content, header)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return nil, &UploadError{Err: err}
	}
	if err := validate.CheckSignature(fileName, header[:n]); err != nil {
		return nil, err
	}
	content = io.MultiReader(bytes.NewReader(header[:n]), content)

	cvURL, err := p.uploader.Upload(ctx, fileName, content, size)
	if err != nil {
		return nil, &UploadError{Err: err}
	}

	rec := &application.Record{
		FullName:          form.FullName,
		Email:             form.Email,
		Phone:             validate.FormatPhone(form.Phone),
		Position:          form.Position,
		Experience:        form.Experience,
		ExpectedSalary:    form.ExpectedSalary,
		Availability:      form.Availability,
		OtherRequests:     form.OtherRequests,
		Education:         form.Education,
		Certificates:      form.Certificates,
		References:        form.References,
		MilitaryStatus:    form.MilitaryStatus,
		TravelRestriction: form.TravelRestriction,
		KVKKApproval:      form.KVKKApproval,
		CVURL:             cvURL,
		Status:            application.StatusPending,
		SubmittedAt:       p.now().UTC(),
	}

	id, err := p.repo.Insert(ctx, rec)
	if err != nil {
		return nil, &PersistError{CVURL: cvURL, Err: err}
	}
	rec.ID = id

	return rec, nil
}
