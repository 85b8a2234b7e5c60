package intake

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/bilgiconline/isealim/internal/application"
	"github.com/bilgiconline/isealim/internal/store"
	"github.com/bilgiconline/isealim/internal/validate"
)

type fakeUploader struct {
	calls int
	url   string
	err   error
}

func (f *fakeUploader) Upload(ctx context.Context, fileName string, content io.Reader, size int64) (string, error) {
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	return f.url, nil
}

// failingRepo wraps the in-memory repository and fails every Insert.
type failingRepo struct {
	*store.Memory
	err error
}

func (r *failingRepo) Insert(ctx context.Context, rec *application.Record) (string, error) {
	return "", r.err
}

func validForm() validate.FormData {
	return validate.FormData{
		FullName:       "Ahmet Yılmaz",
		Email:          "ahmet@example.com",
		Phone:          "0555 333 22 11",
		Position:       "Backend Developer",
		Experience:     "Five years building services.",
		ExpectedSalary: "60000",
		Availability:   "Immediately",
		Education:      "BSc in Computer Engineering.",
		KVKKApproval:   true,
	}
}

func TestPipeline_Submit(t *testing.T) {
	repo := store.NewMemory()
	uploader := &fakeUploader{url: "https://files.example.com/cvs/1-cv.pdf"}
	p := NewPipeline(repo, uploader)
	submittedAt := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	p.now = func() time.Time { return submittedAt }

	rec, err := p.Submit(context.Background(), validForm(), "cv.pdf", strings.NewReader("%PDF-1.4 data"), 13)
	if err != nil {
		t.Fatalf("Submit failed: %v", err)
	}

	if rec.ID == "" {
		t.Error("record has no assigned id")
	}
	if rec.Status != application.StatusPending {
		t.Errorf("Status = %q, want %q", rec.Status, application.StatusPending)
	}
	if rec.CVURL != uploader.url {
		t.Errorf("CVURL = %q, want %q", rec.CVURL, uploader.url)
	}
	if !rec.SubmittedAt.Equal(submittedAt) {
		t.Errorf("SubmittedAt = %v, want %v", rec.SubmittedAt, submittedAt)
	}
	if rec.Phone != "055 533 32 21" {
		t.Errorf("Phone = %q, want normalized grouping", rec.Phone)
	}

	stored, err := repo.Get(context.Background(), rec.ID)
	if err != nil {
		t.Fatalf("Get after Submit failed: %v", err)
	}
	if stored.FullName != "Ahmet Yılmaz" {
		t.Errorf("stored FullName = %q", stored.FullName)
	}
}

func TestPipeline_MissingFile(t *testing.T) {
	repo := store.NewMemory()
	uploader := &fakeUploader{url: "https://files.example.com/cvs/1-cv.pdf"}
	p := NewPipeline(repo, uploader)

	_, err := p.Submit(context.Background(), validForm(), "", nil, 0)
	if !errors.Is(err, ErrMissingFile) {
		t.Fatalf("expected ErrMissingFile, got %v", err)
	}
	if uploader.calls != 0 {
		t.Errorf("uploader called %d times for missing file", uploader.calls)
	}
	if repo.Len() != 0 {
		t.Errorf("repository has %d records after rejected submission", repo.Len())
	}
}

func TestPipeline_RejectedFileSkipsUpload(t *testing.T) {
	repo := store.NewMemory()
	uploader := &fakeUploader{url: "https://files.example.com/cvs/1-cv.pdf"}
	p := NewPipeline(repo, uploader)

	_, err := p.Submit(context.Background(), validForm(), "cv.exe", strings.NewReader("x"), 1)

	var fileErr *validate.FileError
	if !errors.As(err, &fileErr) {
		t.Fatalf("expected *validate.FileError, got %v", err)
	}
	if fileErr.Kind != validate.FileUnsupportedType {
		t.Errorf("Kind = %q, want %q", fileErr.Kind, validate.FileUnsupportedType)
	}
	if uploader.calls != 0 {
		t.Errorf("uploader called %d times for rejected file", uploader.calls)
	}
}

func TestPipeline_InvalidFormSkipsUpload(t *testing.T) {
	repo := store.NewMemory()
	uploader := &fakeUploader{url: "https://files.example.com/cvs/1-cv.pdf"}
	p := NewPipeline(repo, uploader)

	form := validForm()
	form.KVKKApproval = false

	_, err := p.Submit(context.Background(), form, "cv.pdf", strings.NewReader("x"), 1)

	var fieldErrs validate.FieldErrors
	if !errors.As(err, &fieldErrs) {
		t.Fatalf("expected validate.FieldErrors, got %v", err)
	}
	if _, ok := fieldErrs["kvkkApproval"]; !ok {
		t.Errorf("missing kvkkApproval in %v", fieldErrs)
	}
	if uploader.calls != 0 {
		t.Errorf("uploader called %d times for invalid form", uploader.calls)
	}
	if repo.Len() != 0 {
		t.Errorf("repository has %d records after invalid form", repo.Len())
	}
}

func TestPipeline_ContentMismatchSkipsUpload(t *testing.T) {
	repo := store.NewMemory()
	uploader := &fakeUploader{url: "https://files.example.com/cvs/1-cv.pdf"}
	p := NewPipeline(repo, uploader)

	// A renamed executable passes the extension check but not the
	// content signature check.
	_, err := p.Submit(context.Background(), validForm(), "cv.pdf", strings.NewReader("MZ\x90\x00 not a pdf"), 13)

	var fileErr *validate.FileError
	if !errors.As(err, &fileErr) {
		t.Fatalf("expected *validate.FileError, got %v", err)
	}
	if fileErr.Kind != validate.FileContentMismatch {
		t.Errorf("Kind = %q, want %q", fileErr.Kind, validate.FileContentMismatch)
	}
	if uploader.calls != 0 {
		t.Errorf("uploader called %d times for mismatched content", uploader.calls)
	}
}

func TestPipeline_UploadFailureSkipsPersist(t *testing.T) {
	repo := store.NewMemory()
	uploader := &fakeUploader{err: errors.New("connection refused")}
	p := NewPipeline(repo, uploader)

	_, err := p.Submit(context.Background(), validForm(), "cv.pdf", strings.NewReader("%PDF-1.4 data"), 13)

	var upErr *UploadError
	if !errors.As(err, &upErr) {
		t.Fatalf("expected *UploadError, got %v", err)
	}
	if repo.Len() != 0 {
		t.Errorf("repository has %d records after upload failure", repo.Len())
	}
}

func TestPipeline_PersistFailureReportsOrphanedFile(t *testing.T) {
	repo := &failingRepo{Memory: store.NewMemory(), err: errors.New("deadlock detected")}
	uploader := &fakeUploader{url: "https://files.example.com/cvs/1-cv.pdf"}
	p := NewPipeline(repo, uploader)

	_, err := p.Submit(context.Background(), validForm(), "cv.pdf", strings.NewReader("%PDF-1.4 data"), 13)

	var perErr *PersistError
	if !errors.As(err, &perErr) {
		t.Fatalf("expected *PersistError, got %v", err)
	}
	if perErr.CVURL != uploader.url {
		t.Errorf("PersistError.CVURL = %q, want the orphaned file url %q", perErr.CVURL, uploader.url)
	}
	if uploader.calls != 1 {
		t.Errorf("uploader called %d times, want 1", uploader.calls)
	}
}
