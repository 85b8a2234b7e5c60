package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bilgiconline/isealim/internal/application"
)

func newRecord(name string, submittedAt time.Time) *application.Record {
	return &application.Record{
		FullName:       name,
		Email:          "applicant@example.com",
		Phone:          "0555 333 22 11",
		Position:       "Developer",
		Experience:     "Years of relevant experience.",
		ExpectedSalary: "50000",
		Availability:   "Immediately",
		Education:      "University degree in engineering.",
		KVKKApproval:   true,
		CVURL:          "https://files.example.com/cvs/1-cv.pdf",
		Status:         application.StatusPending,
		SubmittedAt:    submittedAt,
	}
}

func TestMemory_InsertAssignsUniqueIDs(t *testing.T) {
	ctx := context.Background()
	repo := NewMemory()

	seen := make(map[string]bool)
	for i := 0; i < 10; i++ {
		id, err := repo.Insert(ctx, newRecord("Applicant", time.Now()))
		require.NoError(t, err)
		require.NotEmpty(t, id)
		assert.False(t, seen[id], "id %s reused", id)
		seen[id] = true
	}
}

func TestMemory_GetNotFound(t *testing.T) {
	repo := NewMemory()

	_, err := repo.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemory_UpdateStatus(t *testing.T) {
	ctx := context.Background()
	repo := NewMemory()

	id, err := repo.Insert(ctx, newRecord("Applicant", time.Now()))
	require.NoError(t, err)

	require.NoError(t, repo.UpdateStatus(ctx, id, application.StatusAccepted))

	rec, err := repo.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, application.StatusAccepted, rec.Status)

	// Applying the same status twice leaves the record unchanged.
	require.NoError(t, repo.UpdateStatus(ctx, id, application.StatusAccepted))
	again, err := repo.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, rec, again)

	assert.ErrorIs(t, repo.UpdateStatus(ctx, "missing", application.StatusRejected), ErrNotFound)
}

func TestMemory_ListOrdering(t *testing.T) {
	ctx := context.Background()
	repo := NewMemory()

	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	_, err := repo.Insert(ctx, newRecord("Oldest", base))
	require.NoError(t, err)
	_, err = repo.Insert(ctx, newRecord("Newest", base.Add(2*time.Hour)))
	require.NoError(t, err)
	_, err = repo.Insert(ctx, newRecord("Middle", base.Add(time.Hour)))
	require.NoError(t, err)

	recs, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, recs, 3)

	assert.Equal(t, "Newest", recs[0].FullName)
	assert.Equal(t, "Middle", recs[1].FullName)
	assert.Equal(t, "Oldest", recs[2].FullName)
}

func TestMemory_ListTiebreakDeterministic(t *testing.T) {
	ctx := context.Background()
	repo := NewMemory()

	at := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		_, err := repo.Insert(ctx, newRecord("Same Instant", at))
		require.NoError(t, err)
	}

	first, err := repo.List(ctx)
	require.NoError(t, err)

	for i := 0; i < 10; i++ {
		again, err := repo.List(ctx)
		require.NoError(t, err)
		assert.Equal(t, first, again, "ordering must be stable across reads")
	}

	for i := 1; i < len(first); i++ {
		assert.Greater(t, first[i-1].ID, first[i].ID, "ties break by id descending")
	}
}
