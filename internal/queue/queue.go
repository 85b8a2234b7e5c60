// Package queue provides the pure filtering and aggregation applied to the
// reviewer's application list. Filters never mutate or reorder their input;
// the repository's submission order is preserved.
package queue

import (
	"strings"

	"github.com/bilgiconline/isealim/internal/application"
)

// StatusAll is the sentinel status filter matching every record.
const StatusAll = "all"

// Apply filters records by free-text term and status, preserving order.
//
// The term matches case-insensitively as a substring over the searchable
// fields of each record. An empty term matches everything. The status filter
// matches exactly, with StatusAll (or empty) matching every status. The two
// filters are independent, so applying them in either order yields the same
// result.
func Apply(records []application.Record, term, status string) []application.Record {
	term = strings.ToLower(strings.TrimSpace(term))

	out := make([]application.Record, 0, len(records))
	for _, rec := range records {
		if !matchesStatus(rec, status) {
			continue
		}
		if term != "" && !matchesTerm(rec, term) {
			continue
		}
		out = append(out, rec)
	}
	return out
}

func matchesStatus(rec application.Record, status string) bool {
	if status == "" || status == StatusAll {
		return true
	}
	return string(rec.Status) == status
}

// matchesTerm reports whether any searchable field contains term.
// term must already be lowercased.
func matchesTerm(rec application.Record, term string) bool {
	fields := []string{
		rec.FullName,
		rec.Email,
		rec.Phone,
		rec.Position,
		rec.Experience,
		rec.ExpectedSalary,
		rec.Availability,
		rec.OtherRequests,
	}
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), term) {
			return true
		}
	}
	return false
}

// Stats counts applications per workflow state.
type Stats struct {
	Total     int `json:"total"`
	Pending   int `json:"pending"`
	Reviewing int `json:"reviewing"`
	Accepted  int `json:"accepted"`
	Rejected  int `json:"rejected"`
}

// Summarize tallies records into per-status counters.
func Summarize(records []application.Record) Stats {
	s := Stats{Total: len(records)}
	for _, rec := range records {
		switch rec.Status {
		case application.StatusPending:
			s.Pending++
		case application.StatusReviewing:
			s.Reviewing++
		case application.StatusAccepted:
			s.Accepted++
		case application.StatusRejected:
			s.Rejected++
		}
	}
	return s
}
