package application

import "fmt"

// Status is the review workflow state of a record. Exactly four values are
// valid; anything else is rejected at the boundary so no other value is ever
// observable in a persisted record.
type Status string

const (
	StatusPending   Status = "pending"
	StatusReviewing Status = "reviewing"
	StatusAccepted  Status = "accepted"
	StatusRejected  Status = "rejected"
)

// Statuses lists all valid workflow states in lifecycle order.
func Statuses() []Status {
	return []Status{StatusPending, StatusReviewing, StatusAccepted, StatusRejected}
}

// Valid reports whether s is one of the four workflow states.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusReviewing, StatusAccepted, StatusRejected:
		return true
	}
	return false
}

// ParseStatus converts a wire value into a Status.
func ParseStatus(v string) (Status, error) {
	s := Status(v)
	if !s.Valid() {
		return "", fmt.Errorf("invalid status %q", v)
	}
	return s, nil
}

// MilitaryStatus is the applicant's military service state. The empty value
// means the applicant left the field unset.
type MilitaryStatus string

const (
	MilitaryUnset         MilitaryStatus = ""
	MilitaryCompleted     MilitaryStatus = "completed"
	MilitaryExempt        MilitaryStatus = "exempt"
	MilitaryPostponed     MilitaryStatus = "postponed"
	MilitaryNotApplicable MilitaryStatus = "notApplicable"
)

// ParseMilitaryStatus converts a wire value into a MilitaryStatus.
// Empty input is valid and maps to MilitaryUnset.
func ParseMilitaryStatus(v string) (MilitaryStatus, error) {
	m := MilitaryStatus(v)
	switch m {
	case MilitaryUnset, MilitaryCompleted, MilitaryExempt, MilitaryPostponed, MilitaryNotApplicable:
		return m, nil
	}
	return "", fmt.Errorf("invalid military status %q", v)
}
