// Package application defines the job-application domain model shared by the
// intake pipeline, the review queue and the persistence layer.
package application

import "time"

// Record is one applicant's persisted submission.
//
// ID is assigned by the store at insert time and never changes. Status is the
// only field mutated after creation, and only through the review manager.
// SubmittedAt is assigned once at creation and orders the review queue.
type Record struct {
	ID                string         `json:"id"`
	FullName          string         `json:"fullName"`
	Email             string         `json:"email"`
	Phone             string         `json:"phone"`
	Position          string         `json:"position"`
	Experience        string         `json:"experience"`
	ExpectedSalary    string         `json:"expectedSalary"`
	Availability      string         `json:"availability"`
	OtherRequests     string         `json:"otherRequests"`
	Education         string         `json:"education"`
	Certificates      string         `json:"certificates"`
	References        string         `json:"references"`
	MilitaryStatus    MilitaryStatus `json:"militaryStatus"`
	TravelRestriction bool           `json:"travelRestriction"`
	KVKKApproval      bool           `json:"kvkkApproval"`
	CVURL             string         `json:"cvUrl"`
	Status            Status         `json:"status"`
	SubmittedAt       time.Time      `json:"submittedAt"`
}
