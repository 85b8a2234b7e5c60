// Package validate holds the pure validation rules applied to a submission
// before any network activity: field-level form validation and the CV file
// constraint check. Both are side-effect free; callers surface the returned
// errors.
package validate

import (
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/bilgiconline/isealim/internal/application"
)

// Field length bounds.
const (
	MinFullNameLen   = 2
	MinPositionLen   = 2
	MaxPositionLen   = 100
	MinExperienceLen = 10
	MaxExperienceLen = 1000
	MinEducationLen  = 10
	MaxEducationLen  = 1000
)

var (
	// Letters (including the Turkish extended Latin set) and spaces only.
	fullNameRe = regexp.MustCompile(`^[a-zA-ZğüşıöçĞÜŞİÖÇ\s]+$`)

	// Conservative RFC-like address pattern.
	emailRe = regexp.MustCompile(`^[a-zA-Z0-9._-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,4}$`)

	// Local numbering with optional country prefix and flexible spacing.
	phoneRe = regexp.MustCompile(`^(\+90|0)?\s*([0-9]{3})\s*([0-9]{3})\s*([0-9]{2})\s*([0-9]{2})$`)

	nonDigitRe = regexp.MustCompile(`[^\d]`)
)

// FormData is the applicant's form input as received from the client.
type FormData struct {
	FullName          string                     `json:"fullName"`
	Email             string                     `json:"email"`
	Phone             string                     `json:"phone"`
	Position          string                     `json:"position"`
	Experience        string                     `json:"experience"`
	ExpectedSalary    string                     `json:"expectedSalary"`
	Availability      string                     `json:"availability"`
	OtherRequests     string                     `json:"otherRequests"`
	Education         string                     `json:"education"`
	Certificates      string                     `json:"certificates"`
	References        string                     `json:"references"`
	MilitaryStatus    application.MilitaryStatus `json:"militaryStatus"`
	TravelRestriction bool                       `json:"travelRestriction"`
	KVKKApproval      bool                       `json:"kvkkApproval"`
}

// FieldErrors maps a field name to a single validation message. When several
// rules fail for one field, the last rule evaluated wins.
type FieldErrors map[string]string

func (e FieldErrors) Error() string {
	if len(e) == 0 {
		return "no field errors"
	}
	fields := make([]string, 0, len(e))
	for field := range e {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	return "invalid fields: " + strings.Join(fields, ", ")
}

// Form checks every rule against f and accumulates failures per field.
// It returns nil when the form is valid. All rules are evaluated; nothing
// short-circuits.
func Form(f FormData) FieldErrors {
	errs := FieldErrors{}

	if utf8.RuneCountInString(f.FullName) < MinFullNameLen {
		errs["fullName"] = "must be at least 2 characters"
	}
	if !fullNameRe.MatchString(f.FullName) {
		errs["fullName"] = "must contain only letters and spaces"
	}

	if !emailRe.MatchString(f.Email) {
		errs["email"] = "must be a valid email address"
	}

	if !phoneRe.MatchString(f.Phone) {
		errs["phone"] = "must be a valid phone number (e.g. 0555 333 22 11)"
	}

	if n := utf8.RuneCountInString(f.Position); n < MinPositionLen {
		errs["position"] = "is required"
	} else if n > MaxPositionLen {
		errs["position"] = "is too long"
	}

	if n := utf8.RuneCountInString(f.Experience); n < MinExperienceLen {
		errs["experience"] = "please describe your experience in detail"
	} else if n > MaxExperienceLen {
		errs["experience"] = "is too long"
	}

	if n := utf8.RuneCountInString(f.Education); n < MinEducationLen {
		errs["education"] = "please describe your education in detail"
	} else if n > MaxEducationLen {
		errs["education"] = "is too long"
	}

	if f.ExpectedSalary == "" {
		errs["expectedSalary"] = "is required"
	}
	if f.Availability == "" {
		errs["availability"] = "is required"
	}

	// Consent is a hard gate, not a warning.
	if !f.KVKKApproval {
		errs["kvkkApproval"] = "consent to personal data processing is required"
	}

	// certificates, references, militaryStatus, otherRequests and
	// travelRestriction are unconstrained.

	if len(errs) == 0 {
		return nil
	}
	return errs
}

// FormatPhone normalizes user phone input into "NNN NNN NN NN" grouping.
// Non-digit characters are stripped, the remainder is re-grouped, and digits
// beyond ten are discarded.
func FormatPhone(value string) string {
	digits := nonDigitRe.ReplaceAllString(value, "")

	switch {
	case len(digits) <= 3:
		return digits
	case len(digits) <= 6:
		return digits[:3] + " " + digits[3:]
	case len(digits) <= 8:
		return digits[:3] + " " + digits[3:6] + " " + digits[6:]
	default:
		if len(digits) > 10 {
			digits = digits[:10]
		}
		return digits[:3] + " " + digits[3:6] + " " + digits[6:8] + " " + digits[8:]
	}
}
