package application

import "testing"

func TestStatus_Valid(t *testing.T) {
	tests := []struct {
		status Status
		want   bool
	}{
		{StatusPending, true},
		{StatusReviewing, true},
		{StatusAccepted, true},
		{StatusRejected, true},
		{Status(""), false},
		{Status("archived"), false},
		{Status("Pending"), false},
	}

	for _, tt := range tests {
		if got := tt.status.Valid(); got != tt.want {
			t.Errorf("Status(%q).Valid() = %v, want %v", tt.status, got, tt.want)
		}
	}
}

func TestParseStatus(t *testing.T) {
	for _, s := range Statuses() {
		got, err := ParseStatus(string(s))
		if err != nil {
			t.Errorf("ParseStatus(%q) error = %v", s, err)
		}
		if got != s {
			t.Errorf("ParseStatus(%q) = %q, want %q", s, got, s)
		}
	}

	if _, err := ParseStatus("approved"); err == nil {
		t.Error("ParseStatus(\"approved\") expected error")
	}
}

func TestParseMilitaryStatus(t *testing.T) {
	tests := []struct {
		in      string
		want    MilitaryStatus
		wantErr bool
	}{
		{"", MilitaryUnset, false},
		{"completed", MilitaryCompleted, false},
		{"exempt", MilitaryExempt, false},
		{"postponed", MilitaryPostponed, false},
		{"notApplicable", MilitaryNotApplicable, false},
		{"done", "", true},
	}

	for _, tt := range tests {
		got, err := ParseMilitaryStatus(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseMilitaryStatus(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseMilitaryStatus(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
