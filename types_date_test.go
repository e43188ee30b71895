package invdash

import (
	"encoding/json"
	"testing"
	"time"
)

func TestParseDate(t *testing.T) {
	testCases := []struct {
		name    string
		in      string
		want    Date
		wantErr bool
	}{
		{"strict ISO form", "2025-07-01", NewDate(2025, time.July, 1), false},
		{"lenient single digits", "2025-7-1", NewDate(2025, time.July, 1), false},
		{"not a date", "yesterday", Date{}, true},
		{"time component rejected", "2025-07-01T10:00:00", Date{}, true},
		{"empty", "", Date{}, true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ParseDate(tc.in)
			if (err != nil) != tc.wantErr {
				t.Fatalf("ParseDate(%q) error = %v, wantErr %v", tc.in, err, tc.wantErr)
			}
			if got != tc.want {
				t.Errorf("ParseDate(%q) = %s, want %s", tc.in, got, tc.want)
			}
		})
	}
}

func TestDate_Arithmetic(t *testing.T) {
	d := MustParseDate("2025-02-27")

	if got := d.Add(2); got != MustParseDate("2025-03-01") {
		t.Errorf("Add(2) = %s, want 2025-03-01 (February has 28 days in 2025)", got)
	}
	if got := d.Add(-27); got != MustParseDate("2025-01-31") {
		t.Errorf("Add(-27) = %s, want 2025-01-31", got)
	}
	if got := MustParseDate("2025-03-01").Sub(d); got != 2 {
		t.Errorf("Sub() = %d, want 2", got)
	}
	if !d.Before(d.Add(1)) || !d.Add(1).After(d) {
		t.Error("Before/After disagree on consecutive days")
	}
}

func TestDate_IsWeekend(t *testing.T) {
	for day, want := range map[string]bool{
		"2025-06-06": false, // Friday
		"2025-06-07": true,  // Saturday
		"2025-06-08": true,  // Sunday
		"2025-06-09": false, // Monday
	} {
		if got := MustParseDate(day).IsWeekend(); got != want {
			t.Errorf("IsWeekend(%s) = %v, want %v", day, got, want)
		}
	}
}

func TestDate_JSONRoundTrip(t *testing.T) {
	d := MustParseDate("2025-07-01")

	data, err := json.Marshal(d)
	if err != nil {
		t.Fatalf("Marshal() returned an unexpected error: %v", err)
	}
	if want := `"2025-07-01"`; string(data) != want {
		t.Errorf("Marshal() = %s, want %s", data, want)
	}

	var back Date
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("Unmarshal() returned an unexpected error: %v", err)
	}
	if back != d {
		t.Errorf("round trip = %s, want %s", back, d)
	}

	if err := json.Unmarshal([]byte(`"07/01/2025"`), &back); err == nil {
		t.Error("Unmarshal() accepted a non-ISO date")
	}
}
