package tracker

import (
	"encoding/json"
	"testing"
	"time"
)

func TestParseDate(t *testing.T) {
	testCases := []struct {
		input   string
		want    Date
		wantErr bool
	}{
		{input: "2024-01-02", want: NewDate(2024, time.January, 2)},
		{input: "2025-7-1", want: NewDate(2025, time.July, 1)},
		{input: " 2024-12-31 ", want: NewDate(2024, time.December, 31)},
		{input: "2024-13-40", wantErr: true},
		{input: "garbage", wantErr: true},
		{input: "", wantErr: true},
	}
	for _, tc := range testCases {
		got, err := ParseDate(tc.input)
		if tc.wantErr {
			if err == nil {
				t.Errorf("ParseDate(%q) = %v, want error", tc.input, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseDate(%q) returned error: %v", tc.input, err)
			continue
		}
		if got != tc.want {
			t.Errorf("ParseDate(%q) = %v, want %v", tc.input, got, tc.want)
		}
	}
}

func TestDateMonthKey(t *testing.T) {
	if got := MustParseDate("2024-01-31").MonthKey(); got != "2024-01" {
		t.Errorf("MonthKey() = %q, want 2024-01", got)
	}
	if got := MustParseDate("2024-12-01").MonthKey(); got != "2024-12" {
		t.Errorf("MonthKey() = %q, want 2024-12", got)
	}
}

func TestDateDaysSince(t *testing.T) {
	now := MustParseDate("2024-06-30")
	testCases := []struct {
		date string
		want int
	}{
		{"2024-06-30", 0},
		{"2024-06-23", 7},
		{"2024-05-30", 31},
		{"2024-07-01", -1}, // future
	}
	for _, tc := range testCases {
		if got := now.DaysSince(MustParseDate(tc.date)); got != tc.want {
			t.Errorf("DaysSince(%s) = %d, want %d", tc.date, got, tc.want)
		}
	}
}

func TestDateAdd(t *testing.T) {
	d := MustParseDate("2024-02-28")
	if got := d.Add(1).String(); got != "2024-02-29" { // leap year
		t.Errorf("Add(1) = %s, want 2024-02-29", got)
	}
	if got := d.Add(2).String(); got != "2024-03-01" {
		t.Errorf("Add(2) = %s, want 2024-03-01", got)
	}
}

func TestDateJSONRoundTrip(t *testing.T) {
	d := MustParseDate("2024-03-15")
	data, err := json.Marshal(d)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if string(data) != `"2024-03-15"` {
		t.Errorf("Marshal = %s, want \"2024-03-15\"", data)
	}
	var back Date
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if back != d {
		t.Errorf("round trip = %v, want %v", back, d)
	}

	if err := json.Unmarshal([]byte(`"not a date"`), &back); err == nil {
		t.Error("Unmarshal accepted an invalid date")
	}
}
