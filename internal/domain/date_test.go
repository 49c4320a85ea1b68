package domain

import (
	"encoding/json"
	"errors"
	"testing"
	"time"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected Date
		wantErr  bool
	}{
		{name: "iso", input: "2023-11-15", expected: NewDate(2023, time.November, 15)},
		{name: "day first", input: "01.08.2023", expected: NewDate(2023, time.August, 1)},
		{name: "surrounding spaces", input: "  2024-02-29 ", expected: NewDate(2024, time.February, 29)},
		{name: "empty", input: "", wantErr: true},
		{name: "garbage", input: "15 Ноя 2023", wantErr: true},
		{name: "impossible day", input: "2023-02-30", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDate(tt.input)
			if tt.wantErr {
				var dateErr *InvalidDateError
				if !errors.As(err, &dateErr) {
					t.Fatalf("ParseDate(%q) error = %v, expected *InvalidDateError", tt.input, err)
				}
				if dateErr.Value != tt.input {
					t.Errorf("InvalidDateError.Value = %q, expected %q", dateErr.Value, tt.input)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseDate(%q) unexpected error: %v", tt.input, err)
			}
			if got != tt.expected {
				t.Errorf("ParseDate(%q) = %v, expected %v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestDateDaysUntil(t *testing.T) {
	today := NewDate(2024, time.March, 30)

	tests := []struct {
		name     string
		other    Date
		expected int
	}{
		{name: "same day", other: today, expected: 0},
		{name: "tomorrow", other: today.AddDays(1), expected: 1},
		{name: "yesterday", other: today.AddDays(-1), expected: -1},
		{name: "across month end", other: NewDate(2024, time.April, 2), expected: 3},
		{name: "across leap day", other: NewDate(2024, time.February, 28), expected: -31},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := today.DaysUntil(tt.other); got != tt.expected {
				t.Errorf("DaysUntil() = %d, expected %d", got, tt.expected)
			}
		})
	}
}

func TestDateOfIgnoresTimeOfDay(t *testing.T) {
	loc := time.FixedZone("MSK", 3*60*60)
	late := time.Date(2023, time.November, 15, 23, 59, 0, 0, loc)

	if got := DateOf(late); got != NewDate(2023, time.November, 15) {
		t.Errorf("DateOf() = %v, expected 2023-11-15", got)
	}
}

func TestDateJSON(t *testing.T) {
	d := NewDate(2023, time.July, 29)

	data, err := json.Marshal(d)
	if err != nil {
		t.Fatalf("Marshal() error: %v", err)
	}
	if string(data) != `"2023-07-29"` {
		t.Errorf("Marshal() = %s, expected \"2023-07-29\"", data)
	}

	var decoded Date
	if err := json.Unmarshal([]byte(`"29.07.2023"`), &decoded); err != nil {
		t.Fatalf("Unmarshal() error: %v", err)
	}
	if decoded != d {
		t.Errorf("Unmarshal() = %v, expected %v", decoded, d)
	}

	if err := json.Unmarshal([]byte(`"not a date"`), &decoded); err == nil {
		t.Error("Unmarshal() expected error for invalid date")
	}
}
