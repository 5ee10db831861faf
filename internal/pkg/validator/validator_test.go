package validator

import (
	"testing"
)

func TestIsEmpty(t *testing.T) {
	cases := []struct {
		input string
		want  bool
	}{
		{"", true},
		{"   ", true},
		{"abc", false},
		{" abc ", false},
	}
	for _, c := range cases {
		got := IsEmpty(c.input)
		if got != c.want {
			t.Errorf("IsEmpty(%q) = %v, want %v", c.input, got, c.want)
		}
	}
}

func TestIsValidDate(t *testing.T) {
	valid := []string{"2025-07-14", "2024-02-29", "2025-01-01"}
	invalid := []string{"2025-13-01", "2025-07-32", "14-07-2025", "2025/07/14", "", "2025-07"}
	for _, d := range valid {
		if _, ok := IsValidDate(d); !ok {
			t.Errorf("IsValidDate(%q) = false, want true", d)
		}
	}
	for _, d := range invalid {
		if _, ok := IsValidDate(d); ok {
			t.Errorf("IsValidDate(%q) = true, want false", d)
		}
	}
}

func TestIsValidMonth(t *testing.T) {
	valid := []string{"2025-07", "2024-01", "2024-12"}
	invalid := []string{"2025-13", "2025-07-14", "07-2025", ""}
	for _, m := range valid {
		if _, ok := IsValidMonth(m); !ok {
			t.Errorf("IsValidMonth(%q) = false, want true", m)
		}
	}
	for _, m := range invalid {
		if _, ok := IsValidMonth(m); ok {
			t.Errorf("IsValidMonth(%q) = true, want false", m)
		}
	}
}

func TestIsValidTimeOfDay(t *testing.T) {
	valid := []string{"00:00", "09:00", "23:59"}
	invalid := []string{"24:00", "9:0:0", "09:60", "0900", ""}
	for _, v := range valid {
		if !IsValidTimeOfDay(v) {
			t.Errorf("IsValidTimeOfDay(%q) = false, want true", v)
		}
	}
	for _, v := range invalid {
		if IsValidTimeOfDay(v) {
			t.Errorf("IsValidTimeOfDay(%q) = true, want false", v)
		}
	}
}

func TestIsValidDateTime(t *testing.T) {
	valid := []string{"2025-07-14T09:00:00Z", "2025-07-14T09:00:00+05:30", "2025-07-14T09:00:00.123Z"}
	invalid := []string{"2025-07-14 09:00:00", "2025-07-14", ""}
	for _, v := range valid {
		if _, ok := IsValidDateTime(v); !ok {
			t.Errorf("IsValidDateTime(%q) = false, want true", v)
		}
	}
	for _, v := range invalid {
		if _, ok := IsValidDateTime(v); ok {
			t.Errorf("IsValidDateTime(%q) = true, want false", v)
		}
	}
}

func TestIsInSlice(t *testing.T) {
	slice := []string{"IN", "OUT"}
	if !IsInSlice("IN", slice) {
		t.Error(`IsInSlice("IN") = false, want true`)
	}
	if IsInSlice("in", slice) {
		t.Error(`IsInSlice("in") = true, want false`)
	}
	if IsInSlice("", nil) {
		t.Error(`IsInSlice("") on nil slice = true, want false`)
	}
}
