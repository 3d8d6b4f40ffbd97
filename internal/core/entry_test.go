package core

import (
	"encoding/json"
	"testing"
	"time"
)

func TestParseDate(t *testing.T) {
	cases := []struct {
		in string
		ok bool
	}{
		{"2025-06-15", true},
		{"2024-02-29", true}, // leap day
		{"2025-02-29", false},
		{"2025-13-01", false},
		{"15/06/2025", false},
		{"", false},
	}
	for i, tc := range cases {
		d, err := ParseDate(tc.in)
		if tc.ok && err != nil {
			t.Fatalf("case %d expected ok, got %v", i, err)
		}
		if !tc.ok && err == nil {
			t.Fatalf("case %d expected error", i)
		}
		if tc.ok && d.String() != tc.in {
			t.Fatalf("case %d round trip: got %s, want %s", i, d.String(), tc.in)
		}
	}
}

func TestDateAddDaysBoundaries(t *testing.T) {
	cases := []struct {
		from string
		n    int
		want string
	}{
		{"2025-01-31", 1, "2025-02-01"}, // month boundary
		{"2025-12-31", 1, "2026-01-01"}, // year boundary
		{"2024-02-28", 1, "2024-02-29"}, // into leap day
		{"2024-02-29", 1, "2024-03-01"}, // out of leap day
		{"2025-03-02", -3, "2025-02-27"},
	}
	for i, tc := range cases {
		from, err := ParseDate(tc.from)
		if err != nil {
			t.Fatalf("case %d parse: %v", i, err)
		}
		if got := from.AddDays(tc.n).String(); got != tc.want {
			t.Fatalf("case %d: got %s, want %s", i, got, tc.want)
		}
	}
}

func TestValidateProduction(t *testing.T) {
	cases := []struct {
		kwh float64
		ok  bool
	}{
		{0, true},
		{42.5, true},
		{100, true},
		{-0.1, false},
		{100.01, false},
	}
	for i, tc := range cases {
		err := ValidateProduction(tc.kwh)
		if tc.ok && err != nil {
			t.Fatalf("case %d expected ok, got %v", i, err)
		}
		if !tc.ok && err == nil {
			t.Fatalf("case %d expected error", i)
		}
	}
}

func TestEntryValidate(t *testing.T) {
	good := NewEntry(NewDate(2025, 6, 15), 12.3)
	if err := good.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}
	if good.ID == "" {
		t.Fatal("NewEntry must assign an identifier")
	}

	bads := []Entry{
		{ID: "x", Date: Date{Time: time.Time{}}, Production: 1},
		{ID: "x", Date: NewDate(2025, 6, 15), Production: -1},
		{ID: "x", Date: NewDate(2025, 6, 15), Production: 101},
	}
	for i, e := range bads {
		if err := e.Validate(); err == nil {
			t.Fatalf("case %d expected error", i)
		}
	}
}

func TestEntryJSONWireFormat(t *testing.T) {
	e := Entry{ID: "abc-123", Date: NewDate(2025, 6, 15), Production: 7.25}
	raw, err := json.Marshal(e)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	want := `{"id":"abc-123","date":"2025-06-15","production":7.25}`
	if string(raw) != want {
		t.Fatalf("got %s, want %s", raw, want)
	}

	var back Entry
	if err := json.Unmarshal(raw, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if back.ID != e.ID || back.Date.String() != "2025-06-15" || back.Production != 7.25 {
		t.Fatalf("round trip mismatch: %+v", back)
	}
}
