package core

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

const (
	// DateLayout is the canonical wire format for calendar dates.
	DateLayout = "2006-01-02"

	// MaxDailyProduction bounds a single day's recorded production in kWh.
	MaxDailyProduction = 100.0
)

type (
	// Date is a calendar day with no time-of-day component, normalized to UTC midnight.
	Date struct {
		time.Time
	}

	// Entry is one recorded day of solar production. Date is the natural key;
	// ID stays stable across edits of the production value.
	Entry struct {
		ID         string  `json:"id"`
		Date       Date    `json:"date"`
		Production float64 `json:"production"` // kWh
	}
)

var (
	ErrInvalidDate        = errors.New("invalid date")
	ErrNegativeProduction = errors.New("production cannot be negative")
	ErrProductionTooHigh  = fmt.Errorf("production exceeds %v kWh daily maximum", MaxDailyProduction)
)

// NewDate creates a Date from year, month, day.
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

// ParseDate parses a canonical YYYY-MM-DD string.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return Date{Time: t.UTC()}, nil
}

// DateOf truncates an instant to its calendar day.
func DateOf(t time.Time) Date {
	return NewDate(t.Year(), int(t.Month()), t.Day())
}

func (d Date) Validate() error {
	if d.IsZero() {
		return ErrInvalidDate
	}
	return nil
}

// String returns the canonical YYYY-MM-DD form.
func (d Date) String() string {
	return d.Format(DateLayout)
}

// AddDays returns the date n calendar days later (earlier for negative n).
// Month, year and leap boundaries are handled by time.AddDate.
func (d Date) AddDays(n int) Date {
	return Date{Time: d.Time.AddDate(0, 0, n)}
}

func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

func (d *Date) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// NewEntry creates an entry with a fresh identifier.
func NewEntry(date Date, production float64) Entry {
	return Entry{
		ID:         uuid.NewString(),
		Date:       date,
		Production: production,
	}
}

// ValidateProduction enforces the input-boundary range check on a
// production value in kWh.
func ValidateProduction(kwh float64) error {
	if kwh < 0 {
		return ErrNegativeProduction
	}
	if kwh > MaxDailyProduction {
		return ErrProductionTooHigh
	}
	return nil
}

func (e Entry) Validate() error {
	if err := e.Date.Validate(); err != nil {
		return err
	}
	return ValidateProduction(e.Production)
}
