package models

import (
	"bytes"
	"encoding/json"
	"errors"
	"strconv"
	"strings"
	"time"
)

var errInvalidMinutes = errors.New("time must be a positive number of minutes")

// Minutes is an elapsed study time in minutes.
type Minutes float64

// ParseMinutes parses user input such as "15" or "12.5".
func ParseMinutes(s string) (Minutes, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, errInvalidMinutes
	}

	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f <= 0 {
		return 0, errInvalidMinutes
	}

	return Minutes(f), nil
}

func (m Minutes) String() string {
	return strconv.FormatFloat(float64(m), 'f', -1, 64)
}

// UnmarshalJSON accepts numbers and numeric strings.
func (m *Minutes) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)

	if bytes.Equal(b, []byte("null")) {
		*m = 0
		return nil
	}

	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}

		if strings.TrimSpace(s) == "" {
			*m = 0
			return nil
		}

		f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			return err
		}

		*m = Minutes(f)

		return nil
	}

	var f float64
	if err := json.Unmarshal(b, &f); err != nil {
		return err
	}

	*m = Minutes(f)

	return nil
}

const DateLayout = "2006-01-02"

var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	DateLayout,
}

// Date is a calendar date. Any time component received from the API is
// kept but ignored by comparisons.
type Date struct {
	time.Time
}

// NewDate returns a date for the given calendar day.
func NewDate(year int, month time.Month, day int) *Date {
	return &Date{time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// Day returns the calendar date in loc at midnight.
func (d Date) Day(loc *time.Location) time.Time {
	y, m, day := d.Date()
	return time.Date(y, m, day, 0, 0, 0, 0, loc)
}

func (d *Date) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)

	if bytes.Equal(b, []byte("null")) {
		return nil
	}

	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}

	if s == "" {
		return nil
	}

	var err error

	for _, layout := range dateLayouts {
		var t time.Time

		t, err = time.Parse(layout, s)
		if err == nil {
			d.Time = t
			return nil
		}
	}

	return err
}

func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}

	return json.Marshal(d.Format(DateLayout))
}

func (d Date) String() string {
	return d.Format(DateLayout)
}
