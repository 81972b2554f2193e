package project

import (
	"encoding/json"
	"fmt"
	"time"

	"tableflip.dev/gantt/pkg/timeutil"
)

// Date is a calendar day. It is held at midnight UTC and serialized as
// "2006-01-02".
type Date struct {
	time.Time
}

// NewDate returns the calendar day of t.
func NewDate(t time.Time) Date {
	return Date{Time: timeutil.Day(t)}
}

// ParseDate parses "2006-01-02". RFC3339 timestamps are accepted and
// truncated to their day.
func ParseDate(v string) (Date, error) {
	t, err := timeutil.ParseDate(v)
	if err == nil {
		return Date{Time: t}, nil
	}
	if ts, tsErr := time.Parse(time.RFC3339, v); tsErr == nil {
		return NewDate(ts), nil
	}
	return Date{}, fmt.Errorf("project: invalid date %q", v)
}

// MustDate parses v and panics on error. Intended for tests and fixtures.
func MustDate(v string) Date {
	d, err := ParseDate(v)
	if err != nil {
		panic(err)
	}
	return d
}

func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return timeutil.FormatDate(d.Time)
}

// MarshalJSON writes the day as a quoted YYYY-MM-DD string.
func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

// UnmarshalJSON reads a quoted date; an empty string leaves d zero.
func (d *Date) UnmarshalJSON(b []byte) error {
	var v string
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	if v == "" {
		d.Time = time.Time{}
		return nil
	}
	parsed, err := ParseDate(v)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// MarshalYAML writes the day as YYYY-MM-DD.
func (d Date) MarshalYAML() (interface{}, error) {
	return d.String(), nil
}
