package contract

import (
	"fmt"
	"time"
)

// TimeLayout is how contract timestamps are written: local wall clock time
// to the second, without a zone.
const TimeLayout = "2006-01-02T15:04:05"

// displayLayout is accepted on input as well, since it is what people type.
const displayLayout = "2006-01-02 15:04:05"

// Time is a wall clock timestamp truncated to whole seconds.
type Time struct {
	time.Time
}

// Now returns the current local time truncated to the second.
func Now() Time {
	return At(time.Now())
}

// At truncates t to the second and converts it to local time.
func At(t time.Time) Time {
	return Time{t.Local().Truncate(time.Second)}
}

// ParseTime accepts TimeLayout and "YYYY-MM-DD hh:mm:ss".
func ParseTime(s string) (Time, error) {
	for _, layout := range []string{TimeLayout, displayLayout} {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return Time{t}, nil
		}
	}
	return Time{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DDThh:mm:ss", s)
}

func (t Time) String() string {
	return t.Format(displayLayout)
}

func (t Time) MarshalText() ([]byte, error) {
	return []byte(t.Format(TimeLayout)), nil
}

func (t *Time) UnmarshalText(text []byte) error {
	parsed, err := ParseTime(string(text))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// Equal reports whether both times denote the same instant.
func (t Time) Equal(other Time) bool {
	return t.Time.Equal(other.Time)
}
