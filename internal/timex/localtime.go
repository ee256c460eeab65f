package timex

import (
	"bytes"
	"fmt"
	"strings"
	"time"
)

// LocalDateTimeLayout is the wire format of the backend's date-times. The
// values carry no zone and are interpreted in time.Local.
const LocalDateTimeLayout = "2006-01-02T15:04:05"

var acceptedLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	LocalDateTimeLayout,
	"2006-01-02T15:04",
	"2006-01-02",
}

// LocalTime is a timestamp exchanged with the backend.
type LocalTime struct {
	time.Time
}

// ParseLocalTime accepts RFC 3339 as well as zone-less date-times and
// plain dates.
func ParseLocalTime(s string) (LocalTime, error) {
	s = strings.TrimSpace(s)
	for _, layout := range acceptedLayouts {
		var (
			t   time.Time
			err error
		)
		if layout == time.RFC3339Nano {
			t, err = time.Parse(layout, s)
		} else {
			t, err = time.ParseInLocation(layout, s, time.Local)
		}
		if err == nil {
			return LocalTime{Time: t}, nil
		}
	}
	return LocalTime{}, fmt.Errorf("unsupported date-time %q", s)
}

func (t LocalTime) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return []byte(`"` + t.In(time.Local).Format(LocalDateTimeLayout) + `"`), nil
}

func (t *LocalTime) UnmarshalJSON(b []byte) error {
	if bytes.Equal(b, []byte("null")) {
		*t = LocalTime{}
		return nil
	}
	if len(b) < 2 || b[0] != '"' || b[len(b)-1] != '"' {
		return fmt.Errorf("date-time must be a JSON string, got %s", b)
	}
	parsed, err := ParseLocalTime(string(b[1 : len(b)-1]))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// String renders the value the way the CLI prints dates.
func (t LocalTime) String() string {
	if t.IsZero() {
		return "-"
	}
	return t.In(time.Local).Format("2006-01-02 15:04")
}
