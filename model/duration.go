package model

import (
	"database/sql/driver"
	"fmt"
	"strings"
	"time"
)

// Duration is a track length stored in a TIME column as HH:MM:SS.
type Duration struct {
	Hours, Minutes, Secs int
}

// ParseDuration accepts "HH:MM:SS" or "MM:SS". Anything else is an error.
func ParseDuration(s string) (Duration, error) {
	s = strings.TrimSpace(s)
	for _, layout := range []string{"15:4:5", "4:5"} {
		if t, err := time.Parse(layout, s); err == nil {
			return Duration{Hours: t.Hour(), Minutes: t.Minute(), Secs: t.Second()}, nil
		}
	}
	return Duration{}, fmt.Errorf("invalid duration %q", s)
}

// DurationFromSeconds builds a Duration from an elapsed second count.
func DurationFromSeconds(n int) Duration {
	if n < 0 {
		n = 0
	}
	return Duration{Hours: n / 3600, Minutes: n % 3600 / 60, Secs: n % 60}
}

func (d Duration) Seconds() int {
	return d.Hours*3600 + d.Minutes*60 + d.Secs
}

func (d Duration) String() string {
	return fmt.Sprintf("%02d:%02d:%02d", d.Hours, d.Minutes, d.Secs)
}

// Scan implements sql.Scanner.
func (d *Duration) Scan(value interface{}) error {
	switch v := value.(type) {
	case nil:
		*d = Duration{}
		return nil
	case time.Time:
		*d = Duration{Hours: v.Hour(), Minutes: v.Minute(), Secs: v.Second()}
		return nil
	case []byte:
		return d.scanString(string(v))
	case string:
		return d.scanString(v)
	case int64:
		*d = DurationFromSeconds(int(v))
		return nil
	default:
		return fmt.Errorf("cannot scan %T into Duration", value)
	}
}

func (d *Duration) scanString(s string) error {
	// MySQL may return fractional seconds ("00:03:25.000000").
	if i := strings.IndexByte(s, '.'); i >= 0 {
		s = s[:i]
	}
	parsed, err := ParseDuration(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Value implements driver.Valuer.
func (d Duration) Value() (driver.Value, error) {
	return d.String(), nil
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.String() + `"`), nil
}
