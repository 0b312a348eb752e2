package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/sosodev/duration"
)

// Duration accepts either Go syntax ("5m", "1h30m") or ISO 8601 ("PT5M") in YAML and JSON.
type Duration time.Duration

// ParseDuration parses Go duration syntax, falling back to ISO 8601. Empty input is zero.
func ParseDuration(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	if d, err := time.ParseDuration(s); err == nil {
		return d, nil
	}
	iso, err := duration.Parse(s)
	if err != nil {
		return 0, fmt.Errorf("invalid duration %q: expected Go (5m) or ISO 8601 (PT5M) form", s)
	}
	return iso.ToTimeDuration(), nil
}

func (d Duration) Std() time.Duration { return time.Duration(d) }

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

func (d *Duration) UnmarshalText(b []byte) error {
	parsed, err := ParseDuration(string(b))
	if err != nil {
		return err
	}
	*d = Duration(parsed)
	return nil
}
