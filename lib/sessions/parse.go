package sessions

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/TMCabrera/indycargo/lib/timezone"
)

// the source serves numbers as strings, strings as padded strings and
// missing values as "", "-" or nulls. every coercion here returns nil
// on anything it cannot read instead of guessing.

func coerceInt(v any) *int {
	switch n := v.(type) {
	case nil:
		return nil
	case float64:
		i := int(n)
		return &i
	case int:
		return &n
	case string:
		s := strings.TrimSpace(n)
		if s == "" || s == "-" {
			return nil
		}
		i, err := strconv.Atoi(s)
		if err != nil {
			// some counts come back as "3.0"
			f, ferr := strconv.ParseFloat(s, 64)
			if ferr != nil {
				return nil
			}
			i = int(f)
		}
		return &i
	}
	return nil
}

func coerceFloat(v any) *float64 {
	switch n := v.(type) {
	case nil:
		return nil
	case float64:
		return &n
	case int:
		f := float64(n)
		return &f
	case string:
		s := strings.TrimSpace(n)
		if s == "" || s == "-" {
			return nil
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil
		}
		return &f
	}
	return nil
}

// ParseLapTime reads the source's [H:][M:]SS.ffff lap and elapsed time
// notation. Unreadable or empty values return nil.
func ParseLapTime(s string) *time.Duration {
	s = strings.TrimSpace(s)
	if s == "" || s == "-" {
		return nil
	}

	parts := strings.Split(s, ":")
	if len(parts) > 3 {
		return nil
	}

	seconds, err := strconv.ParseFloat(parts[len(parts)-1], 64)
	if err != nil || seconds < 0 {
		return nil
	}
	multiplier := float64(60)
	for i := len(parts) - 2; i >= 0; i-- {
		unit, err := strconv.ParseUint(strings.TrimSpace(parts[i]), 10, 32)
		if err != nil {
			return nil
		}
		seconds += float64(unit) * multiplier
		multiplier *= 60
	}

	d := time.Duration(math.Round(seconds * float64(time.Second)))
	return &d
}

// FormatLapTime renders a duration back into the source's lap-time
// notation, trimming trailing zeros off the fractional part.
func FormatLapTime(d time.Duration) string {
	totalSeconds := d.Seconds()
	hours := int(totalSeconds) / 3600
	minutes := (int(totalSeconds) % 3600) / 60
	seconds := totalSeconds - float64(hours*3600) - float64(minutes*60)

	frac := strings.TrimRight(fmt.Sprintf("%07.4f", seconds), "0")
	frac = strings.TrimRight(frac, ".")

	switch {
	case hours > 0:
		return fmt.Sprintf("%d:%02d:%s", hours, minutes, frac)
	case minutes > 0:
		return fmt.Sprintf("%d:%s", minutes, frac)
	default:
		return strings.TrimPrefix(frac, "0")
	}
}

// sourceDateFormat is the M/D/YYYY shape of SessionDate fields.
const sourceDateFormat = "1/2/2006"

func parseEventDate(s string) *time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	t, err := time.ParseInLocation(sourceDateFormat, s, timezone.Location)
	if err != nil {
		// cleaned tables round-trip dates in ISO form
		t, err = time.ParseInLocation("2006-01-02", s, timezone.Location)
		if err != nil {
			return nil
		}
	}
	return &t
}
