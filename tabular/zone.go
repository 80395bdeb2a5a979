package tabular

import (
	"fmt"
	"time"
)

const (
	// civilLayout renders wall-clock fields with no zone indicator.
	civilLayout = "2006-01-02 15:04:05"
	// offsetLayout renders an instant with an explicit zone indicator.
	// Writers always emit it anchored to UTC, so the suffix is "Z".
	offsetLayout = "2006-01-02T15:04:05Z07:00"
)

// LoadZone resolves an IANA zone identifier. Empty means UTC.
func LoadZone(name string) (*time.Location, error) {
	if name == "" {
		return time.UTC, nil
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, NewError(KindInvalidZone, fmt.Sprintf("unknown zone %q", name), err)
	}
	return loc, nil
}

// WithZone re-renders the same instant under a new display zone. The
// underlying instant is unchanged; only the wall-clock reading moves.
func WithZone(t time.Time, zone string) (time.Time, error) {
	loc, err := LoadZone(zone)
	if err != nil {
		return time.Time{}, err
	}
	return t.In(loc), nil
}

// ForceZone reinterprets the wall-clock fields of t as if they had been read
// in zone, producing a different instant unless the zones agree. This is the
// repair operation for data written as zone-less civil text and read back
// under the wrong zone. Civil fields that do not exist in zone (a DST gap)
// or occur twice (a DST fold) fail with an ambiguous_time error.
func ForceZone(t time.Time, zone string) (time.Time, error) {
	loc, err := LoadZone(zone)
	if err != nil {
		return time.Time{}, err
	}
	return civilInZone(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), loc)
}

// FormatCivil renders the wall-clock reading of t in zone with no zone
// indicator. The result is a CivilString: parsing it back requires an
// externally supplied zone.
func FormatCivil(t time.Time, zone string) (string, error) {
	shifted, err := WithZone(t, zone)
	if err != nil {
		return "", err
	}
	return shifted.Format(civilLayout), nil
}

func civilInZone(year int, month time.Month, day, hour, minute, sec, nsec int, loc *time.Location) (time.Time, error) {
	t := time.Date(year, month, day, hour, minute, sec, nsec, loc)
	if !sameCivil(t, year, month, day, hour, minute, sec) {
		return time.Time{}, NewError(KindAmbiguousTime,
			fmt.Sprintf("civil time %s does not exist in %s", civilString(year, month, day, hour, minute, sec), loc), nil)
	}

	// A second instant with the same wall-clock reading exists when the zone
	// offset changes within a day of t. Probing the offsets a day out covers
	// every standard DST transition width.
	_, offset := t.Zone()
	for _, probe := range []time.Duration{-24 * time.Hour, 24 * time.Hour} {
		_, alt := t.Add(probe).Zone()
		if alt == offset {
			continue
		}
		twin := t.Add(time.Duration(offset-alt) * time.Second)
		if sameCivil(twin.In(loc), year, month, day, hour, minute, sec) {
			return time.Time{}, NewError(KindAmbiguousTime,
				fmt.Sprintf("civil time %s occurs twice in %s", civilString(year, month, day, hour, minute, sec), loc), nil)
		}
	}
	return t, nil
}

func sameCivil(t time.Time, year int, month time.Month, day, hour, minute, sec int) bool {
	return t.Year() == year && t.Month() == month && t.Day() == day &&
		t.Hour() == hour && t.Minute() == minute && t.Second() == sec
}

func civilString(year int, month time.Month, day, hour, minute, sec int) string {
	return fmt.Sprintf("%04d-%02d-%02d %02d:%02d:%02d", year, int(month), day, hour, minute, sec)
}
