package tabular

import (
	"math"
	"time"
)

// The serial epoch is 1899-12-30 rather than the nominal 1900-01-01. The
// legacy encoding treats 1900 as a leap year, so the epoch sits two days
// early to keep serials for dates after the fictitious 1900-02-29 aligned
// with files produced by the original implementations. This is a
// compatibility requirement, not a defect to fix.
var serialEpoch = time.Date(1899, time.December, 30, 0, 0, 0, 0, time.UTC)

const millisPerDay = 24 * 60 * 60 * 1000

// ToSerial encodes the wall-clock reading of t as a legacy spreadsheet day
// serial: whole days since the adjusted 1899-12-30 epoch plus a fraction of
// a 24-hour day. Only the rendered fields of t participate; its zone offset
// leaves no trace in the result.
func ToSerial(t time.Time) float64 {
	civil := time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), time.UTC)
	return float64(civil.Sub(serialEpoch)) / float64(24*time.Hour)
}

// FromSerial decodes a day serial into wall-clock fields tagged UTC. The
// fraction is rounded to the nearest millisecond so second-resolution
// serials decode exactly.
func FromSerial(serial float64) time.Time {
	ms := math.Round(serial * millisPerDay)
	return serialEpoch.Add(time.Duration(ms) * time.Millisecond)
}
