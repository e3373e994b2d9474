package model

import "time"

// Timestamps cross the wire as epoch milliseconds; native date types are
// never persisted. Constructors truncate to millisecond precision so a
// DTO round trip reproduces the original value exactly.

// Now returns the current time at wire precision.
func Now() time.Time {
	return time.Now().UTC().Truncate(time.Millisecond)
}

// ToMillis converts a time to its wire representation.
func ToMillis(t time.Time) int64 {
	return t.UnixMilli()
}

// FromMillis converts a wire timestamp back to a time.
func FromMillis(ms int64) time.Time {
	return time.UnixMilli(ms).UTC()
}
