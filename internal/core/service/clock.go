package service

import "time"

// storedNow returns the current UTC time at the microsecond precision
// PostgreSQL keeps for timestamptz, so a freshly created row reads back
// exactly as it was returned.
func storedNow() time.Time {
	return time.Now().UTC().Truncate(time.Microsecond)
}
