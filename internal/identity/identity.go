// Package identity mints record identifiers.
//
// Identifiers are UUIDv7 values: the first 48 bits hold the Unix time in
// milliseconds and the rest is random, so ids sort by creation time and keep
// primary key inserts close to the right edge of the index.
package identity

import (
	"time"

	"github.com/google/uuid"
)

// Generator returns a new identifier on every call.
type Generator func() uuid.UUID

// New returns a new time-ordered identifier. It is safe for concurrent use.
func New() uuid.UUID {
	// NewV7 only fails when crypto/rand does.
	return uuid.Must(uuid.NewV7())
}

// Timestamp extracts the millisecond creation time embedded in a UUIDv7.
// ok is false for identifiers of any other version.
func Timestamp(id uuid.UUID) (t time.Time, ok bool) {
	if id.Version() != 7 {
		return time.Time{}, false
	}
	sec, nsec := id.Time().UnixTime()
	return time.Unix(sec, nsec), true
}
