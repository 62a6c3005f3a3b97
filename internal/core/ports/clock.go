package ports

import "time"

// Clock supplies the current time. Injected so lockout expiry and snapshot
// provenance are deterministic under test.
type Clock interface {
	Now() time.Time
}
