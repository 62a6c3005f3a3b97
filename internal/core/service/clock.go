package service

import "time"

// SystemClock is the production Clock, returning wall time in UTC.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now().UTC() }
