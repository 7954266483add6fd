// Package session implements the admin session lifecycle: a timeout state
// machine with a pre-expiry warning window, and tiered token storage that
// keeps sessions findable even when one storage tier is unavailable.
package session

import (
	"math"
	"time"
)

// Default timing, overridable through configuration.
const (
	DefaultTimeout          = 30 * time.Minute
	DefaultWarningWindow    = 5 * time.Minute
	DefaultActivityDebounce = 5 * time.Minute
)

// State is the lifecycle position of an admin session.
type State int

const (
	StateUnauthenticated State = iota
	StateActive
	StateWarning
	StateExpired
)

func (s State) String() string {
	switch s {
	case StateActive:
		return "active"
	case StateWarning:
		return "warning"
	case StateExpired:
		return "expired"
	default:
		return "unauthenticated"
	}
}

// Record is one admin session: an opaque token and the timestamp its
// timeout is measured from. LoginTime moves forward on activity renewal
// and explicit extension.
type Record struct {
	Token     string    `json:"token"`
	LoginTime time.Time `json:"login_time"`
}

// NewRecord opens a session for token, stamped with the current time.
func NewRecord(token string) *Record {
	return &Record{Token: token, LoginTime: time.Now()}
}

// Status reports the outcome of a session check. MinutesLeft is rounded up
// to whole minutes, matching what the warning dialog shows.
type Status struct {
	State       State
	MinutesLeft int
}

// Guard evaluates session records against the timeout policy. The clock is
// injectable for tests.
type Guard struct {
	timeout  time.Duration
	warning  time.Duration
	debounce time.Duration
	now      func() time.Time
}

// NewGuard creates a guard. Zero durations fall back to the defaults; a
// nil clock uses time.Now.
func NewGuard(timeout, warning, debounce time.Duration, now func() time.Time) *Guard {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if warning <= 0 {
		warning = DefaultWarningWindow
	}
	if debounce <= 0 {
		debounce = DefaultActivityDebounce
	}
	if now == nil {
		now = time.Now
	}
	return &Guard{timeout: timeout, warning: warning, debounce: debounce, now: now}
}

// Check classifies rec at the current time. A nil record is
// unauthenticated; a record past its timeout is expired.
func (g *Guard) Check(rec *Record) Status {
	if rec == nil {
		return Status{State: StateUnauthenticated}
	}

	timeLeft := g.timeout - g.now().Sub(rec.LoginTime)
	if timeLeft <= 0 {
		return Status{State: StateExpired}
	}

	minutes := int(math.Ceil(timeLeft.Minutes()))
	if timeLeft <= g.warning {
		return Status{State: StateWarning, MinutesLeft: minutes}
	}
	return Status{State: StateActive, MinutesLeft: minutes}
}

// Touch renews the login timestamp on user activity, but only when more
// than the debounce interval has elapsed since the last renewal. It
// reports whether the record changed and needs persisting.
func (g *Guard) Touch(rec *Record) bool {
	if rec == nil {
		return false
	}
	now := g.now()
	if now.Sub(rec.LoginTime) <= g.debounce {
		return false
	}
	rec.LoginTime = now
	return true
}

// Extend resets the login timestamp unconditionally, clearing a pending
// warning. Used by the explicit "extend session" action.
func (g *Guard) Extend(rec *Record) {
	rec.LoginTime = g.now()
}
