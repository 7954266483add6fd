package session

import (
	"testing"
	"time"
)

// fixedClock returns a clock pinned to base plus an adjustable offset.
func fixedClock(base time.Time, offset *time.Duration) func() time.Time {
	return func() time.Time { return base.Add(*offset) }
}

func TestGuardCheck(t *testing.T) {
	base := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	var offset time.Duration
	guard := NewGuard(30*time.Minute, 5*time.Minute, 5*time.Minute, fixedClock(base, &offset))
	rec := &Record{Token: "tok", LoginTime: base}

	tests := []struct {
		name        string
		elapsed     time.Duration
		wantState   State
		wantMinutes int
	}{
		{"fresh session", 0, StateActive, 30},
		{"mid session", 10 * time.Minute, StateActive, 20},
		{"just outside warning", 24 * time.Minute, StateActive, 6},
		{"at warning boundary", 25 * time.Minute, StateWarning, 5},
		{"deep in warning", 26 * time.Minute, StateWarning, 4},
		{"partial minute rounds up", 26*time.Minute + 30*time.Second, StateWarning, 4},
		{"last minute", 29*time.Minute + 59*time.Second, StateWarning, 1},
		{"exactly expired", 30 * time.Minute, StateExpired, 0},
		{"long expired", 31 * time.Minute, StateExpired, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			offset = tt.elapsed
			status := guard.Check(rec)
			if status.State != tt.wantState {
				t.Errorf("Check() state = %s, want %s", status.State, tt.wantState)
			}
			if status.MinutesLeft != tt.wantMinutes {
				t.Errorf("Check() minutes = %d, want %d", status.MinutesLeft, tt.wantMinutes)
			}
		})
	}
}

func TestGuardCheckNilRecord(t *testing.T) {
	guard := NewGuard(0, 0, 0, nil)
	if status := guard.Check(nil); status.State != StateUnauthenticated {
		t.Errorf("Check(nil) state = %s, want unauthenticated", status.State)
	}
}

func TestGuardTouchDebounce(t *testing.T) {
	base := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	var offset time.Duration
	guard := NewGuard(30*time.Minute, 5*time.Minute, 5*time.Minute, fixedClock(base, &offset))
	rec := &Record{Token: "tok", LoginTime: base}

	// Within the debounce interval the timestamp stays put.
	offset = 3 * time.Minute
	if guard.Touch(rec) {
		t.Error("Touch() within debounce should not renew")
	}
	if !rec.LoginTime.Equal(base) {
		t.Error("Touch() within debounce moved LoginTime")
	}

	// Past the interval it renews.
	offset = 6 * time.Minute
	if !guard.Touch(rec) {
		t.Error("Touch() past debounce should renew")
	}
	if !rec.LoginTime.Equal(base.Add(6 * time.Minute)) {
		t.Errorf("Touch() LoginTime = %v", rec.LoginTime)
	}

	// And the debounce window restarts from the renewal.
	offset = 8 * time.Minute
	if guard.Touch(rec) {
		t.Error("Touch() should debounce against the renewed timestamp")
	}
}

func TestGuardTouchNilRecord(t *testing.T) {
	guard := NewGuard(0, 0, 0, nil)
	if guard.Touch(nil) {
		t.Error("Touch(nil) = true")
	}
}

func TestGuardExtendClearsWarning(t *testing.T) {
	base := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	var offset time.Duration
	guard := NewGuard(30*time.Minute, 5*time.Minute, 5*time.Minute, fixedClock(base, &offset))
	rec := &Record{Token: "tok", LoginTime: base}

	offset = 27 * time.Minute
	if status := guard.Check(rec); status.State != StateWarning {
		t.Fatalf("Check() state = %s, want warning", status.State)
	}

	guard.Extend(rec)
	status := guard.Check(rec)
	if status.State != StateActive {
		t.Errorf("Check() after Extend state = %s, want active", status.State)
	}
	if status.MinutesLeft != 30 {
		t.Errorf("Check() after Extend minutes = %d, want 30", status.MinutesLeft)
	}
}

func TestNewGuardDefaults(t *testing.T) {
	guard := NewGuard(0, 0, 0, nil)
	if guard.timeout != DefaultTimeout {
		t.Errorf("timeout = %v, want %v", guard.timeout, DefaultTimeout)
	}
	if guard.warning != DefaultWarningWindow {
		t.Errorf("warning = %v, want %v", guard.warning, DefaultWarningWindow)
	}
	if guard.debounce != DefaultActivityDebounce {
		t.Errorf("debounce = %v, want %v", guard.debounce, DefaultActivityDebounce)
	}
}

func TestStateString(t *testing.T) {
	tests := []struct {
		state State
		want  string
	}{
		{StateUnauthenticated, "unauthenticated"},
		{StateActive, "active"},
		{StateWarning, "warning"},
		{StateExpired, "expired"},
	}
	for _, tt := range tests {
		if got := tt.state.String(); got != tt.want {
			t.Errorf("State(%d).String() = %s, want %s", tt.state, got, tt.want)
		}
	}
}
