package core

import (
	"errors"
	"testing"

	"github.com/tikv/rp-prof/internal/rperrors"
	"github.com/tikv/rp-prof/internal/testutil"
)

func TestStartRejectsOutOfRangeFrequency(t *testing.T) {
	c := New(testutil.NewTestLogger(t))

	cases := []int{0, -1, 1001, 5000}
	for _, hz := range cases {
		if err := c.Start(hz, nil); err == nil {
			t.Errorf("Start(%d) = nil error, want a CreatingError", hz)
		}
	}
}

func TestStopWithoutStartReturnsNotRunning(t *testing.T) {
	c := New(testutil.NewTestLogger(t))

	err := c.Stop()
	if !errors.Is(err, rperrors.ErrNotRunning) {
		t.Fatalf("Stop() = %v, want ErrNotRunning", err)
	}
	if c.IsRunning() {
		t.Error("IsRunning() = true after failed Stop")
	}
}

// TestStartStopIdempotence exercises scenario 3/4/5 of the testable
// properties: a fresh start succeeds, a second concurrent start fails with
// AlreadyRunning, and stop followed by another start succeeds again.
func TestStartStopIdempotence(t *testing.T) {
	c := New(testutil.NewTestLogger(t))

	if err := c.Start(50, nil); err != nil {
		t.Fatalf("first Start() = %v, want nil", err)
	}
	if err := c.Start(50, nil); !errors.Is(err, rperrors.ErrAlreadyRunning) {
		t.Fatalf("second Start() = %v, want ErrAlreadyRunning", err)
	}
	if err := c.Stop(); err != nil {
		t.Fatalf("Stop() = %v, want nil", err)
	}
	if c.IsRunning() {
		t.Error("IsRunning() = true after Stop")
	}
	if err := c.Start(50, nil); err != nil {
		t.Fatalf("Start() after Stop() = %v, want nil", err)
	}
	if err := c.Stop(); err != nil {
		t.Fatalf("final Stop() = %v, want nil", err)
	}
}
