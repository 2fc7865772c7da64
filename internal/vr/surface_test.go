package vr

import (
	"log/slog"
	"strings"
	"testing"

	"github.com/TommyZ-7/ton-vr-overlay/internal/mathutil"
)

func TestOpenUnknownDriver(t *testing.T) {
	_, _, err := Open("does-not-exist")
	if err == nil {
		t.Fatal("expected error for unknown driver")
	}
	if !strings.Contains(err.Error(), "headless") {
		t.Errorf("error should list available drivers: %v", err)
	}
}

func TestOpenHeadless(t *testing.T) {
	surface, tracker, err := Open("headless")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer surface.Close()

	// Headless reports nothing tracked, so both controller lookups
	// must degrade gracefully.
	if _, ok := tracker.ControllerIndex(HandRight); ok {
		t.Error("headless tracker reported a right controller")
	}
	if _, ok := tracker.ControllerIndex(HandLeft); ok {
		t.Error("headless tracker reported a left controller")
	}
	if tracker.HMD() != 0 {
		t.Errorf("HMD index = %d, want 0", tracker.HMD())
	}

	// Every surface call is a logged no-op that must succeed.
	m := mathutil.Mat34FromParts(mathutil.Mat3Identity(), mathutil.Vec3{0, 1, 0})
	if err := surface.SetAbsoluteTransform(m); err != nil {
		t.Errorf("SetAbsoluteTransform: %v", err)
	}
	if err := surface.SetDeviceTransform(0, m); err != nil {
		t.Errorf("SetDeviceTransform: %v", err)
	}
	if err := surface.SetTexture("overlay.png"); err != nil {
		t.Errorf("SetTexture: %v", err)
	}
	if err := surface.Show(); err != nil {
		t.Errorf("Show: %v", err)
	}
	if err := surface.Hide(); err != nil {
		t.Errorf("Hide: %v", err)
	}
}

func TestRegisterCustomDriver(t *testing.T) {
	called := false
	Register("test-driver", func() (Surface, Tracker, error) {
		called = true
		return &headlessSurface{log: slog.Default()}, headlessTracker{}, nil
	})
	defer delete(drivers, "test-driver")

	_, _, err := Open("test-driver")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if !called {
		t.Error("factory was not invoked")
	}
}
