package vr

import (
	"log/slog"

	"github.com/TommyZ-7/ton-vr-overlay/internal/mathutil"
)

// headlessSurface is a no-op driver for machines without a VR runtime.
// Every call succeeds and is logged at debug level so the command flow
// stays observable end to end.
type headlessSurface struct {
	log *slog.Logger
}

// headlessTracker reports no tracked controllers, which drives the
// absolute-fallback transform path.
type headlessTracker struct{}

func init() {
	Register("headless", func() (Surface, Tracker, error) {
		return &headlessSurface{log: slog.Default()}, headlessTracker{}, nil
	})
}

func (s *headlessSurface) SetDeviceTransform(device uint32, m mathutil.Mat34) error {
	s.log.Debug("headless: device transform", "device", device, "translation", m.Translation())
	return nil
}

func (s *headlessSurface) SetAbsoluteTransform(m mathutil.Mat34) error {
	s.log.Debug("headless: absolute transform", "translation", m.Translation())
	return nil
}

func (s *headlessSurface) SetTexture(path string) error {
	s.log.Debug("headless: texture", "path", path)
	return nil
}

func (s *headlessSurface) Show() error {
	s.log.Debug("headless: show")
	return nil
}

func (s *headlessSurface) Hide() error {
	s.log.Debug("headless: hide")
	return nil
}

func (s *headlessSurface) Close() error {
	return nil
}

func (headlessTracker) ControllerIndex(HandRole) (uint32, bool) {
	return 0, false
}

func (headlessTracker) HMD() uint32 {
	return 0
}
