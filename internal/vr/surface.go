package vr

import (
	"fmt"
	"sort"

	"github.com/TommyZ-7/ton-vr-overlay/internal/mathutil"
)

// Surface is the native overlay panel the host VR runtime renders into
// 3D space. Each Set*Transform call replaces the previous binding —
// a surface never holds two transforms at once.
type Surface interface {
	// SetDeviceTransform anchors the surface to a tracked device; the
	// runtime re-evaluates the matrix against the device's live pose
	// each frame.
	SetDeviceTransform(device uint32, m mathutil.Mat34) error

	// SetAbsoluteTransform anchors the surface at a fixed world pose.
	SetAbsoluteTransform(m mathutil.Mat34) error

	// SetTexture (re)loads the surface texture from a raster file.
	SetTexture(path string) error

	Show() error
	Hide() error
	Close() error
}

// HandRole selects which controller to resolve.
type HandRole int

const (
	HandRight HandRole = iota
	HandLeft
)

func (r HandRole) String() string {
	if r == HandLeft {
		return "left"
	}
	return "right"
}

// Tracker resolves tracked device indices from the host runtime.
type Tracker interface {
	// ControllerIndex returns the device index for the controller of
	// the given role, or ok=false when no such controller is tracked.
	ControllerIndex(role HandRole) (index uint32, ok bool)

	// HMD returns the headset's device index.
	HMD() uint32
}

// Factory opens a driver's surface and tracker pair.
type Factory func() (Surface, Tracker, error)

var drivers = map[string]Factory{}

// Register makes a driver available to Open. Called from driver init
// functions.
func Register(name string, f Factory) {
	drivers[name] = f
}

// Open attaches to the named driver. An unknown name or a factory
// failure means the process cannot reach a host VR runtime and should
// exit; the error text lists what is available.
func Open(name string) (Surface, Tracker, error) {
	f, ok := drivers[name]
	if !ok {
		names := make([]string, 0, len(drivers))
		for n := range drivers {
			names = append(names, n)
		}
		sort.Strings(names)
		return nil, nil, fmt.Errorf("vr: unknown driver %q (available: %v)", name, names)
	}
	surface, tracker, err := f()
	if err != nil {
		return nil, nil, fmt.Errorf("vr: open driver %q: %w", name, err)
	}
	return surface, tracker, nil
}
