// Package transform computes the device-relative 3×4 transforms that
// anchor the overlay panel to a controller wrist or above the headset.
package transform

import (
	"github.com/TommyZ-7/ton-vr-overlay/internal/mathutil"
	"github.com/TommyZ-7/ton-vr-overlay/internal/protocol"
	"github.com/TommyZ-7/ton-vr-overlay/internal/vr"
)

// Binding is a computed transform plus where it attaches. Absolute
// bindings ignore Device.
type Binding struct {
	Matrix   mathutil.Mat34
	Device   uint32
	Absolute bool
}

// wristTilt is the roll about the panel's face normal, in degrees, that
// makes the panel read upright when the wearer turns the wrist inward.
const wristTilt = 115

// Wrist attachment offset in controller-local space. The controller's
// -Z axis points forward along the hand, so +Z sits back at the wrist;
// the x component is mirrored between hands (inner side of the wrist).
const (
	wristOffX = 0.07
	wristOffY = -0.01
	wristOffZ = 0.15
)

// Precomputed hand bases and fallback poses. The two hands are exact
// mirrors: the panel's face normal is -X on the right controller and
// +X on the left, the in-plane right vector flips with it so both
// frames stay right-handed, and the tilt roll reverses direction.
var (
	// rightHandRot = [right=(0,0,1), up=(0,1,0), normal=(-1,0,0)] @ Rz(115°)
	rightHandRot = mathutil.Mat3Mul(
		mathutil.Mat3FromCols(
			mathutil.Vec3{0, 0, 1},
			mathutil.Vec3{0, 1, 0},
			mathutil.Vec3{-1, 0, 0},
		),
		mathutil.RotZ(mathutil.Deg2Rad(wristTilt)),
	)

	// leftHandRot = [right=(0,0,-1), up=(0,1,0), normal=(1,0,0)] @ Rz(-115°)
	leftHandRot = mathutil.Mat3Mul(
		mathutil.Mat3FromCols(
			mathutil.Vec3{0, 0, -1},
			mathutil.Vec3{0, 1, 0},
			mathutil.Vec3{1, 0, 0},
		),
		mathutil.RotZ(mathutil.Deg2Rad(-wristTilt)),
	)

	rightHandOffset = mathutil.Vec3{-wristOffX, wristOffY, wristOffZ}
	leftHandOffset  = mathutil.Vec3{wristOffX, wristOffY, wristOffZ}

	// World-fixed poses used when the requested controller is not
	// tracked: beside the play-space origin at roughly eye height,
	// pulled back toward the wearer.
	rightFallback = mathutil.Mat34FromParts(mathutil.Mat3Identity(), mathutil.Vec3{0.40, 1.40, -0.50})
	leftFallback  = mathutil.Mat34FromParts(mathutil.Mat3Identity(), mathutil.Vec3{-0.40, 1.40, -0.50})

	// aboveHead floats the panel over the wearer's view, relative to
	// the headset: raised 0.3m, pushed 0.5m forward (-Z).
	aboveHead = mathutil.Mat34FromParts(mathutil.Mat3Identity(), mathutil.Vec3{0, 0.30, -0.50})
)

// ForPlacement produces the binding for a placement given the current
// tracking state. It never fails: an untracked controller degrades to
// the world-fixed fallback pose for that side.
func ForPlacement(p protocol.Placement, tracker vr.Tracker) Binding {
	switch p {
	case protocol.PlacementAbove:
		return Binding{Matrix: aboveHead, Device: tracker.HMD()}
	case protocol.PlacementLeftHand:
		return handBinding(tracker, vr.HandLeft, leftHandRot, leftHandOffset, leftFallback)
	default:
		return handBinding(tracker, vr.HandRight, rightHandRot, rightHandOffset, rightFallback)
	}
}

func handBinding(tracker vr.Tracker, role vr.HandRole, rot mathutil.Mat3, offset mathutil.Vec3, fallback mathutil.Mat34) Binding {
	device, ok := tracker.ControllerIndex(role)
	if !ok {
		return Binding{Matrix: fallback, Absolute: true}
	}
	return Binding{Matrix: mathutil.Mat34FromParts(rot, offset), Device: device}
}
