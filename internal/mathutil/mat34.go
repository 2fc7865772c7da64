package mathutil

import "math"

// Mat34 is a 3×4 orientation+translation matrix stored row-major:
// columns 0–2 are the rotation basis, column 3 is the translation.
// This is the layout the OpenVR runtime uses for overlay transforms
// (HmdMatrix34_t).
type Mat34 [12]float64

// Mat34FromParts assembles a transform from a rotation basis and a
// translation.
func Mat34FromParts(r Mat3, t Vec3) Mat34 {
	return Mat34{
		r[0], r[1], r[2], t[0],
		r[3], r[4], r[5], t[1],
		r[6], r[7], r[8], t[2],
	}
}

// Rotation returns the 3×3 rotation basis.
func (m Mat34) Rotation() Mat3 {
	return Mat3{
		m[0], m[1], m[2],
		m[4], m[5], m[6],
		m[8], m[9], m[10],
	}
}

// Translation returns the translation column.
func (m Mat34) Translation() Vec3 {
	return Vec3{m[3], m[7], m[11]}
}

// ApproxEqual reports whether all entries of a and b are within eps.
func (a Mat34) ApproxEqual(b Mat34, eps float64) bool {
	for i := range a {
		if math.Abs(a[i]-b[i]) > eps {
			return false
		}
	}
	return true
}
