package motion

// Vector3 is a three-axis reading in g.
type Vector3 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Matrix3 is the device attitude as a rotation matrix, row-major.
type Matrix3 struct {
	M11 float64 `json:"m11"`
	M12 float64 `json:"m12"`
	M13 float64 `json:"m13"`
	M21 float64 `json:"m21"`
	M22 float64 `json:"m22"`
	M23 float64 `json:"m23"`
	M31 float64 `json:"m31"`
	M32 float64 `json:"m32"`
	M33 float64 `json:"m33"`
}

// Identity is the attitude of a device aligned with the reference frame.
var Identity = Matrix3{M11: 1, M22: 1, M33: 1}

// ToWorld rotates a device-frame vector into the reference frame, which
// is the transpose of the attitude applied to v.
func (m Matrix3) ToWorld(v Vector3) Vector3 {
	return Vector3{
		X: m.M11*v.X + m.M21*v.Y + m.M31*v.Z,
		Y: m.M12*v.X + m.M22*v.Y + m.M32*v.Z,
		Z: m.M13*v.X + m.M23*v.Y + m.M33*v.Z,
	}
}

// Sample is one device-motion reading. Timestamp is in seconds on a
// monotonic clock.
type Sample struct {
	UserAccel Vector3 `json:"userAccel"`
	Gravity   Vector3 `json:"gravity"`
	Rotation  Matrix3 `json:"rotation"`
	Timestamp float64 `json:"t"`
}
