package math

import (
	"errors"
	"fmt"
)

// Axis conversion errors.
var (
	ErrInvalidAxis    = errors.New("invalid axis: expected one of X, Y, Z, -X, -Y, -Z")
	ErrDegenerateAxes = errors.New("forward and up axes must not share an axis")
)

// Axis identifies a signed cardinal axis.
type Axis int

const (
	AxisX Axis = iota
	AxisY
	AxisZ
	AxisNegX
	AxisNegY
	AxisNegZ
)

// ParseAxis parses an axis name such as "Y" or "-Z".
func ParseAxis(s string) (Axis, error) {
	switch s {
	case "X":
		return AxisX, nil
	case "Y":
		return AxisY, nil
	case "Z":
		return AxisZ, nil
	case "-X":
		return AxisNegX, nil
	case "-Y":
		return AxisNegY, nil
	case "-Z":
		return AxisNegZ, nil
	}
	return AxisX, fmt.Errorf("%w: %q", ErrInvalidAxis, s)
}

// String returns the axis name.
func (a Axis) String() string {
	switch a {
	case AxisX:
		return "X"
	case AxisY:
		return "Y"
	case AxisZ:
		return "Z"
	case AxisNegX:
		return "-X"
	case AxisNegY:
		return "-Y"
	case AxisNegZ:
		return "-Z"
	default:
		return fmt.Sprintf("Axis(%d)", int(a))
	}
}

// Vec returns the unit vector along the axis.
func (a Axis) Vec() Vec3 {
	switch a {
	case AxisX:
		return Vec3{X: 1}
	case AxisY:
		return Vec3{Y: 1}
	case AxisZ:
		return Vec3{Z: 1}
	case AxisNegX:
		return Vec3{X: -1}
	case AxisNegY:
		return Vec3{Y: -1}
	case AxisNegZ:
		return Vec3{Z: -1}
	default:
		return Vec3{}
	}
}

// AxisConversion returns the change-of-basis matrix converting from the
// authoring convention (X right, Y forward, Z up) into a target convention
// given by its forward and up axes. The result is a signed permutation
// matrix, so its inverse equals its transpose.
func AxisConversion(forward, up Axis) (Mat4, error) {
	f := forward.Vec()
	u := up.Vec()
	r := f.Cross(u)
	if r == (Vec3{}) {
		return Identity(), fmt.Errorf("%w: forward %s, up %s", ErrDegenerateAxes, forward, up)
	}

	// Source basis is the identity (right=X, forward=Y, up=Z), so the
	// conversion is just the target basis laid out in columns.
	return Mat4{
		r.X, r.Y, r.Z, 0,
		f.X, f.Y, f.Z, 0,
		u.X, u.Y, u.Z, 0,
		0, 0, 0, 1,
	}, nil
}
