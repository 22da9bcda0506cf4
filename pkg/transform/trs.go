// Package transform places point sets in a model's frame using
// translation-rotation-scale transforms applied about a pivot.
package transform

import (
	"math"

	"github.com/oxygene76/sofia-scene/pkg/geometry"
)

// TRS is a translation, Euler rotation (degrees) and per-axis scale.
//
// Rotations are static about X, then Y, then Z, so the rotation matrix is
// Rz*Ry*Rx. The composed transform scales first, rotates, then translates.
type TRS struct {
	Translation geometry.Vector3 `json:"translation" yaml:"translation"`
	Rotation    geometry.Vector3 `json:"rotation" yaml:"rotation"`
	Scale       geometry.Vector3 `json:"scale" yaml:"scale"`
}

// Identity returns the transform that leaves every point in place
func Identity() TRS {
	return TRS{Scale: geometry.One()}
}

// New returns a transform with unit scale
func New(translation, rotation geometry.Vector3) TRS {
	return TRS{Translation: translation, Rotation: rotation, Scale: geometry.One()}
}

// WithScale returns a copy of t using the given scale
func (t TRS) WithScale(scale geometry.Vector3) TRS {
	t.Scale = scale
	return t
}

// WithDefaults replaces an all-zero scale by (1, 1, 1). A zero scale only
// shows up when a caller left the field unset.
func (t TRS) WithDefaults() TRS {
	if t.Scale.IsZero() {
		t.Scale = geometry.One()
	}
	return t
}

// IsIdentity reports whether t is exactly the identity transform
func (t TRS) IsIdentity() bool {
	return t.Translation.IsZero() && t.Rotation.IsZero() && t.Scale == geometry.One()
}

// Radians returns the Euler angles in radians
func (t TRS) Radians() geometry.Vector3 {
	return t.Rotation.Scale(math.Pi / 180.0)
}
