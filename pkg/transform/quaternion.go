package transform

import (
	"github.com/oxygene76/sofia-scene/pkg/geometry"
	"gonum.org/v1/gonum/spatial/r3"
)

var (
	axisX = r3.Vec{X: 1}
	axisY = r3.Vec{Y: 1}
	axisZ = r3.Vec{Z: 1}
)

// QuaternionProvider rotates with gonum r3 quaternion rotations, one per
// axis, instead of building a matrix.
type QuaternionProvider struct{}

// Apply implements Provider.
func (q QuaternionProvider) Apply(v geometry.Vector3, t TRS) geometry.Vector3 {
	return q.ApplyLinear(v, t).Add(t.Translation)
}

// ApplyLinear implements Provider.
func (QuaternionProvider) ApplyLinear(v geometry.Vector3, t TRS) geometry.Vector3 {
	rad := t.Radians()
	p := toR3(v.Mul(t.Scale))
	p = r3.NewRotation(rad.X, axisX).Rotate(p)
	p = r3.NewRotation(rad.Y, axisY).Rotate(p)
	p = r3.NewRotation(rad.Z, axisZ).Rotate(p)
	return geometry.Vec3(p.X, p.Y, p.Z)
}

func toR3(v geometry.Vector3) r3.Vec {
	return r3.Vec{X: v.X, Y: v.Y, Z: v.Z}
}
