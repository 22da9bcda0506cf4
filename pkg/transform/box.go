package transform

import (
	"github.com/oxygene76/sofia-scene/pkg/geometry"
	"gonum.org/v1/gonum/stat"
)

// OrientedBox is a selection volume: three corners spanning a rectangle,
// extruded by Depth along the rectangle normal.
type OrientedBox struct {
	Corners []geometry.Vector3 `json:"corners" yaml:"corners"`
	Depth   float64            `json:"depth" yaml:"depth"`
}

// Descriptor flattens the box to c0x, c0y, c0z, ..., depth, the layout of
// an orientedBox parameter.
func (b OrientedBox) Descriptor() []float64 {
	return append(geometry.Flatten(b.Corners), b.Depth)
}

// Centroid returns the mean of the corners.
func (b OrientedBox) Centroid() geometry.Vector3 {
	if len(b.Corners) == 0 {
		return geometry.Vector3{}
	}
	xs := make([]float64, len(b.Corners))
	ys := make([]float64, len(b.Corners))
	zs := make([]float64, len(b.Corners))
	for i, c := range b.Corners {
		xs[i], ys[i], zs[i] = c.X, c.Y, c.Z
	}
	return geometry.Vec3(stat.Mean(xs, nil), stat.Mean(ys, nil), stat.Mean(zs, nil))
}

// OrientedBoxes is a list of boxes given to a single region of interest.
type OrientedBoxes []OrientedBox

// Descriptor concatenates the descriptors of every box.
func (bs OrientedBoxes) Descriptor() []float64 {
	var out []float64
	for _, b := range bs {
		out = append(out, b.Descriptor()...)
	}
	return out
}
