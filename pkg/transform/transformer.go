package transform

import (
	"github.com/oxygene76/sofia-scene/pkg/geometry"
)

// Transformer moves point sets about a pivot using a Provider.
type Transformer struct {
	provider Provider
}

// NewTransformer returns a Transformer backed by p. A nil provider falls
// back to MatrixProvider.
func NewTransformer(p Provider) *Transformer {
	if p == nil {
		p = MatrixProvider{}
	}
	return &Transformer{provider: p}
}

var defaultTransformer = NewTransformer(MatrixProvider{})

// Default returns the shared matrix-backed Transformer
func Default() *Transformer {
	return defaultTransformer
}

// PointAboutPivot moves p so the pivot is the origin, applies t, and moves
// it back.
func (tr *Transformer) PointAboutPivot(p, pivot geometry.Vector3, t TRS) geometry.Vector3 {
	return tr.provider.Apply(p.Sub(pivot), t).Add(pivot)
}

// PointsAboutPivot applies PointAboutPivot to every point. The result has the
// same length as points and the input is left untouched.
func (tr *Transformer) PointsAboutPivot(points []geometry.Vector3, pivot geometry.Vector3, t TRS) []geometry.Vector3 {
	out := make([]geometry.Vector3, len(points))
	for i, p := range points {
		out[i] = tr.PointAboutPivot(p, pivot, t)
	}
	return out
}

// Direction transforms v by the rotation and scale of t only.
func (tr *Transformer) Direction(v geometry.Vector3, t TRS) geometry.Vector3 {
	return tr.provider.ApplyLinear(v, t)
}

// NewBox transforms the box corners about the pivot, then shifts every
// corner by the offset after rotating and scaling it. The offset is an
// extent, so it is neither translated nor taken relative to the pivot.
func (tr *Transformer) NewBox(corners []geometry.Vector3, pivot geometry.Vector3, t TRS, offset geometry.Vector3) []geometry.Vector3 {
	moved := tr.PointsAboutPivot(corners, pivot, t)
	d := tr.Direction(offset, t)
	for i := range moved {
		moved[i] = moved[i].Add(d)
	}
	return moved
}

// NewOrientedBox is NewBox plus an extrusion depth. The depth follows the
// z scale of t.
func (tr *Transformer) NewOrientedBox(corners []geometry.Vector3, pivot geometry.Vector3, t TRS, offset geometry.Vector3, depth float64) OrientedBox {
	return OrientedBox{
		Corners: tr.NewBox(corners, pivot, t, offset),
		Depth:   t.Scale.Z * depth,
	}
}

// PointAboutPivot uses the default Transformer.
func PointAboutPivot(p, pivot geometry.Vector3, t TRS) geometry.Vector3 {
	return defaultTransformer.PointAboutPivot(p, pivot, t)
}

// PointsAboutPivot uses the default Transformer.
func PointsAboutPivot(points []geometry.Vector3, pivot geometry.Vector3, t TRS) []geometry.Vector3 {
	return defaultTransformer.PointsAboutPivot(points, pivot, t)
}

// NewBox uses the default Transformer.
func NewBox(corners []geometry.Vector3, pivot geometry.Vector3, t TRS, offset geometry.Vector3) []geometry.Vector3 {
	return defaultTransformer.NewBox(corners, pivot, t, offset)
}
