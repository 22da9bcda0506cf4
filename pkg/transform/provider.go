package transform

import (
	"math"

	"github.com/oxygene76/sofia-scene/pkg/geometry"
	"gonum.org/v1/gonum/mat"
)

// Provider applies TRS transforms to individual vectors. The pivot and
// box logic in Transformer only talks to this interface.
type Provider interface {
	// Apply transforms a position: scale, rotate, then translate.
	Apply(p geometry.Vector3, t TRS) geometry.Vector3
	// ApplyLinear transforms a direction: scale and rotate, no translation.
	ApplyLinear(v geometry.Vector3, t TRS) geometry.Vector3
}

// MatrixProvider builds a homogeneous 4x4 T*R*S matrix with gonum.
type MatrixProvider struct{}

// Matrix returns the homogeneous matrix T*R*S for t
func (MatrixProvider) Matrix(t TRS) *mat.Dense {
	var rs, trs mat.Dense
	rs.Mul(rotationMatrix(t.Radians()), scaleMatrix(t.Scale))
	trs.Mul(translationMatrix(t.Translation), &rs)
	return &trs
}

// Apply implements Provider.
func (p MatrixProvider) Apply(v geometry.Vector3, t TRS) geometry.Vector3 {
	return mulHomogeneous(p.Matrix(t), v, 1)
}

// ApplyLinear implements Provider.
func (p MatrixProvider) ApplyLinear(v geometry.Vector3, t TRS) geometry.Vector3 {
	return mulHomogeneous(p.Matrix(t), v, 0)
}

func mulHomogeneous(m mat.Matrix, v geometry.Vector3, w float64) geometry.Vector3 {
	in := mat.NewVecDense(4, []float64{v.X, v.Y, v.Z, w})
	var out mat.VecDense
	out.MulVec(m, in)
	return geometry.Vec3(out.AtVec(0), out.AtVec(1), out.AtVec(2))
}

func translationMatrix(t geometry.Vector3) *mat.Dense {
	return mat.NewDense(4, 4, []float64{
		1, 0, 0, t.X,
		0, 1, 0, t.Y,
		0, 0, 1, t.Z,
		0, 0, 0, 1,
	})
}

func scaleMatrix(s geometry.Vector3) *mat.Dense {
	return mat.NewDense(4, 4, []float64{
		s.X, 0, 0, 0,
		0, s.Y, 0, 0,
		0, 0, s.Z, 0,
		0, 0, 0, 1,
	})
}

// rotationMatrix returns Rz*Ry*Rx for angles in radians
func rotationMatrix(r geometry.Vector3) *mat.Dense {
	sx, cx := math.Sincos(r.X)
	sy, cy := math.Sincos(r.Y)
	sz, cz := math.Sincos(r.Z)

	rx := mat.NewDense(4, 4, []float64{
		1, 0, 0, 0,
		0, cx, -sx, 0,
		0, sx, cx, 0,
		0, 0, 0, 1,
	})
	ry := mat.NewDense(4, 4, []float64{
		cy, 0, sy, 0,
		0, 1, 0, 0,
		-sy, 0, cy, 0,
		0, 0, 0, 1,
	})
	rz := mat.NewDense(4, 4, []float64{
		cz, -sz, 0, 0,
		sz, cz, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	})

	var zy, zyx mat.Dense
	zy.Mul(rz, ry)
	zyx.Mul(&zy, rx)
	return &zyx
}
