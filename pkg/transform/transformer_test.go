package transform

import (
	"math/rand"
	"testing"

	"github.com/oxygene76/sofia-scene/pkg/geometry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/floats"
)

const tol = 1e-9

var v = geometry.Vec3

func providers() map[string]*Transformer {
	return map[string]*Transformer{
		"matrix":     NewTransformer(MatrixProvider{}),
		"quaternion": NewTransformer(QuaternionProvider{}),
	}
}

func assertPoints(t *testing.T, want, got []geometry.Vector3) {
	t.Helper()
	require.Len(t, got, len(want))
	assert.True(t, geometry.PointsEqualApprox(want, got, tol), "want %v, got %v", want, got)
}

func TestIdentityLeavesPointsInPlace(t *testing.T) {
	pts := []geometry.Vector3{v(1, 2, 3), v(-4, 0.5, 9), v(0, 0, 0)}
	for name, tr := range providers() {
		for _, pivot := range []geometry.Vector3{{}, v(10, -3, 2), v(-1, -1, -1)} {
			got := tr.PointsAboutPivot(pts, pivot, Identity())
			assert.True(t, geometry.PointsEqualApprox(pts, got, tol), "%s pivot %v", name, pivot)
		}
	}
}

func TestPointsAboutPivotKnownValues(t *testing.T) {
	for name, tr := range providers() {
		t.Run(name, func(t *testing.T) {
			got := tr.PointsAboutPivot([]geometry.Vector3{v(1, 0, 0)}, geometry.Vector3{}, New(v(1, 1, 1), geometry.Vector3{}))
			assertPoints(t, []geometry.Vector3{v(2, 1, 1)}, got)

			p := tr.PointAboutPivot(v(1, 0, 0), geometry.Vector3{}, New(geometry.Vector3{}, v(0, 0, 180)))
			assert.True(t, p.ApproxEqual(v(-1, 0, 0), tol), "got %v", p)

			p = tr.PointAboutPivot(v(2, 1, 0), v(1, 1, 0), New(geometry.Vector3{}, v(0, 0, 90)))
			assert.True(t, p.ApproxEqual(v(1, 2, 0), tol), "got %v", p)
		})
	}
}

func TestScaleAppliesBeforeRotation(t *testing.T) {
	trs := New(geometry.Vector3{}, v(0, 0, 90)).WithScale(v(2, 1, 1))
	for name, tr := range providers() {
		p := tr.PointAboutPivot(v(1, 0, 0), geometry.Vector3{}, trs)
		assert.True(t, p.ApproxEqual(v(0, 2, 0), tol), "%s got %v", name, p)
	}
}

func TestEulerOrderIsXThenYThenZ(t *testing.T) {
	trs := New(geometry.Vector3{}, v(90, 90, 0))
	for name, tr := range providers() {
		p := tr.PointAboutPivot(v(0, 1, 0), geometry.Vector3{}, trs)
		assert.True(t, p.ApproxEqual(v(1, 0, 0), tol), "%s got %v", name, p)
	}
}

func TestPivotInvariantUnderTranslation(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	pts := []geometry.Vector3{v(1, 2, 3), v(-2, 5, 0.25), v(7, -1, 4)}
	pivot := v(0.5, -1, 2)
	trs := TRS{Translation: v(3, -2, 1), Rotation: v(10, 25, -40), Scale: v(1.5, 0.5, 2)}

	for i := 0; i < 10; i++ {
		d := v(rng.Float64()*20-10, rng.Float64()*20-10, rng.Float64()*20-10)
		base := PointsAboutPivot(pts, pivot, trs)
		shifted := PointsAboutPivot(geometry.Translate(pts, d), pivot.Add(d), trs)
		assertPoints(t, geometry.Translate(base, d), shifted)
	}
}

func TestPointsAboutPivotKeepsShape(t *testing.T) {
	pts := []geometry.Vector3{v(1, 0, 0), v(0, 1, 0)}
	out := PointsAboutPivot(pts, geometry.Vector3{}, New(v(5, 5, 5), v(0, 0, 90)))
	assert.Len(t, out, 2)
	assert.Equal(t, []geometry.Vector3{v(1, 0, 0), v(0, 1, 0)}, pts)

	empty := PointsAboutPivot(nil, geometry.Vector3{}, Identity())
	assert.NotNil(t, empty)
	assert.Empty(t, empty)
}

func TestProvidersAgree(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	rnd := func(scale float64) geometry.Vector3 {
		return v((rng.Float64()*2-1)*scale, (rng.Float64()*2-1)*scale, (rng.Float64()*2-1)*scale)
	}
	m, q := NewTransformer(MatrixProvider{}), NewTransformer(QuaternionProvider{})

	for i := 0; i < 200; i++ {
		trs := TRS{Translation: rnd(50), Rotation: rnd(180), Scale: rnd(3)}
		p, pivot := rnd(100), rnd(10)
		a := m.PointAboutPivot(p, pivot, trs)
		b := q.PointAboutPivot(p, pivot, trs)
		assert.True(t, a.ApproxEqual(b, 1e-8), "trs %+v: %v vs %v", trs, a, b)
	}
}

func TestDirectionIgnoresTranslation(t *testing.T) {
	trs := TRS{Translation: v(100, 100, 100), Rotation: v(0, 0, 90), Scale: v(1, 3, 1)}
	for name, tr := range providers() {
		d := tr.Direction(v(1, 0, 0), trs)
		assert.True(t, d.ApproxEqual(v(0, 1, 0), tol), "%s got %v", name, d)
	}
}

func TestMatrixProviderMatrix(t *testing.T) {
	m := MatrixProvider{}.Matrix(TRS{Translation: v(1, 2, 3), Scale: v(2, 3, 4)})
	r, c := m.Dims()
	require.Equal(t, 4, r)
	require.Equal(t, 4, c)

	assert.Equal(t, []float64{2, 0, 0, 1}, m.RawRowView(0))
	assert.Equal(t, []float64{0, 3, 0, 2}, m.RawRowView(1))
	assert.Equal(t, []float64{0, 0, 4, 3}, m.RawRowView(2))
	assert.Equal(t, []float64{0, 0, 0, 1}, m.RawRowView(3))
}

func TestNewBox(t *testing.T) {
	corners := []geometry.Vector3{v(0, 0, 0), v(1, 0, 0)}

	got := NewBox(corners, geometry.Vector3{}, Identity(), v(0, 0, 1))
	assertPoints(t, []geometry.Vector3{v(0, 0, 1), v(1, 0, 1)}, got)

	got = NewBox(corners, geometry.Vector3{}, Identity(), geometry.Vector3{})
	assertPoints(t, corners, got)

	// the offset turns with the box but never picks up the translation
	trs := New(v(0, 0, -40), v(0, 90, 0))
	got = NewBox(corners, geometry.Vector3{}, trs, v(0, 0, 7))
	assertPoints(t, []geometry.Vector3{v(7, 0, -40), v(7, 0, -41)}, got)
}

func TestNewOrientedBox(t *testing.T) {
	corners := []geometry.Vector3{v(-12, 53, 0), v(12, 53, 0), v(12, 64, 0)}

	box := Default().NewOrientedBox(corners, geometry.Vector3{}, Identity(), geometry.Vector3{}, 16)
	assert.True(t, floats.EqualApprox(
		[]float64{-12, 53, 0, 12, 53, 0, 12, 64, 0, 16},
		box.Descriptor(), tol))

	scaled := Default().NewOrientedBox(corners, geometry.Vector3{}, Identity().WithScale(v(1, 1, 2)), v(0, 0, 1), 16)
	assert.InDelta(t, 32.0, scaled.Depth, tol)
	assert.Len(t, scaled.Descriptor(), 3*len(corners)+1)
	for _, c := range scaled.Corners {
		assert.InDelta(t, 2.0, c.Z, tol)
	}
}

func TestOrientedBoxes(t *testing.T) {
	a := OrientedBox{Corners: []geometry.Vector3{v(0, 0, 0), v(3, 0, 0), v(3, 3, 0)}, Depth: 2}
	b := OrientedBox{Corners: []geometry.Vector3{v(0, 0, 1)}, Depth: 4}

	d := OrientedBoxes{a, b}.Descriptor()
	assert.Equal(t, []float64{0, 0, 0, 3, 0, 0, 3, 3, 0, 2, 0, 0, 1, 4}, d)
	assert.Empty(t, OrientedBoxes{}.Descriptor())

	c := a.Centroid()
	assert.True(t, c.ApproxEqual(v(2, 1, 0), tol), "got %v", c)
	assert.Equal(t, geometry.Vector3{}, OrientedBox{}.Centroid())
}

func TestTRSDefaults(t *testing.T) {
	assert.True(t, Identity().IsIdentity())
	assert.False(t, New(v(1, 0, 0), geometry.Vector3{}).IsIdentity())

	zero := TRS{Translation: v(1, 2, 3)}
	assert.Equal(t, geometry.One(), zero.WithDefaults().Scale)
	assert.Equal(t, v(2, 2, 2), zero.WithScale(v(2, 2, 2)).WithDefaults().Scale)
	assert.NotNil(t, NewTransformer(nil).provider)
}
