package geometry

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestVectorArithmetic(t *testing.T) {
	a := Vec3(1, 2, 3)
	b := Vec3(4, -5, 6)

	assert.Equal(t, Vec3(5, -3, 9), a.Add(b))
	assert.Equal(t, Vec3(-3, 7, -3), a.Sub(b))
	assert.Equal(t, Vec3(2, 4, 6), a.Scale(2))
	assert.Equal(t, Vec3(4, -10, 18), a.Mul(b))
	assert.Equal(t, 12.0, a.Dot(b))
	assert.Equal(t, Vec3(27, 6, -13), a.Cross(b))
	assert.InDelta(t, 5.0, Vec3(3, 4, 0).Magnitude(), 1e-12)
	assert.InDelta(t, 5.0, Vec3(1, 1, 1).Distance(Vec3(4, 5, 1)), 1e-12)
	assert.True(t, Vector3{}.IsZero())
	assert.False(t, One().IsZero())
}

func TestApproxEqual(t *testing.T) {
	assert.True(t, Vec3(1, 2, 3).ApproxEqual(Vec3(1+1e-10, 2, 3-1e-10), 1e-9))
	assert.False(t, Vec3(1, 2, 3).ApproxEqual(Vec3(1.1, 2, 3), 1e-9))
}

func TestFromSlice(t *testing.T) {
	v, err := FromSlice([]float64{1, 2, 3})
	require.NoError(t, err)
	assert.Equal(t, Vec3(1, 2, 3), v)

	for _, s := range [][]float64{nil, {1}, {1, 2}, {1, 2, 3, 4}} {
		_, err := FromSlice(s)
		assert.True(t, errors.Is(err, ErrInvalidVector), "len %d", len(s))
	}
}

func TestParse(t *testing.T) {
	for _, tc := range []struct {
		in   string
		want Vector3
	}{
		{"1,2,3", Vec3(1, 2, 3)},
		{" -12.5 , 53, 0 ", Vec3(-12.5, 53, 0)},
		{"[0, 0, -40]", Vec3(0, 0, -40)},
		{"(1e3,0,0)", Vec3(1000, 0, 0)},
	} {
		got, err := Parse(tc.in)
		require.NoError(t, err, tc.in)
		assert.Equal(t, tc.want, got, tc.in)
	}

	for _, in := range []string{"", "1,2", "a,b,c", "1,2,3,4"} {
		_, err := Parse(in)
		assert.ErrorIs(t, err, ErrInvalidVector, in)
	}
}

func TestPointsFromSlices(t *testing.T) {
	pts, err := PointsFromSlices([][]float64{{-12, 53, 0}, {12, 53, 0}})
	require.NoError(t, err)
	assert.Equal(t, []Vector3{Vec3(-12, 53, 0), Vec3(12, 53, 0)}, pts)

	_, err = PointsFromSlices([][]float64{{1, 2, 3}, {1, 2}})
	assert.ErrorIs(t, err, ErrInvalidVector)
}

func TestFlattenAndCompare(t *testing.T) {
	pts := []Vector3{Vec3(1, 2, 3), Vec3(4, 5, 6)}
	assert.Equal(t, []float64{1, 2, 3, 4, 5, 6}, Flatten(pts))
	assert.Empty(t, Flatten(nil))

	moved := Translate(pts, Vec3(1, 1, 1))
	assert.Equal(t, []Vector3{Vec3(2, 3, 4), Vec3(5, 6, 7)}, moved)
	assert.Equal(t, Vec3(1, 2, 3), pts[0], "input must not be mutated")

	assert.True(t, PointsEqualApprox(pts, []Vector3{Vec3(1, 2, 3+1e-12), Vec3(4, 5, 6)}, 1e-9))
	assert.False(t, PointsEqualApprox(pts, pts[:1], 1e-9))
}

func TestVectorEncoding(t *testing.T) {
	v := Vec3(1.5, -2, 0)

	b, err := json.Marshal(v)
	require.NoError(t, err)
	assert.JSONEq(t, `[1.5,-2,0]`, string(b))

	var back Vector3
	require.NoError(t, json.Unmarshal(b, &back))
	assert.Equal(t, v, back)
	assert.Error(t, json.Unmarshal([]byte(`[1,2]`), &back))

	y, err := yaml.Marshal(map[string]Vector3{"gravity": Vec3(0, -9810, 0)})
	require.NoError(t, err)
	assert.Equal(t, "gravity: [0, -9810, 0]\n", string(y))

	var m map[string]Vector3
	require.NoError(t, yaml.Unmarshal(y, &m))
	assert.Equal(t, Vec3(0, -9810, 0), m["gravity"])
}
