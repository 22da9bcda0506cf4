package geometry

import (
	"strconv"
	"strings"

	errorsmod "cosmossdk.io/errors"
	"gonum.org/v1/gonum/floats"
)

const codespace = "geometry"

// ErrInvalidVector is returned when a value cannot be read as a 3D vector.
var ErrInvalidVector = errorsmod.Register(codespace, 2, "invalid 3D vector")

// FromSlice builds a Vector3 from exactly three components
func FromSlice(s []float64) (Vector3, error) {
	if len(s) != 3 {
		return Vector3{}, errorsmod.Wrapf(ErrInvalidVector, "expected 3 components, got %d", len(s))
	}
	return Vector3{X: s[0], Y: s[1], Z: s[2]}, nil
}

// Parse reads a vector written as "x,y,z". Surrounding brackets and
// whitespace are ignored.
func Parse(s string) (Vector3, error) {
	trimmed := strings.Trim(strings.TrimSpace(s), "[]()")
	if trimmed == "" {
		return Vector3{}, errorsmod.Wrap(ErrInvalidVector, "empty value")
	}

	parts := strings.Split(trimmed, ",")
	comps := make([]float64, 0, len(parts))
	for _, p := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return Vector3{}, errorsmod.Wrapf(ErrInvalidVector, "%q: %v", s, err)
		}
		comps = append(comps, f)
	}
	return FromSlice(comps)
}

// PointsFromSlices converts nested component slices into points.
func PointsFromSlices(in [][]float64) ([]Vector3, error) {
	out := make([]Vector3, len(in))
	for i, s := range in {
		v, err := FromSlice(s)
		if err != nil {
			return nil, errorsmod.Wrapf(err, "point %d", i)
		}
		out[i] = v
	}
	return out, nil
}

// Flatten lays points out as x0, y0, z0, x1, ...
func Flatten(points []Vector3) []float64 {
	out := make([]float64, 0, 3*len(points))
	for _, p := range points {
		out = append(out, p.X, p.Y, p.Z)
	}
	return out
}

// PointsEqualApprox reports whether both sets hold the same number of points
// and every coordinate matches within tol.
func PointsEqualApprox(a, b []Vector3, tol float64) bool {
	if len(a) != len(b) {
		return false
	}
	return floats.EqualApprox(Flatten(a), Flatten(b), tol)
}

// Translate adds d to every point and returns the new set.
func Translate(points []Vector3, d Vector3) []Vector3 {
	out := make([]Vector3, len(points))
	for i, p := range points {
		out[i] = p.Add(d)
	}
	return out
}
