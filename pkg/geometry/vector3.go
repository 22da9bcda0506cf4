package geometry

import (
	"encoding/json"
	"math"

	"gopkg.in/yaml.v3"
)

// Vector3 represents a point or direction in a model's 3D frame
type Vector3 struct {
	X, Y, Z float64
}

// Vec3 returns a new Vector3 from its components
func Vec3(x, y, z float64) Vector3 {
	return Vector3{X: x, Y: y, Z: z}
}

// One returns the unit scale vector (1, 1, 1)
func One() Vector3 {
	return Vector3{X: 1, Y: 1, Z: 1}
}

// Add returns the sum of two vectors
func (v Vector3) Add(other Vector3) Vector3 {
	return Vector3{
		X: v.X + other.X,
		Y: v.Y + other.Y,
		Z: v.Z + other.Z,
	}
}

// Sub returns the difference between two vectors
func (v Vector3) Sub(other Vector3) Vector3 {
	return Vector3{
		X: v.X - other.X,
		Y: v.Y - other.Y,
		Z: v.Z - other.Z,
	}
}

// Scale returns the vector scaled by a scalar
func (v Vector3) Scale(s float64) Vector3 {
	return Vector3{
		X: v.X * s,
		Y: v.Y * s,
		Z: v.Z * s,
	}
}

// Mul returns the component-wise product of two vectors
func (v Vector3) Mul(other Vector3) Vector3 {
	return Vector3{
		X: v.X * other.X,
		Y: v.Y * other.Y,
		Z: v.Z * other.Z,
	}
}

// Dot returns the dot product of two vectors
func (v Vector3) Dot(other Vector3) float64 {
	return v.X*other.X + v.Y*other.Y + v.Z*other.Z
}

// Cross returns the cross product of two vectors
func (v Vector3) Cross(other Vector3) Vector3 {
	return Vector3{
		X: v.Y*other.Z - v.Z*other.Y,
		Y: v.Z*other.X - v.X*other.Z,
		Z: v.X*other.Y - v.Y*other.X,
	}
}

// Magnitude returns the length of the vector
func (v Vector3) Magnitude() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
}

// Distance returns the distance between two points
func (v Vector3) Distance(other Vector3) float64 {
	return v.Sub(other).Magnitude()
}

// IsZero checks if the vector is zero
func (v Vector3) IsZero() bool {
	return v.X == 0 && v.Y == 0 && v.Z == 0
}

// ApproxEqual reports whether every component differs by at most tol
func (v Vector3) ApproxEqual(other Vector3, tol float64) bool {
	return math.Abs(v.X-other.X) <= tol &&
		math.Abs(v.Y-other.Y) <= tol &&
		math.Abs(v.Z-other.Z) <= tol
}

// Slice returns the components as [x, y, z]
func (v Vector3) Slice() []float64 {
	return []float64{v.X, v.Y, v.Z}
}

// MarshalJSON encodes the vector as a three element array, the shape the
// simulation host expects for vector parameters.
func (v Vector3) MarshalJSON() ([]byte, error) {
	return json.Marshal([3]float64{v.X, v.Y, v.Z})
}

// UnmarshalJSON decodes a three element array.
func (v *Vector3) UnmarshalJSON(data []byte) error {
	var s []float64
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	out, err := FromSlice(s)
	if err != nil {
		return err
	}
	*v = out
	return nil
}

// MarshalYAML encodes the vector as a flow-style sequence.
func (v Vector3) MarshalYAML() (interface{}, error) {
	node := &yaml.Node{Kind: yaml.SequenceNode, Style: yaml.FlowStyle}
	for _, c := range v.Slice() {
		var item yaml.Node
		if err := item.Encode(c); err != nil {
			return nil, err
		}
		node.Content = append(node.Content, &item)
	}
	return node, nil
}

// UnmarshalYAML decodes a three element sequence.
func (v *Vector3) UnmarshalYAML(value *yaml.Node) error {
	var s []float64
	if err := value.Decode(&s); err != nil {
		return err
	}
	out, err := FromSlice(s)
	if err != nil {
		return err
	}
	*v = out
	return nil
}
