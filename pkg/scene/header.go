package scene

import (
	"github.com/oxygene76/sofia-scene/pkg/geometry"
)

// Header holds the root level settings of a scene.
type Header struct {
	Plugins []string
	DT      float64
	Gravity geometry.Vector3
}

// DefaultHeader returns the header of the soft robot leg scenes: millimetre
// units, so gravity is -9810 along y.
func DefaultHeader() Header {
	return Header{
		Plugins: []string{"SofaPython", "SoftRobots", "ModelOrderReduction"},
		DT:      0.01,
		Gravity: geometry.Vec3(0, -9810, 0),
	}
}

// ApplyHeader sets dt and gravity on the root and creates the required
// plugins, visual style, animation loop and constraint solver.
func ApplyHeader(root Container, h Header) error {
	root.SetData("dt", h.DT)
	root.SetData("gravity", h.Gravity)

	for _, p := range h.Plugins {
		if _, err := root.CreateObject("RequiredPlugin", Params{"name": p, "pluginName": p}); err != nil {
			return err
		}
	}

	components := []struct {
		typ    string
		params Params
	}{
		{"VisualStyle", Params{"displayFlags": "showVisualModels showBehaviorModels showForceFields"}},
		{"FreeMotionAnimationLoop", nil},
		{"GenericConstraintSolver", Params{"tolerance": 1e-6, "maxIterations": 1000}},
	}
	for _, c := range components {
		if _, err := root.CreateObject(c.typ, c.params); err != nil {
			return err
		}
	}
	return nil
}
