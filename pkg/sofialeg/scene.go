package sofialeg

import (
	"github.com/oxygene76/sofia-scene/pkg/geometry"
	"github.com/oxygene76/sofia-scene/pkg/scene"
	"github.com/oxygene76/sofia-scene/pkg/transform"
)

// SceneOptions is a header plus the legs to build under the root.
type SceneOptions struct {
	Header scene.Header
	Legs   []Options
}

// DefaultScene returns the two leg demo scene: a blue leg at the origin
// driven with a 40 mm offset, and a green one 40 mm behind it.
func DefaultScene() SceneOptions {
	first := DefaultOptions()
	first.Name = "SofiaLeg_blue_1"
	first.Color = []float64{0, 0, 1, 0.5}
	first.Controller = map[string]any{"offset": 40.0}

	second := DefaultOptions()
	second.Name = "SofiaLeg_blue_2"
	second.Color = []float64{0, 1, 0, 0.5}
	second.Transform = transform.New(geometry.Vec3(0, 0, -40), geometry.Vector3{})
	second.Controller = map[string]any{}

	return SceneOptions{
		Header: scene.DefaultHeader(),
		Legs:   []Options{first, second},
	}
}

// CreateScene applies the header to root and builds every leg.
func (b *Builder) CreateScene(root scene.Container, so SceneOptions) ([]*Leg, error) {
	if err := scene.ApplyHeader(root, so.Header); err != nil {
		return nil, err
	}
	legs := make([]*Leg, 0, len(so.Legs))
	for _, opts := range so.Legs {
		leg, err := b.Build(root, opts)
		if err != nil {
			return nil, err
		}
		legs = append(legs, leg)
	}
	b.Logger.Info("scene created", "legs", len(legs), "dt", so.Header.DT)
	return legs, nil
}
