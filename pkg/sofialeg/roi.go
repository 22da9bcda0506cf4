package sofialeg

import (
	"github.com/oxygene76/sofia-scene/pkg/geometry"
	"github.com/oxygene76/sofia-scene/pkg/scene"
	"github.com/oxygene76/sofia-scene/pkg/transform"
)

// Box regions in the leg mesh frame (mm). Corners span the rectangle, the
// offset pushes it along z and the depth extrudes it.
type roiBox struct {
	corners []geometry.Vector3
	offset  geometry.Vector3
	depth   float64
}

type roi struct {
	name   string
	boxes  []roiBox
	params scene.Params
}

var v = geometry.Vec3

var (
	// fixes the top of the leg
	topROI = roi{
		name: "boxROITop",
		boxes: []roiBox{
			{corners: []geometry.Vector3{v(-12, 53, 0), v(12, 53, 0), v(12, 64, 0)}, depth: 16},
		},
		params: scene.Params{"drawBoxes": false},
	}

	// restricts collisions to both faces of the tip
	collisionROI = roi{
		name: "boxROICollision",
		boxes: []roiBox{
			{corners: []geometry.Vector3{v(-25, -41, 0), v(25, -42, 0), v(25, -39, 0)}, offset: v(0, 0, -7), depth: 2},
			{corners: []geometry.Vector3{v(-25, -42, 0), v(25, -42, 0), v(25, -39, 0)}, offset: v(0, 0, 7), depth: 2},
		},
		params: scene.Params{
			"drawPoints":        "0",
			"computeEdges":      "0",
			"computeTriangles":  "0",
			"computeTetrahedra": "0",
			"computeHexahedra":  "0",
			"computeQuad":       "0",
			"drawSize":          5,
			"drawBoxes":         false,
		},
	}

	// elements driven by the actuator
	middleROI = roi{
		name: "boxROIMiddle",
		boxes: []roiBox{
			{corners: []geometry.Vector3{v(-2.5, -8.5, 0), v(2.5, -8.5, 0), v(2.5, -3.5, 0)}, depth: 18},
		},
		params: scene.Params{"drawBoxes": false},
	}
)

// place positions every box of r with the leg transform, pivoting on the
// mesh origin.
func (r roi) place(tr *transform.Transformer, t transform.TRS) transform.OrientedBoxes {
	out := make(transform.OrientedBoxes, 0, len(r.boxes))
	for _, b := range r.boxes {
		out = append(out, tr.NewOrientedBox(b.corners, geometry.Vector3{}, t, b.offset, b.depth))
	}
	return out
}

func (r roi) objectParams(boxes transform.OrientedBoxes) scene.Params {
	p := scene.Params{"name": r.name, "orientedBox": boxes.Descriptor()}
	for k, val := range r.params {
		p[k] = val
	}
	return p
}
