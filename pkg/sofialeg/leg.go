package sofialeg

import (
	"fmt"

	"cosmossdk.io/log"

	"github.com/oxygene76/sofia-scene/pkg/scene"
	"github.com/oxygene76/sofia-scene/pkg/transform"
)

// Leg is the result of Build.
type Leg struct {
	Name       string
	Node       scene.Container
	Actuator   scene.Container
	Visual     scene.Container // nil without a surface mesh
	Controller Controller      // nil without controller options

	TopBoxes       transform.OrientedBoxes
	CollisionBoxes transform.OrientedBoxes
	MiddleBoxes    transform.OrientedBoxes
}

// Builder creates legs.
type Builder struct {
	Transformer *transform.Transformer
	Controllers ControllerFactory
	Logger      log.Logger
}

// NewBuilder returns a Builder with the matrix transformer and the default
// controller.
func NewBuilder(logger log.Logger) *Builder {
	if logger == nil {
		logger = log.NewNopLogger()
	}
	return &Builder{
		Transformer: transform.Default(),
		Controllers: NewLegController,
		Logger:      logger,
	}
}

// Build creates a leg with the default Builder.
func Build(attachedTo scene.Container, opts Options) (*Leg, error) {
	return NewBuilder(nil).Build(attachedTo, opts)
}

type component struct {
	typ    string
	params scene.Params
}

// Build creates the leg node under attachedTo, plus its "<name>_actuator"
// sibling. Options are validated before anything is created.
func (b *Builder) Build(attachedTo scene.Container, opts Options) (*Leg, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	t := opts.Transform.WithDefaults()
	logger := b.Logger.With("leg", opts.Name)

	node, err := attachedTo.CreateChild(opts.Name)
	if err != nil {
		return nil, err
	}
	leg := &Leg{Name: opts.Name, Node: node}

	body := []component{
		{"EulerImplicit", scene.Params{"name": "odesolver", "firstOrder": "0"}},
		{"SparseLDLSolver", scene.Params{"name": "preconditioner"}},
		{"MeshVTKLoader", scene.Params{
			"name":        "loader",
			"scale3d":     t.Scale,
			"translation": t.Translation,
			"rotation":    t.Rotation,
			"filename":    opts.volumePath(),
		}},
		{"TetrahedronSetTopologyContainer", scene.Params{
			"name":                "container",
			"position":            "@loader.position",
			"tetrahedra":          "@loader.tetrahedra",
			"checkConnexity":      "1",
			"createTriangleArray": "1",
		}},
		{"MechanicalObject", scene.Params{
			"name":             "tetras",
			"showIndices":      "false",
			"showIndicesScale": "4e-5",
			"template":         "Vec3d",
			"position":         "@loader.position",
		}},
		{"UniformMass", scene.Params{"totalMass": opts.TotalMass}},
		{"TetrahedronFEMForceField", scene.Params{"youngModulus": opts.YoungModulus, "poissonRatio": opts.PoissonRatio}},
		{"LinearSolverConstraintCorrection", scene.Params{"solverName": "preconditioner"}},
	}
	if err := createAll(node, body); err != nil {
		return nil, err
	}

	rois := []struct {
		r   roi
		dst *transform.OrientedBoxes
	}{
		{topROI, &leg.TopBoxes},
		{collisionROI, &leg.CollisionBoxes},
		{middleROI, &leg.MiddleBoxes},
	}
	for _, x := range rois {
		boxes := x.r.place(b.Transformer, t)
		if _, err := node.CreateObject("BoxROI", x.r.objectParams(boxes)); err != nil {
			return nil, err
		}
		*x.dst = boxes
		logger.Debug("box roi placed", "roi", x.r.name, "boxes", len(boxes), "centroid", boxes[0].Centroid())
	}

	leg.Actuator, err = attachedTo.CreateChild(opts.Name + "_actuator")
	if err != nil {
		return nil, err
	}
	_, err = leg.Actuator.CreateObject("MechanicalObject", scene.Params{
		"name":       "actuatorState",
		"position":   fmt.Sprintf("@../%s/%s.pointsInROI", opts.Name, middleROI.name),
		"template":   "Vec3d",
		"showObject": false,
	})
	if err != nil {
		return nil, err
	}

	if opts.SurfaceMesh != "" {
		if leg.Visual, err = b.buildVisual(node, opts, t); err != nil {
			return nil, err
		}
	}

	if opts.Controller != nil {
		ctrl := b.Controllers(leg.Actuator)
		if err := ctrl.Init(opts.Controller); err != nil {
			return nil, fmt.Errorf("failed to init controller of %s: %w", opts.Name, err)
		}
		leg.Controller = ctrl
	}

	logger.Info("leg created", "path", node.Path(), "visual", leg.Visual != nil, "controller", leg.Controller != nil)
	return leg, nil
}

func (b *Builder) buildVisual(parent scene.Container, opts Options, t transform.TRS) (scene.Container, error) {
	loader, err := opts.surfaceLoader()
	if err != nil {
		return nil, err
	}
	visu, err := parent.CreateChild("Visual")
	if err != nil {
		return nil, err
	}
	err = createAll(visu, []component{
		{loader, scene.Params{"name": "loader", "filename": opts.surfacePath()}},
		{"OglModel", scene.Params{
			"src":         "@loader",
			"template":    "ExtVec3f",
			"color":       opts.Color,
			"rotation":    t.Rotation,
			"translation": t.Translation,
			"scale3d":     t.Scale,
		}},
		{"BarycentricMapping", nil},
	})
	if err != nil {
		return nil, err
	}
	return visu, nil
}

func createAll(c scene.Container, components []component) error {
	for _, comp := range components {
		if _, err := c.CreateObject(comp.typ, comp.params); err != nil {
			return fmt.Errorf("failed to create %s in %s: %w", comp.typ, c.Path(), err)
		}
	}
	return nil
}
