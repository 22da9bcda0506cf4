package sofialeg

import (
	errorsmod "cosmossdk.io/errors"
	"github.com/spf13/cast"

	"github.com/oxygene76/sofia-scene/pkg/scene"
)

// Controller drives the actuator node of a leg during the simulation.
type Controller interface {
	Init(params map[string]any) error
}

// ControllerFactory creates the controller bound to a leg's actuator node.
type ControllerFactory func(actuator scene.Container) Controller

// LegController declares the scripted leg controller on the actuator node.
// The host runs it; Offset is the rest displacement it starts from.
type LegController struct {
	actuator scene.Container
	Object   *scene.Object
	Offset   float64
}

// NewLegController is the default ControllerFactory.
func NewLegController(actuator scene.Container) Controller {
	return &LegController{actuator: actuator}
}

// Init records the controller with its parameters. Unknown parameters are
// passed through untouched.
func (c *LegController) Init(params map[string]any) error {
	if c.Object != nil {
		return errorsmod.Wrapf(ErrInvalidOptions, "controller on %s already initialised", c.actuator.Path())
	}

	p := scene.Params{"name": "controller", "offset": 0.0}
	for k, val := range params {
		p[k] = val
	}
	offset, err := cast.ToFloat64E(p["offset"])
	if err != nil {
		return errorsmod.Wrapf(ErrInvalidOptions, "controller offset: %v", err)
	}
	p["offset"] = offset

	obj, err := c.actuator.CreateObject("SofiaLegController", p)
	if err != nil {
		return err
	}
	c.Object = obj
	c.Offset = offset
	return nil
}
