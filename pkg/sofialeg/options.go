// Package sofialeg builds the scene nodes of a Sofia soft robot leg: an
// FEM tetrahedral body, box regions used to fix, collide and actuate it, an
// actuator state node and an optional visual model and controller.
package sofialeg

import (
	"path/filepath"
	"strings"

	errorsmod "cosmossdk.io/errors"
	"github.com/oxygene76/sofia-scene/pkg/transform"
)

const codespace = "sofialeg"

var (
	ErrUnknownMeshType = errorsmod.Register(codespace, 2, "unknown surface mesh type")
	ErrInvalidOptions  = errorsmod.Register(codespace, 3, "invalid leg options")
)

// Options describes one leg. The zero value is not usable; start from
// DefaultOptions.
type Options struct {
	Name        string
	VolumeMesh  string
	SurfaceMesh string // empty disables the visual model
	MeshDir     string
	Color       []float64
	Transform   transform.TRS

	PoissonRatio float64
	YoungModulus float64
	TotalMass    float64

	// Controller holds the controller init parameters. Nil means the leg
	// gets no controller; an empty map gets one with default parameters.
	Controller map[string]any
}

// DefaultOptions returns a leg at the origin with the stock meshes and
// material.
func DefaultOptions() Options {
	return Options{
		Name:         "SofiaLeg",
		VolumeMesh:   "sofia_leg.vtu",
		SurfaceMesh:  "sofia_leg.stl",
		MeshDir:      "mesh",
		Color:        []float64{1, 1, 1},
		Transform:    transform.Identity(),
		PoissonRatio: 0.45,
		YoungModulus: 300,
		TotalMass:    0.01,
	}
}

func (o Options) volumePath() string {
	return filepath.Join(o.MeshDir, o.VolumeMesh)
}

func (o Options) surfacePath() string {
	return filepath.Join(o.MeshDir, o.SurfaceMesh)
}

// surfaceLoader picks the loader component from the surface mesh extension.
func (o Options) surfaceLoader() (string, error) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(o.SurfaceMesh), "."))
	switch ext {
	case "stl":
		return "MeshSTLLoader", nil
	case "obj":
		return "MeshObjLoader", nil
	default:
		return "", errorsmod.Wrapf(ErrUnknownMeshType, "%q", o.SurfaceMesh)
	}
}

// Validate checks the options before any node is created
func (o Options) Validate() error {
	if strings.TrimSpace(o.Name) == "" {
		return errorsmod.Wrap(ErrInvalidOptions, "name cannot be empty")
	}
	if o.VolumeMesh == "" {
		return errorsmod.Wrapf(ErrInvalidOptions, "%s: volume mesh cannot be empty", o.Name)
	}
	if o.PoissonRatio < 0 || o.PoissonRatio >= 0.5 {
		return errorsmod.Wrapf(ErrInvalidOptions, "%s: poisson ratio %g outside [0, 0.5)", o.Name, o.PoissonRatio)
	}
	if o.YoungModulus <= 0 {
		return errorsmod.Wrapf(ErrInvalidOptions, "%s: young modulus must be positive", o.Name)
	}
	if o.TotalMass <= 0 {
		return errorsmod.Wrapf(ErrInvalidOptions, "%s: total mass must be positive", o.Name)
	}
	if n := len(o.Color); n != 0 && n != 3 && n != 4 {
		return errorsmod.Wrapf(ErrInvalidOptions, "%s: color needs 3 or 4 components, got %d", o.Name, n)
	}
	if o.SurfaceMesh != "" {
		if _, err := o.surfaceLoader(); err != nil {
			return err
		}
	}
	return nil
}
