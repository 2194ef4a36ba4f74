package shapes

import (
	"errors"
	"fmt"
	"image/color"
	"math"
	"strings"

	"github.com/lucasb-eyer/go-colorful"

	"cosmic-playground/internal/physics"
)

// Errors returned at the request boundary. They never reach the registry.
var (
	ErrInvalidShapeType = errors.New("invalid shape type")
	ErrInvalidColor     = errors.New("invalid color")
	ErrInvalidScale     = errors.New("invalid scale")
)

// Type is the geometric kind of a shape.
type Type int

const (
	Box Type = iota
	Sphere
	Cylinder
	Pyramid
)

// Types lists every shape type in panel order.
var Types = [...]Type{Box, Sphere, Cylinder, Pyramid}

func (t Type) String() string {
	switch t {
	case Box:
		return "Box"
	case Sphere:
		return "Sphere"
	case Cylinder:
		return "Cylinder"
	case Pyramid:
		return "Pyramid"
	default:
		return fmt.Sprintf("Type(%d)", int(t))
	}
}

// Valid reports whether t is one of the four known types.
func (t Type) Valid() bool {
	return t >= Box && t <= Pyramid
}

// Restitution is the per-type bounciness handed to the rigid-body engine.
func (t Type) Restitution() float32 {
	switch t {
	case Sphere:
		return 0.9
	case Cylinder, Pyramid:
		return 0.85
	default:
		return 0.8
	}
}

// Collider maps the type to its collision volume. Pyramids collide as boxes.
func (t Type) Collider() physics.Collider {
	switch t {
	case Sphere:
		return physics.ColliderSphere
	case Cylinder:
		return physics.ColliderCylinder
	default:
		return physics.ColliderBox
	}
}

// ParseType resolves a type name, ignoring case.
func ParseType(name string) (Type, error) {
	n := strings.TrimSpace(name)
	for _, t := range Types {
		if strings.EqualFold(n, t.String()) {
			return t, nil
		}
	}
	return 0, fmt.Errorf("%w: %q (use Box, Sphere, Cylinder, or Pyramid)", ErrInvalidShapeType, name)
}

// ParseColor validates a hex color and returns it normalized as "#rrggbb".
func ParseColor(s string) (string, error) {
	c, err := colorful.Hex(strings.TrimSpace(s))
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidColor, s)
	}
	return c.Hex(), nil
}

// RGBA converts "#rgb" or "#rrggbb" to an opaque color.
func RGBA(s string) (color.RGBA, bool) {
	c, err := colorful.Hex(strings.TrimSpace(s))
	if err != nil {
		return color.RGBA{}, false
	}
	r, g, b := c.RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 255}, true
}

// ValidateScale rejects non-positive and non-finite scales.
func ValidateScale(scale float32) error {
	f := float64(scale)
	if math.IsNaN(f) || math.IsInf(f, 0) || scale <= 0 {
		return fmt.Errorf("%w: %v", ErrInvalidScale, scale)
	}
	return nil
}
