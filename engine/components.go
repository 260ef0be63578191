package engine

import (
	"image/color"

	"github.com/plus3/ambient/ecs"
	"github.com/plus3/ambient/field"
	"github.com/plus3/ambient/surface"
)

// Material describes how a scene object is drawn.
type Material struct {
	// Color is used when VertexColors is false.
	Color   color.NRGBA
	Opacity float32
	// VertexColors takes each point's color from its PointSet.
	VertexColors bool
	// Size scales point radii.
	Size float32
}

// PointCloud is the animated field.
type PointCloud struct {
	Set       *field.PointSet
	Amplitude float32
	Material  Material
}

// LineSegments draws one connection graph. It is replaced wholesale every
// time the graph is rebuilt.
type LineSegments struct {
	Graph    *field.ConnectionGraph
	Material Material
}

// Transform is an object's rotation about the vertical axis.
type Transform struct {
	RotationY float64
}

// Model returns the object's model matrix.
func (t Transform) Model() Mat4 {
	return Mat4RotateY(t.RotationY)
}

// Clock counts ticks and accumulates animation time.
type Clock struct {
	Frame   uint64
	Elapsed float64
}

// Rotation is the scene-wide Y angle every Transform follows.
type Rotation struct {
	Y    float64
	Step float64
}

// Connections tracks the line object and how often it was rebuilt.
type Connections struct {
	Entity     ecs.EntityId
	Graph      *field.ConnectionGraph
	Threshold  float32
	Throttle   field.Throttle
	Material   Material
	Recomputes uint64
}

// Output is where the render system draws.
type Output struct {
	Surface surface.Surface
	Opacity float32
	Frame   surface.Frame

	Rendered uint64
	Failures uint64
	lastErr  string
}

func newRegistry() *ecs.ComponentRegistry {
	registry := ecs.NewComponentRegistry()
	ecs.RegisterComponent[PointCloud](registry)
	ecs.RegisterComponent[LineSegments](registry)
	ecs.RegisterComponent[Transform](registry)
	return registry
}
