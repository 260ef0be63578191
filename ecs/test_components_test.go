package ecs_test

import "github.com/plus3/ambient/ecs"

// Common test component types
type Position struct {
	X, Y, Z float32
}

type Velocity struct {
	DX, DY, DZ float32
}

type Spin struct {
	Angle float32
}

type Glow struct {
	Intensity float32
}

type Label string

func newTestRegistry() *ecs.ComponentRegistry {
	registry := ecs.NewComponentRegistry()
	ecs.RegisterComponent[Position](registry)
	ecs.RegisterComponent[Velocity](registry)
	ecs.RegisterComponent[Spin](registry)
	ecs.RegisterComponent[Glow](registry)
	ecs.RegisterComponent[Label](registry)
	return registry
}
