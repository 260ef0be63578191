package engine

import (
	"github.com/plus3/ambient/ecs"
	"github.com/plus3/ambient/field"
)

// ClockSystem advances the tick counter and the animation time.
type ClockSystem struct {
	Clock ecs.Singleton[Clock]
}

func (s *ClockSystem) Execute(frame *ecs.UpdateFrame) {
	clock := s.Clock.Get()
	clock.Frame++
	clock.Elapsed += frame.DeltaTime
}

// MotionSystem moves every point along its orbit for the current time.
type MotionSystem struct {
	Clock  ecs.Singleton[Clock]
	Clouds ecs.Query[struct {
		Cloud *PointCloud
	}]
}

func (s *MotionSystem) Execute(frame *ecs.UpdateFrame) {
	elapsed := s.Clock.Get().Elapsed
	for item := range s.Clouds.Values() {
		item.Cloud.Set.Animate(elapsed, item.Cloud.Amplitude)
	}
}

// RotationSystem turns the scene and copies the angle to every object so
// points and lines never drift apart.
type RotationSystem struct {
	Rotation   ecs.Singleton[Rotation]
	Transforms ecs.Query[struct {
		Transform *Transform
	}]
}

func (s *RotationSystem) Execute(frame *ecs.UpdateFrame) {
	rot := s.Rotation.Get()
	rot.Y += rot.Step
	for item := range s.Transforms.Values() {
		item.Transform.RotationY = rot.Y
	}
}

// ProximitySystem rebuilds the connection graph when the throttle allows.
// The previous line object is deleted and a new one spawned with the
// scene's current rotation.
type ProximitySystem struct {
	Clock       ecs.Singleton[Clock]
	Rotation    ecs.Singleton[Rotation]
	Connections ecs.Singleton[Connections]

	Clouds ecs.Query[struct {
		Cloud *PointCloud
	}]
}

func (s *ProximitySystem) Execute(frame *ecs.UpdateFrame) {
	conns := s.Connections.Get()
	if !conns.Throttle.Due(s.Clock.Get().Frame) {
		return
	}

	for item := range s.Clouds.Values() {
		graph := field.Connect(item.Cloud.Set.Positions, conns.Threshold)

		if frame.Storage.Alive(conns.Entity) {
			frame.Commands.Delete(conns.Entity)
		}
		frame.Commands.SpawnThen(func(id ecs.EntityId) {
			conns.Entity = id
		}, LineSegments{Graph: graph, Material: conns.Material}, Transform{RotationY: s.Rotation.Get().Y})

		conns.Graph = graph
		conns.Recomputes++
	}
}
