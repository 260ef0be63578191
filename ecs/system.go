package ecs

// System is one step of a tick. Systems may declare Query and Singleton
// fields; the Scheduler wires them at registration. Any other fields are the
// system's own state and survive between ticks.
type System interface {
	Execute(frame *UpdateFrame)
}

// UpdateFrame is handed to every system during one Scheduler.Once call.
type UpdateFrame struct {
	DeltaTime float64
	Commands  *Commands
	Storage   *Storage
}

func newUpdateFrame(dt float64, storage *Storage) *UpdateFrame {
	return &UpdateFrame{DeltaTime: dt, Commands: newCommands(), Storage: storage}
}
