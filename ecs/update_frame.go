package ecs

type UpdateFrame struct {
	Tick      uint64
	DeltaTime float64
	World     *World
	Commands  *Commands
}

func newUpdateFrame(tick uint64, dt float64, world *World) *UpdateFrame {
	return &UpdateFrame{
		Tick:      tick,
		DeltaTime: dt,
		World:     world,
		Commands:  world.Commands(),
	}
}
