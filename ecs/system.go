package ecs

// System is behaviour that runs once per tick outside the component sweep,
// where structural changes to the World are allowed.
type System interface {
	Execute(frame *UpdateFrame) error
}

// SystemFunc adapts a function to a System.
type SystemFunc func(frame *UpdateFrame) error

func (f SystemFunc) Execute(frame *UpdateFrame) error {
	return f(frame)
}
