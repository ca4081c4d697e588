package ecs

// Component is the capability set every component payload must provide.
// It is satisfied by *T when T has pointer methods Update and Clone.
//
// Clone copies src into the receiver; it is how a component is initialised on
// Add and duplicated on entity clone. Update runs once per World.Update.
type Component[T any] interface {
	*T
	Update()
	Clone(src *T)
}

// EntityBinder is implemented by components that want to know which entity
// they belong to. BindEntity is called each time the World stamps the
// component's back-reference.
type EntityBinder interface {
	BindEntity(ref Ref)
}
