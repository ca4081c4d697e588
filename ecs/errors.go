package ecs

import "github.com/rotisserie/eris"

var (
	// ErrInvalidEntity indicates an operation on a handle that is not bound to a World.
	ErrInvalidEntity = eris.New("ecs: invalid entity")
	// ErrUnregisteredComponentType signals use of a component type the World has not registered.
	ErrUnregisteredComponentType = eris.New("ecs: component type not registered")
	// ErrComponentNotPresent is returned by Get when the entity has no active component of the type.
	ErrComponentNotPresent = eris.New("ecs: component not present")
	// ErrIndexOutOfRange reports a pool access beyond its storage.
	ErrIndexOutOfRange = eris.New("ecs: index out of range")
	// ErrAllocationFailure indicates pool storage could not grow.
	ErrAllocationFailure = eris.New("ecs: allocation failure")
	// ErrUpdateInProgress indicates a structural change was attempted during World.Update.
	ErrUpdateInProgress = eris.New("ecs: structural change during update")
)
