package ecs

import (
	"fmt"
	"math"

	"github.com/google/uuid"
)

// EntityID is the slot index of an entity inside its World.
// Ids start at 0; validity is tracked by the handle, not by the number.
type EntityID uint32

// MaxSlots bounds the number of slots a World will allocate. It fits an int
// on every platform.
const MaxSlots = math.MaxInt32

// Ref is a weak back-reference from a component to the entity it belongs to.
// It identifies the slot only; it never owns anything.
type Ref struct {
	World  uuid.UUID
	Entity EntityID
}

// IsZero reports whether the reference has never been stamped.
func (r Ref) IsZero() bool {
	return r.World == uuid.Nil
}

func (r Ref) String() string {
	if r.IsZero() {
		return "Ref(unbound)"
	}
	return fmt.Sprintf("Ref(%s:%d)", r.World, r.Entity)
}

// Entity is a handle addressing one slot of one World.
//
// The zero value is invalid. Handles are used through pointers and must not be
// copied by value; use Move to transfer a binding and Copy to duplicate the
// entity. Go has no destructors, so release the slot with Destroy (typically
// deferred). A handle must not be used after its World has been cleared.
type Entity struct {
	world *World
	id    EntityID
}

// Valid reports whether the handle is bound to a World.
func (e *Entity) Valid() bool {
	return e != nil && e.world != nil
}

// ID returns the slot id. It is meaningless for an invalid handle.
func (e *Entity) ID() EntityID {
	return e.id
}

// World returns the World the handle is bound to, or nil.
func (e *Entity) World() *World {
	if e == nil {
		return nil
	}
	return e.world
}

// Ref returns the back-reference for this entity, or the zero Ref when invalid.
func (e *Entity) Ref() Ref {
	if !e.Valid() {
		return Ref{}
	}
	return Ref{World: e.world.id, Entity: e.id}
}

// Destroy releases the entity and all of its components. Destroying an invalid
// handle is a no-op reported as NoticeDestroyInvalid.
func (e *Entity) Destroy() {
	if !e.Valid() {
		notify(Notice{Kind: NoticeDestroyInvalid})
		return
	}
	e.world.destroy(e)
}

// Reset is an alias of Destroy.
func (e *Entity) Reset() {
	e.Destroy()
}

// ResetIn destroys the current binding, if any, and binds the handle to a new
// entity created in w.
func (e *Entity) ResetIn(w *World) error {
	if w.updating {
		return errUpdating("reset entity")
	}
	if e.Valid() {
		if e.world.updating {
			return errUpdating("reset entity")
		}
		e.world.destroy(e)
	}
	return w.bind(e)
}

// Move transfers src's binding to e in O(1). Any previous binding of e is
// destroyed first. No component data is copied and no Clone runs; src becomes
// invalid. Moving from an invalid handle leaves e invalid.
func (e *Entity) Move(src *Entity) error {
	if e == src {
		return nil
	}
	if e.Valid() {
		if e.world.updating {
			return errUpdating("move entity")
		}
		e.world.destroy(e)
	}
	if !src.Valid() {
		return nil
	}
	src.world.own(src.id, e)
	e.world, e.id = src.world, src.id
	src.world, src.id = nil, 0
	return nil
}

// Copy replaces e's binding with a clone of src in src's World.
func (e *Entity) Copy(src *Entity) error {
	if !src.Valid() {
		notify(Notice{Kind: NoticeCopyInvalid})
		return e.Move(src)
	}
	return e.CopyIn(src, src.world)
}

// CopyIn replaces e's binding with a clone of src created in w. Component
// types not registered in w are skipped.
func (e *Entity) CopyIn(src *Entity, w *World) error {
	if !src.Valid() {
		notify(Notice{Kind: NoticeCopyInvalid, World: w.id})
		return e.Move(src)
	}
	clone, err := w.CloneEntity(src)
	if err != nil {
		return err
	}
	return e.Move(clone)
}

// Clone creates an independent copy of the entity in its own World.
func (e *Entity) Clone() (*Entity, error) {
	if !e.Valid() {
		return nil, errInvalid("clone", e)
	}
	return e.world.CloneEntity(e)
}

// CloneIn creates an independent copy of the entity in w.
func (e *Entity) CloneIn(w *World) (*Entity, error) {
	return w.CloneEntity(e)
}

func (e *Entity) String() string {
	if !e.Valid() {
		return "Entity(invalid)"
	}
	return fmt.Sprintf("Entity #%d", e.id)
}
