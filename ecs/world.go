// Package ecs is an in-memory entity-component store. Components of each type
// live in their own densely indexed pool; entities are slot ids shared by all
// pools of a World, and World.Update calls Update on every active component
// once per tick.
package ecs

import (
	"weak"

	"github.com/google/uuid"
	"github.com/kamstrup/intmap"
	"github.com/rotisserie/eris"
)

// World owns the component pools, the slot allocator and the table of bound
// entity handles. A World is not safe for concurrent use.
type World struct {
	id       uuid.UUID
	name     string
	registry registry
	slots    slotAllocator
	owners   *intmap.Map[EntityID, weak.Pointer[Entity]]
	count    int
	reserve  int
	updating bool
	commands *Commands
}

// Option configures a World.
type Option func(*World)

// WithInitialCapacity pre-sizes every pool to hold n slots. It does not
// create entities.
func WithInitialCapacity(n int) Option {
	return func(w *World) {
		if n > 0 {
			w.reserve = n
		}
	}
}

// WithName sets a human readable name used by Stats and debug tooling.
func WithName(name string) Option {
	return func(w *World) {
		w.name = name
	}
}

// NewWorld creates an empty World.
func NewWorld(opts ...Option) *World {
	w := &World{
		id:       uuid.New(),
		registry: newRegistry(),
		commands: newCommands(),
	}
	for _, opt := range opts {
		opt(w)
	}
	w.owners = intmap.New[EntityID, weak.Pointer[Entity]](max(w.reserve, 64))
	w.slots.grow = w.registry.resize
	return w
}

// ID returns the World's identity, used in component back-references.
func (w *World) ID() uuid.UUID {
	return w.id
}

// Name returns the name given with WithName.
func (w *World) Name() string {
	return w.name
}

// Capacity returns one past the highest slot that has not been trimmed.
func (w *World) Capacity() int {
	return w.slots.capacity
}

// Len returns the number of live entities.
func (w *World) Len() int {
	return w.count
}

// FreeSlots returns the ids waiting for reuse, in the order they will be reused.
func (w *World) FreeSlots() []EntityID {
	out := make([]EntityID, len(w.slots.free))
	copy(out, w.slots.free)
	return out
}

// IsAlive reports whether id is an occupied slot.
func (w *World) IsAlive(id EntityID) bool {
	return w.slots.occupied(id)
}

// Lookup returns the handle currently bound to id, if it is still reachable.
func (w *World) Lookup(id EntityID) (*Entity, bool) {
	if !w.slots.occupied(id) {
		return nil, false
	}
	wp, ok := w.owners.Get(id)
	if !ok {
		return nil, false
	}
	e := wp.Value()
	if e == nil || e.world != w || e.id != id {
		return nil, false
	}
	return e, true
}

// Commands returns the World's deferred command buffer. It is flushed at the
// end of every Update.
func (w *World) Commands() *Commands {
	return w.commands
}

// Create allocates a slot and returns a handle bound to it.
func (w *World) Create() (*Entity, error) {
	e := &Entity{}
	if err := w.bind(e); err != nil {
		return nil, err
	}
	return e, nil
}

// CloneEntity creates a new entity in w holding a clone of every active
// component of src whose type is registered in w. src may belong to another
// World; types that w does not know are skipped.
func (w *World) CloneEntity(src *Entity) (*Entity, error) {
	if !src.Valid() || !src.world.slots.occupied(src.id) {
		return nil, errInvalid("clone", src)
	}

	e, err := w.Create()
	if err != nil {
		return nil, err
	}

	ref := e.Ref()
	for _, pool := range src.world.registry.all() {
		if !pool.Has(int(src.id)) {
			continue
		}
		_, target, ok := w.registry.lookup(pool.Type())
		if !ok {
			continue
		}
		if err := target.CloneFrom(int(e.id), pool, int(src.id), ref); err != nil {
			w.destroy(e)
			return nil, eris.Wrapf(err, "clone %s into world %s", src, w.id)
		}
	}
	return e, nil
}

// DestroyEntity releases e's slot and all of its components. Handles that are
// not bound to w are left alone and reported as NoticeDestroyInvalid.
func (w *World) DestroyEntity(e *Entity) {
	if !e.Valid() || e.world != w {
		notify(Notice{Kind: NoticeDestroyInvalid, World: w.id})
		return
	}
	w.destroy(e)
}

// Update calls Update on every active component: types in registration
// order, slots in ascending order. Structural changes made from inside a
// component's Update, including Add and Remove, are refused; queue them on
// Commands instead. Destroy is queued automatically. The set of updated
// components is therefore exactly the set active when the sweep starts. The
// command buffer is flushed once the sweep completes.
func (w *World) Update() error {
	if w.updating {
		return errUpdating("update")
	}

	w.sweep()
	return w.commands.Flush(w)
}

func (w *World) sweep() {
	w.updating = true
	defer func() { w.updating = false }()

	for _, pool := range w.registry.all() {
		for i := 0; i < w.slots.capacity; i++ {
			if pool.Has(i) && !w.slots.isFree(EntityID(i)) {
				pool.UpdateAt(i)
			}
		}
	}
}

// Clear invalidates every bound handle and drops all component types and
// their data. The slot counter starts over from 0.
func (w *World) Clear() error {
	if w.updating {
		return errUpdating("clear")
	}

	for i := 0; i < w.slots.capacity; i++ {
		if e, ok := w.Lookup(EntityID(i)); ok {
			e.world, e.id = nil, 0
		}
	}

	w.owners.Clear()
	w.registry.clear()
	w.slots.reset()
	w.count = 0
	notify(Notice{Kind: NoticeWorldCleared, World: w.id})
	return nil
}

// bind allocates a slot for e, which must be unbound.
func (w *World) bind(e *Entity) error {
	if w.updating {
		return errUpdating("create entity")
	}

	id, err := w.slots.allocate()
	if err != nil {
		return eris.Wrapf(err, "create entity in world %s", w.id)
	}

	e.world, e.id = w, id
	w.own(id, e)
	w.count++
	notify(Notice{Kind: NoticeEntityCreated, World: w.id, Entity: id})
	return nil
}

// own points the slot-owner table entry for id at e.
func (w *World) own(id EntityID, e *Entity) {
	w.owners.Put(id, weak.Make(e))
}

func (w *World) destroy(e *Entity) {
	id := e.id
	if !w.slots.occupied(id) {
		e.world, e.id = nil, 0
		notify(Notice{Kind: NoticeDestroyInvalid, World: w.id, Entity: id})
		return
	}

	if w.updating {
		w.commands.Destroy(e)
		notify(Notice{Kind: NoticeDeferredDestroy, World: w.id, Entity: id})
		return
	}

	for _, pool := range w.registry.all() {
		if pool.Has(int(id)) {
			// Slots below capacity are always inside pool storage.
			_ = pool.Remove(int(id))
		}
	}

	w.owners.Del(id)
	w.slots.release(id)
	w.count--
	e.world, e.id = nil, 0
	notify(Notice{Kind: NoticeEntityDestroyed, World: w.id, Entity: id})
}

// poolSize is the storage length a newly registered pool starts with.
func (w *World) poolSize() int {
	return max(w.slots.capacity, w.reserve)
}

func errUpdating(op string) error {
	return eris.Wrapf(ErrUpdateInProgress, "%s", op)
}

func errInvalid(op string, e *Entity) error {
	return eris.Wrapf(ErrInvalidEntity, "%s %s", op, e)
}
