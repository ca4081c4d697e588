package ecs

import (
	"iter"
	"reflect"

	"github.com/rotisserie/eris"
)

// Register adds component type T to the World and returns its TypeID.
// Registering a type twice returns the id it already has.
func Register[T any, PT Component[T]](w *World) (TypeID, error) {
	if w.updating {
		return 0, errUpdating("register component")
	}

	t := reflect.TypeFor[T]()
	if id, _, ok := w.registry.lookup(t); ok {
		return id, nil
	}

	pool := newComponentPool[T, PT]()
	if err := pool.Resize(w.poolSize()); err != nil {
		return 0, err
	}

	id := w.registry.insert(t, pool)
	notify(Notice{Kind: NoticeTypeRegistered, World: w.id, Type: t.String()})
	return id, nil
}

// MustRegister is like Register but panics on error.
func MustRegister[T any, PT Component[T]](w *World) TypeID {
	id, err := Register[T, PT](w)
	if err != nil {
		panic(err)
	}
	return id
}

// IsRegistered reports whether T has been registered in w.
func IsRegistered[T any](w *World) bool {
	_, _, ok := w.registry.lookup(reflect.TypeFor[T]())
	return ok
}

// TypeOf returns the TypeID assigned to T in w.
func TypeOf[T any](w *World) (TypeID, bool) {
	id, _, ok := w.registry.lookup(reflect.TypeFor[T]())
	return id, ok
}

// Unregister drops T and every component of that type from w. Unregistering
// an unknown type is a no-op.
func Unregister[T any](w *World) error {
	if w.updating {
		return errUpdating("unregister component")
	}

	t := reflect.TypeFor[T]()
	if w.registry.remove(t) {
		notify(Notice{Kind: NoticeTypeUnregistered, World: w.id, Type: t.String()})
	}
	return nil
}

// Add attaches a T initialised as a clone of value to e and returns it. If e
// already has an active T, the existing component is returned untouched and
// NoticeDuplicateAdd is reported. Adding during World.Update is refused; queue
// it with Commands.Defer instead.
func Add[T any, PT Component[T]](e *Entity, value T) (*T, error) {
	pool, t, err := resolve[T](e, "add")
	if err != nil {
		return nil, err
	}
	if e.world.updating {
		return nil, errUpdating("add " + t.String())
	}

	index := int(e.id)
	if pool.Has(index) {
		notify(Notice{Kind: NoticeDuplicateAdd, World: e.world.id, Entity: e.id, Type: t.String()})
		return pool.At(index).(*T), nil
	}

	typed := pool.(*componentPool[T, PT])
	v, err := typed.add(index)
	if err != nil {
		return nil, err
	}
	PT(v).Clone(&value)
	typed.stamp(index, e.Ref())

	notify(Notice{Kind: NoticeComponentAdded, World: e.world.id, Entity: e.id, Type: t.String()})
	return v, nil
}

// AddFunc is like Add but builds the initial value by applying init to a zero T.
func AddFunc[T any, PT Component[T]](e *Entity, init func(*T)) (*T, error) {
	var value T
	if init != nil {
		init(&value)
	}
	return Add[T, PT](e, value)
}

// Get returns e's active T.
func Get[T any](e *Entity) (*T, error) {
	pool, t, err := resolve[T](e, "get")
	if err != nil {
		return nil, err
	}
	if !pool.Has(int(e.id)) {
		return nil, eris.Wrapf(ErrComponentNotPresent, "get %s on %s", t, e)
	}
	return pool.At(int(e.id)).(*T), nil
}

// Has reports whether e has an active T. It never fails: invalid handles and
// unregistered types report false.
func Has[T any](e *Entity) bool {
	if !e.Valid() || !e.world.slots.occupied(e.id) {
		return false
	}
	_, pool, ok := e.world.registry.lookup(reflect.TypeFor[T]())
	return ok && pool.Has(int(e.id))
}

// Remove deactivates e's T. Removing an absent component is a no-op reported
// as NoticeRedundantRemove. Like Add, it is refused during World.Update.
func Remove[T any](e *Entity) error {
	pool, t, err := resolve[T](e, "remove")
	if err != nil {
		return err
	}
	if e.world.updating {
		return errUpdating("remove " + t.String())
	}

	index := int(e.id)
	if !pool.Has(index) {
		notify(Notice{Kind: NoticeRedundantRemove, World: e.world.id, Entity: e.id, Type: t.String()})
		return nil
	}
	if err := pool.Remove(index); err != nil {
		return err
	}
	notify(Notice{Kind: NoticeComponentRemoved, World: e.world.id, Entity: e.id, Type: t.String()})
	return nil
}

// RefOf returns the back-reference stamped on e's T, or the zero Ref.
func RefOf[T any](e *Entity) Ref {
	if !Has[T](e) {
		return Ref{}
	}
	_, pool, _ := e.world.registry.lookup(reflect.TypeFor[T]())
	return pool.RefAt(int(e.id))
}

// All iterates the active T components of w on occupied slots in ascending
// slot order. The World must not be structurally changed while iterating.
func All[T any](w *World) iter.Seq2[EntityID, *T] {
	return func(yield func(EntityID, *T) bool) {
		_, pool, ok := w.registry.lookup(reflect.TypeFor[T]())
		if !ok {
			return
		}
		for i := 0; i < w.slots.capacity; i++ {
			if !pool.Has(i) || w.slots.isFree(EntityID(i)) {
				continue
			}
			if !yield(EntityID(i), pool.At(i).(*T)) {
				return
			}
		}
	}
}

// resolve checks e and T and returns the pool for T.
func resolve[T any](e *Entity, op string) (iComponentPool, reflect.Type, error) {
	t := reflect.TypeFor[T]()
	if !e.Valid() || !e.world.slots.occupied(e.id) {
		return nil, t, eris.Wrapf(ErrInvalidEntity, "%s %s on %s", op, t, e)
	}
	_, pool, ok := e.world.registry.lookup(t)
	if !ok {
		return nil, t, eris.Wrapf(ErrUnregisteredComponentType, "%s %s", op, t)
	}
	return pool, t, nil
}
