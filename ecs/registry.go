package ecs

import (
	"iter"
	"reflect"
)

// TypeID is the small integer a World assigns to a component type when it is
// registered. Ids increase in registration order and are never reused.
type TypeID uint32

// registry maps component types to their pools. Pools live in a slice indexed
// by TypeID; unregistered ids leave a nil entry.
type registry struct {
	ids   map[reflect.Type]TypeID
	pools []iComponentPool
	live  int
}

func newRegistry() registry {
	return registry{
		ids: make(map[reflect.Type]TypeID),
	}
}

func (r *registry) lookup(t reflect.Type) (TypeID, iComponentPool, bool) {
	id, ok := r.ids[t]
	if !ok {
		return 0, nil, false
	}
	return id, r.pools[id], true
}

func (r *registry) insert(t reflect.Type, pool iComponentPool) TypeID {
	id := TypeID(len(r.pools))
	r.pools = append(r.pools, pool)
	r.ids[t] = id
	r.live++
	return id
}

func (r *registry) remove(t reflect.Type) bool {
	id, ok := r.ids[t]
	if !ok {
		return false
	}
	r.pools[id] = nil
	delete(r.ids, t)
	r.live--
	return true
}

// all yields registered pools in registration order.
func (r *registry) all() iter.Seq2[TypeID, iComponentPool] {
	return func(yield func(TypeID, iComponentPool) bool) {
		for id, pool := range r.pools {
			if pool == nil {
				continue
			}
			if !yield(TypeID(id), pool) {
				return
			}
		}
	}
}

// resize grows every pool to at least size slots.
func (r *registry) resize(size int) error {
	for _, pool := range r.all() {
		if err := pool.Resize(size); err != nil {
			return err
		}
	}
	return nil
}

func (r *registry) clear() {
	clear(r.ids)
	r.pools = nil
	r.live = 0
}
