package ecs

import (
	"slices"

	"github.com/rotisserie/eris"
)

// slotAllocator hands out entity slot ids. Freed ids below the top are kept in
// an ascending freelist and reused smallest first; freeing the top slot trims
// capacity by exactly one without looking at the slot below it.
type slotAllocator struct {
	capacity int
	free     []EntityID
	grow     func(capacity int) error
}

// allocate returns the smallest free id, or appends a new top slot after
// growing storage through the grow hook.
func (a *slotAllocator) allocate() (EntityID, error) {
	if len(a.free) > 0 {
		id := a.free[0]
		a.free = slices.Delete(a.free, 0, 1)
		return id, nil
	}

	if a.capacity >= MaxSlots {
		return 0, eris.Wrapf(ErrAllocationFailure, "slot capacity %d exhausted", a.capacity)
	}
	if a.grow != nil {
		if err := a.grow(a.capacity + 1); err != nil {
			return 0, err
		}
	}

	a.capacity++
	return EntityID(a.capacity - 1), nil
}

// release returns id to the allocator. The caller guarantees id is occupied.
func (a *slotAllocator) release(id EntityID) {
	if int(id) == a.capacity-1 {
		a.capacity--
		return
	}
	pos, _ := slices.BinarySearch(a.free, id)
	a.free = slices.Insert(a.free, pos, id)
}

func (a *slotAllocator) isFree(id EntityID) bool {
	_, found := slices.BinarySearch(a.free, id)
	return found
}

func (a *slotAllocator) occupied(id EntityID) bool {
	return int(id) < a.capacity && !a.isFree(id)
}

func (a *slotAllocator) reset() {
	a.capacity = 0
	a.free = nil
}
