package ecs

import "reflect"

// iComponentPool is a type-erased pool holding one component type for every
// slot of a World.
type iComponentPool interface {
	Type() reflect.Type
	Add(index int) (any, error)
	At(index int) any
	Has(index int) bool
	Remove(index int) error
	Resize(size int) error
	Len() int
	Count() int
	Update()
	UpdateAt(index int)
	RefAt(index int) Ref
	CloneFrom(dst int, src iComponentPool, srcIndex int, ref Ref) error
}
