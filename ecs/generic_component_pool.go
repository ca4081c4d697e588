package ecs

import (
	"fmt"
	"reflect"

	"github.com/rotisserie/eris"
)

const (
	genericBlockSize = 64
)

// componentPool stores components of type T in fixed-size blocks indexed by
// slot id, with a parallel active flag per slot. Blocks are allocated
// individually, so growing the pool never moves an existing component.
// Storage only ever grows; removal leaves a tombstone.
type componentPool[T any, PT Component[T]] struct {
	typ    reflect.Type
	blocks []*[genericBlockSize]T
	active []*[genericBlockSize]bool
	refs   []*[genericBlockSize]Ref
	count  int
}

func newComponentPool[T any, PT Component[T]]() *componentPool[T, PT] {
	return &componentPool[T, PT]{
		typ: reflect.TypeFor[T](),
	}
}

func (p *componentPool[T, PT]) Type() reflect.Type {
	return p.typ
}

// Len returns the storage length in slots.
func (p *componentPool[T, PT]) Len() int {
	return len(p.blocks) * genericBlockSize
}

// Count returns the number of active components.
func (p *componentPool[T, PT]) Count() int {
	return p.count
}

// add marks index active and returns its storage for the caller to initialise.
func (p *componentPool[T, PT]) add(index int) (*T, error) {
	if index < 0 || index >= p.Len() {
		return nil, eris.Wrapf(ErrIndexOutOfRange, "add %s at %d (storage %d)", p.typ, index, p.Len())
	}

	blockIdx := index / genericBlockSize
	slotIdx := index % genericBlockSize

	if !p.active[blockIdx][slotIdx] {
		p.active[blockIdx][slotIdx] = true
		p.count++
	}
	return &p.blocks[blockIdx][slotIdx], nil
}

func (p *componentPool[T, PT]) Add(index int) (any, error) {
	v, err := p.add(index)
	if err != nil {
		return nil, err
	}
	return v, nil
}

// at is unchecked: callers verify occupancy with Has first.
func (p *componentPool[T, PT]) at(index int) *T {
	return &p.blocks[index/genericBlockSize][index%genericBlockSize]
}

func (p *componentPool[T, PT]) At(index int) any {
	return p.at(index)
}

// Has reports the active flag; indices beyond storage are simply inactive.
func (p *componentPool[T, PT]) Has(index int) bool {
	if index < 0 || index >= p.Len() {
		return false
	}
	return p.active[index/genericBlockSize][index%genericBlockSize]
}

// Remove tombstones the slot. The stored value is left as is.
func (p *componentPool[T, PT]) Remove(index int) error {
	if index < 0 || index >= p.Len() {
		return eris.Wrapf(ErrIndexOutOfRange, "remove %s at %d (storage %d)", p.typ, index, p.Len())
	}

	blockIdx := index / genericBlockSize
	slotIdx := index % genericBlockSize

	if p.active[blockIdx][slotIdx] {
		p.active[blockIdx][slotIdx] = false
		p.count--
	}
	return nil
}

// Resize grows storage to hold at least size slots. It never shrinks.
// ErrAllocationFailure reports sizes outside [0, MaxSlots]; running out of
// memory while growing is fatal to the process, as with any Go allocation.
func (p *componentPool[T, PT]) Resize(size int) error {
	if size < 0 || size > MaxSlots {
		return eris.Wrapf(ErrAllocationFailure, "resize %s to %d", p.typ, size)
	}

	numBlocks := (size + genericBlockSize - 1) / genericBlockSize
	if numBlocks <= len(p.blocks) {
		return nil
	}

	blocks := p.blocks
	active := p.active
	refs := p.refs
	for len(blocks) < numBlocks {
		blocks = append(blocks, new([genericBlockSize]T))
		active = append(active, new([genericBlockSize]bool))
		refs = append(refs, new([genericBlockSize]Ref))
	}

	p.blocks = blocks
	p.active = active
	p.refs = refs
	return nil
}

// Update calls Update on every active component in ascending slot order.
func (p *componentPool[T, PT]) Update() {
	for blockIdx, block := range p.blocks {
		filled := p.active[blockIdx]
		for slotIdx := range genericBlockSize {
			if filled[slotIdx] {
				PT(&block[slotIdx]).Update()
			}
		}
	}
}

func (p *componentPool[T, PT]) UpdateAt(index int) {
	PT(p.at(index)).Update()
}

func (p *componentPool[T, PT]) RefAt(index int) Ref {
	if index < 0 || index >= p.Len() {
		return Ref{}
	}
	return p.refs[index/genericBlockSize][index%genericBlockSize]
}

// stamp records the back-reference for index and hands it to the component
// when it implements EntityBinder.
func (p *componentPool[T, PT]) stamp(index int, ref Ref) {
	p.refs[index/genericBlockSize][index%genericBlockSize] = ref
	if binder, ok := any(PT(p.at(index))).(EntityBinder); ok {
		binder.BindEntity(ref)
	}
}

// CloneFrom activates dst and initialises it as a clone of src's component at
// srcIndex. src must hold the same component type.
func (p *componentPool[T, PT]) CloneFrom(dst int, src iComponentPool, srcIndex int, ref Ref) error {
	other, ok := src.(*componentPool[T, PT])
	if !ok {
		return eris.Wrapf(ErrUnregisteredComponentType, "clone %s from pool of %s", p.typ, src.Type())
	}
	if !other.Has(srcIndex) {
		return eris.Wrapf(ErrComponentNotPresent, "clone %s from slot %d", p.typ, srcIndex)
	}

	v, err := p.add(dst)
	if err != nil {
		return err
	}
	PT(v).Clone(other.at(srcIndex))
	p.stamp(dst, ref)
	return nil
}

func (p *componentPool[T, PT]) String() string {
	return fmt.Sprintf("pool[%s](%d/%d)", p.typ, p.count, p.Len())
}
