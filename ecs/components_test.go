package ecs_test

import (
	"testing"

	"github.com/plus3/divvy/ecs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type Unregistered struct{}

func (u *Unregistered) Update()                {}
func (u *Unregistered) Clone(src *Unregistered) {}

func TestAddGetHasRemove(t *testing.T) {
	world := newTestWorld()
	e := mustCreate(t, world)

	assert.False(t, ecs.Has[Transform](e))

	tr, err := ecs.Add(e, Transform{X: 1, Y: 2})
	require.NoError(t, err)
	assert.Equal(t, Transform{X: 1, Y: 2}, *tr)
	assert.True(t, ecs.Has[Transform](e))

	got, err := ecs.Get[Transform](e)
	require.NoError(t, err)
	assert.Same(t, tr, got)

	require.NoError(t, ecs.Remove[Transform](e))
	assert.False(t, ecs.Has[Transform](e))

	_, err = ecs.Get[Transform](e)
	assert.ErrorIs(t, err, ecs.ErrComponentNotPresent)
}

func TestAddIsIdempotent(t *testing.T) {
	world := newTestWorld()
	e := mustCreate(t, world)

	first, err := ecs.Add(e, Transform{X: 1, Y: 1})
	require.NoError(t, err)
	second, err := ecs.Add(e, Transform{X: 9, Y: 9})
	require.NoError(t, err)

	assert.Same(t, first, second)
	assert.Equal(t, Transform{X: 1, Y: 1}, *second, "a duplicate add never overwrites")
}

func TestRemoveIsIdempotent(t *testing.T) {
	world := newTestWorld()
	e := mustCreate(t, world)
	_, err := ecs.Add(e, Transform{})
	require.NoError(t, err)

	require.NoError(t, ecs.Remove[Transform](e))
	require.NoError(t, ecs.Remove[Transform](e))
	assert.False(t, ecs.Has[Transform](e))
}

func TestAddInitialisesThroughClone(t *testing.T) {
	world := newTestWorld()
	e := mustCreate(t, world)

	transformClones = 0
	_, err := ecs.Add(e, Transform{X: 3})
	require.NoError(t, err)
	assert.Equal(t, 1, transformClones)

	tag, err := ecs.Add(e, Nametag{Name: "Luigi", Binds: 40})
	require.NoError(t, err)
	assert.Equal(t, "Luigi", tag.Name)
	assert.Equal(t, 1, tag.Binds, "Clone decides which fields are initialised")
	assert.Equal(t, e.Ref(), tag.Owner)
}

func TestAddFunc(t *testing.T) {
	world := newTestWorld()
	e := mustCreate(t, world)

	h, err := ecs.AddFunc(e, func(h *Health) {
		h.Max = 10
		h.Current = h.Max
	})
	require.NoError(t, err)
	assert.Equal(t, Health{Current: 10, Max: 10}, *h)

	_, err = ecs.AddFunc[Transform](e, nil)
	require.NoError(t, err)
	assert.True(t, ecs.Has[Transform](e))
}

func TestComponentErrors(t *testing.T) {
	world := newTestWorld()
	live := mustCreate(t, world)
	var invalid ecs.Entity

	tests := []struct {
		name string
		err  error
		want error
	}{
		{"add invalid", second(ecs.Add(&invalid, Transform{})), ecs.ErrInvalidEntity},
		{"get invalid", second(ecs.Get[Transform](&invalid)), ecs.ErrInvalidEntity},
		{"remove invalid", ecs.Remove[Transform](&invalid), ecs.ErrInvalidEntity},
		{"add unregistered", second(ecs.Add(live, Unregistered{})), ecs.ErrUnregisteredComponentType},
		{"get unregistered", second(ecs.Get[Unregistered](live)), ecs.ErrUnregisteredComponentType},
		{"remove unregistered", ecs.Remove[Unregistered](live), ecs.ErrUnregisteredComponentType},
		{"get absent", second(ecs.Get[Health](live)), ecs.ErrComponentNotPresent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, tt.err, tt.want)
		})
	}
}

func TestHasNeverFails(t *testing.T) {
	world := newTestWorld()
	e := mustCreate(t, world)
	var invalid ecs.Entity

	assert.False(t, ecs.Has[Transform](&invalid))
	assert.False(t, ecs.Has[Transform](nil))
	assert.False(t, ecs.Has[Unregistered](e))
	assert.False(t, ecs.Has[Health](e))
}

func TestOperationsOnDestroyedHandle(t *testing.T) {
	world := newTestWorld()
	e := mustCreate(t, world)
	e.Destroy()

	_, err := ecs.Add(e, Transform{})
	assert.ErrorIs(t, err, ecs.ErrInvalidEntity)
	assert.False(t, ecs.Has[Transform](e))
}

func TestAll(t *testing.T) {
	world := newTestWorld()
	var entities []*ecs.Entity
	for i := range 4 {
		e := mustCreate(t, world)
		entities = append(entities, e)
		if i != 2 {
			_, err := ecs.Add(e, Transform{X: i})
			require.NoError(t, err)
		}
	}
	entities[0].Destroy()

	var ids []ecs.EntityID
	var xs []int
	for id, tr := range ecs.All[Transform](world) {
		ids = append(ids, id)
		xs = append(xs, tr.X)
	}

	assert.Equal(t, []ecs.EntityID{1, 3}, ids)
	assert.Equal(t, []int{1, 3}, xs)

	for range ecs.All[Unregistered](world) {
		t.Fatal("unregistered types yield nothing")
	}
}

func TestTypeOf(t *testing.T) {
	world := newTestWorld()

	id, ok := ecs.TypeOf[Health](world)
	assert.True(t, ok)
	assert.Equal(t, ecs.TypeID(2), id)

	_, ok = ecs.TypeOf[Unregistered](world)
	assert.False(t, ok)
}

func second[T any](_ T, err error) error {
	return err
}
