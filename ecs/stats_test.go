package ecs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWorldStats(t *testing.T) {
	world := NewWorld(WithName("stats"))

	stats := world.Stats()
	assert.Equal(t, "stats", stats.Name)
	assert.Equal(t, world.ID(), stats.ID)
	assert.Equal(t, 0, stats.Capacity)
	assert.Equal(t, 0, stats.Entities)
	assert.Empty(t, stats.Types)

	MustRegister[counter](world)
	MustRegister[other](world)

	var entities []*Entity
	for range 3 {
		e, err := world.Create()
		require.NoError(t, err)
		entities = append(entities, e)
	}
	for _, e := range entities[:2] {
		_, err := Add(e, counter{N: 1})
		require.NoError(t, err)
	}
	_, err := Add(entities[2], other{V: 1})
	require.NoError(t, err)
	entities[0].Destroy()

	stats = world.Stats()
	assert.Equal(t, 3, stats.Capacity)
	assert.Equal(t, 2, stats.Entities)
	assert.Equal(t, 1, stats.FreeSlots)
	require.Len(t, stats.Types, 2)

	assert.Equal(t, TypeStats{ID: 0, Name: "ecs.counter", Active: 1, StorageLen: genericBlockSize}, stats.Types[0])
	assert.Equal(t, TypeStats{ID: 1, Name: "ecs.other", Active: 1, StorageLen: genericBlockSize}, stats.Types[1])
}

func TestComponentsOf(t *testing.T) {
	world := NewWorld()
	MustRegister[counter](world)
	MustRegister[other](world)
	e, err := world.Create()
	require.NoError(t, err)
	c, err := Add(e, counter{N: 4})
	require.NoError(t, err)

	comps := world.ComponentsOf(e.ID())
	require.Len(t, comps, 1)
	assert.Same(t, c, comps["ecs.counter"])

	assert.Empty(t, world.ComponentsOf(99))
}

func TestOwnerTableRepointsOnMove(t *testing.T) {
	world := NewWorld()
	src, err := world.Create()
	require.NoError(t, err)

	dst := &Entity{}
	require.NoError(t, dst.Move(src))

	wp, ok := world.owners.Get(0)
	require.True(t, ok)
	assert.Same(t, dst, wp.Value())
}
