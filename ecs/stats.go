package ecs

import "github.com/google/uuid"

// WorldStats is a snapshot of a World's occupancy.
type WorldStats struct {
	ID        uuid.UUID
	Name      string
	Capacity  int
	Entities  int
	FreeSlots int
	Types     []TypeStats
}

// TypeStats describes the pool of one registered component type.
type TypeStats struct {
	ID         TypeID
	Name       string
	Active     int
	StorageLen int
}

// Stats collects a snapshot of w. Types are listed in registration order.
func (w *World) Stats() WorldStats {
	stats := WorldStats{
		ID:        w.id,
		Name:      w.name,
		Capacity:  w.slots.capacity,
		Entities:  w.count,
		FreeSlots: len(w.slots.free),
		Types:     make([]TypeStats, 0, w.registry.live),
	}

	for id, pool := range w.registry.all() {
		stats.Types = append(stats.Types, TypeStats{
			ID:         id,
			Name:       pool.Type().String(),
			Active:     pool.Count(),
			StorageLen: pool.Len(),
		})
	}
	return stats
}

// Types returns the registered component type names in registration order.
func (w *World) Types() []string {
	names := make([]string, 0, w.registry.live)
	for _, pool := range w.registry.all() {
		names = append(names, pool.Type().String())
	}
	return names
}

// ComponentsOf returns pointers to every active component of id, keyed by
// type name, for inspection tools. Callers must not retain them across
// structural changes.
func (w *World) ComponentsOf(id EntityID) map[string]any {
	out := make(map[string]any)
	if !w.slots.occupied(id) {
		return out
	}
	for _, pool := range w.registry.all() {
		if pool.Has(int(id)) {
			out[pool.Type().String()] = pool.At(int(id))
		}
	}
	return out
}
