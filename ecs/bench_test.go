package ecs_test

import (
	"fmt"
	"testing"

	"github.com/plus3/divvy/ecs"
)

func BenchmarkCreate(b *testing.B) {
	world := newTestWorld()
	entities := make([]*ecs.Entity, 0, b.N)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		e, _ := world.Create()
		entities = append(entities, e)
	}
	b.StopTimer()

	for _, e := range entities {
		e.Destroy()
	}
}

func BenchmarkCreateWithComponents(b *testing.B) {
	world := newTestWorld()
	entities := make([]*ecs.Entity, 0, b.N)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		e, _ := world.Create()
		ecs.Add(e, Transform{X: 1, Y: 2})
		ecs.Add(e, Health{Current: 100, Max: 100})
		ecs.Add(e, Nametag{Name: "Entity"})
		entities = append(entities, e)
	}
	b.StopTimer()

	for _, e := range entities {
		e.Destroy()
	}
}

func BenchmarkDestroy(b *testing.B) {
	world := newTestWorld()

	entities := make([]*ecs.Entity, b.N)
	for i := 0; i < b.N; i++ {
		entities[i], _ = world.Create()
		ecs.Add(entities[i], Transform{X: 1, Y: 2})
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		entities[i].Destroy()
	}
}

func BenchmarkGet(b *testing.B) {
	world := newTestWorld()
	e, _ := world.Create()
	defer e.Destroy()
	ecs.Add(e, Transform{X: 1, Y: 2})

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = ecs.Get[Transform](e)
	}
}

func BenchmarkUpdate(b *testing.B) {
	for _, n := range []int{100, 10000} {
		b.Run(fmt.Sprintf("entities=%d", n), func(b *testing.B) {
			world := newTestWorld()
			entities := make([]*ecs.Entity, n)
			for i := range entities {
				entities[i], _ = world.Create()
				ecs.Add(entities[i], Transform{})
				if i%2 == 0 {
					ecs.Add(entities[i], Health{Current: 1})
				}
			}

			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				world.Update()
			}
			b.StopTimer()

			for _, e := range entities {
				e.Destroy()
			}
		})
	}
}

func BenchmarkClone(b *testing.B) {
	world := newTestWorld()
	src, _ := world.Create()
	defer src.Destroy()
	ecs.Add(src, Transform{X: 1, Y: 2})
	ecs.Add(src, Health{Current: 100, Max: 100})

	clones := make([]*ecs.Entity, 0, b.N)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		e, _ := src.Clone()
		clones = append(clones, e)
	}
	b.StopTimer()

	for _, e := range clones {
		e.Destroy()
	}
}

func BenchmarkChurn(b *testing.B) {
	world := newTestWorld()
	entities := make([]*ecs.Entity, 1024)
	for i := range entities {
		entities[i], _ = world.Create()
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		idx := (i * 7) % len(entities)
		entities[idx].Destroy()
		entities[idx], _ = world.Create()
		ecs.Add(entities[idx], Transform{})
	}
	b.StopTimer()

	for _, e := range entities {
		e.Destroy()
	}
}
