package ecs_test

import (
	"fmt"

	"github.com/plus3/divvy/ecs"
)

// Greeter introduces itself every tick.
type Greeter struct {
	Name string
}

func (g *Greeter) Update() {
	fmt.Printf("Hello! My name is %s.\n", g.Name)
}

func (g *Greeter) Clone(src *Greeter) {
	g.Name = src.Name
}

// ExampleWorld walks through the entity lifecycle: components are added to a
// handle, copied with Copy, handed over with Move and updated once per tick.
func ExampleWorld() {
	world := ecs.NewWorld()
	ecs.MustRegister[Greeter](world)

	hero, _ := world.Create()
	ecs.Add(hero, Greeter{Name: "Mario"})
	world.Update()

	greeter, _ := ecs.Get[Greeter](hero)
	greeter.Name = "Luigi"
	world.Update()

	var enemy ecs.Entity
	enemy.Copy(hero)
	greeter, _ = ecs.Get[Greeter](&enemy)
	greeter.Name = "Bowser"

	var princess ecs.Entity
	princess.Move(hero)
	greeter, _ = ecs.Get[Greeter](&princess)
	greeter.Name = "Peach"

	if !hero.Valid() {
		world.Update()
	}

	if ecs.Has[Greeter](&enemy) {
		fmt.Println("Enemy has a name!")
	}
	ecs.Remove[Greeter](&enemy)
	if !ecs.Has[Greeter](&enemy) {
		fmt.Println("Enemy no longer has a name!")
	}

	world.Update()

	// Output:
	// Hello! My name is Mario.
	// Hello! My name is Luigi.
	// Hello! My name is Peach.
	// Hello! My name is Bowser.
	// Enemy has a name!
	// Enemy no longer has a name!
	// Hello! My name is Peach.
}

// ExampleWorld_freelist shows how destroyed slots are reused smallest first.
func ExampleWorld_freelist() {
	world := ecs.NewWorld()

	e0, _ := world.Create()
	e1, _ := world.Create()
	e2, _ := world.Create()
	fmt.Println(e0, e1, e2)

	e1.Destroy()
	e3, _ := world.Create()
	fmt.Println(e3, "capacity:", world.Capacity())

	e2.Destroy()
	fmt.Println("capacity:", world.Capacity())

	// Output:
	// Entity #0 Entity #1 Entity #2
	// Entity #1 capacity: 3
	// capacity: 2
}

// ExampleEntity_CloneIn copies an entity into a World that only knows some of
// its component types.
func ExampleEntity_CloneIn() {
	level := ecs.NewWorld()
	ecs.MustRegister[Greeter](level)
	ecs.MustRegister[Health](level)

	menu := ecs.NewWorld()
	ecs.MustRegister[Greeter](menu)

	npc, _ := level.Create()
	ecs.Add(npc, Greeter{Name: "Toad"})
	ecs.Add(npc, Health{Current: 3, Max: 3})

	preview, err := npc.CloneIn(menu)
	fmt.Println(err, ecs.Has[Greeter](preview), ecs.Has[Health](preview))

	// Output:
	// <nil> true false
}
