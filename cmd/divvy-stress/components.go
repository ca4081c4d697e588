package main

import (
	"math/rand"

	"github.com/plus3/divvy/ecs"
)

// componentKinds is the number of stress component types a spawned entity
// draws from.
const componentKinds = 5

type Position struct {
	X, Y float64
}

func (p *Position) Update() {}

func (p *Position) Clone(src *Position) {
	*p = *src
}

// Velocity integrates into its own accumulated displacement every sweep.
type Velocity struct {
	DX, DY     float64
	SumX, SumY float64
}

func (v *Velocity) Update() {
	v.SumX += v.DX
	v.SumY += v.DY
}

func (v *Velocity) Clone(src *Velocity) {
	*v = *src
}

type Lifetime struct {
	Ticks int
}

func (l *Lifetime) Update() {
	if l.Ticks > 0 {
		l.Ticks--
	}
}

func (l *Lifetime) Clone(src *Lifetime) {
	*l = *src
}

// Payload carries a fixed block of bytes so pools hold non-trivial values.
type Payload struct {
	Data [64]byte
	Sum  uint64
}

func (p *Payload) Update() {
	p.Sum = 0
	for _, b := range p.Data {
		p.Sum += uint64(b)
	}
}

func (p *Payload) Clone(src *Payload) {
	*p = *src
}

// Owner keeps the back-reference of the entity it is attached to.
type Owner struct {
	Ref ecs.Ref
}

func (o *Owner) Update() {}

func (o *Owner) Clone(src *Owner) {}

func (o *Owner) BindEntity(ref ecs.Ref) {
	o.Ref = ref
}

func registerStressComponents(w *ecs.World) error {
	registrations := []func(*ecs.World) (ecs.TypeID, error){
		ecs.Register[Position],
		ecs.Register[Velocity],
		ecs.Register[Lifetime],
		ecs.Register[Payload],
		ecs.Register[Owner],
	}
	for _, register := range registrations {
		if _, err := register(w); err != nil {
			return err
		}
	}
	return nil
}

// spawnRandomEntity creates an entity holding n distinct stress components.
func spawnRandomEntity(w *ecs.World, rng *rand.Rand, n int) (*ecs.Entity, error) {
	e, err := w.Create()
	if err != nil {
		return nil, err
	}

	for _, kind := range rng.Perm(componentKinds)[:n] {
		switch kind {
		case 0:
			_, err = ecs.Add(e, Position{X: rng.Float64(), Y: rng.Float64()})
		case 1:
			_, err = ecs.Add(e, Velocity{DX: rng.Float64(), DY: rng.Float64()})
		case 2:
			_, err = ecs.Add(e, Lifetime{Ticks: rng.Intn(1000)})
		case 3:
			_, err = ecs.AddFunc(e, func(p *Payload) {
				rng.Read(p.Data[:])
			})
		case 4:
			_, err = ecs.Add(e, Owner{})
		}
		if err != nil {
			e.Destroy()
			return nil, err
		}
	}
	return e, nil
}

// churnSystem replaces Count random members of Population every tick. Half
// of the replacements are cloned from another member when it survived.
type churnSystem struct {
	Population    []*ecs.Entity
	Count         int
	MaxComponents int
	Rng           *rand.Rand
}

func (c *churnSystem) Execute(frame *ecs.UpdateFrame) error {
	if len(c.Population) == 0 {
		return nil
	}

	for i := range c.Count {
		idx := c.Rng.Intn(len(c.Population))
		src := c.Population[c.Rng.Intn(len(c.Population))]
		c.Population[idx].Destroy()

		var (
			e   *ecs.Entity
			err error
		)
		if i%2 == 1 && src.Valid() {
			e, err = src.Clone()
		} else {
			e, err = spawnRandomEntity(frame.World, c.Rng, c.Rng.Intn(c.MaxComponents)+1)
		}
		if err != nil {
			return err
		}
		c.Population[idx] = e
	}
	return nil
}
