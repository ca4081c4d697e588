package ecs_test

import (
	"github.com/plus3/divvy/ecs"
)

// Transform moves by one unit on both axes every update.
type Transform struct {
	X, Y int
}

// transformClones counts Transform.Clone calls so tests can tell a move from a copy.
var transformClones int

func (t *Transform) Update() {
	t.X++
	t.Y++
}

func (t *Transform) Clone(src *Transform) {
	transformClones++
	*t = *src
}

// Nametag records the back-reference it is bound to.
type Nametag struct {
	Name  string
	Owner ecs.Ref
	Binds int
}

func (n *Nametag) Update() {}

func (n *Nametag) Clone(src *Nametag) {
	n.Name = src.Name
}

func (n *Nametag) BindEntity(ref ecs.Ref) {
	n.Owner = ref
	n.Binds++
}

// Health has no behaviour; it is used to check cross-world filtering.
type Health struct {
	Current int
	Max     int
}

func (h *Health) Update() {}

func (h *Health) Clone(src *Health) {
	*h = *src
}

// Probe appends its label to a shared log on every update.
type Probe struct {
	Label string
	Log   *[]string
}

func (p *Probe) Update() {
	*p.Log = append(*p.Log, p.Label)
}

func (p *Probe) Clone(src *Probe) {
	*p = *src
}

// Hook runs an arbitrary function on update.
type Hook struct {
	Fn func()
}

func (h *Hook) Update() {
	if h.Fn != nil {
		h.Fn()
	}
}

func (h *Hook) Clone(src *Hook) {
	h.Fn = src.Fn
}

func newTestWorld() *ecs.World {
	world := ecs.NewWorld(ecs.WithName("test"))
	ecs.MustRegister[Transform](world)
	ecs.MustRegister[Nametag](world)
	ecs.MustRegister[Health](world)
	ecs.MustRegister[Probe](world)
	ecs.MustRegister[Hook](world)
	return world
}
