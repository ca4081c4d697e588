package ecs

import "errors"

// Commands buffers structural changes that cannot happen while a World is
// updating. Every World owns one, flushed at the end of World.Update.
type Commands struct {
	creates  []createCommand
	destroys []*Entity
	defers   []deferCommand
}

func newCommands() *Commands {
	return &Commands{}
}

type createCommand struct {
	init func(e *Entity) error
}

type deferCommand struct {
	fn func()
}

// Create queues an entity creation. init, if not nil, runs on the new entity
// and typically adds its components. When init fails the entity is destroyed.
func (c *Commands) Create(init func(e *Entity) error) {
	c.creates = append(c.creates, createCommand{init: init})
}

// Destroy queues an entity destruction.
func (c *Commands) Destroy(e *Entity) {
	c.destroys = append(c.destroys, e)
}

// Defer queues a function execution operation.
func (c *Commands) Defer(fn func()) {
	c.defers = append(c.defers, deferCommand{fn: fn})
}

// Len returns the number of queued commands.
func (c *Commands) Len() int {
	return len(c.creates) + len(c.destroys) + len(c.defers)
}

// Flush applies destroys, then creates, then deferred functions to w and
// resets the buffer. Commands queued while flushing wait for the next flush.
func (c *Commands) Flush(w *World) error {
	creates, destroys, defers := c.creates, c.destroys, c.defers
	c.creates, c.destroys, c.defers = nil, nil, nil

	var errs []error
	for _, e := range destroys {
		e.Destroy()
	}

	for _, cmd := range creates {
		e, err := w.Create()
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if cmd.init != nil {
			if err := cmd.init(e); err != nil {
				e.Destroy()
				errs = append(errs, err)
			}
		}
	}

	for _, df := range defers {
		df.fn()
	}

	return errors.Join(errs...)
}
