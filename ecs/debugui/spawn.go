package debugui

import (
	"github.com/plus3/divvy/ecs"
)

// RegisterDebugUIComponents registers every panel type with w.
func RegisterDebugUIComponents(w *ecs.World) error {
	registrations := []func(*ecs.World) (ecs.TypeID, error){
		ecs.Register[ImguiItem],
		ecs.Register[ImguiInputState],
		ecs.Register[EntityBrowser],
		ecs.Register[ComponentInspector],
		ecs.Register[TypeViewer],
		ecs.Register[WorldStatsPanel],
	}
	for _, register := range registrations {
		if _, err := register(w); err != nil {
			return err
		}
	}
	return nil
}

// SpawnDebugUI creates the inspection panels for target inside ui, which
// may be target itself. The returned handles own the panels: destroying one
// removes its window.
func SpawnDebugUI(ui, target *ecs.World, scheduler *ecs.Scheduler) ([]*ecs.Entity, error) {
	selection := &Selection{}

	spawns := []func(*ecs.Entity) error{
		func(e *ecs.Entity) error {
			_, err := ecs.Add(e, NewEntityBrowser(target, selection, 100))
			return err
		},
		func(e *ecs.Entity) error {
			_, err := ecs.Add(e, NewComponentInspector(target, selection))
			return err
		},
		func(e *ecs.Entity) error {
			_, err := ecs.Add(e, NewTypeViewer(target, selection))
			return err
		},
		func(e *ecs.Entity) error {
			_, err := ecs.Add(e, NewWorldStatsPanel(target, scheduler, 120))
			return err
		},
	}

	entities := make([]*ecs.Entity, 0, len(spawns))
	for _, spawn := range spawns {
		e, err := ui.Create()
		if err != nil {
			return entities, err
		}
		if err := spawn(e); err != nil {
			e.Destroy()
			return entities, err
		}
		entities = append(entities, e)
	}
	return entities, nil
}
